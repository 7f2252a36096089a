package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmatrace/batchtrace/internal/api/middleware"
	"github.com/pharmatrace/batchtrace/internal/logger"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// genKeyPair returns an RSA private key and its PKIX-encoded public key in PEM
func genKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pemBytes)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestAuthenticate_APIKey(t *testing.T) {
	cfg := middleware.AuthConfig{APIKeys: []string{"key-one", "key-two"}}

	tests := []struct {
		name    string
		header  string
		success bool
		errMsg  string
	}{
		{
			name:   "missing header",
			header: "",
			errMsg: "missing Authorization header",
		},
		{
			name:   "no scheme",
			header: "key-one",
			errMsg: "invalid Authorization header format",
		},
		{
			name:   "unsupported scheme",
			header: "Basic key-one",
			errMsg: "unsupported authorization type",
		},
		{
			name:    "valid key",
			header:  "APIKey key-one",
			success: true,
		},
		{
			name:    "scheme is case-insensitive",
			header:  "apikey key-two",
			success: true,
		},
		{
			name:   "unknown key",
			header: "APIKey wrong",
			errMsg: "invalid API key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := middleware.Authenticate(tt.header, cfg)
			assert.Equal(t, tt.success, result.Success)
			if tt.success {
				assert.Equal(t, "apikey", result.AuthType)
				assert.NoError(t, result.Error)
			} else {
				assert.ErrorContains(t, result.Error, tt.errMsg)
			}
		})
	}
}

func TestAuthenticate_APIKeyNoneConfigured(t *testing.T) {
	result := middleware.Authenticate("APIKey anything", middleware.AuthConfig{})
	assert.False(t, result.Success)
	assert.ErrorContains(t, result.Error, "no API keys configured")
}

func TestAuthenticate_JWT(t *testing.T) {
	key, publicPEM := genKeyPair(t)
	cfg := middleware.AuthConfig{JWTPublicKey: publicPEM}

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, key, jwt.RegisteredClaims{
			Subject:   "0xmanufacturer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		result := middleware.Authenticate("Bearer "+token, cfg)
		require.True(t, result.Success, result.Error)
		assert.Equal(t, "jwt", result.AuthType)
		assert.Equal(t, "0xmanufacturer", result.AuthSubject)
		require.NotNil(t, result.Claims)
		assert.Equal(t, "0xmanufacturer", result.Claims.Subject)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, key, jwt.RegisteredClaims{
			Subject:   "0xmanufacturer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})

		result := middleware.Authenticate("Bearer "+token, cfg)
		assert.False(t, result.Success)
	})

	t.Run("signed by a different key", func(t *testing.T) {
		otherKey, _ := genKeyPair(t)
		token := signToken(t, otherKey, jwt.RegisteredClaims{
			Subject:   "0xmanufacturer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		result := middleware.Authenticate("Bearer "+token, cfg)
		assert.False(t, result.Success)
	})

	t.Run("no public key configured", func(t *testing.T) {
		token := signToken(t, key, jwt.RegisteredClaims{Subject: "0xmanufacturer"})

		result := middleware.Authenticate("Bearer "+token, middleware.AuthConfig{})
		assert.False(t, result.Success)
		assert.ErrorContains(t, result.Error, "JWT public key not configured")
	})

	t.Run("garbage token", func(t *testing.T) {
		result := middleware.Authenticate("Bearer not.a.jwt", cfg)
		assert.False(t, result.Success)
	})
}
