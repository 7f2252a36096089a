package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pharmatrace/batchtrace/internal/adapter"
	"github.com/pharmatrace/batchtrace/internal/api/middleware"
	"github.com/pharmatrace/batchtrace/internal/api/server"
	"github.com/pharmatrace/batchtrace/internal/config"
	"github.com/pharmatrace/batchtrace/internal/domain"
	"github.com/pharmatrace/batchtrace/internal/ledger"
	"github.com/pharmatrace/batchtrace/internal/logger"
	"github.com/pharmatrace/batchtrace/internal/notify"
	"github.com/pharmatrace/batchtrace/internal/notify/jetstream"
	"github.com/pharmatrace/batchtrace/internal/webhook"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "batchtrace-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting BatchTrace API")

	// Initialize adapters
	fs := adapter.NewFileSystem()
	jsonAdapter := adapter.NewJSON()

	// Notification sinks: JetStream publisher for the ledger mirror, webhook
	// dispatcher for external clients. Either can be disabled.
	var sinks []notify.Sink

	if cfg.NATS.URL != "" {
		publisher, err := jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		sinks = append(sinks, publisher)
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, ledger mirror feed is disabled")
	}

	var dispatcher *webhook.Dispatcher
	if cfg.Webhook.Enabled {
		dispatcher = webhook.NewDispatcher(webhook.DispatcherConfig{
			PoolSize: cfg.Webhook.PoolSize,
			Debug:    cfg.Debug,
		})

		loaded, err := webhook.LoadClients(fs, jsonAdapter, cfg.Webhook.ClientsPath, dispatcher)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load webhook clients",
				zap.Error(err),
				zap.String("path", cfg.Webhook.ClientsPath))
		}
		if loaded > 0 {
			logger.InfoCtx(ctx, "Loaded webhook clients", zap.Int("count", loaded))
		}
		sinks = append(sinks, dispatcher)
	}

	// The queue decouples ledger commits from broker and webhook I/O
	queue := notify.NewQueue(cfg.Ledger.NotifyQueueSize, sinks...)
	defer queue.Close()

	// Create the ledger core
	ldgr := ledger.New(ledger.Config{
		Admin:    domain.Identity(cfg.Ledger.AdminIdentity),
		Notifier: queue,
	})

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, ldgr, dispatcher)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
