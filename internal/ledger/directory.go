package ledger

import (
	"sync"

	"github.com/pharmatrace/batchtrace/internal/domain"
)

// Directory maps principal identities to advisory supply-chain roles. Roles
// inform collaborators (UI gating, workflow hints); they are never consulted
// by the transfer engine.
type Directory struct {
	mu sync.RWMutex
	// admin is the bootstrap administrator fixed at construction time.
	admin domain.Identity
	roles map[string]domain.Role
}

// NewDirectory creates a directory whose bootstrap admin is the given identity.
func NewDirectory(admin domain.Identity) *Directory {
	return &Directory{
		admin: admin,
		roles: make(map[string]domain.Role),
	}
}

// AssignRole sets or overwrites the role of an identity. Only an admin (the
// bootstrap admin or any identity previously assigned the admin role) may do
// this.
func (d *Directory) AssignRole(requester, identity domain.Identity, role domain.Role) error {
	if !identity.WellFormed() {
		return domain.NewValidationError("identity must not be empty")
	}
	if !domain.IsValidRole(role) {
		return domain.NewValidationError("unknown role %q", role)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isAdmin(requester) {
		return domain.NewAuthorizationError("requester %q lacks admin privilege", requester)
	}

	d.roles[identity.Key()] = role
	return nil
}

// GetRole returns the identity's role, defaulting to Customer when unset.
// It never errors.
func (d *Directory) GetRole(identity domain.Identity) domain.Role {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if role, ok := d.roles[identity.Key()]; ok {
		return role
	}
	return domain.RoleCustomer
}

// isAdmin reports admin privilege. Caller must hold d.mu at least for reading.
func (d *Directory) isAdmin(identity domain.Identity) bool {
	if d.admin.Equal(identity) {
		return true
	}
	return d.roles[identity.Key()] == domain.RoleAdmin
}
