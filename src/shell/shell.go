package shell

import (
	"context"
	"sync"

	"github.com/username/apexbank/client/src/admin"
	"github.com/username/apexbank/client/src/directory"
)

// Role is the UI mode. No authentication is modeled; switching roles is
// a pure toggle.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
)

// Shell owns the top-level switch between the customer workspace and
// the employee console.
type Shell struct {
	dir *directory.Directory
	nav *admin.Navigator

	mu   sync.Mutex
	role Role
}

func New(dir *directory.Directory, nav *admin.Navigator) *Shell {
	return &Shell{dir: dir, nav: nav, role: RoleCustomer}
}

// SetRole switches modes. Entering the customer role triggers an account
// list fetch; entering the employee role discards the customer
// workspace's selection and hands control to the navigator.
func (s *Shell) SetRole(ctx context.Context, role Role) error {
	s.mu.Lock()
	s.role = role
	s.mu.Unlock()

	switch role {
	case RoleEmployee:
		s.dir.Reset()
		return s.nav.Activate(ctx)
	default:
		return s.dir.Refresh(ctx)
	}
}

func (s *Shell) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func (s *Shell) Directory() *directory.Directory { return s.dir }
func (s *Shell) Navigator() *admin.Navigator     { return s.nav }
