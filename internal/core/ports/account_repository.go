package ports

import (
	"context"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

// AccountRepository defines persistence for accounts.
type AccountRepository interface {
	// FindByUsername returns domain.ErrAccountNotFound when no account matches.
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	// Insert returns domain.ErrUsernameTaken on a unique-key violation.
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// InsertIfAbsent atomically creates the account unless the username exists.
	// It never modifies an existing account and reports whether it wrote.
	InsertIfAbsent(ctx context.Context, account *domain.Account) (bool, error)
	// UpdateRole returns domain.ErrAccountNotFound when no account matches.
	UpdateRole(ctx context.Context, username string, role domain.Role) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Count(ctx context.Context) (int64, error)
}

// AuditRepository persists the account audit trail.
type AuditRepository interface {
	InsertRoleChange(ctx context.Context, change domain.RoleChange) error
}
