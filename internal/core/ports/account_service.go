package ports

import (
	"context"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

// PasswordHasher is a salted one-way hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// AuditRecorder accepts audit events without blocking the caller.
type AuditRecorder interface {
	RecordRoleChange(change domain.RoleChange)
}

type AccountService interface {
	Register(ctx context.Context, username, password string) (*domain.Account, error)
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)
	SetRole(ctx context.Context, actor, username string, role domain.Role) (*domain.Account, error)
	Lookup(ctx context.Context, username string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
}
