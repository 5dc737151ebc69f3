package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
	"github.com/showroom/vehicle-catalog/internal/core/ports"
)

// AccountService implements registration, login verification and role edits.
type AccountService struct {
	repo   ports.AccountRepository
	hasher ports.PasswordHasher
	audit  ports.AuditRecorder
	log    zerolog.Logger
	now    func() time.Time
}

// NewAccountService wires an AccountService. audit may be nil.
func NewAccountService(repo ports.AccountRepository, hasher ports.PasswordHasher, audit ports.AuditRecorder, log zerolog.Logger) *AccountService {
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		audit:  audit,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a USER account. The username is stored exactly as given.
func (s *AccountService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	_, err := s.repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, domain.ErrUsernameTaken
	case !errors.Is(err, domain.ErrAccountNotFound):
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now()
	created, err := s.repo.Insert(ctx, &domain.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// a concurrent registration may win the race after the lookup above
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("username", created.Username).Msg("account registered")
	return created, nil
}

// Authenticate verifies a username/password pair.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, domain.ErrBadCredential
	}
	return account, nil
}

// SetRole changes the role of username. actor is the admin performing the edit.
func (s *AccountService) SetRole(ctx context.Context, actor, username string, role domain.Role) (*domain.Account, error) {
	if !role.Valid() || username == "" {
		return nil, domain.ErrInvalidInput
	}

	updated, err := s.repo.UpdateRole(ctx, username, role)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("set role: %w", err)
	}

	if s.audit != nil {
		s.audit.RecordRoleChange(domain.RoleChange{
			Username:  username,
			Role:      role,
			ChangedBy: actor,
			At:        s.now(),
		})
	}

	s.log.Info().
		Str("username", username).
		Str("role", string(role)).
		Str("changed_by", actor).
		Msg("account role changed")

	return updated, nil
}

// Lookup returns the current state of an account.
func (s *AccountService) Lookup(ctx context.Context, username string) (*domain.Account, error) {
	return s.repo.FindByUsername(ctx, username)
}

// List returns all accounts for the admin panel.
func (s *AccountService) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}
