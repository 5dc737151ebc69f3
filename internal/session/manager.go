package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

// PrincipalLoader resolves the account a session points to.
type PrincipalLoader interface {
	Lookup(ctx context.Context, username string) (*domain.Account, error)
}

// State is the authentication state of one request.
// The zero State is Anonymous.
type State struct {
	Token     string
	Principal *domain.Account
}

// Authenticated reports whether a principal is attached.
func (s State) Authenticated() bool {
	return s.Principal != nil
}

// Anonymous is the initial state of every client.
var Anonymous = State{}

// Manager moves clients between the Anonymous and Authenticated states.
type Manager struct {
	store    Store
	accounts PrincipalLoader
	signer   signer
	now      func() time.Time
}

func NewManager(store Store, accounts PrincipalLoader, secret []byte) *Manager {
	return &Manager{
		store:    store,
		accounts: accounts,
		signer:   signer{secret: secret},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start attaches account to a new session and returns its token.
func (m *Manager) Start(ctx context.Context, account *domain.Account) (string, error) {
	if account == nil || account.Username == "" {
		return "", errors.New("session: start requires an account")
	}

	now := m.now()
	s := Session{ID: newID(), Username: account.Username, CreatedAt: now}

	token, err := m.signer.issue(s.ID, now)
	if err != nil {
		return "", fmt.Errorf("session: sign token: %w", err)
	}
	if err := m.store.Save(ctx, s); err != nil {
		return "", fmt.Errorf("session: save: %w", err)
	}
	return token, nil
}

// Resolve returns the state a token stands for. Missing, forged and ended
// tokens resolve to Anonymous without error. The principal is read fresh from
// the account store so role edits apply on the next request.
func (m *Manager) Resolve(ctx context.Context, token string) (State, error) {
	if token == "" {
		return Anonymous, nil
	}
	id, err := m.signer.parse(token)
	if err != nil {
		return Anonymous, nil
	}

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return Anonymous, fmt.Errorf("session: load: %w", err)
	}
	if s == nil {
		return Anonymous, nil
	}

	account, err := m.accounts.Lookup(ctx, s.Username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			_ = m.store.Delete(ctx, id)
			return Anonymous, nil
		}
		return Anonymous, fmt.Errorf("session: load principal: %w", err)
	}

	return State{Token: token, Principal: account}, nil
}

// End destroys the session behind token. Ending an unknown or forged token is a no-op.
func (m *Manager) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	id, err := m.signer.parse(token)
	if err != nil {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}
