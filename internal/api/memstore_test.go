package api

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

// memAccounts is an in-memory ports.AccountRepository.
type memAccounts struct {
	mu   sync.Mutex
	byID map[string]*domain.Account
	seq  int
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: make(map[string]*domain.Account)}
}

func (m *memAccounts) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAccounts) Insert(_ context.Context, a *domain.Account) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[a.Username]; ok {
		return nil, domain.ErrUsernameTaken
	}
	m.seq++
	cp := *a
	cp.ID = strconv.Itoa(m.seq)
	m.byID[a.Username] = &cp
	out := cp
	return &out, nil
}

func (m *memAccounts) InsertIfAbsent(ctx context.Context, a *domain.Account) (bool, error) {
	if _, err := m.Insert(ctx, a); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memAccounts) UpdateRole(_ context.Context, username string, role domain.Role) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a.Role = role
	cp := *a
	return &cp, nil
}

func (m *memAccounts) List(_ context.Context) ([]*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Account, 0, len(m.byID))
	for _, a := range m.byID {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *memAccounts) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byID)), nil
}

// memVehicles is an in-memory ports.VehicleRepository keeping insertion order.
type memVehicles struct {
	mu       sync.Mutex
	vehicles []domain.Vehicle
}

func (m *memVehicles) FindAll(_ context.Context, q domain.VehicleQuery) ([]domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Vehicle
	for _, v := range m.vehicles {
		if q.Matches(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVehicles) FindByID(_ context.Context, id int) (*domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.vehicles {
		if v.ID == id {
			cp := v
			return &cp, nil
		}
	}
	return nil, domain.ErrVehicleNotFound
}

func (m *memVehicles) InsertMany(_ context.Context, vs []domain.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles = append(m.vehicles, vs...)
	return nil
}

func (m *memVehicles) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.vehicles)), nil
}
