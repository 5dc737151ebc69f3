package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Account repository
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	users     map[string]*domain.Account
	order     []string
	writes    int
	findErr   error
	insertErr error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{users: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.users[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) Insert(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	if _, exists := r.users[a.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	r.writes++
	c := cloneAccount(a)
	c.ID = a.Username
	r.users[c.Username] = c
	r.order = append(r.order, c.Username)
	return cloneAccount(c), nil
}

func (r *stubAccountRepo) InsertIfAbsent(ctx context.Context, a *domain.Account) (bool, error) {
	if _, exists := r.users[a.Username]; exists {
		return false, nil
	}
	if _, err := r.Insert(ctx, a); err != nil {
		return false, err
	}
	return true, nil
}

func (r *stubAccountRepo) UpdateRole(_ context.Context, username string, role domain.Role) (*domain.Account, error) {
	a, ok := r.users[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	r.writes++
	a.Role = role
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) List(_ context.Context) ([]*domain.Account, error) {
	out := make([]*domain.Account, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, cloneAccount(r.users[name]))
	}
	return out, nil
}

func (r *stubAccountRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// plainHasher keeps tests fast; the bcrypt implementation has its own tests.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Verify(p, d string) bool      { return d == "hashed:"+p }

type recordingAudit struct {
	mu      sync.Mutex
	changes []domain.RoleChange
}

func (a *recordingAudit) RecordRoleChange(c domain.RoleChange) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.changes = append(a.changes, c)
}

// ---------------------------------------------------------------------------
// Vehicle repository
// ---------------------------------------------------------------------------

type stubVehicleRepo struct {
	records   []domain.Vehicle
	inserts   int
	lastQuery domain.VehicleQuery
	err       error
}

func (r *stubVehicleRepo) FindAll(_ context.Context, q domain.VehicleQuery) ([]domain.Vehicle, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.lastQuery = q
	var out []domain.Vehicle
	for _, v := range r.records {
		if q.Matches(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubVehicleRepo) FindByID(_ context.Context, id int) (*domain.Vehicle, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, v := range r.records {
		if v.ID == id {
			clone := v
			return &clone, nil
		}
	}
	return nil, domain.ErrVehicleNotFound
}

func (r *stubVehicleRepo) InsertMany(_ context.Context, vs []domain.Vehicle) error {
	if r.err != nil {
		return r.err
	}
	r.inserts++
	r.records = append(r.records, vs...)
	return nil
}

func (r *stubVehicleRepo) Count(_ context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.records)), nil
}

type stubCache struct {
	items  map[int]domain.Vehicle
	getErr error
	hits   int
}

func newStubCache() *stubCache {
	return &stubCache{items: make(map[int]domain.Vehicle)}
}

func (c *stubCache) Get(_ context.Context, id int) (*domain.Vehicle, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.items[id]
	if !ok {
		return nil, false, nil
	}
	c.hits++
	return &v, true, nil
}

func (c *stubCache) Set(_ context.Context, v *domain.Vehicle) error {
	c.items[v.ID] = *v
	return nil
}

var errStoreDown = errors.New("store unreachable")

func sortedUsernames(r *stubAccountRepo) []string {
	names := make([]string, 0, len(r.users))
	for n := range r.users {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
