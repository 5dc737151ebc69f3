package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
	"github.com/showroom/vehicle-catalog/internal/core/ports"
)

// DefaultAccount is a bootstrap account created on first start.
type DefaultAccount struct {
	Username string
	Password string
	Role     domain.Role
}

// DefaultAccounts returns the fixed admin/ADMIN and user/USER bootstrap pair.
func DefaultAccounts(adminPassword, userPassword string) []DefaultAccount {
	return []DefaultAccount{
		{Username: "admin", Password: adminPassword, Role: domain.RoleAdmin},
		{Username: "user", Password: userPassword, Role: domain.RoleUser},
	}
}

// SeedReport summarises what a seeding run wrote.
type SeedReport struct {
	AccountsCreated int
	VehiclesLoaded  int
}

// Seeder makes sure the bootstrap accounts and the bundled dataset exist.
// It must run before the server accepts connections; it relies on being the
// only writer while it runs.
type Seeder struct {
	accounts ports.AccountRepository
	vehicles ports.VehicleRepository
	hasher   ports.PasswordHasher
	defaults []DefaultAccount
	dataset  []domain.Vehicle
	log      zerolog.Logger
}

func NewSeeder(
	accounts ports.AccountRepository,
	vehicles ports.VehicleRepository,
	hasher ports.PasswordHasher,
	defaults []DefaultAccount,
	dataset []domain.Vehicle,
	log zerolog.Logger,
) *Seeder {
	return &Seeder{
		accounts: accounts,
		vehicles: vehicles,
		hasher:   hasher,
		defaults: defaults,
		dataset:  dataset,
		log:      log,
	}
}

// Run seeds accounts, then vehicles. Any error means the store could not be
// verified or seeded and the caller must not start serving.
func (s *Seeder) Run(ctx context.Context) (SeedReport, error) {
	var report SeedReport

	for _, d := range s.defaults {
		created, err := s.ensureAccount(ctx, d)
		if err != nil {
			return report, fmt.Errorf("seed account %q: %w", d.Username, err)
		}
		if created {
			report.AccountsCreated++
			s.log.Info().Str("username", d.Username).Str("role", string(d.Role)).Msg("default account created")
		}
	}

	n, err := s.vehicles.Count(ctx)
	if err != nil {
		return report, fmt.Errorf("seed vehicles: count: %w", err)
	}
	if n > 0 {
		s.log.Info().Int64("existing", n).Msg("vehicle dataset already imported")
		return report, nil
	}
	if len(s.dataset) == 0 {
		return report, nil
	}

	if err := s.vehicles.InsertMany(ctx, s.dataset); err != nil {
		return report, fmt.Errorf("seed vehicles: insert: %w", err)
	}
	report.VehiclesLoaded = len(s.dataset)
	s.log.Info().Int("count", report.VehiclesLoaded).Msg("vehicle dataset imported")

	return report, nil
}

func (s *Seeder) ensureAccount(ctx context.Context, d DefaultAccount) (bool, error) {
	_, err := s.accounts.FindByUsername(ctx, d.Username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return false, err
	}

	hash, err := s.hasher.Hash(d.Password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	return s.accounts.InsertIfAbsent(ctx, &domain.Account{
		Username:     d.Username,
		PasswordHash: hash,
		Role:         d.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
