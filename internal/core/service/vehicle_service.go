package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
	"github.com/showroom/vehicle-catalog/internal/core/ports"
)

type VehicleService struct {
	repo   ports.VehicleRepository
	cache  ports.VehicleCache
	logger zerolog.Logger
}

// NewVehicleService returns a VehicleService. cache may be nil.
func NewVehicleService(repo ports.VehicleRepository, cache ports.VehicleCache, logger zerolog.Logger) *VehicleService {
	return &VehicleService{repo: repo, cache: cache, logger: logger}
}

// ListVehicles filters and orders the stored records. The store is only read.
func (s *VehicleService) ListVehicles(ctx context.Context, input ports.ListVehiclesInput) ([]domain.Vehicle, error) {
	q := BuildVehicleQuery(input)

	vehicles, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}

	domain.SortVehicles(vehicles, q.Sort)
	return vehicles, nil
}

// GetVehicle returns a single record, consulting the cache first when one is configured.
// Cache failures are logged and fall through to the store.
func (s *VehicleService) GetVehicle(ctx context.Context, id int) (*domain.Vehicle, error) {
	if s.cache != nil {
		v, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Int("vehicle_id", id).Msg("vehicle cache read failed")
		} else if ok {
			return v, nil
		}
	}

	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("get vehicle %d: %w", id, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, v); err != nil {
			s.logger.Warn().Err(err).Int("vehicle_id", id).Msg("vehicle cache write failed")
		}
	}
	return v, nil
}
