package ports

import (
	"context"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

// VehicleRepository defines persistence operations for vehicle records.
type VehicleRepository interface {
	// FindAll returns the records passing q's filter in store-native order.
	// Ordering is left to the caller.
	FindAll(ctx context.Context, q domain.VehicleQuery) ([]domain.Vehicle, error)
	// FindByID returns domain.ErrVehicleNotFound when no record has the id.
	FindByID(ctx context.Context, id int) (*domain.Vehicle, error)
	// InsertMany stores records in the given order, keeping their ids.
	InsertMany(ctx context.Context, vs []domain.Vehicle) error
	Count(ctx context.Context) (int64, error)
}

// VehicleCache is an optional read-through cache for single records.
type VehicleCache interface {
	// Get reports false on a miss.
	Get(ctx context.Context, id int) (*domain.Vehicle, bool, error)
	Set(ctx context.Context, v *domain.Vehicle) error
}
