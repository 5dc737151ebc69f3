package ports

import (
	"context"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

// ListVehiclesInput carries the raw listing parameters as received from the client.
type ListVehiclesInput struct {
	Search    string
	SortBy    string
	SortOrder string
}

// VehicleService defines the read-only use cases for vehicle records.
type VehicleService interface {
	ListVehicles(ctx context.Context, input ListVehiclesInput) ([]domain.Vehicle, error)
	GetVehicle(ctx context.Context, id int) (*domain.Vehicle, error)
}
