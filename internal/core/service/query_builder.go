package service

import (
	"strings"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
	"github.com/showroom/vehicle-catalog/internal/core/ports"
)

// sortOrderDesc is the only sortOrder value that reverses the ordering.
const sortOrderDesc = "desc"

// BuildVehicleQuery turns raw listing parameters into a validated query.
// Blank search terms and unknown sort fields are dropped silently.
func BuildVehicleQuery(in ports.ListVehiclesInput) domain.VehicleQuery {
	q := domain.VehicleQuery{Search: strings.TrimSpace(in.Search)}

	if field, ok := domain.ParseSortField(in.SortBy); ok {
		q.Sort = &domain.VehicleSort{
			Field:      field,
			Descending: in.SortOrder == sortOrderDesc,
		}
	}
	return q
}
