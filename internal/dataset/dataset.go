// Package dataset holds the vehicle records bundled with the binary and
// imported on first start.
package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

//go:embed cars.json
var bundled []byte

type extraInfoRecord struct {
	Transmission  string `json:"transmission"`
	NumberOfDoors int    `json:"number_of_doors" validate:"gt=0"`
	Type          string `json:"type"`
}

type vehicleRecord struct {
	ID          int             `json:"id"          validate:"required"`
	Brand       string          `json:"brand"       validate:"required"`
	Model       string          `json:"model"       validate:"required"`
	Year        int             `json:"year"        validate:"required"`
	Price       float64         `json:"price"       validate:"gte=0"`
	Active      bool            `json:"active"`
	Fuel        string          `json:"fuel"`
	Color       string          `json:"color"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	ExtraInfo   extraInfoRecord `json:"extra_info"`
}

// Bundled parses the embedded dataset.
func Bundled() ([]domain.Vehicle, error) {
	return Parse(bundled)
}

// Parse decodes and validates a JSON array of vehicle records, keeping their order.
func Parse(data []byte) ([]domain.Vehicle, error) {
	var records []vehicleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("dataset: decode: %w", err)
	}

	v := validator.New()
	seen := make(map[int]struct{}, len(records))
	out := make([]domain.Vehicle, 0, len(records))

	for i, r := range records {
		if err := v.Struct(r); err != nil {
			return nil, fmt.Errorf("dataset: record %d: %w", i, err)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("dataset: record %d: duplicate id %d", i, r.ID)
		}
		seen[r.ID] = struct{}{}
		out = append(out, toDomain(r))
	}
	return out, nil
}

func toDomain(r vehicleRecord) domain.Vehicle {
	return domain.Vehicle{
		ID:          r.ID,
		Brand:       r.Brand,
		Model:       r.Model,
		Year:        r.Year,
		Price:       r.Price,
		Active:      r.Active,
		Fuel:        r.Fuel,
		Color:       r.Color,
		Image:       r.Image,
		Description: r.Description,
		ExtraInfo: domain.ExtraInfo{
			Transmission:  r.ExtraInfo.Transmission,
			NumberOfDoors: r.ExtraInfo.NumberOfDoors,
			Type:          r.ExtraInfo.Type,
		},
	}
}
