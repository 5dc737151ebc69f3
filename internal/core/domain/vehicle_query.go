package domain

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// SortField is the closed set of vehicle attributes a listing can be ordered by.
// Every scalar attribute is included; extra_info is not.
type SortField string

const (
	SortByID          SortField = "id"
	SortByBrand       SortField = "brand"
	SortByModel       SortField = "model"
	SortByYear        SortField = "year"
	SortByPrice       SortField = "price"
	SortByFuel        SortField = "fuel"
	SortByColor       SortField = "color"
	SortByActive      SortField = "active"
	SortByImage       SortField = "image"
	SortByDescription SortField = "description"
)

var sortFields = map[SortField]struct{}{
	SortByID:          {},
	SortByBrand:       {},
	SortByModel:       {},
	SortByYear:        {},
	SortByPrice:       {},
	SortByFuel:        {},
	SortByColor:       {},
	SortByActive:      {},
	SortByImage:       {},
	SortByDescription: {},
}

// ParseSortField maps a raw query value to a SortField. The second result is
// false for blank or unrecognised names.
func ParseSortField(raw string) (SortField, bool) {
	f := SortField(strings.TrimSpace(raw))
	_, ok := sortFields[f]
	return f, ok
}

// Numeric reports whether the field compares numerically.
func (f SortField) Numeric() bool {
	return f == SortByID || f == SortByYear || f == SortByPrice
}

// VehicleSort orders a listing by a single field.
type VehicleSort struct {
	Field      SortField
	Descending bool
}

// VehicleQuery is a validated filter + ordering request for the vehicle store.
// A zero VehicleQuery selects every record in store-native order.
type VehicleQuery struct {
	// Search matches brand or model, case-insensitively, as a substring.
	Search string
	// Sort is nil when no recognised sort field was requested.
	Sort *VehicleSort
}

// Filtered reports whether the query narrows the result set.
func (q VehicleQuery) Filtered() bool {
	return q.Search != ""
}

// Matches reports whether v passes the query's filter.
func (q VehicleQuery) Matches(v Vehicle) bool {
	if q.Search == "" {
		return true
	}
	term := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(v.Brand), term) ||
		strings.Contains(strings.ToLower(v.Model), term)
}

// SortVehicles orders vs in place according to s. Equal keys keep their
// relative order. A nil s leaves vs untouched.
func SortVehicles(vs []Vehicle, s *VehicleSort) {
	if s == nil {
		return
	}
	compare := comparator(s.Field)
	if s.Descending {
		slices.SortStableFunc(vs, func(a, b Vehicle) int { return compare(b, a) })
		return
	}
	slices.SortStableFunc(vs, compare)
}

func comparator(f SortField) func(a, b Vehicle) int {
	switch f {
	case SortByID:
		return func(a, b Vehicle) int { return cmp.Compare(a.ID, b.ID) }
	case SortByYear:
		return func(a, b Vehicle) int { return cmp.Compare(a.Year, b.Year) }
	case SortByPrice:
		return func(a, b Vehicle) int { return cmp.Compare(a.Price, b.Price) }
	default:
		return func(a, b Vehicle) int { return strings.Compare(textKey(a, f), textKey(b, f)) }
	}
}

func textKey(v Vehicle, f SortField) string {
	switch f {
	case SortByBrand:
		return v.Brand
	case SortByModel:
		return v.Model
	case SortByFuel:
		return v.Fuel
	case SortByColor:
		return v.Color
	case SortByActive:
		return strconv.FormatBool(v.Active)
	case SortByImage:
		return v.Image
	case SortByDescription:
		return v.Description
	}
	return ""
}
