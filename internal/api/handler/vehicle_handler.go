package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/showroom/vehicle-catalog/internal/api/metrics"
	"github.com/showroom/vehicle-catalog/internal/core/domain"
	"github.com/showroom/vehicle-catalog/internal/core/ports"
)

type VehicleHandler struct {
	vehicles ports.VehicleService
}

func NewVehicleHandler(vehicles ports.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

type overviewQuery struct {
	Search    string `query:"q" json:"q"`
	SortBy    string `query:"sortBy" json:"sortBy"`
	SortOrder string `query:"sortOrder" json:"sortOrder"`
}

type overviewPage struct {
	Query      overviewQuery      `json:"query"`
	SortFields []domain.SortField `json:"-"`
	Vehicles   []domain.Vehicle   `json:"vehicles"`
	Total      int                `json:"total"`
}

var sortFieldOptions = []domain.SortField{
	domain.SortByBrand, domain.SortByModel, domain.SortByYear, domain.SortByPrice,
	domain.SortByFuel, domain.SortByColor, domain.SortByActive, domain.SortByID,
	domain.SortByImage, domain.SortByDescription,
}

// Overview lists vehicles, optionally filtered and sorted.
//
// @Summary      List vehicles
// @Tags         vehicles
// @Produce      html,json
// @Param        q          query     string  false  "Case-insensitive brand or model substring"
// @Param        sortBy     query     string  false  "id, brand, model, year, price, fuel, color, active, image or description"
// @Param        sortOrder  query     string  false  "asc (default) or desc"
// @Success      200        {object}  overviewPage
// @Router       /overview [get]
func (h *VehicleHandler) Overview(c echo.Context) error {
	var q overviewQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return err
	}

	vehicles, err := h.vehicles.ListVehicles(c.Request().Context(), ports.ListVehiclesInput{
		Search:    q.Search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		return err
	}

	_, sorted := domain.ParseSortField(q.SortBy)
	metrics.VehicleQueriesTotal.
		WithLabelValues(strconv.FormatBool(strings.TrimSpace(q.Search) != ""), strconv.FormatBool(sorted)).
		Inc()

	return render(c, http.StatusOK, "overview", "Overview", overviewPage{
		Query:      q,
		SortFields: sortFieldOptions,
		Vehicles:   vehicles,
		Total:      len(vehicles),
	})
}

// Detail shows a single vehicle.
//
// @Summary      Vehicle detail
// @Tags         vehicles
// @Produce      html,json
// @Param        id   path      int  true  "Vehicle id"
// @Success      200  {object}  domain.Vehicle
// @Failure      404  {object}  map[string]string
// @Router       /detail/{id} [get]
func (h *VehicleHandler) Detail(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return domain.ErrVehicleNotFound
	}

	v, err := h.vehicles.GetVehicle(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "detail", v.Brand+" "+v.Model, v)
}
