package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/showroom/vehicle-catalog/internal/api/middleware"
	"github.com/showroom/vehicle-catalog/internal/api/view"
	"github.com/showroom/vehicle-catalog/internal/core/domain"
)

// render writes page as HTML, or its Data as JSON when the client asked for JSON.
func render(c echo.Context, code int, name, title string, data any) error {
	if view.WantsJSON(c.Request()) {
		if data == nil {
			return c.NoContent(code)
		}
		return c.JSON(code, data)
	}
	return c.Render(code, name, view.Page{
		Title:     title,
		Principal: middleware.CurrentState(c).Principal,
		Data:      data,
	})
}

// bindForm binds and validates a request body. Both failures count as
// malformed input.
func bindForm(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return fmt.Errorf("%w: malformed request", domain.ErrInvalidInput)
	}
	if err := c.Validate(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
