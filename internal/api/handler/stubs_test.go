package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/showroom/vehicle-catalog/internal/core/domain"
	"github.com/showroom/vehicle-catalog/internal/core/ports"
)

type stubAccountService struct {
	registerFn     func(ctx context.Context, username, password string) (*domain.Account, error)
	authenticateFn func(ctx context.Context, username, password string) (*domain.Account, error)
	setRoleFn      func(ctx context.Context, actor, username string, role domain.Role) (*domain.Account, error)
	lookupFn       func(ctx context.Context, username string) (*domain.Account, error)
	listFn         func(ctx context.Context) ([]*domain.Account, error)
}

func (s *stubAccountService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAccountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	return s.authenticateFn(ctx, username, password)
}

func (s *stubAccountService) SetRole(ctx context.Context, actor, username string, role domain.Role) (*domain.Account, error) {
	return s.setRoleFn(ctx, actor, username, role)
}

func (s *stubAccountService) Lookup(ctx context.Context, username string) (*domain.Account, error) {
	return s.lookupFn(ctx, username)
}

func (s *stubAccountService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.listFn(ctx)
}

type stubVehicleService struct {
	listFn func(ctx context.Context, in ports.ListVehiclesInput) ([]domain.Vehicle, error)
	getFn  func(ctx context.Context, id int) (*domain.Vehicle, error)
}

func (s *stubVehicleService) ListVehicles(ctx context.Context, in ports.ListVehiclesInput) ([]domain.Vehicle, error) {
	return s.listFn(ctx, in)
}

func (s *stubVehicleService) GetVehicle(ctx context.Context, id int) (*domain.Vehicle, error) {
	return s.getFn(ctx, id)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// formContext builds a form POST context.
func formContext(e *echo.Echo, path string, values url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// jsonGetContext builds a GET context that asks for JSON.
func jsonGetContext(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
