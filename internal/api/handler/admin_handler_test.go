package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/showroom/vehicle-catalog/internal/api/middleware"
	"github.com/showroom/vehicle-catalog/internal/core/domain"
	"github.com/showroom/vehicle-catalog/internal/session"
)

func TestAdminHandler_Panel(t *testing.T) {
	e := newEcho()
	stub := &stubAccountService{
		listFn: func(context.Context) ([]*domain.Account, error) {
			return []*domain.Account{
				{Username: "admin", Role: domain.RoleAdmin},
				{Username: "user", Role: domain.RoleUser},
			}, nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := jsonGetContext(e, "/admin")
	if err := h.Panel(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Accounts []map[string]any `json:"accounts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(resp.Accounts))
	}
	if _, leaked := resp.Accounts[0]["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialised")
	}
}

func TestAdminHandler_EditUser(t *testing.T) {
	e := newEcho()
	var gotActor, gotUser string
	var gotRole domain.Role
	stub := &stubAccountService{
		setRoleFn: func(ctx context.Context, actor, username string, role domain.Role) (*domain.Account, error) {
			gotActor, gotUser, gotRole = actor, username, role
			return &domain.Account{Username: username, Role: role}, nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := formContext(e, "/admin/edituser", url.Values{"username": {"user"}, "role": {"ADMIN"}})
	middleware.SetState(c, session.State{Token: "t", Principal: &domain.Account{Username: "admin", Role: domain.RoleAdmin}})

	if err := h.EditUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/admin" {
		t.Fatalf("expected redirect to /admin, got %d", rec.Code)
	}
	if gotActor != "admin" || gotUser != "user" || gotRole != domain.RoleAdmin {
		t.Fatalf("unexpected args: %s %s %s", gotActor, gotUser, gotRole)
	}
}

func TestAdminHandler_EditUser_Errors(t *testing.T) {
	for _, want := range []error{domain.ErrAccountNotFound, domain.ErrInvalidInput} {
		e := newEcho()
		stub := &stubAccountService{
			setRoleFn: func(context.Context, string, string, domain.Role) (*domain.Account, error) {
				return nil, want
			},
		}
		h := NewAdminHandler(stub)

		c, _ := formContext(e, "/admin/edituser", url.Values{"username": {"ghost"}, "role": {"ADMIN"}})
		if err := h.EditUser(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestAdminHandler_EditUser_MissingRole(t *testing.T) {
	e := newEcho()
	h := NewAdminHandler(&stubAccountService{})

	c, _ := formContext(e, "/admin/edituser", url.Values{"username": {"user"}})
	if err := h.EditUser(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAdminHandler_EditUser_UnknownRoleRejected(t *testing.T) {
	e := newEcho()
	stub := &stubAccountService{
		setRoleFn: func(context.Context, string, string, domain.Role) (*domain.Account, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAdminHandler(stub)

	for _, role := range []string{"ROOT", "admin", " ADMIN"} {
		c, _ := formContext(e, "/admin/edituser", url.Values{"username": {"user"}, "role": {role}})
		err := h.EditUser(c)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("role %q: expected ErrInvalidInput, got %v", role, err)
		}
		if !strings.Contains(err.Error(), "role must be one of: USER ADMIN") {
			t.Fatalf("role %q: unexpected message %q", role, err.Error())
		}
	}
}
