package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/showroom/vehicle-catalog/internal/api/metrics"
	"github.com/showroom/vehicle-catalog/internal/api/middleware"
	"github.com/showroom/vehicle-catalog/internal/api/view"
	"github.com/showroom/vehicle-catalog/internal/core/domain"
	"github.com/showroom/vehicle-catalog/internal/core/ports"
	"github.com/showroom/vehicle-catalog/internal/session"
)

type AuthHandler struct {
	accounts ports.AccountService
	sessions *session.Manager
	cookie   session.CookieOptions
}

func NewAuthHandler(accounts ports.AccountService, sessions *session.Manager, cookie session.CookieOptions) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions, cookie: cookie}
}

type credentialsForm struct {
	Username string `form:"username" json:"username" validate:"required,max=64"`
	Password string `form:"password" json:"password" validate:"required,max=72"`
}

type loginResponse struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// Root is the entry point. Signed-in clients never reach it.
func (h *AuthHandler) Root(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return render(c, http.StatusOK, "login", "Log in", nil)
}

// Login verifies credentials and starts a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        body  body      credentialsForm  true  "Credentials"
// @Success      302   {string}  string  "redirect to /dashboard"
// @Success      200   {object}  loginResponse  "when Accept is application/json"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form credentialsForm
	if err := bindForm(c, &form); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	account, err := h.accounts.Authenticate(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	// a client logging in again gives up its previous session
	if prev := h.currentToken(c); prev != "" {
		if err := h.sessions.End(c.Request().Context(), prev); err != nil {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
			return err
		}
	}

	token, err := h.sessions.Start(c.Request().Context(), account)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	session.SetCookie(c.Response(), token, h.cookie)
	if view.WantsJSON(c.Request()) {
		return c.JSON(http.StatusOK, loginResponse{Token: token, Username: account.Username, Role: account.Role})
	}
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout ends the current session. It is safe to call without one.
//
// @Summary      Log out
// @Tags         auth
// @Success      302  {string}  string  "redirect to /login"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.End(c.Request().Context(), h.currentToken(c)); err != nil {
		return err
	}
	session.ClearCookie(c.Response(), h.cookie)
	return c.Redirect(http.StatusFound, "/login")
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return render(c, http.StatusOK, "register", "Register", nil)
}

// Register creates a USER account.
//
// @Summary      Register
// @Tags         auth
// @Accept       x-www-form-urlencoded,json
// @Param        body  body      credentialsForm  true  "New account"
// @Success      302   {string}  string  "redirect to /login"
// @Failure      400   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form credentialsForm
	if err := bindForm(c, &form); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	if _, err := h.accounts.Register(c.Request().Context(), form.Username, form.Password); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationResult(err)).Inc()
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("created").Inc()

	return c.Redirect(http.StatusFound, "/login")
}

// Dashboard is the landing page after login.
func (h *AuthHandler) Dashboard(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/overview")
}

// currentToken returns the token the request was made with, if any.
func (h *AuthHandler) currentToken(c echo.Context) string {
	if token := middleware.CurrentState(c).Token; token != "" {
		return token
	}
	return session.TokenFromRequest(c.Request(), h.cookie)
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "unknown_user"
	case errors.Is(err, domain.ErrBadCredential):
		return "bad_credential"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	}
	return "error"
}

func registrationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return "duplicate"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	}
	return "error"
}
