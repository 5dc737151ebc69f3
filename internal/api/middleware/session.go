package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/showroom/vehicle-catalog/internal/session"
)

const stateKey = "session_state"

// Session resolves the request's session token and stores the resulting
// state in the echo context. The token is read from the session cookie, or
// from an "Authorization: Bearer" header when no cookie is present.
// Unknown and forged tokens resolve to Anonymous; only store failures abort
// the request.
func Session(m *session.Manager, opts session.CookieOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := session.TokenFromRequest(c.Request(), opts)
			if token == "" {
				token = bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			}

			state, err := m.Resolve(c.Request().Context(), token)
			if err != nil {
				return err
			}
			SetState(c, state)
			return next(c)
		}
	}
}

// SetState attaches state to the request.
func SetState(c echo.Context, state session.State) {
	c.Set(stateKey, state)
}

// CurrentState returns the state loaded by Session, or Anonymous.
func CurrentState(c echo.Context) session.State {
	s, ok := c.Get(stateKey).(session.State)
	if !ok {
		return session.Anonymous
	}
	return s
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
