package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/showroom/vehicle-catalog/internal/api/metrics"
	"github.com/showroom/vehicle-catalog/internal/core/domain"
	"github.com/showroom/vehicle-catalog/internal/session"
)

// RedirectError is returned by a guard that sends the client elsewhere
// instead of failing the request.
type RedirectError struct {
	Location string
}

func (e *RedirectError) Error() string {
	return "redirect to " + e.Location
}

// Guard is a single access check. Guards only inspect the session state;
// they never write to the response.
type Guard struct {
	name  string
	check func(session.State) error
}

func (g Guard) Name() string { return g.name }

// Check returns nil when state passes the guard.
func (g Guard) Check(state session.State) error {
	return g.check(state)
}

// NotAuthenticated sends signed-in clients to the dashboard.
func NotAuthenticated() Guard {
	return Guard{
		name: "not_authenticated",
		check: func(s session.State) error {
			if s.Authenticated() {
				return &RedirectError{Location: "/dashboard"}
			}
			return nil
		},
	}
}

// Authenticated sends anonymous clients to the login page.
func Authenticated() Guard {
	return Guard{
		name: "authenticated",
		check: func(s session.State) error {
			if !s.Authenticated() {
				return &RedirectError{Location: "/login"}
			}
			return nil
		},
	}
}

// HasRole rejects principals whose role is not role. It is always placed
// after Authenticated; an anonymous state is treated as forbidden.
func HasRole(role domain.Role) Guard {
	return Guard{
		name: "role:" + string(role),
		check: func(s session.State) error {
			if !s.Authenticated() || s.Principal.Role != role {
				return domain.ErrForbidden
			}
			return nil
		},
	}
}

// Chain evaluates guards in order. The first failing guard decides the
// outcome and the handler is not called.
func Chain(guards ...Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := CurrentState(c)
			for _, g := range guards {
				err := g.Check(state)
				if err == nil {
					continue
				}
				metrics.GuardRejectionsTotal.WithLabelValues(g.Name()).Inc()

				var re *RedirectError
				if errors.As(err, &re) {
					return c.Redirect(http.StatusFound, re.Location)
				}
				return err
			}
			return next(c)
		}
	}
}
