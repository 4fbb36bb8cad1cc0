package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/praxislex/billing-console/internal/core/guard"
)

// Authenticated gates a route group behind an active session. A deny
// decision becomes a 302 to the login entry point so the protected URL does
// not linger in the client's history.
func Authenticated(g guard.Guard) echo.MiddlewareFunc {
	return decide(func() guard.Decision {
		return g.RequireAuthenticated()
	})
}

// Unauthenticated keeps signed-in users off login and registration routes,
// bouncing them to the landing page.
func Unauthenticated(g guard.Guard) echo.MiddlewareFunc {
	return decide(func() guard.Decision {
		return g.RequireUnauthenticated()
	})
}

// Role enforces role-based access. Authentication is always checked first;
// an empty role list admits any authenticated user.
func Role(g guard.Guard, allowed ...string) echo.MiddlewareFunc {
	return decide(func() guard.Decision {
		return g.RequireRole(allowed...)
	})
}

// decide re-evaluates the guard on every request; decisions are never cached
// across requests.
func decide(check func() guard.Decision) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := check()
			if !d.Allowed {
				return c.Redirect(http.StatusFound, d.RedirectTo)
			}
			return next(c)
		}
	}
}
