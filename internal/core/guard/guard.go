// Package guard implements the route authorization decisions: whether a
// protected view renders or the user is redirected. Decisions are pure and
// computed from the live session on every call.
package guard

import "github.com/praxislex/billing-console/internal/core/domain"

// SessionReader is the narrow view of the session manager the guards need.
type SessionReader interface {
	Current() domain.Session
}

// Decision is the outcome of a guard check: render the view, or redirect.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

func render() Decision {
	return Decision{Allowed: true}
}

func redirect(path string) Decision {
	return Decision{RedirectTo: path}
}

// Guard bundles the session source with the three redirect targets.
type Guard struct {
	Sessions      SessionReader
	LoginPath     string
	LandingPath   string
	ForbiddenPath string
}

// RequireAuthenticated allows authenticated sessions and sends everyone else
// to the login entry point.
func (g Guard) RequireAuthenticated() Decision {
	if g.Sessions.Current().Authenticated() {
		return render()
	}
	return redirect(g.LoginPath)
}

// RequireUnauthenticated keeps signed-in users off login and registration
// screens by redirecting them to the landing page.
func (g Guard) RequireUnauthenticated() Decision {
	if g.Sessions.Current().Authenticated() {
		return redirect(g.LandingPath)
	}
	return render()
}

// RequireRole checks authentication first, always; only then is the role
// compared against the allow-list. An empty allow-list admits any
// authenticated role.
func (g Guard) RequireRole(allowed ...string) Decision {
	s := g.Sessions.Current()
	if !s.Authenticated() {
		return redirect(g.LoginPath)
	}
	if len(allowed) == 0 {
		return render()
	}
	for _, role := range allowed {
		if s.Role == role {
			return render()
		}
	}
	return redirect(g.ForbiddenPath)
}
