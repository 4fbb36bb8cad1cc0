package guard

import (
	"testing"

	"github.com/praxislex/billing-console/internal/core/domain"
)

type stubSessions struct {
	session domain.Session
}

func (s *stubSessions) Current() domain.Session { return s.session }

func newGuard(session domain.Session) Guard {
	return Guard{
		Sessions:      &stubSessions{session: session},
		LoginPath:     "/login",
		LandingPath:   "/app/dashboard",
		ForbiddenPath: "/forbidden",
	}
}

func TestRequireAuthenticated(t *testing.T) {
	tests := []struct {
		name     string
		session  domain.Session
		allowed  bool
		redirect string
	}{
		{"authenticated renders", domain.Session{Token: "t", Role: "admin"}, true, ""},
		{"anonymous redirects to login", domain.Session{}, false, "/login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newGuard(tt.session).RequireAuthenticated()
			if d.Allowed != tt.allowed || d.RedirectTo != tt.redirect {
				t.Fatalf("got %+v", d)
			}
		})
	}
}

func TestRequireUnauthenticated(t *testing.T) {
	tests := []struct {
		name     string
		session  domain.Session
		allowed  bool
		redirect string
	}{
		{"anonymous renders", domain.Session{}, true, ""},
		{"authenticated redirects to landing", domain.Session{Token: "t", Role: "intern"}, false, "/app/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newGuard(tt.session).RequireUnauthenticated()
			if d.Allowed != tt.allowed || d.RedirectTo != tt.redirect {
				t.Fatalf("got %+v", d)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		session  domain.Session
		roles    []string
		allowed  bool
		redirect string
	}{
		{
			// Authentication is checked before role, so the anonymous user
			// goes to login, not to forbidden.
			"anonymous redirects to login even with roles set",
			domain.Session{}, []string{domain.RoleAdmin}, false, "/login",
		},
		{
			"wrong role redirects to forbidden",
			domain.Session{Token: "t", Role: domain.RoleAssociate}, []string{domain.RoleAdmin}, false, "/forbidden",
		},
		{
			"matching role renders",
			domain.Session{Token: "t", Role: domain.RoleAdmin}, []string{domain.RoleAdmin}, true, "",
		},
		{
			"any of several roles renders",
			domain.Session{Token: "t", Role: domain.RolePartner}, []string{domain.RoleAdmin, domain.RolePartner}, true, "",
		},
		{
			"empty allow-list admits any authenticated role",
			domain.Session{Token: "t", Role: domain.RoleIntern}, nil, true, "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newGuard(tt.session).RequireRole(tt.roles...)
			if d.Allowed != tt.allowed || d.RedirectTo != tt.redirect {
				t.Fatalf("got %+v", d)
			}
		})
	}
}
