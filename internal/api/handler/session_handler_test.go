package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/praxislex/billing-console/internal/core/domain"
	"github.com/praxislex/billing-console/internal/core/session"
)

// memStore is a trivial in-memory session store for handler tests.
type memStore struct {
	session domain.Session
}

func (s *memStore) Read(_ context.Context) (domain.Session, error) { return s.session, nil }
func (s *memStore) Write(_ context.Context, sess domain.Session) error {
	s.session = sess
	return nil
}
func (s *memStore) Clear(_ context.Context) error {
	s.session = domain.Session{}
	return nil
}

var discardLogger = zerolog.Nop()

func newSessionFixture(t *testing.T) (*SessionHandler, *session.Manager, *memStore) {
	t.Helper()
	store := &memStore{}
	mgr, err := session.NewManager(context.Background(), store, discardLogger)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	h := NewSessionHandler(mgr, domain.RoleAdmin, "/login", "/app/dashboard", discardLogger)
	return h, mgr, store
}

func get(t *testing.T, target string, fn echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	if err := fn(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestConfirmMagicLink_LogsInWithFixedRole(t *testing.T) {
	h, mgr, store := newSessionFixture(t)

	// The role claim inside the token must be ignored: the configured
	// default role wins.
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "ana@example.com",
		"role": domain.RoleIntern,
	}).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := get(t, "/auth/confirm?token="+signed, h.ConfirmMagicLink)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/app/dashboard" {
		t.Fatalf("expected redirect to landing, got %q", loc)
	}
	if !mgr.IsAuthenticated() {
		t.Fatal("expected an authenticated session")
	}
	if mgr.Role() != domain.RoleAdmin {
		t.Fatalf("expected fixed role %q, got %q", domain.RoleAdmin, mgr.Role())
	}
	if store.session.Token != signed {
		t.Fatal("token not persisted")
	}
}

func TestConfirmMagicLink_MissingTokenGoesToLogin(t *testing.T) {
	h, mgr, _ := newSessionFixture(t)

	rec := get(t, "/auth/confirm", h.ConfirmMagicLink)

	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to login, got %q", loc)
	}
	if mgr.IsAuthenticated() {
		t.Fatal("session created without a token")
	}
}

func TestConfirmMagicLink_OpaqueTokenStillLogsIn(t *testing.T) {
	// Tokens are not required to be JWTs; the subject peek is best-effort.
	h, mgr, _ := newSessionFixture(t)

	rec := get(t, "/auth/confirm?token=opaque-magic-token", h.ConfirmMagicLink)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if !mgr.IsAuthenticated() {
		t.Fatal("opaque token rejected")
	}
}

func TestVerifyEmail_MirrorsMagicLinkFlow(t *testing.T) {
	h, mgr, _ := newSessionFixture(t)

	rec := get(t, "/auth/verify?token=verification-token", h.VerifyEmail)

	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/app/dashboard" {
		t.Fatalf("expected redirect to landing, got %q", loc)
	}
	if mgr.Role() != domain.RoleAdmin {
		t.Fatalf("expected fixed role, got %q", mgr.Role())
	}
}

func TestLogout_ClearsSessionAndRedirects(t *testing.T) {
	h, mgr, store := newSessionFixture(t)
	if err := mgr.Login(context.Background(), "tok", domain.RolePartner); err != nil {
		t.Fatalf("login: %v", err)
	}

	rec := get(t, "/auth/logout", h.Logout)

	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to login, got %q", loc)
	}
	if mgr.IsAuthenticated() {
		t.Fatal("session survived logout")
	}
	if !store.session.Empty() {
		t.Fatal("durable storage survived logout")
	}
}
