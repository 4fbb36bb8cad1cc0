package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/praxislex/billing-console/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub store
// ---------------------------------------------------------------------------

type stubStore struct {
	session  domain.Session
	writeErr error
	clearErr error
	readErr  error
}

func (s *stubStore) Read(_ context.Context) (domain.Session, error) {
	if s.readErr != nil {
		return domain.Session{}, s.readErr
	}
	return s.session, nil
}

func (s *stubStore) Write(_ context.Context, sess domain.Session) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.session = sess
	return nil
}

func (s *stubStore) Clear(_ context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.session = domain.Session{}
	return nil
}

var discardLogger = zerolog.Nop()

func newTestManager(t *testing.T, store *stubStore, opts ...Option) *Manager {
	t.Helper()
	m, err := NewManager(context.Background(), store, discardLogger, opts...)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

// ---------------------------------------------------------------------------
// Login / logout
// ---------------------------------------------------------------------------

func TestManager_LoginThenLogout(t *testing.T) {
	store := &stubStore{}
	m := newTestManager(t, store)

	if m.IsAuthenticated() {
		t.Fatal("fresh manager must not be authenticated")
	}

	if err := m.Login(context.Background(), "tok-1", domain.RolePartner); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !m.IsAuthenticated() {
		t.Fatal("expected authenticated after login")
	}
	if got := m.Current(); got.Token != "tok-1" || got.Role != domain.RolePartner {
		t.Fatalf("unexpected session: %+v", got)
	}
	if store.session.Token != "tok-1" || store.session.Role != domain.RolePartner {
		t.Fatalf("session not persisted: %+v", store.session)
	}

	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if m.IsAuthenticated() {
		t.Fatal("expected unauthenticated after logout")
	}
	if got := m.Current(); got.Token != "" || got.Role != "" {
		t.Fatalf("session not cleared: %+v", got)
	}
	if !store.session.Empty() {
		t.Fatalf("durable storage not cleared: %+v", store.session)
	}
}

func TestManager_LoginRejectsIncompletePair(t *testing.T) {
	store := &stubStore{}
	m := newTestManager(t, store)

	if err := m.Login(context.Background(), "tok", ""); !errors.Is(err, domain.ErrIncompleteSession) {
		t.Fatalf("expected ErrIncompleteSession, got %v", err)
	}
	if err := m.Login(context.Background(), "", domain.RoleAdmin); !errors.Is(err, domain.ErrIncompleteSession) {
		t.Fatalf("expected ErrIncompleteSession, got %v", err)
	}
	if m.IsAuthenticated() {
		t.Fatal("incomplete login must not authenticate")
	}
	if !store.session.Empty() {
		t.Fatal("incomplete login must not touch storage")
	}
}

func TestManager_StoreWriteFailureIsFatalToLogin(t *testing.T) {
	boom := errors.New("disk full")
	store := &stubStore{writeErr: boom}
	m := newTestManager(t, store)

	if err := m.Login(context.Background(), "tok", domain.RoleAdmin); !errors.Is(err, boom) {
		t.Fatalf("expected write error to propagate, got %v", err)
	}
	// Memory stays behind durable state, never ahead of it.
	if m.IsAuthenticated() {
		t.Fatal("failed login must not update in-memory session")
	}
}

func TestManager_StoreClearFailureIsFatalToLogout(t *testing.T) {
	store := &stubStore{}
	m := newTestManager(t, store)
	if err := m.Login(context.Background(), "tok", domain.RoleAdmin); err != nil {
		t.Fatalf("login: %v", err)
	}

	boom := errors.New("store gone")
	store.clearErr = boom
	if err := m.Logout(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected clear error to propagate, got %v", err)
	}
	if !m.IsAuthenticated() {
		t.Fatal("failed logout must leave the session in place")
	}
}

func TestManager_RestoresPersistedSession(t *testing.T) {
	store := &stubStore{session: domain.Session{Token: "tok-7", Role: domain.RoleAdmin}}
	m := newTestManager(t, store)

	if !m.IsAuthenticated() {
		t.Fatal("expected session restored from storage")
	}
	if m.Role() != domain.RoleAdmin {
		t.Fatalf("expected role restored, got %q", m.Role())
	}
}

func TestManager_ReadFailureIsFatal(t *testing.T) {
	store := &stubStore{readErr: errors.New("corrupt store")}
	if _, err := NewManager(context.Background(), store, discardLogger); err == nil {
		t.Fatal("expected constructor to fail on store read error")
	}
}

// ---------------------------------------------------------------------------
// Observers
// ---------------------------------------------------------------------------

func TestManager_SubscribersSeeAtomicPairs(t *testing.T) {
	store := &stubStore{}
	m := newTestManager(t, store)

	var seen []domain.Session
	cancel := m.Subscribe(func(s domain.Session) {
		// Token and role always change together; no observer may catch a
		// half-written pair.
		if (s.Token == "") != (s.Role == "") {
			t.Errorf("observed torn session: %+v", s)
		}
		seen = append(seen, s)
	})
	defer cancel()

	if err := m.Login(context.Background(), "tok", domain.RoleIntern); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if !seen[0].Authenticated() || seen[1].Authenticated() {
		t.Fatalf("unexpected notification order: %+v", seen)
	}
}

func TestManager_CancelledSubscriberStopsReceiving(t *testing.T) {
	store := &stubStore{}
	m := newTestManager(t, store)

	count := 0
	cancel := m.Subscribe(func(domain.Session) { count++ })

	_ = m.Login(context.Background(), "tok", domain.RoleAdmin)
	cancel()
	_ = m.Logout(context.Background())

	if count != 1 {
		t.Fatalf("expected 1 notification after cancel, got %d", count)
	}
}

func TestManager_LogoutFiresTeardownHook(t *testing.T) {
	store := &stubStore{}
	fired := false
	m := newTestManager(t, store, WithLogoutHook(func() { fired = true }))

	_ = m.Login(context.Background(), "tok", domain.RoleAdmin)
	if fired {
		t.Fatal("hook must not fire on login")
	}

	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !fired {
		t.Fatal("teardown hook not fired on logout")
	}
}

func TestManager_HookSkippedWhenClearFails(t *testing.T) {
	store := &stubStore{clearErr: errors.New("nope")}
	fired := false
	m := newTestManager(t, store, WithLogoutHook(func() { fired = true }))

	_ = m.Logout(context.Background())
	if fired {
		t.Fatal("teardown hook fired despite failed logout")
	}
}
