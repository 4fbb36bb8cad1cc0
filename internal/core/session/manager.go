// Package session owns the process-wide authentication session: a token and
// role pair persisted in a SessionStore and mirrored in memory. The manager
// is the single writer of the store; everything else reads through it.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/praxislex/billing-console/internal/core/domain"
	"github.com/praxislex/billing-console/internal/core/ports"
)

// Manager is the session accessor. Login and Logout are atomic with respect
// to observers: no reader ever sees a token without its role or vice versa.
type Manager struct {
	store ports.SessionStore
	log   zerolog.Logger

	// onLogout is the full-teardown signal fired after a logout completes.
	// The shell uses it to force a reload-style redirect so every piece of
	// in-memory state is discarded, not just the session.
	onLogout func()

	mu      sync.RWMutex
	current domain.Session
	subs    map[int]func(domain.Session)
	nextSub int
}

// Option customises manager construction.
type Option func(*Manager)

// WithLogoutHook sets the teardown signal fired after Logout succeeds.
func WithLogoutHook(fn func()) Option {
	return func(m *Manager) {
		if fn != nil {
			m.onLogout = fn
		}
	}
}

// NewManager reads the persisted session exactly once and returns a manager
// seeded with it. A store read failure is fatal: the caller gets the error
// and no manager.
func NewManager(ctx context.Context, store ports.SessionStore, log zerolog.Logger, opts ...Option) (*Manager, error) {
	persisted, err := store.Read(ctx)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		store:    store,
		log:      log,
		current:  persisted,
		subs:     make(map[int]func(domain.Session)),
		onLogout: func() {},
	}
	for _, opt := range opts {
		opt(m)
	}

	if persisted.Authenticated() {
		log.Info().Str("role", persisted.Role).Msg("session restored from storage")
	}
	return m, nil
}

// Current returns the in-memory session.
func (m *Manager) Current() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsAuthenticated is derived from the token, never cached separately.
func (m *Manager) IsAuthenticated() bool {
	return m.Current().Authenticated()
}

// Role returns the current role, empty when unauthenticated.
func (m *Manager) Role() string {
	return m.Current().Role
}

// Login persists token and role, then swaps the in-memory session. The store
// write happens first so a crash between the two steps leaves durable state
// ahead of memory, never behind it.
func (m *Manager) Login(ctx context.Context, token, role string) error {
	if token == "" || role == "" {
		return domain.ErrIncompleteSession
	}

	next := domain.Session{Token: token, Role: role}
	if err := m.store.Write(ctx, next); err != nil {
		m.log.Error().Err(err).Msg("session write failed")
		return err
	}

	m.mu.Lock()
	m.current = next
	subs := m.subscribersLocked()
	m.mu.Unlock()

	m.log.Info().Str("role", role).Msg("session established")
	notify(subs, next)
	return nil
}

// Logout clears durable storage and memory, notifies subscribers, then fires
// the teardown signal.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error().Err(err).Msg("session clear failed")
		return err
	}

	m.mu.Lock()
	m.current = domain.Session{}
	subs := m.subscribersLocked()
	m.mu.Unlock()

	m.log.Info().Msg("session cleared")
	notify(subs, domain.Session{})
	m.onLogout()
	return nil
}

// Subscribe registers fn to run after every session change. The returned
// function cancels the subscription.
func (m *Manager) Subscribe(fn func(domain.Session)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) subscribersLocked() []func(domain.Session) {
	subs := make([]func(domain.Session), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(domain.Session), s domain.Session) {
	for _, fn := range subs {
		fn(s)
	}
}
