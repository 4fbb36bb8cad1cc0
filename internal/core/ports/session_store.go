package ports

import (
	"context"

	"github.com/praxislex/billing-console/internal/core/domain"
)

// SessionStore is the durable key-value storage behind the session manager.
// It holds exactly two keys (token, userRole) and is read once at startup.
// Store failures are fatal to login/logout and must propagate unwrapped in
// meaning: there is no retry or fallback layer above this port.
type SessionStore interface {
	// Read loads the persisted session. A store with neither key present
	// returns the empty session and no error.
	Read(ctx context.Context) (domain.Session, error)
	// Write persists both fields atomically.
	Write(ctx context.Context, s domain.Session) error
	// Clear removes both keys.
	Clear(ctx context.Context) error
}
