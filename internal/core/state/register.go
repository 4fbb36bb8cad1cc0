package state

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/praxislex/billing-console/internal/api/metrics"
	"github.com/praxislex/billing-console/internal/core/ports"
)

// RegisterSnapshot is the registration flow's visible state. There is no
// entity collection to manage, only pass/fail feedback for the form.
type RegisterSnapshot struct {
	Status       Status `json:"status"`
	Err          string `json:"error,omitempty"`
	Unauthorized bool   `json:"unauthorized,omitempty"`
}

// RegisterFlow is the single-action specialization of the container state
// machine: same status lifecycle, same generation discipline, one operation.
type RegisterFlow struct {
	svc ports.RegistrationService
	log zerolog.Logger

	mu           sync.Mutex
	gen          uint64
	status       Status
	err          string
	unauthorized bool
}

// NewRegisterFlow builds the sign-up flow over the given binding.
func NewRegisterFlow(svc ports.RegistrationService, log zerolog.Logger) *RegisterFlow {
	return &RegisterFlow{svc: svc, log: log, status: StatusIdle}
}

// Snapshot returns the current flow state.
func (f *RegisterFlow) Snapshot() RegisterSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Submit runs the registration action. Like container ops it never returns
// an error: the outcome lands in the snapshot, and a submission superseded
// by a newer one is discarded.
func (f *RegisterFlow) Submit(ctx context.Context, input ports.RegisterInput) RegisterSnapshot {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.status = StatusLoading
	f.err = ""
	f.unauthorized = false
	f.mu.Unlock()

	metrics.ResourceOpsTotal.WithLabelValues("registration", "create").Inc()
	started := time.Now()

	err := f.svc.Register(ctx, input)
	metrics.ResourceOpDuration.WithLabelValues("create").Observe(time.Since(started).Seconds())

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		metrics.StaleResultsTotal.WithLabelValues("registration").Inc()
		return f.snapshotLocked()
	}

	if err != nil {
		f.status = StatusFailed
		f.err = NormalizeError(err)
		f.unauthorized = isUnauthorized(err)
		metrics.ResourceOpErrorsTotal.WithLabelValues("registration", "create").Inc()
		f.log.Warn().Err(err).Msg("registration failed")
	} else {
		f.status = StatusSucceeded
		f.err = ""
		f.log.Info().Str("email", input.Email).Msg("registration submitted")
	}
	return f.snapshotLocked()
}

// Reset returns the flow to idle with the error cleared. Used when the user
// edits the form again after a failure. It claims a new generation so any
// in-flight submission is discarded when it settles.
func (f *RegisterFlow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.status = StatusIdle
	f.err = ""
	f.unauthorized = false
}

func (f *RegisterFlow) snapshotLocked() RegisterSnapshot {
	return RegisterSnapshot{Status: f.status, Err: f.err, Unauthorized: f.unauthorized}
}
