// Package state implements the shared asynchronous status state machine used
// by every resource collection and the registration flow. One Container per
// resource type drives list/get/create/update/delete against its service
// binding; all of them share the idle/loading/succeeded/failed lifecycle and
// the generation-counter rule that makes the newest dispatch win.
package state

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/praxislex/billing-console/internal/api/metrics"
	"github.com/praxislex/billing-console/internal/core/domain"
	"github.com/praxislex/billing-console/internal/core/ports"
)

// Status is the lifecycle state of a container.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Snapshot is an immutable copy of a container's state. Items preserve
// insertion order. On failure Items retains the last-known-good entities;
// errors never blank out previously loaded data.
type Snapshot[E domain.Entity] struct {
	Status Status `json:"status"`
	Err    string `json:"error,omitempty"`
	// Unauthorized is set when the last failure was a 401-style rejection,
	// so the caller can decide whether to force a logout.
	Unauthorized bool `json:"unauthorized,omitempty"`
	Items        []E  `json:"items"`
}

// Container manages one resource type's entities and lifecycle. All methods
// are safe for concurrent use. Operations block until their settlement; the
// generation counter, claimed at dispatch time under the container lock,
// guarantees that a later dispatch supersedes an earlier one regardless of
// which service call completes first.
type Container[E domain.Entity] struct {
	name string
	svc  ports.ResourceService[E]
	log  zerolog.Logger

	mu           sync.Mutex
	gen          uint64
	status       Status
	err          string
	unauthorized bool
	order        []string
	items        map[string]E
	subs         map[int]func(Snapshot[E])
	nextSub      int
}

// New builds a container for the named resource over the given binding.
func New[E domain.Entity](name string, svc ports.ResourceService[E], log zerolog.Logger) *Container[E] {
	return &Container[E]{
		name:   name,
		svc:    svc,
		log:    log.With().Str("resource", name).Logger(),
		status: StatusIdle,
		items:  make(map[string]E),
		subs:   make(map[int]func(Snapshot[E])),
	}
}

// Name returns the resource name this container manages.
func (c *Container[E]) Name() string { return c.name }

// Snapshot returns a copy of the current state.
func (c *Container[E]) Snapshot() Snapshot[E] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Entity returns the entity with the given id, if loaded.
func (c *Container[E]) Entity(id string) (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[id]
	return e, ok
}

// Subscribe registers fn to run after every state change. The returned
// function cancels the subscription.
func (c *Container[E]) Subscribe(fn func(Snapshot[E])) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// List fetches the full collection. On success the result replaces the
// entire entity set.
func (c *Container[E]) List(ctx context.Context, params ports.ListParams) Snapshot[E] {
	gen, started := c.dispatch("list")
	items, err := c.svc.List(ctx, params)
	return c.settle(gen, "list", started, err, func() {
		c.order = c.order[:0]
		c.items = make(map[string]E, len(items))
		for _, e := range items {
			c.upsertLocked(e)
		}
	})
}

// Get fetches a single entity and upserts it.
func (c *Container[E]) Get(ctx context.Context, id string) Snapshot[E] {
	gen, started := c.dispatch("get")
	e, err := c.svc.Get(ctx, id)
	return c.settle(gen, "get", started, err, func() {
		c.upsertLocked(e)
	})
}

// Create submits a new entity and upserts the backend's version of it.
func (c *Container[E]) Create(ctx context.Context, payload any) Snapshot[E] {
	gen, started := c.dispatch("create")
	e, err := c.svc.Create(ctx, payload)
	return c.settle(gen, "create", started, err, func() {
		c.upsertLocked(e)
	})
}

// Update submits changes to an entity and upserts the result.
func (c *Container[E]) Update(ctx context.Context, id string, payload any) Snapshot[E] {
	gen, started := c.dispatch("update")
	e, err := c.svc.Update(ctx, id, payload)
	return c.settle(gen, "update", started, err, func() {
		c.upsertLocked(e)
	})
}

// Delete removes an entity.
func (c *Container[E]) Delete(ctx context.Context, id string) Snapshot[E] {
	gen, started := c.dispatch("delete")
	err := c.svc.Delete(ctx, id)
	return c.settle(gen, "delete", started, err, func() {
		c.removeLocked(id)
	})
}

// dispatch claims a new generation, enters loading and clears the previous
// error. Dispatching while a prior op is still in flight is allowed: the new
// generation simply supersedes it.
func (c *Container[E]) dispatch(op string) (uint64, time.Time) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.status = StatusLoading
	c.err = ""
	c.unauthorized = false
	snap := c.snapshotLocked()
	subs := c.subscribersLocked()
	c.mu.Unlock()

	metrics.ResourceOpsTotal.WithLabelValues(c.name, op).Inc()
	emit(subs, snap)
	return gen, time.Now()
}

// settle applies an operation's outcome only if no newer generation has been
// dispatched in the meantime. Stale settlements are discarded silently.
func (c *Container[E]) settle(gen uint64, op string, started time.Time, err error, apply func()) Snapshot[E] {
	metrics.ResourceOpDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())

	c.mu.Lock()
	if gen != c.gen {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		metrics.StaleResultsTotal.WithLabelValues(c.name).Inc()
		c.log.Debug().Str("op", op).Uint64("generation", gen).Msg("stale result discarded")
		return snap
	}

	if err != nil {
		c.status = StatusFailed
		c.err = NormalizeError(err)
		c.unauthorized = isUnauthorized(err)
	} else {
		apply()
		c.status = StatusSucceeded
		c.err = ""
	}
	snap := c.snapshotLocked()
	subs := c.subscribersLocked()
	c.mu.Unlock()

	if err != nil {
		metrics.ResourceOpErrorsTotal.WithLabelValues(c.name, op).Inc()
		c.log.Warn().Err(err).Str("op", op).Msg("resource operation failed")
	}
	emit(subs, snap)
	return snap
}

func (c *Container[E]) upsertLocked(e E) {
	id := e.EntityID()
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = e
}

func (c *Container[E]) removeLocked(id string) {
	if _, exists := c.items[id]; !exists {
		return
	}
	delete(c.items, id)
	for i, other := range c.order {
		if other == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Container[E]) snapshotLocked() Snapshot[E] {
	items := make([]E, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, c.items[id])
	}
	return Snapshot[E]{
		Status:       c.status,
		Err:          c.err,
		Unauthorized: c.unauthorized,
		Items:        items,
	}
}

func (c *Container[E]) subscribersLocked() []func(Snapshot[E]) {
	subs := make([]func(Snapshot[E]), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

func emit[E domain.Entity](subs []func(Snapshot[E]), snap Snapshot[E]) {
	for _, fn := range subs {
		fn(snap)
	}
}
