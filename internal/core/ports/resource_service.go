package ports

import (
	"context"

	"github.com/praxislex/billing-console/internal/core/domain"
)

// ListParams carries the query parameters forwarded to the backend's list
// endpoint. All fields are optional.
type ListParams struct {
	Search string
	Status string
	// Extra holds resource-specific query parameters (e.g. client_id for
	// matters and invoices).
	Extra map[string]string
}

// ResourceService is the CRUD binding a resource-state container drives.
// Implementations call the billing backend; errors should carry the
// backend's message when one is available (see domain.APIError).
type ResourceService[E domain.Entity] interface {
	List(ctx context.Context, params ListParams) ([]E, error)
	Get(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, payload any) (E, error)
	Update(ctx context.Context, id string, payload any) (E, error)
	Delete(ctx context.Context, id string) error
}
