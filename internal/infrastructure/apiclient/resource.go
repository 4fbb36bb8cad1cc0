package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/praxislex/billing-console/internal/core/domain"
	"github.com/praxislex/billing-console/internal/core/ports"
)

// Resource binds one backend collection (e.g. /api/v1/clients) to the
// generic CRUD port a state container drives.
type Resource[E domain.Entity] struct {
	client *Client
	path   string
}

// NewResource returns the binding for the collection mounted at path.
func NewResource[E domain.Entity](client *Client, path string) *Resource[E] {
	return &Resource[E]{client: client, path: path}
}

func (r *Resource[E]) List(ctx context.Context, params ports.ListParams) ([]E, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	for k, v := range params.Extra {
		q.Set(k, v)
	}

	path := r.path
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var items []E
	if err := r.client.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[E]) Get(ctx context.Context, id string) (E, error) {
	var item E
	err := r.client.do(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, &item)
	return item, err
}

func (r *Resource[E]) Create(ctx context.Context, payload any) (E, error) {
	var item E
	err := r.client.do(ctx, http.MethodPost, r.path, payload, &item)
	return item, err
}

func (r *Resource[E]) Update(ctx context.Context, id string, payload any) (E, error) {
	var item E
	err := r.client.do(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), payload, &item)
	return item, err
}

func (r *Resource[E]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil)
}
