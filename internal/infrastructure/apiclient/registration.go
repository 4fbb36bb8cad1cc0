package apiclient

import (
	"context"
	"net/http"

	"github.com/praxislex/billing-console/internal/core/ports"
)

const registerPath = "/auth/register"

// Registration is the sign-up binding driven by the registration flow.
type Registration struct {
	client *Client
}

// NewRegistration wraps the shared client.
func NewRegistration(client *Client) *Registration {
	return &Registration{client: client}
}

func (r *Registration) Register(ctx context.Context, input ports.RegisterInput) error {
	return r.client.do(ctx, http.MethodPost, registerPath, input, nil)
}
