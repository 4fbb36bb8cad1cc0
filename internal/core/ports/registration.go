package ports

import "context"

// RegisterInput is the sign-up payload forwarded to the backend.
type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// RegistrationService submits a sign-up request. The registration flow
// container owns the pass/fail lifecycle around this single action.
type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) error
}
