package state

import (
	"errors"
	"strings"

	"github.com/praxislex/billing-console/internal/core/domain"
)

// genericFailure is shown when an error carries no usable message.
const genericFailure = "something went wrong, please try again"

// NormalizeError turns any settlement error into the human-readable string
// stored on the container. The backend's own message wins when present.
func NormalizeError(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return genericFailure
}

func isUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}
