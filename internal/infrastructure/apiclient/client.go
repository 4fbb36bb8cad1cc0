// Package apiclient implements the service bindings over the billing
// backend's HTTP API. Successful responses wrap their payload in a "data"
// envelope; error responses carry a message the containers surface verbatim.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/praxislex/billing-console/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// TokenSource supplies the current session so requests carry the bearer
// token. The session manager satisfies it.
type TokenSource interface {
	Current() domain.Session
}

// Client is the shared HTTP transport all resource bindings go through.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     zerolog.Logger
}

// New builds a client for the backend at baseURL.
func New(baseURL string, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		log:     log,
	}
}

// envelope is the backend's standard success wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// errorBody covers the message shapes the backend is known to produce.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

// do performs a request and decodes the data envelope into out (out may be
// nil for operations without a response body). Non-2xx responses become a
// *domain.APIError carrying the backend's message when one was provided.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Current().Token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &domain.APIError{
			StatusCode: res.StatusCode,
			Message:    extractMessage(raw),
		}
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data payload: %w", err)
	}
	return nil
}

// extractMessage pulls the human-readable message out of an error response,
// checking the known nesting shapes in order.
func extractMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	switch {
	case body.Message != "":
		return body.Message
	case body.Data.Message != "":
		return body.Data.Message
	case body.Error != "":
		return body.Error
	}
	return ""
}
