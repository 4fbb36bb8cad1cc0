package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready — readiness probe.
// Checks the billing backend and, when configured, the Redis session store.
type ReadinessHandler struct {
	backendURL string
	redis      *redis.Client // nil when the file session store is in use
	http       *http.Client
}

func NewReadinessHandler(backendURL string, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{
		backendURL: backendURL,
		redis:      rdb,
		http:       &http.Client{Timeout: 3 * time.Second},
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	deps["backend"] = h.checkBackend(ctx)
	if deps["backend"].Status != "ok" {
		healthy = false
	}

	if h.redis != nil {
		status := dependencyStatus{Status: "ok"}
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status = dependencyStatus{Status: "down", Error: err.Error()}
			healthy = false
		}
		deps["redis"] = status
	}

	code := http.StatusOK
	overall := "ready"
	if !healthy {
		code = http.StatusServiceUnavailable
		overall = "degraded"
	}
	return c.JSON(code, readinessResponse{Status: overall, Dependencies: deps})
}

func (h *ReadinessHandler) checkBackend(ctx context.Context) dependencyStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.backendURL+"/health", nil)
	if err != nil {
		return dependencyStatus{Status: "down", Error: err.Error()}
	}
	res, err := h.http.Do(req)
	if err != nil {
		return dependencyStatus{Status: "down", Error: err.Error()}
	}
	res.Body.Close()
	if res.StatusCode >= 500 {
		return dependencyStatus{Status: "down", Error: res.Status}
	}
	return dependencyStatus{Status: "ok"}
}
