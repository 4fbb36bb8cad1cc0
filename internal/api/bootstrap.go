package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/praxislex/billing-console/internal/core/ports"
	"github.com/praxislex/billing-console/internal/core/session"
	"github.com/praxislex/billing-console/internal/infrastructure/storage/filestore"
	"github.com/praxislex/billing-console/internal/infrastructure/storage/redisstore"
	"github.com/praxislex/billing-console/internal/pkg/config"
)

// Bootstrap builds the session store selected by configuration, restores the
// session from it, and returns the fully wired router. The logout hook shuts
// the Echo instance down so the embedding process restarts with a clean
// slate — the server-side analogue of the console's full-reload teardown.
func Bootstrap(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	var store ports.SessionStore
	var rdb *redis.Client

	switch cfg.Session.Backend {
	case "redis":
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		rdb = client
		store = redisstore.New(client)
	case "file", "":
		store = filestore.New(cfg.Session.File)
	default:
		return nil, fmt.Errorf("session store: unknown backend %q", cfg.Session.Backend)
	}

	var e *echo.Echo
	sessions, err := session.NewManager(ctx, store, log, session.WithLogoutHook(func() {
		if e != nil {
			go func() { _ = e.Shutdown(context.Background()) }()
		}
	}))
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	e = NewRouter(cfg, sessions, rdb, log)
	return e, nil
}
