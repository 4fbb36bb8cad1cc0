package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BackendURL is the base URL of the billing backend API this console
	// talks to for all resource CRUD and auth operations.
	BackendURL string `env:"BACKEND_URL, default=http://localhost:9000"`

	// MagicLinkRole is the role assigned when a user signs in through a
	// magic-link or email-verification token. The role is fixed by
	// configuration, not derived from the token.
	MagicLinkRole string `env:"MAGIC_LINK_ROLE, default=admin"`

	Routes  RoutesConfig
	Session SessionConfig
	Redis   RedisConfig
}

// RoutesConfig names the three redirect targets used by the guards.
type RoutesConfig struct {
	LoginPath     string `env:"ROUTE_LOGIN,     default=/login"`
	LandingPath   string `env:"ROUTE_LANDING,   default=/app/dashboard"`
	ForbiddenPath string `env:"ROUTE_FORBIDDEN, default=/forbidden"`
}

type SessionConfig struct {
	// Backend selects the durable session store: "file" or "redis".
	Backend string `env:"SESSION_BACKEND, default=file"`
	// File is the path of the session file when Backend is "file".
	File string `env:"SESSION_FILE, default=.console-session.json"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
