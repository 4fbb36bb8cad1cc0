// Package redisstore persists the session in Redis, for deployments where
// the console shell runs behind more than one process.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/praxislex/billing-console/internal/core/domain"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// Store keeps the two session keys in Redis. Writes go through a
// transactional pipeline so both keys land atomically.
type Store struct {
	client *redis.Client
}

// New wraps an established Redis client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Read(ctx context.Context) (domain.Session, error) {
	vals, err := s.client.MGet(ctx, domain.SessionKeyToken, domain.SessionKeyRole).Result()
	if err != nil {
		return domain.Session{}, fmt.Errorf("read session: %w", err)
	}

	token, _ := vals[0].(string)
	role, _ := vals[1].(string)
	if token == "" || role == "" {
		return domain.Session{}, nil
	}
	return domain.Session{Token: token, Role: role}, nil
}

func (s *Store) Write(ctx context.Context, sess domain.Session) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, domain.SessionKeyToken, sess.Token, 0)
	pipe.Set(ctx, domain.SessionKeyRole, sess.Role, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, domain.SessionKeyToken, domain.SessionKeyRole).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
