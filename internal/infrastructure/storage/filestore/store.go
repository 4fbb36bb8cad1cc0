// Package filestore persists the session in a small JSON file, the
// console's analogue of browser-local storage.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/praxislex/billing-console/internal/core/domain"
)

// Store writes the two session keys to a single JSON document. Writes go
// through a temp file and rename so readers never observe a half-written
// token/role pair.
type Store struct {
	path string
}

// New returns a store backed by the file at path. The file is created on
// first write.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Read(_ context.Context) (domain.Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Session{}, nil
		}
		return domain.Session{}, fmt.Errorf("read session file: %w", err)
	}

	var kv map[string]string
	if err := json.Unmarshal(raw, &kv); err != nil {
		return domain.Session{}, fmt.Errorf("decode session file: %w", err)
	}

	sess := domain.Session{
		Token: kv[domain.SessionKeyToken],
		Role:  kv[domain.SessionKeyRole],
	}
	// Both keys must be present for the session to count.
	if sess.Token == "" || sess.Role == "" {
		return domain.Session{}, nil
	}
	return sess, nil
}

func (s *Store) Write(_ context.Context, sess domain.Session) error {
	raw, err := json.Marshal(map[string]string{
		domain.SessionKeyToken: sess.Token,
		domain.SessionKeyRole:  sess.Role,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session file: %w", err)
	}
	return nil
}
