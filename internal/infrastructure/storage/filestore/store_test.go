package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/praxislex/billing-console/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "session.json"))
}

func TestStore_MissingFileReadsEmpty(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !sess.Empty() {
		t.Fatalf("expected empty session, got %+v", sess)
	}
}

func TestStore_WriteReadRoundtrip(t *testing.T) {
	s := newTestStore(t)

	want := domain.Session{Token: "tok-9", Role: domain.RolePartner}
	if err := s.Write(context.Background(), want); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := s.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != want {
		t.Fatalf("roundtrip mismatch: got %+v want %+v", got, want)
	}
}

func TestStore_ClearRemovesBothKeys(t *testing.T) {
	s := newTestStore(t)
	_ = s.Write(context.Background(), domain.Session{Token: "t", Role: "admin"})

	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	sess, err := s.Read(context.Background())
	if err != nil {
		t.Fatalf("read after clear: %v", err)
	}
	if !sess.Empty() {
		t.Fatalf("session survived clear: %+v", sess)
	}

	// Clearing an already-clear store is not an error.
	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestStore_PartialRecordReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	// A token without its role never counts as a session.
	if err := os.WriteFile(path, []byte(`{"token":"orphan"}`), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	sess, err := New(path).Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !sess.Empty() {
		t.Fatalf("expected empty session for torn record, got %+v", sess)
	}
}

func TestStore_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if _, err := New(path).Read(context.Background()); err == nil {
		t.Fatal("expected decode error for corrupt file")
	}
}
