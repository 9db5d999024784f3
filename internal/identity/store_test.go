package identity

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "identity")
	store := NewFileStore(path)
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("fresh store must report ErrNotFound, got %v", err)
	}

	rec := Record{ID: "3f1d9a6c-1111-2222-3333-444455556666", Registered: true}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != rec {
		t.Fatalf("record not read back identical: %+v vs %+v", got, rec)
	}
}

func TestFileStorePersistsRegistrationOutcome(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity")
	store := NewFileStore(path)
	ctx := context.Background()

	if err := store.Save(ctx, Record{ID: "acct"}); err != nil {
		t.Fatalf("save unregistered: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil || got.Registered {
		t.Fatalf("expected unregistered record, got %+v err=%v", got, err)
	}

	if err := store.Save(ctx, Record{ID: "acct", Registered: true}); err != nil {
		t.Fatalf("save registered: %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil || !got.Registered {
		t.Fatalf("registration outcome lost: %+v err=%v", got, err)
	}

	// No temp file debris left behind by the atomic write.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the identity file, found %d entries", len(entries))
	}
}

func TestFileStoreReadsBareIDAsUnregistered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity")
	if err := os.WriteFile(path, []byte("legacy-id\n"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	store := NewFileStore(path)
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != "legacy-id" || got.Registered {
		t.Fatalf("bare id must read as unregistered: %+v", got)
	}
}

func TestFileStoreTreatsEmptyFileAsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	store := NewFileStore(path)
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("blank file must read as first run, got %v", err)
	}
}
