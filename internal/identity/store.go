package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound marks the first run: no identity has been persisted yet.
var ErrNotFound = errors.New("identity not found")

// Record is the durable identity state. Registered tracks whether the
// remote account creation has succeeded, so a failed first-run
// registration stays retryable across process restarts.
type Record struct {
	ID         string `json:"account_id"`
	Registered bool   `json:"registered"`
}

// Store persists the single account identity. Save must write the record
// so Load reads it back identical.
type Store interface {
	Load(ctx context.Context) (Record, error)
	Save(ctx context.Context, rec Record) error
}

// FileStore keeps the identity in one flat file, written atomically.
type FileStore struct {
	path string
}

// NewFileStore builds a file-backed identity store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted identity. A missing file means first run. A
// file holding a bare id predates the registration flag; it reads as
// unregistered so the explicit retry path stays open.
func (s *FileStore) Load(_ context.Context) (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("read identity file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		rec = Record{ID: strings.TrimSpace(string(data))}
	}
	if rec.ID == "" {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Save writes the identity via a temp file and rename so a crash can never
// leave a half-written record.
func (s *FileStore) Save(_ context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create identity dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".identity-*")
	if err != nil {
		return fmt.Errorf("create identity temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write identity: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close identity temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist identity: %w", err)
	}
	return nil
}

// MemoryStore holds the identity in memory, for tests.
type MemoryStore struct {
	mu  sync.RWMutex
	rec Record
}

// NewMemoryStore builds an empty in-memory identity store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rec.ID == "" {
		return Record{}, ErrNotFound
	}
	return s.rec, nil
}

func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec
	return nil
}
