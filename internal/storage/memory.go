package storage

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/danielsampar12/pomodorio/internal/core/model"
)

// MemStore is an in-memory Store used by tests. It honors the same
// default seeding as FileStore but never touches the filesystem.
type MemStore struct {
	mu     sync.Mutex
	fields map[string]json.RawMessage
}

// NewMemStore returns a MemStore seeded with default settings, zero stats
// and last_opened set to now.
func NewMemStore() *MemStore {
	store := &MemStore{fields: make(map[string]json.RawMessage)}
	for key, value := range map[string]any{
		KeySettings:   model.DefaultSettings(),
		KeyStats:      model.Stats{},
		KeyLastOpened: time.Now().UTC(),
	} {
		raw, _ := json.Marshal(value)
		store.fields[key] = raw
	}
	return store
}

// Get decodes the record stored under key into out.
func (store *MemStore) Get(key string, out any) error {
	store.mu.Lock()
	raw, ok := store.fields[key]
	store.mu.Unlock()

	if !ok {
		return eris.Wrapf(ErrNoSuchKey, "key %q", key)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return eris.Wrapf(ErrCorruptRecord, "decode %q: %v", key, err)
	}
	return nil
}

// Set encodes value under key.
func (store *MemStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return eris.Wrapf(err, "encode %q", key)
	}

	store.mu.Lock()
	store.fields[key] = raw
	store.mu.Unlock()
	return nil
}
