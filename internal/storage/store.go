package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/danielsampar12/pomodorio/internal/core/model"
)

const storeFileName = "store.json"

// Store keys for the persisted records.
const (
	KeySettings   = "settings"
	KeyStats      = "stats"
	KeyLastOpened = "last_opened"
)

// ErrNoSuchKey indicates the requested field does not exist in the store.
var ErrNoSuchKey = eris.New("no such key in store")

// ErrCorruptRecord indicates a stored record does not match the expected shape.
var ErrCorruptRecord = eris.New("corrupt store record")

// Store is the narrow persistence surface the core components depend on.
type Store interface {
	Get(key string, out any) error
	Set(key string, value any) error
}

// FileStore persists named JSON records in a single file under the
// application data directory. Missing fields are seeded with defaults
// when the store is opened.
type FileStore struct {
	mu     sync.Mutex
	path   string
	fields map[string]json.RawMessage
}

// Open loads or creates the store file inside dataDir. On first use the
// settings, stats and last_opened fields are seeded with their defaults.
func Open(dataDir string) (*FileStore, error) {
	path := filepath.Join(dataDir, storeFileName)

	store := &FileStore{
		path:   path,
		fields: make(map[string]json.RawMessage),
	}

	rawData, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, eris.Wrapf(err, "read store file: %s", path)
	}
	if err == nil {
		if err := json.Unmarshal(rawData, &store.fields); err != nil {
			return nil, eris.Wrapf(ErrCorruptRecord, "parse store file %s: %v", path, err)
		}
		if store.fields == nil {
			store.fields = make(map[string]json.RawMessage)
		}
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	seeded, err := store.seedDefaultsLocked()
	if err != nil {
		return nil, err
	}
	if seeded {
		if err := store.flushLocked(); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// Path returns the location of the backing file.
func (store *FileStore) Path() string {
	return store.path
}

// Get decodes the record stored under key into out.
func (store *FileStore) Get(key string, out any) error {
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

// Set encodes value under key and writes the store file.
func (store *FileStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return eris.Wrapf(err, "encode %q", key)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.fields[key] = raw
	return store.flushLocked()
}

func (store *FileStore) seedDefaultsLocked() (bool, error) {
	defaults := map[string]any{
		KeySettings:   model.DefaultSettings(),
		KeyStats:      model.Stats{},
		KeyLastOpened: time.Now().UTC(),
	}

	seeded := false
	for key, value := range defaults {
		if _, ok := store.fields[key]; ok {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return false, eris.Wrapf(err, "encode default %q", key)
		}
		store.fields[key] = raw
		seeded = true
	}
	return seeded, nil
}

func (store *FileStore) flushLocked() error {
	serialized, err := json.MarshalIndent(store.fields, "", "  ")
	if err != nil {
		return eris.Wrap(err, "marshal store")
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return eris.Wrap(err, "create data directory")
	}
	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return eris.Wrapf(err, "write store file: %s", store.path)
	}
	return nil
}
