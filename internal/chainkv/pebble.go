package chainkv

import (
	"fmt"
	"os"
	"sync"

	"github.com/cockroachdb/pebble"
)

// PebbleStore is a pebble-backed Store for production use.
type PebbleStore struct {
	mu sync.RWMutex
	db *pebble.DB
}

// OpenPebbleStore opens (creating if necessary) a pebble database at path.
func OpenPebbleStore(path string) (*PebbleStore, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("chainkv: create directory %s: %w", path, err)
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("chainkv: open pebble at %s: %w", path, err)
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Put(key, value []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.Set(key, value, pebble.Sync)
}

func (s *PebbleStore) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, closer, err := s.db.Get(key)
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *PebbleStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
