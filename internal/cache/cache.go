// Package cache stores raw fetched documents between runs so repeated
// requests for the same day never hit the upstream platform twice. Values
// are s2-compressed; publication XML compresses to a small fraction of its
// wire size.
package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/s2"
)

// DocumentCache is a badger-backed key/value store for raw documents.
type DocumentCache struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens (or creates) a cache at dir. Entries expire after ttl; a
// non-positive ttl keeps them forever.
func Open(dir string, ttl time.Duration) (*DocumentCache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache at %s: %w", dir, err)
	}
	return &DocumentCache{db: db, ttl: ttl}, nil
}

// Get returns the cached document for key. The second return reports
// whether the key was present.
func (c *DocumentCache) Get(key string) ([]byte, bool, error) {
	var compressed []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		compressed, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache read failed: %w", err)
	}

	raw, err := s2.Decode(nil, compressed)
	if err != nil {
		// A corrupt entry behaves like a miss; the next Put repairs it.
		slog.Warn("discarding corrupt cache entry", slog.String("key", key))
		return nil, false, nil
	}
	return raw, true, nil
}

// Put stores a document under key.
func (c *DocumentCache) Put(key string, value []byte) error {
	compressed := s2.Encode(nil, value)
	err := c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), compressed)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("cache write failed: %w", err)
	}
	return nil
}

// Close releases the underlying store.
func (c *DocumentCache) Close() error {
	return c.db.Close()
}
