// Package cache is a file-backed key-value store with caller-defined
// staleness. It persists fetched history series across runs so a fresh
// dashboard can paint instantly while the real fetch is in flight.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one cached payload with the time it was stored.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Age returns how long ago the entry was stored.
func (e *Entry) Age() time.Duration {
	return time.Since(e.Timestamp)
}

// Store reads and writes cache entries under a directory, one file per key.
type Store struct {
	Dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on the first Put.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// HistoryKey builds the cache key for a history series.
func HistoryKey(span, interval string) string {
	return fmt.Sprintf("portfolio_history_%s_%s", span, interval)
}

// Get returns the entry for key if it exists and is younger than maxAge.
// Corrupt or stale entries are treated as absent.
func (s *Store) Get(key string, maxAge time.Duration) (*Entry, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if entry.Timestamp.IsZero() || entry.Age() > maxAge {
		return nil, false
	}
	return &entry, true
}

// Put stores value under key with the current time. The cache directory is
// created with 0700 and entries are written with 0600.
func (s *Store) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	entry := Entry{Data: raw, Timestamp: time.Now()}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.Dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0600)
}

// Delete removes the entry for key. Missing entries are not an error.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// path maps a key to its file, replacing separators so keys can never
// escape the cache directory.
func (s *Store) path(key string) string {
	safe := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(key)
	return filepath.Join(s.Dir, safe+".json")
}
