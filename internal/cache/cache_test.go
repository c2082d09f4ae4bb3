package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Value float64 `json:"value"`
}

func TestPutAndGet(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Put("k", []sample{{Value: 1.5}}))

	entry, ok := store.Get("k", time.Minute)
	require.True(t, ok)

	var got []sample
	require.NoError(t, json.Unmarshal(entry.Data, &got))
	assert.Equal(t, []sample{{Value: 1.5}}, got)
	assert.Less(t, entry.Age(), time.Minute)
}

func TestGet_Missing(t *testing.T) {
	store := NewStore(t.TempDir())
	_, ok := store.Get("nope", time.Minute)
	assert.False(t, ok)
}

func TestGet_Stale(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	// Write an entry timestamped beyond the TTL.
	entry := Entry{
		Data:      json.RawMessage(`[]`),
		Timestamp: time.Now().Add(-10 * time.Minute),
	}
	data, err := json.Marshal(entry)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.json"), data, 0600))

	_, ok := store.Get("old", 5*time.Minute)
	assert.False(t, ok)

	// The same entry is usable under a longer cutoff.
	_, ok = store.Get("old", time.Hour)
	assert.True(t, ok)
}

func TestGet_Corrupt(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0600))

	_, ok := store.Get("bad", time.Minute)
	assert.False(t, ok)
}

func TestPut_Overwrites(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Put("k", sample{Value: 1}))
	require.NoError(t, store.Put("k", sample{Value: 2}))

	entry, ok := store.Get("k", time.Minute)
	require.True(t, ok)

	var got sample
	require.NoError(t, json.Unmarshal(entry.Data, &got))
	assert.Equal(t, 2.0, got.Value)
}

func TestDelete(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Put("k", sample{Value: 1}))
	require.NoError(t, store.Delete("k"))
	_, ok := store.Get("k", time.Minute)
	assert.False(t, ok)

	// Deleting again is fine.
	require.NoError(t, store.Delete("k"))
}

func TestHistoryKey(t *testing.T) {
	assert.Equal(t, "portfolio_history_day_5minute", HistoryKey("day", "5minute"))
}

func TestKeySanitized(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Put("../escape", sample{Value: 1}))
	_, ok := store.Get("../escape", time.Minute)
	assert.True(t, ok)
}
