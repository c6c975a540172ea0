package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	logger "github.com/turjubaan/turjubaan/log"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user_preferences.json")
	return NewStore(path, logger.NewLogger(nil, 0)), path
}

func TestGet_DefaultsToEnglish(t *testing.T) {
	store, _ := newTestStore(t)
	store.Load()

	assert.Equal(t, "en", store.Get(12345))
}

func TestSetPersistLoad_RoundTrip(t *testing.T) {
	store, path := newTestStore(t)
	store.Load()
	store.Set(1, "so")
	store.Set(2, "ar")

	// Simulate a restart with a fresh store over the same file.
	restarted := NewStore(path, logger.NewLogger(nil, 0))
	restarted.Load()

	assert.Equal(t, "so", restarted.Get(1))
	assert.Equal(t, "ar", restarted.Get(2))
	assert.Equal(t, "en", restarted.Get(3))
}

func TestLoad_MissingFileStartsEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	store.Load()

	assert.Equal(t, 0, store.Len())
}

func TestLoad_MalformedFileStartsEmpty(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{ not valid json }"), 0o644))

	store.Load()

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, "en", store.Get(1))
}

func TestLoad_SkipsNonNumericKeys(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"1":"so","bogus":"ar"}`), 0o644))

	store.Load()

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "so", store.Get(1))
}

func TestPersist_WritesStringKeysAtomically(t *testing.T) {
	store, path := newTestStore(t)
	store.Load()
	store.Set(42, "tr")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	raw := make(map[string]string)
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]string{"42": "tr"}, raw)

	// The temp file used for the atomic rename must not linger.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSet_OverwritesPriorValue(t *testing.T) {
	store, _ := newTestStore(t)
	store.Load()
	store.Set(7, "fr")
	store.Set(7, "hi")

	assert.Equal(t, "hi", store.Get(7))
	assert.Equal(t, 1, store.Len())
}
