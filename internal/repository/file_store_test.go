package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*FileProfileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user_settings.json")
	s, err := NewFileProfileStore(path)
	require.NoError(t, err)
	return s, path
}

func TestFileStoreLazyProfile(t *testing.T) {
	s, _ := newTestStore(t)

	p, err := s.Get(42)
	require.NoError(t, err)
	assert.False(t, p.Authorized)
	assert.Equal(t, 0, p.GeneratedCount)
	assert.Empty(t, p.RepNames)
}

func TestFileStorePersistsAcrossReload(t *testing.T) {
	s, path := newTestStore(t)

	require.NoError(t, s.SetAuthorized(42, true))
	require.NoError(t, s.SetUnlocked(42, "Ledger Live (Private)"))
	require.NoError(t, s.SetRepNames(42, []string{"Alice", "Bob"}))
	n, err := s.IncrementGenerated(42)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	reloaded, err := NewFileProfileStore(path)
	require.NoError(t, err)
	p, err := reloaded.Get(42)
	require.NoError(t, err)
	assert.True(t, p.Authorized)
	assert.True(t, p.Unlocked("Ledger Live (Private)"))
	assert.Equal(t, []string{"Alice", "Bob"}, p.RepNames)
	assert.Equal(t, 1, p.GeneratedCount)
}

func TestFileStoreGetReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.SetRepNames(1, []string{"Alice"}))

	p, err := s.Get(1)
	require.NoError(t, err)
	p.RepNames[0] = "Mallory"
	p.Authorized = true

	p2, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, p2.RepNames)
	assert.False(t, p2.Authorized)
}

func TestFileStoreAtomicWriteLeavesNoTemp(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, s.SetAuthorized(1, true))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStoreStats(t *testing.T) {
	s, _ := newTestStore(t)
	for i := 0; i < 3; i++ {
		_, err := s.IncrementGenerated(7)
		require.NoError(t, err)
	}
	_, err := s.IncrementGenerated(8)
	require.NoError(t, err)

	users, generated, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, users)
	assert.Equal(t, 4, generated)
}
