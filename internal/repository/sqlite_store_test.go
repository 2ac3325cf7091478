package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) (*SQLiteProfileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.db")
	s, err := NewSQLiteProfileStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSQLiteStoreLazyProfile(t *testing.T) {
	s, _ := newSQLiteStore(t)

	p, err := s.Get(42)
	require.NoError(t, err)
	assert.False(t, p.Authorized)
	assert.Equal(t, 0, p.GeneratedCount)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s, path := newSQLiteStore(t)

	require.NoError(t, s.SetAuthorized(42, true))
	require.NoError(t, s.SetUnlocked(42, "Ledger Live (Private)"))
	require.NoError(t, s.SetRepNames(42, []string{"Alice", "Bob"}))
	n, err := s.IncrementGenerated(42)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = s.IncrementGenerated(42)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.Close())
	reopened, err := NewSQLiteProfileStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	p, err := reopened.Get(42)
	require.NoError(t, err)
	assert.True(t, p.Authorized)
	assert.True(t, p.Unlocked("Ledger Live (Private)"))
	assert.Equal(t, []string{"Alice", "Bob"}, p.RepNames)
	assert.Equal(t, 2, p.GeneratedCount)
}

func TestSQLiteStoreStats(t *testing.T) {
	s, _ := newSQLiteStore(t)
	_, err := s.IncrementGenerated(1)
	require.NoError(t, err)
	_, err = s.IncrementGenerated(2)
	require.NoError(t, err)

	users, generated, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, users)
	assert.Equal(t, 2, generated)
}
