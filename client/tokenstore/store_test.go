package tokenstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskbridge/go-task-server/client/tokenstore"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := tokenstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("abc123"))

	token, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, "abc123", token)
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := tokenstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("first"))
	require.NoError(t, store.Set("second"))

	token, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, "second", token)
}

func TestFileStoreGetWithoutSet(t *testing.T) {
	store, err := tokenstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	token, err := store.Get()
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestFileStoreClear(t *testing.T) {
	store, err := tokenstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("abc123"))
	require.NoError(t, store.Clear())

	token, err := store.Get()
	require.NoError(t, err)
	require.Empty(t, token)

	// Clearing an already-empty store is not an error
	require.NoError(t, store.Clear())
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := tokenstore.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("persistent-token"))

	reopened, err := tokenstore.NewFileStore(dir)
	require.NoError(t, err)

	token, err := reopened.Get()
	require.NoError(t, err)
	require.Equal(t, "persistent-token", token)
}

func TestFileStoreTokenFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := tokenstore.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("abc123"))

	info, err := os.Stat(filepath.Join(dir, "sessionId"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := tokenstore.NewMemoryStore()

	require.NoError(t, store.Set("abc123"))
	token, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, "abc123", token)

	require.NoError(t, store.Clear())
	token, err = store.Get()
	require.NoError(t, err)
	require.Empty(t, token)
}
