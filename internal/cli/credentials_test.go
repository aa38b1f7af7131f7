package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectories string

func (f fakeDirectories) UserHomeDir() (string, error) { return string(f), nil }

func TestCredentialsStore(t *testing.T) {
	home := t.TempDir()
	store, err := NewCredentialsStore(fakeDirectories(home))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".formulaic", "credentials.json"), string(store))

	require.NoError(t, store.Save("https://formulaic.app", "key1"))
	require.NoError(t, store.Save("http://localhost:3000/", "key2"))

	got, err := store.Load("formulaic.app")
	require.NoError(t, err)
	assert.Equal(t, "key1", got)

	got, err = store.Load("localhost:3000")
	require.NoError(t, err)
	assert.Equal(t, "key2", got)

	info, err := os.Stat(string(store))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCredentialsStore_Overwrite(t *testing.T) {
	store := CredentialsStore(filepath.Join(t.TempDir(), "creds.json"))

	require.NoError(t, store.Save("formulaic.app", "old"))
	require.NoError(t, store.Save("formulaic.app", "new"))

	got, err := store.Load("formulaic.app")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestCredentialsStore_NotFound(t *testing.T) {
	store := CredentialsStore(filepath.Join(t.TempDir(), "creds.json"))

	_, err := store.Load("formulaic.app")
	assert.ErrorContains(t, err, "credentials for formulaic.app not found")
}

func TestCredentialsStore_Corrupt(t *testing.T) {
	store := CredentialsStore(filepath.Join(t.TempDir(), "creds.json"))
	require.NoError(t, os.WriteFile(string(store), []byte("{"), 0o600))

	_, err := store.Load("formulaic.app")
	assert.ErrorContains(t, err, "reading credentials config")
}
