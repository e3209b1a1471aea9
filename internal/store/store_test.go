package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the contract every backend must satisfy.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Read(ctx, KeyHotels)
	require.NoError(t, err)
	assert.False(t, ok, "fresh slot must be absent")

	value := []byte(`[{"id":"h1","pricePerNight":5000}]`)
	require.NoError(t, s.Write(ctx, KeyHotels, value))

	got, ok, err := s.Read(ctx, KeyHotels)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, value, got)

	// An empty collection is present, not absent.
	require.NoError(t, s.Write(ctx, KeyPosts, []byte(`[]`)))
	got, ok, err = s.Read(ctx, KeyPosts)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, s.Remove(ctx, KeyHotels))
	_, ok, err = s.Read(ctx, KeyHotels)
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing twice is fine.
	require.NoError(t, s.Remove(ctx, KeyHotels))

	err = s.Write(ctx, Key("tw_bogus"), []byte(`1`))
	assert.True(t, errors.Is(err, ErrUnknownKey))
	_, _, err = s.Read(ctx, Key("tw_bogus"))
	assert.True(t, errors.Is(err, ErrUnknownKey))
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, 6)
	for _, k := range keys {
		assert.True(t, k.Valid(), "%s should be valid", k)
	}
	assert.False(t, Key("tw_other").Valid())
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_ReadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Write(ctx, KeyCars, []byte(`[1]`)))

	got, _, err := s.Read(ctx, KeyCars)
	require.NoError(t, err)
	got[0] = 'X'

	again, _, err := s.Read(ctx, KeyCars)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), again)
}

func TestFileStore(t *testing.T) {
	fs, err := OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	exerciseStore(t, fs)
}

func TestFileStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	fs, err := OpenFileStore(path)
	require.NoError(t, err)
	value := []byte(`[{"id":"c1","content":"<b>Hunza</b>"}]`)
	require.NoError(t, fs.Write(ctx, KeyPosts, value))
	require.NoError(t, fs.Write(ctx, KeySession, []byte(`{"id":"u1"}`)))
	require.NoError(t, fs.Remove(ctx, KeySession))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	got, ok, err := reopened.Read(ctx, KeyPosts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, value, got, "values must survive byte for byte")

	_, ok, err = reopened.Read(ctx, KeySession)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	fs, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, fs.Path())

	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist), "opening must not create the file")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := OpenFileStore(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode store file")
}

func TestFileStore_IgnoresForeignKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tw_spots":"[]","theme":"dark"}`), 0o600))

	fs, err := OpenFileStore(path)
	require.NoError(t, err)
	got, ok, err := fs.Read(ctx, KeySpots)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), got)
}

func TestFileStore_WriteFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "store.json")

	fs, err := OpenFileStore(path)
	require.NoError(t, err)

	// The parent directory does not exist, so saving fails.
	err = fs.Write(ctx, KeyCars, []byte(`[]`))
	require.Error(t, err)

	_, ok, err := fs.Read(ctx, KeyCars)
	require.NoError(t, err)
	assert.False(t, ok, "failed write must not leave the slot behind")
}
