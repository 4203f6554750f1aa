package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(filepath.Join(dir, "uploads"))

	path, err := store.Save(strings.NewReader("hello world"), "abc_test.txt")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	require.NoError(t, store.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_SaveCreatesDir(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(filepath.Join(dir, "nested", "uploads"))

	path, err := store.Save(strings.NewReader("x"), "a.bin")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestDiskStore_RemoveMissing(t *testing.T) {
	store := NewDiskStore(t.TempDir())
	assert.Error(t, store.Remove(filepath.Join("nope", "missing.bin")))
}
