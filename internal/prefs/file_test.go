package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")

	first, err := NewFileStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "theme", "light"))

	second, err := NewFileStore(path, nil)
	require.NoError(t, err)
	got, err := second.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", got)
}

func TestFileStoreWritesPrivateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s, err := NewFileStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), "theme", "dark"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".prefs-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileStoreEmptyFileReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	s, err := NewFileStore(path, nil)
	require.NoError(t, err)
	_, err = s.Get(context.Background(), "theme")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreRecoversFromCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewFileStore(path, nil)
	require.NoError(t, err)
	_, err = s.Get(ctx, "theme")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "theme", "light"))

	reopened, err := NewFileStore(path, nil)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", got)
}
