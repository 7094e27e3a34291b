package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileMediumRoundTrip(t *testing.T) {
	medium, err := NewFileMedium(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, found, err := medium.Get(ctx, PrimaryKey)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, medium.Set(ctx, PrimaryKey, `{"tickets":[]}`))

	value, found, err := medium.Get(ctx, PrimaryKey)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `{"tickets":[]}`, value)

	require.NoError(t, medium.Set(ctx, PrimaryKey, `{"tickets":[1]}`))
	value, _, err = medium.Get(ctx, PrimaryKey)
	require.NoError(t, err)
	require.Equal(t, `{"tickets":[1]}`, value, "set replaces the whole value")

	require.NoError(t, medium.Delete(ctx, PrimaryKey))
	_, found, err = medium.Get(ctx, PrimaryKey)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, medium.Delete(ctx, PrimaryKey), "deleting an absent key is fine")
}

func TestFileMediumCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	medium, err := NewFileMedium(dir)
	require.NoError(t, err)

	require.NoError(t, medium.Ping(context.Background()))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestFileMediumLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	medium, err := NewFileMedium(dir)
	require.NoError(t, err)

	require.NoError(t, medium.Set(context.Background(), PrimaryKey, "value"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, PrimaryKey+".json", entries[0].Name())
}
