package assets_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/ooftn2d/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherInvalidatesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.png")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))
	t0 := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, t0, t0))

	w, err := assets.NewWatcher(assets.OSFileReader{Root: dir}, dir)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go w.Run(ctx)

	ts, err := w.ModTime("hero.png")
	require.NoError(t, err)
	assert.True(t, ts.Equal(t0))
	assert.True(t, w.Cached("hero.png"))

	t1 := t0.Add(time.Hour)
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	require.NoError(t, os.Chtimes(path, t1, t1))

	assert.Eventually(t, func() bool {
		return !w.Cached("hero.png")
	}, 2*time.Second, 10*time.Millisecond)

	ts, err = w.ModTime("hero.png")
	require.NoError(t, err)
	assert.True(t, ts.Equal(t1))
}

func TestWatcherDoesNotCacheFailures(t *testing.T) {
	dir := t.TempDir()
	w, err := assets.NewWatcher(assets.OSFileReader{Root: dir}, dir)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	_, err = w.ModTime("missing.png")
	assert.Error(t, err)
	assert.False(t, w.Cached("missing.png"))
}
