package watcher

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatcherFiresOnJSONWrite(t *testing.T) {
	dir := t.TempDir()

	var fired atomic.Int32
	w, err := New(testLogger(), func() { fired.Add(1) }, Options{SettleDelay: 50 * time.Millisecond})
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Watch(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "recipes.json"), []byte(`[]`), 0o644))

	require.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()

	var fired atomic.Int32
	w, err := New(testLogger(), func() { fired.Add(1) }, Options{SettleDelay: 200 * time.Millisecond})
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Watch(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Several quick writes should collapse into one reload.
	path := filepath.Join(dir, "recipes.json")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestWatcherIgnoresNonJSON(t *testing.T) {
	dir := t.TempDir()

	var fired atomic.Int32
	w, err := New(testLogger(), func() { fired.Add(1) }, Options{SettleDelay: 50 * time.Millisecond})
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Watch(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestWatcherWatchMissingDir(t *testing.T) {
	w, err := New(testLogger(), func() {}, Options{})
	require.NoError(t, err)
	defer w.Stop()

	require.Error(t, w.Watch(filepath.Join(t.TempDir(), "missing")))
}
