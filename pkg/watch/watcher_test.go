package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/grovetools/gamestate/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string, debounce time.Duration) *int32 {
	t.Helper()

	var calls int32
	w, err := New(path, debounce, func(string) { atomic.AddInt32(&calls, 1) })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return &calls
}

func TestWatcherDebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSettings(t, dir, "settings.toml", `game = "auto"`)
	calls := startWatcher(t, path, 150*time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`game = "Skyrim"`), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.True(t, testutil.Eventually(t, 2*time.Second, func() bool {
		return atomic.LoadInt32(calls) >= 1
	}))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestWatcherSeesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSettings(t, dir, "settings.toml", `game = "auto"`)
	calls := startWatcher(t, path, 50*time.Millisecond)

	tmp := filepath.Join(dir, ".settings.toml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`game = "Oblivion"`), 0644))
	require.NoError(t, os.Rename(tmp, path))

	assert.True(t, testutil.Eventually(t, 2*time.Second, func() bool {
		return atomic.LoadInt32(calls) >= 1
	}))
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSettings(t, dir, "settings.toml", `game = "auto"`)
	calls := startWatcher(t, path, 50*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "gamestate.log"), []byte("noise"), 0644))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "settings.toml"), 0, nil)
	assert.Error(t, err)
}

func TestWatcherCallbacksDoNotOverlap(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSettings(t, dir, "settings.toml", `game = "auto"`)

	var active, peak, calls int32
	w, err := New(path, 20*time.Millisecond, func(string) {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(200 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		atomic.AddInt32(&calls, 1)
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Each write settles long before the previous reload finishes.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`game = "Skyrim"`), 0644))
		time.Sleep(80 * time.Millisecond)
	}

	assert.True(t, testutil.Eventually(t, 3*time.Second, func() bool {
		return atomic.LoadInt32(&calls) >= 2
	}))
	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
}
