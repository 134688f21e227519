package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := DefaultPath(t.TempDir())
	require.NoError(t, DefaultConfig().Save(path))

	var (
		mu     sync.Mutex
		themes []string
	)
	w, err := NewWatcher(path, func(c *Config) {
		mu.Lock()
		themes = append(themes, c.UI.Theme)
		mu.Unlock()
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	cfg := DefaultConfig()
	cfg.UI.Theme = "dark"
	require.NoError(t, cfg.Save(path))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(themes) > 0 && themes[len(themes)-1] == "dark"
	}, 3*time.Second, 20*time.Millisecond)

	w.Stop()
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := DefaultPath(t.TempDir())
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "state.json"), []byte("{}"), 0644))
	time.Sleep(400 * time.Millisecond)

	assert.Equal(t, 0, w.Reloads())
	w.Stop()
}

func TestWatcher_InvalidConfigKeepsCurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := DefaultPath(t.TempDir())
	require.NoError(t, DefaultConfig().Save(path))

	called := make(chan struct{}, 1)
	w, err := NewWatcher(path, func(*Config) { called <- struct{}{} })
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: neon\n"), 0644))

	select {
	case <-called:
		t.Fatal("invalid config must not reach the callback")
	case <-time.After(500 * time.Millisecond):
	}
	w.Stop()
}
