package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/messagebar/internal/config"
)

func TestConfigWatcher_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messagebar.toml")
	require.NoError(t, os.WriteFile(path, []byte("[timing]\nhide_delay = \"5s\"\n"), 0o600))

	reloaded := make(chan *config.Config, 4)
	failed := make(chan error, 4)

	w := NewConfigWatcher(path, nil)
	w.SetReloadCallback(func(cfg *config.Config) { reloaded <- cfg })
	w.SetErrorCallback(func(err error) { failed <- err })

	initial := config.DefaultConfig()
	require.NoError(t, w.Start(initial))
	t.Cleanup(w.Stop)
	assert.Same(t, initial, w.Current())

	require.NoError(t, os.WriteFile(path, []byte("[timing]\nhide_delay = \"2s\"\n"), 0o600))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 2*time.Second, cfg.Timing.HideDelay.Duration())
		assert.Same(t, cfg, w.Current())
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	current := w.Current()
	require.NoError(t, os.WriteFile(path, []byte("[display]\nposition = \"middle\"\n"), 0o600))

	select {
	case err := <-failed:
		assert.Error(t, err)
		assert.Same(t, current, w.Current(), "invalid config keeps the last good one")
	case <-time.After(5 * time.Second):
		t.Fatal("invalid config was not reported")
	}
}

func TestConfigWatcher_StopWithoutStart(t *testing.T) {
	w := NewConfigWatcher(filepath.Join(t.TempDir(), "messagebar.toml"), nil)
	w.Stop()
	assert.Nil(t, w.Current())
}
