package audio

import (
	"log/slog"
	"os"
	"sync"

	"github.com/jmylchreest/messagebar/internal/config"
	"github.com/jmylchreest/messagebar/internal/store"
)

// Cue describes the sound wanted for one message.
type Cue struct {
	SoundFile string // Per-message override (sound-file hint)
	Suppress  bool   // suppress-sound hint
}

type player interface {
	Play(path string) error
	Preload(path string) error
	Invalidate(path string)
	SetVolume(volume float64)
	Close()
}

// Chime plays the configured sound when a message is shown.
type Chime struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	player  player
	cfg     *config.Config
	sound   string
	watcher *store.FileWatcher
}

// NewChime creates a Chime for cfg's [audio] section.
func NewChime(cfg *config.Config, logger *slog.Logger) *Chime {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Chime{
		logger: logger,
		player: NewPlayer(logger),
	}
	c.apply(cfg)
	return c
}

func (c *Chime) apply(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cfg = cfg
	c.player.SetVolume(float64(cfg.Audio.Volume) / 100.0)

	c.sound = cfg.SoundPath()
	if c.sound == "" {
		return
	}
	if _, err := os.Stat(c.sound); err != nil {
		c.logger.Warn("sound file not found", "path", c.sound)
		c.sound = ""
	}
}

// Start preloads the configured sound and watches it for changes.
func (c *Chime) Start() {
	c.mu.RLock()
	sound := c.sound
	enabled := c.cfg.Audio.Enabled
	c.mu.RUnlock()

	if !enabled || sound == "" {
		return
	}

	if err := c.player.Preload(sound); err != nil {
		c.logger.Warn("failed to preload sound", "path", sound, "error", err)
	}
	c.watch(sound)
}

func (c *Chime) watch(sound string) {
	c.stopWatch()

	w, err := store.NewFileWatcher(sound, func() {
		c.logger.Debug("sound file changed", "path", sound)
		c.player.Invalidate(sound)
	}, c.logger)
	if err == nil {
		err = w.Start()
	}
	if err != nil {
		c.logger.Warn("failed to watch sound file", "path", sound, "error", err)
		return
	}

	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()
}

func (c *Chime) stopWatch() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		_ = w.Stop()
	}
}

// Play plays the chime for cue. It is a no-op when audio is disabled, the
// sender suppressed sound, or no sound is configured.
func (c *Chime) Play(cue Cue) error {
	c.mu.RLock()
	enabled := c.cfg.Audio.Enabled
	sound := c.sound
	c.mu.RUnlock()

	if !enabled || cue.Suppress {
		return nil
	}
	if cue.SoundFile != "" {
		sound = cue.SoundFile
	}
	if sound == "" {
		return nil
	}

	return c.player.Play(sound)
}

// UpdateConfig applies a reloaded configuration.
func (c *Chime) UpdateConfig(cfg *config.Config) {
	c.mu.RLock()
	old := c.sound
	c.mu.RUnlock()

	if old != "" {
		c.player.Invalidate(old)
	}
	c.apply(cfg)
	c.Start()

	c.logger.Debug("chime config updated", "enabled", cfg.Audio.Enabled)
}

// Stop stops watching and releases the speaker.
func (c *Chime) Stop() {
	c.stopWatch()
	c.player.Close()
}
