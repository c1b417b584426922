// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// AppName names the config and data directories.
const AppName = "messagebar"

// Default configuration values.
const (
	DefaultHideDelay     = 5000 * time.Millisecond
	DefaultFadeDuration  = 600 * time.Millisecond
	DefaultFrameInterval = 16 * time.Millisecond
	DefaultWidth         = 480
	DefaultOffset        = 24
	DefaultVolume        = 60
)

// Config is the messagebar configuration, shared by the CLI and the daemon.
// Loaded from ~/.config/messagebar/messagebar.toml
type Config struct {
	Timing  TimingConfig  `toml:"timing"`
	Display DisplayConfig `toml:"display"`
	Audio   AudioConfig   `toml:"audio"`
	State   StateConfig   `toml:"state"`
	Notices NoticesConfig `toml:"notices"`
}

// TimingConfig controls how long messages stay up and how they fade.
type TimingConfig struct {
	HideDelay     Duration `toml:"hide_delay"`     // e.g. "5s" or 5000
	FadeDuration  Duration `toml:"fade_duration"`  // "0" disables the fade
	FrameInterval Duration `toml:"frame_interval"` // Fade animation step
}

// DisplayConfig contains placement of the bar surface.
type DisplayConfig struct {
	Position string `toml:"position"` // "bottom-center", "top-right", etc.
	OffsetX  int    `toml:"offset_x"` // Pixels from screen edge
	OffsetY  int    `toml:"offset_y"` // Pixels from screen edge
	Width    int    `toml:"width"`    // Bar width in pixels
	Theme    string `toml:"theme"`    // Bundled theme or ~/.config/messagebar/themes/<name>.css
}

// AudioConfig contains the chime played when a message is shown.
type AudioConfig struct {
	Enabled bool   `toml:"enabled"`
	Volume  int    `toml:"volume"` // 0-100
	Sound   string `toml:"sound"`  // Path to a wav/mp3/ogg file, ~ is expanded
}

// StateConfig controls the saved bar state.
type StateConfig struct {
	Path           string `toml:"path"`             // Empty = data dir default
	RestoreOnStart bool   `toml:"restore_on_start"` // Restore the snapshot when the daemon starts
}

// NoticesConfig controls messages the daemon posts about itself.
type NoticesConfig struct {
	Enabled bool `toml:"enabled"` // e.g. "Configuration reloaded"
}

// Position represents where the bar is anchored on screen.
type Position string

const (
	PositionTopLeft      Position = "top-left"
	PositionTopCenter    Position = "top-center"
	PositionTopRight     Position = "top-right"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomCenter Position = "bottom-center"
	PositionBottomRight  Position = "bottom-right"
)

// ValidPositions returns all valid position values.
func ValidPositions() []Position {
	return []Position{
		PositionTopLeft,
		PositionTopCenter,
		PositionTopRight,
		PositionBottomLeft,
		PositionBottomCenter,
		PositionBottomRight,
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Timing: TimingConfig{
			HideDelay:     Duration(DefaultHideDelay),
			FadeDuration:  Duration(DefaultFadeDuration),
			FrameInterval: Duration(DefaultFrameInterval),
		},
		Display: DisplayConfig{
			Position: string(PositionBottomCenter),
			OffsetX:  DefaultOffset,
			OffsetY:  DefaultOffset,
			Width:    DefaultWidth,
			Theme:    "default",
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  DefaultVolume,
		},
		State: StateConfig{
			RestoreOnStart: true,
		},
		Notices: NoticesConfig{
			Enabled: true,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName, AppName+".toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName)
}

// StatePath returns the path of the saved bar state.
func (c *Config) StatePath() string {
	if c.State.Path != "" {
		return expandPath(c.State.Path)
	}
	return filepath.Join(DataPath(), "state.json")
}

// DemoStatePath returns the path of the demo TUI's saved state.
func DemoStatePath() string {
	return filepath.Join(DataPath(), "demo.json")
}

// SoundPath returns the chime path with ~ expanded.
func (c *Config) SoundPath() string {
	return expandPath(c.Audio.Sound)
}

// Load loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns the default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Overlay file contents on the defaults
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Timing.HideDelay.Duration() <= 0 {
		return fmt.Errorf("hide_delay must be positive, got %s", c.Timing.HideDelay.Duration())
	}
	if c.Timing.FadeDuration.Duration() < 0 {
		return fmt.Errorf("fade_duration must not be negative, got %s", c.Timing.FadeDuration.Duration())
	}
	if fi := c.Timing.FrameInterval.Duration(); fi <= 0 || fi > time.Second {
		return fmt.Errorf("frame_interval must be between 1ms and 1s, got %s", fi)
	}

	validPos := false
	for _, p := range ValidPositions() {
		if c.Display.Position == string(p) {
			validPos = true
			break
		}
	}
	if !validPos {
		return fmt.Errorf("invalid position %q, must be one of: %v", c.Display.Position, ValidPositions())
	}

	if c.Display.Width < 100 || c.Display.Width > 2000 {
		return fmt.Errorf("width must be between 100 and 2000, got %d", c.Display.Width)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	return nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	path := DataPath()
	if path == "" {
		return errors.New("unable to determine data directory")
	}
	return os.MkdirAll(path, 0755)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
