package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalidBackend is returned by Validate for an unknown state backend or driver.
var ErrInvalidBackend = errors.New("invalid state backend")

// Config holds all flipdeck configuration.
type Config struct {
	// State persistence
	State StateConfig `yaml:"state"`

	// Countdown timer options
	Timer TimerConfig `yaml:"timer"`

	// Audio cues
	Audio AudioConfig `yaml:"audio"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		State: StateConfig{
			Backend: BackendFile,
			Driver:  DriverModernc,
			Path:    "",
		},
		Timer: TimerConfig{
			Options: []string{"1", "5", "10", ChoiceOption},
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			Level:     "info",
			DebugMode: false,
		},
	}
}

// Dir returns the flipdeck directory inside the workspace.
func Dir(workspace string) string {
	return filepath.Join(workspace, ".flipdeck")
}

// DefaultPath returns the config file path for the workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(Dir(workspace), "config.yaml")
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults. A .env file next to the workspace
// root is loaded into the environment before overrides are applied.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env lives beside the .flipdeck directory; existing env vars win.
	envFile := filepath.Join(filepath.Dir(filepath.Dir(path)), ".env")
	if _, statErr := os.Stat(envFile); statErr == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FLIPDECK_STATE_BACKEND"); v != "" {
		c.State.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("FLIPDECK_STATE_PATH"); v != "" {
		c.State.Path = v
	}
	if v := os.Getenv("FLIPDECK_SQLITE_DRIVER"); v != "" {
		c.State.Driver = v
	}
	if v := os.Getenv("FLIPDECK_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}
	if v := os.Getenv("FLIPDECK_AUDIO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}
	if v := os.Getenv("FLIPDECK_AUDIO_PLAYER"); v != "" {
		c.Audio.Player = v
	}
	if v := os.Getenv("FLIPDECK_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = b
			if b {
				c.Logging.Level = "debug"
			}
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.State.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("%w: %q (valid: %s, %s)", ErrInvalidBackend, c.State.Backend, BackendFile, BackendSQLite)
	}
	if c.State.Backend == BackendSQLite {
		switch c.State.Driver {
		case DriverModernc, DriverCgo:
		default:
			return fmt.Errorf("%w: unknown sqlite driver %q", ErrInvalidBackend, c.State.Driver)
		}
	}

	if len(c.Timer.Options) == 0 {
		return fmt.Errorf("timer options must not be empty")
	}
	for _, opt := range c.Timer.Options {
		if opt == ChoiceOption {
			continue
		}
		n, err := strconv.Atoi(opt)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid timer option %q: must be a positive number of minutes or %q", opt, ChoiceOption)
		}
	}

	switch c.UI.Theme {
	case "auto", "light", "dark":
	default:
		return fmt.Errorf("invalid theme %q (valid: auto, light, dark)", c.UI.Theme)
	}
	return nil
}

// StatePath resolves the state file (or database) path for the workspace.
func (c *Config) StatePath(workspace string) string {
	if c.State.Path != "" {
		if filepath.IsAbs(c.State.Path) {
			return c.State.Path
		}
		return filepath.Join(workspace, c.State.Path)
	}
	name := "state.json"
	if c.State.Backend == BackendSQLite {
		name = "state.db"
	}
	return filepath.Join(Dir(workspace), name)
}
