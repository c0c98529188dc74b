// Package config loads application settings.
//
// Settings come from an optional config.toml and PIXELKEYS_* environment
// variables, which override the file (PIXELKEYS_LOG_LEVEL=debug sets
// log.level). Shortcuts themselves live in a separate keymap file; see
// package loader.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "PIXELKEYS"

// Settings holds application configuration.
type Settings struct {
	Log      LogSettings      `mapstructure:"log"`
	Keymap   KeymapSettings   `mapstructure:"keymap"`
	Input    InputSettings    `mapstructure:"input"`
	Plugins  PluginSettings   `mapstructure:"plugins"`
	Backend  BackendSettings  `mapstructure:"backend"`
	Dispatch DispatchSettings `mapstructure:"dispatch"`
}

// LogSettings configures logging.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// KeymapSettings locates the user keymap file.
type KeymapSettings struct {
	// File is the TOML or YAML keymap. Empty means stock shortcuts only.
	File string `mapstructure:"file"`

	// Watch reloads the keymap when the file changes.
	Watch bool `mapstructure:"watch"`
}

// InputSettings tunes keyboard tracking.
type InputSettings struct {
	// ReleaseTimeout is how long a key counts as held after its last
	// report, for backends that never report key releases.
	ReleaseTimeout time.Duration `mapstructure:"release_timeout"`

	// PollInterval is how often held keys are polled for quick tools.
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// PluginSettings lists Lua scripts that register shortcuts.
type PluginSettings struct {
	Scripts []string `mapstructure:"scripts"`

	// Timeout bounds each script run.
	Timeout time.Duration `mapstructure:"timeout"`
}

// BackendSettings selects the input backend.
type BackendSettings struct {
	// Kind is "terminal" or "desktop".
	Kind string `mapstructure:"kind"`
}

// DispatchSettings tunes the shortcut dispatcher.
type DispatchSettings struct {
	// Metrics collects dispatch statistics, logged at exit.
	Metrics bool `mapstructure:"metrics"`

	// RecoverPanics turns a panicking command into a logged error.
	RecoverPanics bool `mapstructure:"recover_panics"`
}

// DefaultDir returns the directory config files live in by default.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "pixelkeys")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("keymap.file", filepath.Join(DefaultDir(), "keys.toml"))
	v.SetDefault("keymap.watch", true)
	v.SetDefault("input.release_timeout", 500*time.Millisecond)
	v.SetDefault("input.poll_interval", 50*time.Millisecond)
	v.SetDefault("plugins.scripts", []string{})
	v.SetDefault("plugins.timeout", 5*time.Second)
	v.SetDefault("backend.kind", "terminal")
	v.SetDefault("dispatch.metrics", true)
	v.SetDefault("dispatch.recover_panics", true)
}

// Load reads settings. An explicit path must exist; with an empty path the
// default location is tried and may be absent.
func Load(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(DefaultDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks settings for values that cannot work.
func (s Settings) Validate() error {
	if s.Input.ReleaseTimeout <= 0 {
		return fmt.Errorf("input.release_timeout must be positive, got %s", s.Input.ReleaseTimeout)
	}
	if s.Input.PollInterval <= 0 {
		return fmt.Errorf("input.poll_interval must be positive, got %s", s.Input.PollInterval)
	}
	if s.Plugins.Timeout < 0 {
		return fmt.Errorf("plugins.timeout must not be negative, got %s", s.Plugins.Timeout)
	}
	switch s.Backend.Kind {
	case "terminal", "desktop":
	default:
		return fmt.Errorf("backend.kind must be terminal or desktop, got %q", s.Backend.Kind)
	}
	return nil
}

// Save writes settings to path, creating the directory if needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("log.level", s.Log.Level)
	v.Set("log.format", s.Log.Format)
	v.Set("keymap.file", s.Keymap.File)
	v.Set("keymap.watch", s.Keymap.Watch)
	v.Set("input.release_timeout", s.Input.ReleaseTimeout.String())
	v.Set("input.poll_interval", s.Input.PollInterval.String())
	v.Set("plugins.scripts", s.Plugins.Scripts)
	v.Set("plugins.timeout", s.Plugins.Timeout.String())
	v.Set("backend.kind", s.Backend.Kind)
	v.Set("dispatch.metrics", s.Dispatch.Metrics)
	v.Set("dispatch.recover_panics", s.Dispatch.RecoverPanics)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
