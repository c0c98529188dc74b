package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Log.Level != "info" || s.Backend.Kind != "terminal" {
		t.Errorf("defaults = %+v", s)
	}
	if s.Input.ReleaseTimeout != 500*time.Millisecond {
		t.Errorf("ReleaseTimeout = %v, want 500ms", s.Input.ReleaseTimeout)
	}
	if !s.Keymap.Watch {
		t.Error("Keymap.Watch should default to true")
	}
	if !s.Dispatch.Metrics || !s.Dispatch.RecoverPanics {
		t.Errorf("Dispatch = %+v, want metrics and panic recovery on", s.Dispatch)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[log]
level = "warn"

[keymap]
file = "/tmp/keys.yaml"
watch = false

[input]
release_timeout = "250ms"

[plugins]
scripts = ["a.lua", "b.lua"]
timeout = "2s"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PIXELKEYS_LOG_LEVEL", "debug")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want env override debug", s.Log.Level)
	}
	if s.Keymap.File != "/tmp/keys.yaml" || s.Keymap.Watch {
		t.Errorf("Keymap = %+v", s.Keymap)
	}
	if s.Input.ReleaseTimeout != 250*time.Millisecond {
		t.Errorf("ReleaseTimeout = %v, want 250ms", s.Input.ReleaseTimeout)
	}
	if len(s.Plugins.Scripts) != 2 {
		t.Errorf("Scripts = %v", s.Plugins.Scripts)
	}
	if s.Plugins.Timeout != 2*time.Second {
		t.Errorf("Plugins.Timeout = %v, want 2s", s.Plugins.Timeout)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() of a missing explicit file should fail")
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	s, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	bad := s
	bad.Backend.Kind = "web"
	if bad.Validate() == nil {
		t.Error("unknown backend should fail validation")
	}
	bad = s
	bad.Input.PollInterval = 0
	if bad.Validate() == nil {
		t.Error("zero poll interval should fail validation")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	s, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	s.Log.Level = "error"
	s.Plugins.Scripts = []string{"x.lua"}
	s.Dispatch.Metrics = false

	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := Save(path, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Log.Level != "error" || len(got.Plugins.Scripts) != 1 || got.Input.PollInterval != s.Input.PollInterval {
		t.Errorf("round trip = %+v", got)
	}
	if got.Dispatch.Metrics || !got.Dispatch.RecoverPanics {
		t.Errorf("Dispatch = %+v, want metrics off", got.Dispatch)
	}
}
