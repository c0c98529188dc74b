package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/pixelkeys/internal/config"
	"github.com/dshills/pixelkeys/internal/input/keymap"
)

func TestWriteBindingsFiltersKind(t *testing.T) {
	reg := keymap.NewRegistry()
	if err := keymap.LoadDefaults(reg); err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}

	var buf bytes.Buffer
	if err := writeBindings(&buf, reg, "QuickTool"); err != nil {
		t.Fatalf("writeBindings: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d quick tool lines, want 3:\n%s", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "quicktool") {
			t.Errorf("unexpected line %q", line)
		}
	}
	if !strings.Contains(buf.String(), "quicktool:hand") {
		t.Errorf("missing hand quick tool:\n%s", buf.String())
	}
}

func TestReportCheck(t *testing.T) {
	reg := keymap.NewRegistry()

	var buf bytes.Buffer
	if err := reportCheck(&buf, "keys.toml", reg, nil); err != nil {
		t.Fatalf("clean report returned %v", err)
	}
	if !strings.Contains(buf.String(), "0 problems") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	err := reportCheck(&buf, "keys.toml", reg, []error{errors.New("bad chord")})
	if err == nil {
		t.Fatal("expected an error for problems")
	}
	if !strings.Contains(buf.String(), "keys.toml: bad chord") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	settings, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	settings.Dispatch.Metrics = false

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := writeConfig(path, settings, false); err != nil {
		t.Fatalf("writeConfig: %v", err)
	}
	if err := writeConfig(path, settings, false); err == nil {
		t.Error("writeConfig should refuse to overwrite without force")
	}
	if err := writeConfig(path, settings, true); err != nil {
		t.Errorf("writeConfig with force: %v", err)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%s): %v", path, err)
	}
	if got.Dispatch.Metrics {
		t.Error("written config should keep dispatch.metrics = false")
	}
}
