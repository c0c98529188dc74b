package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/pixelkeys/internal/app"
	"github.com/dshills/pixelkeys/internal/command"
	"github.com/dshills/pixelkeys/internal/config"
	"github.com/dshills/pixelkeys/internal/config/loader"
	"github.com/dshills/pixelkeys/internal/input/keymap"
	"github.com/dshills/pixelkeys/internal/logging"
	"github.com/dshills/pixelkeys/internal/tool"
)

// loadSettings reads config and applies flag overrides.
func loadSettings() (config.Settings, error) {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return config.Settings{}, err
	}
	if flagLogLevel != "" {
		settings.Log.Level = flagLogLevel
	}
	if flagKeymap != "" {
		settings.Keymap.File = flagKeymap
	}
	if flagBackend != "" {
		settings.Backend.Kind = flagBackend
	}
	return settings, settings.Validate()
}

// newLogger builds the logger for settings. The terminal backend owns the
// screen, so its logs go to a file.
func newLogger(settings config.Settings, w io.Writer) zerolog.Logger {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(settings.Log.Level)
	cfg.Format = logging.ParseFormat(settings.Log.Format)
	if w != nil {
		cfg.Output = w
	}
	return logging.New(cfg)
}

func openLogFile() (*os.File, error) {
	dir := config.DefaultDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, "pixelkeys.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func runEditor(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	var out io.Writer
	if settings.Backend.Kind == "terminal" {
		f, err := openLogFile()
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
		settings.Log.Format = string(logging.FormatJSON)
	}
	logger := newLogger(settings, out)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, settings, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// buildRegistry assembles the keymap the editor would use, against the
// stock command set and toolbox.
func buildRegistry(ctx context.Context, settings config.Settings, logger zerolog.Logger) (*keymap.Registry, []error, error) {
	commands := command.NewRegistry()
	if err := app.NewEditor(app.EditorHooks{}).RegisterCommands(commands); err != nil {
		return nil, nil, err
	}
	src := app.KeymapSources{
		File:          settings.Keymap.File,
		Scripts:       settings.Plugins.Scripts,
		ScriptTimeout: settings.Plugins.Timeout,
	}
	return app.BuildRegistry(ctx, src, commands, tool.DefaultToolBox(), logger)
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	settings.Keymap.File = args[0]
	if _, err := os.Stat(args[0]); err != nil {
		return err
	}

	reg, warnings, err := buildRegistry(cmd.Context(), settings, zerolog.Nop())
	if err != nil {
		return err
	}
	return reportCheck(cmd.OutOrStdout(), args[0], reg, warnings)
}

func reportCheck(w io.Writer, path string, reg *keymap.Registry, warnings []error) error {
	for _, warn := range warnings {
		fmt.Fprintf(w, "%s: %v\n", path, warn)
	}
	fmt.Fprintf(w, "%s: %d bindings, %d problems\n", path, reg.Len(), len(warnings))
	if len(warnings) > 0 {
		return fmt.Errorf("%d problems in %s", len(warnings), path)
	}
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	reg, _, err := buildRegistry(cmd.Context(), settings, newLogger(settings, cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	return writeBindings(cmd.OutOrStdout(), reg, flagKind)
}

// writeBindings prints one line per binding: kind, action, context and
// chords. An empty kind lists all.
func writeBindings(w io.Writer, reg *keymap.Registry, kind string) error {
	kind = strings.ToLower(strings.TrimSpace(kind))
	for _, b := range reg.Bindings() {
		if kind != "" && b.Kind().String() != kind {
			continue
		}
		chords := "(unbound)"
		if accel := b.Accelerator(); !accel.IsEmpty() {
			chords = accel.String()
		}
		if _, err := fmt.Fprintf(w, "%-10s %-36s %-10s %s\n", b.Kind(), b.Action(), b.Context(), chords); err != nil {
			return err
		}
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	reg, _, err := buildRegistry(cmd.Context(), settings, newLogger(settings, cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	if err := loader.Export(reg).Save(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bindings to %s\n", reg.Len(), args[0])
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	path := filepath.Join(config.DefaultDir(), "config.toml")
	if len(args) > 0 {
		path = args[0]
	}
	if err := writeConfig(path, settings, flagForce); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

// writeConfig saves settings to path, refusing to replace an existing file
// unless force is set.
func writeConfig(path string, settings config.Settings, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	return config.Save(path, settings)
}
