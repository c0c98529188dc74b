// Package plugin runs user keymap scripts against a shortcut registry.
package plugin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/pixelkeys/internal/command"
	"github.com/dshills/pixelkeys/internal/input/keymap"
	plua "github.com/dshills/pixelkeys/internal/plugin/lua"
	"github.com/dshills/pixelkeys/internal/tool"
)

// ScriptError reports a script that failed to run.
type ScriptError struct {
	Path string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Path, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Scripts expands paths into script files. Directories contribute their
// *.lua files in name order; missing paths are errors.
func Scripts(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(p, "*.lua"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}

// Runner executes scripts with the shortcuts module installed.
type Runner struct {
	logger  zerolog.Logger
	timeout time.Duration
}

// NewRunner creates a runner. A zero timeout uses the Lua default.
func NewRunner(logger zerolog.Logger, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = plua.DefaultExecutionTimeout
	}
	return &Runner{logger: logger, timeout: timeout}
}

// Run executes every script in one Lua state bound to reg. A failing script
// is reported and the rest still run.
func (r *Runner) Run(ctx context.Context, paths []string, reg *keymap.Registry, cmds *command.Registry, box *tool.ToolBox) []error {
	scripts, err := Scripts(paths)
	if err != nil {
		return []error{err}
	}
	if len(scripts) == 0 {
		return nil
	}

	state := plua.NewState(plua.WithExecutionTimeout(r.timeout))
	defer state.Close()
	plua.NewShortcuts(reg, cmds, box).Install(state)

	var errs []error
	for _, path := range scripts {
		before := reg.Len()
		if err := state.DoFile(ctx, path); err != nil {
			r.logger.Warn().Err(err).Str("script", path).Msg("keymap script failed")
			errs = append(errs, &ScriptError{Path: path, Err: err})
			continue
		}
		r.logger.Debug().
			Str("script", path).
			Int("new_bindings", reg.Len()-before).
			Msg("keymap script loaded")
	}
	return errs
}
