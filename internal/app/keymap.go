package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/pixelkeys/internal/command"
	"github.com/dshills/pixelkeys/internal/config/loader"
	"github.com/dshills/pixelkeys/internal/input/keymap"
	"github.com/dshills/pixelkeys/internal/plugin"
	"github.com/dshills/pixelkeys/internal/tool"
)

// KeymapSources lists where shortcuts come from, applied in order: stock
// defaults (unless the file sets no_defaults), the keymap file, then Lua
// scripts.
type KeymapSources struct {
	File          string
	Scripts       []string
	ScriptTimeout time.Duration
}

// BuildRegistry assembles a fresh registry from the sources. A missing
// keymap file is not an error. Problems with single entries or scripts are
// returned as warnings; the error is set only when nothing usable could be
// built.
func BuildRegistry(ctx context.Context, src KeymapSources, commands *command.Registry, toolbox *tool.ToolBox, logger zerolog.Logger) (*keymap.Registry, []error, error) {
	var file *loader.File
	if src.File != "" {
		f, err := loader.New().Load(src.File)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Debug().Str("file", src.File).Msg("no keymap file, using stock shortcuts")
		case err != nil:
			return nil, nil, err
		default:
			file = f
		}
	}

	reg := keymap.NewRegistry()
	if file == nil || !file.NoDefaults {
		if err := keymap.LoadDefaults(reg); err != nil {
			return nil, nil, fmt.Errorf("stock shortcuts: %w", err)
		}
	}

	var warnings ErrorList
	if file != nil {
		warnings.Add(loader.Apply(file, reg, loader.Catalog{Commands: commands, ToolBox: toolbox})...)
	}
	if len(src.Scripts) > 0 {
		runner := plugin.NewRunner(logger, src.ScriptTimeout)
		warnings.Add(runner.Run(ctx, src.Scripts, reg, commands, toolbox)...)
	}

	for _, w := range warnings.Errors() {
		logger.Warn().Err(w).Msg("keymap entry skipped")
	}
	return reg, warnings.Errors(), nil
}
