// Package main is the entry point for pixelkeys.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pixelkeys",
	Short: "Keyboard shortcuts for a pixel-art sprite editor",
	Long: `pixelkeys runs a sprite editor shell driven entirely by keyboard shortcuts.

Shortcuts come from the stock table, an optional keymap file (TOML or YAML)
and Lua scripts. The keymap file is reloaded when it changes.

Examples:
  pixelkeys run                         # Terminal backend
  pixelkeys run --backend desktop       # Desktop window
  pixelkeys check keys.toml             # Validate a keymap file
  pixelkeys list                        # Show every binding
  pixelkeys export keys.yaml            # Write the effective keymap
  pixelkeys config init                 # Write config.toml with current settings`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the editor",
	Args:  cobra.NoArgs,
	RunE:  runEditor,
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a keymap file against the known commands and tools",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the effective bindings",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the effective keymap to a TOML or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage config.toml",
}

var configInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write the effective settings to config.toml",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

// Global flags
var (
	flagConfig   string
	flagLogLevel string
	flagKeymap   string
)

// Flags for run
var (
	flagBackend string
)

// Flags for list
var (
	flagKind string
)

// Flags for config init
var (
	flagForce bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to config.toml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&flagKeymap, "keymap", "k", "", "Keymap file (overrides keymap.file)")

	runCmd.Flags().StringVarP(&flagBackend, "backend", "b", "", "Input backend (terminal/desktop)")
	listCmd.Flags().StringVar(&flagKind, "kind", "", "Only list one kind (command/tool/quicktool/editor)")

	configInitCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}
