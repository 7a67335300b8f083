// Package commands implements the customizer CLI subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openscad-forge/customizer/internal/cli/config"
	"github.com/openscad-forge/customizer/internal/customizer"
	"github.com/openscad-forge/customizer/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext builds the per-command dependency bundle.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// OpenStore opens the preset database, creating its directory and
// running migrations. The returned cleanup must be deferred.
func (c *CommandContext) OpenStore() (*state.SQLiteStore, func(), error) {
	stateDir := filepath.Dir(c.Cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(c.Cfg.StatePath); err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// getConfig returns the loaded configuration, falling back to defaults
// when a command runs outside the root command's pre-run (tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		ModelsDir:    config.DefaultModelsDir,
		StatePath:    config.DefaultStateFile,
		Port:         config.DefaultPort,
		OutputFormat: config.DefaultOutput,
	}
}

// parseModelFile reads and parses one .scad file. The model argument
// may be absolute, relative to CWD, or relative to the models dir.
func parseModelFile(cfg *config.Config, model string) (*customizer.Schema, string, error) {
	path := model
	if _, err := os.Stat(path); err != nil {
		candidate := filepath.Join(cfg.ModelsDir, model)
		if _, err2 := os.Stat(candidate); err2 != nil {
			return nil, "", fmt.Errorf("model file not found: %s", model)
		}
		path = candidate
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return customizer.Parse(string(content)), path, nil
}
