package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/openscad-forge/customizer/internal/customizer"
)

// modelInfo is the per-file summary shown by the list command.
type modelInfo struct {
	Name       string   `json:"name" yaml:"name"`
	Path       string   `json:"path" yaml:"path"`
	Parameters int      `json:"parameters" yaml:"parameters"`
	Groups     int      `json:"groups" yaml:"groups"`
	Libraries  []string `json:"libraries,omitempty" yaml:"libraries,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List parseable models in the models directory",
		Long: `Scan the models directory for .scad files and summarize the
Customizer schema of each one.`,
		Example: `  customizer list
  customizer list --models-dir ./printables -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)

			models, err := scanModels(cmdCtx.Cfg.ModelsDir)
			if err != nil {
				return err
			}
			cmdCtx.Logger.Debug("scanned models dir",
				"dir", cmdCtx.Cfg.ModelsDir, "models", len(models))

			out := cmd.OutOrStdout()
			switch cmdCtx.Cfg.OutputFormat {
			case "json":
				return renderJSON(out, models)
			case "yaml":
				return renderYAML(out, models)
			default:
				return renderModelTable(out, models, cmdCtx.Cfg.OutputFormat == "markdown")
			}
		},
	}
	return cmd
}

// scanModels walks dir for .scad files and parses each one.
func scanModels(dir string) ([]modelInfo, error) {
	var models []modelInfo
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".scad") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		schema := customizer.Parse(string(content))
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		models = append(models, modelInfo{
			Name:       strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			Path:       rel,
			Parameters: len(schema.Parameters),
			Groups:     len(schema.Groups),
			Libraries:  schema.Libraries,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan models directory %s: %w", dir, err)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Path < models[j].Path })
	return models, nil
}

func renderModelTable(w io.Writer, models []modelInfo, markdown bool) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Model", "Path", "Params", "Groups", "Libraries"})
	for _, m := range models {
		t.AppendRow(table.Row{m.Name, m.Path, m.Parameters, m.Groups, strings.Join(m.Libraries, ", ")})
	}
	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	_, _ = fmt.Fprintf(w, "(%d models)\n", len(models))
	return nil
}
