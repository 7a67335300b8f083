package commands

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/openscad-forge/customizer/internal/state"
	"github.com/openscad-forge/customizer/internal/visibility"
)

// NewPresetCommand creates the preset command group.
func NewPresetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage named parameter presets",
		Long: `Save, list, apply, and delete named value sets for a model. Presets
are stored in a local SQLite database and keyed by (model, name);
saving under an existing name overwrites it.`,
	}

	cmd.AddCommand(newPresetSaveCommand())
	cmd.AddCommand(newPresetListCommand())
	cmd.AddCommand(newPresetApplyCommand())
	cmd.AddCommand(newPresetDeleteCommand())
	return cmd
}

func newPresetSaveCommand() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:     "save <model.scad> <name>",
		Short:   "Save a preset for a model",
		Example: `  customizer preset save plate.scad tall --set height=80 --set mode=advanced`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			schema, path, err := parseModelFile(cmdCtx.Cfg, args[0])
			if err != nil {
				return err
			}

			values := map[string]string{}
			for _, s := range sets {
				name, value, ok := strings.Cut(s, "=")
				if !ok {
					return fmt.Errorf("invalid --set %q: expected name=value", s)
				}
				if _, known := schema.Parameters[name]; !known {
					return fmt.Errorf("unknown parameter %q", name)
				}
				values[name] = value
			}

			store, cleanup, err := cmdCtx.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			preset, err := store.SavePreset(modelKey(path), args[1], values)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved preset %q for %s (%d values)\n",
				preset.Name, preset.Model, len(preset.Values))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Parameter value to store (name=value, repeatable)")
	return cmd
}

func newPresetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <model.scad>",
		Short: "List presets saved for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			_, path, err := parseModelFile(cmdCtx.Cfg, args[0])
			if err != nil {
				return err
			}

			store, cleanup, err := cmdCtx.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			presets, err := store.ListPresets(modelKey(path))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch cmdCtx.Cfg.OutputFormat {
			case "json":
				return renderJSON(out, presets)
			case "yaml":
				return renderYAML(out, presets)
			default:
				t := table.NewWriter()
				t.SetOutputMirror(out)
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Name", "Values", "Updated"})
				for _, p := range presets {
					t.AppendRow(table.Row{p.Name, len(p.Values), p.UpdatedAt.Format("2006-01-02 15:04")})
				}
				if cmdCtx.Cfg.OutputFormat == "markdown" {
					t.RenderMarkdown()
				} else {
					t.Render()
				}
				return nil
			}
		},
	}
}

func newPresetApplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <model.scad> <name>",
		Short: "Show the full value set a preset resolves to",
		Long: `Overlay a stored preset onto the model's defaults and print the
complete parameter assignment, defaults included. Stored values for
parameters no longer present in the model are dropped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			schema, path, err := parseModelFile(cmdCtx.Cfg, args[0])
			if err != nil {
				return err
			}

			store, cleanup, err := cmdCtx.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			preset, err := store.GetPreset(modelKey(path), args[1])
			if err != nil {
				return err
			}

			values := state.Apply(schema, preset)
			vis := visibility.Evaluate(schema, values)

			out := cmd.OutOrStdout()
			switch cmdCtx.Cfg.OutputFormat {
			case "json":
				return renderJSON(out, values)
			case "yaml":
				return renderYAML(out, values)
			default:
				names := make([]string, 0, len(values))
				for name := range values {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					marker := ""
					if !vis[name] {
						marker = "  (hidden)"
					}
					fmt.Fprintf(out, "%s = %s%s\n", name, values[name], marker)
				}
				return nil
			}
		},
	}
}

func newPresetDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <model.scad> <name>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			_, path, err := parseModelFile(cmdCtx.Cfg, args[0])
			if err != nil {
				return err
			}

			store, cleanup, err := cmdCtx.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.DeletePreset(modelKey(path), args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted preset %q\n", args[1])
			return nil
		},
	}
}

// modelKey is the identity a preset is stored under. The base name,
// not the full path, so presets survive moving the models directory.
func modelKey(path string) string {
	return filepath.Base(path)
}
