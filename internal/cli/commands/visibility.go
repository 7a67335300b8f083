package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/openscad-forge/customizer/internal/visibility"
)

// NewVisibilityCommand creates the visibility command.
func NewVisibilityCommand() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "visibility <model.scad>",
		Short: "Evaluate conditional visibility of controls",
		Long: `Evaluate the @depends directives of a model against a set of
parameter values and report which controls are shown. Values start from
the schema defaults; --set overrides individual parameters.`,
		Example: `  customizer visibility plate.scad
  customizer visibility plate.scad --set mode=advanced --set detail=5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			schema, _, err := parseModelFile(cmdCtx.Cfg, args[0])
			if err != nil {
				return err
			}

			values := visibility.DefaultValues(schema)
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

			result := visibility.Evaluate(schema, values)

			out := cmd.OutOrStdout()
			switch cmdCtx.Cfg.OutputFormat {
			case "json":
				return renderJSON(out, result)
			case "yaml":
				return renderYAML(out, result)
			default:
				names := make([]string, 0, len(result))
				for name := range result {
					names = append(names, name)
				}
				sort.Strings(names)

				t := table.NewWriter()
				t.SetOutputMirror(out)
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Parameter", "Value", "Visible", "Depends On"})
				for _, name := range names {
					t.AppendRow(table.Row{
						name,
						values[name],
						result[name],
						describeDependency(schema.Parameters[name].Dependency),
					})
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

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override a parameter value (name=value, repeatable)")
	return cmd
}
