package commands

import (
	"github.com/spf13/cobra"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <model.scad>",
		Short: "Parse a model into its Customizer schema",
		Long: `Parse an annotated OpenSCAD file and print the resulting parameter
schema. Table output summarizes the controls; json/yaml dump the full
structure consumed by UI front-ends.`,
		Example: `  # Human-readable summary
  customizer parse plate.scad

  # Full schema as JSON
  customizer parse plate.scad -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			schema, path, err := parseModelFile(cmdCtx.Cfg, args[0])
			if err != nil {
				return err
			}
			cmdCtx.Logger.Debug("parsed model", "path", path,
				"parameters", len(schema.Parameters), "groups", len(schema.Groups))

			return renderSchema(cmd.OutOrStdout(), schema, cmdCtx.Cfg.OutputFormat)
		},
	}
	return cmd
}
