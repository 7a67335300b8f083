package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openscad-forge/customizer/internal/cli/config"
	"github.com/openscad-forge/customizer/internal/customizer"
	"github.com/openscad-forge/customizer/internal/emit"
)

// NewEmitCommand creates the emit command.
func NewEmitCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "emit <schema.json|schema.yaml|model.scad>",
		Short: "Emit annotated OpenSCAD source from a schema",
		Long: `Generate the Customizer section of an OpenSCAD file from a schema.
The input may be a schema dumped by "parse -o json/yaml", or a .scad
file whose schema is extracted first (a normalizing round trip).

The output ends with the __Customizer_Limit__ sentinel module, so code
appended after it is never picked up by the Customizer.`,
		Example: `  customizer parse plate.scad -o json > plate.json
  customizer emit plate.json > plate_params.scad

  # Normalize the annotation section of an existing model
  customizer emit plate.scad`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			schema, err := loadSchema(cmdCtx.Cfg, args[0])
			if err != nil {
				return err
			}

			source := emit.New().EmitSchema(schema)
			if outPath == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), source)
				return err
			}
			if err := os.WriteFile(outPath, []byte(source), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			cmdCtx.Logger.Info("wrote annotated source", "path", outPath,
				"parameters", len(schema.Parameters))
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write output to file instead of stdout")
	return cmd
}

// loadSchema reads a schema from a JSON or YAML dump, or extracts one
// from a .scad source file.
func loadSchema(cfg *config.Config, input string) (*customizer.Schema, error) {
	switch strings.ToLower(filepath.Ext(input)) {
	case ".scad":
		schema, _, err := parseModelFile(cfg, input)
		return schema, err
	case ".json":
		content, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", input, err)
		}
		var schema customizer.Schema
		if err := json.Unmarshal(content, &schema); err != nil {
			return nil, fmt.Errorf("invalid schema in %s: %w", input, err)
		}
		return &schema, nil
	case ".yaml", ".yml":
		content, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", input, err)
		}
		var schema customizer.Schema
		if err := yaml.Unmarshal(content, &schema); err != nil {
			return nil, fmt.Errorf("invalid schema in %s: %w", input, err)
		}
		return &schema, nil
	default:
		return nil, fmt.Errorf("unsupported input %s: expected .scad, .json, or .yaml", input)
	}
}
