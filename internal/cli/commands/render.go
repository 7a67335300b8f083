package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/openscad-forge/customizer/internal/customizer"
)

// renderJSON writes any payload as indented JSON.
func renderJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// renderYAML writes any payload as YAML.
func renderYAML(w io.Writer, payload any) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(payload)
}

// renderSchema dispatches on the output format. Table and markdown
// formats show the parameter listing; json/yaml dump the full schema.
func renderSchema(w io.Writer, schema *customizer.Schema, format string) error {
	switch format {
	case "json":
		return renderJSON(w, schema)
	case "yaml":
		return renderYAML(w, schema)
	case "markdown":
		return renderParameterTable(w, schema, true)
	default:
		return renderParameterTable(w, schema, false)
	}
}

// renderParameterTable writes the grouped parameter listing as a
// terminal or markdown table.
func renderParameterTable(w io.Writer, schema *customizer.Schema, markdown bool) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Type", "Default", "Control", "Group", "Unit", "Depends On"})

	for _, p := range schema.OrderedParameters() {
		t.AppendRow(table.Row{
			p.Name,
			string(p.Type),
			p.Default.String(),
			describeControl(p),
			p.Group,
			p.Unit,
			describeDependency(p.Dependency),
		})
	}

	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	_, _ = fmt.Fprintf(w, "(%d parameters, %d groups, %d hidden)\n",
		len(schema.Parameters), len(schema.Groups), len(schema.HiddenParameters))
	if len(schema.Libraries) > 0 {
		_, _ = fmt.Fprintf(w, "Libraries: %s\n", strings.Join(schema.Libraries, ", "))
	}
	return nil
}

// describeControl summarizes the UI directive for the table view.
func describeControl(p *customizer.Parameter) string {
	switch p.UIType {
	case customizer.UISlider:
		parts := make([]string, 0, 3)
		if p.Minimum != nil {
			parts = append(parts, formatFloat(*p.Minimum))
		}
		if p.Step != nil {
			parts = append(parts, formatFloat(*p.Step))
		}
		if p.Maximum != nil {
			parts = append(parts, formatFloat(*p.Maximum))
		}
		return "slider " + strings.Join(parts, ":")
	case customizer.UISelect:
		return fmt.Sprintf("select (%d options)", len(p.Enum))
	case customizer.UIRaw:
		return "raw: " + string(p.ParseFailureReason)
	default:
		return string(p.UIType)
	}
}

func describeDependency(dep *customizer.Dependency) string {
	if dep == nil {
		return ""
	}
	return dep.Parameter + dep.Operator + dep.Value
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
