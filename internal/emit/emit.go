// Package emit generates Customizer-annotated OpenSCAD source from a
// parameter schema: the inverse of the parser, used by the conversion
// pipeline and by preset export. Emitted output re-parses to the same
// schema values.
package emit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/openscad-forge/customizer/internal/customizer"
)

// Emitter writes schemas back out as annotated .scad text.
type Emitter struct{}

// New creates an Emitter.
func New() *Emitter {
	return &Emitter{}
}

// EmitSchema renders the full schema: visible groups in declaration
// order, each with its parameters, followed by a Hidden section and the
// sentinel fence.
func (e *Emitter) EmitSchema(schema *customizer.Schema) string {
	var b strings.Builder

	declared := make(map[string]bool, len(schema.Groups))
	for _, g := range schema.Groups {
		declared[g.ID] = true
	}

	// Parameters assembled before any header land in the default group
	// without it being declared. Emitting them ahead of the first
	// header reproduces that placement; globals get their own section
	// so the flag survives the round trip.
	var globals []*customizer.Parameter
	for _, p := range schema.OrderedParameters() {
		if p.IsGlobal {
			globals = append(globals, p)
			continue
		}
		if declared[p.Group] {
			continue
		}
		b.WriteString(e.ParameterLine(p))
		b.WriteByte('\n')
	}

	if len(globals) > 0 {
		b.WriteString("\n/* [Global] */\n")
		for _, p := range globals {
			b.WriteString(e.ParameterLine(p))
			b.WriteByte('\n')
		}
	}

	for _, g := range schema.Groups {
		header := g.Label
		if g.Annotation != "" {
			header += ":" + g.Annotation
		}
		fmt.Fprintf(&b, "\n/* [%s] */\n", header)
		for _, p := range schema.GroupParameters(g.ID) {
			if p.IsGlobal {
				continue
			}
			b.WriteString(e.ParameterLine(p))
			b.WriteByte('\n')
		}
	}

	if len(schema.HiddenParameters) > 0 {
		b.WriteString("\n/* [Hidden] */\n")
		for _, h := range sortedHidden(schema) {
			fmt.Fprintf(&b, "%s = %s;\n", h.Name, FormatValue(h.Value, h.Type))
		}
	}

	fmt.Fprintf(&b, "\nmodule %s() {}\n", customizer.SentinelModule)
	return strings.TrimLeft(b.String(), "\n")
}

// ParameterLine emits one parameter declaration with its inline
// annotation and description.
func (e *Emitter) ParameterLine(p *customizer.Parameter) string {
	line := fmt.Sprintf("%s = %s;", p.Name, FormatValue(p.Default, p.Type))

	annotation := formatAnnotation(p)
	comment := strings.TrimSpace(annotation + " " + commentText(p))
	if comment != "" {
		line += " // " + comment
	}
	return line
}

// commentText assembles the description plus any dependency directive.
func commentText(p *customizer.Parameter) string {
	text := p.Description
	if p.Dependency != nil {
		directive := fmt.Sprintf("@depends(%s%s%s)",
			p.Dependency.Parameter, p.Dependency.Operator, p.Dependency.Value)
		if text != "" {
			text += " "
		}
		text += directive
	}
	return text
}

// FormatValue renders a value as OpenSCAD literal text for the given
// parameter type.
func FormatValue(v customizer.Value, typ customizer.ParamType) string {
	switch v.Kind {
	case customizer.KindBool:
		return strconv.FormatBool(v.Bool)
	case customizer.KindNumber:
		return formatNumber(v.Num)
	case customizer.KindVector:
		parts := make([]string, len(v.Vec))
		for i, c := range v.Vec {
			parts[i] = FormatValue(c, typ)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		if typ == customizer.TypeRaw {
			return v.Str
		}
		return strconv.Quote(v.Str)
	}
}

// formatNumber trims a float to at most four decimals, dropping the
// fraction entirely for whole values.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// formatAnnotation renders the bracket hint for a parameter, or "".
func formatAnnotation(p *customizer.Parameter) string {
	switch p.UIType {
	case customizer.UIColor:
		return "[color]"
	case customizer.UIFile:
		if len(p.AcceptedExtensions) > 0 {
			return "[file:" + strings.Join(p.AcceptedExtensions, ",") + "]"
		}
		return "[file]"
	case customizer.UISlider:
		switch {
		case p.Minimum != nil && p.Step != nil && p.Maximum != nil:
			return fmt.Sprintf("[%s:%s:%s]",
				formatNumber(*p.Minimum), formatNumber(*p.Step), formatNumber(*p.Maximum))
		case p.Minimum != nil && p.Maximum != nil:
			return fmt.Sprintf("[%s:%s]", formatNumber(*p.Minimum), formatNumber(*p.Maximum))
		case p.Maximum != nil:
			return fmt.Sprintf("[%s]", formatNumber(*p.Maximum))
		}
	case customizer.UISelect, customizer.UIToggle:
		if len(p.Enum) > 0 {
			opts := make([]string, len(p.Enum))
			for i, opt := range p.Enum {
				opts[i] = formatEnumOption(p, opt)
			}
			return "[" + strings.Join(opts, ", ") + "]"
		}
	}

	if p.MaxLength != nil {
		return strconv.Itoa(*p.MaxLength)
	}
	if p.Step != nil && p.Type == customizer.TypeNumber {
		return formatNumber(*p.Step)
	}
	return ""
}

// formatEnumOption renders one enum entry; numeric parameters keep
// their option values unquoted.
func formatEnumOption(p *customizer.Parameter, opt customizer.EnumOption) string {
	value := opt.Value
	if p.Type != customizer.TypeInteger && p.Type != customizer.TypeNumber {
		value = strconv.Quote(opt.Value)
	}
	if opt.HasLabel {
		return value + ":" + opt.Label
	}
	return value
}

func sortedHidden(schema *customizer.Schema) []customizer.HiddenParameter {
	names := make([]string, 0, len(schema.HiddenParameters))
	for name := range schema.HiddenParameters {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]customizer.HiddenParameter, len(names))
	for i, name := range names {
		out[i] = schema.HiddenParameters[name]
	}
	return out
}
