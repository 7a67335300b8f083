// Package customizer parses OpenSCAD source annotated in the Customizer
// convention into a parameter schema. Group headers, bracket hints, unit
// hints, and @depends directives are recognized; everything else in the
// source is ignored. The parser is a pure function of its input and
// matches the desktop Customizer's literal-only assignment rules,
// including its quirks.
package customizer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParamType identifies the value type of a parameter.
type ParamType string

const (
	TypeInteger ParamType = "integer"
	TypeNumber  ParamType = "number"
	TypeString  ParamType = "string"
	TypeBoolean ParamType = "boolean"
	TypeVector  ParamType = "vector"
	TypeColor   ParamType = "color"
	TypeFile    ParamType = "file"
	TypeRaw     ParamType = "raw"
)

// UIType identifies the control used to edit a parameter.
type UIType string

const (
	UIInput  UIType = "input"
	UISlider UIType = "slider"
	UISelect UIType = "select"
	UIToggle UIType = "toggle"
	UIColor  UIType = "color"
	UIFile   UIType = "file"
	UIRaw    UIType = "raw"
)

// FailureReason classifies why a vector component could not be parsed
// as a literal. Parameters carrying one are downgraded to TypeRaw.
type FailureReason string

const (
	FailExpression FailureReason = "expression_detected"
	FailVariable   FailureReason = "variable_reference"
	FailFunction   FailureReason = "function_call"
	FailUnparsable FailureReason = "unparseable"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindString
	KindBool
	KindVector
)

// Value is a parsed literal value. Exactly one field (selected by Kind)
// is meaningful.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Bool bool
	Vec  []Value
}

// NumberValue returns a numeric Value.
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// VectorValue returns a vector Value.
func VectorValue(vs []Value) Value { return Value{Kind: KindVector, Vec: vs} }

// String renders the value the way the runtime compares it: numbers
// without trailing zeros, booleans as true/false, vectors in bracket
// notation.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindVector:
		parts := make([]string, len(v.Vec))
		for i, c := range v.Vec {
			parts[i] = c.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return v.Str
	}
}

// MarshalJSON emits the natural JSON form of the variant.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindVector:
		return json.Marshal(v.Vec)
	default:
		return json.Marshal(v.Str)
	}
}

// UnmarshalJSON accepts the natural JSON form emitted by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case float64:
		*v = NumberValue(t)
	case bool:
		*v = BoolValue(t)
	case string:
		*v = StringValue(t)
	case []any:
		vec := make([]Value, len(t))
		for i := range t {
			inner, err := json.Marshal(t[i])
			if err != nil {
				return err
			}
			if err := vec[i].UnmarshalJSON(inner); err != nil {
				return err
			}
		}
		*v = VectorValue(vec)
	default:
		return fmt.Errorf("unsupported value %v", raw)
	}
	return nil
}

// MarshalYAML mirrors the JSON form for YAML dumps.
func (v Value) MarshalYAML() (any, error) {
	switch v.Kind {
	case KindNumber:
		return v.Num, nil
	case KindBool:
		return v.Bool, nil
	case KindVector:
		return v.Vec, nil
	default:
		return v.Str, nil
	}
}

// UnmarshalYAML accepts the natural YAML form.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		vec := make([]Value, len(node.Content))
		for i, c := range node.Content {
			if err := vec[i].UnmarshalYAML(c); err != nil {
				return err
			}
		}
		*v = VectorValue(vec)
		return nil
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return err
			}
			*v = BoolValue(b)
		case "!!int", "!!float":
			var f float64
			if err := node.Decode(&f); err != nil {
				return err
			}
			*v = NumberValue(f)
		default:
			*v = StringValue(node.Value)
		}
		return nil
	default:
		return fmt.Errorf("unsupported value node kind %d", node.Kind)
	}
}

// EnumOption is one entry of a select control.
type EnumOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	HasLabel bool   `json:"hasLabel"`
}

// Dependency is a conditional-visibility edge: the owning parameter is
// shown only while the controlling parameter's value satisfies the
// comparison.
type Dependency struct {
	Parameter string `json:"parameter"`
	Operator  string `json:"operator"` // "==" or "!="
	Value     string `json:"value"`
}

// VectorComponent describes one axis of a vector parameter.
type VectorComponent struct {
	Label   string   `json:"label"`
	Value   float64  `json:"value"`
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`
	Step    *float64 `json:"step,omitempty"`
	Unit    string   `json:"unit,omitempty"`
}

// Parameter is one Customizer control.
type Parameter struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Default     Value     `json:"default"`
	Group       string    `json:"group"`
	Order       int       `json:"order"`
	Description string    `json:"description,omitempty"`
	UIType      UIType    `json:"uiType"`

	Minimum *float64     `json:"minimum,omitempty"`
	Maximum *float64     `json:"maximum,omitempty"`
	Step    *float64     `json:"step,omitempty"`
	Enum    []EnumOption `json:"enum,omitempty"`
	Unit    string       `json:"unit,omitempty"`

	Dependency *Dependency `json:"dependency,omitempty"`
	IsGlobal   bool        `json:"isGlobal,omitempty"`

	Components []VectorComponent `json:"components,omitempty"`

	// Raw fallback for vectors with non-literal components.
	RawValue           string        `json:"rawValue,omitempty"`
	ParseFailureReason FailureReason `json:"parseFailureReason,omitempty"`

	AcceptedExtensions []string `json:"acceptedExtensions,omitempty"`
	MaxLength          *int     `json:"maxLength,omitempty"`
}

// Group is one tab of the Customizer panel.
type Group struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Order      int    `json:"order"`
	Annotation string `json:"annotation,omitempty"` // "advanced" or "simple"
}

// HiddenParameter is an assignment captured from the reserved Hidden
// group. It never renders a control but its value is still available to
// consumers (presets, re-emission).
type HiddenParameter struct {
	Name  string    `json:"name"`
	Type  ParamType `json:"type"`
	Value Value     `json:"value"`
}

// Schema is the parse result: everything the presentation layer needs
// to build the Customizer panel.
type Schema struct {
	Groups           []Group                    `json:"groups"`
	Parameters       map[string]*Parameter      `json:"parameters"`
	HiddenParameters map[string]HiddenParameter `json:"hiddenParameters"`
	Libraries        []string                   `json:"libraries"`
}

// OrderedParameters returns the visible parameters sorted by insertion
// order, for stable rendering and emission.
func (s *Schema) OrderedParameters() []*Parameter {
	params := make([]*Parameter, 0, len(s.Parameters))
	for _, p := range s.Parameters {
		params = append(params, p)
	}
	sort.Slice(params, func(i, j int) bool {
		return params[i].Order < params[j].Order
	})
	return params
}

// GroupParameters returns the ordered parameters belonging to the given
// group id. Global parameters are not duplicated here; callers that
// surface them on every tab ask for them via GlobalParameters.
func (s *Schema) GroupParameters(groupID string) []*Parameter {
	var out []*Parameter
	for _, p := range s.OrderedParameters() {
		if p.Group == groupID {
			out = append(out, p)
		}
	}
	return out
}

// GlobalParameters returns the ordered parameters flagged isGlobal.
func (s *Schema) GlobalParameters() []*Parameter {
	var out []*Parameter
	for _, p := range s.OrderedParameters() {
		if p.IsGlobal {
			out = append(out, p)
		}
	}
	return out
}
