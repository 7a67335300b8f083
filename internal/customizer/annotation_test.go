package customizer

import "testing"

func numParam(name string, v float64, typ ParamType) *Parameter {
	return &Parameter{Name: name, Type: typ, Default: NumberValue(v), UIType: UIInput}
}

func TestApplyBracketHint_Range(t *testing.T) {
	p := numParam("size", 5, TypeInteger)
	applyBracketHint(p, "1:10")

	if p.UIType != UISlider {
		t.Errorf("expected slider, got %s", p.UIType)
	}
	if p.Minimum == nil || *p.Minimum != 1 {
		t.Errorf("minimum not set: %v", p.Minimum)
	}
	if p.Maximum == nil || *p.Maximum != 10 {
		t.Errorf("maximum not set: %v", p.Maximum)
	}
	if p.Step != nil {
		t.Errorf("step must stay unset for min:max, got %v", *p.Step)
	}
}

func TestApplyBracketHint_RangeWithStep(t *testing.T) {
	p := numParam("size", 5, TypeInteger)
	applyBracketHint(p, "1:0.5:10")

	if p.UIType != UISlider {
		t.Errorf("expected slider, got %s", p.UIType)
	}
	if p.Step == nil || *p.Step != 0.5 {
		t.Errorf("step not set: %v", p.Step)
	}
	if p.Type != TypeNumber {
		t.Errorf("fractional step must force number type, got %s", p.Type)
	}
}

func TestApplyBracketHint_IntegralStepKeepsInteger(t *testing.T) {
	p := numParam("count", 4, TypeNumber)
	applyBracketHint(p, "0:2:8")

	if p.Type != TypeInteger {
		t.Errorf("integral step must force integer type, got %s", p.Type)
	}
}

func TestApplyBracketHint_LegacySingleBound(t *testing.T) {
	p := numParam("height", 30, TypeInteger)
	applyBracketHint(p, "100")

	if p.UIType != UISlider {
		t.Errorf("expected slider, got %s", p.UIType)
	}
	if p.Maximum == nil || *p.Maximum != 100 {
		t.Errorf("maximum not set: %v", p.Maximum)
	}
	if p.Minimum != nil {
		t.Errorf("minimum must stay unset, got %v", *p.Minimum)
	}
}

func TestApplyBracketHint_Enum(t *testing.T) {
	p := &Parameter{Name: "size", Type: TypeString, Default: StringValue("small"), UIType: UIInput}
	applyBracketHint(p, "small, medium, large")

	if p.UIType != UISelect {
		t.Errorf("expected select, got %s", p.UIType)
	}
	if len(p.Enum) != 3 {
		t.Fatalf("expected 3 options, got %d", len(p.Enum))
	}
	for _, opt := range p.Enum {
		if opt.HasLabel {
			t.Errorf("option %q must not have a label", opt.Value)
		}
	}
}

func TestApplyBracketHint_EnumWithLabels(t *testing.T) {
	p := numParam("mode", 1, TypeInteger)
	applyBracketHint(p, "1:Small, 2:Large")

	if len(p.Enum) != 2 {
		t.Fatalf("expected 2 options, got %d", len(p.Enum))
	}
	if p.Enum[0].Value != "1" || p.Enum[0].Label != "Small" || !p.Enum[0].HasLabel {
		t.Errorf("unexpected first option: %+v", p.Enum[0])
	}
	// Numeric-only values with a numeric default keep the numeric type.
	if p.Type != TypeInteger {
		t.Errorf("numeric enum lost numeric type: %s", p.Type)
	}
}

func TestApplyBracketHint_StringEnumStringifiesNumericDefault(t *testing.T) {
	p := numParam("mode", 1, TypeInteger)
	applyBracketHint(p, "1, auto")

	if p.Type != TypeString {
		t.Errorf("mixed enum must stringify, got %s", p.Type)
	}
}

func TestApplyBracketHint_TogglePair(t *testing.T) {
	p := &Parameter{Name: "flip", Type: TypeString, Default: StringValue("yes"), UIType: UIInput}
	applyBracketHint(p, "yes, no")

	if p.UIType != UIToggle {
		t.Errorf("yes/no pair must render a toggle, got %s", p.UIType)
	}
}

func TestApplyBracketHint_Color(t *testing.T) {
	p := &Parameter{Name: "shade", Type: TypeString, Default: StringValue("#ff0000"), UIType: UIInput}
	applyBracketHint(p, "color")

	if p.UIType != UIColor || p.Type != TypeColor {
		t.Errorf("expected color control, got %s/%s", p.UIType, p.Type)
	}
}

func TestApplyBracketHint_FileWithExtensions(t *testing.T) {
	p := &Parameter{Name: "logo", Type: TypeString, Default: StringValue(""), UIType: UIInput}
	applyBracketHint(p, "file:svg,dxf")

	if p.UIType != UIFile || p.Type != TypeFile {
		t.Errorf("expected file control, got %s/%s", p.UIType, p.Type)
	}
	if len(p.AcceptedExtensions) != 2 || p.AcceptedExtensions[0] != "svg" {
		t.Errorf("extensions not captured: %v", p.AcceptedExtensions)
	}
}

func TestApplyBracketHint_MalformedRangeFallsThroughToEnum(t *testing.T) {
	p := &Parameter{Name: "ratio", Type: TypeString, Default: StringValue("16:9"), UIType: UIInput}
	applyBracketHint(p, "16:9, 4:3")

	if p.UIType != UISelect {
		t.Errorf("non-numeric colon list must become a select, got %s", p.UIType)
	}
	if len(p.Enum) != 2 {
		t.Fatalf("expected 2 options, got %d", len(p.Enum))
	}
}

func TestApplyTrailingHint_StringMaxLength(t *testing.T) {
	p := &Parameter{Name: "label", Type: TypeString, Default: StringValue("hi"), UIType: UIInput}
	if !applyTrailingHint(p, "8") {
		t.Fatal("bare integer after string parameter must be a hint")
	}
	if p.MaxLength == nil || *p.MaxLength != 8 {
		t.Errorf("max length not set: %v", p.MaxLength)
	}
}

func TestApplyTrailingHint_NumericStep(t *testing.T) {
	p := numParam("gap", 2, TypeInteger)
	if !applyTrailingHint(p, ".5") {
		t.Fatal("bare decimal after numeric parameter must be a hint")
	}
	if p.Step == nil || *p.Step != 0.5 {
		t.Errorf("step not set: %v", p.Step)
	}
	if p.Type != TypeNumber {
		t.Errorf("integer must coerce to number, got %s", p.Type)
	}
}

func TestApplyAnnotation_PendingCommentWinsAsDescription(t *testing.T) {
	p := numParam("size", 5, TypeInteger)
	applyAnnotation(p, "inline text", "Overall size of the part")

	if p.Description != "Overall size of the part" {
		t.Errorf("standalone comment must win, got %q", p.Description)
	}
}

func TestApplyAnnotation_InlineDescription(t *testing.T) {
	p := numParam("size", 5, TypeInteger)
	applyAnnotation(p, "[1:10] Overall size", "")

	if p.UIType != UISlider {
		t.Errorf("hint not applied, uiType %s", p.UIType)
	}
	if p.Description != "Overall size" {
		t.Errorf("remaining text must become the description, got %q", p.Description)
	}
}

func TestResolveUnit_Precedence(t *testing.T) {
	// Description keyword beats name inference.
	if got := resolveUnit("wall_thickness", "angle in degrees"); got != "deg" {
		t.Errorf("description keyword must win, got %q", got)
	}
	if got := resolveUnit("rotation_angle", ""); got != "deg" {
		t.Errorf("angle name must infer deg, got %q", got)
	}
	if got := resolveUnit("icon_px", ""); got != "px" {
		t.Errorf("_px suffix must infer px, got %q", got)
	}
	if got := resolveUnit("wall_thickness", ""); got != "mm" {
		t.Errorf("dimension name must infer mm, got %q", got)
	}
	if got := resolveUnit("mystery", ""); got != "" {
		t.Errorf("no cues must yield empty unit, got %q", got)
	}
}

func TestHeaderUnit(t *testing.T) {
	tests := []struct {
		header string
		unit   string
	}{
		{"Dimensions in mm", "mm"},
		{"Sizes in millimeters", "mm"},
		{"Angles in degrees", "deg"},
		{"Scale in percent", "%"},
		{"Plain Header", ""},
	}
	for _, tt := range tests {
		if got := headerUnit(tt.header); got != tt.unit {
			t.Errorf("%q: expected %q, got %q", tt.header, tt.unit, got)
		}
	}
}
