package customizer

import "testing"

func TestParseValue_Classification(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		typ     ParamType
		literal bool
	}{
		{"integer", "42", TypeInteger, true},
		{"negative integer", "-7", TypeInteger, true},
		{"decimal", "3.14", TypeNumber, true},
		{"leading dot decimal", ".5", TypeNumber, true},
		{"exponent", "1e3", TypeInteger, true},
		{"decimal exponent", "1.5e-2", TypeNumber, true},
		{"double quoted", `"hello"`, TypeString, true},
		{"single quoted", "'hello'", TypeString, true},
		{"true", "true", TypeBoolean, true},
		{"false", "false", TypeBoolean, true},
		{"vector", "[1, 2]", TypeVector, true},
		{"identifier", "other_var", TypeString, false},
		{"arithmetic", "width + 2", TypeString, false},
		{"function call", "max(1, 2)", TypeString, false},
		{"truelike identifier", "truthy", TypeString, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pv := parseValue(tt.expr)
			if pv.typ != tt.typ {
				t.Errorf("type: expected %s, got %s", tt.typ, pv.typ)
			}
			if pv.literal != tt.literal {
				t.Errorf("literal: expected %v, got %v", tt.literal, pv.literal)
			}
		})
	}
}

func TestParseValue_StringUnwrapped(t *testing.T) {
	pv := parseValue(`"small"`)
	if pv.value.Str != "small" {
		t.Errorf(`expected "small" unquoted, got %q`, pv.value.Str)
	}
}

func TestParseVector_Literal(t *testing.T) {
	pv := parseValue("[1, 2, 3]")
	if !pv.literal {
		t.Fatalf("expected literal vector, failure %q", pv.failure)
	}
	if len(pv.value.Vec) != 3 {
		t.Fatalf("expected 3 components, got %d", len(pv.value.Vec))
	}
	for i, want := range []float64{1, 2, 3} {
		if got := pv.value.Vec[i].Num; got != want {
			t.Errorf("component %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestParseVector_Nested(t *testing.T) {
	pv := parseValue(`[[1, 2], [3, 4]]`)
	if !pv.literal {
		t.Fatalf("expected literal nested vector, failure %q", pv.failure)
	}
	if len(pv.value.Vec) != 2 {
		t.Fatalf("expected 2 components, got %d", len(pv.value.Vec))
	}
	if pv.value.Vec[0].Kind != KindVector || len(pv.value.Vec[0].Vec) != 2 {
		t.Errorf("first component not a 2-vector: %+v", pv.value.Vec[0])
	}
}

func TestParseVector_StringWithComma(t *testing.T) {
	pv := parseValue(`["a,b", "c"]`)
	if !pv.literal {
		t.Fatalf("expected literal vector, failure %q", pv.failure)
	}
	if len(pv.value.Vec) != 2 {
		t.Fatalf("comma inside string split the component: %d parts", len(pv.value.Vec))
	}
	if pv.value.Vec[0].Str != "a,b" {
		t.Errorf(`expected "a,b", got %q`, pv.value.Vec[0].Str)
	}
}

func TestParseVector_FailureReasons(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		reason FailureReason
	}{
		{"expression", "[1, x + 2]", FailExpression},
		{"variable", "[1, width]", FailVariable},
		{"function call", "[1, len(v)]", FailFunction},
		{"unparseable", `[1, "unterminated]`, FailUnparsable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pv := parseValue(tt.expr)
			if pv.literal {
				t.Fatal("expected non-literal vector")
			}
			if pv.typ != TypeVector {
				t.Fatalf("expected vector type, got %s", pv.typ)
			}
			if pv.failure != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, pv.failure)
			}
		})
	}
}

func TestComponentLabel(t *testing.T) {
	if got := componentLabel(0, 3); got != "X" {
		t.Errorf("expected X, got %s", got)
	}
	if got := componentLabel(3, 4); got != "W" {
		t.Errorf("expected W, got %s", got)
	}
	if got := componentLabel(4, 6); got != "[4]" {
		t.Errorf("expected [4], got %s", got)
	}
}

func TestSplitVector_Empty(t *testing.T) {
	if parts := splitVector(""); len(parts) != 0 {
		t.Errorf("expected no components for empty interior, got %v", parts)
	}
}
