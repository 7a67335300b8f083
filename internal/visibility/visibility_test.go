package visibility

import (
	"reflect"
	"testing"

	"github.com/openscad-forge/customizer/internal/customizer"
)

const fixture = `
mode = "basic"; // [basic, advanced]
detail = 3; // @depends(mode==advanced)
warning = "check"; // @depends(detail!=3)
standalone = 1;
`

func TestVisible(t *testing.T) {
	eq := &customizer.Dependency{Parameter: "mode", Operator: "==", Value: "advanced"}
	ne := &customizer.Dependency{Parameter: "mode", Operator: "!=", Value: "advanced"}

	values := Values{"mode": "advanced"}
	if !Visible(values, eq) {
		t.Error("== edge must be visible when values match")
	}
	if Visible(values, ne) {
		t.Error("!= edge must hide when values match")
	}

	values["mode"] = "basic"
	if Visible(values, eq) {
		t.Error("== edge must hide when values differ")
	}
	if !Visible(values, nil) {
		t.Error("nil edge is always visible")
	}
}

func TestVisible_MissingControllerComparesAsEmpty(t *testing.T) {
	dep := &customizer.Dependency{Parameter: "ghost", Operator: "==", Value: ""}
	if !Visible(Values{}, dep) {
		t.Error("absent controller must compare as empty string")
	}

	dep.Value = "x"
	if Visible(Values{}, dep) {
		t.Error("absent controller cannot equal a non-empty value")
	}
}

func TestEvaluate_FullPass(t *testing.T) {
	schema := customizer.Parse(fixture)
	values := DefaultValues(schema)

	vis := Evaluate(schema, values)
	if vis["detail"] {
		t.Error("detail must hide while mode is basic")
	}
	if vis["warning"] {
		t.Error("warning must hide while detail equals 3")
	}
	if !vis["standalone"] || !vis["mode"] {
		t.Error("parameters without edges are always visible")
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	schema := customizer.Parse(fixture)
	values := DefaultValues(schema)

	first := Evaluate(schema, values)
	second := Evaluate(schema, values)
	if !reflect.DeepEqual(first, second) {
		t.Error("evaluation must be a pure function of its inputs")
	}
}

func TestGraph_Dependents(t *testing.T) {
	schema := customizer.Parse(fixture)
	g := NewGraph(schema)

	if g.EdgeCount() != 2 {
		t.Fatalf("expected 2 edges, got %d", g.EdgeCount())
	}
	if deps := g.Dependents("mode"); !reflect.DeepEqual(deps, []string{"detail"}) {
		t.Errorf("dependents of mode: %v", deps)
	}
	if deps := g.Dependents("standalone"); len(deps) != 0 {
		t.Errorf("standalone controls nothing, got %v", deps)
	}
}

func TestGraph_OnChange(t *testing.T) {
	schema := customizer.Parse(fixture)
	g := NewGraph(schema)
	values := DefaultValues(schema)

	values["mode"] = "advanced"
	updates := g.OnChange("mode", values)
	if show, ok := updates["detail"]; !ok || !show {
		t.Errorf("detail must become visible after the change, got %v", updates)
	}
	if _, ok := updates["warning"]; ok {
		t.Error("warning does not depend on mode and must not be re-evaluated")
	}

	values["detail"] = "5"
	updates = g.OnChange("detail", values)
	if show := updates["warning"]; !show {
		t.Error("warning must show once detail leaves 3")
	}
}
