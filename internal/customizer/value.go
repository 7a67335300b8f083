package customizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// parsedValue is the result of classifying a right-hand-side expression.
type parsedValue struct {
	value   Value
	typ     ParamType // TypeInteger, TypeNumber, TypeString, TypeBoolean or TypeVector
	literal bool
	// set when a vector contained a non-literal component
	failure FailureReason
}

var (
	numberPattern     = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	functionPattern   = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*\s*\(`)
)

// parseValue classifies a trimmed right-hand-side expression. The rules
// mirror the desktop tool: brackets, quotes, number, boolean, in that
// order; anything else is an unquoted string and never literal.
func parseValue(expr string) parsedValue {
	expr = strings.TrimSpace(expr)

	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") && len(expr) >= 2 {
		return parseVector(expr[1 : len(expr)-1])
	}

	if len(expr) >= 2 {
		if (expr[0] == '"' && expr[len(expr)-1] == '"') ||
			(expr[0] == '\'' && expr[len(expr)-1] == '\'') {
			return parsedValue{
				value:   StringValue(expr[1 : len(expr)-1]),
				typ:     TypeString,
				literal: true,
			}
		}
	}

	if numberPattern.MatchString(expr) {
		n, err := strconv.ParseFloat(expr, 64)
		if err == nil {
			typ := TypeNumber
			if !strings.Contains(expr, ".") {
				typ = TypeInteger
			}
			return parsedValue{value: NumberValue(n), typ: typ, literal: true}
		}
	}

	if expr == "true" || expr == "false" {
		return parsedValue{value: BoolValue(expr == "true"), typ: TypeBoolean, literal: true}
	}

	return parsedValue{value: StringValue(expr), typ: TypeString, literal: false}
}

// parseVector parses the interior of a bracketed vector. When every
// component is literal the result is a literal vector; otherwise the
// first offending component is diagnosed so the assembler can downgrade
// the parameter to a raw expression input instead of dropping it.
func parseVector(interior string) parsedValue {
	parts := splitVector(interior)
	values := make([]Value, 0, len(parts))
	for _, part := range parts {
		pv := parseValue(part)
		if !pv.literal {
			reason := pv.failure
			if reason == "" {
				reason = classifyFailure(part)
			}
			return parsedValue{typ: TypeVector, literal: false, failure: reason}
		}
		values = append(values, pv.value)
	}
	return parsedValue{value: VectorValue(values), typ: TypeVector, literal: true}
}

// splitVector comma-splits vector interior text, honoring nested
// brackets and quoted strings so that [1, [2, 3], "a,b"] yields three
// components.
func splitVector(interior string) []string {
	var parts []string
	depth := 0
	inString := false
	var quote byte
	escaped := false
	start := 0

	for i := 0; i < len(interior); i++ {
		c := interior[i]
		if inString {
			if escaped {
				escaped = false
				continue
			}
			switch c {
			case '\\':
				escaped = true
			case quote:
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(interior[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(interior[start:]); last != "" || len(parts) > 0 {
		parts = append(parts, last)
	}
	return parts
}

// classifyFailure names why a component is not a literal, checked in
// the fixed desktop order: arithmetic first, then bare identifiers,
// then calls.
func classifyFailure(component string) FailureReason {
	component = strings.TrimSpace(component)
	switch {
	case strings.ContainsAny(component, "+-*/%"):
		return FailExpression
	case identifierPattern.MatchString(component):
		return FailVariable
	case functionPattern.MatchString(component):
		return FailFunction
	default:
		return FailUnparsable
	}
}

// componentLabel returns the default axis label for a vector component:
// X, Y, Z, W for dimensions up to four, a bracketed index beyond.
func componentLabel(index, dimension int) string {
	if dimension <= 4 {
		return [...]string{"X", "Y", "Z", "W"}[index]
	}
	return fmt.Sprintf("[%d]", index)
}
