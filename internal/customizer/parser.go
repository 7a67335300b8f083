package customizer

import (
	"bufio"
	"regexp"
	"strings"
)

// SentinelModule terminates parsing: nothing after a depth-0 module
// declaration with this name enters the schema. The desktop tool uses
// it to fence off non-parametric code.
const SentinelModule = "__Customizer_Limit__"

var (
	// assignmentPattern locates candidate assignments in masked code.
	// Braces are excluded from the value span so declarations with
	// bodies on the same line never swallow a real assignment.
	assignmentPattern = regexp.MustCompile(`([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*([^;{}]*);`)

	sentinelPattern = regexp.MustCompile(`\bmodule\s+` + SentinelModule + `\b`)
)

// Parse converts annotated OpenSCAD source into a Customizer schema.
// It is a pure function: identical input yields a structurally
// identical schema, and no error can escape. Malformed constructs
// degrade per the rules documented on the individual components.
func Parse(source string) *Schema {
	schema := &Schema{
		Groups:           []Group{},
		Parameters:       make(map[string]*Parameter),
		HiddenParameters: make(map[string]HiddenParameter),
		Libraries:        DetectLibraries(source),
	}
	if source == "" {
		return schema
	}

	var (
		st         lineState
		depth      int
		current    = groupHeader{name: defaultGroupName}
		tabUnit    string
		pending    string
		groupOrder int
		paramOrder int
		seenGroups = make(map[string]bool)
	)

	scanner := bufio.NewScanner(strings.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		wasInBlock := st.inBlockComment

		var masked maskedLine
		masked, st = maskLine(line, st)
		startDepth := depth
		depth += braceDelta(masked.code)

		if wasInBlock && st.inBlockComment {
			// Still inside a multi-line block comment; group headers
			// are single-line by contract. A line that closes the
			// comment falls through: its masked remainder is code.
			continue
		}

		// The sentinel fences off everything behind it, wherever it
		// sits on the line; code preceding it still counts.
		code := masked.code
		sentinelAt := -1
		for _, loc := range sentinelPattern.FindAllStringIndex(masked.code, -1) {
			if startDepth+braceDelta(masked.code[:loc[0]]) == 0 {
				sentinelAt = loc[0]
				break
			}
		}
		if sentinelAt >= 0 {
			code = masked.code[:sentinelAt]
			if strings.TrimSpace(code) == "" {
				break
			}
		}

		if startDepth == 0 {
			if header, ok := parseGroupHeader(line); ok {
				current = header
				tabUnit = header.unit
				if !header.hidden && !header.global && !seenGroups[header.name] {
					seenGroups[header.name] = true
					schema.Groups = append(schema.Groups, Group{
						ID:         header.name,
						Label:      header.name,
						Order:      groupOrder,
						Annotation: header.annotation,
					})
					groupOrder++
				}
				pending = ""
				continue
			}
		}

		codeBlank := strings.TrimSpace(code) == ""

		if codeBlank && masked.commentStart >= 0 {
			// Standalone comment: candidate description for the next
			// assignment, unless it is itself a bracket hint.
			text := strings.TrimSpace(line[masked.commentStart+2:])
			if !bracketHintPattern.MatchString(text) {
				pending = text
			}
			continue
		}

		if codeBlank {
			// Blank (or comment-delimiter-only) line breaks the
			// standalone-comment adjacency.
			pending = ""
			continue
		}

		trailing := ""
		if masked.commentStart >= 0 && sentinelAt < 0 {
			trailing = line[masked.commentStart+2:]
		}

		matches := assignmentPattern.FindAllStringSubmatchIndex(code, -1)
		for i, m := range matches {
			// Depth at the assignment itself, not at line start: a
			// one-line module body must not leak its assignments.
			if startDepth+braceDelta(code[:m[0]]) != 0 {
				continue
			}
			// The trailing annotation (and any captured standalone
			// comment) attaches to the last assignment on the line.
			tr, pd := "", ""
			if i == len(matches)-1 {
				tr, pd = trailing, pending
			}

			addParameter(schema, assignmentContext{
				name:     line[m[2]:m[3]],
				rhs:      line[m[4]:m[5]],
				group:    current,
				tabUnit:  tabUnit,
				trailing: tr,
				pending:  pd,
				order:    &paramOrder,
			})
		}
		pending = ""

		if sentinelAt >= 0 {
			break
		}
	}

	if len(schema.Groups) == 0 && len(schema.Parameters) > 0 {
		schema.Groups = append(schema.Groups, Group{
			ID:    defaultGroupName,
			Label: defaultGroupName,
			Order: 0,
		})
	}

	return schema
}

// assignmentContext carries the ambient state one assignment is parsed
// under.
type assignmentContext struct {
	name     string
	rhs      string
	group    groupHeader
	tabUnit  string
	trailing string
	pending  string
	order    *int
}

// addParameter folds one depth-0 assignment into the schema. Non-literal
// scalars are dropped along with any annotation attached to them;
// non-literal vectors survive as raw expression inputs.
func addParameter(schema *Schema, ctx assignmentContext) {
	pv := parseValue(ctx.rhs)

	if ctx.group.hidden {
		if pv.literal {
			schema.HiddenParameters[ctx.name] = HiddenParameter{
				Name:  ctx.name,
				Type:  pv.typ,
				Value: pv.value,
			}
		}
		return
	}

	if !pv.literal && pv.typ != TypeVector {
		return
	}

	p := &Parameter{
		Name:    ctx.name,
		Type:    pv.typ,
		Default: pv.value,
		Group:   ctx.group.name,
		UIType:  UIInput,
	}
	if ctx.group.global {
		p.Group = defaultGroupName
		p.IsGlobal = true
	}
	if pv.typ == TypeBoolean {
		p.UIType = UIToggle
	}

	if !pv.literal {
		p.Type = TypeRaw
		p.UIType = UIRaw
		p.RawValue = strings.TrimSpace(ctx.rhs)
		p.ParseFailureReason = pv.failure
		p.Default = StringValue(p.RawValue)
	}

	applyAnnotation(p, stripDependency(ctx.trailing), stripDependency(ctx.pending))
	p.Dependency = parseDependency(ctx.pending, ctx.trailing)

	if p.Unit == "" {
		p.Unit = ctx.tabUnit
	}

	if p.Type == TypeVector {
		p.Components = vectorComponents(p)
	}

	if existing, ok := schema.Parameters[ctx.name]; ok {
		// Re-assignment: the newest record wins but keeps its original
		// slot in the panel.
		p.Order = existing.Order
	} else {
		p.Order = *ctx.order
		*ctx.order++
	}
	schema.Parameters[ctx.name] = p
}

// vectorComponents builds the per-axis component descriptors, sharing
// the parameter's range hints and unit across all axes the way the
// desktop tool does.
func vectorComponents(p *Parameter) []VectorComponent {
	dim := len(p.Default.Vec)
	comps := make([]VectorComponent, 0, dim)
	for i, v := range p.Default.Vec {
		c := VectorComponent{
			Label:   componentLabel(i, dim),
			Minimum: p.Minimum,
			Maximum: p.Maximum,
			Step:    p.Step,
			Unit:    p.Unit,
		}
		if v.Kind == KindNumber {
			c.Value = v.Num
		}
		comps = append(comps, c)
	}
	return comps
}
