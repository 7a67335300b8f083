package customizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// bracketHintPattern extracts the first [...] hint from a trailing
// comment. Hint interiors never contain closing brackets.
var bracketHintPattern = regexp.MustCompile(`\[([^\]]*)\]`)

var (
	bareIntPattern     = regexp.MustCompile(`^\d+$`)
	bareDecimalPattern = regexp.MustCompile(`^(\d*\.\d+|\.\d+)$`)
	fileHintPattern    = regexp.MustCompile(`^file(?::\s*(.+))?$`)
)

// applyAnnotation interprets the comment text that followed the
// assignment's semicolon and mutates the parameter accordingly. The
// pending text is a standalone comment captured from the preceding
// line; when present it wins as the description and the trailing text
// is only mined for hints.
func applyAnnotation(p *Parameter, comment, pending string) {
	comment = strings.TrimSpace(comment)

	rest := comment
	if m := bracketHintPattern.FindStringSubmatchIndex(comment); m != nil {
		applyBracketHint(p, comment[m[2]:m[3]])
		rest = strings.TrimSpace(comment[:m[0]] + comment[m[1]:])
	}

	usedAsHint := applyTrailingHint(p, rest)

	if pending != "" {
		p.Description = pending
	} else if !usedAsHint {
		p.Description = rest
	}

	p.Unit = resolveUnit(p.Name, p.Description)
}

// applyTrailingHint handles the two bare-number comment forms: a bare
// integer after a string parameter sets its maximum length, a bare
// decimal after a numeric parameter sets its step (and forces the type
// from integer to number, since a fractional step implies fractional
// values). Returns whether the text was consumed as a hint.
func applyTrailingHint(p *Parameter, text string) bool {
	text = strings.TrimSpace(text)
	switch {
	case bareIntPattern.MatchString(text) && p.Type == TypeString:
		if n, err := strconv.Atoi(text); err == nil {
			p.MaxLength = &n
			return true
		}
	case bareDecimalPattern.MatchString(text) && (p.Type == TypeInteger || p.Type == TypeNumber):
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			p.Step = &f
			p.Type = TypeNumber
			return true
		}
	}
	return false
}

// applyBracketHint interprets the [...] mini-language: color and file
// directives, numeric ranges, the legacy single upper bound, and enum
// lists. A malformed range falls through to the enum interpretation
// rather than erroring out.
func applyBracketHint(p *Parameter, hint string) {
	hint = strings.TrimSpace(hint)
	if hint == "" || p.Type == TypeRaw {
		return
	}

	if strings.EqualFold(hint, "color") {
		p.UIType = UIColor
		p.Type = TypeColor
		return
	}

	if m := fileHintPattern.FindStringSubmatch(strings.ToLower(hint)); m != nil {
		p.UIType = UIFile
		p.Type = TypeFile
		if m[1] != "" {
			for _, ext := range strings.Split(m[1], ",") {
				ext = strings.TrimSpace(ext)
				if ext != "" {
					p.AcceptedExtensions = append(p.AcceptedExtensions, ext)
				}
			}
		}
		return
	}

	if !strings.Contains(hint, ",") {
		if applyRangeHint(p, hint) {
			return
		}
	}

	applyEnumHint(p, hint)
}

// applyRangeHint handles min:max, min:step:max, and the legacy single
// numeric upper bound. Returns false when the parts are not all
// numeric, so the caller can retry the hint as an enum list.
func applyRangeHint(p *Parameter, hint string) bool {
	parts := strings.Split(hint, ":")
	nums := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return false
		}
		nums = append(nums, f)
	}

	switch len(nums) {
	case 1:
		// Legacy single upper bound, only meaningful on numerics.
		if p.Type != TypeInteger && p.Type != TypeNumber {
			return false
		}
		p.UIType = UISlider
		p.Maximum = &nums[0]
	case 2:
		p.UIType = UISlider
		p.Minimum = &nums[0]
		p.Maximum = &nums[1]
	case 3:
		p.UIType = UISlider
		p.Minimum = &nums[0]
		p.Step = &nums[1]
		p.Maximum = &nums[2]
		if nums[1] == math.Trunc(nums[1]) {
			p.Type = TypeInteger
		} else {
			p.Type = TypeNumber
		}
	default:
		return false
	}
	return true
}

// applyEnumHint parses a comma-separated option list, each entry
// optionally a value:label pair. Exactly two options forming a
// true/false or yes/no pair render as a toggle instead of a select.
// A list whose values are all numeric keeps a numeric parameter
// numeric, so downstream consumers emit unquoted values.
func applyEnumHint(p *Parameter, hint string) {
	var options []EnumOption
	allNumeric := true
	for _, entry := range splitVector(hint) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		opt := EnumOption{Value: unquote(entry)}
		if idx := indexOutsideQuotes(entry, ':'); idx >= 0 {
			opt.Value = unquote(strings.TrimSpace(entry[:idx]))
			opt.Label = strings.TrimSpace(entry[idx+1:])
			opt.HasLabel = true
		} else {
			opt.Label = opt.Value
		}
		if !numberPattern.MatchString(opt.Value) {
			allNumeric = false
		}
		options = append(options, opt)
	}
	if len(options) == 0 {
		return
	}

	p.Enum = options
	if isTogglePair(options) {
		p.UIType = UIToggle
	} else {
		p.UIType = UISelect
	}

	// Desktop quirk: a numeric-only list around a numeric default keeps
	// the numeric type; any string option stringifies the control.
	if !allNumeric && (p.Type == TypeInteger || p.Type == TypeNumber) {
		p.Type = TypeString
	}
}

// indexOutsideQuotes finds the first occurrence of sep that is not
// inside a quoted span.
func indexOutsideQuotes(s string, sep byte) int {
	inString := false
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if c == quote {
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case sep:
			return i
		}
	}
	return -1
}

// isTogglePair reports whether two enum options form a boolean pair.
func isTogglePair(options []EnumOption) bool {
	if len(options) != 2 {
		return false
	}
	a := strings.ToLower(options[0].Value)
	b := strings.ToLower(options[1].Value)
	return (a == "true" && b == "false") || (a == "false" && b == "true") ||
		(a == "yes" && b == "no") || (a == "no" && b == "yes")
}

// unquote strips a single layer of matching quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// unitRule maps a textual cue to a measurement unit. The tables are
// ordered; the first match wins.
type unitRule struct {
	pattern *regexp.Regexp
	unit    string
}

// descriptionUnits match explicit unit keywords inside a description.
var descriptionUnits = []unitRule{
	{regexp.MustCompile(`(?i)\bmillimeters?\b|\bmm\b`), "mm"},
	{regexp.MustCompile(`(?i)\bcentimeters?\b|\bcm\b`), "cm"},
	{regexp.MustCompile(`(?i)\bdegrees?\b|\bdeg\b`), "deg"},
	{regexp.MustCompile(`(?i)\bpixels?\b|\bpx\b`), "px"},
	{regexp.MustCompile(`(?i)\binches\b`), "in"},
	{regexp.MustCompile(`(?i)\bpercent\b|%`), "%"},
}

// nameUnits infer a unit from the parameter name itself.
var nameUnits = []unitRule{
	{regexp.MustCompile(`(?i)_px$`), "px"},
	{regexp.MustCompile(`(?i)_mm$`), "mm"},
	{regexp.MustCompile(`(?i)_deg$|angle|rotation|tilt`), "deg"},
	{regexp.MustCompile(`(?i)width|height|depth|thickness|diameter|radius|length|size|clearance|offset`), "mm"},
}

// tabUnitPattern recognizes a "... in <unit>" suffix on a group header.
var tabUnitPattern = regexp.MustCompile(`(?i)\bin (px|pixels|mm|millimeters|cm|centimeters|deg|degrees|in|inches|%|percent)$`)

// canonicalUnits folds the long unit spellings onto their short forms.
var canonicalUnits = map[string]string{
	"pixels": "px", "millimeters": "mm", "centimeters": "cm",
	"degrees": "deg", "inches": "in", "percent": "%",
}

func canonicalUnit(u string) string {
	u = strings.ToLower(u)
	if c, ok := canonicalUnits[u]; ok {
		return c
	}
	return u
}

// resolveUnit applies the unit precedence: an explicit keyword in the
// description beats name-based inference; the ambient tab unit (applied
// by the assembler) is the last resort and so is not consulted here.
func resolveUnit(name, description string) string {
	for _, rule := range descriptionUnits {
		if rule.pattern.MatchString(description) {
			return rule.unit
		}
	}
	for _, rule := range nameUnits {
		if rule.pattern.MatchString(name) {
			return rule.unit
		}
	}
	return ""
}

// headerUnit extracts the tab-level unit from a group header, or "".
func headerUnit(header string) string {
	if m := tabUnitPattern.FindStringSubmatch(header); m != nil {
		return canonicalUnit(m[1])
	}
	return ""
}
