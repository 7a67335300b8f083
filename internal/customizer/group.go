package customizer

import (
	"regexp"
	"strings"
)

// Reserved group names. Hidden assignments never render; Global
// assignments are stored under General but surfaced on every tab.
const (
	hiddenGroupName  = "hidden"
	globalGroupName  = "global"
	defaultGroupName = "General"
)

var (
	// groupHeaderPattern matches a whole-line block comment made of one
	// or more adjacent [Segment] groups: /* [Seg1][Seg2] */
	groupHeaderPattern  = regexp.MustCompile(`^/\*\s*((?:\[[^\]]*\]\s*)+)\*/$`)
	groupSegmentPattern = regexp.MustCompile(`\[([^\]]*)\]`)
)

// groupHeader is a resolved block-comment tab header.
type groupHeader struct {
	name       string
	annotation string // "advanced", "simple" or ""
	unit       string // ambient tab unit, "" when the header names none
	hidden     bool
	global     bool
}

// parseGroupHeader recognizes a tab header on a trimmed source line.
// Multiple adjacent segments join with " - " before the :advanced /
// :simple suffix is split off the joined name.
func parseGroupHeader(line string) (groupHeader, bool) {
	m := groupHeaderPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return groupHeader{}, false
	}

	var segments []string
	for _, seg := range groupSegmentPattern.FindAllStringSubmatch(m[1], -1) {
		if s := strings.TrimSpace(seg[1]); s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return groupHeader{}, false
	}

	name := strings.Join(segments, " - ")

	var annotation string
	for _, suffix := range []string{":advanced", ":simple"} {
		if strings.HasSuffix(strings.ToLower(name), suffix) {
			annotation = suffix[1:]
			name = strings.TrimSpace(name[:len(name)-len(suffix)])
			break
		}
	}

	h := groupHeader{
		name:       name,
		annotation: annotation,
		unit:       headerUnit(name),
	}
	switch strings.ToLower(name) {
	case hiddenGroupName:
		h.hidden = true
	case globalGroupName:
		h.global = true
	}
	return h, true
}
