package customizer

import "strings"

// lineState carries the scanner state that survives across lines.
type lineState struct {
	inBlockComment bool
}

// maskedLine is the depth-counting-safe view of one source line.
type maskedLine struct {
	// code has comment and string contents replaced with spaces. It
	// keeps the input's length so brace counting and index-based
	// slicing stay aligned with the raw text.
	code string
	// commentStart is the index of a trailing "//" outside any string,
	// or -1. The raw comment text is line[commentStart+2:].
	commentStart int
}

// maskLine walks one raw line and masks everything that must not count
// toward brace depth: block-comment spans, line-comment tails, and
// string contents (escape-aware). The state tracks unterminated block
// comments across lines; strings never span lines in OpenSCAD source,
// so an unterminated quote just masks to end of line.
func maskLine(line string, st lineState) (maskedLine, lineState) {
	out := []byte(line)
	commentStart := -1
	inString := false
	var quote byte
	escaped := false

	for i := 0; i < len(line); i++ {
		c := line[i]

		if st.inBlockComment {
			out[i] = ' '
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				out[i+1] = ' '
				i++
				st.inBlockComment = false
			}
			continue
		}

		if inString {
			if escaped {
				out[i] = ' '
				escaped = false
				continue
			}
			switch c {
			case '\\':
				out[i] = ' '
				escaped = true
			case quote:
				inString = false
			default:
				out[i] = ' '
			}
			continue
		}

		switch c {
		case '/':
			if i+1 < len(line) {
				switch line[i+1] {
				case '/':
					commentStart = i
					for j := i; j < len(line); j++ {
						out[j] = ' '
					}
					i = len(line)
				case '*':
					out[i] = ' '
					out[i+1] = ' '
					i++
					st.inBlockComment = true
				}
			}
		case '"', '\'':
			inString = true
			quote = c
		}
	}

	return maskedLine{code: string(out), commentStart: commentStart}, st
}

// braceDelta counts unmasked braces in the depth-safe text.
func braceDelta(masked string) int {
	return strings.Count(masked, "{") - strings.Count(masked, "}")
}
