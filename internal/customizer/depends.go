package customizer

import (
	"regexp"
	"strings"
)

// dependsPattern matches @depends(name==value) / @depends(name!=value)
// anywhere in comment text.
var dependsPattern = regexp.MustCompile(`@depends\(\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*(==|!=)\s*([^)]*?)\s*\)`)

// parseDependency extracts the first @depends directive from the given
// comment texts, checked in order. Returns nil when none is present.
func parseDependency(texts ...string) *Dependency {
	for _, text := range texts {
		if m := dependsPattern.FindStringSubmatch(text); m != nil {
			return &Dependency{
				Parameter: m[1],
				Operator:  m[2],
				Value:     unquote(strings.TrimSpace(m[3])),
			}
		}
	}
	return nil
}

// stripDependency removes @depends directives from comment text so they
// do not leak into descriptions.
func stripDependency(text string) string {
	return strings.TrimSpace(dependsPattern.ReplaceAllString(text, ""))
}
