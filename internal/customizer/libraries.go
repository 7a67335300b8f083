package customizer

import (
	"regexp"
	"strings"
)

// includePattern matches include <path> and use <path> statements.
var includePattern = regexp.MustCompile(`(?m)^\s*(?:include|use)\s*<([^>]+)>`)

// knownLibraries maps include-path prefixes to library names, checked
// case-insensitively against the first path segment.
var knownLibraries = map[string]string{
	"bosl2":          "BOSL2",
	"bosl":           "BOSL",
	"mcad":           "MCAD",
	"dotscad":        "dotSCAD",
	"nopscadlib":     "NopSCADlib",
	"round-anything": "Round-Anything",
	"ub.scad":        "UB.scad",
}

// DetectLibraries scans source text for include/use statements and
// returns the libraries it references, in order of first appearance.
// Includes that do not match a known library are reported by their
// path, so consumers can still surface the requirement.
func DetectLibraries(source string) []string {
	var libs []string
	seen := make(map[string]bool)
	for _, m := range includePattern.FindAllStringSubmatch(source, -1) {
		path := strings.TrimSpace(m[1])
		name := path
		first := path
		if idx := strings.IndexAny(path, "/\\"); idx >= 0 {
			first = path[:idx]
		}
		if lib, ok := knownLibraries[strings.ToLower(first)]; ok {
			name = lib
		}
		if !seen[name] {
			seen[name] = true
			libs = append(libs, name)
		}
	}
	return libs
}
