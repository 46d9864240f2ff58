package routes

import "strings"

// pattern is a compiled route path. Segments starting with ':' capture one
// path segment as a named parameter; a final segment starting with '*'
// captures the rest of the path.
type pattern struct {
	segments  []string
	hasParams bool
}

// compilePattern splits a route path into segments and records whether it
// captures parameters.
func compilePattern(path string) pattern {
	p := pattern{segments: splitPath(path)}
	for _, seg := range p.segments {
		if strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			p.hasParams = true
			break
		}
	}
	return p
}

// match matches a concrete path against the pattern, returning the captured
// parameters. Static patterns return an empty map on match.
func (p pattern) match(path string) (map[string]string, bool) {
	segments := splitPath(path)
	params := map[string]string{}

	for i, seg := range p.segments {
		switch {
		case strings.HasPrefix(seg, "*"):
			// Catch-all must be terminal and consumes the rest, which must
			// be non-empty.
			if i != len(p.segments)-1 || i >= len(segments) {
				return nil, false
			}
			params[seg[1:]] = strings.Join(segments[i:], "/")
			return params, true

		case i >= len(segments):
			return nil, false

		case strings.HasPrefix(seg, ":"):
			params[seg[1:]] = segments[i]

		case seg != segments[i]:
			return nil, false
		}
	}

	if len(segments) != len(p.segments) {
		return nil, false
	}
	return params, true
}

// splitPath splits a path into segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
