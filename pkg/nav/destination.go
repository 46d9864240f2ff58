package nav

// Destination identifies a navigation target.
//
// A Destination is an immutable value: Path names the target, Arguments
// carries an opaque payload for the page builder, and History, when non-nil,
// is the full ordered stack of predecessor destinations that should exist
// below this one (root first).
//
// For stack-comparison purposes two destinations are equal when their paths
// match; Arguments and History are excluded from equality.
type Destination struct {
	// Path is the path-like identifier of the target (e.g. "/profile").
	Path string

	// Arguments is an opaque value passed through to the page builder.
	Arguments any

	// History is the ordered sequence of predecessor destinations, root
	// first. Nil for destinations that carry no history.
	History []Destination
}

// NewDestination creates a destination for the given path and arguments.
func NewDestination(path string, arguments any) Destination {
	return Destination{Path: path, Arguments: arguments}
}

// SameLocation reports whether d and other identify the same location.
// Only the paths are compared.
func (d Destination) SameLocation(other Destination) bool {
	return d.Path == other.Path
}

// FullStack returns the destination's history followed by the destination
// itself: the complete stack this destination describes.
func (d Destination) FullStack() []Destination {
	stack := make([]Destination, 0, len(d.History)+1)
	stack = append(stack, d.History...)
	return append(stack, d)
}

// samePaths reports whether two destination sequences are equal by
// positional path comparison. Arguments and histories are ignored.
func samePaths(a, b []Destination) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Path != b[i].Path {
			return false
		}
	}
	return true
}
