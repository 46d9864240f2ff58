package nav

// Page is a single entry in the navigation stack. It pairs a destination
// with the content to render and carries a name used as the page's identity
// for pop and result tracking. Pages are never mutated after creation.
type Page struct {
	// Name is the page's identity within the stack, derived from the
	// destination path. No two pages in a stack share a name.
	Name string

	// Destination is the destination this page was built from.
	Destination Destination

	// Content is the opaque renderable for this page. The engine never
	// inspects it beyond optional capability checks at the host boundary.
	Content any
}

// NewPage creates a page for the given destination. The page name is the
// destination path.
func NewPage(dest Destination, content any) *Page {
	return &Page{
		Name:        dest.Path,
		Destination: dest,
		Content:     content,
	}
}
