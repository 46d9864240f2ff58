package nav

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PageBuilder resolves destinations into pages.
//
// Builders are registered as an ordered list; resolution scans the list and
// the first builder whose SupportsRoute returns true wins. BuildPage may
// perform I/O (it receives a context), but it must not produce partial
// results: it either resolves a page or fails the whole resolution.
type PageBuilder interface {
	// SupportsRoute reports whether this builder can build a page for the
	// destination. The decision must depend on the destination path only.
	SupportsRoute(dest Destination) bool

	// BuildPage builds the page for a destination this builder supports.
	BuildPage(ctx context.Context, dest Destination) (*Page, error)
}

// BuilderFunc adapts a route path and a build function into a PageBuilder
// that supports exactly that path.
type BuilderFunc struct {
	// Route is the exact path this builder supports.
	Route string

	// Build produces the page content for a matched destination.
	Build func(ctx context.Context, dest Destination) (any, error)
}

// SupportsRoute implements PageBuilder.
func (b BuilderFunc) SupportsRoute(dest Destination) bool {
	return dest.Path == b.Route
}

// BuildPage implements PageBuilder.
func (b BuilderFunc) BuildPage(ctx context.Context, dest Destination) (*Page, error) {
	content, err := b.Build(ctx, dest)
	if err != nil {
		return nil, fmt.Errorf("nav: building page for %q: %w", dest.Path, err)
	}
	return NewPage(dest, content), nil
}

// defaultResolverCacheSize bounds the path → builder memoization cache.
const defaultResolverCacheSize = 128

// registry holds an ordered builder list and resolves destinations against
// it. Support decisions are path-determined, so the winning builder per
// path is memoized in an LRU cache. A registry is immutable once created;
// Reset installs a fresh one, which also discards the cache.
type registry struct {
	builders []PageBuilder
	cache    *lru.Cache[string, PageBuilder]
}

// newRegistry creates a registry over the given builders.
// Returns ErrNoBuilders when the list is empty.
func newRegistry(builders []PageBuilder, cacheSize int) (*registry, error) {
	if len(builders) == 0 {
		return nil, ErrNoBuilders
	}
	if cacheSize <= 0 {
		cacheSize = defaultResolverCacheSize
	}
	cache, err := lru.New[string, PageBuilder](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("nav: creating resolver cache: %w", err)
	}
	owned := make([]PageBuilder, len(builders))
	copy(owned, builders)
	return &registry{builders: owned, cache: cache}, nil
}

// lookup returns the first builder that supports the destination.
func (r *registry) lookup(dest Destination) (PageBuilder, bool) {
	if b, ok := r.cache.Get(dest.Path); ok {
		return b, true
	}
	for _, b := range r.builders {
		if b.SupportsRoute(dest) {
			r.cache.Add(dest.Path, b)
			return b, true
		}
	}
	return nil, false
}

// resolve builds the page for a destination. It returns *PageNotFoundError
// when no builder supports the destination; callers in silent contexts
// check for it with errors.As and treat it as a no-op.
func (r *registry) resolve(ctx context.Context, dest Destination) (*Page, error) {
	b, ok := r.lookup(dest)
	if !ok {
		return nil, &PageNotFoundError{Destination: dest}
	}
	return b.BuildPage(ctx, dest)
}

// resolveAll resolves each destination independently, preserving order and
// silently filtering destinations no builder supports. Builder failures
// abort the whole batch.
func (r *registry) resolveAll(ctx context.Context, dests []Destination) ([]*Page, error) {
	pages := make([]*Page, 0, len(dests))
	for _, dest := range dests {
		b, ok := r.lookup(dest)
		if !ok {
			continue
		}
		page, err := b.BuildPage(ctx, dest)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}
