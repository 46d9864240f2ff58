package nav

import (
	"context"
	"errors"
	"testing"
)

func TestRegistryFirstSupportingBuilderWins(t *testing.T) {
	first := contentBuilder("/dup", "first")
	second := contentBuilder("/dup", "second")
	reg, err := newRegistry([]PageBuilder{first, second}, 0)
	if err != nil {
		t.Fatalf("newRegistry() error: %v", err)
	}

	page, err := reg.resolve(context.Background(), NewDestination("/dup", nil))
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}
	if page.Content != "first" {
		t.Errorf("resolved content = %v, want %q", page.Content, "first")
	}
}

func TestRegistryResolveNotFound(t *testing.T) {
	reg, err := newRegistry([]PageBuilder{contentBuilder("/home", "home")}, 0)
	if err != nil {
		t.Fatalf("newRegistry() error: %v", err)
	}
	_, err = reg.resolve(context.Background(), NewDestination("/missing", nil))
	var notFound *PageNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("resolve() error = %v, want *PageNotFoundError", err)
	}
}

func TestRegistryEmpty(t *testing.T) {
	if _, err := newRegistry(nil, 0); !errors.Is(err, ErrNoBuilders) {
		t.Errorf("newRegistry(nil) error = %v, want ErrNoBuilders", err)
	}
}

// Resolving each destination independently and concatenating must equal
// batch resolution with unsupported entries filtered.
func TestResolveAllMatchesIndependentResolution(t *testing.T) {
	reg, err := newRegistry([]PageBuilder{
		contentBuilder("/a", "a"),
		contentBuilder("/b", "b"),
		contentBuilder("/c", "c"),
	}, 0)
	if err != nil {
		t.Fatalf("newRegistry() error: %v", err)
	}

	dests := []Destination{
		{Path: "/a"}, {Path: "/unknown"}, {Path: "/b"}, {Path: "/c"}, {Path: "/nope"},
	}

	batch, err := reg.resolveAll(context.Background(), dests)
	if err != nil {
		t.Fatalf("resolveAll() error: %v", err)
	}

	var independent []*Page
	for _, dest := range dests {
		page, err := reg.resolve(context.Background(), dest)
		if err != nil {
			var notFound *PageNotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			t.Fatalf("resolve(%s) error: %v", dest.Path, err)
		}
		independent = append(independent, page)
	}

	if len(batch) != len(independent) {
		t.Fatalf("batch len = %d, independent len = %d", len(batch), len(independent))
	}
	for i := range batch {
		if batch[i].Name != independent[i].Name || batch[i].Content != independent[i].Content {
			t.Errorf("page %d: batch %v/%v, independent %v/%v",
				i, batch[i].Name, batch[i].Content, independent[i].Name, independent[i].Content)
		}
	}
}

func TestResolveAllBuilderFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	reg, err := newRegistry([]PageBuilder{
		contentBuilder("/a", "a"),
		BuilderFunc{
			Route: "/broken",
			Build: func(ctx context.Context, dest Destination) (any, error) {
				return nil, boom
			},
		},
	}, 0)
	if err != nil {
		t.Fatalf("newRegistry() error: %v", err)
	}

	_, err = reg.resolveAll(context.Background(), []Destination{{Path: "/a"}, {Path: "/broken"}})
	if !errors.Is(err, boom) {
		t.Errorf("resolveAll() error = %v, want wrapped boom", err)
	}
}

func TestRegistryMemoizesLookup(t *testing.T) {
	calls := 0
	counting := BuilderFunc{
		Route: "/counted",
		Build: func(ctx context.Context, dest Destination) (any, error) {
			return "counted", nil
		},
	}
	probing := probeBuilder{inner: counting, calls: &calls}

	reg, err := newRegistry([]PageBuilder{probing}, 4)
	if err != nil {
		t.Fatalf("newRegistry() error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := reg.resolve(context.Background(), NewDestination("/counted", nil)); err != nil {
			t.Fatalf("resolve() error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("SupportsRoute calls = %d, want 1 (memoized)", calls)
	}
}

// probeBuilder counts SupportsRoute calls on the wrapped builder.
type probeBuilder struct {
	inner PageBuilder
	calls *int
}

func (p probeBuilder) SupportsRoute(dest Destination) bool {
	*p.calls++
	return p.inner.SupportsRoute(dest)
}

func (p probeBuilder) BuildPage(ctx context.Context, dest Destination) (*Page, error) {
	return p.inner.BuildPage(ctx, dest)
}
