package navstack

import (
	"context"
	"errors"
	"testing"
)

func testBuilders(paths ...string) []PageBuilder {
	builders := make([]PageBuilder, 0, len(paths))
	for _, path := range paths {
		p := path
		builders = append(builders, BuilderFunc{
			Route: p,
			Build: func(ctx context.Context, dest Destination) (any, error) {
				return "content:" + p, nil
			},
		})
	}
	return builders
}

func TestRootFacade_NavigateAndClose(t *testing.T) {
	ctx := context.Background()

	d, err := New(ctx, NewDestination("/", nil), testBuilders("/", "/pick-user"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	pending, err := d.NavigateTo(ctx, "/pick-user", nil)
	if err != nil {
		t.Fatalf("NavigateTo() error: %v", err)
	}

	if err := d.Close("Alice"); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	result, err := pending.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if result != "Alice" {
		t.Errorf("result = %v, want Alice", result)
	}
}

func TestRootFacade_ErrorsReexported(t *testing.T) {
	ctx := context.Background()

	d, err := New(ctx, NewDestination("/", nil), testBuilders("/"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := d.Close(nil); !errors.Is(err, ErrCannotCloseRoot) {
		t.Errorf("Close() on root = %v, want ErrCannotCloseRoot", err)
	}

	var notFound *PageNotFoundError
	_, err = d.NavigateTo(ctx, "/nowhere", nil)
	if !errors.As(err, &notFound) {
		t.Errorf("NavigateTo(unknown) = %v, want PageNotFoundError", err)
	}
}

func TestRootFacade_NewHost(t *testing.T) {
	ctx := context.Background()

	d, err := New(ctx, NewDestination("/", nil), testBuilders("/", "/details"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	h := NewHost(d)
	if _, err := h.NavigateTo(ctx, "/details", nil); err != nil {
		t.Fatalf("host NavigateTo() error: %v", err)
	}
	if got := len(h.Pages()); got != 2 {
		t.Errorf("len(Pages) = %d, want 2", got)
	}
}
