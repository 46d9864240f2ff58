package nav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Option configures a Delegate.
type Option func(*Delegate)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Delegate) {
		d.logger = logger
	}
}

// WithLocationReporting controls whether CurrentLocation exposes the top of
// the stack to the hosting environment. Enabled by default.
func WithLocationReporting(enabled bool) Option {
	return func(d *Delegate) {
		d.reportsLocation = enabled
	}
}

// WithResolverCacheSize sets the size of the path → builder memoization
// cache used during resolution.
func WithResolverCacheSize(size int) Option {
	return func(d *Delegate) {
		d.cacheSize = size
	}
}

// Delegate is the navigation stack engine. It owns the ordered page stack,
// the builder registry, and the pending-result trackers for in-flight
// navigations.
//
// A Delegate is not safe for concurrent use; see the package documentation.
type Delegate struct {
	registry *registry
	pages    []*Page

	// pending maps page names to their outstanding result handles.
	pending map[string]*PendingResult

	listeners       []func()
	reportsLocation bool
	cacheSize       int
	logger          *slog.Logger
}

// New creates a delegate with a mandatory initial destination and builder
// list. An empty builder list or an initial destination no builder supports
// is a configuration error and fails fast.
func New(ctx context.Context, initial Destination, builders []PageBuilder, opts ...Option) (*Delegate, error) {
	d := &Delegate{
		pending:         make(map[string]*PendingResult),
		reportsLocation: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}

	reg, err := newRegistry(builders, d.cacheSize)
	if err != nil {
		return nil, err
	}
	page, err := reg.resolve(ctx, initial)
	if err != nil {
		return nil, fmt.Errorf("nav: resolving initial route: %w", err)
	}

	d.registry = reg
	d.pages = []*Page{page}
	return d, nil
}

// SetInitialRoute rebuilds the stack from the first externally delivered
// location (startup deep link or restored state). If no builder supports
// the destination the call is a silent no-op: the stack keeps its current
// pages. On success the stack is replaced by the destination's resolved
// history (unsupported entries filtered out) followed by the target page.
func (d *Delegate) SetInitialRoute(ctx context.Context, dest Destination) error {
	page, err := d.registry.resolve(ctx, dest)
	if err != nil {
		var notFound *PageNotFoundError
		if errors.As(err, &notFound) {
			d.logger.Debug("ignoring unsupported initial route", "path", dest.Path)
			return nil
		}
		return err
	}

	history, err := d.registry.resolveAll(ctx, dest.History)
	if err != nil {
		return err
	}

	// Assemble the new stack, keeping page names unique. A history entry
	// that collides with the target or an earlier history entry is dropped.
	stack := make([]*Page, 0, len(history)+1)
	seen := map[string]bool{page.Name: true}
	for _, p := range history {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		stack = append(stack, p)
	}
	stack = append(stack, page)

	d.pages = stack
	d.notify()
	return nil
}

// SetNewRoute reconciles an externally delivered route change (browser
// back/forward, a deep link while running) into the live stack.
//
// If no builder supports the destination the call is a silent no-op. If the
// destination's full stack (history + target) matches the current stack's
// path sequence the call is also a no-op, so re-delivery of the current
// location never discards live page state.
//
// Otherwise the resolved history pages (when present) and the target page
// are appended to the existing stack; pages already present by name are
// skipped. A pending-result tracker is registered for the target page when
// it is appended.
func (d *Delegate) SetNewRoute(ctx context.Context, dest Destination) error {
	page, err := d.registry.resolve(ctx, dest)
	if err != nil {
		var notFound *PageNotFoundError
		if errors.As(err, &notFound) {
			d.logger.Debug("ignoring unsupported route", "path", dest.Path)
			return nil
		}
		return err
	}

	if samePaths(dest.FullStack(), d.destinations()) {
		d.logger.Debug("route already current", "path", dest.Path)
		return nil
	}

	incoming := []*Page{page}
	if len(dest.History) > 0 {
		history, err := d.registry.resolveAll(ctx, dest.History)
		if err != nil {
			return err
		}
		incoming = append(history, page)
	}

	next := make([]*Page, len(d.pages), len(d.pages)+len(incoming))
	copy(next, d.pages)
	targetAppended := false
	for _, p := range incoming {
		if indexOf(next, p.Name) >= 0 {
			continue
		}
		next = append(next, p)
		if p == page {
			targetAppended = true
		}
	}
	if len(next) == len(d.pages) {
		d.logger.Debug("route adds no new pages", "path", dest.Path)
		return nil
	}

	d.pages = next
	if targetAppended {
		d.pending[page.Name] = newPendingResult(page.Name)
	}
	d.notify()
	return nil
}

// NavigateTo pushes a new page for the given location. The destination's
// history snapshots the current stack, so the page remembers what it was
// built on. It returns a PendingResult that is fulfilled with the value the
// page is later closed with.
//
// NavigateTo fails with *PageNotFoundError when no builder supports the
// location and with *PageExistsError when the location is already on the
// stack.
func (d *Delegate) NavigateTo(ctx context.Context, location string, arguments any) (*PendingResult, error) {
	if indexOf(d.pages, location) >= 0 {
		return nil, &PageExistsError{Name: location}
	}

	dest := Destination{
		Path:      location,
		Arguments: arguments,
		History:   d.destinations(),
	}
	page, err := d.registry.resolve(ctx, dest)
	if err != nil {
		return nil, err
	}

	pending := newPendingResult(page.Name)
	d.pages = append(d.pages, page)
	d.pending[page.Name] = pending
	d.notify()
	return pending, nil
}

// CanClose reports whether the stack holds a page above the root. The root
// page can never be closed imperatively.
func (d *Delegate) CanClose() bool {
	return len(d.pages) > 1
}

// Close removes the topmost page and fulfills its pending result with the
// given value. Closing without an active waiter is legal. Closing when only
// the root page remains is a precondition violation.
func (d *Delegate) Close(result any) error {
	if len(d.pages) <= 1 {
		return ErrCannotCloseRoot
	}
	top := d.pages[len(d.pages)-1]
	d.pages = d.pages[:len(d.pages)-1]
	d.fulfill(top.Name, result)
	d.notify()
	return nil
}

// Pop removes the page with the given name, wherever it sits in the stack,
// and fulfills its pending result. It reports whether a page was removed.
//
// Pop locates the page by name rather than trusting stack position: the
// platform may pop a page that is not actually last. Pop refuses to empty
// the stack.
func (d *Delegate) Pop(name string, result any) bool {
	if len(d.pages) <= 1 {
		return false
	}
	idx := indexOf(d.pages, name)
	if idx < 0 {
		return false
	}
	d.pages = append(d.pages[:idx], d.pages[idx+1:]...)
	d.fulfill(name, result)
	d.notify()
	return true
}

// Reset replaces the builder registry wholesale and rebuilds the stack from
// a single fresh destination. It fails hard, leaving the stack and registry
// untouched, if the builder list is empty or the destination resolves to no
// page. On success all prior pending results are abandoned: their waiters
// receive ErrAbandoned, never a value.
func (d *Delegate) Reset(ctx context.Context, path string, builders []PageBuilder, arguments any) error {
	reg, err := newRegistry(builders, d.cacheSize)
	if err != nil {
		return err
	}
	page, err := reg.resolve(ctx, NewDestination(path, arguments))
	if err != nil {
		return fmt.Errorf("nav: reset to %q: %w", path, err)
	}

	for name, pending := range d.pending {
		pending.abandon(ErrAbandoned)
		delete(d.pending, name)
	}

	d.registry = reg
	d.pages = []*Page{page}
	d.notify()
	return nil
}

// Pages returns a snapshot of the stack, root first.
func (d *Delegate) Pages() []*Page {
	pages := make([]*Page, len(d.pages))
	copy(pages, d.pages)
	return pages
}

// Builders returns a snapshot of the registered builders in resolution
// order.
func (d *Delegate) Builders() []PageBuilder {
	builders := make([]PageBuilder, len(d.registry.builders))
	copy(builders, d.registry.builders)
	return builders
}

// Depth returns the number of pages on the stack.
func (d *Delegate) Depth() int {
	return len(d.pages)
}

// CurrentLocation returns the visible page's destination for address-bar
// style reporting. The second return is false when location reporting is
// disabled.
func (d *Delegate) CurrentLocation() (Destination, bool) {
	if !d.reportsLocation || len(d.pages) == 0 {
		return Destination{}, false
	}
	return d.pages[len(d.pages)-1].Destination, true
}

// OnChange registers a listener invoked after every successful stack
// mutation. Listeners run synchronously on the mutating call.
func (d *Delegate) OnChange(fn func()) {
	d.listeners = append(d.listeners, fn)
}

// destinations snapshots the stack's destinations, root first.
func (d *Delegate) destinations() []Destination {
	dests := make([]Destination, len(d.pages))
	for i, p := range d.pages {
		dests[i] = p.Destination
	}
	return dests
}

// fulfill completes and removes the pending result for a page name, if one
// is outstanding.
func (d *Delegate) fulfill(name string, result any) {
	pending, ok := d.pending[name]
	if !ok {
		return
	}
	delete(d.pending, name)
	pending.complete(result)
}

func (d *Delegate) notify() {
	for _, fn := range d.listeners {
		fn()
	}
}

// indexOf returns the stack index of the page with the given name, or -1.
func indexOf(pages []*Page, name string) int {
	for i, p := range pages {
		if p.Name == name {
			return i
		}
	}
	return -1
}
