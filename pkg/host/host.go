package host

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/navstack-dev/navstack/pkg/nav"
	"github.com/navstack-dev/navstack/pkg/routeinfo"
	"github.com/navstack-dev/navstack/pkg/snapshot"
)

// PopVetoer is an optional capability of page content. When the platform
// requests a pop, the host asks the page whether it accepts it; pages that
// do not implement PopVetoer always accept. A page can veto to keep itself
// on the stack, e.g. to show a confirmation dialog first.
type PopVetoer interface {
	AcceptPop() bool
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithInterceptors appends interceptors applied around every mutating
// operation, outermost first.
func WithInterceptors(interceptors ...Interceptor) Option {
	return func(h *Host) {
		h.chain = append(h.chain, interceptors...)
	}
}

// WithSnapshotStore persists the stack's path sequence under the given key
// after every successful mutation. ttl of zero keeps snapshots forever.
func WithSnapshotStore(store snapshot.Store, key string, ttl time.Duration) Option {
	return func(h *Host) {
		h.store = store
		h.storeKey = key
		h.storeTTL = ttl
	}
}

// Host serializes access to a navigation delegate and adapts platform
// lifecycle events to engine operations.
type Host struct {
	mu       sync.Mutex
	delegate *nav.Delegate

	logger *slog.Logger
	chain  []Interceptor

	store    snapshot.Store
	storeKey string
	storeTTL time.Duration

	clientsMu sync.Mutex
	clients   map[*client]struct{}
}

// New creates a host over a delegate. The host registers itself as the
// delegate's change listener to broadcast stack snapshots to connected
// clients.
func New(delegate *nav.Delegate, opts ...Option) *Host {
	h := &Host{
		delegate: delegate,
		clients:  make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	delegate.OnChange(h.broadcastStack)
	return h
}

// run executes fn under the host lock, wrapped by the interceptor chain.
// After fn completes, op.Depth reflects the resulting stack depth so
// interceptors can observe it.
func (h *Host) run(op *OpInfo, fn func() error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := func() error {
		err := fn()
		op.Depth = h.delegate.Depth()
		return err
	}
	for i := len(h.chain) - 1; i >= 0; i-- {
		interceptor := h.chain[i]
		inner := next
		next = func() error { return interceptor.Handle(op, inner) }
	}
	return next()
}

// SetInitialRoute delivers the hosting environment's initial location to
// the engine. Unknown locations are silently ignored by the engine.
func (h *Host) SetInitialRoute(ctx context.Context, ri routeinfo.RouteInformation) error {
	dest, err := routeinfo.ToDestination(ri)
	if err != nil {
		return err
	}
	op := &OpInfo{Name: "set_initial_route", Path: dest.Path}
	return h.run(op, func() error {
		if err := h.delegate.SetInitialRoute(ctx, dest); err != nil {
			return err
		}
		h.persist(ctx)
		return nil
	})
}

// SetNewRoute reconciles an external route change into the stack.
func (h *Host) SetNewRoute(ctx context.Context, ri routeinfo.RouteInformation) error {
	dest, err := routeinfo.ToDestination(ri)
	if err != nil {
		return err
	}
	op := &OpInfo{Name: "set_new_route", Path: dest.Path}
	return h.run(op, func() error {
		if err := h.delegate.SetNewRoute(ctx, dest); err != nil {
			return err
		}
		h.persist(ctx)
		return nil
	})
}

// NavigateTo pushes a page imperatively and returns its pending result.
func (h *Host) NavigateTo(ctx context.Context, location string, arguments any) (*nav.PendingResult, error) {
	op := &OpInfo{Name: "navigate_to", Path: location}
	var pending *nav.PendingResult
	err := h.run(op, func() error {
		var err error
		pending, err = h.delegate.NavigateTo(ctx, location, arguments)
		if err != nil {
			return err
		}
		h.persist(ctx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pending, nil
}

// CanClose reports whether a page above the root exists.
func (h *Host) CanClose() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.delegate.CanClose()
}

// Close removes the topmost page, propagating result to its waiter.
func (h *Host) Close(ctx context.Context, result any) error {
	op := &OpInfo{Name: "close"}
	return h.run(op, func() error {
		if err := h.delegate.Close(result); err != nil {
			return err
		}
		h.persist(ctx)
		return nil
	})
}

// Reset swaps the builder registry and rebuilds the stack from one path.
func (h *Host) Reset(ctx context.Context, path string, builders []nav.PageBuilder, arguments any) error {
	op := &OpInfo{Name: "reset", Path: path}
	return h.run(op, func() error {
		if err := h.delegate.Reset(ctx, path, builders, arguments); err != nil {
			return err
		}
		h.persist(ctx)
		return nil
	})
}

// OnPlatformPop handles a platform-driven dismissal of the named page. The
// page content is asked to accept the pop first; on acceptance the page is
// located by name, removed, and its pending result fulfilled. The returned
// acceptance must be forwarded to the platform.
func (h *Host) OnPlatformPop(ctx context.Context, name string, result any) bool {
	op := &OpInfo{Name: "platform_pop", Path: name}
	accepted := false
	err := h.run(op, func() error {
		page := h.findPage(name)
		if page == nil {
			h.logger.Debug("platform pop for unknown page", "name", name)
			return nil
		}
		if vetoer, ok := page.Content.(PopVetoer); ok && !vetoer.AcceptPop() {
			h.logger.Debug("platform pop vetoed", "name", name)
			return nil
		}
		accepted = h.delegate.Pop(name, result)
		if accepted {
			h.persist(ctx)
		}
		return nil
	})
	if err != nil {
		h.logger.Error("platform pop failed", "name", name, "error", err)
		return false
	}
	return accepted
}

// Restore loads the persisted stack snapshot, if any, and replays it as an
// initial route. Missing snapshots are not an error.
func (h *Host) Restore(ctx context.Context) error {
	if h.store == nil {
		return nil
	}
	data, err := h.store.Load(ctx, h.storeKey)
	if err != nil {
		return fmt.Errorf("host: loading snapshot: %w", err)
	}
	if data == nil {
		return nil
	}
	paths, err := snapshot.Decode(data)
	if err != nil {
		return fmt.Errorf("host: decoding snapshot: %w", err)
	}
	if len(paths) == 0 {
		return nil
	}

	ri := routeinfo.RouteInformation{
		Location: paths[len(paths)-1],
		State:    paths[:len(paths)-1],
	}
	dest, err := routeinfo.ToDestination(ri)
	if err != nil {
		return err
	}
	op := &OpInfo{Name: "restore", Path: dest.Path}
	return h.run(op, func() error {
		return h.delegate.SetInitialRoute(ctx, dest)
	})
}

// Pages returns a snapshot of the stack, root first.
func (h *Host) Pages() []*nav.Page {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.delegate.Pages()
}

// CurrentLocation returns the visible destination for address-bar style
// reporting, when the delegate reports locations.
func (h *Host) CurrentLocation() (nav.Destination, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.delegate.CurrentLocation()
}

// findPage locates a page by name. Caller must hold h.mu.
func (h *Host) findPage(name string) *nav.Page {
	for _, page := range h.delegate.Pages() {
		if page.Name == name {
			return page
		}
	}
	return nil
}

// persist saves the current path sequence to the snapshot store, if one is
// configured. Persistence failures are logged, not propagated: the in-memory
// stack is the source of truth. Caller must hold h.mu.
func (h *Host) persist(ctx context.Context) {
	if h.store == nil {
		return
	}
	pages := h.delegate.Pages()
	paths := make([]string, len(pages))
	for i, page := range pages {
		paths[i] = page.Name
	}
	data, err := snapshot.Encode(paths)
	if err != nil {
		h.logger.Error("encoding stack snapshot", "error", err)
		return
	}
	if err := h.store.Save(ctx, h.storeKey, data, h.storeTTL); err != nil {
		h.logger.Error("saving stack snapshot", "key", h.storeKey, "error", err)
	}
}
