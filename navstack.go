// Package navstack provides the public API for the navstack navigation
// engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/navstack-dev/navstack"
//
// Usage:
//
//	d, err := navstack.New(ctx, navstack.NewDestination("/", nil), builders)
//	pending, err := d.NavigateTo(ctx, "/pick-user", nil)
//	result, err := pending.Wait(ctx)
//
// The heavier surfaces live in subpackages: pkg/host serves a stack over
// HTTP and WebSocket, pkg/snapshot persists stacks, pkg/middleware adds
// metrics and tracing, and pkg/routeinfo converts browser-style route
// information to destinations.
package navstack

import (
	"context"

	"github.com/navstack-dev/navstack/pkg/host"
	"github.com/navstack-dev/navstack/pkg/nav"
)

// =============================================================================
// Core navigation types (pkg/nav exposed at the root)
// =============================================================================

// Destination identifies a navigation target: a path, optional arguments,
// and the history stack to restore beneath it.
type Destination = nav.Destination

// Page is one entry of the navigation stack.
type Page = nav.Page

// Delegate is the navigation engine: it owns the page stack and reconciles
// route changes against it.
type Delegate = nav.Delegate

// PendingResult tracks the result a page will eventually deliver when it
// closes.
type PendingResult = nav.PendingResult

// PageBuilder resolves destinations into pages.
type PageBuilder = nav.PageBuilder

// BuilderFunc adapts a route path and a build function into a PageBuilder.
type BuilderFunc = nav.BuilderFunc

// Option configures a Delegate.
type Option = nav.Option

// Sentinel errors re-exported from pkg/nav.
var (
	ErrNoBuilders      = nav.ErrNoBuilders
	ErrCannotCloseRoot = nav.ErrCannotCloseRoot
	ErrAbandoned       = nav.ErrAbandoned
)

// PageNotFoundError reports a destination no builder supports.
type PageNotFoundError = nav.PageNotFoundError

// PageExistsError reports a navigation to a page already on the stack.
type PageExistsError = nav.PageExistsError

// NewDestination creates a destination for the given path and arguments.
func NewDestination(path string, arguments any) Destination {
	return nav.NewDestination(path, arguments)
}

// New creates a navigation delegate with the given initial destination and
// builders.
func New(ctx context.Context, initial Destination, builders []PageBuilder, opts ...Option) (*Delegate, error) {
	return nav.New(ctx, initial, builders, opts...)
}

// Delegate option constructors re-exported from pkg/nav.
var (
	WithLogger            = nav.WithLogger
	WithLocationReporting = nav.WithLocationReporting
	WithResolverCacheSize = nav.WithResolverCacheSize
)

// DecodeArguments decodes destination arguments into a typed struct.
func DecodeArguments(arguments any, out any) error {
	return nav.DecodeArguments(arguments, out)
}

// =============================================================================
// Host (pkg/host exposed at the root)
// =============================================================================

// Host serializes navigation operations and serves the stack over HTTP and
// WebSocket.
type Host = host.Host

// HostOption configures a Host.
type HostOption = host.Option

// Interceptor wraps navigation operations with cross-cutting behavior.
type Interceptor = host.Interceptor

// NewHost creates a host around an existing delegate.
func NewHost(delegate *Delegate, opts ...HostOption) *Host {
	return host.New(delegate, opts...)
}
