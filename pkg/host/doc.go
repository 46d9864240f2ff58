// Package host is the router adapter boundary between the navigation
// engine and a hosting environment.
//
// A Host owns a nav.Delegate behind a mutex, giving the engine the single
// logical thread of control it requires, and translates platform lifecycle
// events into engine operations:
//
//   - SetInitialRoute / SetNewRoute accept routeinfo.RouteInformation from
//     the platform (deep links, browser back/forward).
//   - OnPlatformPop handles platform-driven dismissals, asking the page
//     content to accept the pop before removing it.
//   - NavigateTo / Close / Reset expose the imperative API to application
//     code.
//
// The Host also exposes an HTTP surface (chi) with a WebSocket endpoint
// (gorilla/websocket) over which connected clients deliver route changes
// and pop requests and receive stack snapshots after every mutation, and it
// can persist the stack's path sequence to a snapshot.Store so the stack
// survives restarts.
//
// Every mutating operation runs through an Interceptor chain, which is how
// the middleware package attaches Prometheus metrics and OpenTelemetry
// tracing.
package host
