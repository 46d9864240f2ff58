// Package nav implements the navigation stack engine for navstack.
//
// The engine owns an ordered stack of pages (index 0 is the root, the last
// entry is the visible page) and keeps it consistent across two kinds of
// input:
//
//   - Declarative reconciliation: the hosting environment delivers a full
//     navigation state (a destination plus its history) via SetInitialRoute
//     or SetNewRoute, and the engine merges it into the live stack without
//     discarding pages the new state already covers.
//   - Imperative navigation: application code calls NavigateTo and Close.
//     A page pushed with NavigateTo can return a typed value to its caller
//     when it is later popped.
//
// Destinations are resolved into pages by an ordered list of PageBuilder
// implementations; the first builder that supports a destination wins.
//
// # Result Propagation
//
// NavigateTo returns a *PendingResult. The caller can block on it until the
// pushed page is closed:
//
//	pending, err := delegate.NavigateTo(ctx, "/picker", nil)
//	if err != nil {
//	    return err
//	}
//	selected, err := pending.Wait(ctx)
//
// Elsewhere, the picker page finishes with:
//
//	delegate.Close("Alice")
//
// # Concurrency
//
// A Delegate performs no internal locking. All mutations must be delivered
// from one logical thread of control; the host package provides that
// serialization for platform-driven integrations. Builder resolution is the
// only suspension point and runs to completion once started.
package nav
