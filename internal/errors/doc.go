// Package errors provides structured, actionable error messages for the
// navstack CLI and configuration loader.
//
// Each error has a unique code (e.g., "E101") that maps to a short message,
// a detailed explanation, and a documentation URL. Callers enrich the
// template with details and fix suggestions:
//
//	err := errors.New("E101").
//	    WithDetail("No navstack.json found in " + dir).
//	    WithSuggestion("Create navstack.json or pass --config")
//
//	fmt.Fprintln(os.Stderr, err.Format())
//
// Format() renders the error for terminal display with ANSI colors; the
// plain Error() string stays single-line for logs.
package errors
