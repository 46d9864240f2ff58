package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
	CategoryRoutes   Category = "routes"
	CategorySnapshot Category = "snapshot"
)

// Error is a structured error with a stable code, suggestions, and
// documentation links.
type Error struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (config, cli, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// Wrap attaches an underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	if e.Detail == "" && err != nil {
		e.Detail = err.Error()
	}
	return e
}

// New creates an error from a registered code. Unknown codes produce a
// generic CLI error carrying the code verbatim.
func New(code string) *Error {
	if tmpl, ok := registry[code]; ok {
		return &Error{
			Code:     code,
			Category: tmpl.Category,
			Message:  tmpl.Message,
			Detail:   tmpl.Detail,
			DocURL:   tmpl.DocURL,
		}
	}
	return &Error{
		Code:     code,
		Category: CategoryCLI,
		Message:  "Unknown error",
	}
}

// Newf creates an ad-hoc error without a registered code.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}
