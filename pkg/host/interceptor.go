package host

// OpInfo describes an engine operation as seen by interceptors.
type OpInfo struct {
	// Name identifies the operation: "set_initial_route", "set_new_route",
	// "navigate_to", "close", "platform_pop", "reset", "restore".
	Name string

	// Path is the destination path the operation targets, when it has one.
	Path string

	// Depth is the stack depth after the operation ran. It is zero until
	// the inner operation completes, so interceptors read it after calling
	// next.
	Depth int
}

// Interceptor processes engine operations before they reach the delegate.
//
// Return an error to stop the chain and fail the operation. Return nil
// without calling next to stop the chain without error.
type Interceptor interface {
	Handle(op *OpInfo, next func() error) error
}

// InterceptorFunc is a function adapter for Interceptor.
type InterceptorFunc func(op *OpInfo, next func() error) error

// Handle implements Interceptor.
func (f InterceptorFunc) Handle(op *OpInfo, next func() error) error {
	return f(op, next)
}
