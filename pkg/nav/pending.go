package nav

import (
	"context"
	"sync"
)

// PendingResult is a single-fulfillment handle for the value a pushed page
// returns when it is popped. Exactly one of complete or abandon ever takes
// effect; later calls are ignored.
//
// A PendingResult has no timeout of its own: it stays pending until its page
// is popped or the delegate is reset.
type PendingResult struct {
	name string
	once sync.Once
	done chan struct{}

	// value and err are written once, before done is closed.
	value any
	err   error
}

func newPendingResult(name string) *PendingResult {
	return &PendingResult{
		name: name,
		done: make(chan struct{}),
	}
}

// Name returns the page name this result is tracking.
func (p *PendingResult) Name() string {
	return p.name
}

// Done returns a channel that is closed when the result is fulfilled or
// abandoned.
func (p *PendingResult) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the tracked page is popped and returns the value passed
// to Close or the platform pop. It returns ErrAbandoned if the delegate was
// reset first, or the context error if ctx is canceled.
func (p *PendingResult) Wait(ctx context.Context) (any, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// complete fulfills the result with the pop value.
func (p *PendingResult) complete(value any) {
	p.once.Do(func() {
		p.value = value
		close(p.done)
	})
}

// abandon fails the result without a value.
func (p *PendingResult) abandon(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}
