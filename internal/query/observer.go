package query

import (
	"context"
	"sync"

	"github.com/thanhnp/tx-explorer/internal/explorerapi"
)

// Observer follows one query whose params may change over time, the way a
// page follows the hash in its URL. Every SetParams publishes an immediate
// result (cached data or the placeholder) and, when that was a
// placeholder, the resolved result later. Results for params that were
// replaced in the meantime are dropped, so subscribers only ever see
// the latest params.
type Observer[T any] struct {
	client   *Client
	resource string

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	current Result[T]
	closed  bool
	updates chan Result[T]
}

// NewObserver creates an Observer for resource
func NewObserver[T any](client *Client, resource string) *Observer[T] {
	return &Observer[T]{
		client:   client,
		resource: resource,
		cancel:   func() {},
		updates:  make(chan Result[T], 1),
	}
}

// Updates delivers results. The channel holds at most the latest result;
// a slow reader skips intermediate ones.
func (o *Observer[T]) Updates() <-chan Result[T] {
	return o.updates
}

// Current returns the last published result
func (o *Observer[T]) Current() Result[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// SetParams switches the observer to new params and options
func (o *Observer[T]) SetParams(params explorerapi.PathParams, opts Options[T]) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.cancel()
	o.gen++
	gen := o.gen
	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel
	o.mu.Unlock()

	res, ch := begin(ctx, o.client, o.resource, params, opts)
	o.publish(gen, res)
	if ch == nil {
		return
	}

	go func() {
		select {
		case r := <-ch:
			o.publish(gen, resultFromFlight(opts, r))
		case <-ctx.Done():
		}
	}()
}

// publish stores and forwards res if gen is still the latest generation
func (o *Observer[T]) publish(gen uint64, res Result[T]) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || gen != o.gen {
		return
	}
	o.current = res

	// replace any unread result with the newer one
	select {
	case <-o.updates:
	default:
	}
	o.updates <- res
}

// Close stops the observer and closes the updates channel
func (o *Observer[T]) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}
	o.closed = true
	o.cancel()
	close(o.updates)
}
