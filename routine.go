package portal

import (
	"context"
	"sync"
	"time"
)

// Routine runs a function on a fixed interval in its own goroutine until it is
// stopped or the context passed to Start ends.
type Routine struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func(context.Context)
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewRoutine prepares a routine. Nothing runs until Start.
func NewRoutine(interval time.Duration, fn func(context.Context)) *Routine {
	return &Routine{interval: interval, fn: fn}
}

// Start launches the goroutine. Starting a running routine, or one with a
// non-positive interval, does nothing.
func (r *Routine) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil || r.interval <= 0 || r.fn == nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.loop(ctx, r.done)
}

func (r *Routine) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	tkr := time.NewTicker(r.interval)
	defer tkr.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tkr.C:
			r.fn(ctx)
		}
	}
}

// Stop interrupts the goroutine and waits for it to return.
func (r *Routine) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *Routine) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}
