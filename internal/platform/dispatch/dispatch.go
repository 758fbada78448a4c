package dispatch

import (
	"context"
	"errors"
	"log/slog"
)

// ErrLoopStopped is returned by Call when the loop exits before running the function.
var ErrLoopStopped = errors.New("dispatch loop stopped")

// Dispatcher schedules work on a single logical execution context.
type Dispatcher interface {
	Post(fn func())
}

// Loop serializes posted functions onto one goroutine started by Run.
type Loop struct {
	queue  chan func()
	done   chan struct{}
	logger *slog.Logger
}

// NewLoop constructs a loop with the given queue capacity.
func NewLoop(capacity int, logger *slog.Logger) *Loop {
	if capacity <= 0 {
		capacity = 64
	}
	return &Loop{
		queue:  make(chan func(), capacity),
		done:   make(chan struct{}),
		logger: logger.With("component", "dispatch.loop"),
	}
}

// Post enqueues fn. Work posted after the loop stopped is dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	select {
	case <-l.done:
		l.logger.Warn("dropping work posted after loop stopped")
		return
	default:
	}
	select {
	case <-l.done:
		l.logger.Warn("dropping work posted after loop stopped")
	case l.queue <- fn:
	}
}

// Call runs fn on the loop and waits for it to finish.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	case l.queue <- wrapped:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	case <-finished:
		return nil
	}
}

// Run executes posted work in order until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Debug("dispatch loop started")
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("dispatch loop stopped")
			return
		case fn := <-l.queue:
			l.run(fn)
		}
	}
}

// Done is closed once Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("dispatched work panicked", "panic", r)
		}
	}()
	fn()
}

var _ Dispatcher = (*Loop)(nil)
