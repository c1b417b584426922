package loop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrStopped is returned when work is posted to a loop that has stopped.
var ErrStopped = errors.New("loop stopped")

// Loop serializes callbacks onto a single goroutine. Everything posted to it,
// including timer callbacks, runs one at a time in posting order.
type Loop struct {
	logger *slog.Logger

	tasks chan func()

	mu      sync.Mutex
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// New creates a Loop. Call Run to start processing.
func New(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		logger: logger,
		tasks:  make(chan func(), 256),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Run processes posted callbacks until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return errors.New("loop already running")
	}
	l.running = true
	l.mu.Unlock()

	defer close(l.doneCh)

	l.logger.Debug("event loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("event loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-l.stopCh:
			l.logger.Debug("event loop stopped")
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Stop ends Run and waits for the callback in progress to return.
// It must not be called from the loop goroutine.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.stopCh)
	l.mu.Unlock()

	<-l.doneCh
}

// Post queues fn to run on the loop.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.stopCh:
		return ErrStopped
	case <-l.doneCh:
		return ErrStopped
	case l.tasks <- fn:
		return nil
	}
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if err := l.Post(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.doneCh:
		return ErrStopped
	}
}

// AfterFunc runs fn on the loop once d has elapsed. The cancel function must be
// called from the loop; once it returns fn will not run.
func (l *Loop) AfterFunc(d time.Duration, fn func()) func() {
	var cancelled atomic.Bool

	t := time.AfterFunc(d, func() {
		if err := l.Post(func() {
			if cancelled.Load() {
				return
			}
			fn()
		}); err != nil {
			l.logger.Debug("dropped timer callback", "error", err)
		}
	})

	return func() {
		cancelled.Store(true)
		t.Stop()
	}
}
