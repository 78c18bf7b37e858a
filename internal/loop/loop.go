// Package loop provides the single goroutine that owns all shortcut state.
//
// Hotkey backends, tray menu handlers and file watchers never touch registry
// state directly; they Post closures here. Everything that runs inside the
// loop runs sequentially, so the registries need no locks.
package loop

import (
	"context"
	"errors"
	"log"
	"sync"
)

// ErrStopped is returned by Call when the loop is no longer running.
var ErrStopped = errors.New("event loop stopped")

// Loop runs posted closures one at a time on a single goroutine.
type Loop struct {
	tasks    chan func()
	done     chan struct{}
	stopOnce sync.Once
	owner    ownerID
}

// New creates a loop with the given task queue capacity.
func New(capacity int) *Loop {
	if capacity <= 0 {
		capacity = 64
	}
	return &Loop{
		tasks: make(chan func(), capacity),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It reports false if the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call posts fn and waits for it to finish.
func (l *Loop) Call(fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// Run processes tasks until ctx is cancelled or Stop is called. It must be
// called exactly once; the calling goroutine becomes the owning goroutine.
func (l *Loop) Run(ctx context.Context) error {
	l.owner.claim()
	defer l.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			l.run(fn)
		}
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("RECOVERED FROM PANIC IN EVENT LOOP TASK: %v", r)
		}
	}()
	fn()
}

// Stop ends Run. Pending tasks are dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// AssertConfined panics when called off the loop goroutine. The check is
// compiled in only with the confinecheck build tag; otherwise it is a no-op.
func (l *Loop) AssertConfined(op string) {
	l.owner.assert(op)
}
