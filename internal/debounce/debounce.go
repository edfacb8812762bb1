// Package debounce delays a task until input has been quiet for a fixed interval.
package debounce

import (
	"context"
	"sync"
	"time"
)

// Debouncer schedules at most one pending task. Scheduling a new task cancels the
// pending one; tasks never run concurrently with each other.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool

	run sync.Mutex
}

// New returns a Debouncer with the given quiet interval.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger discards any pending task and schedules task to run after the delay.
// The context passed to task is cancelled if another Trigger, Cancel or Stop
// happens before or while it runs.
func (d *Debouncer) Trigger(task func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.cancelLocked()

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.timer = time.AfterFunc(d.delay, func() {
		d.run.Lock()
		defer d.run.Unlock()
		if ctx.Err() != nil {
			return
		}
		task(ctx)
	})
}

// Cancel discards the pending task, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop cancels the pending task and rejects further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.closed = true
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
