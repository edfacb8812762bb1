package debounce

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrigger_OnlyLastTaskRuns(t *testing.T) {
	d := New(30 * time.Millisecond)
	defer d.Stop()

	var mu sync.Mutex
	var ran []string
	done := make(chan struct{})

	for _, q := range []string{"r", "ri", "ric"} {
		q := q
		d.Trigger(func(ctx context.Context) {
			mu.Lock()
			ran = append(ran, q)
			mu.Unlock()
			close(done)
		})
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced task never ran")
	}

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"ric"}, ran)
}

func TestCancel_DropsPendingTask(t *testing.T) {
	d := New(20 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	d.Trigger(func(ctx context.Context) { calls.Add(1) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestTrigger_SupersededTaskSeesCancelledContext(t *testing.T) {
	d := New(5 * time.Millisecond)
	defer d.Stop()

	started := make(chan struct{})
	observed := make(chan error, 1)
	d.Trigger(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		observed <- ctx.Err()
	})

	<-started
	d.Trigger(func(ctx context.Context) {})

	select {
	case err := <-observed:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("running task was not cancelled")
	}
}

func TestTasksDoNotOverlap(t *testing.T) {
	d := New(time.Millisecond)
	defer d.Stop()

	var running, maxRunning atomic.Int32
	var wg sync.WaitGroup
	wg.Add(1)
	d.Trigger(func(ctx context.Context) {
		defer wg.Done()
		n := running.Add(1)
		if n > maxRunning.Load() {
			maxRunning.Store(n)
		}
		time.Sleep(30 * time.Millisecond)
		running.Add(-1)
	})
	time.Sleep(10 * time.Millisecond)
	wg.Add(1)
	d.Trigger(func(ctx context.Context) {
		defer wg.Done()
		n := running.Add(1)
		if n > maxRunning.Load() {
			maxRunning.Store(n)
		}
		running.Add(-1)
	})

	wg.Wait()
	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestStop_RejectsFurtherTriggers(t *testing.T) {
	d := New(time.Millisecond)
	d.Stop()

	var calls atomic.Int32
	d.Trigger(func(ctx context.Context) { calls.Add(1) })
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
