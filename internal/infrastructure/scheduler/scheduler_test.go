package scheduler_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Nozima-Rustamova/credit-ML/internal/infrastructure/scheduler"
)

func TestWorker_RunsImmediatelyAndOnTicks(t *testing.T) {
	var runs atomic.Int32
	w := scheduler.NewWorker("test", func(context.Context) error {
		runs.Add(1)
		return nil
	}, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestWorker_StopEndsTheLoop(t *testing.T) {
	var runs atomic.Int32
	w := scheduler.NewWorker("test", func(context.Context) error {
		runs.Add(1)
		return nil
	}, 5*time.Millisecond, nil)

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, time.Second, time.Millisecond)
	w.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorker_StopDuringTaskStillEndsTheLoop(t *testing.T) {
	taskStarted := make(chan struct{})
	release := make(chan struct{})
	w := scheduler.NewWorker("test", func(context.Context) error {
		close(taskStarted)
		<-release
		return nil
	}, time.Hour, nil)

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	<-taskStarted
	w.Stop()
	w.Stop() // repeated Stop must not panic
	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after Stop was called mid-task")
	}
}

func TestWorker_TaskErrorsDoNotStopTheLoop(t *testing.T) {
	var runs atomic.Int32
	w := scheduler.NewWorker("flaky", func(context.Context) error {
		runs.Add(1)
		return fmt.Errorf("boom")
	}, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestWorker_ContextCancelStops(t *testing.T) {
	w := scheduler.NewWorker("test", func(context.Context) error { return nil }, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}
