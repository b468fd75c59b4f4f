package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunsImmediatelyAndOnInterval(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob(Job{
		Name:     "count",
		Interval: 10 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestScheduler_DisabledJob(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob(Job{Name: "off", Fn: func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}})

	s.RunOnce(context.Background())
	assert.Zero(t, runs.Load())
}

func TestScheduler_RunOnceAppliesTimeout(t *testing.T) {
	var deadline atomic.Bool
	s := NewScheduler()
	s.AddJob(Job{
		Name:     "slow",
		Interval: time.Hour,
		Timeout:  10 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			<-ctx.Done()
			deadline.Store(errors.Is(ctx.Err(), context.DeadlineExceeded))
			return ctx.Err()
		},
	})

	s.RunOnce(context.Background())
	assert.True(t, deadline.Load())
}

func TestScheduler_StopsWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler()
	s.AddJob(Job{Name: "noop", Interval: time.Millisecond, Fn: func(ctx context.Context) error { return nil }})

	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
