package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRunOnStart(t *testing.T) {
	s := New()
	s.Register(Job{Name: "eager", Interval: time.Hour, RunOnStart: true, Fn: func(context.Context) error { return nil }})
	s.Register(Job{Name: "lazy", Interval: time.Hour, Fn: func(context.Context) error { return nil }})

	var eagerNext, lazyNext time.Time
	for _, item := range s.List() {
		switch item.Name {
		case "eager":
			eagerNext = *item.NextDate
		case "lazy":
			lazyNext = *item.NextDate
		}
	}
	assert.WithinDuration(t, time.Now(), eagerNext, time.Second)
	assert.WithinDuration(t, time.Now().Add(time.Hour), lazyNext, time.Second)
}

func TestManualRun(t *testing.T) {
	s := New()
	var calls atomic.Int32
	s.Register(Job{Name: "tick", Interval: time.Hour, Fn: func(context.Context) error {
		calls.Add(1)
		return nil
	}})

	require.NoError(t, s.Run(context.Background(), "tick"))
	require.Eventually(t, func() bool {
		task, err := s.GetTask("tick")
		return err == nil && task.Status == StatusFulfill
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	assert.Error(t, s.Run(context.Background(), "missing"))
}

func TestFailedJobRecordsMessage(t *testing.T) {
	s := New()
	s.Register(Job{Name: "broken", Interval: time.Hour, Fn: func(context.Context) error {
		return errors.New("boom")
	}})

	require.NoError(t, s.Run(context.Background(), "broken"))
	require.Eventually(t, func() bool {
		task, err := s.GetTask("broken")
		return err == nil && task.Status == StatusReject && task.Message == "boom"
	}, time.Second, 10*time.Millisecond)
}

func TestStartRunsEagerJobs(t *testing.T) {
	s := New()
	done := make(chan struct{})
	var once atomic.Bool
	s.Register(Job{Name: "startup", Interval: time.Hour, RunOnStart: true, Fn: func(context.Context) error {
		if once.CompareAndSwap(false, true) {
			close(done)
		}
		return nil
	}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
}
