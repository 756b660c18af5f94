package particlefield

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_StepRunsArmedFramesOnce(t *testing.T) {
	l := NewLoop()
	calls := 0
	var rearm func(time.Time)
	rearm = func(time.Time) {
		calls++
		l.RequestFrame(rearm)
	}
	l.RequestFrame(rearm)

	assert.Equal(t, 1, l.Step(time.Now()))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, l.PendingFrames())

	l.Step(time.Now())
	l.Step(time.Now())
	assert.Equal(t, 3, calls)
}

func TestLoop_CancelFrame(t *testing.T) {
	l := NewLoop()
	fired := false
	id := l.RequestFrame(func(time.Time) { fired = true })
	l.CancelFrame(id)
	l.CancelFrame(id)
	l.CancelFrame(FrameID(999))

	assert.Equal(t, 0, l.Step(time.Now()))
	assert.False(t, fired)
	assert.Equal(t, 0, l.PendingFrames())
}

func TestLoop_CancelDuringStep(t *testing.T) {
	l := NewLoop()
	var second FrameID
	secondFired := false
	l.RequestFrame(func(time.Time) { l.CancelFrame(second) })
	second = l.RequestFrame(func(time.Time) { secondFired = true })

	assert.Equal(t, 1, l.Step(time.Now()))
	assert.False(t, secondFired)
}

func TestLoop_ResizeListeners(t *testing.T) {
	l := NewLoop()
	var got []string
	a := l.AddResizeListener(func() { got = append(got, "a") })
	b := l.AddResizeListener(func() { got = append(got, "b") })
	l.AddResizeListener(func() { got = append(got, "c") })

	l.NotifyResize()
	assert.Equal(t, []string{"a", "b", "c"}, got)

	l.RemoveResizeListener(b)
	got = nil
	l.NotifyResize()
	assert.Equal(t, []string{"a", "c"}, got)
	assert.Equal(t, 2, l.ResizeListeners())

	l.RemoveResizeListener(a)
	assert.Equal(t, 1, l.ResizeListeners())
}

func TestLoop_PostAndDrain(t *testing.T) {
	l := NewLoop()
	n := 0
	l.Post(func() { n++ })
	l.Post(func() { n++ })
	l.Drain()
	assert.Equal(t, 2, n)
	l.Drain()
	assert.Equal(t, 2, n)
}

func TestLoop_RunTicksUntilCancelled(t *testing.T) {
	l := NewLoop(WithRefreshInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	ticks := make(chan struct{}, 1)
	var tick func(time.Time)
	tick = func(time.Time) {
		select {
		case ticks <- struct{}{}:
		default:
		}
		l.RequestFrame(tick)
	}
	l.Post(func() { l.RequestFrame(tick) })

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame ran")
	}

	ran := make(chan struct{})
	l.Post(func() { close(ran) })
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	select {
	case <-ran:
	default:
		t.Fatal("queued task was dropped")
	}
}

func TestLoop_Options(t *testing.T) {
	l := NewLoop(WithRefreshInterval(0), WithPixelRatio(1.5))
	assert.Equal(t, DefaultRefreshInterval, l.Interval())
	assert.Equal(t, 1.5, l.PixelRatio())
}

func TestLoop_PostAfterRunDoesNotBlock(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, l.Run(ctx), context.Canceled)

	select {
	case <-l.Done():
	default:
		t.Fatal("Done not closed after Run")
	}

	posted := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			l.Post(func() {})
		}
		close(posted)
	}()
	select {
	case <-posted:
	case <-time.After(2 * time.Second):
		t.Fatal("Post blocked after the loop stopped")
	}

	assert.ErrorIs(t, l.Run(context.Background()), context.Canceled)
}
