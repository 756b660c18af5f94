package particlefield

import (
	"fmt"
	"image/color"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/logging"
)

type presentingContainer struct {
	*BaseContainer
	presented int
	onPresent func(*Element)
}

func (c *presentingContainer) Present(el *Element) {
	c.presented++
	if c.onPresent != nil {
		c.onPresent(el)
	}
}

func newTestField(t *testing.T, w, h int) (*Field, *Loop, *presentingContainer) {
	t.Helper()
	loop := NewLoop()
	c := &presentingContainer{BaseContainer: NewBaseContainer(w, h)}
	f := NewField(loop, c, WithRand(rand.New(rand.NewSource(42))))
	return f, loop, c
}

func steps(l *Loop, n int) {
	for i := 0; i < n; i++ {
		l.Step(time.Now())
	}
}

func scenarioConfig() Config {
	return Config{
		Count:          100,
		Color:          color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		PointSize:      0.05,
		RotationSpeedX: 0.03,
		RotationSpeedY: 0.06,
	}
}

func TestField_Scenario(t *testing.T) {
	f, loop, c := newTestField(t, 160, 90)
	f.Mount(scenarioConfig())

	s := f.Session()
	require.NotNil(t, s)
	require.Equal(t, StateActive, s.State())

	g := s.Points().Geometry
	require.Equal(t, 100, g.Len())
	for i := 0; i < g.Len(); i++ {
		for axis := 0; axis < 3; axis++ {
			assert.GreaterOrEqual(t, g.At(i)[axis], -5.0)
			assert.LessOrEqual(t, g.At(i)[axis], 5.0)
		}
	}

	steps(loop, 10)
	rot := s.Points().Rotation
	assert.InDelta(t, 10*0.03*0.01, rot.X(), 1e-12)
	assert.InDelta(t, 10*0.06*0.01, rot.Y(), 1e-12)
	assert.Equal(t, uint64(10), s.Frames())
	assert.Equal(t, uint64(10), s.Surface().Draws())
	assert.Equal(t, 10, c.presented)
	assert.Equal(t, 1, loop.PendingFrames())
}

func TestField_ElementAttributes(t *testing.T) {
	f, _, c := newTestField(t, 10, 10)
	f.Mount(scenarioConfig())

	require.Len(t, c.Children(), 1)
	el := c.Children()[0]
	assert.Equal(t, "true", el.Attrs[AttrAriaHidden])
	assert.Equal(t, "none", el.Attrs[AttrPointerEvents])
	assert.Equal(t, "transparent", el.Attrs[AttrBackground])
	assert.Equal(t, f.Session().ID(), el.ID)
	assert.Same(t, f.Session().Surface(), el.Surface)
}

func TestField_NoTicksAfterTeardown(t *testing.T) {
	f, loop, c := newTestField(t, 64, 64)
	f.Mount(scenarioConfig())
	s := f.Session()
	steps(loop, 3)
	surface := s.Surface()
	el := s.Element()

	f.Unmount()
	assert.Equal(t, StateTornDown, s.State())
	assert.Nil(t, f.Session())

	steps(loop, 25)
	assert.Equal(t, uint64(3), s.Frames())
	assert.Equal(t, uint64(3), surface.Draws())
	assert.Equal(t, 3, c.presented)

	assert.Equal(t, 0, loop.PendingFrames())
	assert.Equal(t, 0, loop.ResizeListeners())
	assert.Empty(t, c.Children())
	assert.False(t, c.Contains(el))
	assert.Nil(t, el.Parent())

	assert.True(t, surface.Released())
	assert.True(t, s.Points().Geometry.Disposed())
	assert.True(t, s.Points().Material.Disposed())
	assert.Empty(t, s.Scene().Children())
}

func TestField_TeardownIsIdempotent(t *testing.T) {
	f, loop, _ := newTestField(t, 32, 32)
	f.Mount(scenarioConfig())
	s := f.Session()

	s.Teardown()
	s.Teardown()
	f.Unmount()
	f.Unmount()
	assert.Equal(t, StateTornDown, s.State())
	assert.Equal(t, 0, loop.PendingFrames())
}

func TestField_MountThenUnmountBeforeFirstTick(t *testing.T) {
	f, loop, c := newTestField(t, 32, 32)
	assert.NotPanics(t, func() {
		f.Mount(DefaultConfig())
		f.Unmount()
	})
	assert.Equal(t, 0, loop.PendingFrames())
	assert.Equal(t, 0, loop.ResizeListeners())
	assert.Empty(t, c.Children())
	steps(loop, 5)
	assert.Zero(t, c.presented)
}

func TestField_DetachedContainerIsNoop(t *testing.T) {
	f, loop, c := newTestField(t, 32, 32)
	c.SetAttached(false)

	f.Mount(scenarioConfig())
	s := f.Session()
	require.NotNil(t, s)
	assert.Equal(t, StateUninitialized, s.State())
	assert.Nil(t, s.Surface())
	assert.Empty(t, c.Children())
	assert.Equal(t, 0, loop.PendingFrames())
	assert.Equal(t, 0, loop.ResizeListeners())

	assert.NotPanics(t, f.Unmount)
	assert.Equal(t, StateTornDown, s.State())
}

func TestField_NilContainerIsNoop(t *testing.T) {
	loop := NewLoop()
	f := NewField(loop, nil)
	assert.NotPanics(t, func() {
		f.Mount(DefaultConfig())
		steps(loop, 2)
		f.Unmount()
	})
	assert.Equal(t, 0, loop.PendingFrames())
}

func TestField_Resize(t *testing.T) {
	f, loop, c := newTestField(t, 200, 100)
	f.Mount(scenarioConfig())
	s := f.Session()
	steps(loop, 2)

	g := s.Points().Geometry
	before := make([][3]float64, g.Len())
	for i := range before {
		before[i] = g.At(i)
	}

	c.SetSize(300, 150)
	loop.NotifyResize()
	assert.InDelta(t, 2.0, s.Camera().Aspect, 1e-12)

	c.SetSize(640, 480)
	loop.NotifyResize()
	assert.InDelta(t, 640.0/480.0, s.Camera().Aspect, 1e-12)
	w, h := s.Surface().Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	assert.Same(t, g, s.Points().Geometry)
	require.Equal(t, len(before), g.Len())
	for i := range before {
		assert.Equal(t, before[i], [3]float64(g.At(i)))
	}

	steps(loop, 1)
	assert.Equal(t, 640, s.Surface().Image().Bounds().Dx())
}

func TestField_ResizeAfterTeardownIsIgnored(t *testing.T) {
	f, loop, c := newTestField(t, 100, 100)
	f.Mount(scenarioConfig())
	s := f.Session()
	f.Unmount()

	c.SetSize(10, 20)
	loop.NotifyResize()
	assert.Equal(t, 1.0, s.Camera().Aspect)
}

func TestField_UpdateRebuildsSession(t *testing.T) {
	f, loop, c := newTestField(t, 50, 50)
	var ended []*Session
	f.onEnd = func(s *Session) { ended = append(ended, s) }

	cfg := scenarioConfig()
	f.Mount(cfg)
	first := f.Session()
	steps(loop, 2)

	f.Update(cfg)
	assert.Same(t, first, f.Session())
	assert.Empty(t, ended)

	cfg.Count = 50
	f.Update(cfg)
	second := f.Session()
	require.NotSame(t, first, second)
	assert.Equal(t, StateTornDown, first.State())
	assert.Equal(t, StateActive, second.State())
	assert.Equal(t, 50, second.Points().Geometry.Len())
	assert.NotEqual(t, first.ID(), second.ID())
	require.Len(t, ended, 1)
	assert.Same(t, first, ended[0])

	// one surface, one frame request, one listener
	require.Len(t, c.Children(), 1)
	assert.Same(t, second.Element(), c.Children()[0])
	assert.Equal(t, 1, loop.PendingFrames())
	assert.Equal(t, 1, loop.ResizeListeners())

	steps(loop, 4)
	assert.Equal(t, uint64(2), first.Frames())
	assert.Equal(t, uint64(4), second.Frames())
}

func TestField_UnmountFromPresenter(t *testing.T) {
	f, loop, c := newTestField(t, 20, 20)
	c.onPresent = func(*Element) { f.Unmount() }
	f.Mount(scenarioConfig())

	steps(loop, 1)
	assert.Equal(t, 1, c.presented)
	assert.Equal(t, 0, loop.PendingFrames())
	assert.Empty(t, c.Children())

	steps(loop, 3)
	assert.Equal(t, 1, c.presented)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "torn-down", StateTornDown.String())
	assert.Equal(t, "unknown", State(9).String())
}

// teardownRecorder collects host, container and release-step events in the
// order they happen.
type teardownRecorder struct {
	logging.Nop
	events []string
}

func (r *teardownRecorder) Debugf(format string, args ...any) {
	if msg := fmt.Sprintf(format, args...); strings.Contains(msg, ": release ") {
		r.events = append(r.events, msg[strings.Index(msg, ": release ")+2:])
	}
}

type recordingHost struct {
	*Loop
	rec *teardownRecorder
}

func (h *recordingHost) CancelFrame(id FrameID) {
	h.rec.events = append(h.rec.events, "host: cancel frame")
	h.Loop.CancelFrame(id)
}

func (h *recordingHost) RemoveResizeListener(id ListenerID) {
	h.rec.events = append(h.rec.events, "host: remove listener")
	h.Loop.RemoveResizeListener(id)
}

type recordingContainer struct {
	*BaseContainer
	rec *teardownRecorder
	s   func() *Session
}

func (c *recordingContainer) RemoveChild(el *Element) {
	s := c.s()
	c.rec.events = append(c.rec.events, fmt.Sprintf("container: remove child (surface released=%t, geometry disposed=%t)",
		s.Surface().Released(), s.Points().Geometry.Disposed()))
	c.BaseContainer.RemoveChild(el)
}

func TestSession_TeardownOrder(t *testing.T) {
	rec := &teardownRecorder{}
	loop := NewLoop()
	host := &recordingHost{Loop: loop, rec: rec}
	c := &recordingContainer{BaseContainer: NewBaseContainer(48, 48), rec: rec}
	f := NewField(host, c, WithLogger(rec), WithRand(rand.New(rand.NewSource(7))))
	f.Mount(scenarioConfig())
	s := f.Session()
	c.s = func() *Session { return s }
	steps(loop, 2)

	rec.events = nil
	f.Unmount()

	assert.Equal(t, []string{
		"release cancel-frame",
		"host: cancel frame",
		"release remove-listener",
		"host: remove listener",
		"release dispose-geometry",
		"release dispose-material",
		"release remove-points",
		"release release-surface",
		"release detach-element",
		"container: remove child (surface released=true, geometry disposed=true)",
	}, rec.events)
	assert.Equal(t, 0, loop.PendingFrames())
	assert.Equal(t, 0, loop.ResizeListeners())
}

func TestField_CountAboveCapIsNoop(t *testing.T) {
	f, loop, c := newTestField(t, 32, 32)
	cfg := scenarioConfig()
	cfg.Count = MaxCount + 1

	f.Mount(cfg)
	s := f.Session()
	require.NotNil(t, s)
	assert.Equal(t, StateUninitialized, s.State())
	assert.Nil(t, s.Points())
	assert.Empty(t, c.Children())
	assert.Equal(t, 0, loop.PendingFrames())
}
