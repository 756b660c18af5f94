package particlefield

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/logging"
)

// RotationScale converts configured rotation speeds into radians per frame.
const RotationScale = 0.01

// Camera framing of the particle cube.
const (
	cameraFov  = 60
	cameraNear = 0.1
	cameraFar  = 100
)

type State int

const (
	StateUninitialized State = iota
	StateActive
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateTornDown:
		return "torn-down"
	}
	return "unknown"
}

// Session owns the graphics resources of one mount of a Field. It is created
// per configuration and never reactivated once torn down.
type Session struct {
	id     string
	cfg    Config
	host   Host
	log    logging.Logger
	state  State
	frames uint64

	container Container
	scene     *Scene
	camera    *Camera
	geometry  *Geometry
	material  *Material
	points    *Points
	surface   *Surface
	element   *Element

	frame    FrameID
	armed    bool
	listener ListenerID

	// release is a stack; teardown pops it in reverse registration order.
	release []releaseStep
}

type releaseStep struct {
	name string
	fn   func()
}

func newSession(host Host, cfg Config, log logging.Logger) *Session {
	return &Session{
		id:   uuid.NewString(),
		cfg:  cfg,
		host: host,
		log:  log,
	}
}

func (s *Session) ID() string        { return s.id }
func (s *Session) Config() Config    { return s.cfg }
func (s *Session) State() State      { return s.state }
func (s *Session) Frames() uint64    { return s.frames }
func (s *Session) Camera() *Camera   { return s.camera }
func (s *Session) Points() *Points   { return s.points }
func (s *Session) Surface() *Surface { return s.surface }
func (s *Session) Element() *Element { return s.element }
func (s *Session) Scene() *Scene     { return s.scene }

func (s *Session) onTeardown(name string, fn func()) {
	s.release = append(s.release, releaseStep{name: name, fn: fn})
}

// start acquires every resource and arms the first frame; nothing is drawn
// until the host's next refresh. A missing or detached container, or an
// invalid config, leaves the session uninitialized with nothing acquired.
func (s *Session) start(container Container, rng *rand.Rand) {
	if s.state != StateUninitialized {
		return
	}
	if container == nil || !container.Attached() {
		s.log.Debugf("session %s: container not attached, skipping", s.id)
		return
	}
	if err := s.cfg.Validate(); err != nil {
		s.log.Warnf("session %s: %v", s.id, err)
		return
	}
	s.container = container
	width, height := container.Size()

	s.scene = NewScene()
	s.camera = NewPerspectiveCamera(cameraFov, aspectOf(width, height), cameraNear, cameraFar)

	s.surface = NewSurface(width, height, s.host.PixelRatio())
	s.element = newSurfaceElement(s.id, s.surface)
	attach(container, s.element)
	s.onTeardown("detach-element", func() { detach(s.element) })
	s.onTeardown("release-surface", func() {
		if err := s.surface.Release(); err != nil {
			s.log.Warnf("session %s: release surface: %v", s.id, err)
		}
	})

	s.geometry = NewCloudGeometry(s.cfg.Count, rng)
	s.material = NewPointsMaterial(s.cfg.Color, s.cfg.PointSize)
	s.points = NewPoints(s.geometry, s.material)
	s.scene.Add(s.points)
	s.onTeardown("remove-points", func() { s.scene.Remove(s.points) })
	s.onTeardown("dispose-material", s.material.Dispose)
	s.onTeardown("dispose-geometry", s.geometry.Dispose)

	s.listener = s.host.AddResizeListener(s.onResize)
	s.onTeardown("remove-listener", func() { s.host.RemoveResizeListener(s.listener) })

	s.onTeardown("cancel-frame", func() {
		if s.armed {
			s.host.CancelFrame(s.frame)
			s.armed = false
		}
	})

	s.state = StateActive
	s.log.Debugf("session %s: active %dx%d, %d points", s.id, width, height, s.geometry.Len())
	s.arm()
}

func (s *Session) arm() {
	s.frame = s.host.RequestFrame(s.tick)
	s.armed = true
}

// tick advances the rotation, draws one frame and re-arms itself.
func (s *Session) tick(time.Time) {
	s.armed = false
	if s.state != StateActive {
		return
	}
	s.points.Rotation[0] += s.cfg.RotationSpeedX * RotationScale
	s.points.Rotation[1] += s.cfg.RotationSpeedY * RotationScale

	if err := s.surface.Render(s.scene, s.camera); err != nil {
		s.log.Warnf("session %s: render: %v", s.id, err)
	} else {
		s.frames++
		if p, ok := s.container.(Presenter); ok && s.element.Parent() != nil {
			p.Present(s.element)
		}
	}

	// presenting may have torn the session down
	if s.state != StateActive {
		return
	}
	s.arm()
}

func (s *Session) onResize() {
	if s.state != StateActive {
		return
	}
	width, height := s.container.Size()
	s.camera.SetAspect(aspectOf(width, height))
	if err := s.surface.SetSize(width, height); err != nil {
		s.log.Warnf("session %s: %v", s.id, err)
	}
}

// Teardown cancels the pending frame, removes the resize listener, disposes
// buffer and material, detaches the points, releases the surface and removes
// its element. Calling it again is a no-op.
func (s *Session) Teardown() {
	if s.state == StateTornDown {
		return
	}
	wasActive := s.state == StateActive
	s.state = StateTornDown
	for i := len(s.release) - 1; i >= 0; i-- {
		step := s.release[i]
		s.log.Debugf("session %s: release %s", s.id, step.name)
		step.fn()
	}
	s.release = nil
	if wasActive {
		s.log.Debugf("session %s: torn down after %d frames", s.id, s.frames)
	}
}
