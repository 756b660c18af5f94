package particlefield

import (
	"math/rand"
	"time"

	"github.com/Zachkp/portfolio/internal/logging"
)

// Field is one mounted particle-field component. It owns at most one Session
// at a time. All methods must be called on the host's loop goroutine.
type Field struct {
	host      Host
	container Container
	log       logging.Logger
	rng       *rand.Rand

	mounted bool
	session *Session
	onEnd   func(*Session)
}

type Option func(*Field)

func WithLogger(l logging.Logger) Option {
	return func(f *Field) { f.log = l }
}

// WithRand fixes the point sampling source, mainly for tests.
func WithRand(rng *rand.Rand) Option {
	return func(f *Field) { f.rng = rng }
}

// WithSessionEnd registers fn to be called after each session is torn down.
func WithSessionEnd(fn func(*Session)) Option {
	return func(f *Field) { f.onEnd = fn }
}

func NewField(host Host, container Container, opts ...Option) *Field {
	f := &Field{
		host:      host,
		container: container,
		log:       logging.Nop{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return f
}

// Mount creates and starts a session for cfg. Mounting an already mounted
// field behaves like Update.
func (f *Field) Mount(cfg Config) {
	if f.mounted {
		f.Update(cfg)
		return
	}
	f.mounted = true
	f.replace(cfg)
}

// Update rebuilds the session when cfg differs from the current one. The old
// session is fully torn down before the new one acquires anything.
func (f *Field) Update(cfg Config) {
	if !f.mounted {
		f.Mount(cfg)
		return
	}
	if f.session != nil && f.session.Config() == cfg {
		return
	}
	f.replace(cfg)
}

func (f *Field) replace(cfg Config) {
	f.endSession()
	s := newSession(f.host, cfg, f.log)
	f.session = s
	s.start(f.container, f.rng)
}

// Unmount tears the current session down. Safe to call repeatedly.
func (f *Field) Unmount() {
	f.endSession()
	f.mounted = false
}

func (f *Field) endSession() {
	s := f.session
	if s == nil {
		return
	}
	f.session = nil
	s.Teardown()
	if f.onEnd != nil {
		f.onEnd(s)
	}
}

func (f *Field) Mounted() bool { return f.mounted }

// Session returns the current session, or nil when unmounted.
func (f *Field) Session() *Session { return f.session }
