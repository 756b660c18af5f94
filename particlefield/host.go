package particlefield

import (
	"context"
	"sync"
	"time"
)

type FrameID uint64

type ListenerID uint64

// Host supplies the display-refresh and viewport signals a Field runs on.
// Callbacks are invoked on the host's single loop goroutine.
type Host interface {
	// RequestFrame arms cb to run once on the next display refresh.
	RequestFrame(cb func(now time.Time)) FrameID
	// CancelFrame disarms a pending request. Unknown or already-fired ids are ignored.
	CancelFrame(id FrameID)
	AddResizeListener(fn func()) ListenerID
	RemoveResizeListener(id ListenerID)
	PixelRatio() float64
}

// DefaultRefreshInterval is roughly 60Hz.
const DefaultRefreshInterval = 16 * time.Millisecond

// Loop is a cooperative Host. All callbacks, resize listeners and posted tasks
// run on whichever goroutine calls Run (or Step, in tests).
type Loop struct {
	interval   time.Duration
	pixelRatio float64

	mu        sync.Mutex
	nextFrame FrameID
	frames    map[FrameID]func(time.Time)
	order     []FrameID
	nextLsn   ListenerID
	listeners map[ListenerID]func()
	lsnOrder  []ListenerID

	tasks    chan func()
	done     chan struct{}
	stopOnce sync.Once
}

type LoopOption func(*Loop)

func WithRefreshInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

func WithPixelRatio(r float64) LoopOption {
	return func(l *Loop) { l.pixelRatio = r }
}

func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		interval:   DefaultRefreshInterval,
		pixelRatio: 1,
		frames:     make(map[FrameID]func(time.Time)),
		listeners:  make(map[ListenerID]func()),
		tasks:      make(chan func(), 64),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) Interval() time.Duration { return l.interval }

func (l *Loop) PixelRatio() float64 { return l.pixelRatio }

func (l *Loop) RequestFrame(cb func(now time.Time)) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextFrame++
	id := l.nextFrame
	l.frames[id] = cb
	l.order = append(l.order, id)
	return id
}

func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	delete(l.frames, id)
	l.mu.Unlock()
}

func (l *Loop) AddResizeListener(fn func()) ListenerID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextLsn++
	id := l.nextLsn
	l.listeners[id] = fn
	l.lsnOrder = append(l.lsnOrder, id)
	return id
}

func (l *Loop) RemoveResizeListener(id ListenerID) {
	l.mu.Lock()
	delete(l.listeners, id)
	l.mu.Unlock()
}

// PendingFrames is the number of armed frame requests.
func (l *Loop) PendingFrames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

func (l *Loop) ResizeListeners() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.listeners)
}

// Step performs one display refresh. Only requests armed before the step run;
// a callback that re-arms itself runs again on the following step. A request
// cancelled by an earlier callback in the same step does not run.
func (l *Loop) Step(now time.Time) int {
	l.mu.Lock()
	due := l.order
	l.order = nil
	l.mu.Unlock()

	ran := 0
	for _, id := range due {
		l.mu.Lock()
		cb, ok := l.frames[id]
		delete(l.frames, id)
		l.mu.Unlock()
		if !ok {
			continue
		}
		cb(now)
		ran++
	}
	return ran
}

// NotifyResize runs every registered resize listener. A listener removed by
// an earlier one in the same dispatch is skipped.
func (l *Loop) NotifyResize() {
	l.mu.Lock()
	ids := make([]ListenerID, 0, len(l.lsnOrder))
	live := l.lsnOrder[:0]
	for _, id := range l.lsnOrder {
		if _, ok := l.listeners[id]; ok {
			ids = append(ids, id)
			live = append(live, id)
		}
	}
	l.lsnOrder = live
	l.mu.Unlock()

	for _, id := range ids {
		l.mu.Lock()
		fn, ok := l.listeners[id]
		l.mu.Unlock()
		if ok {
			fn()
		}
	}
}

// Post queues fn to run on the loop goroutine. It may be called from any
// goroutine and blocks only while the task queue is full. Once Run has
// returned, Post never blocks and fn may be dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Drain runs every queued task without waiting.
func (l *Loop) Drain() {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		default:
			return
		}
	}
}

// Run drives refreshes at the configured interval and executes posted tasks
// until ctx is done. Tasks still queued when ctx ends are run before returning.
// A Loop runs once; later calls return immediately.
func (l *Loop) Run(ctx context.Context) error {
	select {
	case <-l.done:
		return context.Canceled
	default:
	}
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	defer l.stopOnce.Do(func() { close(l.done) })

	for {
		select {
		case <-ctx.Done():
			l.Drain()
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		case now := <-ticker.C:
			l.Step(now)
		}
	}
}
