package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/particlefield"
)

var errStreamLimit = errors.New("too many particle streams")

const (
	defaultStreamWidth  = 1280
	defaultStreamHeight = 720
)

// streamContainer is the hero region of one browser tab. Every presented
// frame is written as a PNG part of a multipart/x-mixed-replace response.
type streamContainer struct {
	*particlefield.BaseContainer
	mw     *multipart.Writer
	flush  func()
	fail   func()
	buf    bytes.Buffer
	err    error
	frames uint64
}

func (c *streamContainer) Present(el *particlefield.Element) {
	if c.err != nil || c.mw == nil {
		return
	}
	c.buf.Reset()
	if err := el.Surface.EncodePNG(&c.buf); err != nil {
		c.err = err
	} else if err := c.writePart(); err != nil {
		c.err = err
	}
	if c.err != nil {
		if c.fail != nil {
			c.fail()
		}
		return
	}
	c.frames++
	if c.flush != nil {
		c.flush()
	}
}

func (c *streamContainer) writePart() error {
	part, err := c.mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":   {"image/png"},
		"Content-Length": {strconv.Itoa(c.buf.Len())},
	})
	if err != nil {
		return err
	}
	_, err = part.Write(c.buf.Bytes())
	return err
}

type particleStream struct {
	id        string
	loop      *particlefield.Loop
	field     *particlefield.Field
	container *streamContainer
	cancel    context.CancelFunc
	started   time.Time
}

// Resize queues a container resize on the stream's loop.
func (s *particleStream) Resize(width, height int) {
	s.loop.Post(func() {
		s.container.SetSize(width, height)
		s.loop.NotifyResize()
	})
}

// streamHub tracks live particle streams by id.
type streamHub struct {
	mu      sync.Mutex
	streams map[string]*particleStream

	fps        int
	maxCount   int
	maxStreams int
	maxWidth   int
	maxHeight  int
	pixelRatio float64

	store *Store
	log   logging.Logger
}

func newStreamHub(cfg Config, store *Store, log logging.Logger) *streamHub {
	return &streamHub{
		streams:    make(map[string]*particleStream),
		fps:        cfg.ParticleFPS,
		maxCount:   cfg.ParticleMaxCount,
		maxStreams: cfg.ParticleMaxStreams,
		maxWidth:   cfg.ParticleMaxWidth,
		maxHeight:  cfg.ParticleMaxHeight,
		pixelRatio: 1,
		store:      store,
		log:        log,
	}
}

func (h *streamHub) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.streams)
}

func (h *streamHub) get(id string) *particleStream {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.streams[id]
}

func (h *streamHub) open(id string, width, height int, cancel context.CancelFunc) (*particleStream, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.streams) >= h.maxStreams {
		return nil, errStreamLimit
	}
	if _, dup := h.streams[id]; dup {
		return nil, errors.New("stream id in use")
	}

	fps := h.fps
	if fps <= 0 {
		fps = 30
	}
	loop := particlefield.NewLoop(
		particlefield.WithRefreshInterval(time.Second/time.Duration(fps)),
		particlefield.WithPixelRatio(h.pixelRatio),
	)
	container := &streamContainer{
		BaseContainer: particlefield.NewBaseContainer(width, height),
		fail:          cancel,
	}
	st := &particleStream{
		id:        id,
		loop:      loop,
		container: container,
		cancel:    cancel,
		started:   time.Now(),
	}
	st.field = particlefield.NewField(loop, container,
		particlefield.WithLogger(h.log),
		particlefield.WithSessionEnd(func(s *particlefield.Session) { h.record(st, s) }),
	)
	h.streams[id] = st
	return st, nil
}

func (h *streamHub) remove(id string) {
	h.mu.Lock()
	delete(h.streams, id)
	h.mu.Unlock()
}

func (h *streamHub) record(st *particleStream, s *particlefield.Session) {
	if h.store == nil || s.Frames() == 0 {
		return
	}
	cfg := s.Config()
	w, hh := st.container.Size()
	rec := ParticleSessionRecord{
		ID:        s.ID(),
		Count:     cfg.Count,
		Color:     particlefield.HexColor(cfg.Color),
		Size:      cfg.PointSize,
		RotateX:   cfg.RotationSpeedX,
		RotateY:   cfg.RotationSpeedY,
		Width:     w,
		Height:    hh,
		Frames:    s.Frames(),
		StartedAt: st.started,
		EndedAt:   time.Now(),
	}
	if err := h.store.RecordParticleSession(rec); err != nil {
		h.log.Errorf("record particle session %s: %v", rec.ID, err)
	}
}

// clampDim parses a pixel dimension, falling back to def and capping at max.
func clampDim(v string, def, max int) (int, error) {
	if v == "" {
		return min(def, max), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, errors.New("dimension must be a positive integer")
	}
	return min(n, max), nil
}

// handleStream serves one particle field as a multipart PNG stream. The
// request goroutine runs the field's loop, so the session is mounted, ticked
// and torn down on this goroutine only.
func (h *streamHub) handleStream(c *gin.Context) {
	cfg, err := particlefield.ParseConfig(c.GetQuery)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.maxCount > 0 && cfg.Count > h.maxCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("count must be at most %d", h.maxCount)})
		return
	}
	width, err := clampDim(c.Query("width"), defaultStreamWidth, h.maxWidth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width: " + err.Error()})
		return
	}
	height, err := clampDim(c.Query("height"), defaultStreamHeight, h.maxHeight)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "height: " + err.Error()})
		return
	}

	id := c.Query("session")
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session must be a UUID"})
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	st, err := h.open(id, width, height, cancel)
	if errors.Is(err, errStreamLimit) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	defer h.remove(id)

	mw := multipart.NewWriter(c.Writer)
	c.Header("Content-Type", "multipart/x-mixed-replace; boundary="+mw.Boundary())
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("X-Particle-Session", id)
	c.Status(http.StatusOK)
	c.Writer.Flush()

	st.container.mw = mw
	st.container.flush = c.Writer.Flush
	h.log.Infof("particle stream %s opened (%dx%d, %d points)", id, width, height, cfg.Count)

	st.loop.Post(func() { st.field.Mount(cfg) })
	_ = st.loop.Run(ctx)
	st.field.Unmount()

	if st.container.err == nil {
		_ = mw.Close()
	}
	h.log.Infof("particle stream %s closed after %d frames", id, st.container.frames)
}

func (h *streamHub) handleResize(c *gin.Context) {
	st := h.get(c.Param("id"))
	if st == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stream not found"})
		return
	}
	width, errW := clampDim(c.PostForm("width"), 0, h.maxWidth)
	height, errH := clampDim(c.PostForm("height"), 0, h.maxHeight)
	if errW != nil || errH != nil || width == 0 || height == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be positive integers"})
		return
	}
	st.Resize(width, height)
	c.JSON(http.StatusOK, gin.H{"width": width, "height": height})
}

func (h *streamHub) handleClose(c *gin.Context) {
	st := h.get(c.Param("id"))
	if st == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stream not found"})
		return
	}
	st.cancel()
	c.Status(http.StatusNoContent)
}
