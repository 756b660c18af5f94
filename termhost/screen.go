// Package termhost renders a particle field into a terminal through tcell.
// Each character cell shows two vertically stacked surface pixels using the
// upper half block, so a W x H terminal hosts a W x 2H surface.
package termhost

import (
	"context"
	"errors"
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/portfolio/particlefield"
)

const halfBlock = '▀'

// Screen adapts a tcell.Screen to particlefield.Container and Presenter.
type Screen struct {
	screen   tcell.Screen
	children []*particlefield.Element
	closed   bool
}

func New(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

func (s *Screen) Attached() bool { return s.screen != nil && !s.closed }

func (s *Screen) Size() (int, int) {
	w, h := s.screen.Size()
	return w, h * 2
}

func (s *Screen) AppendChild(el *particlefield.Element) {
	s.children = append(s.children, el)
}

func (s *Screen) RemoveChild(el *particlefield.Element) {
	for i, ch := range s.children {
		if ch == el {
			s.children = append(s.children[:i], s.children[i+1:]...)
			break
		}
	}
	if s.Attached() {
		s.screen.Clear()
		s.screen.Show()
	}
}

func (s *Screen) Children() []*particlefield.Element { return s.children }

// Present copies the element's current frame to the terminal.
func (s *Screen) Present(el *particlefield.Element) {
	if !s.Attached() || el.Surface == nil {
		return
	}
	img := el.Surface.Image()
	if img == nil {
		return
	}
	cols, rows := s.screen.Size()
	b := img.Bounds()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := sample(img, b, x, 2*y, cols, rows*2)
			bottom := sample(img, b, x, 2*y+1, cols, rows*2)
			if top == nil && bottom == nil {
				s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
				continue
			}
			style := tcell.StyleDefault
			if top != nil {
				style = style.Foreground(*top)
			}
			if bottom != nil {
				style = style.Background(*bottom)
			}
			s.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	s.screen.Show()
}

// sample maps cell-pixel (x, y) on a w x h grid to the image and returns the
// pixel blended over black, or nil when fully transparent.
func sample(img image.Image, b image.Rectangle, x, y, w, h int) *tcell.Color {
	if w <= 0 || h <= 0 {
		return nil
	}
	px := b.Min.X + x*b.Dx()/w
	py := b.Min.Y + y*b.Dy()/h
	r, g, bl, a := img.At(px, py).RGBA()
	if a == 0 {
		return nil
	}
	// RGBA() is premultiplied, which is exactly "over black"
	c := tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(bl>>8))
	return &c
}

// Close detaches the container; later mounts become no-ops.
func (s *Screen) Close() {
	s.closed = true
}

// Run mounts a field with cfg on screen and drives it until ctx ends or the
// user presses Esc, q or Ctrl-C. The field is unmounted before Run returns.
// The caller owns screen and must have called Init on it.
func Run(ctx context.Context, screen tcell.Screen, cfg particlefield.Config, loop *particlefield.Loop, opts ...particlefield.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	host := New(screen)
	field := particlefield.NewField(loop, host, opts...)

	go pollEvents(ctx, screen, loop, cancel)

	loop.Post(func() { field.Mount(cfg) })
	err := loop.Run(ctx)
	field.Unmount()
	host.Close()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func pollEvents(ctx context.Context, screen tcell.Screen, loop *particlefield.Loop, quit context.CancelFunc) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			loop.Post(func() {
				screen.Sync()
				loop.NotifyResize()
			})
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				quit()
				return
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}
