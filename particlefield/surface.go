package particlefield

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
)

// maxPixelRatio caps the backing-store density on high-DPI hosts.
const maxPixelRatio = 2.0

// minPointRadius keeps far points visible as at least a one-pixel dot.
const minPointRadius = 0.5

// Surface is the drawing surface: a transparent raster sized to the container
// and scaled by the host pixel ratio.
type Surface struct {
	ctx        *gg.Context
	width      int
	height     int
	pixelRatio float64
	draws      uint64
	released   bool
}

func NewSurface(width, height int, pixelRatio float64) *Surface {
	s := &Surface{pixelRatio: clampPixelRatio(pixelRatio)}
	s.width, s.height = atLeastOne(width), atLeastOne(height)
	bw, bh := s.BufferSize()
	s.ctx = gg.NewContext(bw, bh)
	s.ctx.Clear()
	return s
}

func clampPixelRatio(r float64) float64 {
	if !(r > 0) {
		return 1
	}
	return math.Min(r, maxPixelRatio)
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Size reports the logical (CSS pixel) size.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// BufferSize reports the backing raster size in device pixels.
func (s *Surface) BufferSize() (int, int) {
	return atLeastOne(int(math.Round(float64(s.width) * s.pixelRatio))),
		atLeastOne(int(math.Round(float64(s.height) * s.pixelRatio)))
}

func (s *Surface) PixelRatio() float64 { return s.pixelRatio }

func (s *Surface) Draws() uint64 { return s.draws }

func (s *Surface) Released() bool { return s.released }

// SetSize resizes the backing raster. Contents are discarded.
func (s *Surface) SetSize(width, height int) error {
	if s.released {
		return nil
	}
	s.width, s.height = atLeastOne(width), atLeastOne(height)
	bw, bh := s.BufferSize()
	if err := s.ctx.Resize(bw, bh); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}
	s.ctx.Clear()
	return nil
}

// Render clears to transparent and draws every point of the scene as seen from
// the camera. Point radius follows perspective size attenuation.
func (s *Surface) Render(scene *Scene, camera *Camera) error {
	if s.released {
		return nil
	}
	s.ctx.Clear()

	bw, bh := s.BufferSize()
	fw, fh := float64(bw), float64(bh)
	viewProj := camera.ViewProjection()
	// world size 1 at depth 1 spans half the viewport height
	scale := fh / 2

	for _, p := range scene.Children() {
		g, m := p.Geometry, p.Material
		if g == nil || m == nil || g.Disposed() || m.Disposed() {
			continue
		}
		mvp := viewProj.Mul4(p.Model())
		s.ctx.SetRGBA(float64(m.Color.R)/255, float64(m.Color.G)/255, float64(m.Color.B)/255, m.Opacity)
		for i := 0; i < g.Len(); i++ {
			clip := mvp.Mul4x1(g.At(i).Vec4(1))
			w := clip.W()
			if w <= camera.Near {
				continue
			}
			ndc := mgl64.Vec3{clip.X() / w, clip.Y() / w, clip.Z() / w}
			if ndc.Z() < -1 || ndc.Z() > 1 {
				continue
			}
			x := (ndc.X() + 1) / 2 * fw
			y := (1 - ndc.Y()) / 2 * fh
			r := math.Max(m.Size*scale/w/2, minPointRadius)
			if x < -r || y < -r || x > fw+r || y > fh+r {
				continue
			}
			// one fill per disc so overlapping points accumulate
			s.ctx.DrawCircle(x, y, r)
			if err := s.ctx.Fill(); err != nil {
				return fmt.Errorf("fill point %d: %w", i, err)
			}
		}
	}
	s.draws++
	return nil
}

// Image returns the current frame. Nil once released.
func (s *Surface) Image() image.Image {
	if s.released {
		return nil
	}
	return s.ctx.Image()
}

func (s *Surface) EncodePNG(w io.Writer) error {
	if s.released {
		return fmt.Errorf("surface released")
	}
	return s.ctx.EncodePNG(w)
}

// Release frees the raster context. Safe to call more than once.
func (s *Surface) Release() error {
	if s.released {
		return nil
	}
	s.released = true
	err := s.ctx.Close()
	s.ctx = nil
	return err
}
