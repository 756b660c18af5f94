package particlefield

import (
	"image/color"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// CubeHalfWidth bounds every generated coordinate to [-CubeHalfWidth, CubeHalfWidth].
const CubeHalfWidth = 5.0

// Geometry is the point-cloud buffer. Positions are fixed once generated.
type Geometry struct {
	positions []mgl64.Vec3
	disposed  bool
}

// NewCloudGeometry samples count points uniformly from the cube around the origin.
func NewCloudGeometry(count int, rng *rand.Rand) *Geometry {
	positions := make([]mgl64.Vec3, count)
	for i := range positions {
		positions[i] = mgl64.Vec3{
			(rng.Float64() - 0.5) * 2 * CubeHalfWidth,
			(rng.Float64() - 0.5) * 2 * CubeHalfWidth,
			(rng.Float64() - 0.5) * 2 * CubeHalfWidth,
		}
	}
	return &Geometry{positions: positions}
}

func (g *Geometry) Len() int { return len(g.positions) }

func (g *Geometry) At(i int) mgl64.Vec3 { return g.positions[i] }

func (g *Geometry) Disposed() bool { return g.disposed }

// Dispose drops the buffer; the geometry renders nothing afterwards.
func (g *Geometry) Dispose() {
	g.positions = nil
	g.disposed = true
}

// Material describes how points are drawn.
type Material struct {
	Color color.NRGBA
	// Size is in world units and is attenuated with distance from the camera.
	Size     float64
	Opacity  float64
	disposed bool
}

func NewPointsMaterial(c color.NRGBA, size float64) *Material {
	return &Material{Color: c, Size: size, Opacity: 0.85}
}

func (m *Material) Disposed() bool { return m.disposed }

func (m *Material) Dispose() { m.disposed = true }

// Points binds a geometry and a material under one rigid rotation.
type Points struct {
	Geometry *Geometry
	Material *Material
	Rotation mgl64.Vec3
}

func NewPoints(g *Geometry, m *Material) *Points {
	return &Points{Geometry: g, Material: m}
}

// Model returns the object-to-world matrix, rotating X then Y then Z.
func (p *Points) Model() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(p.Rotation.X()).
		Mul4(mgl64.HomogRotate3DY(p.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(p.Rotation.Z()))
}

type Scene struct {
	children []*Points
}

func NewScene() *Scene { return &Scene{} }

func (s *Scene) Add(p *Points) {
	for _, c := range s.children {
		if c == p {
			return
		}
	}
	s.children = append(s.children, p)
}

func (s *Scene) Remove(p *Points) {
	for i, c := range s.children {
		if c == p {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

func (s *Scene) Children() []*Points { return s.children }
