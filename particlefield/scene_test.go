package particlefield

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCloudGeometry_CountAndBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{1, 100, 2000} {
		g := NewCloudGeometry(n, rng)
		require.Equal(t, n, g.Len())
		for i := 0; i < g.Len(); i++ {
			p := g.At(i)
			for axis := 0; axis < 3; axis++ {
				assert.GreaterOrEqual(t, p[axis], -CubeHalfWidth)
				assert.LessOrEqual(t, p[axis], CubeHalfWidth)
			}
		}
	}
}

func TestGeometryDispose(t *testing.T) {
	g := NewCloudGeometry(10, rand.New(rand.NewSource(1)))
	g.Dispose()
	assert.True(t, g.Disposed())
	assert.Equal(t, 0, g.Len())
}

func TestScene_AddRemove(t *testing.T) {
	s := NewScene()
	p := NewPoints(NewCloudGeometry(3, rand.New(rand.NewSource(1))), NewPointsMaterial(DefaultConfig().Color, 0.1))

	s.Add(p)
	s.Add(p)
	assert.Len(t, s.Children(), 1)

	s.Remove(p)
	assert.Empty(t, s.Children())
	s.Remove(p)
	assert.Empty(t, s.Children())
}

func TestPointsModel_RotatesXThenY(t *testing.T) {
	p := NewPoints(nil, nil)
	p.Rotation = mgl64.Vec3{math.Pi / 2, 0, 0}

	// +Y rotated a quarter turn about X lands on +Z
	v := p.Model().Mul4x1(mgl64.Vec4{0, 1, 0, 1})
	assert.InDelta(t, 0, v.X(), 1e-9)
	assert.InDelta(t, 0, v.Y(), 1e-9)
	assert.InDelta(t, 1, v.Z(), 1e-9)

	p.Rotation = mgl64.Vec3{0, math.Pi / 2, 0}
	v = p.Model().Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 0, v.X(), 1e-9)
	assert.InDelta(t, -1, v.Z(), 1e-9)
}

func TestCamera_SetAspect(t *testing.T) {
	c := NewPerspectiveCamera(60, 1, 0.1, 100)
	before := c.ViewProjection()

	c.SetAspect(2)
	assert.Equal(t, 2.0, c.Aspect)
	assert.NotEqual(t, before, c.ViewProjection())

	// origin projects to the centre whatever the aspect
	clip := c.ViewProjection().Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-9)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-9)
	assert.InDelta(t, 6, clip.W(), 1e-9)
}

func TestAspectOf(t *testing.T) {
	assert.Equal(t, 2.0, aspectOf(200, 100))
	assert.Equal(t, 1.0, aspectOf(200, 0))
}
