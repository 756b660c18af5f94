package particlefield

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking at the origin.
type Camera struct {
	Fov      float64 // vertical field of view, degrees
	Aspect   float64
	Near     float64
	Far      float64
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	projection mgl64.Mat4
}

// NewPerspectiveCamera places the camera at z=6, which frames the 10-unit
// particle cube at a 60 degree field of view.
func NewPerspectiveCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{
		Fov:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Position: mgl64.Vec3{0, 0, 6},
		Up:       mgl64.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *Camera) UpdateProjectionMatrix() {
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// SetAspect changes the aspect ratio and rebuilds the projection.
func (c *Camera) SetAspect(aspect float64) {
	c.Aspect = aspect
	c.UpdateProjectionMatrix()
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.projection.Mul4(c.View())
}

// aspectOf guards against zero-height containers.
func aspectOf(width, height int) float64 {
	if height <= 0 {
		return 1
	}
	return float64(width) / float64(height)
}
