// Package render provides the camera and primary ray generation
package render

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"raytracer/pkg/math"
)

// Camera generates primary rays from a world-from-camera transform and
// a half-angle scalar derived from the vertical field of view.
type Camera struct {
	Transform mgl32.Mat4
	HalfAngle float32
}

// NewCamera returns a camera at the origin looking down -Z with the
// given vertical field of view in degrees.
func NewCamera(fovDegrees float32) Camera {
	return Camera{
		Transform: mgl32.Ident4(),
		HalfAngle: HalfAngle(fovDegrees),
	}
}

// HalfAngle converts a vertical field of view in degrees to the
// half-angle scalar used for ray generation.
func HalfAngle(fovDegrees float32) float32 {
	return float32(stdmath.Tan(float64(mgl32.DegToRad(fovDegrees)) * 0.5))
}

// Ray produces the primary ray for pixel (x, y) on a width*height
// framebuffer. The ray passes through the pixel center.
func (c *Camera) Ray(x, y, width, height int) math.Ray {
	w := float32(width)
	h := float32(height)
	u := (2*(float32(x)+0.5)/w - 1) * c.HalfAngle * (w / h)
	v := (1 - 2*(float32(y)+0.5)/h) * c.HalfAngle

	origin := math.TransformPoint(c.Transform, mgl32.Vec3{})
	dir := math.TransformDir(c.Transform, mgl32.Vec3{u, v, -1}).Normalize()
	return math.NewRay(origin, dir)
}

// Validate rejects transforms carrying NaN and non-positive half
// angles before they reach a frame.
func (c *Camera) Validate() error {
	for i := 0; i < 16; i++ {
		if stdmath.IsNaN(float64(c.Transform[i])) {
			return ErrCameraNaN
		}
	}
	if c.HalfAngle <= 0 || stdmath.IsNaN(float64(c.HalfAngle)) {
		return ErrCameraNaN
	}
	return nil
}

// Controller is a yaw/pitch fly camera that evaluates to a
// world-from-camera transform. The interactive viewer drives it; the
// renderer itself only sees the resulting matrix.
type Controller struct {
	Position mgl32.Vec3

	// Euler angles (in degrees)
	Yaw   float32
	Pitch float32

	// Options
	FOV         float32
	Sensitivity float32
	Speed       float32
}

// NewController creates a controller at the given position looking
// towards negative Z.
func NewController(position mgl32.Vec3) *Controller {
	return &Controller{
		Position:    position,
		Yaw:         0,
		Pitch:       0,
		FOV:         45.0,
		Sensitivity: 0.1,
		Speed:       4.0,
	}
}

// ProcessMouseMovement handles mouse movement for looking around
func (c *Controller) ProcessMouseMovement(xoffset, yoffset float32) {
	c.Yaw -= xoffset * c.Sensitivity
	c.Pitch += yoffset * c.Sensitivity

	// Constrain pitch to prevent flipping
	if c.Pitch > 89.0 {
		c.Pitch = 89.0
	}
	if c.Pitch < -89.0 {
		c.Pitch = -89.0
	}
}

// Move translates the position along the camera's basis vectors:
// forward, right and up amounts are in world units.
func (c *Controller) Move(forward, right, up float32) {
	m := c.orientation()
	fwd := math.TransformDir(m, mgl32.Vec3{0, 0, -1})
	rgt := math.TransformDir(m, mgl32.Vec3{1, 0, 0})
	c.Position = c.Position.Add(fwd.Mul(forward)).Add(rgt.Mul(right))
	c.Position[1] += up
}

// Camera evaluates the controller to a renderer camera.
func (c *Controller) Camera() Camera {
	return Camera{
		Transform: mgl32.Translate3D(c.Position[0], c.Position[1], c.Position[2]).Mul4(c.orientation()),
		HalfAngle: HalfAngle(c.FOV),
	}
}

func (c *Controller) orientation() mgl32.Mat4 {
	yaw := mgl32.QuatRotate(mgl32.DegToRad(c.Yaw), mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(mgl32.DegToRad(c.Pitch), mgl32.Vec3{1, 0, 0})
	return yaw.Mul(pitch).Mat4()
}
