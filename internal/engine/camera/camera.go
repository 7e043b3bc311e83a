// Package camera provides the fly and orbit cameras.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a keyboard movement direction.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

// Camera is the view the app renders through. Input is routed through the
// same three calls for every mode.
type Camera interface {
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix(aspect float32) mgl32.Mat4
	Position() mgl32.Vec3
	ProcessKeyboard(dir Direction, dt float32)
	ProcessMouseMovement(dx, dy float32)
	ProcessMouseScroll(dy float32)
}

// Defaults shared by both cameras.
const (
	DefaultYaw         = -90
	DefaultPitch       = 0
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.05
	DefaultZoom        = 45
	DefaultNear        = 0.1
	DefaultFar         = 100

	minZoom  = 1
	maxZoom  = 45
	maxPitch = 89
)

var worldUp = mgl32.Vec3{0, 1, 0}

// FlyCamera is a free-look camera driven by Euler angles in degrees.
type FlyCamera struct {
	Speed       float32
	Sensitivity float32
	Near        float32
	Far         float32

	pos   mgl32.Vec3
	front mgl32.Vec3
	up    mgl32.Vec3
	right mgl32.Vec3
	yaw   float32
	pitch float32
	zoom  float32
}

// NewFlyCamera returns a camera at pos looking down -Z.
func NewFlyCamera(pos mgl32.Vec3) *FlyCamera {
	c := &FlyCamera{
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		Near:        DefaultNear,
		Far:         DefaultFar,
		pos:         pos,
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		zoom:        DefaultZoom,
	}
	c.updateVectors()
	return c
}

func (c *FlyCamera) Position() mgl32.Vec3 { return c.pos }
func (c *FlyCamera) Front() mgl32.Vec3    { return c.front }
func (c *FlyCamera) Yaw() float32         { return c.yaw }
func (c *FlyCamera) Pitch() float32       { return c.pitch }
func (c *FlyCamera) Zoom() float32        { return c.zoom }

// SetPosition moves the camera without changing its orientation.
func (c *FlyCamera) SetPosition(p mgl32.Vec3) { c.pos = p }

// SetOrientation sets yaw and pitch in degrees. Pitch is clamped to ±89.
func (c *FlyCamera) SetOrientation(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = mgl32.Clamp(pitch, -maxPitch, maxPitch)
	c.updateVectors()
}

// SetZoom sets the vertical field of view in degrees, clamped to [1, 45].
func (c *FlyCamera) SetZoom(fov float32) {
	c.zoom = mgl32.Clamp(fov, minZoom, maxZoom)
}

// ViewMatrix looks from the position along the front vector.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.pos, c.pos.Add(c.front), c.up)
}

// ProjectionMatrix returns a perspective projection using the zoom as FOV.
func (c *FlyCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.zoom), aspect, c.Near, c.Far)
}

// ProcessKeyboard moves the camera by Speed*dt. Up and Down follow the
// world up axis.
func (c *FlyCamera) ProcessKeyboard(dir Direction, dt float32) {
	v := c.Speed * dt
	switch dir {
	case Forward:
		c.pos = c.pos.Add(c.front.Mul(v))
	case Backward:
		c.pos = c.pos.Sub(c.front.Mul(v))
	case Left:
		c.pos = c.pos.Sub(c.right.Mul(v))
	case Right:
		c.pos = c.pos.Add(c.right.Mul(v))
	case Up:
		c.pos = c.pos.Add(worldUp.Mul(v))
	case Down:
		c.pos = c.pos.Sub(worldUp.Mul(v))
	}
}

// ProcessMouseMovement turns the camera. Positive dy looks up.
func (c *FlyCamera) ProcessMouseMovement(dx, dy float32) {
	c.SetOrientation(c.yaw+dx*c.Sensitivity, c.pitch+dy*c.Sensitivity)
}

// ProcessMouseScroll narrows the field of view for positive dy.
func (c *FlyCamera) ProcessMouseScroll(dy float32) {
	c.SetZoom(c.zoom - dy)
}

func (c *FlyCamera) updateVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)
	front := mgl32.Vec3{
		cos(yaw) * cos(pitch),
		sin(pitch),
		sin(yaw) * cos(pitch),
	}
	c.front = front.Normalize()
	c.right = c.front.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

var (
	_ Camera = (*FlyCamera)(nil)
	_ Camera = (*OrbitCamera)(nil)
)
