package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/internal/engine/model"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates, angles in radians.
	Distance  float32
	RotationX float32 // pitch
	RotationY float32 // yaw

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
	PanSpeed        float32

	FOV  float32
	Near float32
	Far  float32
}

// NewOrbitCamera returns an orbit camera 20 units from the origin.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        20,
		RotationX:       0.5,
		MinDistance:     0.5,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSpeed:        0.5,
		FOV:             DefaultZoom,
		Near:            DefaultNear,
		Far:             DefaultFar,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	offset := mgl32.Vec3{
		c.Distance * cos(c.RotationX) * sin(c.RotationY),
		c.Distance * sin(c.RotationX),
		c.Distance * cos(c.RotationX) * cos(c.RotationY),
	}
	return c.Center.Add(offset)
}

// ViewMatrix looks from Position at Center.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, worldUp)
}

// ProjectionMatrix returns a perspective projection with a fixed FOV.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// HandleDrag rotates around the center by a mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom moves toward the center proportionally to the distance.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center on the XZ plane relative to the view, and
// vertically for up. Speed scales with distance.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	speed := c.Distance * c.PanSpeed

	dirX, dirZ := sin(c.RotationY), cos(c.RotationY)
	rightX, rightZ := cos(c.RotationY), -sin(c.RotationY)

	c.Center[0] += (-dirX*forward + rightX*right) * speed
	c.Center[2] += (-dirZ*forward + rightZ*right) * speed
	c.Center[1] += up * speed
}

// FitToBounds centers on b and backs off far enough to see all of it.
func (c *OrbitCamera) FitToBounds(b model.Bounds) {
	if b.IsEmpty() {
		return
	}
	c.Center = b.Center()
	size := b.Size()
	extent := mgl32.Vec3{size[0], size[1], size[2]}.Len()
	c.Distance = mgl32.Clamp(extent*1.5, c.MinDistance, c.MaxDistance)
	c.RotationX = 0.6
	c.RotationY = 0
}

// ProcessKeyboard pans the center.
func (c *OrbitCamera) ProcessKeyboard(dir Direction, dt float32) {
	switch dir {
	case Forward:
		c.HandleMovement(dt, 0, 0)
	case Backward:
		c.HandleMovement(-dt, 0, 0)
	case Left:
		c.HandleMovement(0, -dt, 0)
	case Right:
		c.HandleMovement(0, dt, 0)
	case Up:
		c.HandleMovement(0, 0, dt)
	case Down:
		c.HandleMovement(0, 0, -dt)
	}
}

// ProcessMouseMovement orbits. Positive dy raises the camera.
func (c *OrbitCamera) ProcessMouseMovement(dx, dy float32) {
	c.HandleDrag(dx, dy)
}

// ProcessMouseScroll zooms in for positive dy.
func (c *OrbitCamera) ProcessMouseScroll(dy float32) {
	c.HandleZoom(dy)
}

func sin(r float32) float32 { return float32(math.Sin(float64(r))) }
func cos(r float32) float32 { return float32(math.Cos(float64(r))) }
