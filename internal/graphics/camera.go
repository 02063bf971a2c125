package graphics

import (
	"math"

	"terrain-mc/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free-flying camera with the view and projection matrices
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32 // degrees, 0 looks along +X
	Pitch    float32 // degrees

	Speed       float32
	Sensitivity float32

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	width, height int
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		Yaw:         45,
		Pitch:       -20,
		Speed:       20,
		Sensitivity: 0.1,
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio used for projection and cursor rays
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	c.AspectRatio = float32(width) / float32(height)
}

// Front returns the unit view direction
func (c *Camera) Front() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// Right returns the unit right vector on the horizontal plane
func (c *Camera) Right() mgl32.Vec3 {
	return c.Front().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// Look turns the camera by a cursor delta in pixels
func (c *Camera) Look(dx, dy float64) {
	c.Yaw += float32(dx) * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch-float32(dy)*c.Sensitivity, -89, 89)
}

// Move translates the camera along its local axes; forward, right and up are in [-1, 1]
func (c *Camera) Move(forward, right, up float32, dt float64) {
	step := c.Speed * float32(dt)
	delta := c.Front().Mul(forward).Add(c.Right().Mul(right)).Add(mgl32.Vec3{0, up, 0})
	if delta.Len() == 0 {
		return
	}
	c.Position = c.Position.Add(delta.Normalize().Mul(step))
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// CursorRay returns the world-space ray through window pixel (x, y)
func (c *Camera) CursorRay(x, y float64) physics.Ray {
	if c.width == 0 || c.height == 0 {
		return physics.Ray{Origin: c.Position, Direction: c.Front()}
	}
	ndcX := float32(2*x/float64(c.width) - 1)
	ndcY := float32(1 - 2*y/float64(c.height))
	inv := c.GetProjectionMatrix().Mul4(c.GetViewMatrix()).Inv()

	near := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})
	n := near.Vec3().Mul(1 / near.W())
	f := far.Vec3().Mul(1 / far.W())
	return physics.Ray{Origin: c.Position, Direction: f.Sub(n).Normalize()}
}
