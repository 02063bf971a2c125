package terraform

import (
	"terrain-mc/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// Brush turns held-button input into rate-limited edits.
type Brush struct {
	Scale       float32
	MaxScale    float32
	Strength    float32
	Tick        float64
	MinDistance float32

	nextTick float64
}

// NewBrush returns a brush configured from cfg with zero scale.
func NewBrush(cfg *config.Config) *Brush {
	return &Brush{
		MaxScale:    float32(cfg.BrushMaxScale),
		Strength:    float32(cfg.BrushStrength),
		Tick:        cfg.BrushTick,
		MinDistance: float32(cfg.MinDistance),
	}
}

// Scroll grows or shrinks the brush, clamped to [0, MaxScale].
func (b *Brush) Scroll(delta float32) {
	b.Scale = mgl32.Clamp(b.Scale+delta, 0, b.MaxScale)
}

// Radius is half the brush scale.
func (b *Brush) Radius() float32 {
	return b.Scale / 2
}

// Ready reports whether an edit may fire at time now (seconds). A true
// result arms the next tick.
func (b *Brush) Ready(now float64) bool {
	if now <= b.nextTick {
		return false
	}
	b.nextTick = now + b.Tick
	return true
}

// Edit builds the edit at point. Shift selects Add, otherwise Subtract.
func (b *Brush) Edit(point mgl32.Vec3, shift bool) Edit {
	mode := Subtract
	if shift {
		mode = Add
	}
	return Edit{
		Point:    point,
		Radius:   b.Radius(),
		Strength: b.Strength,
		Mode:     mode,
	}
}

// Visible reports whether the brush should be drawn at hit. It is hidden
// when its surface would reach within MinDistance of the ray origin.
func (b *Brush) Visible(hit, rayOrigin mgl32.Vec3) bool {
	return hit.Sub(rayOrigin).Len()-b.Scale/2 >= b.MinDistance
}
