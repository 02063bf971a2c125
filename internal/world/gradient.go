package world

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// ColorStop is a gradient color at normalized position Pos.
type ColorStop struct {
	Pos   float32
	Color mgl32.Vec4
}

// Gradient maps a normalized height to a vertex color.
type Gradient struct {
	stops []ColorStop
}

// NewGradient returns a gradient over stops, sorted by position.
func NewGradient(stops ...ColorStop) *Gradient {
	s := append([]ColorStop(nil), stops...)
	sort.Slice(s, func(i, j int) bool { return s[i].Pos < s[j].Pos })
	return &Gradient{stops: s}
}

// DefaultGradient shades sand at the bottom through grass and rock to snow.
func DefaultGradient() *Gradient {
	return NewGradient(
		ColorStop{Pos: 0.0, Color: rgba(colornames.Sandybrown)},
		ColorStop{Pos: 0.3, Color: rgba(colornames.Forestgreen)},
		ColorStop{Pos: 0.7, Color: rgba(colornames.Dimgray)},
		ColorStop{Pos: 1.0, Color: rgba(colornames.Snow)},
	)
}

func rgba(c color.RGBA) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

// At evaluates the gradient at t, clamping outside the first and last stop.
func (g *Gradient) At(t float32) mgl32.Vec4 {
	if len(g.stops) == 0 {
		return mgl32.Vec4{1, 1, 1, 1}
	}
	first, last := g.stops[0], g.stops[len(g.stops)-1]
	if t <= first.Pos {
		return first.Color
	}
	if t >= last.Pos {
		return last.Color
	}
	for i := 1; i < len(g.stops); i++ {
		b := g.stops[i]
		if t > b.Pos {
			continue
		}
		a := g.stops[i-1]
		span := b.Pos - a.Pos
		if span <= 0 {
			return b.Color
		}
		f := (t - a.Pos) / span
		return a.Color.Add(b.Color.Sub(a.Color).Mul(f))
	}
	return last.Color
}
