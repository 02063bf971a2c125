package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SolidLevel is the density at or above which a corner counts as outside the
// terrain for emptiness checks. It is independent of the render threshold.
const SolidLevel float32 = 1.0

// degenerateEpsilon is the smallest density difference treated as a real
// crossing when interpolating along an edge.
const degenerateEpsilon = 1e-6

// corners lists the unit-cube corner offsets in cell-local space.
var corners = [8]mgl32.Vec3{
	{0, 0, 0},
	{1, 0, 0},
	{1, 1, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 0, 1},
	{1, 1, 1},
	{0, 1, 1},
}

// edges lists the 12 cube edges as corner index pairs.
var edges = [12]Edge{
	{A: 0, B: 1},
	{A: 1, B: 2},
	{A: 2, B: 3},
	{A: 3, B: 0},
	{A: 4, B: 5},
	{A: 6, B: 5},
	{A: 7, B: 6},
	{A: 7, B: 4},
	{A: 0, B: 4},
	{A: 1, B: 5},
	{A: 6, B: 2},
	{A: 3, B: 7},
}

// CornerOffset returns the unit-cube offset of corner i.
func CornerOffset(i int) mgl32.Vec3 {
	return corners[i]
}

// CornerLattice returns the integer lattice offset of corner i.
func CornerLattice(i int) [3]int {
	c := corners[i]
	return [3]int{int(c[0]), int(c[1]), int(c[2])}
}

// EdgeAt returns edge e of the cube.
func EdgeAt(e int) Edge {
	return edges[e]
}

// Edge is a cube edge between two corners.
type Edge struct {
	A, B int
}

// Midpoint returns the center of the edge in unit-cube space.
func (e Edge) Midpoint() mgl32.Vec3 {
	return corners[e.A].Add(corners[e.B]).Mul(0.5)
}

// Interpolate returns the point on the edge where the field crosses threshold,
// given the density v1 at corner A and v2 at corner B. Equal densities have no
// crossing point; the midpoint is returned instead.
func (e Edge) Interpolate(v1, v2, threshold float32) mgl32.Vec3 {
	a, b := corners[e.A], corners[e.B]
	d := v2 - v1
	if d < degenerateEpsilon && d > -degenerateEpsilon {
		return a.Add(b).Mul(0.5)
	}
	return a.Add(b.Sub(a).Mul((threshold - v1) / d))
}

// Cell is one unit cube of the lattice with a density value per corner.
type Cell struct {
	Values   [8]float32
	Position [3]int
	Scale    float32
}

// ScaledPosition returns the cell origin in chunk-local space.
func (c *Cell) ScaledPosition() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.Position[0]) * c.Scale,
		float32(c.Position[1]) * c.Scale,
		float32(c.Position[2]) * c.Scale,
	}
}

// ValuePosition returns the chunk-local position of corner i.
func (c *Cell) ValuePosition(i int) mgl32.Vec3 {
	return corners[i].Mul(c.Scale).Add(c.ScaledPosition())
}

// CubeIndex returns the 8-bit configuration of the cell: bit i is set when
// corner i is strictly below threshold.
func (c *Cell) CubeIndex(threshold float32) int {
	idx := 0
	for i, v := range c.Values {
		if v < threshold {
			idx |= 1 << i
		}
	}
	return idx
}

// IsEmpty reports whether no corner is below SolidLevel.
func (c *Cell) IsEmpty() bool {
	for _, v := range c.Values {
		if v < SolidLevel {
			return false
		}
	}
	return true
}

// IsUniform reports whether all corners are on the same side of level.
func (c *Cell) IsUniform(level float32) bool {
	idx := c.CubeIndex(level)
	return idx == 0 || idx == 0xFF
}
