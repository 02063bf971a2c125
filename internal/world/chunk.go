package world

import (
	"sync"

	"terrain-mc/internal/meshing"
	"terrain-mc/internal/noise"
	"terrain-mc/internal/profiling"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord is the integer position of a chunk in the chunk grid.
type ChunkCoord struct {
	X, Y, Z int
}

// Add returns c offset by o.
func (c ChunkCoord) Add(o ChunkCoord) ChunkCoord {
	return ChunkCoord{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Neighbor returns the face neighbor on axis (0=x, 1=y, 2=z) in direction dir (-1 or +1).
func (c ChunkCoord) Neighbor(axis, dir int) ChunkCoord {
	switch axis {
	case 0:
		c.X += dir
	case 1:
		c.Y += dir
	case 2:
		c.Z += dir
	}
	return c
}

// Params are the field parameters a chunk is sampled and meshed with.
type Params struct {
	Seed             int64
	Frequency        float64
	MaxHeight        float64
	SurfaceThreshold float32
	Gradient         *Gradient
}

// Chunk is a cube of CellCount^3 cells covering GridScale world units per axis.
type Chunk struct {
	Coord ChunkCoord

	gridScale float32
	cellCount int
	cells     []meshing.Cell

	mesh    *meshing.Mesh
	params  Params
	surface Surface
}

// NewChunk allocates a chunk with all densities at zero.
func NewChunk(coord ChunkCoord, gridScale float32, cellCount int) *Chunk {
	c := &Chunk{
		Coord:     coord,
		gridScale: gridScale,
		cellCount: cellCount,
		cells:     make([]meshing.Cell, cellCount*cellCount*cellCount),
	}
	scale := c.CellScale()
	for x := 0; x < cellCount; x++ {
		for y := 0; y < cellCount; y++ {
			for z := 0; z < cellCount; z++ {
				cell := &c.cells[c.index(x, y, z)]
				cell.Position = [3]int{x, y, z}
				cell.Scale = scale
			}
		}
	}
	return c
}

func (c *Chunk) index(x, y, z int) int {
	return x*c.cellCount*c.cellCount + y*c.cellCount + z
}

// Origin returns the world position of the chunk's minimum corner.
func (c *Chunk) Origin() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.Coord.X) * c.gridScale,
		float32(c.Coord.Y) * c.gridScale,
		float32(c.Coord.Z) * c.gridScale,
	}
}

func (c *Chunk) GridScale() float32 { return c.gridScale }
func (c *Chunk) CellCount() int     { return c.cellCount }

// CellScale returns world units per cell edge.
func (c *Chunk) CellScale() float32 {
	return c.gridScale / float32(c.cellCount)
}

// Cell returns the cell at lattice coordinate (x, y, z), or nil when out of range.
func (c *Chunk) Cell(x, y, z int) *meshing.Cell {
	n := c.cellCount
	if x < 0 || x >= n || y < 0 || y >= n || z < 0 || z >= n {
		return nil
	}
	return &c.cells[c.index(x, y, z)]
}

// ForEachCell calls fn for every cell, x-major.
func (c *Chunk) ForEachCell(fn func(cell *meshing.Cell)) {
	for i := range c.cells {
		fn(&c.cells[i])
	}
}

// OnBoundary reports, per axis, whether the cell touches the low and the high
// face of the chunk. A chunk with a single cell per edge touches both.
func (c *Chunk) OnBoundary(cell *meshing.Cell) (lo, hi [3]bool) {
	last := c.cellCount - 1
	for axis, p := range cell.Position {
		lo[axis] = p == 0
		hi[axis] = p == last
	}
	return lo, hi
}

// CornerPosition returns the world position of corner i of cell. It is
// derived from the global lattice index so neighbouring chunks agree on
// shared corners bit for bit.
func (c *Chunk) CornerPosition(cell *meshing.Cell, corner int) mgl32.Vec3 {
	x, y, z := c.cornerWorld(cell, corner)
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

func (c *Chunk) cornerWorld(cell *meshing.Cell, corner int) (float64, float64, float64) {
	off := meshing.CornerLattice(corner)
	step := float64(c.gridScale) / float64(c.cellCount)
	gx := c.Coord.X*c.cellCount + cell.Position[0] + off[0]
	gy := c.Coord.Y*c.cellCount + cell.Position[1] + off[1]
	gz := c.Coord.Z*c.cellCount + cell.Position[2] + off[2]
	return float64(gx) * step, float64(gy) * step, float64(gz) * step
}

// Density evaluates the heightmap field at a world position. It is 1 on the
// noise surface and falls linearly with depth below it.
func Density(sampler noise.Sampler, p Params, x, y, z float64) float32 {
	n := sampler.Sample2D(p.Seed, x/p.Frequency, z/p.Frequency)
	n = (n + 1) / 2
	height := n * p.MaxHeight
	return float32(1 - (height-y)/p.MaxHeight)
}

// Generate samples the density field for every corner of every cell. When
// workers is non-nil the x-slabs are sampled concurrently; Generate returns
// once all of them are written.
func (c *Chunk) Generate(sampler noise.Sampler, p Params, workers pond.Pool) {
	defer profiling.Track("world.Generate")()
	c.params = p

	if workers == nil || c.cellCount == 1 {
		for x := 0; x < c.cellCount; x++ {
			c.sampleSlab(sampler, p, x)
		}
	} else {
		var wg sync.WaitGroup
		for x := 0; x < c.cellCount; x++ {
			wg.Add(1)
			workers.Submit(func() {
				defer wg.Done()
				c.sampleSlab(sampler, p, x)
			})
		}
		wg.Wait()
	}
}

func (c *Chunk) sampleSlab(sampler noise.Sampler, p Params, x int) {
	for y := 0; y < c.cellCount; y++ {
		for z := 0; z < c.cellCount; z++ {
			cell := &c.cells[c.index(x, y, z)]
			for i := range cell.Values {
				wx, wy, wz := c.cornerWorld(cell, i)
				cell.Values[i] = Density(sampler, p, wx, wy, wz)
			}
		}
	}
}

// Polygonize rebuilds the chunk mesh from the current densities. Vertices are
// chunk-local; colors come from gradient at world height / maxHeight.
func (c *Chunk) Polygonize(threshold float32, gradient *Gradient, maxHeight float64) *meshing.Mesh {
	defer profiling.Track("world.Polygonize")()
	if c.mesh == nil {
		c.mesh = meshing.NewMesh(0)
	} else {
		c.mesh.Reset()
	}
	m := c.mesh
	for i := range c.cells {
		meshing.AppendCell(m, &c.cells[i], threshold)
	}

	if gradient != nil && maxHeight != 0 {
		originY := c.Origin()[1]
		m.Colors = make([]mgl32.Vec4, len(m.Vertices))
		for i, v := range m.Vertices {
			m.Colors[i] = gradient.At((v[1] + originY) / float32(maxHeight))
		}
	}
	m.RecalculateNormals()
	return m
}

// HasPosition reports whether p lies inside the chunk bounds, faces included.
func (c *Chunk) HasPosition(p mgl32.Vec3) bool {
	o := c.Origin()
	for i := 0; i < 3; i++ {
		if p[i] < o[i] || p[i] > o[i]+c.gridScale {
			return false
		}
	}
	return true
}

// IsEmpty reports whether no cell crosses SolidLevel.
func (c *Chunk) IsEmpty() bool {
	for i := range c.cells {
		if !c.cells[i].IsUniform(meshing.SolidLevel) {
			return false
		}
	}
	return true
}

// Mesh returns the last built mesh, nil before the first Polygonize.
func (c *Chunk) Mesh() *meshing.Mesh { return c.mesh }

// Params returns the parameters the chunk was last generated or refreshed with.
func (c *Chunk) Params() Params { return c.params }
