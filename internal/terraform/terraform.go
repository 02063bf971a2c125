// Package terraform edits the density field inside a sphere and carries the
// edit across chunk seams.
package terraform

import (
	"log/slog"

	"terrain-mc/internal/meshing"
	"terrain-mc/internal/profiling"
	"terrain-mc/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Mode selects the direction of an edit.
type Mode int

const (
	// Subtract raises density, digging terrain away.
	Subtract Mode = iota
	// Add lowers density. Densities below the threshold are solid, so this grows terrain.
	Add
)

func (m Mode) String() string {
	if m == Add {
		return "add"
	}
	return "subtract"
}

// Edit is a spherical density change.
type Edit struct {
	Point    mgl32.Vec3
	Radius   float32
	Strength float32
	Mode     Mode
}

func (e Edit) delta() float32 {
	if e.Mode == Add {
		return -e.Strength
	}
	return e.Strength
}

// Terrain is the part of the world an Engine needs.
type Terrain interface {
	Chunk(coord world.ChunkCoord) (*world.Chunk, bool)
	LookupByWorldPoint(p mgl32.Vec3) (*world.Chunk, bool)
	EnqueueRefresh(coord world.ChunkCoord) bool
}

// Engine applies edits to a Terrain.
type Engine struct {
	terrain Terrain
	logger  *slog.Logger
}

// New returns an engine editing terrain. A nil logger uses slog.Default.
func New(terrain Terrain, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{terrain: terrain, logger: logger}
}

// ApplyAt applies e starting from the chunk containing e.Point. It reports
// false and changes nothing when no loaded chunk contains the point.
func (en *Engine) ApplyAt(e Edit) ([]world.ChunkCoord, bool) {
	origin, ok := en.terrain.LookupByWorldPoint(e.Point)
	if !ok {
		en.logger.Debug("terraform missed", "point", e.Point)
		return nil, false
	}
	return en.Apply(origin, e), true
}

// Apply edits origin and every loaded chunk the edit reaches across a face,
// each at most once, then queues all of them for re-meshing. It returns the
// edited chunks in visit order.
func (en *Engine) Apply(origin *world.Chunk, e Edit) []world.ChunkCoord {
	defer profiling.Track("terraform.Apply")()
	id := uuid.New()

	visited := make(map[world.ChunkCoord]struct{})
	var order []world.ChunkCoord
	en.apply(origin, e, visited, &order)

	for _, coord := range order {
		en.terrain.EnqueueRefresh(coord)
	}
	en.logger.Debug("terraform applied",
		"edit", id,
		"mode", e.Mode,
		"point", e.Point,
		"radius", e.Radius,
		"chunks", len(order),
	)
	return order
}

func (en *Engine) apply(c *world.Chunk, e Edit, visited map[world.ChunkCoord]struct{}, order *[]world.ChunkCoord) {
	visited[c.Coord] = struct{}{}
	*order = append(*order, c.Coord)

	r2 := e.Radius * e.Radius
	delta := e.delta()
	var neighbors []world.ChunkCoord
	seen := make(map[world.ChunkCoord]struct{})

	c.ForEachCell(func(cell *meshing.Cell) {
		touched := false
		for i := range cell.Values {
			d := c.CornerPosition(cell, i).Sub(e.Point)
			if d.Dot(d) < r2 {
				cell.Values[i] += delta
				touched = true
			}
		}
		if !touched {
			return
		}
		lo, hi := c.OnBoundary(cell)
		for axis := range 3 {
			for _, side := range [2]struct {
				on  bool
				dir int
			}{{lo[axis], -1}, {hi[axis], 1}} {
				if !side.on {
					continue
				}
				n := c.Coord.Neighbor(axis, side.dir)
				if _, ok := seen[n]; !ok {
					seen[n] = struct{}{}
					neighbors = append(neighbors, n)
				}
			}
		}
	})

	for _, n := range neighbors {
		if _, ok := visited[n]; ok {
			continue
		}
		next, ok := en.terrain.Chunk(n)
		if !ok {
			continue
		}
		en.apply(next, e, visited, order)
	}
}
