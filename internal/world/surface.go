package world

import (
	"terrain-mc/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface is the presentation container a chunk hands its mesh to.
type Surface interface {
	// Activate binds the container to a chunk placed at origin.
	Activate(coord ChunkCoord, origin mgl32.Vec3)
	// Upload replaces the displayed geometry.
	Upload(mesh *meshing.Mesh)
}

// SurfacePool hands out surfaces for newly created chunks.
type SurfacePool interface {
	Acquire() Surface
}

// MemorySurface keeps the last uploaded mesh in process.
type MemorySurface struct {
	Coord   ChunkCoord
	Origin  mgl32.Vec3
	Active  bool
	Mesh    *meshing.Mesh
	Uploads int
}

func (s *MemorySurface) Activate(coord ChunkCoord, origin mgl32.Vec3) {
	s.Coord = coord
	s.Origin = origin
	s.Active = true
}

func (s *MemorySurface) Upload(mesh *meshing.Mesh) {
	s.Mesh = mesh
	s.Uploads++
}

// MemoryPool is the headless SurfacePool.
type MemoryPool struct {
	surfaces []*MemorySurface
}

func NewMemoryPool() *MemoryPool {
	return &MemoryPool{}
}

func (p *MemoryPool) Acquire() Surface {
	s := &MemorySurface{}
	p.surfaces = append(p.surfaces, s)
	return s
}

// Surfaces returns every surface handed out so far.
func (p *MemoryPool) Surfaces() []*MemorySurface {
	return p.surfaces
}
