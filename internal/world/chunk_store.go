package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ChunkStore owns the loaded chunks, at most one per coordinate. It is used
// from a single goroutine and does no locking.
type ChunkStore struct {
	chunks map[ChunkCoord]*Chunk
	order  []ChunkCoord
}

// NewChunkStore creates an empty chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

func (cs *ChunkStore) Get(coord ChunkCoord) (*Chunk, bool) {
	c, ok := cs.chunks[coord]
	return c, ok
}

// Add installs chunk under coord. An existing chunk at coord is kept.
func (cs *ChunkStore) Add(coord ChunkCoord, chunk *Chunk) bool {
	if _, ok := cs.chunks[coord]; ok {
		return false
	}
	cs.chunks[coord] = chunk
	cs.order = append(cs.order, coord)
	return true
}

func (cs *ChunkStore) Len() int {
	return len(cs.chunks)
}

// All returns the loaded chunks in load order.
func (cs *ChunkStore) All() []*Chunk {
	out := make([]*Chunk, 0, len(cs.order))
	for _, coord := range cs.order {
		out = append(out, cs.chunks[coord])
	}
	return out
}

// ForEachCoordinate visits every coordinate in [0,size) per axis, x outermost
// then y then z.
func ForEachCoordinate(size [3]int, fn func(coord ChunkCoord)) {
	for x := 0; x < size[0]; x++ {
		for y := 0; y < size[1]; y++ {
			for z := 0; z < size[2]; z++ {
				fn(ChunkCoord{X: x, Y: y, Z: z})
			}
		}
	}
}

// LookupByWorldPoint scans the configured grid for the first loaded chunk
// whose bounds contain p. Points on a shared face resolve to the chunk
// visited first.
func (cs *ChunkStore) LookupByWorldPoint(size [3]int, p mgl32.Vec3) (*Chunk, bool) {
	for x := 0; x < size[0]; x++ {
		for y := 0; y < size[1]; y++ {
			for z := 0; z < size[2]; z++ {
				c, ok := cs.chunks[ChunkCoord{X: x, Y: y, Z: z}]
				if ok && c.HasPosition(p) {
					return c, true
				}
			}
		}
	}
	return nil, false
}
