package world

import (
	"terrain-mc/internal/profiling"
)

// chunkBuilder creates chunks that are not loaded yet and re-meshes those
// that are.
type chunkBuilder interface {
	create(coord ChunkCoord) *Chunk
	refresh(c *Chunk)
}

// ChunkStreamer is the FIFO refresh queue. A coordinate is queued at most
// once until it has been processed.
type ChunkStreamer struct {
	queue   []ChunkCoord
	pending map[ChunkCoord]struct{}

	// Dependencies
	store   *ChunkStore
	builder chunkBuilder
}

// NewChunkStreamer creates a new chunk streamer.
func NewChunkStreamer(store *ChunkStore, builder chunkBuilder) *ChunkStreamer {
	return &ChunkStreamer{
		pending: make(map[ChunkCoord]struct{}),
		store:   store,
		builder: builder,
	}
}

// EnqueueRefresh queues coord for creation or re-meshing. It returns false
// when coord is already pending.
func (cs *ChunkStreamer) EnqueueRefresh(coord ChunkCoord) bool {
	if _, ok := cs.pending[coord]; ok {
		return false
	}
	cs.pending[coord] = struct{}{}
	cs.queue = append(cs.queue, coord)
	return true
}

// ProcessOne handles the oldest queued coordinate. Unloaded coordinates are
// generated and meshed; loaded ones are re-meshed from their current field,
// which is never re-sampled.
func (cs *ChunkStreamer) ProcessOne() (ChunkCoord, bool) {
	if len(cs.queue) == 0 {
		return ChunkCoord{}, false
	}
	defer profiling.Track("world.ProcessOne")()

	coord := cs.queue[0]
	cs.queue[0] = ChunkCoord{}
	cs.queue = cs.queue[1:]
	delete(cs.pending, coord)

	if c, ok := cs.store.Get(coord); ok {
		cs.builder.refresh(c)
	} else {
		cs.store.Add(coord, cs.builder.create(coord))
	}
	return coord, true
}

// IsPending reports whether coord is waiting in the queue.
func (cs *ChunkStreamer) IsPending(coord ChunkCoord) bool {
	_, ok := cs.pending[coord]
	return ok
}

// Pending returns the number of queued coordinates.
func (cs *ChunkStreamer) Pending() int {
	return len(cs.queue)
}
