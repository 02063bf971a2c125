// Package world owns the chunked density field: chunk sampling and meshing,
// the chunk map and the refresh queue that feeds the presentation layer.
package world

import (
	"log/slog"

	"terrain-mc/internal/config"
	"terrain-mc/internal/noise"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// World ties the chunk store and refresh queue to the configured field.
// All methods must be called from the same goroutine.
type World struct {
	cfg     *config.Config
	sampler noise.Sampler
	params  Params

	store    *ChunkStore
	streamer *ChunkStreamer

	pool    SurfacePool
	workers pond.Pool
	logger  *slog.Logger

	gradient    *Gradient
	gradientSet bool

	generated int
	refreshed int
}

// Option configures a World.
type Option func(*World)

// WithSurfacePool sets where chunk meshes are uploaded. Defaults to a MemoryPool.
func WithSurfacePool(p SurfacePool) Option {
	return func(w *World) { w.pool = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithWorkers samples chunk fields on the given pool.
func WithWorkers(p pond.Pool) Option {
	return func(w *World) { w.workers = p }
}

// WithGradient overrides the vertex color gradient. Nil disables coloring.
func WithGradient(g *Gradient) Option {
	return func(w *World) {
		w.gradient = g
		w.gradientSet = true
	}
}

// New creates an empty world. cfg must have passed Validate.
func New(cfg *config.Config, sampler noise.Sampler, opts ...Option) *World {
	w := &World{
		cfg:     cfg,
		sampler: sampler,
		store:   NewChunkStore(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.pool == nil {
		w.pool = NewMemoryPool()
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	if !w.gradientSet && cfg.Gradient {
		w.gradient = DefaultGradient()
	}
	w.params = Params{
		Seed:             cfg.Seed,
		Frequency:        cfg.Frequency,
		MaxHeight:        cfg.MaxHeight,
		SurfaceThreshold: float32(cfg.SurfaceThreshold),
		Gradient:         w.gradient,
	}
	w.streamer = NewChunkStreamer(w.store, w)
	return w
}

func (w *World) create(coord ChunkCoord) *Chunk {
	c := NewChunk(coord, float32(w.cfg.GridScale), w.cfg.CellCount)
	c.surface = w.pool.Acquire()
	c.surface.Activate(coord, c.Origin())
	c.Generate(w.sampler, w.params, w.workers)
	mesh := c.Polygonize(w.params.SurfaceThreshold, w.params.Gradient, w.params.MaxHeight)
	c.surface.Upload(mesh)
	w.generated++
	w.logger.Debug("chunk generated", "coord", coord, "triangles", mesh.TriangleCount())
	return c
}

func (w *World) refresh(c *Chunk) {
	// Only the meshing parameters are re-applied; densities keep any edits.
	c.params.SurfaceThreshold = w.params.SurfaceThreshold
	c.params.Gradient = w.params.Gradient
	mesh := c.Polygonize(c.params.SurfaceThreshold, c.params.Gradient, c.params.MaxHeight)
	if c.surface != nil {
		c.surface.Upload(mesh)
	}
	w.refreshed++
	w.logger.Debug("chunk refreshed", "coord", c.Coord, "triangles", mesh.TriangleCount())
}

// RequestAll queues every coordinate of the configured grid. Loaded chunks
// are only re-meshed.
func (w *World) RequestAll() int {
	n := 0
	ForEachCoordinate(w.cfg.ChunkGridSize, func(coord ChunkCoord) {
		if w.streamer.EnqueueRefresh(coord) {
			n++
		}
	})
	return n
}

// Tick processes up to ChunksPerTick queued coordinates and returns how many
// were handled.
func (w *World) Tick() int {
	budget := max(w.cfg.ChunksPerTick, 1)
	done := 0
	for done < budget {
		if _, ok := w.streamer.ProcessOne(); !ok {
			break
		}
		done++
	}
	return done
}

// Drain ticks until the queue is empty or maxTicks ticks have run. A
// non-positive maxTicks means no limit. It returns the number of ticks run.
func (w *World) Drain(maxTicks int) int {
	ticks := 0
	for w.streamer.Pending() > 0 {
		if maxTicks > 0 && ticks >= maxTicks {
			break
		}
		w.Tick()
		ticks++
	}
	return ticks
}

// SetSurfaceThreshold changes the iso level and queues every chunk for re-meshing.
func (w *World) SetSurfaceThreshold(v float32) {
	w.params.SurfaceThreshold = v
	w.logger.Info("surface threshold changed", "threshold", v)
	w.RequestAll()
}

func (w *World) SurfaceThreshold() float32 { return w.params.SurfaceThreshold }

// Chunk returns the loaded chunk at coord.
func (w *World) Chunk(coord ChunkCoord) (*Chunk, bool) {
	return w.store.Get(coord)
}

// LookupByWorldPoint returns the loaded chunk containing p.
func (w *World) LookupByWorldPoint(p mgl32.Vec3) (*Chunk, bool) {
	return w.store.LookupByWorldPoint(w.cfg.ChunkGridSize, p)
}

// EnqueueRefresh queues coord; false when it is already pending.
func (w *World) EnqueueRefresh(coord ChunkCoord) bool {
	return w.streamer.EnqueueRefresh(coord)
}

// IsPending reports whether coord is queued.
func (w *World) IsPending(coord ChunkCoord) bool {
	return w.streamer.IsPending(coord)
}

// Pending returns the number of queued coordinates.
func (w *World) Pending() int {
	return w.streamer.Pending()
}

// Chunks returns the loaded chunks in load order.
func (w *World) Chunks() []*Chunk {
	return w.store.All()
}

func (w *World) Params() Params { return w.params }

// Stats is a snapshot of world counters.
type Stats struct {
	Chunks    int
	Empty     int
	Pending   int
	Generated int
	Refreshed int
	Triangles int
}

// Stats summarizes the loaded chunks.
func (w *World) Stats() Stats {
	s := Stats{
		Chunks:    w.store.Len(),
		Pending:   w.streamer.Pending(),
		Generated: w.generated,
		Refreshed: w.refreshed,
	}
	for _, c := range w.store.All() {
		if c.IsEmpty() {
			s.Empty++
		}
		s.Triangles += c.Mesh().TriangleCount()
	}
	return s
}
