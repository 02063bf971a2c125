package world

import (
	"io"
	"log/slog"
	"testing"

	"terrain-mc/internal/config"
	"terrain-mc/internal/noise"

	"github.com/go-gl/mathgl/mgl32"
)

func testWorld(t testing.TB, opts ...Option) (*World, *MemoryPool) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ChunkGridSize = [3]int{2, 2, 2}
	cfg.CellCount = 4
	cfg.GridScale = 8
	cfg.MaxHeight = 16
	cfg.Frequency = 16
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	pool := NewMemoryPool()
	opts = append([]Option{
		WithSurfacePool(pool),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return New(cfg, noise.NewValue(), opts...), pool
}

func TestTickProcessesOneChunk(t *testing.T) {
	w, pool := testWorld(t)
	if got := w.RequestAll(); got != 8 {
		t.Fatalf("RequestAll queued %d, want 8", got)
	}
	if got := w.Tick(); got != 1 {
		t.Fatalf("Tick processed %d, want 1", got)
	}
	if got := w.Stats().Chunks; got != 1 {
		t.Fatalf("got %d chunks after one tick, want 1", got)
	}
	s := pool.Surfaces()
	if len(s) != 1 || !s[0].Active || s[0].Uploads != 1 {
		t.Fatalf("surface not acquired, activated and uploaded: %+v", s)
	}
	if ticks := w.Drain(0); ticks != 7 {
		t.Fatalf("Drain ran %d ticks, want 7", ticks)
	}
	if st := w.Stats(); st.Chunks != 8 || st.Pending != 0 || st.Generated != 8 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestDrainRespectsLimit(t *testing.T) {
	w, _ := testWorld(t)
	w.RequestAll()
	if ticks := w.Drain(3); ticks != 3 {
		t.Fatalf("Drain ran %d ticks, want 3", ticks)
	}
	if got := w.Pending(); got != 5 {
		t.Fatalf("got %d pending, want 5", got)
	}
	if got := w.Stats().Pending; got != w.Pending() {
		t.Fatalf("Stats reports %d pending, Pending %d", got, w.Pending())
	}
}

func TestRefreshKeepsEditedDensities(t *testing.T) {
	w, pool := testWorld(t)
	w.RequestAll()
	w.Drain(0)

	coord := ChunkCoord{X: 1, Y: 0, Z: 1}
	c, ok := w.Chunk(coord)
	if !ok {
		t.Fatalf("chunk %v not loaded", coord)
	}
	c.Cell(2, 2, 2).Values[3] = 42
	if !w.EnqueueRefresh(coord) {
		t.Fatalf("enqueue should succeed")
	}
	w.Tick()
	if got := c.Cell(2, 2, 2).Values[3]; got != 42 {
		t.Fatalf("refresh re-sampled the field: got %f, want 42", got)
	}
	st := w.Stats()
	if st.Generated != 8 || st.Refreshed != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if got := len(pool.Surfaces()); got != 8 {
		t.Fatalf("refresh acquired a new surface: %d surfaces", got)
	}
}

func TestSetSurfaceThresholdRequeues(t *testing.T) {
	w, _ := testWorld(t)
	w.RequestAll()
	w.Drain(0)
	w.SetSurfaceThreshold(0.7)
	if got := w.Stats().Pending; got != 8 {
		t.Fatalf("got %d pending, want 8", got)
	}
	w.Drain(0)
	for _, c := range w.Chunks() {
		if got := c.Params().SurfaceThreshold; got != 0.7 {
			t.Fatalf("chunk %v threshold %f, want 0.7", c.Coord, got)
		}
	}
}

func TestLookupByWorldPoint(t *testing.T) {
	w, _ := testWorld(t)
	if _, ok := w.LookupByWorldPoint(mgl32.Vec3{1, 1, 1}); ok {
		t.Fatalf("lookup before load should miss")
	}
	w.RequestAll()
	w.Drain(0)

	c, ok := w.LookupByWorldPoint(mgl32.Vec3{12, 3, 9})
	if !ok || c.Coord != (ChunkCoord{X: 1, Y: 0, Z: 1}) {
		t.Fatalf("got %v (ok=%v), want chunk {1 0 1}", c, ok)
	}
	if _, ok := w.LookupByWorldPoint(mgl32.Vec3{100, 0, 0}); ok {
		t.Fatalf("point outside the grid should miss")
	}
}

func TestWithGradientNil(t *testing.T) {
	w, _ := testWorld(t, WithGradient(nil))
	w.RequestAll()
	w.Tick()
	if m := w.Chunks()[0].Mesh(); m.Colors != nil {
		t.Fatalf("colors emitted without a gradient")
	}
}

func BenchmarkRequestAllDrain(b *testing.B) {
	for i := 0; i < b.N; i++ {
		w, _ := testWorld(b)
		w.RequestAll()
		w.Drain(0)
	}
}
