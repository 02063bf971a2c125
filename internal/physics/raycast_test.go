package physics_test

import (
	"io"
	"log/slog"
	"testing"

	"terrain-mc/internal/config"
	"terrain-mc/internal/physics"
	"terrain-mc/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// peakSampler puts the noise surface at MaxHeight everywhere.
type peakSampler struct{}

func (peakSampler) Sample2D(int64, float64, float64) float64          { return 1 }
func (peakSampler) Sample3D(int64, float64, float64, float64) float64 { return 1 }

// flatWorld loads one 16-unit chunk whose 0.5 iso surface is the plane y=8.
func flatWorld(t testing.TB) *world.World {
	cfg := config.DefaultConfig()
	cfg.ChunkGridSize = [3]int{1, 1, 1}
	cfg.CellCount = 4
	cfg.GridScale = 16
	cfg.MaxHeight = 16
	cfg.SurfaceThreshold = 0.5
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	w := world.New(cfg, peakSampler{}, world.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	w.RequestAll()
	w.Drain(0)
	return w
}

func TestPick(t *testing.T) {
	w := flatWorld(t)
	start := mgl32.Vec3{5.3, 20, 6.1}
	down := mgl32.Vec3{0, -1, 0}

	// Test 1: straight down onto the plane
	res := physics.Pick(physics.Ray{Origin: start, Direction: down}, 100, w.Chunks())
	if !res.Hit {
		t.Fatalf("Expected hit, got miss")
	}
	if res.Distance < 11.99 || res.Distance > 12.01 {
		t.Errorf("Expected distance 12, got %f", res.Distance)
	}
	if !res.Point.ApproxEqualThreshold(mgl32.Vec3{5.3, 8, 6.1}, 1e-3) {
		t.Errorf("Expected hit at y=8, got %v", res.Point)
	}
	if res.Chunk != (world.ChunkCoord{}) {
		t.Errorf("Expected chunk {0 0 0}, got %v", res.Chunk)
	}

	// Test 2: max distance too short
	short := physics.Pick(physics.Ray{Origin: start, Direction: down}, 10, w.Chunks())
	if short.Hit {
		t.Errorf("Expected miss due to maxDist, got hit at %v", short.Point)
	}
	if !short.Point.ApproxEqual(mgl32.Vec3{5.3, 10, 6.1}) {
		t.Errorf("Expected fallback point at max distance, got %v", short.Point)
	}

	// Test 3: wrong direction
	up := physics.Pick(physics.Ray{Origin: start, Direction: mgl32.Vec3{0, 1, 0}}, 100, w.Chunks())
	if up.Hit {
		t.Errorf("Expected miss, got hit")
	}

	// Test 4: from below, the reverse winding is hit too
	below := physics.Pick(physics.Ray{Origin: mgl32.Vec3{5.3, 2, 6.1}, Direction: mgl32.Vec3{0, 3, 0}}, 100, w.Chunks())
	if !below.Hit || below.Distance < 5.99 || below.Distance > 6.01 {
		t.Errorf("Expected hit from below at distance 6, got %+v", below)
	}
}

func TestPickNoChunks(t *testing.T) {
	res := physics.Pick(physics.Ray{Origin: mgl32.Vec3{}, Direction: mgl32.Vec3{0, 0, 2}}, 5, nil)
	if res.Hit || !res.Point.ApproxEqual(mgl32.Vec3{0, 0, 5}) {
		t.Fatalf("got %+v, want miss at (0,0,5)", res)
	}
}

func TestFindGroundLevel(t *testing.T) {
	w := flatWorld(t)
	y, ok := physics.FindGroundLevel(3.7, 9.2, 30, w.Chunks())
	if !ok || y < 7.99 || y > 8.01 {
		t.Fatalf("got %f (ok=%v), want 8", y, ok)
	}
	if _, ok := physics.FindGroundLevel(40, 40, 30, w.Chunks()); ok {
		t.Fatalf("point outside every chunk should have no ground")
	}
}

func TestCollides(t *testing.T) {
	w := flatWorld(t)
	if !physics.Collides(mgl32.Vec3{6.2, 8.5, 6.9}, 1, w.Chunks()) {
		t.Fatalf("sphere touching the surface should collide")
	}
	if physics.Collides(mgl32.Vec3{6.2, 12, 6.9}, 1, w.Chunks()) {
		t.Fatalf("sphere above the surface should not collide")
	}
}

func TestResolveMove(t *testing.T) {
	w := flatWorld(t)
	from := mgl32.Vec3{6.2, 12, 6.9}
	if got := physics.ResolveMove(from, mgl32.Vec3{6.2, 8.5, 6.9}, 1, w.Chunks()); got != from {
		t.Fatalf("step into the surface: got %v, want %v", got, from)
	}
	to := mgl32.Vec3{7, 12, 6.9}
	if got := physics.ResolveMove(from, to, 1, w.Chunks()); got != to {
		t.Fatalf("free step: got %v, want %v", got, to)
	}
	stuck := mgl32.Vec3{6.2, 8.5, 6.9}
	if got := physics.ResolveMove(stuck, from, 1, w.Chunks()); got != from {
		t.Fatalf("backing out of the surface: got %v, want %v", got, from)
	}
}

func BenchmarkPick(b *testing.B) {
	w := flatWorld(b)
	ray := physics.Ray{Origin: mgl32.Vec3{5.3, 20, 6.1}, Direction: mgl32.Vec3{0.1, -1, 0.05}}
	chunks := w.Chunks()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = physics.Pick(ray, 100, chunks)
	}
}
