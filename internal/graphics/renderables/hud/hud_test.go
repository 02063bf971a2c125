package hud

import (
	"strings"
	"testing"
	"time"

	"terrain-mc/internal/world"
)

func TestFrameStatsRollingWindow(t *testing.T) {
	var fs frameStats
	fs.record(10 * time.Millisecond)
	fs.record(30 * time.Millisecond)
	if fs.avg != 20*time.Millisecond || fs.min != 10*time.Millisecond || fs.max != 30*time.Millisecond {
		t.Fatalf("got avg %v min %v max %v", fs.avg, fs.min, fs.max)
	}

	for i := 0; i < frameHistory; i++ {
		fs.record(5 * time.Millisecond)
	}
	if len(fs.history) != frameHistory {
		t.Fatalf("history length %d, want %d", len(fs.history), frameHistory)
	}
	if fs.max != 5*time.Millisecond {
		t.Fatalf("old frames should have left the window, max %v", fs.max)
	}
}

func TestStatusLines(t *testing.T) {
	st := world.Stats{Chunks: 8, Empty: 2, Pending: 1, Triangles: 1234}
	lines := statusLines(st, 0.5, 60, 2.5, "add")
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"FPS: 60", "Chunks: 8 (2 empty, 1 queued)", "Triangles: 1234", "Threshold: 0.50", "Brush: 2.5 add"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in\n%s", want, joined)
		}
	}
	if got := statusLines(st, 0.5, 60, 0, ""); len(got) != 4 {
		t.Fatalf("no brush line expected, got %v", got)
	}
}

func TestProfilingLinesSkipsIdle(t *testing.T) {
	var fs frameStats
	fs.record(16 * time.Millisecond)
	lines := profilingLines(fs, 2*time.Millisecond, 3*time.Millisecond, "world.Tick:2.0ms(1), renderer.Render:0.0ms(1)")
	if len(lines) != 3 {
		t.Fatalf("got %v", lines)
	}
	if lines[2] != "world.Tick:2.0ms(1)" {
		t.Fatalf("got %q", lines[2])
	}
}
