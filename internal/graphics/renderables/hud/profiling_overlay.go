package hud

import (
	"fmt"
	"strings"
	"time"

	"terrain-mc/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const frameHistory = 60

// frameStats keeps a rolling window of whole-frame durations
type frameStats struct {
	history []time.Duration
	last    time.Duration
	min     time.Duration
	max     time.Duration
	avg     time.Duration
}

func (s *frameStats) record(d time.Duration) {
	s.last = d
	if len(s.history) >= frameHistory {
		s.history = s.history[1:]
	}
	s.history = append(s.history, d)

	var total time.Duration
	s.min, s.max = d, d
	for _, v := range s.history {
		total += v
		s.min = min(s.min, v)
		s.max = max(s.max, v)
	}
	s.avg = total / time.Duration(len(s.history))
}

// ProfilingSetFrameDuration stores the duration of the last full frame
func (h *HUD) ProfilingSetFrameDuration(d time.Duration) {
	h.frameStats.record(d)
}

// RenderProfilingInfo renders the current profiling information starting at y
func (h *HUD) RenderProfilingInfo(y float32) {
	lines := profilingLines(h.frameStats,
		profiling.SumWithPrefix("world."),
		profiling.SumWithPrefix("renderer."),
		profiling.TopN(8),
	)
	textColor := mgl32.Vec3{1.0, 1.0, 0.6}
	h.fontRenderer.RenderLines(lines, 10, y, 17, 0.55, textColor)
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

func profilingLines(fs frameStats, worldTime, renderTime time.Duration, top string) []string {
	lines := make([]string, 0, 16)
	lines = append(lines,
		fmt.Sprintf("Frame: %.2fms (avg %.2fms, min %.2fms, max %.2fms)", ms(fs.last), ms(fs.avg), ms(fs.min), ms(fs.max)),
		fmt.Sprintf("World: %.2fms | Render: %.2fms", ms(worldTime), ms(renderTime)),
	)

	// Top N tracked lines
	if top != "" {
		for line := range strings.SplitSeq(top, ", ") {
			if line != "" && !strings.Contains(line, ":0.0ms") {
				lines = append(lines, line)
			}
		}
	}
	return lines
}
