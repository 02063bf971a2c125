package terraform

import (
	"testing"

	"terrain-mc/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBrushScrollClamps(t *testing.T) {
	b := NewBrush(config.DefaultConfig())
	b.Scroll(-3)
	if b.Scale != 0 {
		t.Fatalf("got scale %f, want 0", b.Scale)
	}
	b.Scroll(80)
	if b.Scale != 50 {
		t.Fatalf("got scale %f, want 50", b.Scale)
	}
	if b.Radius() != 25 {
		t.Fatalf("got radius %f, want 25", b.Radius())
	}
}

func TestBrushReadyRateLimits(t *testing.T) {
	b := NewBrush(config.DefaultConfig())
	b.Tick = 0.5
	if !b.Ready(1.0) {
		t.Fatalf("first edit should fire")
	}
	if b.Ready(1.2) || b.Ready(1.5) {
		t.Fatalf("edit fired before the tick elapsed")
	}
	if !b.Ready(1.6) {
		t.Fatalf("edit should fire after the tick")
	}
}

func TestBrushEditMode(t *testing.T) {
	b := NewBrush(config.DefaultConfig())
	b.Scroll(4)
	e := b.Edit(mgl32.Vec3{1, 2, 3}, true)
	if e.Mode != Add || e.Radius != 2 || e.Strength != b.Strength {
		t.Fatalf("shift edit: got %+v", e)
	}
	if e := b.Edit(mgl32.Vec3{}, false); e.Mode != Subtract {
		t.Fatalf("plain edit: got mode %v, want subtract", e.Mode)
	}
}

func TestBrushVisible(t *testing.T) {
	b := NewBrush(config.DefaultConfig())
	b.Scroll(4)
	origin := mgl32.Vec3{}
	if b.Visible(mgl32.Vec3{2.5, 0, 0}, origin) {
		t.Fatalf("brush reaching the camera should be hidden")
	}
	if !b.Visible(mgl32.Vec3{10, 0, 0}, origin) {
		t.Fatalf("distant brush should be visible")
	}
}
