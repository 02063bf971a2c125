package main

import (
	"testing"

	"terrain-mc/internal/terraform"

	"github.com/go-gl/mathgl/mgl32"
)

func TestParseEdit(t *testing.T) {
	e, ground, err := parseEdit("1,2,3,4,0.5,add")
	if err != nil {
		t.Fatal(err)
	}
	if ground || e.Point != (mgl32.Vec3{1, 2, 3}) || e.Radius != 4 || e.Strength != 0.5 || e.Mode != terraform.Add {
		t.Fatalf("got %+v ground=%v", e, ground)
	}
}

func TestParseEditGroundDefaultMode(t *testing.T) {
	e, ground, err := parseEdit("10, ground, 12, 3, 0.1")
	if err != nil {
		t.Fatal(err)
	}
	if !ground || e.Mode != terraform.Subtract || e.Point.X() != 10 || e.Point.Z() != 12 {
		t.Fatalf("got %+v ground=%v", e, ground)
	}
}

func TestParseEditErrors(t *testing.T) {
	for _, s := range []string{"1,2,3", "1,x,3,4,5", "1,2,3,4,5,dig"} {
		if _, _, err := parseEdit(s); err == nil {
			t.Fatalf("parseEdit(%q): expected error", s)
		}
	}
}
