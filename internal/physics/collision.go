package physics

import (
	"terrain-mc/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// FindGroundLevel returns the height of the first surface straight below
// (x, fromY, z).
func FindGroundLevel(x, z, fromY float32, chunks []*world.Chunk) (float32, bool) {
	res := Pick(Ray{Origin: mgl32.Vec3{x, fromY, z}, Direction: mgl32.Vec3{0, -1, 0}}, fromY+1e4, chunks)
	if !res.Hit {
		return 0, false
	}
	return res.Point.Y(), true
}

// Collides reports whether a sphere of radius r at pos touches the surface,
// casting along the six axis directions.
func Collides(pos mgl32.Vec3, r float32, chunks []*world.Chunk) bool {
	dirs := [6]mgl32.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	for _, d := range dirs {
		if Pick(Ray{Origin: pos, Direction: d}, r, chunks).Hit {
			return true
		}
	}
	return false
}

// ResolveMove returns to when a sphere of radius r can stand there, otherwise
// from. A sphere already touching the surface at from may always move, so it
// can back out.
func ResolveMove(from, to mgl32.Vec3, r float32, chunks []*world.Chunk) mgl32.Vec3 {
	if Collides(to, r, chunks) && !Collides(from, r, chunks) {
		return from
	}
	return to
}
