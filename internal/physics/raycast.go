package physics

import (
	"terrain-mc/internal/profiling"
	"terrain-mc/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const triangleEpsilon = 1e-7

// Ray is a half-line. Direction need not be normalized.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// PickResult stores the result of a pick. On a miss Point is the ray point at
// the maximum distance.
type PickResult struct {
	Point    mgl32.Vec3
	Distance float32
	Hit      bool
	Chunk    world.ChunkCoord
}

// Pick returns the nearest intersection of ray with the chunk meshes within
// maxDist. Both windings are tested.
func Pick(ray Ray, maxDist float32, chunks []*world.Chunk) PickResult {
	defer profiling.Track("physics.Pick")()
	dir := ray.Direction
	if dir.Len() == 0 {
		return PickResult{Point: ray.Origin}
	}
	dir = dir.Normalize()

	result := PickResult{Distance: maxDist, Point: ray.Origin.Add(dir.Mul(maxDist))}
	for _, c := range chunks {
		m := c.Mesh()
		if m.Empty() {
			continue
		}
		origin := c.Origin()
		hi := origin.Add(mgl32.Vec3{c.GridScale(), c.GridScale(), c.GridScale()})
		if near, ok := rayBox(ray.Origin, dir, origin, hi); !ok || near > result.Distance {
			continue
		}
		// mesh vertices are chunk-local
		local := ray.Origin.Sub(origin)
		for i := 0; i+2 < len(m.Indices); i += 3 {
			a := m.Vertices[m.Indices[i]]
			b := m.Vertices[m.Indices[i+1]]
			cv := m.Vertices[m.Indices[i+2]]
			t, ok := intersectTriangle(local, dir, a, b, cv)
			if !ok || t > result.Distance {
				continue
			}
			result.Distance = t
			result.Hit = true
			result.Chunk = c.Coord
		}
	}
	if result.Hit {
		result.Point = ray.Origin.Add(dir.Mul(result.Distance))
	}
	return result
}

// intersectTriangle is the Möller-Trumbore test without back-face culling.
func intersectTriangle(orig, dir, a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if det > -triangleEpsilon && det < triangleEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := orig.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// rayBox returns the entry distance of the ray into the box [lo, hi].
func rayBox(orig, dir, lo, hi mgl32.Vec3) (float32, bool) {
	tmin, tmax := float32(0), float32(3.4e38)
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if orig[i] < lo[i] || orig[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t0 := (lo[i] - orig[i]) * inv
		t1 := (hi[i] - orig[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = max(tmin, t0)
		tmax = min(tmax, t1)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
