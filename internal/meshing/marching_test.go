package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAppendCellUniformIsEmpty(t *testing.T) {
	m := NewMesh(0)
	below := Cell{Scale: 1}
	AppendCell(m, &below, 0.5)
	above := Cell{Scale: 1}
	for i := range above.Values {
		above.Values[i] = 1
	}
	AppendCell(m, &above, 0.5)
	if !m.Empty() {
		t.Fatalf("uniform cells: got %d triangles, want 0", m.TriangleCount())
	}
}

func TestAppendCellSingleCornerDoubleSided(t *testing.T) {
	c := Cell{Scale: 2, Position: [3]int{1, 0, 0}}
	c.Values[0] = 1.0 // only corner 0 above the threshold
	m := NewMesh(6)
	AppendCell(m, &c, 0.5)

	// one triangle plus its reverse-wound twin
	if got := m.TriangleCount(); got != 2 {
		t.Fatalf("got %d triangles, want 2", got)
	}
	if len(m.Vertices) != 6 {
		t.Fatalf("got %d vertices, want 6", len(m.Vertices))
	}
	for i, idx := range m.Indices {
		if int(idx) != i {
			t.Fatalf("index %d: got %d, want sequential", i, idx)
		}
	}

	// edges 0, 3 and 8 all leave corner 0, crossed at their midpoints
	base := mgl32.Vec3{2, 0, 0}
	want := []mgl32.Vec3{
		base.Add(mgl32.Vec3{1, 0, 0}),
		base.Add(mgl32.Vec3{0, 1, 0}),
		base.Add(mgl32.Vec3{0, 0, 1}),
	}
	for _, w := range want {
		found := false
		for _, v := range m.Vertices[:3] {
			if v.ApproxEqual(w) {
				found = true
			}
		}
		if !found {
			t.Fatalf("vertex %v missing from %v", w, m.Vertices[:3])
		}
	}
	for i := 0; i < 3; i++ {
		if !m.Vertices[i].ApproxEqual(m.Vertices[5-i]) {
			t.Fatalf("back face vertex %d: got %v, want %v", 5-i, m.Vertices[5-i], m.Vertices[i])
		}
	}
}

func TestRecalculateNormalsOpposeOnBackFace(t *testing.T) {
	c := Cell{Scale: 1}
	c.Values[0] = 1.0
	m := NewMesh(6)
	AppendCell(m, &c, 0.5)
	m.RecalculateNormals()

	if len(m.Normals) != len(m.Vertices) {
		t.Fatalf("got %d normals, want %d", len(m.Normals), len(m.Vertices))
	}
	front, back := m.Normals[0], m.Normals[3]
	if l := front.Len(); l < 0.999 || l > 1.001 {
		t.Fatalf("normal not unit length: %v", front)
	}
	if !front.Add(back).ApproxEqualThreshold(mgl32.Vec3{}, 1e-5) {
		t.Fatalf("front %v and back %v normals should be opposite", front, back)
	}
}

func TestInterleave(t *testing.T) {
	c := Cell{Scale: 1}
	c.Values[0] = 1.0
	m := NewMesh(6)
	AppendCell(m, &c, 0.5)
	m.RecalculateNormals()

	buf := m.Interleave(mgl32.Vec3{10, 0, 0}, nil)
	if len(buf) != len(m.Vertices)*VertexStride {
		t.Fatalf("got %d floats, want %d", len(buf), len(m.Vertices)*VertexStride)
	}
	if buf[0] != m.Vertices[0][0]+10 {
		t.Fatalf("origin not applied: got %f", buf[0])
	}
	if buf[9] != 1 {
		t.Fatalf("default alpha: got %f, want 1", buf[9])
	}
}

func BenchmarkAppendCell(b *testing.B) {
	c := Cell{Scale: 1, Values: [8]float32{0.9, 0.1, 0.7, 0.2, 0.6, 0.3, 0.8, 0.4}}
	m := NewMesh(64)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Reset()
		AppendCell(m, &c, 0.5)
	}
}
