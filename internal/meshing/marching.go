package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is number of float32 per interleaved vertex (pos.xyz + normal.xyz + color.rgba)
const VertexStride = 10

// Mesh is a flat triangle buffer. Vertices are never shared between
// triangles, so Indices is simply 0..len(Vertices)-1.
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
	Normals  []mgl32.Vec3
	Colors   []mgl32.Vec4
}

// NewMesh allocates an empty mesh with room for n vertices.
func NewMesh(n int) *Mesh {
	return &Mesh{
		Vertices: make([]mgl32.Vec3, 0, n),
		Indices:  make([]uint32, 0, n),
	}
}

// Empty reports whether the mesh has no triangles.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Indices) == 0
}

// TriangleCount returns the number of triangles, both windings included.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Reset truncates all buffers, keeping their capacity.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
	m.Normals = m.Normals[:0]
	m.Colors = nil
}

func (m *Mesh) addVertex(v mgl32.Vec3) {
	m.Indices = append(m.Indices, uint32(len(m.Vertices)))
	m.Vertices = append(m.Vertices, v)
}

// AppendCell polygonizes a single cell into m. The triangles of the cell's
// configuration are emitted once as listed and once more in reverse order, so
// the surface is present with both windings.
func AppendCell(m *Mesh, c *Cell, threshold float32) {
	tri := triangulation[c.CubeIndex(threshold)]
	if tri[0] < 0 {
		return
	}
	base := c.ScaledPosition()

	n := 0
	for n < len(tri) && tri[n] >= 0 {
		n++
	}

	for i := 0; i < n; i++ {
		m.addVertex(cellVertex(c, int(tri[i]), threshold, base))
	}
	for i := n - 1; i >= 0; i-- {
		m.addVertex(cellVertex(c, int(tri[i]), threshold, base))
	}
}

func cellVertex(c *Cell, edgeIndex int, threshold float32, base mgl32.Vec3) mgl32.Vec3 {
	e := edges[edgeIndex]
	p := e.Interpolate(c.Values[e.A], c.Values[e.B], threshold)
	return p.Mul(c.Scale).Add(base)
}

// RecalculateNormals rebuilds Normals from the triangle list. Every vertex
// belongs to exactly one triangle, so it takes that triangle's face normal.
func (m *Mesh) RecalculateNormals() {
	if cap(m.Normals) >= len(m.Vertices) {
		m.Normals = m.Normals[:len(m.Vertices)]
	} else {
		m.Normals = make([]mgl32.Vec3, len(m.Vertices))
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a, b, c := m.Vertices[ia], m.Vertices[ib], m.Vertices[ic]
		n := b.Sub(a).Cross(c.Sub(a))
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		m.Normals[ia] = n
		m.Normals[ib] = n
		m.Normals[ic] = n
	}
}

// Interleave packs the mesh into pos+normal+color float32 vertices, offset by
// origin. Missing colors are written as opaque white.
func (m *Mesh) Interleave(origin mgl32.Vec3, dst []float32) []float32 {
	dst = dst[:0]
	white := mgl32.Vec4{1, 1, 1, 1}
	for i, v := range m.Vertices {
		p := v.Add(origin)
		var n mgl32.Vec3
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		col := white
		if i < len(m.Colors) {
			col = m.Colors[i]
		}
		dst = append(dst,
			p[0], p[1], p[2],
			n[0], n[1], n[2],
			col[0], col[1], col[2], col[3],
		)
	}
	return dst
}
