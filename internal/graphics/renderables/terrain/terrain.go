package terrain

import (
	"terrain-mc/internal/graphics"
	renderer "terrain-mc/internal/graphics/renderer"
	"terrain-mc/internal/meshing"
	"terrain-mc/internal/profiling"
	"terrain-mc/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const vertexSrc = `#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec4 aColor;
uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;
out vec3 vNormal;
out vec4 vColor;
void main() {
	vNormal = aNormal;
	vColor = aColor;
	gl_Position = proj * view * model * vec4(aPos, 1.0);
}`

const fragmentSrc = `#version 410 core
in vec3 vNormal;
in vec4 vColor;
uniform vec3 lightDir;
out vec4 fragColor;
void main() {
	float diffuse = max(dot(normalize(vNormal), -lightDir), 0.0);
	fragColor = vec4(vColor.rgb * (0.35 + 0.65 * diffuse), vColor.a);
}`

// Terrain draws chunk meshes and hands out their GPU surfaces
type Terrain struct {
	shader   *graphics.Shader
	surfaces []*surface
	scratch  []float32
	lightDir mgl32.Vec3
}

// NewTerrain creates a new terrain renderable
func NewTerrain() *Terrain {
	return &Terrain{
		lightDir: mgl32.Vec3{-0.4, -1, -0.3}.Normalize(),
	}
}

// Init compiles the terrain shader
func (t *Terrain) Init() error {
	var err error
	t.shader, err = graphics.NewShader(vertexSrc, fragmentSrc)
	return err
}

// Acquire implements world.SurfacePool. It must be called with the GL context current.
func (t *Terrain) Acquire() world.Surface {
	s := &surface{owner: t}
	gl.GenVertexArrays(1, &s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)

	stride := int32(meshing.VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 6*4)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	t.surfaces = append(t.surfaces, s)
	return s
}

// Render draws every active surface inside the view frustum
func (t *Terrain) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderTerrain")()
	t.shader.Use()
	t.shader.SetMatrix4("proj", &ctx.Proj[0])
	t.shader.SetMatrix4("view", &ctx.View[0])
	t.shader.SetVector3("lightDir", t.lightDir.X(), t.lightDir.Y(), t.lightDir.Z())

	planes := extractFrustumPlanes(ctx.Proj.Mul4(ctx.View))
	for _, s := range t.surfaces {
		if !s.active || s.count == 0 {
			continue
		}
		if !aabbIntersectsFrustum(s.origin.Add(s.lo), s.origin.Add(s.hi), planes) {
			continue
		}
		model := mgl32.Translate3D(s.origin.X(), s.origin.Y(), s.origin.Z())
		t.shader.SetMatrix4("model", &model[0])
		gl.BindVertexArray(s.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, s.count)
	}
	gl.BindVertexArray(0)
}

// Dispose cleans up OpenGL resources
func (t *Terrain) Dispose() {
	for _, s := range t.surfaces {
		if s.vao != 0 {
			gl.DeleteVertexArrays(1, &s.vao)
		}
		if s.vbo != 0 {
			gl.DeleteBuffers(1, &s.vbo)
		}
	}
	t.surfaces = nil
	if t.shader != nil {
		t.shader.Delete()
	}
}

func (t *Terrain) SetViewport(width, height int) {}

// surface is one chunk's vertex buffer
type surface struct {
	owner    *Terrain
	coord    world.ChunkCoord
	origin   mgl32.Vec3
	active   bool
	vao, vbo uint32
	count    int32
	lo, hi   mgl32.Vec3
}

func (s *surface) Activate(coord world.ChunkCoord, origin mgl32.Vec3) {
	s.coord = coord
	s.origin = origin
	s.active = true
}

func (s *surface) Upload(mesh *meshing.Mesh) {
	defer profiling.Track("renderer.Upload")()
	data := mesh.Interleave(mgl32.Vec3{}, s.owner.scratch)
	s.owner.scratch = data
	s.count = int32(len(mesh.Vertices))
	s.lo, s.hi = bounds(mesh.Vertices)

	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func bounds(vs []mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	if len(vs) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v[i])
			hi[i] = max(hi[i], v[i])
		}
	}
	return lo, hi
}
