package brush

import (
	"math"

	"terrain-mc/internal/graphics"
	renderer "terrain-mc/internal/graphics/renderer"
	"terrain-mc/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const segments = 48

const vertexSrc = `#version 410 core
layout(location = 0) in vec3 aPos;
uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;
void main() {
	gl_Position = proj * view * model * vec4(aPos, 1.0);
}`

const fragmentSrc = `#version 410 core
uniform vec3 color;
out vec4 fragColor;
void main() {
	fragColor = vec4(color, 1.0);
}`

// Brush draws the terraform tool as three axis-aligned rings
type Brush struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
	count  int32

	point   mgl32.Vec3
	radius  float32
	add     bool
	visible bool
}

// NewBrush creates a new brush renderable
func NewBrush() *Brush {
	return &Brush{}
}

// Init initializes the ring geometry
func (b *Brush) Init() error {
	var err error
	b.shader, err = graphics.NewShader(vertexSrc, fragmentSrc)
	if err != nil {
		return err
	}

	vertices := ringVertices()
	b.count = int32(len(vertices) / 3)

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return nil
}

// ringVertices returns unit circles in the XY, XZ and YZ planes as line pairs
func ringVertices() []float32 {
	out := make([]float32, 0, 3*segments*2*3)
	for axis := 0; axis < 3; axis++ {
		for i := 0; i < segments; i++ {
			for _, k := range [2]int{i, i + 1} {
				a := 2 * math.Pi * float64(k) / segments
				u, v := float32(math.Cos(a)), float32(math.Sin(a))
				var p [3]float32
				p[(axis+1)%3] = u
				p[(axis+2)%3] = v
				out = append(out, p[0], p[1], p[2])
			}
		}
	}
	return out
}

// Set places the brush for the next frame
func (b *Brush) Set(point mgl32.Vec3, radius float32, add, visible bool) {
	b.point = point
	b.radius = radius
	b.add = add
	b.visible = visible
}

// Render draws the rings when the brush is visible
func (b *Brush) Render(ctx renderer.RenderContext) {
	if !b.visible || b.radius <= 0 {
		return
	}
	defer profiling.Track("renderer.renderBrush")()
	b.shader.Use()
	b.shader.SetMatrix4("proj", &ctx.Proj[0])
	b.shader.SetMatrix4("view", &ctx.View[0])
	model := mgl32.Translate3D(b.point.X(), b.point.Y(), b.point.Z()).
		Mul4(mgl32.Scale3D(b.radius, b.radius, b.radius))
	b.shader.SetMatrix4("model", &model[0])
	if b.add {
		b.shader.SetVector3("color", 0.2, 0.9, 0.3)
	} else {
		b.shader.SetVector3("color", 0.9, 0.25, 0.2)
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.LINES, 0, b.count)
	gl.BindVertexArray(0)
}

// Dispose cleans up OpenGL resources
func (b *Brush) Dispose() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.shader != nil {
		b.shader.Delete()
	}
}

func (b *Brush) SetViewport(width, height int) {}
