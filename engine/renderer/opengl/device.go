// Package opengl implements renderer.Device on an OpenGL 3.3 core context.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer"
)

// Device issues renderer commands to the current OpenGL context. It must be
// created and used on the thread that owns the context.
type Device struct {
	projectionLocations map[renderer.Program]int32
}

// New loads the GL function pointers for the current context.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	core.LogInfo("OpenGL %s, GLSL %s, %s",
		gl.GoStr(gl.GetString(gl.VERSION)),
		gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Device{
		projectionLocations: make(map[renderer.Program]int32),
	}, nil
}

func (d *Device) CompileProgram(source renderer.ShaderSource) (renderer.Program, error) {
	vertex, err := compileShader(source.Vertex, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("%s vertex stage: %w", source.Name, err)
	}
	defer gl.DeleteShader(vertex)

	fragment, err := compileShader(source.Fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("%s fragment stage: %w", source.Name, err)
	}
	defer gl.DeleteShader(fragment)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%s: %w: %s", source.Name, core.ErrShaderLink, strings.TrimRight(log, "\x00"))
	}

	p := renderer.Program(program)
	d.projectionLocations[p] = gl.GetUniformLocation(program, gl.Str(renderer.ProjectionUniform+"\x00"))
	if d.projectionLocations[p] < 0 {
		core.LogWarn("shader %s has no %s uniform", source.Name, renderer.ProjectionUniform)
	}
	return p, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", core.ErrShaderCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func (d *Device) UseProgram(program renderer.Program) {
	gl.UseProgram(uint32(program))
}

func (d *Device) DeleteProgram(program renderer.Program) {
	if program == 0 {
		return
	}
	delete(d.projectionLocations, program)
	gl.DeleteProgram(uint32(program))
}

func (d *Device) SetProjection(program renderer.Program, projection mgl32.Mat4) {
	loc, ok := d.projectionLocations[program]
	if !ok || loc < 0 {
		return
	}
	gl.UniformMatrix4fv(loc, 1, false, &projection[0])
}

// CreateBuffers allocates a VAO with a dynamic VBO and EBO sized for the full
// batch capacity and records the vertex layout.
func (d *Device) CreateBuffers(vertexCapacity, indexCapacity int) (renderer.Buffers, error) {
	var b renderer.Buffers
	gl.GenVertexArrays(1, &b.VAO)
	gl.BindVertexArray(b.VAO)

	gl.GenBuffers(1, &b.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, vertexCapacity*renderer.VertexStride, nil, gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &b.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexCapacity*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, renderer.VertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, renderer.VertexStride, renderer.ColorOffset)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		d.DeleteBuffers(b)
		return renderer.Buffers{}, fmt.Errorf("buffer allocation failed with GL error 0x%x", code)
	}
	return b, nil
}

func (d *Device) UploadVertices(buffers renderer.Buffers, vertices []renderer.Vertex) {
	if len(vertices) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, buffers.VBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*renderer.VertexStride, unsafe.Pointer(&vertices[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *Device) UploadIndices(buffers renderer.Buffers, indices []uint32) {
	if len(indices) == 0 {
		return
	}
	// the element buffer binding is VAO state
	gl.BindVertexArray(buffers.VAO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buffers.EBO)
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, gl.Ptr(indices))
	gl.BindVertexArray(0)
}

func (d *Device) DeleteBuffers(buffers renderer.Buffers) {
	if buffers.EBO != 0 {
		gl.DeleteBuffers(1, &buffers.EBO)
	}
	if buffers.VBO != 0 {
		gl.DeleteBuffers(1, &buffers.VBO)
	}
	if buffers.VAO != 0 {
		gl.DeleteVertexArrays(1, &buffers.VAO)
	}
}

func (d *Device) DrawElements(buffers renderer.Buffers, mode renderer.Primitive, count int) {
	gl.BindVertexArray(buffers.VAO)
	gl.DrawElements(glMode(mode), int32(count), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (d *Device) DrawArrays(buffers renderer.Buffers, mode renderer.Primitive, first, count int) {
	gl.BindVertexArray(buffers.VAO)
	gl.DrawArrays(glMode(mode), int32(first), int32(count))
	gl.BindVertexArray(0)
}

func (d *Device) SetPointSize(size float32) {
	gl.PointSize(size)
}

func (d *Device) SetLineWidth(width float32) {
	gl.LineWidth(width)
}

// EnableBlend turns on source-over compositing.
func (d *Device) EnableBlend() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(color renderer.Color) {
	gl.ClearColor(color.R, color.G, color.B, color.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func glMode(mode renderer.Primitive) uint32 {
	switch mode {
	case renderer.PrimitivePoints:
		return gl.POINTS
	case renderer.PrimitiveLines:
		return gl.LINES
	default:
		return gl.TRIANGLES
	}
}
