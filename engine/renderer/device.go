package renderer

import "github.com/go-gl/mathgl/mgl32"

// Device is the graphics collaborator the 2D renderer draws through. The
// OpenGL implementation lives in the opengl package; tests use a recording fake.
type Device interface {
	CompileProgram(source ShaderSource) (Program, error)
	UseProgram(program Program)
	DeleteProgram(program Program)
	SetProjection(program Program, projection mgl32.Mat4)

	// CreateBuffers allocates device storage for the given vertex and index capacities.
	CreateBuffers(vertexCapacity, indexCapacity int) (Buffers, error)
	UploadVertices(buffers Buffers, vertices []Vertex)
	UploadIndices(buffers Buffers, indices []uint32)
	DeleteBuffers(buffers Buffers)

	DrawElements(buffers Buffers, mode Primitive, count int)
	DrawArrays(buffers Buffers, mode Primitive, first, count int)

	SetPointSize(size float32)
	SetLineWidth(width float32)
	EnableBlend()

	Viewport(width, height int)
	Clear(color Color)
}

// WindowSizer reports the drawable size of the window in pixels.
type WindowSizer interface {
	FramebufferSize() (width, height int)
}
