package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// call is one recorded device interaction.
type call struct {
	op    string
	mode  Primitive
	count int
	value float32
}

type drawCall struct {
	mode     Primitive
	indexed  bool
	count    int
	vertices []Vertex
	indices  []uint32
	program  Program
}

type fakeDevice struct {
	calls []call
	draws []drawCall

	nextProgram Program
	program     Program
	deleted     []Program
	projections map[Program]mgl32.Mat4
	blend       bool
	pointSize   float32
	lineWidth   float32

	vertexCapacity int
	indexCapacity  int
	buffersDeleted int

	uploadedVertices []Vertex
	uploadedIndices  []uint32

	compileErr error
	buffersErr error
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{nextProgram: 1, projections: make(map[Program]mgl32.Mat4)}
}

func (d *fakeDevice) record(op string) {
	d.calls = append(d.calls, call{op: op})
}

func (d *fakeDevice) CompileProgram(source ShaderSource) (Program, error) {
	d.record("compile")
	if d.compileErr != nil {
		return 0, d.compileErr
	}
	p := d.nextProgram
	d.nextProgram++
	return p, nil
}

func (d *fakeDevice) UseProgram(program Program) {
	d.record("use")
	d.program = program
}

func (d *fakeDevice) DeleteProgram(program Program) {
	d.record("deleteProgram")
	d.deleted = append(d.deleted, program)
}

func (d *fakeDevice) SetProjection(program Program, projection mgl32.Mat4) {
	d.record("projection")
	d.projections[program] = projection
}

func (d *fakeDevice) CreateBuffers(vertexCapacity, indexCapacity int) (Buffers, error) {
	d.record("createBuffers")
	if d.buffersErr != nil {
		return Buffers{}, d.buffersErr
	}
	d.vertexCapacity = vertexCapacity
	d.indexCapacity = indexCapacity
	return Buffers{VAO: 1, VBO: 2, EBO: 3}, nil
}

func (d *fakeDevice) UploadVertices(buffers Buffers, vertices []Vertex) {
	d.record("uploadVertices")
	if len(vertices) > d.vertexCapacity {
		panic(fmt.Sprintf("vertex upload of %d exceeds device capacity %d", len(vertices), d.vertexCapacity))
	}
	d.uploadedVertices = append([]Vertex(nil), vertices...)
}

func (d *fakeDevice) UploadIndices(buffers Buffers, indices []uint32) {
	d.record("uploadIndices")
	if len(indices) > d.indexCapacity {
		panic(fmt.Sprintf("index upload of %d exceeds device capacity %d", len(indices), d.indexCapacity))
	}
	d.uploadedIndices = append([]uint32(nil), indices...)
}

func (d *fakeDevice) DeleteBuffers(buffers Buffers) {
	d.record("deleteBuffers")
	d.buffersDeleted++
}

func (d *fakeDevice) DrawElements(buffers Buffers, mode Primitive, count int) {
	d.calls = append(d.calls, call{op: "drawElements", mode: mode, count: count})
	d.draws = append(d.draws, drawCall{
		mode:     mode,
		indexed:  true,
		count:    count,
		vertices: d.uploadedVertices,
		indices:  d.uploadedIndices,
		program:  d.program,
	})
	d.uploadedIndices = nil
}

func (d *fakeDevice) DrawArrays(buffers Buffers, mode Primitive, first, count int) {
	d.calls = append(d.calls, call{op: "drawArrays", mode: mode, count: count})
	d.draws = append(d.draws, drawCall{
		mode:     mode,
		count:    count,
		vertices: d.uploadedVertices,
		program:  d.program,
	})
}

func (d *fakeDevice) SetPointSize(size float32) {
	d.calls = append(d.calls, call{op: "pointSize", value: size})
	d.pointSize = size
}

func (d *fakeDevice) SetLineWidth(width float32) {
	d.calls = append(d.calls, call{op: "lineWidth", value: width})
	d.lineWidth = width
}

func (d *fakeDevice) EnableBlend() {
	d.record("blend")
	d.blend = true
}

func (d *fakeDevice) Viewport(width, height int) {
	d.record("viewport")
}

func (d *fakeDevice) Clear(color Color) {
	d.record("clear")
}

// indexOf returns the position of the first recorded op with the given name, or -1.
func (d *fakeDevice) indexOf(op string) int {
	for i, c := range d.calls {
		if c.op == op {
			return i
		}
	}
	return -1
}

type fixedWindow struct {
	width, height int
}

func (w fixedWindow) FramebufferSize() (int, int) {
	return w.width, w.height
}

var errFakeCompile = errors.New("fake compile failure")
