package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima2d/engine/core"
)

const (
	// DefaultMaxSprites sizes the batch when no other capacity is requested.
	DefaultMaxSprites = 512
	VerticesPerSprite = 4
	IndicesPerSprite  = 6
)

// Batch is the staging area holding one draw call's worth of vertex and index
// data. Vertices and indices are stored in fixed-capacity arrays with a cursor
// each; nothing is ever written at or past capacity.
type Batch struct {
	vertices    []Vertex
	indices     []uint32
	vertexCount int
	indexCount  int
}

// NewBatch creates a batch with room for maxSprites quads. A non-positive
// value selects DefaultMaxSprites.
func NewBatch(maxSprites int) *Batch {
	if maxSprites <= 0 {
		maxSprites = DefaultMaxSprites
	}
	return &Batch{
		vertices: make([]Vertex, maxSprites*VerticesPerSprite),
		indices:  make([]uint32, maxSprites*IndicesPerSprite),
	}
}

func (b *Batch) Reset() {
	b.vertexCount = 0
	b.indexCount = 0
}

// Reserve checks that a shape of the given size fits in the remaining space.
func (b *Batch) Reserve(vertices, indices int) error {
	if vertices < 0 || indices < 0 {
		return fmt.Errorf("negative reservation (%d vertices, %d indices): %w", vertices, indices, core.ErrCapacityExceeded)
	}
	if b.vertexCount+vertices > len(b.vertices) {
		return fmt.Errorf("%d vertices requested, %d of %d free: %w",
			vertices, len(b.vertices)-b.vertexCount, len(b.vertices), core.ErrCapacityExceeded)
	}
	if b.indexCount+indices > len(b.indices) {
		return fmt.Errorf("%d indices requested, %d of %d free: %w",
			indices, len(b.indices)-b.indexCount, len(b.indices), core.ErrCapacityExceeded)
	}
	return nil
}

// AppendVertex writes a vertex at the cursor and returns its slot.
func (b *Batch) AppendVertex(position mgl32.Vec3, color mgl32.Vec4) (uint32, error) {
	if b.vertexCount >= len(b.vertices) {
		return 0, fmt.Errorf("vertex capacity %d: %w", len(b.vertices), core.ErrCapacityExceeded)
	}
	slot := b.vertexCount
	b.vertices[slot] = Vertex{Position: position, Color: color}
	b.vertexCount++
	return uint32(slot), nil
}

// AppendIndex writes one index at the cursor. The slot must name a vertex
// already staged by this call.
func (b *Batch) AppendIndex(slot uint32) error {
	if int(slot) >= b.vertexCount {
		return fmt.Errorf("slot %d with %d staged vertices: %w", slot, b.vertexCount, core.ErrInvalidIndex)
	}
	if b.indexCount >= len(b.indices) {
		return fmt.Errorf("index capacity %d: %w", len(b.indices), core.ErrCapacityExceeded)
	}
	b.indices[b.indexCount] = slot
	b.indexCount++
	return nil
}

// Vertices returns the live vertex range. The slice aliases the batch and is
// only valid until the next Reset.
func (b *Batch) Vertices() []Vertex {
	return b.vertices[:b.vertexCount]
}

// Indices returns the live index range, see Vertices.
func (b *Batch) Indices() []uint32 {
	return b.indices[:b.indexCount]
}

func (b *Batch) VertexCount() int    { return b.vertexCount }
func (b *Batch) IndexCount() int     { return b.indexCount }
func (b *Batch) VertexCapacity() int { return len(b.vertices) }
func (b *Batch) IndexCapacity() int  { return len(b.indices) }

// UploadAndDraw binds the program, pushes the live ranges to the device and
// issues a single draw call. Indexed topology is used whenever indices were
// staged; otherwise every staged vertex is drawn in order.
func (b *Batch) UploadAndDraw(device Device, buffers Buffers, program Program, mode Primitive) {
	if b.vertexCount == 0 {
		return
	}
	device.UseProgram(program)
	device.UploadVertices(buffers, b.Vertices())
	if b.indexCount > 0 {
		device.UploadIndices(buffers, b.Indices())
		device.DrawElements(buffers, mode, b.indexCount)
		return
	}
	device.DrawArrays(buffers, mode, 0, b.vertexCount)
}
