package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima2d/engine/math"
)

// Vertex is a single staged vertex. The layout is seven tightly packed
// float32 values: position at attribute 0, color at attribute 1.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
}

// VertexStride is the size in bytes of one Vertex.
const VertexStride = 7 * 4

// ColorOffset is the byte offset of the color attribute inside a Vertex.
const ColorOffset = 3 * 4

type Color struct {
	R, G, B, A float32
}

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
	Red   = Color{1, 0, 0, 1}
	Green = Color{0, 1, 0, 1}
	Blue  = Color{0, 0, 1, 1}
)

// RGBA returns a color with every channel clamped to [0, 1].
func RGBA(r, g, b, a float32) Color {
	return Color{
		R: math.Saturate(r),
		G: math.Saturate(g),
		B: math.Saturate(b),
		A: math.Saturate(a),
	}
}

func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// Primitive is the topology of a draw call.
type Primitive uint8

const (
	PrimitivePoints Primitive = iota
	PrimitiveLines
	PrimitiveTriangles
)

func (p Primitive) String() string {
	switch p {
	case PrimitivePoints:
		return "POINTS"
	case PrimitiveLines:
		return "LINES"
	case PrimitiveTriangles:
		return "TRIANGLES"
	default:
		return fmt.Sprintf("Primitive(%d)", uint8(p))
	}
}

// Program is a linked shader program handle. Zero is never a valid program.
type Program uint32

// Buffers holds the device handles of the staging buffer pair.
type Buffers struct {
	VAO uint32
	VBO uint32
	EBO uint32
}

// ShaderSource is a vertex/fragment source pair.
type ShaderSource struct {
	Name     string
	Vertex   string
	Fragment string
}
