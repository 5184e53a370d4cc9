package opengl

import (
	"testing"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/spaghettifunk/anima2d/engine/renderer"
)

var _ renderer.Device = (*Device)(nil)

func TestGLMode(t *testing.T) {
	tests := []struct {
		mode renderer.Primitive
		want uint32
	}{
		{renderer.PrimitivePoints, gl.POINTS},
		{renderer.PrimitiveLines, gl.LINES},
		{renderer.PrimitiveTriangles, gl.TRIANGLES},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := glMode(tt.mode); got != tt.want {
				t.Errorf("glMode(%s) = 0x%x, want 0x%x", tt.mode, got, tt.want)
			}
		})
	}
}

// UploadVertices hands the Go slice to GL as is, so the struct layout must
// match the attribute layout.
func TestVertexLayout(t *testing.T) {
	var v renderer.Vertex
	if size := unsafe.Sizeof(v); size != renderer.VertexStride {
		t.Errorf("sizeof(Vertex) = %d, want stride %d", size, renderer.VertexStride)
	}
	if off := unsafe.Offsetof(v.Position); off != 0 {
		t.Errorf("offsetof(Position) = %d, want 0", off)
	}
	if off := unsafe.Offsetof(v.Color); off != renderer.ColorOffset {
		t.Errorf("offsetof(Color) = %d, want %d", off, renderer.ColorOffset)
	}
}
