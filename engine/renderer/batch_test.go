package renderer

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima2d/engine/core"
)

func TestNewBatch_Capacity(t *testing.T) {
	tests := []struct {
		name         string
		maxSprites   int
		wantVertices int
		wantIndices  int
	}{
		{"default", 0, 2048, 3072},
		{"negative uses default", -3, 2048, 3072},
		{"custom", 2, 8, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBatch(tt.maxSprites)
			if b.VertexCapacity() != tt.wantVertices || b.IndexCapacity() != tt.wantIndices {
				t.Errorf("capacity = (%d, %d), want (%d, %d)",
					b.VertexCapacity(), b.IndexCapacity(), tt.wantVertices, tt.wantIndices)
			}
		})
	}
}

func TestBatch_AppendAndReset(t *testing.T) {
	b := NewBatch(1)
	red := Red.Vec4()
	for i := 0; i < 3; i++ {
		slot, err := b.AppendVertex(mgl32.Vec3{float32(i), 0, 0}, red)
		if err != nil {
			t.Fatalf("AppendVertex() error = %v", err)
		}
		if slot != uint32(i) {
			t.Errorf("slot = %d, want %d", slot, i)
		}
	}
	for _, idx := range []uint32{0, 1, 2} {
		if err := b.AppendIndex(idx); err != nil {
			t.Fatalf("AppendIndex(%d) error = %v", idx, err)
		}
	}
	if len(b.Vertices()) != 3 || len(b.Indices()) != 3 {
		t.Fatalf("live ranges = (%d, %d), want (3, 3)", len(b.Vertices()), len(b.Indices()))
	}

	b.Reset()
	if b.VertexCount() != 0 || b.IndexCount() != 0 {
		t.Errorf("Reset() left cursors at (%d, %d)", b.VertexCount(), b.IndexCount())
	}
	if len(b.Vertices()) != 0 || len(b.Indices()) != 0 {
		t.Error("live ranges must be empty after Reset")
	}
}

func TestBatch_Overflow(t *testing.T) {
	b := NewBatch(1)
	for i := 0; i < b.VertexCapacity(); i++ {
		if _, err := b.AppendVertex(mgl32.Vec3{}, White.Vec4()); err != nil {
			t.Fatalf("AppendVertex #%d error = %v", i, err)
		}
	}
	if _, err := b.AppendVertex(mgl32.Vec3{}, White.Vec4()); !errors.Is(err, core.ErrCapacityExceeded) {
		t.Fatalf("AppendVertex past capacity error = %v, want ErrCapacityExceeded", err)
	}
	if b.VertexCount() != b.VertexCapacity() {
		t.Errorf("VertexCount() = %d, want %d", b.VertexCount(), b.VertexCapacity())
	}

	for i := 0; i < b.IndexCapacity(); i++ {
		if err := b.AppendIndex(0); err != nil {
			t.Fatalf("AppendIndex #%d error = %v", i, err)
		}
	}
	if err := b.AppendIndex(0); !errors.Is(err, core.ErrCapacityExceeded) {
		t.Fatalf("AppendIndex past capacity error = %v, want ErrCapacityExceeded", err)
	}
	if b.IndexCount() != b.IndexCapacity() {
		t.Errorf("IndexCount() = %d, want %d", b.IndexCount(), b.IndexCapacity())
	}
}

func TestBatch_AppendIndexRejectsUnstagedSlot(t *testing.T) {
	b := NewBatch(1)
	if err := b.AppendIndex(0); !errors.Is(err, core.ErrInvalidIndex) {
		t.Fatalf("AppendIndex on empty batch error = %v, want ErrInvalidIndex", err)
	}
	_, _ = b.AppendVertex(mgl32.Vec3{}, White.Vec4())
	if err := b.AppendIndex(1); !errors.Is(err, core.ErrInvalidIndex) {
		t.Fatalf("AppendIndex(1) error = %v, want ErrInvalidIndex", err)
	}
}

func TestBatch_Reserve(t *testing.T) {
	b := NewBatch(1)
	if err := b.Reserve(4, 6); err != nil {
		t.Fatalf("Reserve(4, 6) error = %v", err)
	}
	if err := b.Reserve(5, 0); !errors.Is(err, core.ErrCapacityExceeded) {
		t.Errorf("Reserve(5, 0) error = %v, want ErrCapacityExceeded", err)
	}
	if err := b.Reserve(0, 7); !errors.Is(err, core.ErrCapacityExceeded) {
		t.Errorf("Reserve(0, 7) error = %v, want ErrCapacityExceeded", err)
	}
	if err := b.Reserve(-1, 0); !errors.Is(err, core.ErrCapacityExceeded) {
		t.Errorf("Reserve(-1, 0) error = %v, want ErrCapacityExceeded", err)
	}
}

func TestBatch_UploadAndDraw(t *testing.T) {
	t.Run("indexed", func(t *testing.T) {
		d := newFakeDevice()
		d.vertexCapacity, d.indexCapacity = 4, 6
		b := NewBatch(1)
		for i := 0; i < 3; i++ {
			_, _ = b.AppendVertex(mgl32.Vec3{}, White.Vec4())
			_ = b.AppendIndex(uint32(i))
		}
		b.UploadAndDraw(d, Buffers{}, 7, PrimitiveTriangles)
		if len(d.draws) != 1 || !d.draws[0].indexed || d.draws[0].count != 3 || d.draws[0].program != 7 {
			t.Fatalf("draws = %+v, want one indexed draw of 3 with program 7", d.draws)
		}
	})
	t.Run("arrays", func(t *testing.T) {
		d := newFakeDevice()
		d.vertexCapacity, d.indexCapacity = 4, 6
		b := NewBatch(1)
		_, _ = b.AppendVertex(mgl32.Vec3{}, White.Vec4())
		_, _ = b.AppendVertex(mgl32.Vec3{}, White.Vec4())
		b.UploadAndDraw(d, Buffers{}, 7, PrimitiveLines)
		if len(d.draws) != 1 || d.draws[0].indexed || d.draws[0].count != 2 {
			t.Fatalf("draws = %+v, want one array draw of 2", d.draws)
		}
		if d.indexOf("uploadIndices") != -1 {
			t.Error("non-indexed draw must not upload indices")
		}
	})
	t.Run("empty", func(t *testing.T) {
		d := newFakeDevice()
		NewBatch(1).UploadAndDraw(d, Buffers{}, 7, PrimitivePoints)
		if len(d.calls) != 0 {
			t.Errorf("empty batch issued device calls: %+v", d.calls)
		}
	})
}
