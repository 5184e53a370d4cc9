package math

import (
	m "math"
	"testing"
)

func TestClamp(t *testing.T) {
	if got := Clamp[float32](1.5, 0, 1); got != 1 {
		t.Errorf("Clamp(1.5) = %v, want 1", got)
	}
	if got := Clamp[float32](-0.5, 0, 1); got != 0 {
		t.Errorf("Clamp(-0.5) = %v, want 0", got)
	}
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5) = %v, want 5", got)
	}
}

func TestSaturate(t *testing.T) {
	for in, want := range map[float32]float32{-1: 0, 0.25: 0.25, 2: 1} {
		if got := Saturate(in); got != want {
			t.Errorf("Saturate(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestPointOnCircle(t *testing.T) {
	tests := []struct {
		name         string
		theta        float64
		wantX, wantY float32
	}{
		{"zero points up the y axis", 0, 10, 15},
		{"quarter turn points along x", m.Pi / 2, 15, 10},
		{"half turn", m.Pi, 10, 5},
		{"three quarter turn", 3 * m.Pi / 2, 5, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := PointOnCircle(10, 10, 5, tt.theta)
			if m.Abs(float64(x-tt.wantX)) > 1e-5 || m.Abs(float64(y-tt.wantY)) > 1e-5 {
				t.Errorf("PointOnCircle() = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); d != 5 {
		t.Errorf("Distance() = %v, want 5", d)
	}
}
