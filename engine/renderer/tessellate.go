package renderer

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima2d/engine/math"
)

// CircleSegments is the fixed number of perimeter samples used for every
// circle, independent of its radius.
const CircleSegments = 32

const (
	circleVertices = CircleSegments + 1
	circleIndices  = CircleSegments * 3
)

// rectangleIndices splits a quad given in winding order into two triangles
// sharing the 0-2 diagonal.
var rectangleIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// circleSample returns perimeter sample i of a circle around (cx, cy).
func circleSample(cx, cy, radius float32, i int) mgl32.Vec3 {
	theta := float64(i) * (2 * gomath.Pi / CircleSegments)
	x, y := math.PointOnCircle(cx, cy, radius, theta)
	return mgl32.Vec3{x, y, 0}
}

// stageCircle writes a triangle fan around the center vertex: slot 0 is the
// center, slots 1..CircleSegments the samples, and triangle i is
// {0, 1+i, 1+(i+1)%CircleSegments}.
func stageCircle(b *Batch, cx, cy, radius float32, color mgl32.Vec4) error {
	if err := b.Reserve(circleVertices, circleIndices); err != nil {
		return err
	}
	center, err := b.AppendVertex(mgl32.Vec3{cx, cy, 0}, color)
	if err != nil {
		return err
	}
	for i := 0; i < CircleSegments; i++ {
		if _, err := b.AppendVertex(circleSample(cx, cy, radius, i), color); err != nil {
			return err
		}
	}
	for i := 0; i < CircleSegments; i++ {
		next := (i + 1) % CircleSegments
		for _, slot := range [3]uint32{center, center + 1 + uint32(i), center + 1 + uint32(next)} {
			if err := b.AppendIndex(slot); err != nil {
				return err
			}
		}
	}
	return nil
}
