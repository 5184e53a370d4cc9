package math

import m "math"

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float32 = 2.0 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

// PointOnCircle returns the point at angle theta (radians) on the circle of the
// given radius around (cx, cy). Angle zero points along +y and angles grow
// towards +x.
func PointOnCircle(cx, cy, radius float32, theta float64) (float32, float32) {
	s, c := m.Sincos(theta)
	return cx + float32(float64(radius)*s), cy + float32(float64(radius)*c)
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float32) float32 {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return float32(m.Hypot(dx, dy))
}
