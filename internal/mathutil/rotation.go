package mathutil

import "math"

// Direction returns the unit vector at angle a (radians), measured clockwise
// from +X because image Y grows downward.
func Direction(a float64) Vec2 {
	return Vec2{math.Cos(a), math.Sin(a)}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
