// Package collision holds the overlap test shared by the food and enemy checks.
package collision

import "github.com/squaregame/squares/internal/geom"

// Contains reports whether point lies inside the box centred on center that
// extends size in every direction, edges included. The box is therefore
// 2*size wide and the other entity's own extent is ignored; gameplay is tuned
// around this tolerance.
func Contains(center geom.Vec2, size float64, point geom.Vec2) bool {
	return within(center.X, size, point.X) && within(center.Y, size, point.Y)
}

func within(c, size, p float64) bool {
	return c-size <= p && p <= c+size
}

// FirstHit returns the index of the first point inside the box around center,
// or -1 when none is.
func FirstHit(center geom.Vec2, size float64, points []geom.Vec2) int {
	for i, p := range points {
		if Contains(center, size, p) {
			return i
		}
	}
	return -1
}
