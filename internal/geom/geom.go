package geom

import (
	"math"
	"math/rand"
)

// Vec2 is a point or displacement in world units. Y grows upward; the origin
// is the centre of the window.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Bounds is a rectangle centred on the origin, described by its half extents.
type Bounds struct {
	HalfW float64
	HalfH float64
}

// BoundsFromSize builds the play-area bounds for a window of w by h units.
func BoundsFromSize(w, h float64) Bounds {
	return Bounds{HalfW: w / 2, HalfH: h / 2}
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= -b.HalfW && p.X <= b.HalfW && p.Y >= -b.HalfH && p.Y <= b.HalfH
}

// RandomPosition picks a point with X in [-HalfW, HalfW) and Y in [-HalfH, HalfH).
func RandomPosition(rng *rand.Rand, b Bounds) Vec2 {
	return Vec2{
		X: randomRange(rng, -b.HalfW, b.HalfW),
		Y: randomRange(rng, -b.HalfH, b.HalfH),
	}
}

// RandomVelocity returns a vector of length speed pointing into the first
// quadrant. Both components are drawn from [1, 2) before normalizing, so the
// direction stays within roughly 26.6°..63.4°.
func RandomVelocity(rng *rand.Rand, speed float64) Vec2 {
	v := Vec2{X: rng.Float64() + 1, Y: rng.Float64() + 1}
	return v.Normalize().Scale(speed)
}

// Integrate advances p by one tick of velocity v.
func Integrate(p, v Vec2) Vec2 {
	return p.Add(v)
}

// Bounce clamps p into b and inverts the velocity component of every axis on
// which p was outside. Axes are handled independently.
func Bounce(p, v Vec2, b Bounds) (Vec2, Vec2) {
	p.X, v.X = bounceAxis(p.X, v.X, b.HalfW)
	p.Y, v.Y = bounceAxis(p.Y, v.Y, b.HalfH)
	return p, v
}

func bounceAxis(pos, vel, half float64) (float64, float64) {
	switch {
	case pos < -half:
		return -half, -vel
	case pos > half:
		return half, -vel
	}
	return pos, vel
}

func randomRange(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
