// Package geom holds the small amount of 2D geometry shared by the world,
// entity and camera packages.
package geom

import "math"

// Point represents a position in world pixels.
type Point struct {
	X, Y float64
}

// Coord represents a tile coordinate.
type Coord struct {
	X, Y int
}

// Add returns the coordinate offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Rect is an axis-aligned box in world pixels with its origin at the top-left.
type Rect struct {
	X, Y, W, H float64
}

// CenteredSquare returns a size x size box centred on (cx, cy).
func CenteredSquare(cx, cy, size float64) Rect {
	return Rect{X: cx - size/2, Y: cy - size/2, W: size, H: size}
}

// Overlaps reports whether the two boxes share any interior area.
// Boxes that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W &&
		r.X+r.W > o.X &&
		r.Y < o.Y+o.H &&
		r.Y+r.H > o.Y
}

// Center returns the centre point of the box.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}
