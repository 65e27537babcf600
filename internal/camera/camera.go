// Package camera maps world pixels to the screen for scrolling levels.
package camera

import (
	"math"

	"chosenoffset.com/tilecrawl/internal/core/geom"
)

// Camera tracks the viewport position for scrolling large levels.
type Camera struct {
	X, Y                          float64 // Top-left corner of the viewport in world coords
	ViewportWidth, ViewportHeight float64
}

// New creates a camera with the given viewport size in pixels.
func New(viewportWidth, viewportHeight float64) *Camera {
	return &Camera{ViewportWidth: viewportWidth, ViewportHeight: viewportHeight}
}

// Follow centres the viewport on target, then clamps it to the map so the
// view never leaves [0, mapSize-viewport]. A map smaller than the viewport
// pins the camera at 0. There is no smoothing: the camera snaps each frame.
func (c *Camera) Follow(target geom.Point, mapWidth, mapHeight float64) {
	c.X = clamp(target.X-c.ViewportWidth/2, mapWidth-c.ViewportWidth)
	c.Y = clamp(target.Y-c.ViewportHeight/2, mapHeight-c.ViewportHeight)
}

func clamp(v, max float64) float64 {
	max = math.Max(0, max)
	if v > max {
		v = max
	}
	if v < 0 {
		v = 0
	}
	return v
}

// WorldToScreen converts a world position to screen pixels.
func (c *Camera) WorldToScreen(p geom.Point) geom.Point {
	return geom.Point{X: p.X - c.X, Y: p.Y - c.Y}
}

// ScreenToWorld converts screen pixels back to a world position.
func (c *Camera) ScreenToWorld(p geom.Point) geom.Point {
	return geom.Point{X: p.X + c.X, Y: p.Y + c.Y}
}

// VisibleTiles returns the inclusive tile range overlapping the viewport,
// clamped to a mapWidth x mapHeight tile grid. Renderers draw only these.
func (c *Camera) VisibleTiles(tileSize, mapWidth, mapHeight int) (minX, minY, maxX, maxY int) {
	ts := float64(tileSize)
	minX = int(math.Floor(c.X / ts))
	minY = int(math.Floor(c.Y / ts))
	maxX = int(math.Floor((c.X + c.ViewportWidth - 1) / ts))
	maxY = int(math.Floor((c.Y + c.ViewportHeight - 1) / ts))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > mapWidth-1 {
		maxX = mapWidth - 1
	}
	if maxY > mapHeight-1 {
		maxY = mapHeight - 1
	}
	return minX, minY, maxX, maxY
}
