package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/tilecrawl/internal/core/geom"
)

func TestFollowCentersInsideMap(t *testing.T) {
	c := New(320, 240)
	c.Follow(geom.Point{X: 500, Y: 400}, 1000, 800)

	assert.Equal(t, 340.0, c.X)
	assert.Equal(t, 280.0, c.Y)
}

func TestFollowStaysWithinBounds(t *testing.T) {
	c := New(320, 240)
	mapW, mapH := 640.0, 480.0

	targets := []geom.Point{
		{X: -10000, Y: -10000},
		{X: 10000, Y: 10000},
		{X: 0, Y: 480},
		{X: 640, Y: 0},
		{X: 320, Y: 240},
	}
	for _, target := range targets {
		c.Follow(target, mapW, mapH)
		assert.GreaterOrEqual(t, c.X, 0.0)
		assert.GreaterOrEqual(t, c.Y, 0.0)
		assert.LessOrEqual(t, c.X, mapW-c.ViewportWidth)
		assert.LessOrEqual(t, c.Y, mapH-c.ViewportHeight)
	}
}

func TestFollowMapSmallerThanViewport(t *testing.T) {
	c := New(800, 600)
	c.Follow(geom.Point{X: 300, Y: 200}, 320, 240)

	assert.Zero(t, c.X)
	assert.Zero(t, c.Y)
}

func TestScreenWorldRoundTrip(t *testing.T) {
	c := &Camera{X: 37, Y: 81, ViewportWidth: 320, ViewportHeight: 240}
	world := geom.Point{X: 100, Y: 150}

	screen := c.WorldToScreen(world)
	assert.Equal(t, geom.Point{X: 63, Y: 69}, screen)
	assert.Equal(t, world, c.ScreenToWorld(screen))
}

func TestVisibleTiles(t *testing.T) {
	c := &Camera{X: 40, Y: 0, ViewportWidth: 320, ViewportHeight: 240}
	minX, minY, maxX, maxY := c.VisibleTiles(32, 20, 15)

	assert.Equal(t, 1, minX)
	assert.Equal(t, 0, minY)
	assert.Equal(t, 11, maxX) // (40+319)/32
	assert.Equal(t, 7, maxY)  // 239/32

	minX, minY, maxX, maxY = c.VisibleTiles(32, 4, 3)
	assert.Equal(t, 1, minX)
	assert.Equal(t, 0, minY)
	assert.Equal(t, 3, maxX)
	assert.Equal(t, 2, maxY)
}
