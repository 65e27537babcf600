// Package entity provides the real-time player and the static NPCs that
// share the tile world with it.
package entity

import (
	"chosenoffset.com/tilecrawl/internal/core/geom"
	"chosenoffset.com/tilecrawl/internal/world/maploader"
)

// Direction represents cardinal directions for facing
type Direction int

const (
	DirNone Direction = iota
	DirNorth
	DirSouth
	DirEast
	DirWest
)

// Delta returns the tile x,y delta for a direction
func (d Direction) Delta() (int, int) {
	switch d {
	case DirNorth:
		return 0, -1
	case DirSouth:
		return 0, 1
	case DirEast:
		return 1, 0
	case DirWest:
		return -1, 0
	default:
		return 0, 0
	}
}

// String returns the lowercase direction name used in save files.
func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirSouth:
		return "south"
	case DirEast:
		return "east"
	case DirWest:
		return "west"
	default:
		return ""
	}
}

// ParseDirection converts a saved direction name back, defaulting to south.
func ParseDirection(name string) Direction {
	switch name {
	case "north":
		return DirNorth
	case "east":
		return DirEast
	case "west":
		return DirWest
	default:
		return DirSouth
	}
}

// NPC is a non-player character standing on a tile. It never moves but
// blocks movement like a wall.
type NPC struct {
	ID       string
	Name     string
	Dialogue string
	Pos      geom.Point // Centre in world pixels
}

// NewNPC places an NPC at the centre of its level tile.
func NewNPC(data maploader.NPCData, tileSize int) *NPC {
	ts := float64(tileSize)
	return &NPC{
		ID:       data.ID,
		Name:     data.Name,
		Dialogue: data.Dialogue,
		Pos: geom.Point{
			X: float64(data.X)*ts + ts/2,
			Y: float64(data.Y)*ts + ts/2,
		},
	}
}

// Position returns the NPC centre in world pixels.
func (n *NPC) Position() geom.Point {
	return n.Pos
}

// Tile returns the tile the NPC stands on.
func (n *NPC) Tile(tileSize int) geom.Coord {
	return geom.Coord{X: int(n.Pos.X) / tileSize, Y: int(n.Pos.Y) / tileSize}
}
