// Package tile defines the closed set of tile semantics used by level data.
package tile

import "fmt"

// Type is the integer code stored in level files for each grid cell.
type Type int

// Tile type codes. The numeric values are part of the level file format.
const (
	Floor Type = iota
	Wall
	Door
	Chest
	Altar
	Torch
	Water
	Stairs
	Hiding
	Bookshelf
	HiddenWall
	LatinTile
	Barrier
	Marble
	Pillar

	typeCount // sentinel
)

var typeNames = [typeCount]string{
	Floor:      "floor",
	Wall:       "wall",
	Door:       "door",
	Chest:      "chest",
	Altar:      "altar",
	Torch:      "torch",
	Water:      "water",
	Stairs:     "stairs",
	Hiding:     "hiding",
	Bookshelf:  "bookshelf",
	HiddenWall: "hidden_wall",
	LatinTile:  "latin_tile",
	Barrier:    "barrier",
	Marble:     "marble",
	Pillar:     "pillar",
}

// Valid reports whether t is one of the defined tile codes.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// String returns the lowercase name of the tile type.
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tile(%d)", int(t))
	}
	return typeNames[t]
}

// Parse converts a tile name back into its Type.
func Parse(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tile type %q", name)
}

// All returns every defined tile type in code order.
func All() []Type {
	types := make([]Type, 0, typeCount)
	for t := Floor; t < typeCount; t++ {
		types = append(types, t)
	}
	return types
}
