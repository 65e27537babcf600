package tilemap

import (
	"math"

	"chosenoffset.com/tilecrawl/internal/core/geom"
	"chosenoffset.com/tilecrawl/internal/world/tile"
)

// Occupant is a dynamic actor that blocks movement, such as an NPC.
// Position is the actor's centre in world pixels.
type Occupant interface {
	Position() geom.Point
}

// IsSolid reports whether the tile at (x, y) currently blocks movement.
//
// Every tile type is classified here: DOOR depends on its open state,
// CHEST always occupies its tile, the solidTypes set is always solid and
// anything else is walkable.
func (m *Map) IsSolid(x, y int) bool {
	t := m.GetTile(x, y)
	switch t {
	case tile.Door:
		st := m.states[geom.Coord{X: x, Y: y}]
		return st == nil || !st.Open
	case tile.Chest:
		return true
	}
	return solidTypes.Has(t)
}

// IsWalkable is the negation of IsSolid.
func (m *Map) IsWalkable(x, y int) bool {
	return !m.IsSolid(x, y)
}

// IsAreaWalkable reports whether every tile overlapped by the pixel
// rectangle (x, y, w, h) is walkable. The far edge is taken as x+w-1 so a
// rectangle ending exactly on a tile boundary does not reach the next tile.
func (m *Map) IsAreaWalkable(x, y, w, h float64) bool {
	left := floorDiv(x, m.tileSize)
	right := floorDiv(x+w-1, m.tileSize)
	top := floorDiv(y, m.tileSize)
	bottom := floorDiv(y+h-1, m.tileSize)

	for ty := top; ty <= bottom; ty++ {
		for tx := left; tx <= right; tx++ {
			if m.IsSolid(tx, ty) {
				return false
			}
		}
	}
	return true
}

// IsAreaWalkableWithNPCs is IsAreaWalkable that also rejects any overlap
// with an occupant's tileSize x tileSize box.
func (m *Map) IsAreaWalkableWithNPCs(x, y, w, h float64, npcs []Occupant) bool {
	if !m.IsAreaWalkable(x, y, w, h) {
		return false
	}

	box := geom.Rect{X: x, Y: y, W: w, H: h}
	size := float64(m.tileSize)
	for _, npc := range npcs {
		p := npc.Position()
		if box.Overlaps(geom.CenteredSquare(p.X, p.Y, size)) {
			return false
		}
	}
	return true
}

func floorDiv(v float64, size int) int {
	return int(math.Floor(v / float64(size)))
}
