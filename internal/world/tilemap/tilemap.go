// Package tilemap is the single source of truth for a level's geometry,
// solidity and interactive tile state.
//
// All queries are total: coordinates outside the map read as WALL and
// every mutation reports "nothing happened" through its return value
// rather than an error.
package tilemap

import (
	"github.com/zyedidia/generic/mapset"

	"chosenoffset.com/tilecrawl/internal/core/geom"
	"chosenoffset.com/tilecrawl/internal/world/maploader"
	"chosenoffset.com/tilecrawl/internal/world/tile"
	"chosenoffset.com/tilecrawl/pkg/logger"
)

// solidTypes block movement regardless of any state record.
var solidTypes = mapset.Of(
	tile.Wall,
	tile.Torch,
	tile.Water,
	tile.Bookshelf,
	tile.HiddenWall,
	tile.Barrier,
	tile.Pillar,
)

// interactableTypes carry a State record and respond to Interact.
var interactableTypes = mapset.Of(
	tile.Door,
	tile.Chest,
	tile.Altar,
	tile.Stairs,
	tile.HiddenWall,
	tile.LatinTile,
	tile.Barrier,
)

// State is the runtime record of one interactive tile.
type State struct {
	Open      bool              `json:"open"`
	Locked    bool              `json:"locked"`
	Contents  string            `json:"contents,omitempty"`
	Direction string            `json:"direction,omitempty"`
	Message   string            `json:"message,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// Modification is one entry of the mutation log.
type Modification struct {
	X       int       `json:"x"`
	Y       int       `json:"y"`
	NewType tile.Type `json:"newType"`
}

// Map is a level's tile grid plus its interactive state.
type Map struct {
	id       string
	name     string
	width    int
	height   int
	tileSize int

	tiles    []tile.Type // row-major, y*width+x
	states   map[geom.Coord]*State
	modified []Modification
}

// New builds a Map from validated level data. Interactive tiles without a
// metadata record get a default State so Interact always finds one.
func New(level *maploader.LevelData, tileSize int) *Map {
	m := &Map{
		id:       level.ID,
		name:     level.Name,
		width:    level.Width,
		height:   level.Height,
		tileSize: tileSize,
		tiles:    make([]tile.Type, len(level.Tiles)),
		states:   make(map[geom.Coord]*State),
	}
	copy(m.tiles, level.Tiles)

	log := logger.Component("tilemap").WithField("level_id", level.ID)

	for _, meta := range level.TileMetadata {
		if !IsInteractableTile(m.GetTile(meta.X, meta.Y)) {
			log.Debugf("ignoring metadata for non-interactive tile (%d, %d)", meta.X, meta.Y)
			continue
		}
		m.states[geom.Coord{X: meta.X, Y: meta.Y}] = stateFromMetadata(meta)
	}

	backfilled := 0
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.ensureState(x, y) {
				backfilled++
			}
		}
	}
	if backfilled > 0 {
		log.Debugf("backfilled %d interactive tiles with default state", backfilled)
	}

	return m
}

func stateFromMetadata(meta maploader.TileMetadata) *State {
	st := &State{
		Open:      meta.Open,
		Locked:    meta.Locked,
		Contents:  meta.Contents,
		Direction: meta.Direction,
		Message:   meta.Message,
	}
	if len(meta.Extra) > 0 {
		st.Extra = make(map[string]string, len(meta.Extra))
		for k, v := range meta.Extra {
			st.Extra[k] = v
		}
	}
	return st
}

// ensureState creates a default State for an interactive tile that has none.
func (m *Map) ensureState(x, y int) bool {
	if !IsInteractableTile(m.GetTile(x, y)) {
		return false
	}
	key := geom.Coord{X: x, Y: y}
	if _, ok := m.states[key]; ok {
		return false
	}
	m.states[key] = &State{}
	return true
}

// ID returns the level ID this map was built from.
func (m *Map) ID() string { return m.id }

// Name returns the level's display name.
func (m *Map) Name() string { return m.name }

// Width returns the grid width in tiles.
func (m *Map) Width() int { return m.width }

// Height returns the grid height in tiles.
func (m *Map) Height() int { return m.height }

// TileSize returns the edge length of one tile in world pixels.
func (m *Map) TileSize() int { return m.tileSize }

// PixelSize returns the map extent in world pixels.
func (m *Map) PixelSize() (w, h float64) {
	return float64(m.width * m.tileSize), float64(m.height * m.tileSize)
}

func (m *Map) inBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// GetTile returns the tile type at (x, y), or WALL outside the map.
func (m *Map) GetTile(x, y int) tile.Type {
	if !m.inBounds(x, y) {
		return tile.Wall
	}
	return m.tiles[y*m.width+x]
}

// GetTileState returns the state record at (x, y), or nil if the tile is
// not interactive or has no recorded state.
func (m *Map) GetTileState(x, y int) *State {
	if !m.IsInteractable(x, y) {
		return nil
	}
	return m.states[geom.Coord{X: x, Y: y}]
}

// IsInteractableTile reports whether tiles of type t respond to Interact.
func IsInteractableTile(t tile.Type) bool {
	return interactableTypes.Has(t)
}

// IsInteractable reports whether the tile currently at (x, y) is interactive.
func (m *Map) IsInteractable(x, y int) bool {
	return IsInteractableTile(m.GetTile(x, y))
}

// TileAt converts a world-pixel position to the tile index containing it.
func (m *Map) TileAt(px, py float64) geom.Coord {
	return geom.Coord{X: floorDiv(px, m.tileSize), Y: floorDiv(py, m.tileSize)}
}

// TileCenter returns the world-pixel centre of tile (x, y).
func (m *Map) TileCenter(x, y int) geom.Point {
	ts := float64(m.tileSize)
	return geom.Point{X: float64(x)*ts + ts/2, Y: float64(y)*ts + ts/2}
}

// ModifiedTiles returns a copy of the mutation log.
func (m *Map) ModifiedTiles() []Modification {
	out := make([]Modification, len(m.modified))
	copy(out, m.modified)
	return out
}

// setTile changes a tile's type, keeping the state invariant for
// interactive types.
func (m *Map) setTile(x, y int, t tile.Type) {
	m.tiles[y*m.width+x] = t
	m.ensureState(x, y)
}
