package tilemap

import (
	"fmt"

	"chosenoffset.com/tilecrawl/internal/core/geom"
	"chosenoffset.com/tilecrawl/internal/world/tile"
	"chosenoffset.com/tilecrawl/pkg/logger"
)

// ResultType tags what an interaction did.
type ResultType string

const (
	ResultDoorLocked  ResultType = "door_locked"
	ResultDoorOpened  ResultType = "door_opened"
	ResultDoorClosed  ResultType = "door_closed"
	ResultChestEmpty  ResultType = "chest_empty"
	ResultChestOpened ResultType = "chest_opened"
	ResultAltarSave   ResultType = "altar_save"
	ResultStairs      ResultType = "stairs"
	ResultHiddenWall  ResultType = "hidden_wall"
	ResultLatinTile   ResultType = "latin_tile"
	ResultBarrier     ResultType = "barrier"
)

const (
	// NothingContents is reported for chests opened without authored contents.
	NothingContents = "nothing"
	// DefaultStairsDirection is used when a STAIRS tile has no direction.
	DefaultStairsDirection = "down"
)

// Result describes the outcome of Interact for the UI and ability layers.
type Result struct {
	Type      ResultType        `json:"type"`
	Message   string            `json:"message,omitempty"`
	Contents  string            `json:"contents,omitempty"`
	Direction string            `json:"direction,omitempty"`
	X         int               `json:"x"`
	Y         int               `json:"y"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// Interact applies the tile's interact verb. It returns nil when the tile
// has no state record or its type has no verb.
//
// HIDDEN_WALL, LATIN_TILE and BARRIER only report their tag; whether a
// wall is revealed or a barrier broken is the caller's decision.
func (m *Map) Interact(x, y int) *Result {
	st := m.GetTileState(x, y)
	if st == nil {
		return nil
	}

	res := &Result{X: x, Y: y}
	switch m.GetTile(x, y) {
	case tile.Door:
		if st.Locked {
			res.Type = ResultDoorLocked
			res.Message = authored(st, "The door is locked.")
			return res
		}
		st.Open = !st.Open
		if st.Open {
			res.Type = ResultDoorOpened
			res.Message = "The door creaks open."
		} else {
			res.Type = ResultDoorClosed
			res.Message = "The door swings shut."
		}
	case tile.Chest:
		if st.Open {
			res.Type = ResultChestEmpty
			res.Message = "The chest is empty."
			return res
		}
		st.Open = true
		res.Type = ResultChestOpened
		res.Contents = st.Contents
		if res.Contents == "" {
			res.Contents = NothingContents
		}
		res.Message = fmt.Sprintf("You open the chest and find %s.", res.Contents)
	case tile.Altar:
		res.Type = ResultAltarSave
		res.Message = authored(st, "The altar glows softly. Your progress is remembered.")
	case tile.Stairs:
		res.Type = ResultStairs
		res.Direction = st.Direction
		if res.Direction == "" {
			res.Direction = DefaultStairsDirection
		}
		res.Message = authored(st, fmt.Sprintf("The stairs lead %s.", res.Direction))
	case tile.HiddenWall:
		res.Type = ResultHiddenWall
		res.Message = authored(st, "This part of the wall looks different.")
	case tile.LatinTile:
		res.Type = ResultLatinTile
		res.Message = authored(st, "Old letters are carved into the floor.")
	case tile.Barrier:
		res.Type = ResultBarrier
		res.Message = authored(st, "A barrier blocks the way.")
	default:
		return nil
	}

	if len(st.Extra) > 0 {
		res.Extra = make(map[string]string, len(st.Extra))
		for k, v := range st.Extra {
			res.Extra[k] = v
		}
	}
	return res
}

func authored(st *State, fallback string) string {
	if st.Message != "" {
		return st.Message
	}
	return fallback
}

// RevealHiddenWall turns a HIDDEN_WALL at (x, y) into FLOOR and logs the
// change. It returns false, without logging, for any other tile.
func (m *Map) RevealHiddenWall(x, y int) bool {
	return m.replaceTile(x, y, tile.HiddenWall, tile.Floor)
}

// BreakBarrier turns a BARRIER at (x, y) into FLOOR and logs the change.
func (m *Map) BreakBarrier(x, y int) bool {
	return m.replaceTile(x, y, tile.Barrier, tile.Floor)
}

func (m *Map) replaceTile(x, y int, from, to tile.Type) bool {
	if !m.inBounds(x, y) || m.GetTile(x, y) != from {
		return false
	}
	m.setTile(x, y, to)
	m.modified = append(m.modified, Modification{X: x, Y: y, NewType: to})

	logger.Component("tilemap").WithField("level_id", m.id).
		Debugf("%s at (%d, %d) became %s", from, x, y, to)
	return true
}

// ReplayModifiedTiles applies a persisted mutation log to a freshly loaded
// map and adopts it as this map's log. Out-of-bounds or unknown entries
// are skipped but still kept in the log.
func (m *Map) ReplayModifiedTiles(mods []Modification) {
	applied := 0
	for _, mod := range mods {
		if !m.inBounds(mod.X, mod.Y) || !mod.NewType.Valid() {
			continue
		}
		m.setTile(mod.X, mod.Y, mod.NewType)
		applied++
	}

	m.modified = make([]Modification, len(mods))
	copy(m.modified, mods)

	logger.Component("tilemap").WithField("level_id", m.id).
		Debugf("replayed %d of %d tile modifications", applied, len(mods))
}

// UnlockDoor clears the locked flag of the DOOR at (x, y). It returns false
// if the tile is not a door or has no state record.
func (m *Map) UnlockDoor(x, y int) bool {
	if m.GetTile(x, y) != tile.Door {
		return false
	}
	st := m.states[geom.Coord{X: x, Y: y}]
	if st == nil {
		return false
	}
	st.Locked = false
	return true
}
