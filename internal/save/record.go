// Package save persists session progress: the player's stats and items,
// the current level, and the tile mutations made in every visited level.
package save

import (
	"time"

	"github.com/google/uuid"

	"chosenoffset.com/tilecrawl/internal/world/tilemap"
)

// CurrentVersion is the record layout written by this build.
const CurrentVersion = 1

const (
	defaultMaxHP  = 10
	defaultFacing = "south"
)

// Record is one save slot's contents.
type Record struct {
	ID      string                `json:"id"`
	Version int                   `json:"version"`
	SavedAt time.Time             `json:"savedAt"`
	Level   string                `json:"level"`
	Player  PlayerState           `json:"player"`
	Levels  map[string]LevelState `json:"levels"`

	// Flags holds one-off story switches such as NPCs already spoken to.
	Flags map[string]bool `json:"flags"`
}

// PlayerState is the player's position and inventory at save time.
type PlayerState struct {
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Facing    string   `json:"facing"`
	HP        int      `json:"hp"`
	MaxHP     int      `json:"maxHp"`
	Gold      int      `json:"gold"`
	Items     []string `json:"items"`
	Abilities []string `json:"abilities"`
}

// LevelState is the mutation log of one visited level.
type LevelState struct {
	ModifiedTiles []tilemap.Modification `json:"modifiedTiles"`
}

// NewRecord creates a fresh record starting on level.
func NewRecord(level string) *Record {
	r := &Record{Level: level}
	r.Normalize(level)
	return r
}

// Normalize fills anything a loaded record is missing with defaults so
// older or hand-edited saves load cleanly.
func (r *Record) Normalize(startLevel string) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Version <= 0 || r.Version > CurrentVersion {
		r.Version = CurrentVersion
	}
	if r.Level == "" {
		r.Level = startLevel
	}
	if r.Levels == nil {
		r.Levels = make(map[string]LevelState)
	}
	if r.Flags == nil {
		r.Flags = make(map[string]bool)
	}

	p := &r.Player
	if p.MaxHP <= 0 {
		p.MaxHP = defaultMaxHP
	}
	if p.HP <= 0 || p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	if p.Gold < 0 {
		p.Gold = 0
	}
	if p.Facing == "" {
		p.Facing = defaultFacing
	}
	if p.Items == nil {
		p.Items = []string{}
	}
	if p.Abilities == nil {
		p.Abilities = []string{}
	}
}

// Fresh reports whether the record has never been written, meaning the
// player should start on the level's spawn.
func (r *Record) Fresh() bool {
	return r.SavedAt.IsZero()
}

// ModifiedTiles returns a copy of the stored log for level.
func (r *Record) ModifiedTiles(level string) []tilemap.Modification {
	src := r.Levels[level].ModifiedTiles
	out := make([]tilemap.Modification, len(src))
	copy(out, src)
	return out
}

// SetModifiedTiles stores a copy of mods as level's log.
func (r *Record) SetModifiedTiles(level string, mods []tilemap.Modification) {
	if r.Levels == nil {
		r.Levels = make(map[string]LevelState)
	}
	stored := make([]tilemap.Modification, len(mods))
	copy(stored, mods)
	r.Levels[level] = LevelState{ModifiedTiles: stored}
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	c := *r
	c.Player.Items = append([]string{}, r.Player.Items...)
	c.Player.Abilities = append([]string{}, r.Player.Abilities...)
	c.Levels = make(map[string]LevelState, len(r.Levels))
	for name := range r.Levels {
		c.SetModifiedTiles(name, r.Levels[name].ModifiedTiles)
	}
	c.Flags = make(map[string]bool, len(r.Flags))
	for k, v := range r.Flags {
		c.Flags[k] = v
	}
	return &c
}
