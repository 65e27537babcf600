// Package maploader reads level files into validated LevelData.
package maploader

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"chosenoffset.com/tilecrawl/internal/world/tile"
)

// SpawnPoint is a tile coordinate where the player enters the level.
type SpawnPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NPCData places a non-player character on a tile.
type NPCData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Dialogue string `json:"dialogue"`
}

// LevelData represents a parsed level file.
type LevelData struct {
	ID           string            `json:"-"` // File stem, used for stairs links and save keys
	Name         string            `json:"name"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	Tiles        []tile.Type       `json:"tiles"` // Row-major, len == Width*Height
	TileMetadata []TileMetadata    `json:"tileMetadata"`
	PlayerSpawn  *SpawnPoint       `json:"playerSpawn,omitempty"`
	NPCs         []NPCData         `json:"npcs,omitempty"`
	Stairs       map[string]string `json:"stairs,omitempty"` // direction -> level ID
}

// TileAt returns the static tile type at (x, y). Callers must stay in bounds.
func (l *LevelData) TileAt(x, y int) tile.Type {
	return l.Tiles[y*l.Width+x]
}

// InBounds reports whether (x, y) is a tile of this level.
func (l *LevelData) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// Spawn returns the player spawn, defaulting to the first walkable-looking
// floor tile when the level does not name one.
func (l *LevelData) Spawn() SpawnPoint {
	if l.PlayerSpawn != nil {
		return *l.PlayerSpawn
	}
	for i, t := range l.Tiles {
		if t == tile.Floor {
			return SpawnPoint{X: i % l.Width, Y: i / l.Width}
		}
	}
	return SpawnPoint{}
}

// LoadLevel loads a level from a JSON file on disk.
func LoadLevel(levelPath string) (*LevelData, error) {
	data, err := os.ReadFile(levelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", levelPath, err)
	}
	return ParseLevel(data, levelID(levelPath))
}

// LoadLevelFS loads the level with the given ID (file stem) from fsys.
func LoadLevelFS(fsys fs.FS, id string) (*LevelData, error) {
	name := id + ".json"
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", name, err)
	}
	return ParseLevel(data, id)
}

// ParseLevel parses and validates level JSON.
func ParseLevel(data []byte, id string) (*LevelData, error) {
	var level LevelData
	if err := json.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", id, err)
	}
	level.ID = id
	if level.Name == "" {
		level.Name = id
	}

	if err := validateLevelData(&level); err != nil {
		return nil, fmt.Errorf("invalid level data in %s: %w", id, err)
	}

	return &level, nil
}

// ScanLevels lists the IDs of every level file in fsys, sorted.
func ScanLevels(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read level directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func levelID(levelPath string) string {
	base := filepath.Base(levelPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// MaxLevelDimension bounds a level's width and height in tiles.
const MaxLevelDimension = 4096

// validateLevelData checks if the level data is valid
func validateLevelData(data *LevelData) error {
	if data.Width <= 0 || data.Height <= 0 {
		return fmt.Errorf("invalid level dimensions: %dx%d", data.Width, data.Height)
	}
	if data.Width > MaxLevelDimension || data.Height > MaxLevelDimension {
		return fmt.Errorf("level dimensions %dx%d exceed %d", data.Width, data.Height, MaxLevelDimension)
	}

	if len(data.Tiles) != data.Width*data.Height {
		return fmt.Errorf("tiles array length mismatch: expected %d, got %d", data.Width*data.Height, len(data.Tiles))
	}

	for i, t := range data.Tiles {
		if !t.Valid() {
			return fmt.Errorf("unknown tile code %d at (%d, %d)", int(t), i%data.Width, i/data.Width)
		}
	}

	for _, meta := range data.TileMetadata {
		if !data.InBounds(meta.X, meta.Y) {
			return fmt.Errorf("tile metadata out of bounds: (%d, %d)", meta.X, meta.Y)
		}
	}

	if data.PlayerSpawn != nil && !data.InBounds(data.PlayerSpawn.X, data.PlayerSpawn.Y) {
		return fmt.Errorf("player spawn out of bounds: (%d, %d)", data.PlayerSpawn.X, data.PlayerSpawn.Y)
	}

	for _, npc := range data.NPCs {
		if !data.InBounds(npc.X, npc.Y) {
			return fmt.Errorf("npc %q out of bounds: (%d, %d)", npc.ID, npc.X, npc.Y)
		}
	}

	return nil
}
