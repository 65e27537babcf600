package maploader

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"chosenoffset.com/tilecrawl/data"
	"chosenoffset.com/tilecrawl/internal/world/tile"
)

const smallLevel = `{
	"name": "test_room",
	"width": 3,
	"height": 3,
	"tiles": [1,1,1, 1,2,1, 1,3,1],
	"tileMetadata": [
		{"x": 1, "y": 1, "locked": true},
		{"x": 1, "y": 2, "contents": "gold", "word": "aurum", "weight": 3}
	],
	"playerSpawn": {"x": 1, "y": 1},
	"stairs": {"down": "next"}
}`

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel([]byte(smallLevel), "test_room")
	if err != nil {
		t.Fatalf("Failed to parse level: %v", err)
	}

	if level.Width != 3 || level.Height != 3 {
		t.Errorf("Expected 3x3 level, got %dx%d", level.Width, level.Height)
	}
	if level.TileAt(1, 1) != tile.Door {
		t.Errorf("Expected door at (1,1), got %v", level.TileAt(1, 1))
	}
	if len(level.TileMetadata) != 2 {
		t.Fatalf("Expected 2 metadata records, got %d", len(level.TileMetadata))
	}
	if !level.TileMetadata[0].Locked {
		t.Error("Expected door metadata to be locked")
	}

	chest := level.TileMetadata[1]
	if chest.Contents != "gold" {
		t.Errorf("Expected contents 'gold', got '%s'", chest.Contents)
	}
	if chest.Extra["word"] != "aurum" {
		t.Errorf("Expected extra word 'aurum', got '%s'", chest.Extra["word"])
	}
	if chest.Extra["weight"] != "3" {
		t.Errorf("Expected extra weight '3', got '%s'", chest.Extra["weight"])
	}
	if level.Stairs["down"] != "next" {
		t.Errorf("Expected stairs link 'next', got '%s'", level.Stairs["down"])
	}
}

func TestParseLevelDefaultsNameToID(t *testing.T) {
	level, err := ParseLevel([]byte(`{"width":1,"height":1,"tiles":[0]}`), "tiny")
	if err != nil {
		t.Fatalf("Failed to parse level: %v", err)
	}
	if level.Name != "tiny" {
		t.Errorf("Expected name 'tiny', got '%s'", level.Name)
	}
	if spawn := level.Spawn(); spawn.X != 0 || spawn.Y != 0 {
		t.Errorf("Expected spawn (0,0), got (%d,%d)", spawn.X, spawn.Y)
	}
}

func TestParseLevelRejectsInvalidData(t *testing.T) {
	cases := map[string]string{
		"zero width":        `{"width":0,"height":1,"tiles":[]}`,
		"length mismatch":   `{"width":2,"height":2,"tiles":[0,0,0]}`,
		"unknown tile code": `{"width":1,"height":1,"tiles":[42]}`,
		"metadata oob":      `{"width":1,"height":1,"tiles":[0],"tileMetadata":[{"x":3,"y":0}]}`,
		"spawn oob":         `{"width":1,"height":1,"tiles":[0],"playerSpawn":{"x":0,"y":5}}`,
		"npc oob":           `{"width":1,"height":1,"tiles":[0],"npcs":[{"id":"a","x":-1,"y":0}]}`,
		"bad json":          `{"width":`,
		"overflowing size":  `{"width":4294967296,"height":4294967296,"tiles":[]}`,
		"too wide":          `{"width":5000,"height":1,"tiles":[]}`,
	}

	for name, body := range cases {
		if _, err := ParseLevel([]byte(body), name); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}
}

func TestLoadLevelFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "room_a.json")
	if err := os.WriteFile(path, []byte(smallLevel), 0644); err != nil {
		t.Fatalf("Failed to write level: %v", err)
	}

	level, err := LoadLevel(path)
	if err != nil {
		t.Fatalf("Failed to load level: %v", err)
	}
	if level.ID != "room_a" {
		t.Errorf("Expected ID 'room_a', got '%s'", level.ID)
	}

	if _, err := LoadLevel(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestScanAndLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"b.json":     {Data: []byte(smallLevel)},
		"a.json":     {Data: []byte(smallLevel)},
		"notes.txt":  {Data: []byte("ignore me")},
		"sub/c.json": {Data: []byte(smallLevel)},
	}

	ids, err := ScanLevels(fsys)
	if err != nil {
		t.Fatalf("Failed to scan: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("Expected [a b], got %v", ids)
	}

	level, err := LoadLevelFS(fsys, "b")
	if err != nil {
		t.Fatalf("Failed to load from fs: %v", err)
	}
	if level.ID != "b" {
		t.Errorf("Expected ID 'b', got '%s'", level.ID)
	}
}

func TestEmbeddedLevelsAreValid(t *testing.T) {
	fsys := data.Levels()
	ids, err := ScanLevels(fsys)
	if err != nil {
		t.Fatalf("Failed to scan embedded levels: %v", err)
	}
	if len(ids) == 0 {
		t.Fatal("Expected at least one embedded level")
	}

	for _, id := range ids {
		level, err := LoadLevelFS(fsys, id)
		if err != nil {
			t.Errorf("Embedded level %s failed to load: %v", id, err)
			continue
		}
		for dir, target := range level.Stairs {
			if _, err := LoadLevelFS(fsys, target); err != nil {
				t.Errorf("Level %s stairs %s links to missing level %s", id, dir, target)
			}
		}
	}
}
