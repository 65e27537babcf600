package tilemap

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/tilecrawl/internal/core/geom"
	"chosenoffset.com/tilecrawl/internal/world/maploader"
	"chosenoffset.com/tilecrawl/internal/world/tile"
	"chosenoffset.com/tilecrawl/pkg/logger"
)

const testTileSize = 32

// borderedLevel returns a w x h level of FLOOR surrounded by a WALL border.
func borderedLevel(w, h int) *maploader.LevelData {
	tiles := make([]tile.Type, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				tiles[y*w+x] = tile.Wall
			}
		}
	}
	return &maploader.LevelData{ID: "test", Name: "test", Width: w, Height: h, Tiles: tiles}
}

func place(level *maploader.LevelData, x, y int, t tile.Type) {
	level.Tiles[y*level.Width+x] = t
}

func TestGetTileOutOfBoundsIsWall(t *testing.T) {
	m := New(borderedLevel(20, 15), testTileSize)

	outside := [][2]int{{-1, 0}, {0, -1}, {20, 0}, {0, 15}, {100, 100}, {-50, 7}}
	for _, c := range outside {
		if got := m.GetTile(c[0], c[1]); got != tile.Wall {
			t.Errorf("Expected WALL at (%d,%d), got %v", c[0], c[1], got)
		}
		if !m.IsSolid(c[0], c[1]) {
			t.Errorf("Expected (%d,%d) to be solid", c[0], c[1])
		}
		if m.IsWalkable(c[0], c[1]) {
			t.Errorf("Expected (%d,%d) to not be walkable", c[0], c[1])
		}
		if m.GetTileState(c[0], c[1]) != nil {
			t.Errorf("Expected no state outside the map at (%d,%d)", c[0], c[1])
		}
	}
}

func TestAlwaysSolidTypesIgnoreState(t *testing.T) {
	solid := []tile.Type{tile.Wall, tile.Torch, tile.Water, tile.Bookshelf, tile.HiddenWall, tile.Barrier, tile.Pillar}

	level := borderedLevel(len(solid)+2, 3)
	for i, typ := range solid {
		place(level, i+1, 1, typ)
		level.TileMetadata = append(level.TileMetadata, maploader.TileMetadata{X: i + 1, Y: 1, Open: true})
	}
	m := New(level, testTileSize)

	for i, typ := range solid {
		if !m.IsSolid(i+1, 1) {
			t.Errorf("Expected %v to be solid even with open state", typ)
		}
	}
}

func TestWalkableTypes(t *testing.T) {
	walkable := []tile.Type{tile.Floor, tile.Altar, tile.Stairs, tile.Hiding, tile.LatinTile, tile.Marble}

	level := borderedLevel(len(walkable)+2, 3)
	for i, typ := range walkable {
		place(level, i+1, 1, typ)
	}
	m := New(level, testTileSize)

	for i, typ := range walkable {
		if !m.IsWalkable(i+1, 1) {
			t.Errorf("Expected %v to be walkable", typ)
		}
	}
}

func TestDoorSolidityFollowsOpenState(t *testing.T) {
	level := borderedLevel(5, 5)
	place(level, 2, 2, tile.Door)
	m := New(level, testTileSize)

	if !m.IsSolid(2, 2) {
		t.Fatal("Expected closed door to be solid")
	}

	res := m.Interact(2, 2)
	if res == nil || res.Type != ResultDoorOpened {
		t.Fatalf("Expected door_opened, got %+v", res)
	}
	if m.IsSolid(2, 2) {
		t.Error("Expected open door to be walkable")
	}

	res = m.Interact(2, 2)
	if res == nil || res.Type != ResultDoorClosed {
		t.Fatalf("Expected door_closed, got %+v", res)
	}
	if !m.IsSolid(2, 2) {
		t.Error("Expected re-closed door to be solid")
	}

	// A door with no state at all is treated as closed.
	delete(m.states, geom.Coord{X: 2, Y: 2})
	if !m.IsSolid(2, 2) {
		t.Error("Expected stateless door to be solid")
	}
	if m.Interact(2, 2) != nil {
		t.Error("Expected interact on stateless door to return nil")
	}
}

func TestLockedDoorScenario(t *testing.T) {
	level := borderedLevel(10, 10)
	place(level, 5, 5, tile.Door)
	level.TileMetadata = []maploader.TileMetadata{{X: 5, Y: 5, Locked: true}}
	m := New(level, testTileSize)

	res := m.Interact(5, 5)
	if res == nil || res.Type != ResultDoorLocked {
		t.Fatalf("Expected door_locked, got %+v", res)
	}
	if !m.IsSolid(5, 5) {
		t.Error("Expected locked door to stay solid")
	}
	if m.GetTileState(5, 5).Open {
		t.Error("Expected locked door state to be unchanged")
	}

	if !m.UnlockDoor(5, 5) {
		t.Fatal("Expected UnlockDoor to succeed on a door")
	}
	res = m.Interact(5, 5)
	if res == nil || res.Type != ResultDoorOpened {
		t.Errorf("Expected door_opened after unlocking, got %+v", res)
	}

	if m.UnlockDoor(1, 1) {
		t.Error("Expected UnlockDoor on floor to fail")
	}
	if m.UnlockDoor(0, 0) {
		t.Error("Expected UnlockDoor on wall to fail")
	}
}

func TestChestScenario(t *testing.T) {
	level := borderedLevel(8, 8)
	place(level, 3, 3, tile.Chest)
	level.TileMetadata = []maploader.TileMetadata{{X: 3, Y: 3, Contents: "gold"}}
	m := New(level, testTileSize)

	if !m.IsSolid(3, 3) {
		t.Error("Expected closed chest to be solid")
	}

	res := m.Interact(3, 3)
	if res == nil || res.Type != ResultChestOpened {
		t.Fatalf("Expected chest_opened, got %+v", res)
	}
	if res.Contents != "gold" {
		t.Errorf("Expected contents 'gold', got '%s'", res.Contents)
	}
	if !m.IsSolid(3, 3) {
		t.Error("Expected opened chest to stay solid")
	}

	res = m.Interact(3, 3)
	if res == nil || res.Type != ResultChestEmpty {
		t.Fatalf("Expected chest_empty, got %+v", res)
	}
	if !m.IsSolid(3, 3) {
		t.Error("Expected emptied chest to stay solid")
	}
}

func TestChestWithoutContentsReportsNothing(t *testing.T) {
	level := borderedLevel(5, 5)
	place(level, 2, 2, tile.Chest)
	m := New(level, testTileSize)

	res := m.Interact(2, 2)
	if res == nil || res.Contents != NothingContents {
		t.Errorf("Expected contents %q, got %+v", NothingContents, res)
	}
}

func TestInteractTagsWithoutMutation(t *testing.T) {
	level := borderedLevel(8, 3)
	place(level, 1, 1, tile.Altar)
	place(level, 2, 1, tile.Stairs)
	place(level, 3, 1, tile.Stairs)
	place(level, 4, 1, tile.HiddenWall)
	place(level, 5, 1, tile.LatinTile)
	place(level, 6, 1, tile.Barrier)
	level.TileMetadata = []maploader.TileMetadata{
		{X: 3, Y: 1, Direction: "up"},
		{X: 5, Y: 1, Message: "PORTA", Extra: map[string]string{"meaning": "door"}},
	}
	m := New(level, testTileSize)

	cases := []struct {
		x         int
		want      ResultType
		direction string
	}{
		{1, ResultAltarSave, ""},
		{2, ResultStairs, DefaultStairsDirection},
		{3, ResultStairs, "up"},
		{4, ResultHiddenWall, ""},
		{5, ResultLatinTile, ""},
		{6, ResultBarrier, ""},
	}
	for _, c := range cases {
		res := m.Interact(c.x, 1)
		if res == nil {
			t.Errorf("Expected %s at x=%d, got nil", c.want, c.x)
			continue
		}
		if res.Type != c.want {
			t.Errorf("Expected %s at x=%d, got %s", c.want, c.x, res.Type)
		}
		if res.Direction != c.direction {
			t.Errorf("Expected direction %q at x=%d, got %q", c.direction, c.x, res.Direction)
		}
	}

	latin := m.Interact(5, 1)
	if latin.Message != "PORTA" || latin.Extra["meaning"] != "door" {
		t.Errorf("Expected authored latin tile data, got %+v", latin)
	}

	if m.GetTile(4, 1) != tile.HiddenWall || m.GetTile(6, 1) != tile.Barrier {
		t.Error("Expected interact to leave hidden wall and barrier in place")
	}
	if len(m.ModifiedTiles()) != 0 {
		t.Errorf("Expected empty mutation log, got %v", m.ModifiedTiles())
	}
}

func TestInteractOnNonInteractiveTiles(t *testing.T) {
	m := New(borderedLevel(5, 5), testTileSize)

	if m.Interact(2, 2) != nil {
		t.Error("Expected nil for floor")
	}
	if m.Interact(0, 0) != nil {
		t.Error("Expected nil for wall")
	}
	if m.Interact(-3, 9) != nil {
		t.Error("Expected nil outside the map")
	}
}

func TestConstructionBackfillsInteractiveState(t *testing.T) {
	level := borderedLevel(6, 3)
	for x, typ := range []tile.Type{tile.Door, tile.Chest, tile.Altar, tile.Stairs} {
		place(level, x+1, 1, typ)
	}
	// Metadata on a plain floor tile is not interactive state.
	level.TileMetadata = []maploader.TileMetadata{{X: 1, Y: 2, Locked: true}}
	m := New(level, testTileSize)

	for x := 1; x <= 4; x++ {
		if m.GetTileState(x, 1) == nil {
			t.Errorf("Expected backfilled state for %v at (%d,1)", m.GetTile(x, 1), x)
		}
	}
	if _, ok := m.states[geom.Coord{X: 1, Y: 2}]; ok {
		t.Error("Expected metadata on a floor tile to be ignored")
	}
}

func TestRevealHiddenWall(t *testing.T) {
	level := borderedLevel(6, 6)
	place(level, 3, 3, tile.HiddenWall)
	m := New(level, testTileSize)

	if !m.RevealHiddenWall(3, 3) {
		t.Fatal("Expected reveal to succeed")
	}
	if m.GetTile(3, 3) != tile.Floor {
		t.Errorf("Expected FLOOR after reveal, got %v", m.GetTile(3, 3))
	}
	if !m.IsWalkable(3, 3) {
		t.Error("Expected revealed tile to be walkable")
	}
	if m.GetTileState(3, 3) != nil {
		t.Error("Expected no state for a revealed floor tile")
	}

	mods := m.ModifiedTiles()
	if len(mods) != 1 || mods[0] != (Modification{X: 3, Y: 3, NewType: tile.Floor}) {
		t.Fatalf("Expected one FLOOR modification at (3,3), got %v", mods)
	}

	if m.RevealHiddenWall(3, 3) {
		t.Error("Expected second reveal to return false")
	}
	if len(m.ModifiedTiles()) != 1 {
		t.Errorf("Expected no duplicate log entry, got %v", m.ModifiedTiles())
	}

	if m.RevealHiddenWall(0, 0) {
		t.Error("Expected reveal of a plain wall to fail")
	}
	if m.RevealHiddenWall(-1, 3) {
		t.Error("Expected reveal outside the map to fail")
	}
}

func TestMutationLogTagsLevelID(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.Log.SetFormatter(&logrus.JSONFormatter{})
	prevLevel := logger.Log.GetLevel()
	logger.Log.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		logger.Log.SetLevel(prevLevel)
		logger.Log.SetFormatter(&logrus.TextFormatter{})
		logger.SetOutput(os.Stdout)
	})

	level := borderedLevel(6, 6)
	place(level, 3, 3, tile.HiddenWall)
	m := New(level, testTileSize)
	m.RevealHiddenWall(3, 3)

	out := buf.String()
	if !strings.Contains(out, `"level_id":"test"`) {
		t.Errorf("Expected level_id field in log output, got %s", out)
	}
	if strings.Contains(out, "fields.level") {
		t.Errorf("Expected no clash with the logrus level key, got %s", out)
	}
}

func TestBreakBarrier(t *testing.T) {
	level := borderedLevel(6, 6)
	place(level, 2, 4, tile.Barrier)
	place(level, 3, 4, tile.HiddenWall)
	m := New(level, testTileSize)

	if m.BreakBarrier(3, 4) {
		t.Error("Expected BreakBarrier on hidden wall to fail")
	}
	if !m.BreakBarrier(2, 4) {
		t.Fatal("Expected BreakBarrier to succeed")
	}
	if m.GetTile(2, 4) != tile.Floor {
		t.Errorf("Expected FLOOR, got %v", m.GetTile(2, 4))
	}
	if m.BreakBarrier(2, 4) {
		t.Error("Expected second break to return false")
	}
	if len(m.ModifiedTiles()) != 1 {
		t.Errorf("Expected 1 modification, got %d", len(m.ModifiedTiles()))
	}
}

func TestReplayReproducesDirectMutations(t *testing.T) {
	build := func() *maploader.LevelData {
		level := borderedLevel(10, 8)
		place(level, 2, 2, tile.HiddenWall)
		place(level, 5, 5, tile.Barrier)
		place(level, 7, 3, tile.HiddenWall)
		return level
	}

	played := New(build(), testTileSize)
	played.RevealHiddenWall(2, 2)
	played.BreakBarrier(5, 5)

	fresh := New(build(), testTileSize)
	fresh.ReplayModifiedTiles(played.ModifiedTiles())

	for y := 0; y < 8; y++ {
		for x := 0; x < 10; x++ {
			if played.GetTile(x, y) != fresh.GetTile(x, y) {
				t.Errorf("Tile mismatch at (%d,%d): %v != %v", x, y, played.GetTile(x, y), fresh.GetTile(x, y))
			}
		}
	}
	if len(fresh.ModifiedTiles()) != 2 {
		t.Errorf("Expected replayed log of 2 entries, got %d", len(fresh.ModifiedTiles()))
	}
	if fresh.GetTile(7, 3) != tile.HiddenWall {
		t.Error("Expected untouched hidden wall to remain")
	}
}

func TestReplaySkipsOutOfBoundsEntries(t *testing.T) {
	level := borderedLevel(4, 4)
	place(level, 1, 1, tile.HiddenWall)
	m := New(level, testTileSize)

	mods := []Modification{
		{X: 1, Y: 1, NewType: tile.Floor},
		{X: 40, Y: 1, NewType: tile.Floor},
		{X: 2, Y: 2, NewType: tile.Type(99)},
	}
	m.ReplayModifiedTiles(mods)

	if m.GetTile(1, 1) != tile.Floor {
		t.Errorf("Expected FLOOR at (1,1), got %v", m.GetTile(1, 1))
	}
	if m.GetTile(2, 2) != tile.Floor {
		t.Errorf("Expected (2,2) unchanged, got %v", m.GetTile(2, 2))
	}
	if len(m.ModifiedTiles()) != len(mods) {
		t.Errorf("Expected log replaced with %d entries, got %d", len(mods), len(m.ModifiedTiles()))
	}

	// The returned log is a copy.
	m.ModifiedTiles()[0].X = 99
	if m.ModifiedTiles()[0].X != 1 {
		t.Error("Expected ModifiedTiles to return a copy")
	}
}

func TestReplayBackfillsStateForInteractiveTypes(t *testing.T) {
	m := New(borderedLevel(4, 4), testTileSize)
	m.ReplayModifiedTiles([]Modification{{X: 1, Y: 1, NewType: tile.Chest}})

	if m.GetTileState(1, 1) == nil {
		t.Error("Expected replayed chest to get a default state")
	}
}

func TestPixelHelpers(t *testing.T) {
	m := New(borderedLevel(20, 15), testTileSize)

	w, h := m.PixelSize()
	if w != 640 || h != 480 {
		t.Errorf("Expected 640x480, got %vx%v", w, h)
	}
	if c := m.TileAt(33, 95); c != (geom.Coord{X: 1, Y: 2}) {
		t.Errorf("Expected (1,2), got %v", c)
	}
	if c := m.TileAt(-1, 0); c != (geom.Coord{X: -1, Y: 0}) {
		t.Errorf("Expected (-1,0), got %v", c)
	}
	if p := m.TileCenter(2, 3); p != (geom.Point{X: 80, Y: 112}) {
		t.Errorf("Expected (80,112), got %v", p)
	}
}
