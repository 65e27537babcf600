package game

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/tilecrawl/internal/entity"
	"chosenoffset.com/tilecrawl/internal/telemetry"
	"chosenoffset.com/tilecrawl/internal/world/maploader"
	"chosenoffset.com/tilecrawl/internal/world/tilemap"
)

// EnterLevel loads level id, replays the mutations the record holds for
// it and places the player on its spawn. The level being left has its
// mutation log stored in the record first. On error the current level is
// left untouched.
func (g *Game) EnterLevel(id string) error {
	_, span := telemetry.Start(g.ctx, g.tracer, "level.enter", telemetry.LevelID.String(id))
	defer span.End()

	level, err := maploader.LoadLevelFS(g.levels, id)
	if err != nil {
		telemetry.Fail(span, err, "level load failed")
		return fmt.Errorf("failed to enter level %s: %w", id, err)
	}

	if g.Map != nil {
		g.Record.SetModifiedTiles(g.Map.ID(), g.Map.ModifiedTiles())
	}

	m := tilemap.New(level, g.cfg.TileSize)
	mods := g.Record.ModifiedTiles(id)
	m.ReplayModifiedTiles(mods)

	npcs := make([]*entity.NPC, 0, len(level.NPCs))
	for _, n := range level.NPCs {
		npcs = append(npcs, entity.NewNPC(n, g.cfg.TileSize))
	}

	g.Level = level
	g.Map = m
	g.NPCs = npcs
	g.Record.Level = id

	spawn := level.Spawn()
	g.Player.PlaceAtTile(spawn.X, spawn.Y, g.cfg.TileSize)
	g.UpdateCamera()

	span.SetAttributes(telemetry.LevelReplayed.Int(len(mods)))
	g.log.WithFields(logrus.Fields{
		"level_id": id,
		"name":     level.Name,
		"replayed": len(mods),
	}).Info("entered level")
	return nil
}

// takeStairs follows the level's stairs link for direction.
func (g *Game) takeStairs(direction string) {
	target, ok := g.Level.Stairs[direction]
	if !ok || target == "" {
		g.ShowMessage(fmt.Sprintf("The stairs %s lead nowhere.", direction))
		return
	}

	_, span := telemetry.Start(g.ctx, g.tracer, "level.transition",
		telemetry.LevelFrom.String(g.Map.ID()),
		telemetry.LevelTo.String(target),
	)
	defer span.End()

	if err := g.EnterLevel(target); err != nil {
		telemetry.Fail(span, err, "level transition failed")
		g.log.WithError(err).Error("level transition failed")
		g.ShowMessage("The way is blocked.")
		return
	}
	g.ShowMessage(fmt.Sprintf("You go %s to %s.", direction, g.Level.Name))
}
