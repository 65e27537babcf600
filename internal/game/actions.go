package game

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/tilecrawl/internal/core/geom"
	"chosenoffset.com/tilecrawl/internal/entity"
	"chosenoffset.com/tilecrawl/internal/world/tile"
	"chosenoffset.com/tilecrawl/internal/world/tilemap"
)

// Interact talks to an NPC in front of the player or applies the
// interact verb of the tile in front of the player.
func (g *Game) Interact() {
	target := g.Player.TargetTile(g.cfg.TileSize)

	if npc := g.npcAt(target.X, target.Y); npc != nil {
		g.talkTo(npc)
		return
	}

	if g.doorwayBlocked(target.X, target.Y) {
		g.ShowMessage("Something is standing in the doorway.")
		return
	}

	res := g.Map.Interact(target.X, target.Y)
	if res == nil {
		return
	}
	g.log.WithFields(logrus.Fields{
		"result": res.Type,
		"x":      res.X,
		"y":      res.Y,
	}).Debug("interaction")
	g.HandleResult(res)
}

// HandleResult turns an interaction result into its game outcome.
func (g *Game) HandleResult(res *tilemap.Result) {
	switch res.Type {
	case tilemap.ResultDoorLocked:
		msg := res.Message
		if g.Player.HasItem(keyItem) {
			msg += " Press K to use your key."
		}
		g.ShowMessage(msg)

	case tilemap.ResultChestOpened:
		g.ShowMessage(res.Message)
		g.collect(res.Contents)

	case tilemap.ResultAltarSave:
		g.checkpoint(res.Message)

	case tilemap.ResultStairs:
		g.takeStairs(res.Direction)

	case tilemap.ResultHiddenWall:
		if g.Player.Can(entity.AbilityReveal) && g.Map.RevealHiddenWall(res.X, res.Y) {
			g.ShowMessage("The false wall dissolves into dust.")
			return
		}
		g.ShowMessage(res.Message)

	case tilemap.ResultBarrier:
		if g.Player.Can(entity.AbilityBreak) && g.Map.BreakBarrier(res.X, res.Y) {
			g.ShowMessage("You smash the barrier to rubble.")
			return
		}
		g.ShowMessage(res.Message)

	case tilemap.ResultLatinTile:
		msg := res.Message
		if word, ok := res.Extra["word"]; ok {
			msg = fmt.Sprintf("%s \"%s\"", msg, word)
			if meaning, ok := res.Extra["meaning"]; ok {
				msg = fmt.Sprintf("%s means %s.", msg, meaning)
			}
		}
		g.ShowMessage(msg)

	default:
		g.ShowMessage(res.Message)
	}
}

// UseKey unlocks the locked door in front of the player, spending a key.
func (g *Game) UseKey() {
	target := g.Player.TargetTile(g.cfg.TileSize)
	if g.Map.GetTile(target.X, target.Y) != tile.Door {
		return
	}
	st := g.Map.GetTileState(target.X, target.Y)
	if st == nil || !st.Locked {
		return
	}
	if !g.Player.HasItem(keyItem) {
		g.ShowMessage("You have no key.")
		return
	}
	if g.Map.UnlockDoor(target.X, target.Y) {
		g.Player.TakeItem(keyItem)
		g.ShowMessage("The key turns and the lock clicks open.")
	}
}

func (g *Game) collect(contents string) {
	switch contents {
	case tilemap.NothingContents, "":
		return
	case "gold":
		g.Player.Stats.Gold += goldPerChest
		return
	}

	g.Player.AddItem(contents)
	if ability, ok := itemAbilities[contents]; ok && !g.Player.Can(ability) {
		g.Player.Grant(ability)
		g.ShowMessage(fmt.Sprintf("The %s teaches you to %s.", contents, ability))
	}
}

func (g *Game) checkpoint(message string) {
	if g.checkpointer == nil {
		g.ShowMessage(message)
		return
	}
	if !g.checkpointer.Checkpoint(g.ctx, g.Snapshot()) {
		g.ShowMessage("The altar flickers. Your progress could not be recorded.")
		return
	}
	g.ShowMessage(message)
}

func (g *Game) talkTo(npc *entity.NPC) {
	g.Record.Flags["talked:"+npc.ID] = true
	if npc.Dialogue == "" {
		g.ShowMessage(fmt.Sprintf("%s has nothing to say.", npc.Name))
		return
	}
	g.ShowMessage(fmt.Sprintf("%s: %s", npc.Name, npc.Dialogue))
}

// doorwayBlocked reports whether (x, y) is an open door whose tile overlaps
// the player or an NPC, so closing it would trap them inside a wall.
func (g *Game) doorwayBlocked(x, y int) bool {
	if g.Map.GetTile(x, y) != tile.Door {
		return false
	}
	st := g.Map.GetTileState(x, y)
	if st == nil || !st.Open {
		return false
	}

	size := float64(g.cfg.TileSize)
	door := geom.Rect{X: float64(x) * size, Y: float64(y) * size, W: size, H: size}
	if door.Overlaps(g.Player.Bounds()) {
		return true
	}
	for _, n := range g.NPCs {
		if door.Overlaps(geom.CenteredSquare(n.Pos.X, n.Pos.Y, size)) {
			return true
		}
	}
	return false
}

func (g *Game) npcAt(x, y int) *entity.NPC {
	for _, n := range g.NPCs {
		if t := n.Tile(g.cfg.TileSize); t.X == x && t.Y == y {
			return n
		}
	}
	return nil
}
