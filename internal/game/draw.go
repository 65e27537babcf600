package game

import (
	"fmt"
	"strings"

	"chosenoffset.com/tilecrawl/internal/core/geom"
	"chosenoffset.com/tilecrawl/internal/render"
	"chosenoffset.com/tilecrawl/internal/world/tile"
)

// Draw renders the game to the screen. Only tiles inside the viewport
// are drawn.
func (g *Game) Draw(screen render.Canvas) {
	screen.Fill(g.ui.Background)
	if g.Map == nil {
		return
	}

	g.drawTiles(screen)
	g.drawTarget(screen)
	g.drawNPCs(screen)
	g.drawPlayer(screen)
	g.drawHUD(screen)
	g.drawMessages(screen)
}

func (g *Game) drawTiles(screen render.Canvas) {
	ts := g.cfg.TileSize
	size := float32(ts)
	minX, minY, maxX, maxY := g.Camera.VisibleTiles(ts, g.Map.Width(), g.Map.Height())

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			t := g.Map.GetTile(x, y)
			pos := g.Camera.WorldToScreen(geom.Point{X: float64(x * ts), Y: float64(y * ts)})
			sx, sy := float32(pos.X), float32(pos.Y)

			screen.FillRect(sx, sy, size, size, g.colors[t])

			// Open doors and emptied chests get a dark inset.
			if st := g.Map.GetTileState(x, y); st != nil && st.Open && (t == tile.Door || t == tile.Chest) {
				inset := size / 4
				screen.FillRect(sx+inset, sy+inset, size-2*inset, size-2*inset, g.ui.OpenInset)
			}
		}
	}
}

func (g *Game) drawTarget(screen render.Canvas) {
	target := g.Player.TargetTile(g.cfg.TileSize)
	if !g.Map.IsInteractable(target.X, target.Y) && g.npcAt(target.X, target.Y) == nil {
		return
	}
	ts := g.cfg.TileSize
	pos := g.Camera.WorldToScreen(geom.Point{X: float64(target.X * ts), Y: float64(target.Y * ts)})
	screen.StrokeRect(float32(pos.X), float32(pos.Y), float32(ts), float32(ts), 1, g.ui.Highlight)
}

func (g *Game) drawNPCs(screen render.Canvas) {
	size := float64(g.cfg.TileSize) * 0.6
	for _, n := range g.NPCs {
		pos := g.Camera.WorldToScreen(n.Position())
		screen.FillRect(float32(pos.X-size/2), float32(pos.Y-size/2), float32(size), float32(size), g.ui.NPC)
	}
}

func (g *Game) drawPlayer(screen render.Canvas) {
	b := g.Player.Bounds()
	pos := g.Camera.WorldToScreen(geom.Point{X: b.X, Y: b.Y})
	screen.FillRect(float32(pos.X), float32(pos.Y), float32(b.W), float32(b.H), g.ui.Player)
	screen.StrokeRect(float32(pos.X), float32(pos.Y), float32(b.W), float32(b.H), 2, g.ui.PlayerOutline)
}

func (g *Game) drawHUD(screen render.Canvas) {
	s := g.Player.Stats
	hud := fmt.Sprintf("%s  HP %d/%d  Gold %d", g.Map.Name(), s.HP, s.MaxHP, s.Gold)
	if len(g.Player.Items) > 0 {
		hud += "  Items: " + strings.Join(g.Player.Items, ", ")
	}
	screen.DrawText(hud, 8, 4, g.ui.Text)
}

func (g *Game) drawMessages(screen render.Canvas) {
	_, h := screen.Size()
	y := h - 20*len(g.Messages) - 4
	for _, msg := range g.Messages {
		clr := g.ui.Text
		clr.A = msg.Alpha()
		screen.DrawText(msg.Text, 8, y, clr)
		y += 20
	}
}
