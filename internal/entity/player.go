package entity

import (
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"chosenoffset.com/tilecrawl/internal/core/geom"
)

// Abilities the player can learn. The ability layer decides what an
// interaction result turns into.
const (
	AbilityReveal = "reveal" // Reveals hidden walls
	AbilityBreak  = "break"  // Breaks barriers
)

// diagonalScale keeps diagonal speed equal to axis-aligned speed.
var diagonalScale = 1 / math.Sqrt2

// AreaCheck reports whether a pixel rectangle may be occupied.
// tilemap.Map.IsAreaWalkable satisfies it directly; the NPC-aware variant
// is adapted with a closure.
type AreaCheck func(x, y, w, h float64) bool

// Intent holds the movement keys held this frame.
type Intent struct {
	Up, Down, Left, Right bool
}

// Velocity converts the intent to a per-frame displacement.
func (i Intent) Velocity(speed float64) (dx, dy float64) {
	if i.Left {
		dx -= speed
	}
	if i.Right {
		dx += speed
	}
	if i.Up {
		dy -= speed
	}
	if i.Down {
		dy += speed
	}
	if dx != 0 && dy != 0 {
		dx *= diagonalScale
		dy *= diagonalScale
	}
	return dx, dy
}

// Stats are the few numbers the save file tracks for the player.
type Stats struct {
	HP    int
	MaxHP int
	Gold  int
}

// Player represents the player's physical state in the world.
type Player struct {
	X, Y          float64 // Top-left corner in world pixels
	Width, Height float64
	Speed         float64 // Pixels per frame
	Facing        Direction
	Intent        Intent

	Stats     Stats
	Items     []string
	abilities mapset.Set[string]
}

// NewPlayer creates a player whose box is size x size pixels.
func NewPlayer(size, speed float64) *Player {
	return &Player{
		Width:     size,
		Height:    size,
		Speed:     speed,
		Facing:    DirSouth,
		Stats:     Stats{HP: 10, MaxHP: 10},
		abilities: mapset.New[string](),
	}
}

// Bounds returns the player's AABB.
func (p *Player) Bounds() geom.Rect {
	return geom.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Center returns the centre of the player's box.
func (p *Player) Center() geom.Point {
	return p.Bounds().Center()
}

// PlaceAtTile centres the player on tile (x, y).
func (p *Player) PlaceAtTile(x, y, tileSize int) {
	ts := float64(tileSize)
	p.X = float64(x)*ts + (ts-p.Width)/2
	p.Y = float64(y)*ts + (ts-p.Height)/2
}

// TargetTile returns the tile one step in front of the player.
func (p *Player) TargetTile(tileSize int) geom.Coord {
	c := p.Center()
	ts := float64(tileSize)
	here := geom.Coord{X: int(math.Floor(c.X / ts)), Y: int(math.Floor(c.Y / ts))}
	dx, dy := p.Facing.Delta()
	return here.Add(dx, dy)
}

// Update moves the player according to its intent and turns it to face
// the direction of travel. Horizontal input wins the facing when both
// axes are held.
func (p *Player) Update(canOccupy AreaCheck) (movedX, movedY bool) {
	switch {
	case p.Intent.Left && !p.Intent.Right:
		p.Facing = DirWest
	case p.Intent.Right && !p.Intent.Left:
		p.Facing = DirEast
	case p.Intent.Up && !p.Intent.Down:
		p.Facing = DirNorth
	case p.Intent.Down && !p.Intent.Up:
		p.Facing = DirSouth
	}

	dx, dy := p.Intent.Velocity(p.Speed)
	return Move(p, dx, dy, canOccupy)
}

// Move resolves a displacement one axis at a time. The X pass is tested
// and committed first, then the Y pass is tested from the updated X, so a
// diagonal move against a corner still slides along the open axis. A
// blocked axis discards its whole component for this frame.
func Move(p *Player, dx, dy float64, canOccupy AreaCheck) (movedX, movedY bool) {
	if dx != 0 && canOccupy(p.X+dx, p.Y, p.Width, p.Height) {
		p.X += dx
		movedX = true
	}
	if dy != 0 && canOccupy(p.X, p.Y+dy, p.Width, p.Height) {
		p.Y += dy
		movedY = true
	}
	return movedX, movedY
}

// Grant teaches the player an ability.
func (p *Player) Grant(ability string) {
	p.abilities.Put(ability)
}

// Can reports whether the player has an ability.
func (p *Player) Can(ability string) bool {
	return p.abilities.Has(ability)
}

// Abilities returns the learned abilities, sorted.
func (p *Player) Abilities() []string {
	var out []string
	p.abilities.Each(func(a string) {
		out = append(out, a)
	})
	sort.Strings(out)
	return out
}

// AddItem puts an item in the player's pack.
func (p *Player) AddItem(item string) {
	p.Items = append(p.Items, item)
}

// HasItem reports whether the pack holds the item.
func (p *Player) HasItem(item string) bool {
	for _, it := range p.Items {
		if it == item {
			return true
		}
	}
	return false
}

// TakeItem removes one copy of the item, reporting whether it was there.
func (p *Player) TakeItem(item string) bool {
	for i, it := range p.Items {
		if it == item {
			p.Items = append(p.Items[:i], p.Items[i+1:]...)
			return true
		}
	}
	return false
}
