// Package game ties the tile world, the player and the save system into
// the per-frame loop driven by a render.Engine.
package game

import (
	"context"
	"fmt"
	"image/color"
	"io/fs"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"chosenoffset.com/tilecrawl/internal/camera"
	"chosenoffset.com/tilecrawl/internal/config"
	"chosenoffset.com/tilecrawl/internal/entity"
	"chosenoffset.com/tilecrawl/internal/render"
	"chosenoffset.com/tilecrawl/internal/save"
	"chosenoffset.com/tilecrawl/internal/telemetry"
	"chosenoffset.com/tilecrawl/internal/world/maploader"
	"chosenoffset.com/tilecrawl/internal/world/tile"
	"chosenoffset.com/tilecrawl/internal/world/tilemap"
	"chosenoffset.com/tilecrawl/pkg/logger"
)

// Options configures a new Game.
type Options struct {
	Config *config.Config
	Levels fs.FS
	Input  render.InputManager

	// Record is the restored or fresh save. Nil starts a fresh one.
	Record *save.Record

	// Checkpointer writes the record at altars. Nil disables saving.
	Checkpointer *save.Checkpointer

	Tracer trace.Tracer
}

// Game holds all game state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int

	Map    *tilemap.Map
	Level  *maploader.LevelData
	Player *entity.Player
	NPCs   []*entity.NPC
	Camera *camera.Camera
	Record *save.Record

	// UI state
	Messages []Message

	cfg          *config.Config
	colors       map[tile.Type]color.RGBA
	ui           config.UIColors
	levels       fs.FS
	input        render.InputManager
	checkpointer *save.Checkpointer
	tracer       trace.Tracer
	log          *logrus.Entry
	ctx          context.Context
}

// New creates a game and enters the record's current level. ctx is used
// for level loads and checkpoint writes for the lifetime of the game.
func New(ctx context.Context, opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	colors, err := cfg.Colors()
	if err != nil {
		return nil, err
	}
	ui, err := cfg.UIColors()
	if err != nil {
		return nil, err
	}
	if opts.Levels == nil {
		return nil, fmt.Errorf("game: level source is required")
	}
	if opts.Input == nil {
		return nil, fmt.Errorf("game: input manager is required")
	}

	rec := opts.Record
	if rec == nil {
		rec = save.NewRecord(cfg.StartLevel)
	}
	rec.Normalize(cfg.StartLevel)

	tracer := opts.Tracer
	if tracer == nil {
		tracer = telemetry.NoopTracer()
	}

	g := &Game{
		ScreenWidth:  cfg.Viewport.Width,
		ScreenHeight: cfg.Viewport.Height,
		Player:       entity.NewPlayer(cfg.Player.Size, cfg.Player.Speed),
		Camera:       camera.New(float64(cfg.Viewport.Width), float64(cfg.Viewport.Height)),
		Record:       rec,
		cfg:          cfg,
		colors:       colors,
		ui:           ui,
		levels:       opts.Levels,
		input:        opts.Input,
		checkpointer: opts.Checkpointer,
		tracer:       tracer,
		log:          logger.Component("game"),
		ctx:          ctx,
	}
	g.restorePlayer()

	if err := g.EnterLevel(rec.Level); err != nil {
		return nil, err
	}
	if !rec.Fresh() {
		g.placeFromRecord()
	}
	g.UpdateCamera()
	return g, nil
}

// Update handles game logic updates.
func (g *Game) Update() error {
	if g.input.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}

	g.updateMessages()

	g.Player.Intent = entity.Intent{
		Up:    g.input.IsKeyPressed(render.KeyW) || g.input.IsKeyPressed(render.KeyUp),
		Down:  g.input.IsKeyPressed(render.KeyS) || g.input.IsKeyPressed(render.KeyDown),
		Left:  g.input.IsKeyPressed(render.KeyA) || g.input.IsKeyPressed(render.KeyLeft),
		Right: g.input.IsKeyPressed(render.KeyD) || g.input.IsKeyPressed(render.KeyRight),
	}
	g.Player.Update(g.canOccupy)

	if g.input.IsKeyJustPressed(render.KeyE) || g.input.IsKeyJustPressed(render.KeySpace) {
		g.Interact()
	}
	if g.input.IsKeyJustPressed(render.KeyK) {
		g.UseKey()
	}

	g.UpdateCamera()
	return nil
}

// Layout adopts the outside size as the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.ScreenWidth || outsideHeight != g.ScreenHeight) {
		g.ScreenWidth = outsideWidth
		g.ScreenHeight = outsideHeight
		g.Camera.ViewportWidth = float64(outsideWidth)
		g.Camera.ViewportHeight = float64(outsideHeight)
		g.UpdateCamera()
	}
	return g.ScreenWidth, g.ScreenHeight
}

// UpdateCamera updates the camera to follow the player.
func (g *Game) UpdateCamera() {
	if g.Map == nil {
		return
	}
	w, h := g.Map.PixelSize()
	g.Camera.Follow(g.Player.Center(), w, h)
}

func (g *Game) canOccupy(x, y, w, h float64) bool {
	occupants := make([]tilemap.Occupant, len(g.NPCs))
	for i, n := range g.NPCs {
		occupants[i] = n
	}
	return g.Map.IsAreaWalkableWithNPCs(x, y, w, h, occupants)
}

func (g *Game) updateMessages() {
	var active []Message
	for _, msg := range g.Messages {
		msg.TicksLeft--
		if msg.TicksLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:      text,
		TicksLeft: g.cfg.MessageFrames,
		MaxTicks:  g.cfg.MessageFrames,
	})
	g.log.WithField("text", text).Debug("message")
}

// LastMessage returns the newest message text, or "".
func (g *Game) LastMessage() string {
	if len(g.Messages) == 0 {
		return ""
	}
	return g.Messages[len(g.Messages)-1].Text
}

func (g *Game) restorePlayer() {
	p := g.Player
	ps := g.Record.Player
	p.Stats = entity.Stats{HP: ps.HP, MaxHP: ps.MaxHP, Gold: ps.Gold}
	p.Items = append([]string{}, ps.Items...)
	for _, a := range ps.Abilities {
		p.Grant(a)
	}
	p.Facing = entity.ParseDirection(ps.Facing)
}

// placeFromRecord moves the player to the saved position if it is still
// free, otherwise leaves them on the level spawn.
func (g *Game) placeFromRecord() {
	ps := g.Record.Player
	if g.canOccupy(ps.X, ps.Y, g.Player.Width, g.Player.Height) {
		g.Player.X, g.Player.Y = ps.X, ps.Y
		return
	}
	g.log.WithFields(logrus.Fields{"x": ps.X, "y": ps.Y}).Warn("saved position blocked, using spawn")
}

// Snapshot syncs the player and the current level's mutation log into the
// record and returns it.
func (g *Game) Snapshot() *save.Record {
	rec := g.Record
	p := g.Player
	rec.Level = g.Map.ID()
	rec.Player = save.PlayerState{
		X:         p.X,
		Y:         p.Y,
		Facing:    p.Facing.String(),
		HP:        p.Stats.HP,
		MaxHP:     p.Stats.MaxHP,
		Gold:      p.Stats.Gold,
		Items:     append([]string{}, p.Items...),
		Abilities: p.Abilities(),
	}
	rec.SetModifiedTiles(g.Map.ID(), g.Map.ModifiedTiles())
	return rec
}
