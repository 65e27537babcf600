// Package terminal implements the render interfaces on a tcell screen,
// drawing one character cell per tile.
package terminal

import (
	"errors"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/tilecrawl/internal/input"
	"chosenoffset.com/tilecrawl/internal/render"
	"chosenoffset.com/tilecrawl/pkg/logger"
)

const (
	defaultTPS  = 30
	defaultHold = 200 * time.Millisecond
)

// Canvas draws onto a tcell screen. Pixel coordinates are divided by the
// cell size so a tile-sized rectangle covers exactly one cell.
type Canvas struct {
	screen   tcell.Screen
	cellSize int
}

// NewCanvas wraps screen with cells of cellSize pixels.
func NewCanvas(screen tcell.Screen, cellSize int) *Canvas {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Canvas{screen: screen, cellSize: cellSize}
}

// Size returns the screen size in pixels.
func (c *Canvas) Size() (width, height int) {
	w, h := c.screen.Size()
	return w * c.cellSize, h * c.cellSize
}

// Fill paints every cell with the given background.
func (c *Canvas) Fill(clr color.Color) {
	style := tcell.StyleDefault.Background(toTCell(clr))
	w, h := c.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// FillRect paints the cells covered by the rectangle.
func (c *Canvas) FillRect(x, y, w, h float32, clr color.Color) {
	style := tcell.StyleDefault.Background(toTCell(clr))
	minX, minY, maxX, maxY := c.cells(x, y, w, h)
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			c.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

// StrokeRect marks the covered cells with a box glyph in the given color,
// keeping each cell's existing background.
func (c *Canvas) StrokeRect(x, y, w, h, strokeWidth float32, clr color.Color) {
	fg := toTCell(clr)
	minX, minY, maxX, maxY := c.cells(x, y, w, h)
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			_, _, style, _ := c.screen.GetContent(cx, cy)
			c.screen.SetContent(cx, cy, '□', nil, style.Foreground(fg))
		}
	}
}

// DrawText writes str one rune per cell starting at the cell containing (x, y).
func (c *Canvas) DrawText(str string, x, y int, clr color.Color) {
	fg := toTCell(clr)
	cx, cy := x/c.cellSize, y/c.cellSize
	for _, r := range str {
		_, _, style, _ := c.screen.GetContent(cx, cy)
		c.screen.SetContent(cx, cy, r, nil, style.Foreground(fg))
		cx++
	}
}

// cells returns the on-screen cell range covered by a pixel rectangle,
// clipped to the screen. Rectangles entirely off-screen give an empty
// range (max < min).
func (c *Canvas) cells(x, y, w, h float32) (minX, minY, maxX, maxY int) {
	cs := float64(c.cellSize)
	minX = int(math.Floor(float64(x) / cs))
	minY = int(math.Floor(float64(y) / cs))
	maxX = int(math.Floor(float64(x+w-1) / cs))
	maxY = int(math.Floor(float64(y+h-1) / cs))

	sw, sh := c.screen.Size()
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, sw-1), min(maxY, sh-1)
	return minX, minY, maxX, maxY
}

func toTCell(clr color.Color) tcell.Color {
	if clr == nil {
		return tcell.ColorDefault
	}
	r, g, b, _ := clr.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// Engine runs a fixed-rate loop on a terminal. Terminals report key
// presses but not releases, so a key counts as held until no repeat
// arrives within the hold window.
type Engine struct {
	screen   tcell.Screen
	keyboard *input.Keyboard
	cellSize int
	tps      int
	hold     time.Duration

	lastSeen map[render.Key]time.Time
}

// NewEngine creates an engine on the real terminal.
func NewEngine(kb *input.Keyboard, cellSize int) (*Engine, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewEngineWithScreen(s, kb, cellSize), nil
}

// NewEngineWithScreen creates an engine on an existing, uninitialised screen.
func NewEngineWithScreen(screen tcell.Screen, kb *input.Keyboard, cellSize int) *Engine {
	return &Engine{
		screen:   screen,
		keyboard: kb,
		cellSize: cellSize,
		tps:      defaultTPS,
		hold:     defaultHold,
		lastSeen: make(map[render.Key]time.Time),
	}
}

// SetWindowSize is a no-op: the terminal decides its own size.
func (e *Engine) SetWindowSize(width, height int) {}

// SetWindowTitle is a no-op on terminals.
func (e *Engine) SetWindowTitle(title string) {}

// SetTPS sets the update rate.
func (e *Engine) SetTPS(tps int) {
	if tps > 0 {
		e.tps = tps
	}
}

// RunGame initialises the screen and runs until the game returns
// render.ErrQuit, the user presses Ctrl-C, or Update fails.
func (e *Engine) RunGame(game render.Game) error {
	if err := e.screen.Init(); err != nil {
		return err
	}
	defer e.screen.Fini()
	e.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	e.screen.Clear()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go e.screen.ChannelEvents(events, quit)

	log := logger.Component("terminal")
	ticker := time.NewTicker(time.Second / time.Duration(e.tps))
	defer ticker.Stop()

	canvas := NewCanvas(e.screen, e.cellSize)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if e.handleEvent(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			e.expireKeys(now)
			w, h := e.screen.Size()
			game.Layout(w*e.cellSize, h*e.cellSize)
			if err := game.Update(); err != nil {
				if errors.Is(err, render.ErrQuit) {
					return nil
				}
				log.WithError(err).Error("update failed")
				return err
			}
			e.screen.Clear()
			game.Draw(canvas)
			e.screen.Show()
			e.keyboard.EndFrame()
		}
	}
}

// handleEvent applies one terminal event and reports whether to stop.
func (e *Engine) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return true
		}
		if key, ok := fromTCellKey(ev); ok {
			e.keyboard.Press(key)
			e.lastSeen[key] = now
		}
	case *tcell.EventResize:
		e.screen.Sync()
	}
	return false
}

// expireKeys releases keys with no event inside the hold window.
func (e *Engine) expireKeys(now time.Time) {
	for key, seen := range e.lastSeen {
		if now.Sub(seen) >= e.hold {
			e.keyboard.Release(key)
			delete(e.lastSeen, key)
		}
	}
}

func fromTCellKey(ev *tcell.EventKey) (render.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return render.KeyUp, true
	case tcell.KeyDown:
		return render.KeyDown, true
	case tcell.KeyLeft:
		return render.KeyLeft, true
	case tcell.KeyRight:
		return render.KeyRight, true
	case tcell.KeyEscape:
		return render.KeyEscape, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return render.KeyW, true
		case 'a', 'A':
			return render.KeyA, true
		case 's', 'S':
			return render.KeyS, true
		case 'd', 'D':
			return render.KeyD, true
		case 'e', 'E':
			return render.KeyE, true
		case 'k', 'K':
			return render.KeyK, true
		case ' ':
			return render.KeySpace, true
		}
	}
	return 0, false
}

var (
	_ render.Canvas = (*Canvas)(nil)
	_ render.Engine = (*Engine)(nil)
)
