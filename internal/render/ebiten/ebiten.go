// Package ebiten implements the render interfaces on top of Ebitengine.
package ebiten

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/tilecrawl/internal/input"
	"chosenoffset.com/tilecrawl/internal/render"
)

// Canvas wraps an ebiten.Image to implement the render.Canvas interface.
type Canvas struct {
	img *ebiten.Image
}

// WrapImage wraps an existing ebiten.Image as a render.Canvas.
func WrapImage(img *ebiten.Image) *Canvas {
	return &Canvas{img: img}
}

// Size returns the width and height of the image.
func (c *Canvas) Size() (width, height int) {
	return c.img.Bounds().Dx(), c.img.Bounds().Dy()
}

// Fill fills the entire image with the given color.
func (c *Canvas) Fill(clr color.Color) {
	c.img.Fill(clr)
}

// FillRect draws a filled rectangle.
func (c *Canvas) FillRect(x, y, w, h float32, clr color.Color) {
	vector.DrawFilledRect(c.img, x, y, w, h, clr, false)
}

// StrokeRect draws a rectangle outline.
func (c *Canvas) StrokeRect(x, y, w, h, strokeWidth float32, clr color.Color) {
	vector.StrokeRect(c.img, x, y, w, h, strokeWidth, clr, false)
}

// DrawText draws text using the debug font.
// Note: Color parameter is currently ignored, text is always white.
func (c *Canvas) DrawText(str string, x, y int, clr color.Color) {
	ebitenutil.DebugPrintAt(c.img, str, x, y)
}

// Engine implements the render.Engine interface using Ebiten. Key events
// are copied into the shared Keyboard at the start of every tick.
type Engine struct {
	keyboard *input.Keyboard
}

// NewEngine creates a new Ebiten-based game engine feeding kb.
func NewEngine(kb *input.Keyboard) *Engine {
	return &Engine{keyboard: kb}
}

// SetWindowSize sets the window size in pixels.
func (e *Engine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *Engine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// RunGame runs the game loop with the provided game. Returning
// render.ErrQuit from Update ends the loop without an error.
func (e *Engine) RunGame(game render.Game) error {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(&gameAdapter{game: game, keyboard: e.keyboard})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game     render.Game
	keyboard *input.Keyboard
	keys     []ebiten.Key

	// frameOpen is set once a tick has fed input and cleared when the
	// frame's edges are dropped. Ebiten may run several updates per draw.
	frameOpen bool
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	if a.frameOpen {
		a.keyboard.EndFrame()
	}
	a.feedKeys()
	a.frameOpen = true

	if err := a.game.Update(); err != nil {
		if errors.Is(err, render.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&Canvas{img: screen})
	a.keyboard.EndFrame()
	a.frameOpen = false
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}

func (a *gameAdapter) feedKeys() {
	if !ebiten.IsFocused() {
		a.keyboard.ReleaseAll()
		return
	}

	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, k := range a.keys {
		if key, ok := fromEbitenKey(k); ok {
			a.keyboard.Press(key)
		}
	}

	a.keys = inpututil.AppendJustReleasedKeys(a.keys[:0])
	for _, k := range a.keys {
		if key, ok := fromEbitenKey(k); ok {
			a.keyboard.Release(key)
		}
	}
}

// fromEbitenKey converts an ebiten.Key to a render.Key.
func fromEbitenKey(key ebiten.Key) (render.Key, bool) {
	switch key {
	case ebiten.KeyW:
		return render.KeyW, true
	case ebiten.KeyA:
		return render.KeyA, true
	case ebiten.KeyS:
		return render.KeyS, true
	case ebiten.KeyD:
		return render.KeyD, true
	case ebiten.KeyE:
		return render.KeyE, true
	case ebiten.KeyK:
		return render.KeyK, true
	case ebiten.KeyArrowUp:
		return render.KeyUp, true
	case ebiten.KeyArrowDown:
		return render.KeyDown, true
	case ebiten.KeyArrowLeft:
		return render.KeyLeft, true
	case ebiten.KeyArrowRight:
		return render.KeyRight, true
	case ebiten.KeySpace:
		return render.KeySpace, true
	case ebiten.KeyEscape:
		return render.KeyEscape, true
	default:
		return 0, false
	}
}

var (
	_ render.Canvas = (*Canvas)(nil)
	_ render.Engine = (*Engine)(nil)
)
