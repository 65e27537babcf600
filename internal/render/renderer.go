package render

import (
	"errors"
	"image/color"
)

// ErrQuit is returned from Game.Update to end the loop cleanly.
var ErrQuit = errors.New("render: quit requested")

// Canvas is the drawing surface handed to Game.Draw. It abstracts the
// underlying backend so the same game code draws to a window or a terminal.
// Coordinates are screen pixels; the terminal backend maps them onto cells.
type Canvas interface {
	// Size returns the logical drawing size in pixels.
	Size() (width, height int)

	// Fill fills the entire canvas with the given color.
	Fill(clr color.Color)

	// FillRect draws a filled rectangle.
	FillRect(x, y, w, h float32, clr color.Color)

	// StrokeRect draws a rectangle outline.
	StrokeRect(x, y, w, h, strokeWidth float32, clr color.Color)

	// DrawText draws a line of text with its top-left corner at (x, y).
	DrawText(text string, x, y int, clr color.Color)
}

// InputManager handles keyboard input.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for common keys
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyE // Interact key
	KeyK // Use key on a locked door
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEscape

	KeyCount
)

var keyNames = [...]string{
	KeyW:      "W",
	KeyA:      "A",
	KeyS:      "S",
	KeyD:      "D",
	KeyE:      "E",
	KeyK:      "K",
	KeyUp:     "Up",
	KeyDown:   "Down",
	KeyLeft:   "Left",
	KeyRight:  "Right",
	KeySpace:  "Space",
	KeyEscape: "Escape",
}

func (k Key) String() string {
	if k < 0 || k >= KeyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// Game represents the game interface that the engine will call.
// This is typically implemented by the main game struct.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Canvas)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
