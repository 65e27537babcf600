// Package input tracks keyboard state between engine ticks.
package input

import "chosenoffset.com/tilecrawl/internal/render"

// Keyboard records which keys are held and which went down this frame.
// Backends call Press and Release as events arrive and EndFrame once per
// frame after both update and draw have run.
type Keyboard struct {
	held        [render.KeyCount]bool
	justPressed [render.KeyCount]bool
}

// NewKeyboard creates a keyboard with no keys held.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Press marks key as held. A key that was already held does not fire
// another just-pressed edge.
func (k *Keyboard) Press(key render.Key) {
	if !valid(key) {
		return
	}
	if !k.held[key] {
		k.justPressed[key] = true
	}
	k.held[key] = true
}

// Release marks key as no longer held.
func (k *Keyboard) Release(key render.Key) {
	if !valid(key) {
		return
	}
	k.held[key] = false
}

// IsKeyPressed reports whether key is currently held.
func (k *Keyboard) IsKeyPressed(key render.Key) bool {
	return valid(key) && k.held[key]
}

// IsKeyJustPressed reports whether key went down during the current frame.
func (k *Keyboard) IsKeyJustPressed(key render.Key) bool {
	return valid(key) && k.justPressed[key]
}

// EndFrame clears the just-pressed set.
func (k *Keyboard) EndFrame() {
	k.justPressed = [render.KeyCount]bool{}
}

// ReleaseAll drops every held key, used when the window loses focus.
func (k *Keyboard) ReleaseAll() {
	k.held = [render.KeyCount]bool{}
}

func valid(key render.Key) bool {
	return key >= 0 && key < render.KeyCount
}

var _ render.InputManager = (*Keyboard)(nil)
