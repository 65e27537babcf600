package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"chosenoffset.com/tilecrawl/internal/world/tile"
)

// DefaultPalette returns the built-in tile colors keyed by tile name.
func DefaultPalette() map[string]string {
	return map[string]string{
		tile.Floor.String():      "#3a3a44",
		tile.Wall.String():       "#7a6a58",
		tile.Door.String():       "#8b5a2b",
		tile.Chest.String():      "#c9a227",
		tile.Torch.String():      "#ff9a3c",
		tile.Water.String():      "#2f6fb5",
		tile.Bookshelf.String():  "#5c3d2e",
		tile.Altar.String():      "#d8d8e8",
		tile.Stairs.String():     "#9c9c9c",
		tile.HiddenWall.String(): "#76685a",
		tile.Marble.String():     "#bfbfc8",
		tile.Hiding.String():     "#2a4a2a",
		tile.LatinTile.String():  "#6a5acd",
		tile.Barrier.String():    "#a02040",
		tile.Pillar.String():     "#8a8a80",
	}
}

// Colors resolves the palette into one color per tile type. Tiles missing
// from the palette fall back to the default entry.
func (c *Config) Colors() (map[tile.Type]color.RGBA, error) {
	defaults := DefaultPalette()
	out := make(map[tile.Type]color.RGBA, len(defaults))
	for _, t := range tile.All() {
		hex, ok := c.Palette[t.String()]
		if !ok {
			hex = defaults[t.String()]
		}
		clr, err := ParseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("palette entry %s: %w", t, err)
		}
		out[t] = clr
	}
	return out, nil
}

// UI element names
const (
	UIBackground    = "background"
	UIPlayer        = "player"
	UIPlayerOutline = "player_outline"
	UINPC           = "npc"
	UIHighlight     = "highlight"
	UIOpenInset     = "open_inset"
	UIText          = "text"
)

// UIColors are the non-tile colors used when drawing a frame.
type UIColors struct {
	Background    color.RGBA
	Player        color.RGBA
	PlayerOutline color.RGBA
	NPC           color.RGBA
	Highlight     color.RGBA
	OpenInset     color.RGBA
	Text          color.RGBA
}

// DefaultUIPalette returns the built-in UI colors keyed by element name.
func DefaultUIPalette() map[string]string {
	return map[string]string{
		UIBackground:    "#0c0c10",
		UIPlayer:        "#ffff64",
		UIPlayerOutline: "#c8c832",
		UINPC:           "#78c8ff",
		UIHighlight:     "#ffffffa0",
		UIOpenInset:     "#1e1e1e",
		UIText:          "#ffffff",
	}
}

// UIColors resolves the UI palette. Missing entries use the defaults.
func (c *Config) UIColors() (UIColors, error) {
	defaults := DefaultUIPalette()
	resolve := func(name string) (color.RGBA, error) {
		hex, ok := c.UI[name]
		if !ok {
			hex = defaults[name]
		}
		clr, err := ParseHexColor(hex)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("ui color %s: %w", name, err)
		}
		return clr, nil
	}

	var ui UIColors
	for _, e := range []struct {
		name string
		dst  *color.RGBA
	}{
		{UIBackground, &ui.Background},
		{UIPlayer, &ui.Player},
		{UIPlayerOutline, &ui.PlayerOutline},
		{UINPC, &ui.NPC},
		{UIHighlight, &ui.Highlight},
		{UIOpenInset, &ui.OpenInset},
		{UIText, &ui.Text},
	} {
		clr, err := resolve(e.name)
		if err != nil {
			return UIColors{}, err
		}
		*e.dst = clr
	}
	return ui, nil
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000")
// to a color. An optional trailing byte ("#FF000080") sets alpha.
func ParseHexColor(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}
	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}
	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	a := uint64(0xff)
	if len(hex) == 8 {
		a, err = strconv.ParseUint(hex[6:8], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha component in %s: %w", hex, err)
		}
	}

	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}
