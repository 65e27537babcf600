// Package config holds the tunable settings for a tilecrawl session.
// Settings are loaded from an optional JSON file layered over defaults,
// then overridden by TILECRAWL_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all session settings
type Config struct {
	TileSize   int            `json:"tile_size"`   // Pixels per tile edge
	Viewport   ViewportConfig `json:"viewport"`    // Logical screen size
	Player     PlayerConfig   `json:"player"`      // Movement tuning
	StartLevel string         `json:"start_level"` // Level id loaded on a fresh save
	TPS        int            `json:"tps"`         // Terminal backend update rate

	// MessageFrames is how long an interaction message stays on screen.
	MessageFrames int `json:"message_frames"`

	Save      SaveConfig        `json:"save"`
	Telemetry TelemetryConfig   `json:"telemetry"`
	Palette   map[string]string `json:"palette"` // Tile name to "#rrggbb"
	UI        map[string]string `json:"ui"`      // UI element to "#rrggbb" or "#rrggbbaa"
}

// ViewportConfig is the logical screen size in pixels.
type ViewportConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PlayerConfig tunes the player's bounding box and speed.
type PlayerConfig struct {
	Size  float64 `json:"size"`  // Bounding box edge in pixels
	Speed float64 `json:"speed"` // Pixels per tick along one axis
}

// SaveConfig selects and configures the save store.
type SaveConfig struct {
	Store     string `json:"store"` // "file" or "redis"
	Dir       string `json:"dir"`
	RedisAddr string `json:"redis_addr"`
	Slot      string `json:"slot"`
}

// TelemetryConfig toggles OTLP tracing.
type TelemetryConfig struct {
	Enabled bool `json:"enabled"`
}

// Store kinds
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// Default returns the settings used when no config file is present.
func Default() *Config {
	return &Config{
		TileSize: 32,
		Viewport: ViewportConfig{Width: 640, Height: 480},
		Player: PlayerConfig{
			Size:  24,
			Speed: 2,
		},
		StartLevel:    "crypt_entrance",
		TPS:           30,
		MessageFrames: 180,
		Save: SaveConfig{
			Store:     StoreFile,
			Dir:       "saves",
			RedisAddr: "localhost:6379",
			Slot:      "default",
		},
		Palette: DefaultPalette(),
		UI:      DefaultUIPalette(),
	}
}

// Load loads config from a JSON file. A missing file yields defaults.
// Environment overrides are applied afterwards.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are not an error; the variables may be set directly.
func LoadDotEnv(files ...string) error {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
	} else if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from TILECRAWL_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("TILECRAWL_START_LEVEL", &c.StartLevel)
	str("TILECRAWL_STORE", &c.Save.Store)
	str("TILECRAWL_SAVE_DIR", &c.Save.Dir)
	str("TILECRAWL_REDIS_ADDR", &c.Save.RedisAddr)
	str("TILECRAWL_SLOT", &c.Save.Slot)

	if v, ok := lookup("TILECRAWL_TILE_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TILECRAWL_TILE_SIZE %q: %w", v, err)
		}
		c.TileSize = n
	}
	if v, ok := lookup("TILECRAWL_SPEED"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TILECRAWL_SPEED %q: %w", v, err)
		}
		c.Player.Speed = f
	}
	if v, ok := lookup("TILECRAWL_TELEMETRY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TILECRAWL_TELEMETRY %q: %w", v, err)
		}
		c.Telemetry.Enabled = b
	}
	return nil
}

// Validate checks that sizes are positive and the store kind is known.
func (c *Config) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %d", c.TileSize)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Player.Size <= 0 || c.Player.Speed <= 0 {
		return fmt.Errorf("player size and speed must be positive")
	}
	if c.Save.Store != StoreFile && c.Save.Store != StoreRedis {
		return fmt.Errorf("unknown save store %q", c.Save.Store)
	}
	if c.Save.Slot == "" {
		return fmt.Errorf("save slot must not be empty")
	}
	return nil
}
