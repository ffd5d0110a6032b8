package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game     GameConfig     `toml:"game"`
	Loop     LoopConfig     `toml:"loop"`
	Display  DisplayConfig  `toml:"display"`
	Headless HeadlessConfig `toml:"headless"`
	Logging  LoggingConfig  `toml:"logging"`
}

type GameConfig struct {
	Title      string  `toml:"title"`
	SquareSize float64 `toml:"square_size"` // world units; also the half-width of the hit box
	EnemySpeed float64 `toml:"enemy_speed"` // world units per tick
	Seed       int64   `toml:"seed"`        // 0 = seed from the clock
}

type LoopConfig struct {
	TickRate   time.Duration `toml:"tick_rate"`
	FrameRate  time.Duration `toml:"frame_rate"`
	MaxCatchUp int           `toml:"max_catch_up"` // ticks per frame when behind
}

// Display modes.
const (
	ModeTerminal = "terminal"
	ModeHeadless = "headless"
)

type DisplayConfig struct {
	Mode       string  `toml:"mode"`        // "terminal" or "headless"
	CellWidth  float64 `toml:"cell_width"`  // world units per terminal column
	CellHeight float64 `toml:"cell_height"` // world units per terminal row
	Language   string  `toml:"language"`    // BCP 47 tag for score formatting
	Appearance string  `toml:"appearance"`  // yaml appearance table
}

type HeadlessConfig struct {
	Width          float64 `toml:"width"`
	Height         float64 `toml:"height"`
	MaxTicks       uint64  `toml:"max_ticks"` // 0 = run until interrupted
	MenuDelayTicks int     `toml:"menu_delay_ticks"`
	Script         string  `toml:"script"` // Lua autopilot
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	Output string `toml:"output"` // path; empty = stderr (forced to a file in terminal mode)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to the built-in defaults
// when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults(), nil
	}
	return cfg, err
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Game.SquareSize <= 0:
		return fmt.Errorf("game.square_size must be positive, got %v", c.Game.SquareSize)
	case c.Game.EnemySpeed <= 0:
		return fmt.Errorf("game.enemy_speed must be positive, got %v", c.Game.EnemySpeed)
	case c.Loop.TickRate <= 0:
		return fmt.Errorf("loop.tick_rate must be positive, got %s", c.Loop.TickRate)
	case c.Loop.FrameRate <= 0:
		return fmt.Errorf("loop.frame_rate must be positive, got %s", c.Loop.FrameRate)
	case c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0:
		return fmt.Errorf("display cell size must be positive, got %vx%v", c.Display.CellWidth, c.Display.CellHeight)
	}
	switch c.Display.Mode {
	case ModeTerminal:
	case ModeHeadless:
		if c.Headless.Width <= 0 || c.Headless.Height <= 0 {
			return fmt.Errorf("headless window must be positive, got %vx%v", c.Headless.Width, c.Headless.Height)
		}
	default:
		return fmt.Errorf("display.mode %q is not %q or %q", c.Display.Mode, ModeTerminal, ModeHeadless)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			Title:      "Square Game",
			SquareSize: 50,
			EnemySpeed: 4,
		},
		Loop: LoopConfig{
			TickRate:   time.Second / 64,
			FrameRate:  time.Second / 60,
			MaxCatchUp: 4,
		},
		Display: DisplayConfig{
			Mode:       ModeTerminal,
			CellWidth:  10,
			CellHeight: 20,
			Language:   "en",
			Appearance: "data/yaml/appearance.yaml",
		},
		Headless: HeadlessConfig{
			Width:          800,
			Height:         600,
			MaxTicks:       64 * 60,
			MenuDelayTicks: 32,
			Script:         "scripts/autopilot.lua",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "squares.log",
		},
	}
}
