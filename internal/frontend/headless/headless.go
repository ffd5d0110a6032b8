// Package headless runs the game without a display. A Lua autopilot plays
// in place of the pointer, the Play button is pressed after a short delay
// in the menu, and the run stops after a fixed number of ticks.
package headless

import (
	"go.uber.org/zap"

	"github.com/squaregame/squares/internal/config"
	"github.com/squaregame/squares/internal/geom"
	"github.com/squaregame/squares/internal/platform"
)

// Pilot decides where the pointer goes from the last drawn frame.
type Pilot interface {
	Steer(snap platform.Snapshot) (geom.Vec2, bool)
}

type Frontend struct {
	width     float64
	height    float64
	maxTicks  uint64
	menuDelay int
	pilot     Pilot
	log       *zap.Logger

	last      platform.Snapshot
	menuTicks int
	pressed   bool
	score     string
}

func New(cfg config.HeadlessConfig, pilot Pilot, log *zap.Logger) *Frontend {
	return &Frontend{
		width:     cfg.Width,
		height:    cfg.Height,
		maxTicks:  cfg.MaxTicks,
		menuDelay: cfg.MenuDelayTicks,
		pilot:     pilot,
		log:       log,
	}
}

var _ platform.Frontend = (*Frontend)(nil)

func (f *Frontend) Size() (float64, float64, bool) {
	return f.width, f.height, f.width > 0 && f.height > 0
}

func (f *Frontend) Pointer() (geom.Vec2, bool) {
	if f.pilot == nil {
		return geom.Vec2{}, false
	}
	return f.pilot.Steer(f.last)
}

func (f *Frontend) Activated() bool {
	pressed := f.pressed
	f.pressed = false
	return pressed
}

func (f *Frontend) SetScore(text string) {
	if text != f.score {
		f.log.Debug("score", zap.String("value", text))
	}
	f.score = text
}

// Score is the last text pushed by the simulation.
func (f *Frontend) Score() string { return f.score }

func (f *Frontend) Pump() bool {
	return f.maxTicks > 0 && f.last.Tick >= f.maxTicks
}

// Draw records the frame for the pilot and counts frames spent in the menu.
func (f *Frontend) Draw(snap platform.Snapshot) {
	f.last = snap

	if snap.InGame {
		f.menuTicks = 0
		return
	}
	f.menuTicks++
	if f.menuTicks > f.menuDelay {
		f.pressed = true
		f.menuTicks = 0
	}
}

func (f *Frontend) Close() error { return nil }
