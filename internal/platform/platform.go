// Package platform declares the collaborators the simulation talks to:
// the window, the pointer, the menu button and the score text. Frontends
// implement them; the game never reaches a device directly.
package platform

import (
	"errors"

	"github.com/squaregame/squares/internal/geom"
)

// ErrNoWindow is returned when the window size is needed but unknown.
// Spawn and bounce bounds cannot be derived without it.
var ErrNoWindow = errors.New("window geometry unavailable")

// Window reports the logical size of the play area in world units.
type Window interface {
	Size() (width, height float64, ok bool)
}

// Pointer reports the latest pointer position in world coordinates.
// ok is false while the pointer is outside the window.
type Pointer interface {
	Pointer() (pos geom.Vec2, ok bool)
}

// Button reports an activation of the menu's Play button. Each activation
// is reported exactly once.
type Button interface {
	Activated() bool
}

// ScoreDisplay receives the formatted score once per tick.
type ScoreDisplay interface {
	SetScore(text string)
}

// Frontend bundles every collaborator plus the frame hooks the loop drives.
type Frontend interface {
	Window
	Pointer
	Button
	ScoreDisplay

	// Pump processes pending device input. It returns true when the user
	// asked to quit.
	Pump() (quit bool)
	// Draw presents one frame.
	Draw(s Snapshot)
	Close() error
}

// Bounds reads the window size and converts it to play-area bounds.
func Bounds(w Window) (geom.Bounds, error) {
	width, height, ok := w.Size()
	if !ok || width <= 0 || height <= 0 {
		return geom.Bounds{}, ErrNoWindow
	}
	return geom.BoundsFromSize(width, height), nil
}
