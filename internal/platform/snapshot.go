package platform

import "github.com/squaregame/squares/internal/geom"

// Snapshot is a read-only copy of what a frontend needs to draw a frame.
type Snapshot struct {
	InGame     bool
	Tick       uint64
	Width      float64
	Height     float64
	SquareSize float64
	Player     geom.Vec2
	Food       geom.Vec2
	Enemies    []geom.Vec2
	Score      int
	ScoreText  string
}
