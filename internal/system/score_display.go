package system

import (
	"time"

	"golang.org/x/text/message"

	coresys "github.com/squaregame/squares/internal/core/system"
	"github.com/squaregame/squares/internal/platform"
	"github.com/squaregame/squares/internal/world"
)

// ScoreDisplaySystem pushes the score, formatted for the configured locale,
// to the text display. Phase 5 (Output).
type ScoreDisplaySystem struct {
	world   *world.State
	display platform.ScoreDisplay
	printer *message.Printer
}

func NewScoreDisplaySystem(ws *world.State, display platform.ScoreDisplay, printer *message.Printer) *ScoreDisplaySystem {
	return &ScoreDisplaySystem{world: ws, display: display, printer: printer}
}

func (s *ScoreDisplaySystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *ScoreDisplaySystem) Update(_ time.Duration) error {
	s.display.SetScore(FormatScore(s.printer, s.world.Score().Value()))
	return nil
}

// FormatScore renders a score with the printer's digit grouping.
func FormatScore(p *message.Printer, score int) string {
	return p.Sprintf("%d", score)
}
