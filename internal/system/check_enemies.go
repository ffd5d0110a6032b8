package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/squaregame/squares/internal/collision"
	"github.com/squaregame/squares/internal/core/event"
	coresys "github.com/squaregame/squares/internal/core/system"
	"github.com/squaregame/squares/internal/state"
	"github.com/squaregame/squares/internal/world"
)

// StateRequester accepts a transition request; it is applied between ticks.
type StateRequester interface {
	Request(next state.AppState)
}

// CheckEnemiesSystem ends the session when an enemy lies inside the
// player's box. Only the first hit is acted on. Phase 2 (Collision).
type CheckEnemiesSystem struct {
	world      *world.State
	states     StateRequester
	bus        *event.Bus
	squareSize float64
	log        *zap.Logger
}

func NewCheckEnemiesSystem(ws *world.State, states StateRequester, bus *event.Bus, squareSize float64, log *zap.Logger) *CheckEnemiesSystem {
	return &CheckEnemiesSystem{world: ws, states: states, bus: bus, squareSize: squareSize, log: log}
}

func (s *CheckEnemiesSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CheckEnemiesSystem) Update(_ time.Duration) error {
	player, err := s.world.Player()
	if err != nil {
		return err
	}
	ids, points := s.world.Enemies()
	hit := collision.FirstHit(player.Vec2, s.squareSize, points)
	if hit < 0 {
		return nil
	}
	s.log.Debug("enemy collision",
		zap.Float64("x", player.X),
		zap.Float64("y", player.Y),
	)
	s.states.Request(state.Menu)
	event.Emit(s.bus, event.EnemyCollided{Enemy: ids[hit], Player: player.Vec2})
	return nil
}
