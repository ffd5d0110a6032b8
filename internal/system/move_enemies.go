package system

import (
	"time"

	"github.com/squaregame/squares/internal/component"
	"github.com/squaregame/squares/internal/core/ecs"
	coresys "github.com/squaregame/squares/internal/core/system"
	"github.com/squaregame/squares/internal/geom"
	"github.com/squaregame/squares/internal/platform"
	"github.com/squaregame/squares/internal/world"
)

// MoveEnemiesSystem integrates enemy velocity, then bounces enemies off the
// window edges: the position is clamped to the edge and the velocity
// component of that axis is inverted. Phase 1 (Movement).
type MoveEnemiesSystem struct {
	world  *world.State
	window platform.Window
}

func NewMoveEnemiesSystem(ws *world.State, window platform.Window) *MoveEnemiesSystem {
	return &MoveEnemiesSystem{world: ws, window: window}
}

func (s *MoveEnemiesSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MoveEnemiesSystem) Update(_ time.Duration) error {
	bounds, err := platform.Bounds(s.window)
	if err != nil {
		return err
	}
	s.world.EachEnemy(func(_ ecs.EntityID, p *component.Position, v *component.Velocity) {
		next := geom.Integrate(p.Vec2, v.Vec2)
		p.Vec2, v.Vec2 = geom.Bounce(next, v.Vec2, bounds)
	})
	return nil
}
