package system

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/squaregame/squares/internal/component"
	"github.com/squaregame/squares/internal/core/event"
	coresys "github.com/squaregame/squares/internal/core/system"
	"github.com/squaregame/squares/internal/geom"
	"github.com/squaregame/squares/internal/platform"
	"github.com/squaregame/squares/internal/world"
)

// SpawnEnemySystem adds one enemy on every tick that had a pickup, at a
// random spot with a random first-quadrant velocity of fixed speed.
// Phase 4 (Spawn).
type SpawnEnemySystem struct {
	world  *world.State
	window platform.Window
	bus    *event.Bus
	rng    *rand.Rand
	speed  float64
	log    *zap.Logger
}

func NewSpawnEnemySystem(ws *world.State, window platform.Window, bus *event.Bus, rng *rand.Rand, speed float64, log *zap.Logger) *SpawnEnemySystem {
	return &SpawnEnemySystem{world: ws, window: window, bus: bus, rng: rng, speed: speed, log: log}
}

func (s *SpawnEnemySystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnEnemySystem) Update(_ time.Duration) error {
	if len(event.Drain[event.FoodEaten](s.bus)) == 0 {
		return nil
	}
	bounds, err := platform.Bounds(s.window)
	if err != nil {
		return err
	}
	pos := geom.RandomPosition(s.rng, bounds)
	vel := geom.RandomVelocity(s.rng, s.speed)
	id := s.world.Spawn(component.KindEnemy, pos, &vel)
	total := s.world.Count(component.KindEnemy)

	s.log.Debug("enemy spawned",
		zap.Int("total", total),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
	)
	event.Emit(s.bus, event.EnemySpawned{Entity: id, Position: pos, Velocity: vel, Total: total})
	return nil
}
