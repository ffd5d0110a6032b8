package system

import (
	"math/rand"
	"time"

	"github.com/squaregame/squares/internal/collision"
	"github.com/squaregame/squares/internal/core/event"
	coresys "github.com/squaregame/squares/internal/core/system"
	"github.com/squaregame/squares/internal/geom"
	"github.com/squaregame/squares/internal/platform"
	"github.com/squaregame/squares/internal/world"
)

// CheckFoodSystem handles pickups: when the food is inside the player's box
// it moves to a fresh random spot, the score goes up by one and FoodEaten is
// emitted. The food moves in the same tick, so one overlap is one pickup.
// Phase 3 (Pickup).
type CheckFoodSystem struct {
	world      *world.State
	window     platform.Window
	bus        *event.Bus
	rng        *rand.Rand
	squareSize float64
}

func NewCheckFoodSystem(ws *world.State, window platform.Window, bus *event.Bus, rng *rand.Rand, squareSize float64) *CheckFoodSystem {
	return &CheckFoodSystem{world: ws, window: window, bus: bus, rng: rng, squareSize: squareSize}
}

func (s *CheckFoodSystem) Phase() coresys.Phase { return coresys.PhasePickup }

func (s *CheckFoodSystem) Update(_ time.Duration) error {
	player, err := s.world.Player()
	if err != nil {
		return err
	}
	food, err := s.world.Food()
	if err != nil {
		return err
	}
	if !collision.Contains(player.Vec2, s.squareSize, food.Vec2) {
		return nil
	}
	bounds, err := platform.Bounds(s.window)
	if err != nil {
		return err
	}
	eatenAt := food.Vec2
	food.Vec2 = geom.RandomPosition(s.rng, bounds)
	score := s.world.Score().Inc()
	event.Emit(s.bus, event.FoodEaten{Score: score, At: eatenAt})
	return nil
}
