package system

import (
	"time"

	coresys "github.com/squaregame/squares/internal/core/system"
	"github.com/squaregame/squares/internal/platform"
	"github.com/squaregame/squares/internal/world"
)

// MovePlayerSystem snaps the player to the pointer. The player is not
// clamped to the window. Phase 0 (Input).
type MovePlayerSystem struct {
	world   *world.State
	pointer platform.Pointer
}

func NewMovePlayerSystem(ws *world.State, pointer platform.Pointer) *MovePlayerSystem {
	return &MovePlayerSystem{world: ws, pointer: pointer}
}

func (s *MovePlayerSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *MovePlayerSystem) Update(_ time.Duration) error {
	player, err := s.world.Player()
	if err != nil {
		return err
	}
	if pos, ok := s.pointer.Pointer(); ok {
		player.Vec2 = pos
	}
	return nil
}
