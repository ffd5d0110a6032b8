package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/squaregame/squares/internal/core/ecs"
	coresys "github.com/squaregame/squares/internal/core/system"
)

// CleanupSystem flushes the deferred entity destruction queue. It runs at
// the end of every simulated tick and on every tick that skips the
// simulation, so a session's entities are gone before the next one starts.
// Phase 6 (Cleanup).
type CleanupSystem struct {
	world     *ecs.World
	log       *zap.Logger
	destroyed uint64
}

func NewCleanupSystem(world *ecs.World, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: world, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

// Destroyed counts entities removed since creation.
func (s *CleanupSystem) Destroyed() uint64 { return s.destroyed }

func (s *CleanupSystem) Update(_ time.Duration) error {
	if s.world.Pending() == 0 {
		return nil
	}
	n := s.world.FlushDestroyQueue()
	s.destroyed += uint64(n)
	s.log.Debug("entities destroyed", zap.Int("count", n))
	return nil
}
