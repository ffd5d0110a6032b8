package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput     Phase = iota // 0: follow the pointer
	PhaseMovement               // 1: integrate + bounce
	PhaseCollision              // 2: player vs enemies
	PhasePickup                 // 3: player vs food
	PhaseSpawn                  // 4: react to pickups
	PhaseOutput                 // 5: push score text
	PhaseCleanup                // 6: destroy queued entities
)

var phaseNames = [...]string{"input", "movement", "collision", "pickup", "spawn", "output", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every simulation system implements.
// A returned error aborts the rest of the tick.
type System interface {
	Phase() Phase
	Update(dt time.Duration) error
}
