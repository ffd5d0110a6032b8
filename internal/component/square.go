package component

import "github.com/squaregame/squares/internal/geom"

// Kind names the role of a game entity.
type Kind int

const (
	KindPlayer Kind = iota
	KindFood
	KindEnemy
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindFood:
		return "food"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Position is the centre of an entity's square in world units.
// Pure data; systems do all mutation.
type Position struct {
	geom.Vec2
}

// Velocity is the displacement applied to Position every tick.
type Velocity struct {
	geom.Vec2
}

// Tag marks kind membership. Tag stores only care about presence.
type Tag struct{}

// Member marks entities owned by a game session; leaving InGame despawns
// every entity that carries it.
type Member struct {
	Kind Kind
}
