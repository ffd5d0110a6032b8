package event

import (
	"github.com/squaregame/squares/internal/core/ecs"
	"github.com/squaregame/squares/internal/geom"
)

// FoodEaten is emitted once per pickup. The enemy spawner drains it.
type FoodEaten struct {
	Score int
	At    geom.Vec2
}

// EnemySpawned follows a FoodEaten in the same tick.
type EnemySpawned struct {
	Entity   ecs.EntityID
	Position geom.Vec2
	Velocity geom.Vec2
	Total    int
}

// EnemyCollided marks the tick on which the player touched an enemy.
type EnemyCollided struct {
	Enemy  ecs.EntityID
	Player geom.Vec2
}

// SessionStarted is emitted by the InGame enter hook.
type SessionStarted struct {
	Food geom.Vec2
}

// SessionEnded is emitted by the InGame exit hook with the pre-reset totals.
type SessionEnded struct {
	Score   int
	Enemies int
	Ticks   uint64
}
