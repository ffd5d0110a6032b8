package world

import (
	"errors"
	"fmt"

	"github.com/squaregame/squares/internal/component"
	"github.com/squaregame/squares/internal/core/ecs"
	"github.com/squaregame/squares/internal/geom"
)

// ErrMissingSingleton is returned when the player or the food entity is
// needed but the store does not hold exactly one of it. It means a system
// ran outside a session, which is an ordering bug rather than a game event.
var ErrMissingSingleton = errors.New("missing singleton entity")

// State is the entity store for one game process. It is accessed only from
// the game loop goroutine, so no locks are needed.
type State struct {
	ecs *ecs.World

	positions  *ecs.PtrComponentStore[component.Position]
	velocities *ecs.PtrComponentStore[component.Velocity]
	members    *ecs.PtrComponentStore[component.Member]
	players    *ecs.PtrComponentStore[component.Tag]
	foods      *ecs.PtrComponentStore[component.Tag]
	enemies    *ecs.PtrComponentStore[component.Tag]

	score Score
}

func NewState() *State {
	w := ecs.NewWorld()
	s := &State{
		ecs:        w,
		positions:  ecs.NewPtrComponentStore[component.Position](),
		velocities: ecs.NewPtrComponentStore[component.Velocity](),
		members:    ecs.NewPtrComponentStore[component.Member](),
		players:    ecs.NewPtrComponentStore[component.Tag](),
		foods:      ecs.NewPtrComponentStore[component.Tag](),
		enemies:    ecs.NewPtrComponentStore[component.Tag](),
	}
	w.Registry().Register(s.positions)
	w.Registry().Register(s.velocities)
	w.Registry().Register(s.members)
	w.Registry().Register(s.players)
	w.Registry().Register(s.foods)
	w.Registry().Register(s.enemies)
	return s
}

// ECS exposes the underlying world for the cleanup system.
func (s *State) ECS() *ecs.World { return s.ecs }

// Score is the process-wide score counter.
func (s *State) Score() *Score { return &s.score }

// Spawn creates a session entity of the given kind. vel may be nil for
// entities that do not move on their own.
func (s *State) Spawn(kind component.Kind, pos geom.Vec2, vel *geom.Vec2) ecs.EntityID {
	id := s.ecs.CreateEntity()
	s.positions.Set(id, &component.Position{Vec2: pos})
	if vel != nil {
		s.velocities.Set(id, &component.Velocity{Vec2: *vel})
	}
	s.members.Set(id, &component.Member{Kind: kind})
	if tags := s.tagStore(kind); tags != nil {
		tags.Set(id, &component.Tag{})
	}
	return id
}

// QueueDespawn marks every session entity for destruction and returns how
// many were queued. They stay alive until the destroy queue is flushed.
func (s *State) QueueDespawn() int {
	ids := s.members.IDs()
	for _, id := range ids {
		s.ecs.MarkForDestruction(id)
	}
	return len(ids)
}

func (s *State) Alive(id ecs.EntityID) bool {
	return s.ecs.Alive(id)
}

// Count returns the number of live entities of a kind.
func (s *State) Count(kind component.Kind) int {
	if tags := s.tagStore(kind); tags != nil {
		return tags.Len()
	}
	return 0
}

// Members returns the number of live session entities.
func (s *State) Members() int {
	return s.members.Len()
}

// Player returns the player's position for in-place update.
func (s *State) Player() (*component.Position, error) {
	return s.single(component.KindPlayer, s.players)
}

// Food returns the food's position for in-place update.
func (s *State) Food() (*component.Position, error) {
	return s.single(component.KindFood, s.foods)
}

// EachEnemy visits every enemy with mutable position and velocity.
func (s *State) EachEnemy(fn func(ecs.EntityID, *component.Position, *component.Velocity)) {
	ecs.Each3(s.enemies, s.positions, s.velocities, func(id ecs.EntityID, _ *component.Tag, p *component.Position, v *component.Velocity) {
		fn(id, p, v)
	})
}

// Enemies returns a copy of all enemy positions with their handles.
func (s *State) Enemies() ([]ecs.EntityID, []geom.Vec2) {
	ids := make([]ecs.EntityID, 0, s.enemies.Len())
	points := make([]geom.Vec2, 0, s.enemies.Len())
	ecs.Each2(s.enemies, s.positions, func(id ecs.EntityID, _ *component.Tag, p *component.Position) {
		ids = append(ids, id)
		points = append(points, p.Vec2)
	})
	return ids, points
}

func (s *State) single(kind component.Kind, tags *ecs.PtrComponentStore[component.Tag]) (*component.Position, error) {
	id, _, ok := tags.Single()
	if !ok {
		return nil, fmt.Errorf("%s (have %d): %w", kind, tags.Len(), ErrMissingSingleton)
	}
	pos, ok := s.positions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%s has no position: %w", kind, ErrMissingSingleton)
	}
	return pos, nil
}

func (s *State) tagStore(kind component.Kind) *ecs.PtrComponentStore[component.Tag] {
	switch kind {
	case component.KindPlayer:
		return s.players
	case component.KindFood:
		return s.foods
	case component.KindEnemy:
		return s.enemies
	}
	return nil
}
