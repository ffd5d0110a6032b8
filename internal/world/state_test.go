package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squaregame/squares/internal/component"
	"github.com/squaregame/squares/internal/core/ecs"
	"github.com/squaregame/squares/internal/geom"
)

func TestSpawnAndIterateByKind(t *testing.T) {
	s := NewState()
	s.Spawn(component.KindPlayer, geom.Vec2{}, nil)
	s.Spawn(component.KindFood, geom.Vec2{X: 10, Y: 10}, nil)
	v := geom.Vec2{X: 3, Y: 0}
	s.Spawn(component.KindEnemy, geom.Vec2{X: 100}, &v)
	s.Spawn(component.KindEnemy, geom.Vec2{X: -100}, &v)

	assert.Equal(t, 1, s.Count(component.KindPlayer))
	assert.Equal(t, 1, s.Count(component.KindFood))
	assert.Equal(t, 2, s.Count(component.KindEnemy))
	assert.Equal(t, 4, s.Members())

	food, err := s.Food()
	require.NoError(t, err)
	assert.Equal(t, geom.Vec2{X: 10, Y: 10}, food.Vec2)

	s.EachEnemy(func(_ ecs.EntityID, p *component.Position, v *component.Velocity) {
		p.Vec2 = p.Add(v.Vec2)
	})
	_, points := s.Enemies()
	assert.ElementsMatch(t, []geom.Vec2{{X: 103}, {X: -97}}, points)
}

func TestSingletonMutationIsInPlace(t *testing.T) {
	s := NewState()
	s.Spawn(component.KindPlayer, geom.Vec2{}, nil)

	p, err := s.Player()
	require.NoError(t, err)
	p.Vec2 = geom.Vec2{X: 7, Y: -7}

	again, err := s.Player()
	require.NoError(t, err)
	assert.Equal(t, geom.Vec2{X: 7, Y: -7}, again.Vec2)
}

func TestMissingSingleton(t *testing.T) {
	s := NewState()
	_, err := s.Player()
	assert.ErrorIs(t, err, ErrMissingSingleton)
	assert.Contains(t, err.Error(), "player")

	_, err = s.Food()
	assert.ErrorIs(t, err, ErrMissingSingleton)

	s.Spawn(component.KindFood, geom.Vec2{}, nil)
	s.Spawn(component.KindFood, geom.Vec2{}, nil)
	_, err = s.Food()
	assert.ErrorIs(t, err, ErrMissingSingleton, "two foods is not a singleton")
}

func TestQueueDespawnInvalidatesHandlesOnFlush(t *testing.T) {
	s := NewState()
	player := s.Spawn(component.KindPlayer, geom.Vec2{}, nil)
	v := geom.Vec2{X: 1, Y: 1}
	enemy := s.Spawn(component.KindEnemy, geom.Vec2{}, &v)

	assert.Equal(t, 2, s.QueueDespawn())
	assert.True(t, s.Alive(player), "queued entities live until the flush")
	assert.Equal(t, 2, s.Members())

	assert.Equal(t, 2, s.ECS().FlushDestroyQueue())
	assert.False(t, s.Alive(player))
	assert.False(t, s.Alive(enemy))
	assert.Zero(t, s.Members())
	assert.Zero(t, s.Count(component.KindEnemy))

	n := 0
	s.EachEnemy(func(ecs.EntityID, *component.Position, *component.Velocity) { n++ })
	assert.Zero(t, n)

	// recycled slot must not revive the old handle
	fresh := s.Spawn(component.KindPlayer, geom.Vec2{}, nil)
	assert.True(t, s.Alive(fresh))
	assert.False(t, s.Alive(player))
}

func TestScore(t *testing.T) {
	s := NewState()
	assert.Zero(t, s.Score().Value())
	assert.Equal(t, 1, s.Score().Inc())
	assert.Equal(t, 2, s.Score().Inc())
	s.Score().Reset()
	assert.Zero(t, s.Score().Value())
}
