package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/squaregame/squares/internal/component"
	"github.com/squaregame/squares/internal/core/ecs"
	"github.com/squaregame/squares/internal/core/event"
	"github.com/squaregame/squares/internal/geom"
	"github.com/squaregame/squares/internal/platform"
	"github.com/squaregame/squares/internal/state"
	"github.com/squaregame/squares/internal/world"
)

const squareSize = 50

type fakeWindow struct {
	w, h float64
	ok   bool
}

func (f *fakeWindow) Size() (float64, float64, bool) { return f.w, f.h, f.ok }

type fakePointer struct {
	pos geom.Vec2
	ok  bool
}

func (f *fakePointer) Pointer() (geom.Vec2, bool) { return f.pos, f.ok }

type fakeDisplay struct{ text string }

func (f *fakeDisplay) SetScore(text string) { f.text = text }

type fakeRequester struct{ requests []state.AppState }

func (f *fakeRequester) Request(next state.AppState) { f.requests = append(f.requests, next) }

func window800x600() *fakeWindow { return &fakeWindow{w: 800, h: 600, ok: true} }

func testRNG() *rand.Rand { return rand.New(rand.NewSource(12345)) }

func sessionWorld() *world.State {
	ws := world.NewState()
	ws.Spawn(component.KindPlayer, geom.Vec2{}, nil)
	ws.Spawn(component.KindFood, geom.Vec2{X: 300, Y: 200}, nil)
	return ws
}

func spawnEnemy(ws *world.State, pos, vel geom.Vec2) ecs.EntityID {
	return ws.Spawn(component.KindEnemy, pos, &vel)
}

func enemyState(t *testing.T, ws *world.State) (geom.Vec2, geom.Vec2) {
	t.Helper()
	var p, v geom.Vec2
	n := 0
	ws.EachEnemy(func(_ ecs.EntityID, pos *component.Position, vel *component.Velocity) {
		p, v = pos.Vec2, vel.Vec2
		n++
	})
	require.Equal(t, 1, n)
	return p, v
}

func TestMovePlayerFollowsPointer(t *testing.T) {
	ws := sessionWorld()
	ptr := &fakePointer{pos: geom.Vec2{X: 1000, Y: -900}, ok: true}
	sys := NewMovePlayerSystem(ws, ptr)

	require.NoError(t, sys.Update(time.Millisecond))
	p, _ := ws.Player()
	assert.Equal(t, geom.Vec2{X: 1000, Y: -900}, p.Vec2, "player is not clamped to the window")

	ptr.ok = false
	ptr.pos = geom.Vec2{}
	require.NoError(t, sys.Update(time.Millisecond))
	p, _ = ws.Player()
	assert.Equal(t, geom.Vec2{X: 1000, Y: -900}, p.Vec2, "no pointer leaves the player in place")
}

func TestMovePlayerWithoutPlayer(t *testing.T) {
	sys := NewMovePlayerSystem(world.NewState(), &fakePointer{ok: true})
	assert.ErrorIs(t, sys.Update(time.Millisecond), world.ErrMissingSingleton)
}

func TestMoveEnemiesBouncesOffRightEdge(t *testing.T) {
	ws := sessionWorld()
	spawnEnemy(ws, geom.Vec2{X: 399, Y: 0}, geom.Vec2{X: 3, Y: 0})
	sys := NewMoveEnemiesSystem(ws, window800x600())

	require.NoError(t, sys.Update(time.Millisecond))
	p, v := enemyState(t, ws)
	assert.Equal(t, geom.Vec2{X: 400, Y: 0}, p)
	assert.Equal(t, geom.Vec2{X: -3, Y: 0}, v)

	require.NoError(t, sys.Update(time.Millisecond))
	p, v = enemyState(t, ws)
	assert.Equal(t, geom.Vec2{X: 397, Y: 0}, p)
	assert.Equal(t, geom.Vec2{X: -3, Y: 0}, v)
}

func TestMoveEnemiesFlipsOnlyCrossedAxis(t *testing.T) {
	ws := sessionWorld()
	spawnEnemy(ws, geom.Vec2{X: 0, Y: -298}, geom.Vec2{X: 2, Y: -4})
	sys := NewMoveEnemiesSystem(ws, window800x600())

	require.NoError(t, sys.Update(time.Millisecond))
	p, v := enemyState(t, ws)
	assert.Equal(t, geom.Vec2{X: 2, Y: -300}, p)
	assert.Equal(t, geom.Vec2{X: 2, Y: 4}, v)
}

func TestMoveEnemiesStayInBounds(t *testing.T) {
	ws := sessionWorld()
	rng := testRNG()
	bounds := geom.BoundsFromSize(800, 600)
	for i := 0; i < 20; i++ {
		spawnEnemy(ws, geom.RandomPosition(rng, bounds), geom.RandomVelocity(rng, 4))
	}
	sys := NewMoveEnemiesSystem(ws, window800x600())

	for tick := 0; tick < 2000; tick++ {
		require.NoError(t, sys.Update(time.Millisecond))
		ws.EachEnemy(func(_ ecs.EntityID, p *component.Position, v *component.Velocity) {
			require.True(t, bounds.Contains(p.Vec2), "enemy escaped at tick %d: %+v", tick, p.Vec2)
			assert.InDelta(t, 4.0, v.Len(), 1e-9, "bouncing keeps speed")
		})
	}
}

func TestMoveEnemiesWithoutWindow(t *testing.T) {
	ws := sessionWorld()
	sys := NewMoveEnemiesSystem(ws, &fakeWindow{})
	assert.ErrorIs(t, sys.Update(time.Millisecond), platform.ErrNoWindow)
}

func TestCheckEnemiesRequestsMenuOnce(t *testing.T) {
	ws := sessionWorld()
	bus := event.NewBus()
	req := &fakeRequester{}
	sys := NewCheckEnemiesSystem(ws, req, bus, squareSize, zap.NewNop())

	spawnEnemy(ws, geom.Vec2{X: 300, Y: 0}, geom.Vec2{X: 1, Y: 1})
	require.NoError(t, sys.Update(time.Millisecond))
	assert.Empty(t, req.requests)

	spawnEnemy(ws, geom.Vec2{X: 20, Y: -40}, geom.Vec2{X: 1, Y: 1})
	spawnEnemy(ws, geom.Vec2{X: -10, Y: 5}, geom.Vec2{X: 1, Y: 1})
	require.NoError(t, sys.Update(time.Millisecond))
	assert.Equal(t, []state.AppState{state.Menu}, req.requests, "only the first hit is acted on")
	assert.Len(t, event.Drain[event.EnemyCollided](bus), 1)
}

func TestCheckFoodPickup(t *testing.T) {
	ws := world.NewState()
	ws.Spawn(component.KindPlayer, geom.Vec2{}, nil)
	ws.Spawn(component.KindFood, geom.Vec2{X: 10, Y: 10}, nil)
	bus := event.NewBus()
	sys := NewCheckFoodSystem(ws, window800x600(), bus, testRNG(), squareSize)

	require.NoError(t, sys.Update(time.Millisecond))

	assert.Equal(t, 1, ws.Score().Value())
	food, err := ws.Food()
	require.NoError(t, err)
	assert.NotEqual(t, geom.Vec2{X: 10, Y: 10}, food.Vec2)
	assert.True(t, geom.BoundsFromSize(800, 600).Contains(food.Vec2))

	eaten := event.Drain[event.FoodEaten](bus)
	require.Len(t, eaten, 1)
	assert.Equal(t, 1, eaten[0].Score)
	assert.Equal(t, geom.Vec2{X: 10, Y: 10}, eaten[0].At)
}

func TestCheckFoodNoOverlap(t *testing.T) {
	ws := sessionWorld()
	bus := event.NewBus()
	sys := NewCheckFoodSystem(ws, window800x600(), bus, testRNG(), squareSize)

	require.NoError(t, sys.Update(time.Millisecond))
	assert.Zero(t, ws.Score().Value())
	assert.Zero(t, event.Pending[event.FoodEaten](bus))
}

func TestCheckFoodWithoutFood(t *testing.T) {
	ws := world.NewState()
	ws.Spawn(component.KindPlayer, geom.Vec2{}, nil)
	sys := NewCheckFoodSystem(ws, window800x600(), event.NewBus(), testRNG(), squareSize)
	assert.ErrorIs(t, sys.Update(time.Millisecond), world.ErrMissingSingleton)
}

func TestSpawnEnemyOnePerPickupTick(t *testing.T) {
	ws := sessionWorld()
	bus := event.NewBus()
	sys := NewSpawnEnemySystem(ws, window800x600(), bus, testRNG(), 4, zap.NewNop())

	require.NoError(t, sys.Update(time.Millisecond))
	assert.Zero(t, ws.Count(component.KindEnemy), "no pickup, no enemy")

	event.Emit(bus, event.FoodEaten{Score: 1})
	require.NoError(t, sys.Update(time.Millisecond))
	assert.Equal(t, 1, ws.Count(component.KindEnemy))

	// the signal was consumed
	require.NoError(t, sys.Update(time.Millisecond))
	assert.Equal(t, 1, ws.Count(component.KindEnemy))

	p, v := enemyState(t, ws)
	assert.True(t, geom.BoundsFromSize(800, 600).Contains(p))
	assert.InDelta(t, 4.0, v.Len(), 1e-9)
	assert.Greater(t, v.X, 0.0)
	assert.Greater(t, v.Y, 0.0)

	spawned := event.Drain[event.EnemySpawned](bus)
	require.Len(t, spawned, 1)
	assert.Equal(t, 1, spawned[0].Total)
}

func TestSpawnEnemyWithoutWindow(t *testing.T) {
	ws := sessionWorld()
	bus := event.NewBus()
	event.Emit(bus, event.FoodEaten{Score: 1})
	sys := NewSpawnEnemySystem(ws, &fakeWindow{}, bus, testRNG(), 4, zap.NewNop())
	assert.ErrorIs(t, sys.Update(time.Millisecond), platform.ErrNoWindow)
}

func TestScoreDisplay(t *testing.T) {
	ws := sessionWorld()
	display := &fakeDisplay{}
	sys := NewScoreDisplaySystem(ws, display, message.NewPrinter(language.English))

	require.NoError(t, sys.Update(time.Millisecond))
	assert.Equal(t, "0", display.text)

	for i := 0; i < 1234; i++ {
		ws.Score().Inc()
	}
	require.NoError(t, sys.Update(time.Millisecond))
	assert.Equal(t, "1,234", display.text)
}

func TestCleanupFlushesQueue(t *testing.T) {
	ws := sessionWorld()
	v := geom.Vec2{X: 1}
	id := spawnEnemy(ws, geom.Vec2{}, v)
	ws.ECS().MarkForDestruction(id)

	sys := NewCleanupSystem(ws.ECS(), zap.NewNop())
	require.NoError(t, sys.Update(time.Millisecond))
	assert.False(t, ws.Alive(id))
	assert.Zero(t, ws.Count(component.KindEnemy))
	assert.Equal(t, uint64(1), sys.Destroyed())

	require.NoError(t, sys.Update(time.Millisecond))
	assert.Equal(t, uint64(1), sys.Destroyed(), "empty queue destroys nothing")
}
