package game

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/message"

	"github.com/squaregame/squares/internal/component"
	"github.com/squaregame/squares/internal/core/event"
	coresys "github.com/squaregame/squares/internal/core/system"
	"github.com/squaregame/squares/internal/geom"
	"github.com/squaregame/squares/internal/platform"
	"github.com/squaregame/squares/internal/state"
	"github.com/squaregame/squares/internal/system"
	"github.com/squaregame/squares/internal/world"
)

// IO is the set of collaborators the simulation reads from and writes to.
type IO interface {
	platform.Window
	platform.Pointer
	platform.Button
	platform.ScoreDisplay
}

// Options tune the simulation.
type Options struct {
	SquareSize float64
	EnemySpeed float64
	Step       time.Duration
	Rand       *rand.Rand
	Printer    *message.Printer
}

// Game owns the entity store, the state machine and the per-tick systems.
// All methods must be called from the loop goroutine.
type Game struct {
	io      IO
	opts    Options
	world   *world.State
	machine *state.Machine
	bus     *event.Bus
	runner  *coresys.Runner
	cleanup *system.CleanupSystem
	log     *zap.Logger

	ticks        uint64
	sessionTicks uint64
}

func New(io IO, opts Options, log *zap.Logger) *Game {
	g := &Game{
		io:      io,
		opts:    opts,
		world:   world.NewState(),
		machine: state.NewMachine(log),
		bus:     event.NewBus(),
		runner:  coresys.NewRunner(),
		log:     log,
	}

	g.runner.Register(system.NewMovePlayerSystem(g.world, io))
	g.runner.Register(system.NewMoveEnemiesSystem(g.world, io))
	g.runner.Register(system.NewCheckEnemiesSystem(g.world, g.machine, g.bus, opts.SquareSize, log))
	g.runner.Register(system.NewCheckFoodSystem(g.world, io, g.bus, opts.Rand, opts.SquareSize))
	g.runner.Register(system.NewSpawnEnemySystem(g.world, io, g.bus, opts.Rand, opts.EnemySpeed, log))
	g.runner.Register(system.NewScoreDisplaySystem(g.world, io, opts.Printer))
	g.cleanup = system.NewCleanupSystem(g.world.ECS(), log)
	g.runner.Register(g.cleanup)

	g.machine.OnEnter(state.InGame, g.enterGame)
	g.machine.OnExit(state.InGame, g.exitGame)
	return g
}

func (g *Game) World() *world.State     { return g.world }
func (g *Game) Bus() *event.Bus         { return g.bus }
func (g *Game) State() state.AppState   { return g.machine.Current() }
func (g *Game) Machine() *state.Machine { return g.machine }
func (g *Game) Ticks() uint64           { return g.ticks }
func (g *Game) SessionTicks() uint64    { return g.sessionTicks }

// Tick advances the game by one fixed step: consume a menu activation and
// apply any pending transition; otherwise run the simulation if in a session.
// Events emitted during the tick are delivered to subscribers and cleared
// before Tick returns.
func (g *Game) Tick() error {
	defer g.bus.EndTick()
	g.ticks++

	// the button is polled every tick so a stale press never carries over
	if g.io.Activated() && g.machine.Current() == state.Menu {
		g.machine.Request(state.InGame)
	}
	applied, err := g.machine.Apply()
	if err != nil {
		return fmt.Errorf("apply transition: %w", err)
	}
	// a transition consumes the whole tick; simulation resumes on the next one
	if applied || g.machine.Current() != state.InGame {
		// entities queued by the exit hook are destroyed before any re-entry
		if err := g.runner.RunPhase(coresys.PhaseCleanup, g.opts.Step); err != nil {
			return fmt.Errorf("tick %d: %w", g.ticks, err)
		}
		return nil
	}

	g.sessionTicks++
	if err := g.runner.Tick(g.opts.Step); err != nil {
		return fmt.Errorf("tick %d: %w", g.ticks, err)
	}
	return nil
}

// Snapshot copies what a frontend needs to draw the current frame.
func (g *Game) Snapshot() platform.Snapshot {
	w, h, _ := g.io.Size()
	snap := platform.Snapshot{
		InGame:     g.machine.Current() == state.InGame,
		Tick:       g.ticks,
		Width:      w,
		Height:     h,
		SquareSize: g.opts.SquareSize,
		Score:      g.world.Score().Value(),
		ScoreText:  system.FormatScore(g.opts.Printer, g.world.Score().Value()),
	}
	if p, err := g.world.Player(); err == nil {
		snap.Player = p.Vec2
	}
	if f, err := g.world.Food(); err == nil {
		snap.Food = f.Vec2
	}
	_, snap.Enemies = g.world.Enemies()
	return snap
}

func (g *Game) enterGame() error {
	bounds, err := platform.Bounds(g.io)
	if err != nil {
		return fmt.Errorf("spawn food: %w", err)
	}
	g.sessionTicks = 0
	g.world.Spawn(component.KindPlayer, geom.Vec2{}, nil)
	food := geom.RandomPosition(g.opts.Rand, bounds)
	g.world.Spawn(component.KindFood, food, nil)

	g.log.Info("session started",
		zap.Float64("food_x", food.X),
		zap.Float64("food_y", food.Y),
	)
	event.Emit(g.bus, event.SessionStarted{Food: food})
	return nil
}

func (g *Game) exitGame() error {
	ended := event.SessionEnded{
		Score:   g.world.Score().Value(),
		Enemies: g.world.Count(component.KindEnemy),
		Ticks:   g.sessionTicks,
	}
	queued := g.world.QueueDespawn()
	g.world.Score().Reset()

	g.log.Info("session ended",
		zap.Int("score", ended.Score),
		zap.Int("enemies", ended.Enemies),
		zap.Uint64("ticks", ended.Ticks),
		zap.Int("queued", queued),
	)
	event.Emit(g.bus, ended)
	return nil
}
