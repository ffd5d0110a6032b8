package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/squaregame/squares/internal/geom"
	"github.com/squaregame/squares/internal/platform"
)

// SteerFunc is the global Lua function the autopilot calls every tick.
const SteerFunc = "steer"

// Engine wraps a single gopher-lua VM for the headless autopilot.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and runs the script file at path.
func NewEngine(path string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoFile(path); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := e.checkSteer(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	log.Debug("loaded lua script", zap.String("file", path))
	return e, nil
}

// NewEngineFromSource is NewEngine for an in-memory script.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	if err := e.checkSteer(); err != nil {
		return nil, err
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

func (e *Engine) checkSteer() error {
	if e.vm.GetGlobal(SteerFunc).Type() != lua.LTFunction {
		e.vm.Close()
		return fmt.Errorf("lua function %s not defined", SteerFunc)
	}
	return nil
}

// Steer asks the script where the pointer should be. ok is false when the
// script returns nil (pointer outside the window) or fails; failures are
// logged, not returned, so a broken script only idles the player.
func (e *Engine) Steer(snap platform.Snapshot) (geom.Vec2, bool) {
	fn := e.vm.GetGlobal(SteerFunc)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    2,
		Protect: true,
	}, e.view(snap)); err != nil {
		e.log.Error("lua steer failed", zap.Error(err))
		return geom.Vec2{}, false
	}

	ry := e.vm.Get(-1)
	rx := e.vm.Get(-2)
	e.vm.Pop(2)

	x, okX := rx.(lua.LNumber)
	y, okY := ry.(lua.LNumber)
	if !okX || !okY {
		return geom.Vec2{}, false
	}
	return geom.Vec2{X: float64(x), Y: float64(y)}, true
}

func (e *Engine) view(snap platform.Snapshot) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("tick", lua.LNumber(snap.Tick))
	t.RawSetString("width", lua.LNumber(snap.Width))
	t.RawSetString("height", lua.LNumber(snap.Height))
	t.RawSetString("square", lua.LNumber(snap.SquareSize))
	t.RawSetString("score", lua.LNumber(snap.Score))
	t.RawSetString("in_game", lua.LBool(snap.InGame))
	t.RawSetString("player", e.point(snap.Player))
	t.RawSetString("food", e.point(snap.Food))

	enemies := e.vm.NewTable()
	for _, p := range snap.Enemies {
		enemies.Append(e.point(p))
	}
	t.RawSetString("enemies", enemies)
	return t
}

func (e *Engine) point(p geom.Vec2) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("x", lua.LNumber(p.X))
	t.RawSetString("y", lua.LNumber(p.Y))
	return t
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}
