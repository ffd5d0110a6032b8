package state

import (
	"fmt"

	"go.uber.org/zap"
)

// AppState is the top-level mode of the game.
type AppState int

const (
	Menu AppState = iota
	InGame
)

func (s AppState) String() string {
	switch s {
	case Menu:
		return "menu"
	case InGame:
		return "in_game"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Hook runs on a state boundary. An error stops the transition.
type Hook func() error

// Machine holds the current AppState and applies requested transitions at
// tick boundaries. Requests are latest-wins; requesting the current state
// clears any pending request. Apply runs every exit hook of the old state
// to completion before the first enter hook of the new one.
type Machine struct {
	current AppState
	next    AppState
	pending bool

	onEnter map[AppState][]Hook
	onExit  map[AppState][]Hook

	transitions uint64
	log         *zap.Logger
}

// NewMachine starts in Menu. Enter hooks of the initial state do not run.
func NewMachine(log *zap.Logger) *Machine {
	return &Machine{
		current: Menu,
		onEnter: make(map[AppState][]Hook),
		onExit:  make(map[AppState][]Hook),
		log:     log,
	}
}

func (m *Machine) Current() AppState { return m.current }

// Pending returns the requested next state, if any.
func (m *Machine) Pending() (AppState, bool) { return m.next, m.pending }

// Transitions counts applied transitions.
func (m *Machine) Transitions() uint64 { return m.transitions }

func (m *Machine) OnEnter(s AppState, h Hook) { m.onEnter[s] = append(m.onEnter[s], h) }
func (m *Machine) OnExit(s AppState, h Hook)  { m.onExit[s] = append(m.onExit[s], h) }

// Request schedules a transition for the next Apply.
func (m *Machine) Request(next AppState) {
	if next == m.current {
		m.pending = false
		return
	}
	m.next = next
	m.pending = true
}

// Apply performs the pending transition, if any, and reports whether one
// happened. The new state becomes current only after all of its enter hooks
// succeed; on any hook error the old state stays current and the request is
// dropped.
func (m *Machine) Apply() (bool, error) {
	if !m.pending {
		return false, nil
	}
	from, to := m.current, m.next
	m.pending = false

	for _, h := range m.onExit[from] {
		if err := h(); err != nil {
			return false, fmt.Errorf("exit %s: %w", from, err)
		}
	}
	for _, h := range m.onEnter[to] {
		if err := h(); err != nil {
			return false, fmt.Errorf("enter %s: %w", to, err)
		}
	}
	m.current = to
	m.transitions++
	m.log.Info("state transition",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	)
	return true, nil
}
