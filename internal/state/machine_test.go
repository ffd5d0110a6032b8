package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMachineStartsInMenu(t *testing.T) {
	m := NewMachine(zap.NewNop())
	assert.Equal(t, Menu, m.Current())
	applied, err := m.Apply()
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestExitHooksCompleteBeforeEnterHooks(t *testing.T) {
	m := NewMachine(zap.NewNop())
	var order []string
	m.OnExit(Menu, func() error { order = append(order, "exit menu 1"); return nil })
	m.OnExit(Menu, func() error { order = append(order, "exit menu 2"); return nil })
	m.OnEnter(InGame, func() error { order = append(order, "enter game"); return nil })
	m.OnExit(InGame, func() error { order = append(order, "exit game"); return nil })
	m.OnEnter(Menu, func() error { order = append(order, "enter menu"); return nil })

	m.Request(InGame)
	assert.Equal(t, Menu, m.Current(), "request is deferred to Apply")
	applied, err := m.Apply()
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, InGame, m.Current())

	m.Request(Menu)
	_, err = m.Apply()
	require.NoError(t, err)

	assert.Equal(t, []string{"exit menu 1", "exit menu 2", "enter game", "exit game", "enter menu"}, order)
	assert.Equal(t, uint64(2), m.Transitions())
}

func TestHooksRunOncePerTransition(t *testing.T) {
	m := NewMachine(zap.NewNop())
	enters := 0
	m.OnEnter(InGame, func() error { enters++; return nil })

	m.Request(InGame)
	m.Request(InGame)
	_, _ = m.Apply()
	_, _ = m.Apply()
	assert.Equal(t, 1, enters)
}

func TestSelfTransitionIgnored(t *testing.T) {
	m := NewMachine(zap.NewNop())
	exits := 0
	m.OnExit(Menu, func() error { exits++; return nil })

	m.Request(Menu)
	_, pending := m.Pending()
	assert.False(t, pending)

	m.Request(InGame)
	m.Request(Menu) // cancels
	applied, err := m.Apply()
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Zero(t, exits)
}

func TestHookErrors(t *testing.T) {
	boom := errors.New("boom")

	m := NewMachine(zap.NewNop())
	m.OnExit(Menu, func() error { return boom })
	m.Request(InGame)
	applied, err := m.Apply()
	require.ErrorIs(t, err, boom)
	assert.False(t, applied)
	assert.Equal(t, Menu, m.Current())

	m = NewMachine(zap.NewNop())
	m.OnEnter(InGame, func() error { return boom })
	m.Request(InGame)
	applied, err = m.Apply()
	require.ErrorIs(t, err, boom)
	assert.False(t, applied)
	assert.Equal(t, Menu, m.Current(), "failed entry keeps the old state")
	assert.Zero(t, m.Transitions())
	_, pending := m.Pending()
	assert.False(t, pending, "failed request is dropped")
}

func TestAppStateString(t *testing.T) {
	assert.Equal(t, "menu", Menu.String())
	assert.Equal(t, "in_game", InGame.String())
	assert.Equal(t, "state(7)", AppState(7).String())
}
