// Package terminal draws the game in a terminal with tcell. Each cell maps
// to a fixed rectangle of world units so the play area follows the terminal
// size, and the mouse steers the player.
package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/squaregame/squares/internal/component"
	"github.com/squaregame/squares/internal/config"
	"github.com/squaregame/squares/internal/data"
	"github.com/squaregame/squares/internal/geom"
	"github.com/squaregame/squares/internal/platform"
)

type buttonState int

const (
	buttonNormal buttonState = iota
	buttonHovered
	buttonPressed
)

// Frontend implements platform.Frontend on a tcell screen.
// Everything except the event reader runs on the loop goroutine.
type Frontend struct {
	screen tcell.Screen
	look   *data.AppearanceTable
	title  string
	cellW  float64
	cellH  float64

	events chan tcell.Event
	done   chan struct{}

	pointer   geom.Vec2
	pointerOK bool
	buttons   tcell.ButtonMask
	button    buttonState
	activated bool
	inMenu    bool
	score     string

	entityStyles map[component.Kind]entityStyle
}

type entityStyle struct {
	glyph rune
	style tcell.Style
}

// New initialises screen and starts reading its events.
func New(screen tcell.Screen, look *data.AppearanceTable, cfg config.DisplayConfig, title string) (*Frontend, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	screen.Clear()

	f := &Frontend{
		screen:       screen,
		look:         look,
		title:        title,
		cellW:        cfg.CellWidth,
		cellH:        cfg.CellHeight,
		events:       make(chan tcell.Event, 256),
		done:         make(chan struct{}),
		inMenu:       true,
		entityStyles: make(map[component.Kind]entityStyle, 3),
	}
	for _, kind := range []component.Kind{component.KindPlayer, component.KindFood, component.KindEnemy} {
		l := look.Entity(kind)
		glyph := []rune(l.Glyph)[0]
		c := tcell.GetColor(l.Color)
		f.entityStyles[kind] = entityStyle{
			glyph: glyph,
			style: tcell.StyleDefault.Foreground(c).Background(tcell.ColorReset),
		}
	}
	go f.readEvents()
	return f, nil
}

var _ platform.Frontend = (*Frontend)(nil)

func (f *Frontend) readEvents() {
	for {
		ev := f.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case f.events <- ev:
		case <-f.done:
			return
		}
	}
}

// Size is the terminal size in world units.
func (f *Frontend) Size() (float64, float64, bool) {
	cols, rows := f.screen.Size()
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	return float64(cols) * f.cellW, float64(rows) * f.cellH, true
}

func (f *Frontend) Pointer() (geom.Vec2, bool) {
	return f.pointer, f.pointerOK
}

func (f *Frontend) Activated() bool {
	a := f.activated
	f.activated = false
	return a
}

func (f *Frontend) SetScore(text string) {
	f.score = text
}

// Pump drains queued events without blocking.
func (f *Frontend) Pump() bool {
	for {
		select {
		case ev := <-f.events:
			if f.HandleEvent(ev) {
				return true
			}
		default:
			return false
		}
	}
}

// HandleEvent applies one terminal event and reports whether it asks to quit.
func (f *Frontend) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyEnter:
			f.activate()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case ' ':
				f.activate()
			}
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		f.pointer = f.cellToWorld(col, row)
		f.pointerOK = true

		buttons := ev.Buttons()
		down := buttons&tcell.Button1 != 0
		wasDown := f.buttons&tcell.Button1 != 0
		f.buttons = buttons

		over := f.inMenu && f.overButton(col, row)
		switch {
		case over && down:
			f.button = buttonPressed
			if !wasDown {
				f.activate()
			}
		case over:
			f.button = buttonHovered
		default:
			f.button = buttonNormal
		}
	case *tcell.EventFocus:
		if !ev.Focused {
			f.pointerOK = false
			f.button = buttonNormal
		}
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return false
}

func (f *Frontend) activate() {
	if f.inMenu {
		f.activated = true
	}
}

// Draw presents one frame.
func (f *Frontend) Draw(snap platform.Snapshot) {
	f.inMenu = !snap.InGame
	f.screen.Clear()
	if snap.InGame {
		f.drawSquare(snap, snap.Food, component.KindFood)
		for _, e := range snap.Enemies {
			f.drawSquare(snap, e, component.KindEnemy)
		}
		f.drawSquare(snap, snap.Player, component.KindPlayer)
		f.drawScore()
	} else {
		f.drawMenu()
	}
	f.screen.Show()
}

func (f *Frontend) Close() error {
	close(f.done)
	f.screen.Fini()
	return nil
}

func (f *Frontend) cellToWorld(col, row int) geom.Vec2 {
	w, h, _ := f.Size()
	return geom.Vec2{
		X: (float64(col)+0.5)*f.cellW - w/2,
		Y: h/2 - (float64(row)+0.5)*f.cellH,
	}
}

func (f *Frontend) worldToCell(p geom.Vec2) (int, int) {
	w, h, _ := f.Size()
	col := int(math.Floor((p.X + w/2) / f.cellW))
	row := int(math.Floor((h/2 - p.Y) / f.cellH))
	return col, row
}

// drawSquare fills every cell the square touches, clipped to the screen.
func (f *Frontend) drawSquare(snap platform.Snapshot, center geom.Vec2, kind component.Kind) {
	const eps = 1e-9
	half := snap.SquareSize / 2
	left, top := f.worldToCell(geom.Vec2{X: center.X - half, Y: center.Y + half})
	right, bottom := f.worldToCell(geom.Vec2{X: center.X + half - eps, Y: center.Y - half + eps})

	cols, rows := f.screen.Size()
	es := f.entityStyles[kind]
	for row := max(top, 0); row <= min(bottom, rows-1); row++ {
		for col := max(left, 0); col <= min(right, cols-1); col++ {
			f.screen.SetContent(col, row, es.glyph, nil, es.style)
		}
	}
}

func (f *Frontend) drawScore() {
	s := f.look.Score
	col := f.drawText(0, 0, s.Label, tcell.StyleDefault.Foreground(tcell.GetColor(s.LabelColor)))
	f.drawText(col, 0, f.score, tcell.StyleDefault.Foreground(tcell.GetColor(s.ValueColor)))
}

func (f *Frontend) buttonRect() (x, y, w, h int) {
	cols, rows := f.screen.Size()
	w, h = f.look.Button.Width, f.look.Button.Height
	return (cols - w) / 2, (rows - h) / 2, w, h
}

func (f *Frontend) overButton(col, row int) bool {
	x, y, w, h := f.buttonRect()
	return col >= x && col < x+w && row >= y && row < y+h
}

func (f *Frontend) drawMenu() {
	b := f.look.Button
	x, y, w, h := f.buttonRect()

	cols, _ := f.screen.Size()
	titleRunes := []rune(f.title)
	f.drawText((cols-len(titleRunes))/2, max(y-2, 0), f.title, tcell.StyleDefault.Bold(true))

	bg := b.Normal
	switch f.button {
	case buttonHovered:
		bg = b.Hovered
	case buttonPressed:
		bg = b.Pressed
	}
	style := tcell.StyleDefault.Background(tcell.GetColor(bg)).Foreground(tcell.GetColor(b.Text))
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			f.screen.SetContent(col, row, ' ', nil, style)
		}
	}
	label := []rune(b.Label)
	f.drawText(x+(w-len(label))/2, y+h/2, b.Label, style)
}

// drawText writes s starting at col and returns the column after it.
func (f *Frontend) drawText(col, row int, s string, style tcell.Style) int {
	for _, r := range s {
		f.screen.SetContent(col, row, r, nil, style)
		col++
	}
	return col
}
