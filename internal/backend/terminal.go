package backend

import (
	"sync"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/holdrec/internal/input/mouse"
)

const heldButtons = tcell.Button1 | tcell.Button2 | tcell.Button3

// Terminal reads pointer input from and draws status lines to a tcell screen.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex

	// buttons is the mask of the previous mouse event, used to tell
	// presses, drags and releases apart.
	buttons tcell.ButtonMask
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewSimulationTerminal creates a terminal over an in-memory screen.
func NewSimulationTerminal() (*Terminal, tcell.SimulationScreen) {
	screen := tcell.NewSimulationScreen("UTF-8")
	return &Terminal{screen: screen}, screen
}

// Init initializes the screen and enables mouse reporting.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	// Drag events are needed to follow the held button.
	t.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	t.screen.HideCursor()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// PollEvent blocks for the next event.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		// Screen finalized
		return Event{Type: EventInterrupt}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.convertEvent(ev)
}

// Interrupt wakes a blocked PollEvent.
func (t *Terminal) Interrupt() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort; queue may be full
}

// DrawLines clears the screen and writes one string per row.
func (t *Terminal) DrawLines(lines []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	width, height := t.screen.Size()
	style := tcell.StyleDefault

	for y, line := range lines {
		if y >= height {
			break
		}
		x := 0
		for len(line) > 0 && x < width {
			r, size := utf8.DecodeRuneInString(line)
			t.screen.SetContent(x, y, r, nil, style)
			line = line[size:]
			x++
		}
	}
	t.screen.Show()
}

// convertEvent converts tcell events to our Event type. Must hold t.mu.
func (t *Terminal) convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e),
			Rune: e.Rune(),
		}

	case *tcell.EventMouse:
		return Event{
			Type:  EventMouse,
			Mouse: t.convertMouse(e),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}

	default:
		return Event{Type: EventNone}
	}
}

// convertMouse derives the action from the change of the held buttons.
// Wheel bits are ignored.
func (t *Terminal) convertMouse(e *tcell.EventMouse) mouse.Event {
	x, y := e.Position()
	cur := e.Buttons() & heldButtons
	prev := t.buttons
	t.buttons = cur

	ev := mouse.Event{
		Position:  mouse.Position{X: x, Y: y},
		Timestamp: e.When(),
	}

	switch {
	case prev == 0 && cur != 0:
		ev.Action = mouse.ActionPress
		ev.Button = convertMouseButton(cur)
	case prev != 0 && cur != 0:
		ev.Action = mouse.ActionDrag
		ev.Button = convertMouseButton(prev)
	case prev != 0 && cur == 0:
		ev.Action = mouse.ActionRelease
		ev.Button = convertMouseButton(prev)
	default:
		ev.Action = mouse.ActionMove
	}
	return ev
}

// convertMouseButton converts a tcell button mask to a single button.
func convertMouseButton(b tcell.ButtonMask) mouse.Button {
	switch {
	case b&tcell.Button1 != 0:
		return mouse.ButtonLeft
	case b&tcell.Button2 != 0:
		return mouse.ButtonRight
	case b&tcell.Button3 != 0:
		return mouse.ButtonMiddle
	default:
		return mouse.ButtonNone
	}
}

// convertKey maps the keys the front end uses.
func convertKey(e *tcell.EventKey) Key {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyQuit
	case tcell.KeyRune:
		switch e.Rune() {
		case 'q', 'Q':
			return KeyQuit
		case 's', 'S':
			return KeyStop
		}
	}
	return KeyOther
}
