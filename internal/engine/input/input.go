// Package input polls SDL2 events and tracks keyboard and mouse state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a polled event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Mouse buttons.
const (
	ButtonLeft   = sdl.BUTTON_LEFT
	ButtonMiddle = sdl.BUTTON_MIDDLE
	ButtonRight  = sdl.BUTTON_RIGHT
)

// Event is one processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	RelX   int
	RelY   int
	Button uint8
	Wheel  float32
}

// Input holds this frame's events plus state that persists across frames.
type Input struct {
	events  []Event
	held    map[sdl.Scancode]bool
	buttons map[uint8]bool

	mouseX, mouseY int
	deltaX, deltaY float32
	wheel          float32
	quit           bool
}

// New returns an Input with nothing held.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		held:    make(map[sdl.Scancode]bool),
		buttons: make(map[uint8]bool),
	}
}

// Update polls all pending SDL events. It returns true once a quit was
// requested.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.deltaX, i.deltaY, i.wheel = 0, 0, 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.Push(Event{Type: EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.Push(Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.Push(Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			} else if e.Type == sdl.KEYUP {
				i.Push(Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			i.Push(Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				RelX:   int(e.XRel),
				RelY:   int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			t := EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				t = EventMouseUp
			}
			i.Push(Event{Type: t, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button})

		case *sdl.MouseWheelEvent:
			i.Push(Event{Type: EventMouseWheel, Wheel: float32(e.Y)})
		}
	}

	return i.quit
}

// Push applies one event to the tracked state and records it for this
// frame. Update calls it for every SDL event.
func (i *Input) Push(e Event) {
	switch e.Type {
	case EventQuit:
		i.quit = true
	case EventKeyDown:
		i.held[e.Key] = true
	case EventKeyUp:
		delete(i.held, e.Key)
	case EventMouseMove:
		i.mouseX, i.mouseY = e.MouseX, e.MouseY
		i.deltaX += float32(e.RelX)
		i.deltaY += float32(e.RelY)
	case EventMouseDown:
		i.buttons[e.Button] = true
		i.mouseX, i.mouseY = e.MouseX, e.MouseY
	case EventMouseUp:
		delete(i.buttons, e.Button)
		i.mouseX, i.mouseY = e.MouseX, e.MouseY
	case EventMouseWheel:
		i.wheel += e.Wheel
	}
	i.events = append(i.events, e)
}

// BeginFrame clears per-frame state without polling. Update does this itself.
func (i *Input) BeginFrame() {
	i.events = i.events[:0]
	i.deltaX, i.deltaY, i.wheel = 0, 0, 0
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports whether the key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether the key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// IsButtonHeld reports whether the mouse button is currently down.
func (i *Input) IsButtonHeld(button uint8) bool {
	return i.buttons[button]
}

// Clicked returns the position of a button press this frame.
func (i *Input) Clicked(button uint8) (x, y int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventMouseDown && e.Button == button {
			return e.MouseX, e.MouseY, true
		}
	}
	return 0, 0, false
}

// MousePosition returns the last known cursor position.
func (i *Input) MousePosition() (int, int) { return i.mouseX, i.mouseY }

// MouseDelta returns the accumulated relative motion this frame.
func (i *Input) MouseDelta() (float32, float32) { return i.deltaX, i.deltaY }

// Wheel returns the accumulated vertical wheel motion this frame.
func (i *Input) Wheel() float32 { return i.wheel }

// Resized returns the latest window size reported this frame.
func (i *Input) Resized() (width, height int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventWindowResize {
			width, height, ok = e.Width, e.Height, true
		}
	}
	return width, height, ok
}

// QuitRequested reports whether a quit event was seen.
func (i *Input) QuitRequested() bool { return i.quit }
