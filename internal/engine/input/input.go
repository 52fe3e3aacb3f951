// Package input handles SDL2 input events.
package input

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies the events the clock reacts to.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls pending SDL events without blocking.
// Returns true if the app should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		quit = i.handle(event) || quit
	}
	return quit
}

// Wait blocks until an event arrives or timeout elapses, then drains the
// queue. The clock only changes once per redraw interval, so the loop sleeps
// here instead of spinning. Returns true if the app should quit.
func (i *Input) Wait(timeout time.Duration) bool {
	i.events = i.events[:0]
	ms := int(timeout / time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	quit := false
	if event := sdl.WaitEventTimeout(ms); event != nil {
		quit = i.handle(event)
	}
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		quit = i.handle(event) || quit
	}
	return quit
}

func (i *Input) handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			i.events = append(i.events, Event{
				Type: EventKeyDown,
				Key:  e.Keysym.Scancode,
			})
		}
	}
	return false
}

// Events returns the events from the last Update or Wait.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed since the last update.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
