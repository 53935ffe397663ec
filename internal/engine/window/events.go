package window

import (
	"fmt"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/geoview/internal/engine/input"
	"github.com/Faultbox/geoview/internal/logger"
)

// PumpEvents collects pending SDL events. In blocking mode it sleeps until
// at least one event arrives, then drains the rest of the queue.
func (w *Window) PumpEvents(mode input.PumpMode) ([]input.Event, error) {
	w.events = w.events[:0]

	if mode == input.Blocking {
		first := sdl.WaitEvent()
		if first == nil {
			return nil, fmt.Errorf("wait event: %v", sdl.GetError())
		}
		w.events = append(w.events, first)
	}
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		w.events = append(w.events, e)
	}

	sx, sy := w.pixelRatio()
	out := make([]input.Event, 0, len(w.events))
	for _, e := range w.events {
		if ev, ok := w.translate(e, sx, sy); ok {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (w *Window) translate(event sdl.Event, sx, sy float32) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			// drawable pixels, not window points
			width, height := w.Size()
			return input.Event{Type: input.EventWindowResize, Width: width, Height: height}, true
		case sdl.WINDOWEVENT_EXPOSED:
			return input.Event{Type: input.EventExpose}, true
		case sdl.WINDOWEVENT_CLOSE:
			return input.Event{Type: input.EventQuit}, true
		}

	case *sdl.KeyboardEvent:
		ev := input.Event{
			Key:      strings.ToLower(sdl.GetKeyName(e.Keysym.Sym)),
			Repeat:   e.Repeat != 0,
			Modifier: modifierHeld(uint32(e.Keysym.Mod)),
		}
		if e.Type == sdl.KEYDOWN {
			ev.Type = input.EventKeyDown
		} else {
			ev.Type = input.EventKeyUp
		}
		return ev, true

	case *sdl.MouseMotionEvent:
		return input.Event{
			Type:     input.EventMouseMove,
			X:        float32(e.X) * sx,
			Y:        float32(e.Y) * sy,
			Modifier: modifierHeld(uint32(sdl.GetModState())),
		}, true

	case *sdl.MouseButtonEvent:
		ev := input.Event{
			X:        float32(e.X) * sx,
			Y:        float32(e.Y) * sy,
			Button:   button(e.Button),
			Modifier: modifierHeld(uint32(sdl.GetModState())),
		}
		if e.State == sdl.PRESSED {
			ev.Type = input.EventMouseDown
		} else {
			ev.Type = input.EventMouseUp
		}
		return ev, true

	case *sdl.MouseWheelEvent:
		delta := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			delta = -delta
		}
		return input.Event{Type: input.EventMouseWheel, Wheel: delta}, true
	}
	return input.Event{}, false
}

func button(b uint8) input.MouseButton {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return input.ButtonRight
	}
	return input.ButtonNone
}

func modifierHeld(mod uint32) bool {
	return mod&uint32(sdl.KMOD_CTRL|sdl.KMOD_SHIFT) != 0
}

// Wake interrupts a blocking PumpEvents from another goroutine.
func (w *Window) Wake() {
	if _, err := sdl.PushEvent(&sdl.UserEvent{Type: sdl.USEREVENT}); err != nil {
		logger.Debug("wake failed", zap.Error(err))
	}
}
