package input

import (
	"go.uber.org/zap"

	"github.com/Faultbox/geoview/internal/engine/camera"
	"github.com/Faultbox/geoview/internal/engine/frame"
	"github.com/Faultbox/geoview/internal/engine/rendermode"
	"github.com/Faultbox/geoview/internal/logger"
)

// Router applies events to the view and render mode. It never touches
// the GPU; commands that need the GPU are queued for the render loop.
type Router struct {
	view     *camera.ViewControl
	mode     *rendermode.State
	flags    *frame.Flags
	bindings Bindings

	mouse    MouseControl
	deferred []Command
}

// NewRouter creates a router over the given state.
func NewRouter(view *camera.ViewControl, mode *rendermode.State, flags *frame.Flags, bindings Bindings) *Router {
	return &Router{
		view:     view,
		mode:     mode,
		flags:    flags,
		bindings: bindings,
	}
}

// TakeDeferred returns and clears commands the render loop must run.
func (r *Router) TakeDeferred() []Command {
	cmds := r.deferred
	r.deferred = nil
	return cmds
}

// DispatchAll routes a batch of events in order.
func (r *Router) DispatchAll(events []Event) {
	for _, e := range events {
		r.Dispatch(e)
	}
}

// Dispatch routes one event.
func (r *Router) Dispatch(e Event) {
	switch e.Type {
	case EventQuit:
		r.flags.RequestClose()

	case EventWindowResize:
		if err := r.view.Resize(e.Width, e.Height); err != nil {
			logger.Debug("ignoring resize", zap.Error(err))
			return
		}
		r.flags.RequestRedraw()

	case EventExpose:
		r.flags.RequestRedraw()

	case EventMouseDown:
		r.mouse.ModifierDown = e.Modifier
		r.mouse.LastX, r.mouse.LastY = e.X, e.Y
		if e.Button == ButtonLeft {
			r.mouse.LeftButtonDown = true
		}

	case EventMouseUp:
		r.mouse.ModifierDown = e.Modifier
		r.mouse.LastX, r.mouse.LastY = e.X, e.Y
		if e.Button == ButtonLeft {
			r.mouse.LeftButtonDown = false
		}

	case EventMouseMove:
		r.mouseMove(e)

	case EventMouseWheel:
		if e.Wheel == 0 {
			return
		}
		r.view.Scale(e.Wheel)
		r.flags.RequestRedraw()

	case EventKeyDown:
		if cmd, ok := r.bindings[e.Key]; ok {
			r.Execute(cmd)
		}
	}
}

func (r *Router) mouseMove(e Event) {
	dx := e.X - r.mouse.LastX
	dy := e.Y - r.mouse.LastY
	r.mouse.LastX, r.mouse.LastY = e.X, e.Y
	r.mouse.ModifierDown = e.Modifier

	if !r.mouse.LeftButtonDown || (dx == 0 && dy == 0) {
		return
	}
	if r.mouse.ModifierDown {
		r.view.Translate(dx, dy)
	} else {
		r.view.Rotate(dx, dy)
	}
	r.flags.RequestRedraw()
}

// Execute runs a command as if its key had been pressed.
func (r *Router) Execute(cmd Command) {
	changed := true
	switch cmd {
	case CmdQuit:
		r.flags.RequestClose()
		return
	case CmdResetView:
		r.view.Reset()
	case CmdPointSizeUp:
		changed = r.mode.ChangePointSize(1)
	case CmdPointSizeDown:
		changed = r.mode.ChangePointSize(-1)
	case CmdPointColorCycle:
		changed = r.mode.CyclePointColorOption()
	case CmdPointColorDefault:
		changed = r.mode.SetPointColorOption(rendermode.PointColorDefault)
	case CmdPointColorColor:
		changed = r.mode.SetPointColorOption(rendermode.PointColorColor)
	case CmdPointColorX:
		changed = r.mode.SetPointColorOption(rendermode.PointColorX)
	case CmdPointColorY:
		changed = r.mode.SetPointColorOption(rendermode.PointColorY)
	case CmdPointColorZ:
		changed = r.mode.SetPointColorOption(rendermode.PointColorZ)
	case CmdMeshShadeCycle:
		changed = r.mode.CycleMeshShadeOption()
	case CmdToggleNormals:
		changed = r.mode.ToggleShowNormal()
	case CmdFieldOfViewUp:
		r.view.ChangeFieldOfView(1)
	case CmdFieldOfViewDown:
		r.view.ChangeFieldOfView(-1)
	case CmdToggleLight:
		changed = r.mode.ToggleLight()
	case CmdToggleBackground:
		changed = r.mode.ToggleBackground()
	case CmdToggleBoundingBox:
		changed = r.mode.ToggleBoundingBox()
	case CmdScreenshot:
		r.deferred = append(r.deferred, cmd)
	case CmdSaveConfig:
		r.deferred = append(r.deferred, cmd)
		changed = false
	case CmdHelp:
		r.logHelp()
		changed = false
	default:
		changed = false
	}
	if changed {
		r.flags.RequestRedraw()
	}
}

func (r *Router) logHelp() {
	logger.Info("mouse: left drag rotates, ctrl/shift + left drag pans, wheel zooms")
	for _, key := range r.bindings.Keys() {
		logger.Info("key binding", zap.String("key", key), zap.Stringer("command", r.bindings[key]))
	}
}
