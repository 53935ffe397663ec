package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/geoview/internal/config"
	"github.com/Faultbox/geoview/internal/engine/camera"
	"github.com/Faultbox/geoview/internal/engine/frame"
	"github.com/Faultbox/geoview/internal/engine/rendermode"
	"github.com/Faultbox/geoview/pkg/math"
)

type fixture struct {
	view   *camera.ViewControl
	mode   *rendermode.State
	flags  *frame.Flags
	router *Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bindings, err := ParseBindings(config.DefaultBindings())
	require.NoError(t, err)

	f := &fixture{
		view:  camera.New(),
		mode:  rendermode.New(),
		flags: &frame.Flags{},
	}
	f.router = NewRouter(f.view, f.mode, f.flags, bindings)
	return f
}

func key(name string) Event {
	return Event{Type: EventKeyDown, Key: name}
}

func TestDefaultBindingsParse(t *testing.T) {
	b, err := ParseBindings(config.DefaultBindings())
	require.NoError(t, err)
	assert.Equal(t, CmdQuit, b["escape"])
	assert.Equal(t, CmdResetView, b["r"])
}

func TestParseBindingsUnknownCommand(t *testing.T) {
	_, err := ParseBindings(map[string]string{"k": "explode"})
	assert.Error(t, err)
}

func TestCommandNamesRoundTrip(t *testing.T) {
	for cmd, name := range commandNames {
		got, err := ParseCommand(name)
		require.NoError(t, err)
		assert.Equal(t, cmd, got)
		assert.Equal(t, name, cmd.String())
	}
}

func TestLeftDragRotates(t *testing.T) {
	f := newFixture(t)
	front := f.view.State().Front

	f.router.Dispatch(Event{Type: EventMouseDown, Button: ButtonLeft, X: 100, Y: 100})
	assert.False(t, f.flags.RedrawRequested(), "button press alone does not redraw")
	assert.True(t, f.router.mouse.LeftButtonDown)

	f.router.Dispatch(Event{Type: EventMouseMove, X: 150, Y: 100})
	assert.True(t, f.flags.RedrawRequested())
	assert.NotEqual(t, front, f.view.State().Front)
	assert.Equal(t, math.Vec3{}, f.view.State().LookAt, "rotation keeps the look-at point")
	assert.Equal(t, float32(150), f.router.mouse.LastX)
}

func TestModifierDragTranslates(t *testing.T) {
	f := newFixture(t)
	front := f.view.State().Front

	f.router.Dispatch(Event{Type: EventMouseDown, Button: ButtonLeft, X: 10, Y: 10, Modifier: true})
	f.router.Dispatch(Event{Type: EventMouseMove, X: 30, Y: 40, Modifier: true})

	assert.True(t, f.flags.RedrawRequested())
	assert.Equal(t, front, f.view.State().Front, "pan does not change orientation")
	assert.NotEqual(t, math.Vec3{}, f.view.State().LookAt)
}

func TestMoveWithoutButtonOnlyTracksCursor(t *testing.T) {
	f := newFixture(t)
	before := f.view.State()

	f.router.Dispatch(Event{Type: EventMouseMove, X: 300, Y: 200})
	assert.False(t, f.flags.RedrawRequested())
	assert.Equal(t, before, f.view.State())
	assert.Equal(t, float32(300), f.router.mouse.LastX)
	assert.Equal(t, float32(200), f.router.mouse.LastY)
}

func TestButtonUpStopsDrag(t *testing.T) {
	f := newFixture(t)
	f.router.Dispatch(Event{Type: EventMouseDown, Button: ButtonLeft})
	f.router.Dispatch(Event{Type: EventMouseUp, Button: ButtonLeft, X: 5, Y: 5})
	assert.False(t, f.router.mouse.LeftButtonDown)
	assert.False(t, f.flags.RedrawRequested())

	before := f.view.State()
	f.router.Dispatch(Event{Type: EventMouseMove, X: 50, Y: 50})
	assert.Equal(t, before, f.view.State())
}

func TestRightButtonDoesNotRotate(t *testing.T) {
	f := newFixture(t)
	before := f.view.State()
	f.router.Dispatch(Event{Type: EventMouseDown, Button: ButtonRight})
	f.router.Dispatch(Event{Type: EventMouseMove, X: 50, Y: 50})
	assert.Equal(t, before, f.view.State())
}

func TestScrollIsInvertible(t *testing.T) {
	f := newFixture(t)
	zoom := f.view.State().Zoom

	f.router.Dispatch(Event{Type: EventMouseWheel, Wheel: 5})
	assert.True(t, f.flags.RedrawRequested())
	assert.NotEqual(t, zoom, f.view.State().Zoom)

	f.router.Dispatch(Event{Type: EventMouseWheel, Wheel: -5})
	assert.InDelta(t, zoom, f.view.State().Zoom, 1e-5)
}

func TestResize(t *testing.T) {
	f := newFixture(t)

	f.router.Dispatch(Event{Type: EventWindowResize, Width: 1000, Height: 500})
	assert.True(t, f.flags.RedrawRequested())
	assert.InDelta(t, 2.0, f.view.Aspect(), 1e-6)

	f.flags.ClearRedraw()
	f.router.Dispatch(Event{Type: EventWindowResize, Width: 0, Height: 500})
	assert.False(t, f.flags.RedrawRequested(), "invalid resize is ignored")
	w, h := f.view.Viewport()
	assert.Equal(t, 1000, w)
	assert.Equal(t, 500, h)
}

func TestQuitEventRequestsClose(t *testing.T) {
	f := newFixture(t)
	f.router.Dispatch(Event{Type: EventQuit})
	assert.True(t, f.flags.CloseRequested())
}

func TestKeyCommands(t *testing.T) {
	tests := []struct {
		key    string
		redraw bool
		check  func(*testing.T, *fixture)
	}{
		{"=", true, func(t *testing.T, f *fixture) {
			assert.Equal(t, rendermode.DefaultPointSize+1, f.mode.Points.PointSize)
		}},
		{"-", true, func(t *testing.T, f *fixture) {
			assert.Equal(t, rendermode.DefaultPointSize-1, f.mode.Points.PointSize)
		}},
		{"c", true, func(t *testing.T, f *fixture) {
			assert.Equal(t, rendermode.PointColorColor, f.mode.Points.ColorOption)
		}},
		{"4", true, func(t *testing.T, f *fixture) {
			assert.Equal(t, rendermode.PointColorZ, f.mode.Points.ColorOption)
		}},
		{"0", false, func(t *testing.T, f *fixture) {
			assert.Equal(t, rendermode.PointColorDefault, f.mode.Points.ColorOption)
		}},
		{"s", true, func(t *testing.T, f *fixture) {
			assert.Equal(t, rendermode.MeshShadeSmooth, f.mode.Mesh.ShadeOption)
		}},
		{"n", true, func(t *testing.T, f *fixture) {
			assert.True(t, f.mode.Points.ShowNormal)
		}},
		{"l", true, func(t *testing.T, f *fixture) {
			assert.False(t, f.mode.LightOn)
		}},
		{"b", true, func(t *testing.T, f *fixture) {
			assert.NotEqual(t, rendermode.New().Background, f.mode.Background)
		}},
		{"o", true, func(t *testing.T, f *fixture) {
			assert.True(t, f.mode.ShowBoundingBox)
		}},
		{"]", true, func(t *testing.T, f *fixture) {
			assert.Equal(t, camera.DefaultFieldOfView+camera.FieldOfViewStep, f.view.State().FieldOfView)
		}},
		{"r", true, func(t *testing.T, f *fixture) {
			assert.Equal(t, camera.DefaultZoom, f.view.State().Zoom)
		}},
		{"h", false, func(t *testing.T, f *fixture) {}},
		{"unbound", false, func(t *testing.T, f *fixture) {}},
		{"q", false, func(t *testing.T, f *fixture) {
			assert.True(t, f.flags.CloseRequested())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			f := newFixture(t)
			f.router.Dispatch(key(tt.key))
			assert.Equal(t, tt.redraw, f.flags.RedrawRequested())
			tt.check(t, f)
		})
	}
}

func TestPointSizeKeyRepeatAtBound(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 40; i++ {
		f.router.Dispatch(Event{Type: EventKeyDown, Key: "=", Repeat: true})
	}
	assert.Equal(t, rendermode.MaxPointSize, f.mode.Points.PointSize)

	f.flags.ClearRedraw()
	f.router.Dispatch(key("="))
	assert.False(t, f.flags.RedrawRequested(), "no visible change at the bound")
}

func TestScreenshotIsDeferred(t *testing.T) {
	f := newFixture(t)
	f.router.Dispatch(key("p"))

	assert.True(t, f.flags.RedrawRequested())
	assert.Equal(t, []Command{CmdScreenshot}, f.router.TakeDeferred())
	assert.Empty(t, f.router.TakeDeferred())
}

func TestSaveConfigIsDeferredWithoutRedraw(t *testing.T) {
	f := newFixture(t)
	f.router.Dispatch(key("w"))

	assert.False(t, f.flags.RedrawRequested())
	assert.Equal(t, []Command{CmdSaveConfig}, f.router.TakeDeferred())
}

func TestExposeRequestsRedraw(t *testing.T) {
	f := newFixture(t)
	f.router.Dispatch(Event{Type: EventExpose})
	assert.True(t, f.flags.RedrawRequested())
	assert.False(t, f.flags.CloseRequested())
}
