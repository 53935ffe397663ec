package viewer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/geoview/internal/config"
	"github.com/Faultbox/geoview/internal/engine/capture"
	"github.com/Faultbox/geoview/internal/engine/input"
	"github.com/Faultbox/geoview/internal/engine/rendermode"
	"github.com/Faultbox/geoview/pkg/geometry"
	"github.com/Faultbox/geoview/pkg/math"
)

func defaultBindings(t *testing.T) input.Bindings {
	t.Helper()
	b, err := input.ParseBindings(config.DefaultBindings())
	require.NoError(t, err)
	return b
}

func TestPointCloudDrawnOnce(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer

	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	require.True(t, v.AddGeometry(geometry.SpherePoints(100, math.Vec3{}, 1)))
	assert.True(t, v.flags.RedrawRequested())

	assert.True(t, v.PollEvents())
	assert.False(t, v.flags.RedrawRequested())
	assert.Equal(t, []int{100}, h.backend.points)
	assert.Equal(t, 1, h.surface.presents)
	assert.Equal(t, 640, h.backend.width)
	assert.Equal(t, 480, h.backend.height)

	// nothing changed: no further draws
	assert.True(t, v.PollEvents())
	assert.Equal(t, []int{100}, h.backend.points)
	assert.Equal(t, 1, h.surface.presents)
	assert.Equal(t, uint64(1), v.FrameCount())
}

func TestCloseEventStopsLoop(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	v.AddGeometry(geometry.SpherePoints(10, math.Vec3{}, 1))

	h.surface.queue(input.Event{Type: input.EventQuit})
	assert.False(t, v.PollEvents())
	assert.True(t, v.flags.CloseRequested())
	assert.True(t, h.surface.destroyed)
	assert.True(t, h.backend.closed)
	assert.Empty(t, h.backend.points, "no draw after close")

	assert.False(t, v.PollEvents())
	assert.False(t, v.WaitEvents())
	assert.Empty(t, h.backend.points)
	assert.Equal(t, 0, h.surface.presents)
}

func TestQuitKeyStopsLoop(t *testing.T) {
	h := newHarness(Options{Bindings: defaultBindings(t)})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))

	h.surface.queue(input.Event{Type: input.EventKeyDown, Key: "escape"})
	assert.False(t, v.PollEvents())
}

func TestRunReturnsOnClose(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))

	h.surface.queue(input.Event{Type: input.EventExpose})
	h.surface.queue(input.Event{Type: input.EventQuit})
	v.Run()

	assert.Equal(t, []input.PumpMode{input.Blocking, input.Blocking}, h.surface.modes)
	assert.True(t, h.surface.destroyed)
}

func TestPollUsesNonBlockingPump(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))

	v.PollEvents()
	v.WaitEvents()
	assert.Equal(t, []input.PumpMode{input.NonBlocking, input.Blocking}, h.surface.modes)
}

func TestTransientErrorKeepsRedraw(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	v.AddGeometry(geometry.SpherePoints(10, math.Vec3{}, 1))
	h.backend.finishErrs = []error{errLostContext}

	assert.True(t, v.PollEvents())
	assert.True(t, v.flags.RedrawRequested())
	assert.Equal(t, 0, h.surface.presents)

	assert.True(t, v.PollEvents())
	assert.False(t, v.flags.RedrawRequested())
	assert.Equal(t, 1, h.surface.presents)
	assert.Equal(t, []int{10, 10}, h.backend.points)
}

func TestScrollIsInvertible(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	v.AddGeometry(geometry.SpherePoints(10, math.Vec3{}, 1))
	v.PollEvents()

	zoom := v.View().State().Zoom
	h.surface.queue(input.Event{Type: input.EventMouseWheel, Wheel: 5})
	v.PollEvents()
	assert.NotEqual(t, zoom, v.View().State().Zoom)

	h.surface.queue(input.Event{Type: input.EventMouseWheel, Wheel: -5})
	v.PollEvents()
	assert.InDelta(t, zoom, v.View().State().Zoom, 1e-5)
	assert.Equal(t, 3, h.surface.presents)
}

func TestAddGeometryCentersView(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))

	v.AddGeometry(geometry.Box(math.Vec3{X: 2, Y: 2, Z: 2}, math.Vec3{X: 4, Y: 4, Z: 4}))
	assert.Equal(t, math.Vec3{X: 3, Y: 3, Z: 3}, v.View().State().LookAt)

	state := v.View().State()
	v.View().Reset()
	assert.Equal(t, state, v.View().State())
}

func TestAddGeometryRequiresWindow(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer

	assert.False(t, v.AddGeometry(geometry.SpherePoints(10, math.Vec3{}, 1)))
	assert.False(t, v.HasGeometry())
	assert.False(t, v.PollEvents())

	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	assert.False(t, v.AddGeometry(nil))
	assert.False(t, v.HasGeometry())
}

func TestCreateWindowFailure(t *testing.T) {
	v := New(func(string, int, int, int, int) (Surface, error) {
		return nil, errors.New("no display")
	}, func() (Backend, error) {
		t.Fatal("backend created without a surface")
		return nil, nil
	}, Options{})

	assert.False(t, v.CreateWindow("test", 640, 480, -1, -1))
	assert.False(t, v.PollEvents())
}

func TestBackendFailureDestroysSurface(t *testing.T) {
	surface := &fakeSurface{width: 640, height: 480}
	v := New(func(string, int, int, int, int) (Surface, error) {
		return surface, nil
	}, func() (Backend, error) {
		return nil, errors.New("no GL 4.1")
	}, Options{})

	assert.False(t, v.CreateWindow("test", 640, 480, -1, -1))
	assert.True(t, surface.destroyed)
	assert.False(t, v.WaitEvents())
}

func TestResizeEvent(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	v.PollEvents()

	h.surface.queue(input.Event{Type: input.EventWindowResize, Width: 800, Height: 600})
	v.PollEvents()
	assert.Equal(t, 800, h.backend.width)
	assert.Equal(t, 600, h.backend.height)
	assert.InDelta(t, 800.0/600.0, v.View().Aspect(), 1e-6)

	h.surface.queue(input.Event{Type: input.EventWindowResize, Width: 0, Height: 600})
	v.PollEvents()
	assert.Equal(t, 800, h.backend.width)
	assert.Equal(t, 2, h.surface.presents)
}

func TestMeshShadingPaths(t *testing.T) {
	h := newHarness(Options{Bindings: defaultBindings(t)})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	v.AddGeometry(geometry.Box(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}))
	v.PollEvents()

	require.Len(t, h.backend.meshes, 1)
	assert.Equal(t, 36, h.backend.meshes[0].Count)
	assert.True(t, h.backend.lit[0])

	// flat -> smooth -> wireframe
	h.surface.queue(input.Event{Type: input.EventKeyDown, Key: "s"}, input.Event{Type: input.EventKeyDown, Key: "s"})
	v.PollEvents()
	require.Len(t, h.backend.meshes, 2)
	assert.True(t, h.backend.meshes[1].Wireframe)
	assert.False(t, h.backend.lit[1])
	assert.Equal(t, rendermode.MeshShadeWireframe, v.Mode().Mesh.ShadeOption)
}

func TestNormalsDrawnWhenEnabled(t *testing.T) {
	h := newHarness(Options{Bindings: defaultBindings(t)})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	v.AddGeometry(geometry.SpherePoints(20, math.Vec3{}, 1))
	v.PollEvents()
	assert.Empty(t, h.backend.lines)

	h.surface.queue(input.Event{Type: input.EventKeyDown, Key: "n"})
	v.PollEvents()
	assert.Equal(t, []int{40}, h.backend.lines)
}

func TestPointSizeAndBackgroundReachBackend(t *testing.T) {
	h := newHarness(Options{Bindings: defaultBindings(t)})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	v.AddGeometry(geometry.SpherePoints(5, math.Vec3{}, 1))
	v.PollEvents()

	h.surface.queue(
		input.Event{Type: input.EventKeyDown, Key: "="},
		input.Event{Type: input.EventKeyDown, Key: "b"},
	)
	v.PollEvents()
	assert.Equal(t, []float32{5, 6}, h.backend.pointSizes)
	assert.Equal(t, []math.Color{math.White, math.Black}, h.backend.clears)
}

func TestHeadlightRefreshedEveryFrame(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	v.AddGeometry(geometry.Box(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}))
	v.PollEvents()

	h.surface.queue(
		input.Event{Type: input.EventMouseDown, Button: input.ButtonLeft, X: 10, Y: 10},
		input.Event{Type: input.EventMouseMove, X: 60, Y: 10},
	)
	v.PollEvents()

	require.Len(t, h.backend.lights, 2)
	first, second := h.backend.lights[0], h.backend.lights[1]
	assert.Equal(t, first.Fill, second.Fill)
	assert.NotEqual(t, first.Head.Position, second.Head.Position)
	assert.Equal(t, v.View().Eye(), second.Head.Position)
}

func TestPostFromGoroutine(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))

	cloud := geometry.SpherePoints(30, math.Vec3{}, 1)
	done := make(chan struct{})
	go func() {
		assert.True(t, v.Post(cloud))
		close(done)
	}()
	<-done

	assert.Equal(t, 1, h.surface.wakes)
	assert.False(t, v.HasGeometry(), "posted geometry waits for the loop")
	v.PollEvents()
	assert.True(t, v.HasGeometry())
	assert.Equal(t, []int{30}, h.backend.points)
}

func TestPostWakesBlockingWait(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	require.True(t, v.PollEvents())
	frames := v.FrameCount()

	cloud := geometry.SpherePoints(100, math.Vec3{}, 1)
	h.surface.onPump = func(mode input.PumpMode) {
		if mode != input.Blocking {
			return
		}
		h.surface.onPump = nil
		// the producer's wake is what ends the wait
		posted := make(chan bool)
		go func() { posted <- v.Post(cloud) }()
		require.True(t, <-posted)
	}

	require.True(t, v.WaitEvents())
	assert.Equal(t, 1, h.surface.wakes)
	assert.True(t, v.HasGeometry())
	assert.Equal(t, []int{100}, h.backend.points, "drawn without a further event")
	assert.Equal(t, frames+1, v.FrameCount())
}

func TestPostAfterCloseIsRejected(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	v.Close()

	assert.False(t, v.Post(geometry.SpherePoints(10, math.Vec3{}, 1)))
	assert.Zero(t, h.surface.wakes)
}

func TestPostNeverBlocksOnFullQueue(t *testing.T) {
	h := newHarness(Options{QueueSize: 1})
	v := h.viewer

	assert.True(t, v.Post(geometry.SpherePoints(10, math.Vec3{}, 1)))
	assert.False(t, v.Post(geometry.SpherePoints(10, math.Vec3{}, 1)))

	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	v.PollEvents()
	assert.Equal(t, []int{10}, h.backend.points)
}

func TestScreenshotSavedAfterDraw(t *testing.T) {
	dir := t.TempDir()
	h := newHarness(Options{
		Bindings: defaultBindings(t),
		Capture:  capture.New(dir, "shot"),
	})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 8, 4, -1, -1))
	v.PollEvents()

	h.surface.queue(input.Event{Type: input.EventKeyDown, Key: "p"})
	v.PollEvents()
	assert.Equal(t, 1, h.backend.reads)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCloseReleasesImmediately(t *testing.T) {
	h := newHarness(Options{})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))

	v.Close()
	assert.True(t, h.surface.destroyed)
	assert.True(t, h.backend.closed)
	assert.False(t, v.PollEvents())
}

func TestModeFromConfig(t *testing.T) {
	cfg := config.Default().Render
	cfg.PointSize = 3
	cfg.PointColor = "z"
	cfg.MeshShade = "wireframe"
	cfg.BackgroundColor = [3]float32{0, 0, 2}

	mode, err := ModeFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, float32(3), mode.Points.PointSize)
	assert.Equal(t, rendermode.PointColorZ, mode.Points.ColorOption)
	assert.Equal(t, rendermode.MeshShadeWireframe, mode.Mesh.ShadeOption)
	assert.Equal(t, math.Color{B: 1}, mode.Background)

	cfg.PointSize = 40
	_, err = ModeFromConfig(cfg)
	assert.Error(t, err)

	cfg.PointSize = 5
	cfg.PointColor = "rainbow"
	_, err = ModeFromConfig(cfg)
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	h := newHarness(Options{})
	v, err := NewFromConfig(cfg, func(string, int, int, int, int) (Surface, error) {
		return h.surface, nil
	}, func() (Backend, error) {
		return h.backend, nil
	})
	require.NoError(t, err)
	assert.Equal(t, rendermode.MeshShadeFlat, v.Mode().Mesh.ShadeOption)

	cfg.Render.ColorMap = "nope"
	_, err = NewFromConfig(cfg, nil, nil)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Controls.Bindings = map[string]string{"x": "explode"}
	_, err = NewFromConfig(cfg, nil, nil)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Capture.Format = "gif"
	_, err = NewFromConfig(cfg, nil, nil)
	assert.Error(t, err)
}

func TestBoundingBoxOutline(t *testing.T) {
	h := newHarness(Options{Bindings: defaultBindings(t)})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	v.AddGeometry(geometry.Box(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}))
	v.PollEvents()
	assert.Empty(t, h.backend.lines)

	h.surface.queue(input.Event{Type: input.EventKeyDown, Key: "o"})
	v.PollEvents()
	assert.Equal(t, []int{24}, h.backend.lines)
}

func TestRenderConfigFromModeRoundTrip(t *testing.T) {
	cfg := config.Default().Render
	cfg.PointSize = 7
	cfg.PointColor = "y"
	cfg.MeshShade = "smooth"
	cfg.MeshColor = [3]float32{0.2, 0.3, 0.4}
	cfg.BackgroundColor = [3]float32{0, 0, 0}
	cfg.LightOn = false
	cfg.ShowNormals = true
	cfg.ColorMap = "gray"

	mode, err := ModeFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg, RenderConfigFromMode(cfg, mode))
}

func TestSaveConfigKeyWritesRenderMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.Default()
	h := newHarness(Options{
		Bindings:     defaultBindings(t),
		Settings:     cfg,
		SettingsPath: path,
	})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))
	v.PollEvents()

	h.surface.queue(
		input.Event{Type: input.EventKeyDown, Key: "b"},
		input.Event{Type: input.EventKeyDown, Key: "s"},
		input.Event{Type: input.EventKeyDown, Key: "w"},
	)
	require.True(t, v.PollEvents())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved config.Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, [3]float32{0, 0, 0}, saved.Render.BackgroundColor)
	assert.Equal(t, "smooth", saved.Render.MeshShade)
	assert.Equal(t, "jet", saved.Render.ColorMap)
	assert.Equal(t, cfg.Window, saved.Window)
}

func TestSaveConfigWithoutSettingsOnlyLogs(t *testing.T) {
	h := newHarness(Options{Bindings: defaultBindings(t)})
	v := h.viewer
	require.True(t, v.CreateWindow("test", 640, 480, -1, -1))

	h.surface.queue(input.Event{Type: input.EventKeyDown, Key: "w"})
	assert.True(t, v.PollEvents())
}
