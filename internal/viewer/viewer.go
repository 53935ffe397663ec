// Package viewer ties a window, the camera, the render mode and the
// geometry registry into an interactive render loop.
//
// A Viewer is single-threaded: every method except Post must be called on
// the thread that called CreateWindow.
package viewer

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/geoview/internal/config"
	"github.com/Faultbox/geoview/internal/engine/camera"
	"github.com/Faultbox/geoview/internal/engine/capture"
	"github.com/Faultbox/geoview/internal/engine/frame"
	"github.com/Faultbox/geoview/internal/engine/input"
	"github.com/Faultbox/geoview/internal/engine/lighting"
	"github.com/Faultbox/geoview/internal/engine/rendermode"
	"github.com/Faultbox/geoview/internal/engine/scene"
	"github.com/Faultbox/geoview/internal/logger"
	"github.com/Faultbox/geoview/pkg/colormap"
	"github.com/Faultbox/geoview/pkg/geometry"
	"github.com/Faultbox/geoview/pkg/math"
)

// DefaultQueueSize bounds geometry posted from other goroutines between
// two loop iterations.
const DefaultQueueSize = 64

// Options configures a Viewer. Zero values select defaults.
type Options struct {
	Bindings  input.Bindings
	Mode      *rendermode.State
	ColorMap  colormap.Map
	Capture   *capture.Capture
	QueueSize int

	// Settings receives the current render mode on save_config.
	Settings *config.Config
	// SettingsPath overrides where Settings is written.
	SettingsPath string
}

// Viewer is the interactive render loop and its host-facing commands.
type Viewer struct {
	newSurface SurfaceFactory
	newBackend BackendFactory

	surface Surface
	backend Backend

	flags    frame.Flags
	view     *camera.ViewControl
	mode     *rendermode.State
	registry *scene.Registry
	router   *input.Router
	builder  *scene.Builder
	lights   lighting.Tracker
	capture  *capture.Capture

	settings     *config.Config
	settingsPath string

	incoming chan geometry.Geometry
	postMu   sync.Mutex // guards waker and closed
	waker    Waker
	closed   bool

	backendWidth      int
	backendHeight     int
	screenshotPending bool
	frames            uint64
	log               *zap.Logger
}

// New creates a viewer. No window exists until CreateWindow succeeds.
func New(surfaces SurfaceFactory, backends BackendFactory, opts Options) *Viewer {
	if opts.Mode == nil {
		opts.Mode = rendermode.New()
	}
	if opts.ColorMap == nil {
		opts.ColorMap = colormap.Jet
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}

	v := &Viewer{
		newSurface:   surfaces,
		newBackend:   backends,
		view:         camera.New(),
		mode:         opts.Mode,
		builder:      scene.NewBuilder(opts.ColorMap),
		capture:      opts.Capture,
		settings:     opts.Settings,
		settingsPath: opts.SettingsPath,
		incoming:     make(chan geometry.Geometry, opts.QueueSize),
		log:          logger.Named("viewer"),
	}
	v.registry = scene.NewRegistry(&v.flags)
	v.router = input.NewRouter(v.view, v.mode, &v.flags, opts.Bindings)
	return v
}

// NewFromConfig builds a viewer from loaded configuration.
func NewFromConfig(cfg *config.Config, surfaces SurfaceFactory, backends BackendFactory) (*Viewer, error) {
	bindings, err := input.ParseBindings(cfg.Controls.Bindings)
	if err != nil {
		return nil, fmt.Errorf("controls: %w", err)
	}
	cmap, err := colormap.ByName(cfg.Render.ColorMap)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	mode, err := ModeFromConfig(cfg.Render)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	format, err := capture.ParseFormat(cfg.Capture.Format)
	if err != nil {
		return nil, err
	}
	shots := capture.New(cfg.Capture.Dir, cfg.Capture.Prefix)
	shots.SetFormat(format)

	return New(surfaces, backends, Options{
		Bindings: bindings,
		Mode:     mode,
		ColorMap: cmap,
		Capture:  shots,
		Settings: cfg,
	}), nil
}

// ModeFromConfig returns the initial render mode described by cfg.
func ModeFromConfig(cfg config.RenderConfig) (*rendermode.State, error) {
	mode := rendermode.New()

	if cfg.PointSize < rendermode.MinPointSize || cfg.PointSize > rendermode.MaxPointSize {
		return nil, fmt.Errorf("point size %g outside [%g, %g]",
			cfg.PointSize, rendermode.MinPointSize, rendermode.MaxPointSize)
	}
	mode.Points.PointSize = cfg.PointSize

	option, err := rendermode.ParsePointColorOption(cfg.PointColor)
	if err != nil {
		return nil, err
	}
	mode.Points.ColorOption = option

	shade, err := rendermode.ParseMeshShadeOption(cfg.MeshShade)
	if err != nil {
		return nil, err
	}
	mode.Mesh.ShadeOption = shade

	mode.Mesh.DefaultColor = toColor(cfg.MeshColor)
	mode.Background = toColor(cfg.BackgroundColor)
	mode.LightOn = cfg.LightOn
	mode.Points.ShowNormal = cfg.ShowNormals
	return mode, nil
}

// RenderConfigFromMode writes mode back into a copy of base. Fields the
// render mode does not carry, such as the colour map, are kept.
func RenderConfigFromMode(base config.RenderConfig, mode *rendermode.State) config.RenderConfig {
	base.PointSize = mode.Points.PointSize
	base.PointColor = mode.Points.ColorOption.String()
	base.MeshShade = mode.Mesh.ShadeOption.String()
	base.MeshColor = fromColor(mode.Mesh.DefaultColor)
	base.BackgroundColor = fromColor(mode.Background)
	base.LightOn = mode.LightOn
	base.ShowNormals = mode.Points.ShowNormal
	return base
}

func fromColor(c math.Color) [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

func toColor(c [3]float32) math.Color {
	return math.Color{R: c[0], G: c[1], B: c[2]}.Clamp()
}

// CreateWindow opens the window and initializes the backend. It returns
// false if either fails; the viewer is then unusable until a later call
// succeeds. Calling it again after success only logs.
func (v *Viewer) CreateWindow(title string, width, height, left, top int) bool {
	if v.surface != nil {
		v.log.Warn("window already created", zap.String("title", title))
		return true
	}

	surface, err := v.newSurface(title, width, height, left, top)
	if err != nil {
		v.log.Error("failed to create window", zap.Error(err))
		return false
	}
	backend, err := v.newBackend()
	if err != nil {
		v.log.Error("failed to initialize renderer", zap.Error(err))
		surface.Destroy()
		return false
	}

	v.surface = surface
	v.backend = backend

	v.postMu.Lock()
	v.waker, _ = surface.(Waker)
	v.closed = false
	v.postMu.Unlock()

	w, h := surface.Size()
	if err := v.view.Resize(w, h); err != nil {
		v.log.Warn("window reported invalid size", zap.Int("width", w), zap.Int("height", h))
	}
	v.resetViewPoint()
	v.flags.RequestRedraw()
	return true
}

// AddGeometry attaches a geometry handle and frames the scene. It fails if
// no window is open or the handle is nil.
func (v *Viewer) AddGeometry(g geometry.Geometry) bool {
	if v.surface == nil {
		v.log.Warn("add geometry: no window")
		return false
	}
	if !v.registry.Add(g) {
		v.log.Warn("add geometry: rejected handle")
		return false
	}
	v.log.Debug("geometry added",
		zap.Stringer("kind", g.Kind()),
		zap.Int("count", v.registry.Len()),
	)
	v.resetViewPoint()
	return true
}

// HasGeometry reports whether any geometry is attached.
func (v *Viewer) HasGeometry() bool {
	return !v.registry.IsEmpty()
}

// Post hands geometry to the render thread from any goroutine. It is
// attached in the next loop iteration. Post never blocks: it returns false
// when the queue is full or the window has been closed.
func (v *Viewer) Post(g geometry.Geometry) bool {
	v.postMu.Lock()
	defer v.postMu.Unlock()

	if v.closed {
		return false
	}
	select {
	case v.incoming <- g:
	default:
		v.log.Warn("post: queue full", zap.Int("capacity", cap(v.incoming)))
		return false
	}
	if v.waker != nil {
		v.waker.Wake()
	}
	return true
}

// Close requests termination and releases the window immediately.
func (v *Viewer) Close() {
	v.flags.RequestClose()
	v.release()
}

// View returns the camera.
func (v *Viewer) View() *camera.ViewControl { return v.view }

// Mode returns the render mode.
func (v *Viewer) Mode() *rendermode.State { return v.mode }

// FrameCount returns the number of frames presented.
func (v *Viewer) FrameCount() uint64 { return v.frames }

func (v *Viewer) resetViewPoint() {
	v.view.SetBoundingBox(v.registry.BoundingBox())
	v.view.Reset()
	v.log.Debug("view reset", zap.Any("view", v.view.State()))
	v.lights.Invalidate()
	v.flags.RequestRedraw()
}

func (v *Viewer) release() {
	// a Post holding the lock finishes its wake before the surface goes
	v.postMu.Lock()
	v.waker = nil
	v.closed = true
	v.postMu.Unlock()

	if v.backend != nil {
		v.backend.Close()
		v.backend = nil
	}
	if v.surface != nil {
		v.surface.Destroy()
		v.surface = nil
	}
}
