package viewer

import (
	"github.com/Faultbox/geoview/internal/engine/input"
	"github.com/Faultbox/geoview/internal/engine/lighting"
	"github.com/Faultbox/geoview/internal/engine/scene"
	"github.com/Faultbox/geoview/pkg/math"
)

// Surface is a window with a current rendering context. All methods are
// called on the thread that created it.
type Surface interface {
	// PumpEvents returns pending events. Blocking mode waits for at least
	// one.
	PumpEvents(mode input.PumpMode) ([]input.Event, error)
	// Present shows the frame drawn since the last Present.
	Present()
	// Size returns the drawable size in pixels.
	Size() (width, height int)
	// Destroy releases the window and its context.
	Destroy()
}

// Waker is implemented by surfaces whose blocking pump can be interrupted
// from another goroutine.
type Waker interface {
	Wake()
}

// SurfaceFactory opens a window. Negative left/top centre it.
type SurfaceFactory func(title string, width, height, left, top int) (Surface, error)

// Backend draws batches on the surface's context.
type Backend interface {
	Resize(width, height int)
	Clear(background math.Color)
	SetCamera(view, projection math.Mat4, eye math.Vec3)
	SetLighting(setup lighting.Setup)
	DrawPoints(batch *scene.PointBatch, size float32)
	DrawMesh(batch *scene.MeshBatch, lit bool)
	DrawLines(batch *scene.LineBatch)
	// Finish reports any error raised while recording the frame.
	Finish() error
	// ReadPixels returns the frame as RGBA, bottom row first.
	ReadPixels(width, height int) ([]byte, error)
	Close()
}

// BackendFactory creates a backend once the surface context is current.
type BackendFactory func() (Backend, error)
