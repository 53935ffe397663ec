// Package camera provides the viewer's view control: a single orbiting
// camera framed on the scene bounding box.
package camera

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/geoview/pkg/geometry"
	"github.com/Faultbox/geoview/pkg/math"
)

// ErrInvalidDimension is returned by Resize for a non-positive viewport.
var ErrInvalidDimension = errors.New("camera: invalid viewport dimension")

const (
	DefaultFieldOfView float32 = 60
	MinFieldOfView     float32 = 5 // at the minimum the projection is orthographic
	MaxFieldOfView     float32 = 90
	FieldOfViewStep    float32 = 5

	DefaultZoom float32 = 0.7
	MinZoom     float32 = 0.02
	MaxZoom     float32 = 10
	// ZoomFactor is applied once per scroll tick.
	ZoomFactor float32 = 0.9

	// RotationDegreesPerPixel converts cursor travel to orbit angle.
	RotationDegreesPerPixel float32 = 0.2

	defaultWidth  = 640
	defaultHeight = 480
)

// ViewState is a snapshot of the camera.
type ViewState struct {
	FieldOfView    float32
	Zoom           float32
	LookAt         math.Vec3
	Eye            math.Vec3
	Front          math.Vec3
	Up             math.Vec3
	ViewportWidth  int
	ViewportHeight int
}

// ViewControl is the camera state. The eye is derived from look-at, the
// unit front vector and a distance that follows zoom and the scene extent.
// Front and up are kept orthonormal so the view is never degenerate.
type ViewControl struct {
	fov    float32 // degrees
	zoom   float32
	lookAt math.Vec3
	front  math.Vec3 // unit vector from look-at towards the eye
	up     math.Vec3

	width, height int

	bounds geometry.AABB
}

// New creates a view control with a 640x480 viewport framed on an empty
// scene.
func New() *ViewControl {
	vc := &ViewControl{
		width:  defaultWidth,
		height: defaultHeight,
		bounds: geometry.EmptyAABB(),
	}
	vc.Reset()
	return vc
}

// SetBoundingBox sets the scene bounds used to frame the camera and place
// the clip planes. It does not move the camera; call Reset for that.
func (vc *ViewControl) SetBoundingBox(b geometry.AABB) {
	vc.bounds = b
}

// Reset restores the default view framing the whole scene.
func (vc *ViewControl) Reset() {
	vc.fov = DefaultFieldOfView
	vc.zoom = DefaultZoom
	vc.lookAt = vc.bounds.Center()
	vc.front = math.UnitZ
	vc.up = math.UnitY
}

// Resize updates the viewport. Non-positive sizes are rejected and leave
// the state unchanged.
func (vc *ViewControl) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	vc.width = width
	vc.height = height
	return nil
}

// Rotate orbits the eye around the look-at point. dx and dy are cursor
// deltas in pixels; the scene follows the cursor.
func (vc *ViewControl) Rotate(dx, dy float32) {
	right := vc.right()

	yaw := math.RotateAxis(vc.up, -math.Radians(dx*RotationDegreesPerPixel))
	pitch := math.RotateAxis(right, -math.Radians(dy*RotationDegreesPerPixel))
	rot := pitch.Mul(yaw)

	vc.setOrientation(rot.TransformDirection(vc.front), rot.TransformDirection(vc.up))
}

// Translate pans look-at and eye together in the view plane. A drag across
// the full viewport height moves by the visible height at the look-at
// point.
func (vc *ViewControl) Translate(dx, dy float32) {
	perPixel := 2 * vc.viewRatio() / float32(vc.height)
	shift := vc.right().Scale(-dx * perPixel).Add(vc.up.Scale(dy * perPixel))
	vc.lookAt = vc.lookAt.Add(shift)
}

// Scale zooms by ZoomFactor per tick; positive deltas move closer.
func (vc *ViewControl) Scale(delta float32) {
	z := vc.zoom * math32.Pow(ZoomFactor, delta)
	if math32.IsNaN(z) {
		return
	}
	vc.zoom = clamp(z, MinZoom, MaxZoom)
}

// ChangeFieldOfView widens (positive steps) or narrows the field of view.
func (vc *ViewControl) ChangeFieldOfView(steps float32) {
	vc.fov = clamp(vc.fov+steps*FieldOfViewStep, MinFieldOfView, MaxFieldOfView)
}

// IsOrthographic reports whether the field of view is at its minimum.
func (vc *ViewControl) IsOrthographic() bool {
	return vc.fov <= MinFieldOfView+1e-3
}

// Eye returns the camera position.
func (vc *ViewControl) Eye() math.Vec3 {
	return vc.lookAt.Add(vc.front.Scale(vc.distance()))
}

// Aspect returns the viewport aspect ratio.
func (vc *ViewControl) Aspect() float32 {
	return float32(vc.width) / float32(vc.height)
}

// Viewport returns the viewport size.
func (vc *ViewControl) Viewport() (width, height int) {
	return vc.width, vc.height
}

// State returns a snapshot of the camera.
func (vc *ViewControl) State() ViewState {
	return ViewState{
		FieldOfView:    vc.fov,
		Zoom:           vc.zoom,
		LookAt:         vc.lookAt,
		Eye:            vc.Eye(),
		Front:          vc.front,
		Up:             vc.up,
		ViewportWidth:  vc.width,
		ViewportHeight: vc.height,
	}
}

// ViewMatrix derives the view matrix from the current state.
func (vc *ViewControl) ViewMatrix() math.Mat4 {
	return math.LookAt(vc.Eye(), vc.lookAt, vc.up)
}

// ProjectionMatrix derives the projection from the current state and
// viewport.
func (vc *ViewControl) ProjectionMatrix() math.Mat4 {
	near, far := vc.clipPlanes()
	aspect := vc.Aspect()
	if vc.IsOrthographic() {
		r := vc.viewRatio()
		return math.Ortho(-aspect*r, aspect*r, -r, r, near, far)
	}
	return math.Perspective(math.Radians(vc.fov), aspect, near, far)
}

// extent is the scene size the camera frames; an empty or flat scene
// frames a unit volume.
func (vc *ViewControl) extent() float32 {
	e := vc.bounds.MaxExtent()
	if e <= 0 || math32.IsNaN(e) || math32.IsInf(e, 0) {
		return 1
	}
	return e
}

// viewRatio is half the visible height at the look-at point.
func (vc *ViewControl) viewRatio() float32 {
	return vc.zoom * vc.extent()
}

func (vc *ViewControl) distance() float32 {
	return vc.viewRatio() / math32.Tan(math.Radians(vc.fov)/2)
}

func (vc *ViewControl) clipPlanes() (near, far float32) {
	e := vc.extent()
	d := vc.distance()
	near = math32.Max(0.01*e, d-3*e)
	far = d + 3*e
	return near, far
}

func (vc *ViewControl) right() math.Vec3 {
	return vc.up.Cross(vc.front).Normalize()
}

// setOrientation re-orthonormalizes front and up. A rotation result that
// collapses (never expected from pure rotations) keeps the previous frame.
func (vc *ViewControl) setOrientation(front, up math.Vec3) {
	f := front.Normalize()
	r := up.Cross(f).Normalize()
	u := f.Cross(r).Normalize()
	if !f.IsFinite() || !u.IsFinite() || f.Length() < 0.5 || u.Length() < 0.5 {
		return
	}
	vc.front = f
	vc.up = u
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
