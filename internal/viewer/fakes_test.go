package viewer

import (
	"errors"

	"github.com/Faultbox/geoview/internal/engine/input"
	"github.com/Faultbox/geoview/internal/engine/lighting"
	"github.com/Faultbox/geoview/internal/engine/scene"
	"github.com/Faultbox/geoview/pkg/math"
)

type fakeSurface struct {
	width, height int
	pending       [][]input.Event
	modes         []input.PumpMode
	presents      int
	destroyed     bool
	wakes         int

	// onPump runs inside PumpEvents, standing in for events that arrive
	// while the loop waits.
	onPump func(mode input.PumpMode)
}

func (s *fakeSurface) PumpEvents(mode input.PumpMode) ([]input.Event, error) {
	s.modes = append(s.modes, mode)
	if s.onPump != nil {
		s.onPump(mode)
	}
	if len(s.pending) == 0 {
		return nil, nil
	}
	events := s.pending[0]
	s.pending = s.pending[1:]
	return events, nil
}

func (s *fakeSurface) queue(events ...input.Event) {
	s.pending = append(s.pending, events)
}

func (s *fakeSurface) Present()         { s.presents++ }
func (s *fakeSurface) Size() (int, int) { return s.width, s.height }
func (s *fakeSurface) Destroy()         { s.destroyed = true }
func (s *fakeSurface) Wake()            { s.wakes++ }

type fakeBackend struct {
	width, height int
	clears        []math.Color
	points        []int
	pointSizes    []float32
	meshes        []*scene.MeshBatch
	lit           []bool
	lines         []int
	lights        []lighting.Setup
	finishErrs    []error
	closed        bool
	reads         int
}

func (b *fakeBackend) Resize(width, height int) { b.width, b.height = width, height }
func (b *fakeBackend) Clear(bg math.Color)      { b.clears = append(b.clears, bg) }

func (b *fakeBackend) SetCamera(view, projection math.Mat4, eye math.Vec3) {}

func (b *fakeBackend) SetLighting(s lighting.Setup) { b.lights = append(b.lights, s) }

func (b *fakeBackend) DrawPoints(batch *scene.PointBatch, size float32) {
	b.points = append(b.points, batch.Count)
	b.pointSizes = append(b.pointSizes, size)
}

func (b *fakeBackend) DrawMesh(batch *scene.MeshBatch, lit bool) {
	b.meshes = append(b.meshes, batch)
	b.lit = append(b.lit, lit)
}

func (b *fakeBackend) DrawLines(batch *scene.LineBatch) { b.lines = append(b.lines, batch.Count) }

func (b *fakeBackend) Finish() error {
	if len(b.finishErrs) == 0 {
		return nil
	}
	err := b.finishErrs[0]
	b.finishErrs = b.finishErrs[1:]
	return err
}

func (b *fakeBackend) ReadPixels(width, height int) ([]byte, error) {
	b.reads++
	return make([]byte, width*height*4), nil
}

func (b *fakeBackend) Close() { b.closed = true }

var errLostContext = errors.New("context lost")

type harness struct {
	surface *fakeSurface
	backend *fakeBackend
	viewer  *Viewer
}

func newHarness(opts Options) *harness {
	h := &harness{
		surface: &fakeSurface{},
		backend: &fakeBackend{},
	}
	surfaces := func(title string, width, height, left, top int) (Surface, error) {
		h.surface.width, h.surface.height = width, height
		return h.surface, nil
	}
	backends := func() (Backend, error) {
		return h.backend, nil
	}
	h.viewer = New(surfaces, backends, opts)
	return h
}
