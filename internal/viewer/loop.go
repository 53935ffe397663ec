package viewer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/geoview/internal/engine/input"
	"github.com/Faultbox/geoview/pkg/geometry"
)

// Run blocks in the event loop until the window is closed.
func (v *Viewer) Run() {
	for v.WaitEvents() {
	}
}

// WaitEvents runs one loop iteration, sleeping until an event arrives.
// It returns false once the window is closed.
func (v *Viewer) WaitEvents() bool {
	return v.step(input.Blocking)
}

// PollEvents runs one loop iteration without waiting. It returns false
// once the window is closed.
func (v *Viewer) PollEvents() bool {
	return v.step(input.NonBlocking)
}

func (v *Viewer) step(mode input.PumpMode) bool {
	if v.surface == nil {
		return false
	}

	events, err := v.surface.PumpEvents(mode)
	if err != nil {
		v.log.Warn("event pump failed", zap.Error(err))
	}
	// after the pump so geometry whose wake ended a blocking wait is
	// drawn in this iteration
	v.drainIncoming()
	v.router.DispatchAll(events)

	if v.flags.CloseRequested() {
		v.log.Info("window closed", zap.Uint64("frames", v.frames))
		v.release()
		return false
	}

	for _, cmd := range v.router.TakeDeferred() {
		switch cmd {
		case input.CmdScreenshot:
			v.screenshotPending = true
		case input.CmdSaveConfig:
			v.saveSettings()
		}
	}

	if v.flags.RedrawRequested() {
		v.render()
	}
	return true
}

func (v *Viewer) drainIncoming() {
	for {
		select {
		case g := <-v.incoming:
			v.AddGeometry(g)
		default:
			return
		}
	}
}

// render draws one frame. On a backend error the frame is dropped and the
// redraw flag stays set so the next iteration retries.
func (v *Viewer) render() {
	b := v.backend

	width, height := v.view.Viewport()
	if width != v.backendWidth || height != v.backendHeight {
		b.Resize(width, height)
		v.backendWidth, v.backendHeight = width, height
	}

	eye := v.view.Eye()
	b.Clear(v.mode.Background)
	b.SetCamera(v.view.ViewMatrix(), v.view.ProjectionMatrix(), eye)

	bounds := v.registry.BoundingBox()
	b.SetLighting(v.lights.Update(bounds, v.mode.LightOn, eye))

	for _, g := range v.registry.Items() {
		if g.IsEmpty() {
			continue
		}
		switch g.Kind() {
		case geometry.KindPointCloud:
			pc, ok := g.(geometry.PointCloud)
			if !ok {
				continue
			}
			points := v.mode.Points
			b.DrawPoints(v.builder.Points(pc, points, bounds), points.PointSize)
			if points.ShowNormal {
				if normals := v.builder.Normals(pc, bounds); normals != nil {
					b.DrawLines(normals)
				}
			}

		case geometry.KindTriangleMesh:
			m, ok := g.(geometry.TriangleMesh)
			if !ok {
				continue
			}
			batch := v.builder.Mesh(m, v.mode.Mesh)
			b.DrawMesh(batch, !batch.Wireframe)
		}
	}

	if v.mode.ShowBoundingBox {
		if outline := v.builder.Bounds(bounds); outline != nil {
			b.DrawLines(outline)
		}
	}

	if err := b.Finish(); err != nil {
		v.log.Warn("frame dropped", zap.Error(err))
		return
	}

	if v.screenshotPending {
		v.screenshotPending = false
		v.saveScreenshot(width, height)
	}

	v.surface.Present()
	v.flags.ClearRedraw()
	v.frames++
}

func (v *Viewer) saveScreenshot(width, height int) {
	if v.capture == nil {
		v.log.Warn("screenshot requested but capture is disabled")
		return
	}
	pixels, err := v.backend.ReadPixels(width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	path, err := v.capture.Save(pixels, width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) saveSettings() {
	if v.settings == nil {
		v.log.Warn("save config requested but no config is attached")
		return
	}
	v.settings.Render = RenderConfigFromMode(v.settings.Render, v.mode)

	var err error
	if v.settingsPath != "" {
		err = v.settings.SaveTo(v.settingsPath)
	} else {
		err = v.settings.Save()
	}
	if err != nil {
		v.log.Warn("config save failed", zap.Error(err))
		return
	}
	v.log.Info("config saved")
}
