// Package renderer draws scene batches with OpenGL 4.1 core.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/geoview/internal/engine/lighting"
	"github.com/Faultbox/geoview/internal/engine/scene"
	"github.com/Faultbox/geoview/internal/engine/shader"
	"github.com/Faultbox/geoview/internal/logger"
	"github.com/Faultbox/geoview/pkg/math"
)

// ErrGL is returned by Finish when the driver reported an error while the
// frame was recorded.
var ErrGL = errors.New("renderer: gl error")

type batchKind uint8

const (
	kindPoints batchKind = iota
	kindMesh
	kindLines
)

type bufferKey struct {
	kind batchKind
	id   uint64
}

// gpuBuffer is one uploaded batch: a VAO with up to three attribute VBOs.
type gpuBuffer struct {
	vao     uint32
	vbos    [3]uint32
	version uint64
	count   int32
}

// Renderer implements the viewer backend on the current GL context.
type Renderer struct {
	width, height int

	points *shader.Program
	mesh   *shader.Program
	lines  *shader.Program
	bound  uint32

	buffers map[bufferKey]*gpuBuffer

	view       math.Mat4
	projection math.Mat4
	eye        math.Vec3
	light      lighting.Setup
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	r := &Renderer{
		buffers:    make(map[bufferKey]*gpuBuffer),
		view:       math.Identity(),
		projection: math.Identity(),
	}

	var err error
	if r.points, err = shader.NewProgram("points", shader.PointVertexShader, shader.PointFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.lines, err = shader.NewProgram("lines", shader.LineVertexShader, shader.PointFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.mesh, err = shader.NewProgram("mesh", shader.MeshVertexShader, shader.MeshFragmentShader); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("buffers", len(r.buffers)))
	for key, buf := range r.buffers {
		deleteBuffer(buf)
		delete(r.buffers, key)
	}
	for _, p := range []*shader.Program{r.points, r.lines, r.mesh} {
		if p != nil {
			logger.Debug("deleting program", zap.String("program", p.Name()))
			p.Delete()
		}
	}
	r.bound = 0
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Clear starts a new frame.
func (r *Renderer) Clear(background math.Color) {
	gl.ClearColor(background.R, background.G, background.B, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetCamera sets the matrices used by subsequent draws.
func (r *Renderer) SetCamera(view, projection math.Mat4, eye math.Vec3) {
	r.view = view
	r.projection = projection
	r.eye = eye
	// uniforms are per program; force a rebind on the next draw
	r.bound = 0
}

// SetLighting sets the lights used by subsequent mesh draws.
func (r *Renderer) SetLighting(s lighting.Setup) {
	r.light = s
	r.bound = 0
}

// DrawPoints draws a point batch with the given point size in pixels.
func (r *Renderer) DrawPoints(b *scene.PointBatch, size float32) {
	if b == nil || b.Count == 0 {
		return
	}
	buf := r.upload(bufferKey{kindPoints, b.ID}, b.Version, int32(b.Count), b.Positions, b.Colors)
	r.use(r.points)
	gl.Uniform1f(r.points.Uniform("uPointSize"), size)
	gl.BindVertexArray(buf.vao)
	gl.DrawArrays(gl.POINTS, 0, buf.count)
	gl.BindVertexArray(0)
}

// DrawMesh draws a triangle batch. Unlit batches use their colours as is.
func (r *Renderer) DrawMesh(b *scene.MeshBatch, lit bool) {
	if b == nil || b.Count == 0 {
		return
	}
	buf := r.upload(bufferKey{kindMesh, b.ID}, b.Version, int32(b.Count), b.Positions, b.Normals, b.Colors)
	r.use(r.mesh)
	gl.Uniform1i(r.mesh.Uniform("uLit"), boolToInt(lit && r.light.Enabled))

	if b.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.BindVertexArray(buf.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, buf.count)
	gl.BindVertexArray(0)
	if b.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// DrawLines draws a line segment batch.
func (r *Renderer) DrawLines(b *scene.LineBatch) {
	if b == nil || b.Count == 0 {
		return
	}
	buf := r.upload(bufferKey{kindLines, b.ID}, b.Version, int32(b.Count), b.Positions)
	r.use(r.lines)
	gl.Uniform3f(r.lines.Uniform("uColor"), b.Color.R, b.Color.G, b.Color.B)
	gl.BindVertexArray(buf.vao)
	gl.DrawArrays(gl.LINES, 0, buf.count)
	gl.BindVertexArray(0)
}

// Finish drains the GL error queue and reports the first error.
func (r *Renderer) Finish() error {
	var first uint32
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if first == 0 {
			first = code
		}
	}
	if first != 0 {
		return fmt.Errorf("%w: 0x%04x", ErrGL, first)
	}
	return nil
}

// ReadPixels reads the back buffer as RGBA, bottom row first.
func (r *Renderer) ReadPixels(width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("read pixels: invalid size %dx%d", width, height)
	}
	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	if code := gl.GetError(); code != gl.NO_ERROR {
		return nil, fmt.Errorf("read pixels: %w: 0x%04x", ErrGL, code)
	}
	return pixels, nil
}

// use binds a program and uploads the frame uniforms when it changes.
func (r *Renderer) use(p *shader.Program) {
	if r.bound == p.ID {
		return
	}
	gl.UseProgram(p.ID)
	r.bound = p.ID

	gl.UniformMatrix4fv(p.Uniform("uView"), 1, false, r.view.Ptr())
	gl.UniformMatrix4fv(p.Uniform("uProjection"), 1, false, r.projection.Ptr())

	if p != r.mesh {
		return
	}
	l := r.light
	gl.Uniform3f(p.Uniform("uEye"), r.eye.X, r.eye.Y, r.eye.Z)
	gl.Uniform3f(p.Uniform("uAmbient"), l.Ambient.R, l.Ambient.G, l.Ambient.B)
	positions := make([]float32, 0, lighting.FillLights*3)
	colors := make([]float32, 0, lighting.FillLights*3)
	for _, f := range l.Fill {
		positions = append(positions, f.Position.X, f.Position.Y, f.Position.Z)
		colors = append(colors, f.Color.R, f.Color.G, f.Color.B)
	}
	gl.Uniform3fv(p.Uniform("uFillPositions"), lighting.FillLights, &positions[0])
	gl.Uniform3fv(p.Uniform("uFillColors"), lighting.FillLights, &colors[0])
	gl.Uniform3f(p.Uniform("uHeadPosition"), l.Head.Position.X, l.Head.Position.Y, l.Head.Position.Z)
	gl.Uniform3f(p.Uniform("uHeadColor"), l.Head.Color.R, l.Head.Color.G, l.Head.Color.B)
	gl.Uniform1f(p.Uniform("uSpecular"), l.Specular)
	gl.Uniform1f(p.Uniform("uShininess"), l.Shininess)
}

// upload returns the buffer for key, re-uploading when version changed.
// Each attribute array holds three floats per vertex and binds to the
// location matching its position in attrs.
func (r *Renderer) upload(key bufferKey, version uint64, count int32, attrs ...[]float32) *gpuBuffer {
	buf, ok := r.buffers[key]
	if ok && buf.version == version {
		return buf
	}
	if !ok {
		buf = &gpuBuffer{}
		gl.GenVertexArrays(1, &buf.vao)
		gl.GenBuffers(int32(len(attrs)), &buf.vbos[0])
		r.buffers[key] = buf
	}

	gl.BindVertexArray(buf.vao)
	for i, data := range attrs {
		gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbos[i])
		if len(data) > 0 {
			gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
		} else {
			gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		}
		gl.VertexAttribPointer(uint32(i), 3, gl.FLOAT, false, 3*4, nil)
		gl.EnableVertexAttribArray(uint32(i))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	buf.version = version
	buf.count = count
	logger.Debug("batch uploaded",
		zap.Uint64("id", key.id),
		zap.Uint8("kind", uint8(key.kind)),
		zap.Uint64("version", version),
		zap.Int32("vertices", count),
	)
	return buf
}

func deleteBuffer(buf *gpuBuffer) {
	for i := range buf.vbos {
		if buf.vbos[i] != 0 {
			gl.DeleteBuffers(1, &buf.vbos[i])
		}
	}
	if buf.vao != 0 {
		gl.DeleteVertexArrays(1, &buf.vao)
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
