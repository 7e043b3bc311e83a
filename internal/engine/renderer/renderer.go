// Package renderer submits models and debug passes to the GPU.
package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/engine/debug"
	"github.com/Faultbox/modelview/internal/engine/gpu"
	"github.com/Faultbox/modelview/internal/engine/lighting"
	"github.com/Faultbox/modelview/internal/engine/scene"
	"github.com/Faultbox/modelview/internal/logger"
)

var (
	// ErrInvalidProgram is returned when a shader failed to compile or link.
	ErrInvalidProgram = errors.New("invalid shader program")
	// ErrNilModel is returned by Submit for a nil model.
	ErrNilModel = errors.New("nil model")
)

// Gizmo layout.
const (
	gizmoSize   = 100
	gizmoMargin = 10
	gizmoLength = 1.5
)

const (
	axesLength = 5
	axesWidth  = 3
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the renderer's logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) { r.log = logger.OrNop(l) }
}

// WithGrid sets the grid half-extent in units. Zero disables the grid.
func WithGrid(half int) Option {
	return func(r *Renderer) { r.gridHalf = half }
}

// WithAxes turns the world axes pass on or off.
func WithAxes(on bool) Option {
	return func(r *Renderer) { r.showAxes = on }
}

// WithLight replaces the default sun used by Submit.
func WithLight(l lighting.Sun) Option {
	return func(r *Renderer) { r.light = l }
}

// WithSkybox draws s first in BeginScene. The renderer takes ownership.
func WithSkybox(s *Skybox) Option {
	return func(r *Renderer) { r.skybox = s }
}

// Renderer owns the shared line buffer and the per-frame debug passes.
type Renderer struct {
	dev   gpu.Device
	lines scene.Shader
	log   *zap.Logger

	lineVAO gpu.VertexArray
	lineVBO gpu.Buffer

	gridHalf int
	showAxes bool
	grid     []debug.Line
	axes     []debug.Line
	gizmo    []debug.Line
	skybox   *Skybox
	light    lighting.Sun
	closed   bool
}

// New sets the global depth and blend state once and creates the line
// buffer. lineShader draws grid, axes, gizmo and selection boxes.
func New(dev gpu.Device, lineShader scene.Shader, opts ...Option) (*Renderer, error) {
	if lineShader == nil || !lineShader.Valid() {
		return nil, fmt.Errorf("line shader: %w", ErrInvalidProgram)
	}

	r := &Renderer{
		dev:      dev,
		lines:    lineShader,
		log:      zap.NewNop(),
		gridHalf: 50,
		showAxes: true,
		light:    lighting.DefaultSun(),
	}
	for _, opt := range opts {
		opt(r)
	}

	dev.Enable(gpu.DepthTest)
	dev.DepthFunc(gpu.Less)
	dev.Enable(gpu.Blend)
	dev.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)

	r.lineVAO = dev.CreateVertexArray()
	r.lineVBO = dev.CreateBuffer()
	dev.BindVertexArray(r.lineVAO)
	dev.BindBuffer(gpu.ArrayBuffer, r.lineVBO)
	dev.BufferData(gpu.ArrayBuffer, 6*4, nil, gpu.DynamicDraw)
	dev.VertexAttrib(0, 3, 3*4, 0)
	dev.BindVertexArray(0)

	r.grid = debug.GridLines(r.gridHalf, 1, debug.GridColor)
	r.axes = debug.AxisLines(axesLength)
	r.gizmo = debug.AxisLines(gizmoLength)

	r.log.Debug("renderer created",
		zap.Int("grid_lines", len(r.grid)),
		zap.Bool("axes", r.showAxes),
		zap.Bool("skybox", r.skybox != nil),
	)
	return r, nil
}

// Submit draws one model with shader under the renderer's sun. Only the
// program and its uniforms change; no other global state is touched.
func (r *Renderer) Submit(shader scene.Shader, m *scene.Model, view, projection mgl32.Mat4) error {
	if shader == nil || !shader.Valid() {
		return ErrInvalidProgram
	}
	if m == nil {
		return ErrNilModel
	}
	shader.Use()
	shader.SetMat4("u_View", view)
	shader.SetMat4("u_Projection", projection)
	r.light.Apply(shader)
	m.Draw(shader)
	return nil
}

// BeginScene draws the skybox, grid and axes for this frame.
func (r *Renderer) BeginScene(view, projection mgl32.Mat4) {
	if r.skybox != nil {
		r.skybox.Draw(view, projection)
	}
	if len(r.grid) > 0 {
		r.DrawGrid(view, projection)
	}
	if r.showAxes {
		r.DrawAxes(view, projection)
	}
}

// DrawGrid draws the XZ reference grid.
func (r *Renderer) DrawGrid(view, projection mgl32.Mat4) {
	r.drawLines(r.grid, view, projection)
}

// DrawAxes draws the world axes on top of everything drawn so far.
func (r *Renderer) DrawAxes(view, projection mgl32.Mat4) {
	r.dev.Clear(gpu.DepthBuffer)
	r.dev.LineWidth(axesWidth)
	r.drawLines(r.axes, view, projection)
	r.dev.LineWidth(1)
}

// DrawGizmo draws the camera orientation in a small corner viewport. The
// caller's viewport is restored afterwards.
func (r *Renderer) DrawGizmo(view mgl32.Mat4) {
	saved := r.dev.Viewport()
	r.dev.SetViewport(gpu.Viewport{X: gizmoMargin, Y: gizmoMargin, Width: gizmoSize, Height: gizmoSize})
	r.dev.Clear(gpu.DepthBuffer)

	rotation := view.Mat3().Mat4()
	gizmoView := mgl32.Translate3D(0, 0, -5).Mul4(rotation)
	projection := mgl32.Ortho(-2, 2, -2, 2, 0.1, 10)

	r.dev.LineWidth(axesWidth)
	r.drawLines(r.gizmo, gizmoView, projection)
	r.dev.LineWidth(1)

	r.dev.SetViewport(saved)
}

// DrawBounds outlines the world-space bounding box of m.
func (r *Renderer) DrawBounds(m *scene.Model, color mgl32.Vec3, view, projection mgl32.Mat4) {
	if m == nil {
		return
	}
	r.drawLines(debug.BoundsLines(m.WorldBounds(), debug.DefaultBoundsPadding, color), view, projection)
}

// drawLines streams each segment through the shared buffer and leaves the
// VAO unbound.
func (r *Renderer) drawLines(lines []debug.Line, view, projection mgl32.Mat4) {
	if len(lines) == 0 {
		return
	}
	r.lines.Use()
	r.lines.SetMat4("u_Model", mgl32.Ident4())
	r.lines.SetMat4("u_View", view)
	r.lines.SetMat4("u_Projection", projection)

	r.dev.BindVertexArray(r.lineVAO)
	r.dev.BindBuffer(gpu.ArrayBuffer, r.lineVBO)
	for _, l := range lines {
		data := [6]float32{l.From[0], l.From[1], l.From[2], l.To[0], l.To[1], l.To[2]}
		r.dev.BufferSubData(gpu.ArrayBuffer, 0, len(data)*4, data[:])
		r.lines.SetVec3("u_Color", l.Color)
		r.dev.DrawArrays(gpu.Lines, 0, 2)
	}
	r.dev.BindVertexArray(0)
}

// Clear clears color and depth.
func (r *Renderer) Clear(red, green, blue, alpha float32) {
	r.dev.ClearColor(red, green, blue, alpha)
	r.dev.Clear(gpu.ColorBuffer | gpu.DepthBuffer)
}

// SetViewport sets the draw area in pixels.
func (r *Renderer) SetViewport(x, y, width, height int) {
	r.dev.SetViewport(gpu.Viewport{X: int32(x), Y: int32(y), Width: int32(width), Height: int32(height)})
}

// Resize handles a framebuffer size change.
func (r *Renderer) Resize(width, height int) {
	r.SetViewport(0, 0, width, height)
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Close releases the line buffer and the skybox.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.log.Info("closing renderer")
	r.dev.DeleteVertexArray(r.lineVAO)
	r.dev.DeleteBuffer(r.lineVBO)
	if r.skybox != nil {
		r.skybox.Release()
	}
}
