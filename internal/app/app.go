// Package app wires the window, renderer, camera and scene into the viewer's
// run loop.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/config"
	"github.com/Faultbox/modelview/internal/engine/camera"
	"github.com/Faultbox/modelview/internal/engine/debug"
	"github.com/Faultbox/modelview/internal/engine/gpu"
	"github.com/Faultbox/modelview/internal/engine/importer"
	"github.com/Faultbox/modelview/internal/engine/input"
	"github.com/Faultbox/modelview/internal/engine/lighting"
	"github.com/Faultbox/modelview/internal/engine/model"
	"github.com/Faultbox/modelview/internal/engine/renderer"
	"github.com/Faultbox/modelview/internal/engine/scene"
	"github.com/Faultbox/modelview/internal/engine/shader"
	"github.com/Faultbox/modelview/internal/engine/shader/shaders"
	"github.com/Faultbox/modelview/internal/engine/window"
	"github.com/Faultbox/modelview/internal/logger"
)

var selectionColor = mgl32.Vec3{1, 0.8, 0}

// programs are the shaders the app draws with.
type programs struct {
	model  scene.Shader
	line   scene.Shader
	skybox scene.Shader
}

// App owns every engine component for the lifetime of the viewer.
type App struct {
	cfg *config.Config
	log *zap.Logger

	win      *window.Window
	dev      gpu.Device
	input    *input.Input
	camera   camera.Camera
	renderer *renderer.Renderer
	scene    *scene.Scene
	loader   *scene.Loader
	shots    *debug.Screenshots

	progs    programs
	compiled []*shader.Program

	// savePath overrides where F5 writes the config; empty uses config.SavePath.
	savePath string

	width, height int
	selected      int
	running       bool
	closed        bool

	frames   int
	fpsTimer time.Time
}

// New creates the window and GL context, compiles the shaders and loads the
// configured scene.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := newApp(cfg, log)

	var err error
	a.win, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The device needs the context the window just made current.
	dev, err := gpu.Init(log.Named("gpu"))
	if err != nil {
		a.Close()
		return nil, err
	}

	progs := a.compilePrograms()

	a.width, a.height = a.win.DrawableSize()
	if err := a.init(dev, progs, importer.New(log.Named("importer"))); err != nil {
		a.Close()
		return nil, err
	}

	log.Info("viewer initialized", zap.Int("models", a.scene.Len()))
	return a, nil
}

func newApp(cfg *config.Config, log *zap.Logger) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		input:    input.New(),
		scene:    scene.New(),
		selected: -1,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
		shots:    debug.NewScreenshots(cfg.Screenshots.Dir, cfg.Screenshots.Prefix),
	}
}

// compilePrograms builds the model, line and skybox programs from disk when
// configured, otherwise from the embedded sources. Failures are logged and
// leave an invalid program behind; init decides what can still be drawn.
func (a *App) compilePrograms() programs {
	paths := a.cfg.Render.Shaders
	return programs{
		model:  a.buildProgram("model", paths.ModelVertex, paths.ModelFragment, shaders.DefaultVertexShader, shaders.DefaultFragmentShader),
		line:   a.buildProgram("line", paths.LineVertex, paths.LineFragment, shaders.LineVertexShader, shaders.LineFragmentShader),
		skybox: a.buildProgram("skybox", "", "", shaders.SkyboxVertexShader, shaders.SkyboxFragmentShader),
	}
}

// buildProgram prefers the sources on disk and falls back to the embedded
// ones when they fail.
func (a *App) buildProgram(name, vsPath, fsPath, vertex, fragment string) *shader.Program {
	if vsPath != "" && fsPath != "" {
		prog, err := shader.Load(name, vsPath, fsPath)
		if err == nil {
			a.compiled = append(a.compiled, prog)
			return prog
		}
		a.logShaderError(name, err)
		a.log.Warn("falling back to embedded shader", zap.String("program", name))
	}

	prog, err := shader.Compile(name, vertex, fragment)
	if err != nil {
		a.logShaderError(name, err)
	}
	a.compiled = append(a.compiled, prog)
	return prog
}

func (a *App) logShaderError(name string, err error) {
	fields := []zap.Field{zap.String("program", name), zap.Error(err)}
	var ce *shader.CompileError
	if errors.As(err, &ce) {
		fields = append(fields, zap.String("stage", string(ce.Stage)))
	}
	a.log.Error("shader build failed", fields...)
}

// init creates everything that only needs a device: renderer, camera and
// the startup scene.
func (a *App) init(dev gpu.Device, p programs, imp importer.Importer) error {
	a.dev = dev
	a.progs = p

	opts := []renderer.Option{
		renderer.WithLogger(a.log.Named("renderer")),
		renderer.WithAxes(a.cfg.Render.Axes),
		renderer.WithLight(newSun(a.cfg.Render.Light)),
	}
	if a.cfg.Render.Grid {
		opts = append(opts, renderer.WithGrid(a.cfg.Render.GridSize))
	} else {
		opts = append(opts, renderer.WithGrid(0))
	}
	var sky *renderer.Skybox
	skyboxWanted := a.cfg.Skybox.Enabled && len(a.cfg.Skybox.Faces) == 6
	if skyboxWanted && !p.skybox.Valid() {
		a.log.Warn("skybox disabled: program is not usable")
		skyboxWanted = false
	}
	if skyboxWanted {
		var faces [6]string
		copy(faces[:], a.cfg.Skybox.Faces)
		var err error
		sky, err = renderer.NewSkybox(dev, p.skybox, faces, a.log.Named("skybox"))
		if err != nil {
			return fmt.Errorf("creating skybox: %w", err)
		}
		opts = append(opts, renderer.WithSkybox(sky))
	}

	r, err := renderer.New(dev, p.line, opts...)
	if err != nil {
		// The renderer only owns the skybox once New succeeds.
		if sky != nil {
			sky.Release()
		}
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer = r
	a.renderer.Resize(a.width, a.height)

	if !p.model.Valid() {
		a.log.Warn("model program is not usable; only debug passes will draw")
	}

	a.camera = newCamera(a.cfg.Camera)
	a.loader = scene.NewLoader(dev, imp, a.log.Named("scene"))
	a.loadScene()

	if orbit, ok := a.camera.(*camera.OrbitCamera); ok {
		orbit.FitToBounds(a.sceneBounds())
	}
	return nil
}

func newSun(cfg config.LightConfig) lighting.Sun {
	return lighting.NewSun(cfg.Azimuth, cfg.Elevation, mgl32.Vec3(cfg.Color), cfg.Ambient)
}

func newCamera(cfg config.CameraConfig) camera.Camera {
	if cfg.Mode == "orbit" {
		c := camera.NewOrbitCamera()
		c.FOV, c.Near, c.Far = cfg.FOV, cfg.Near, cfg.Far
		return c
	}
	c := camera.NewFlyCamera(mgl32.Vec3(cfg.Position))
	c.Speed = cfg.Speed
	c.Sensitivity = cfg.Sensitivity
	c.Near, c.Far = cfg.Near, cfg.Far
	c.SetOrientation(cfg.Yaw, cfg.Pitch)
	c.SetZoom(cfg.FOV)
	return c
}

// loadScene loads every configured model. A model that fails to load stays
// in the scene empty so parent indices keep matching the config.
func (a *App) loadScene() {
	for _, mc := range a.cfg.Scene.Models {
		m, err := a.loader.Load(mc.Path)
		if err != nil {
			a.log.Warn("model left empty", zap.String("path", mc.Path), zap.Error(err))
		}
		m.SetPosition(mc.Position)
		m.SetRotation(mc.Rotation)
		m.SetScale(mc.EffectiveScale())
		m.Spin = mc.Spin
		a.scene.Add(m)
	}

	for i, mc := range a.cfg.Scene.Models {
		if mc.Parent == nil {
			continue
		}
		if err := a.scene.AttachChild(*mc.Parent, i); err != nil {
			a.log.Warn("parent link ignored", zap.Int("model", i), zap.Int("parent", *mc.Parent), zap.Error(err))
		}
	}
}

func (a *App) sceneBounds() model.Bounds {
	b := model.EmptyBounds()
	for _, m := range a.scene.Models() {
		b.Union(m.WorldBounds())
	}
	return b
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (a *App) Run() error {
	if a.closed {
		return errors.New("app is closed")
	}
	a.running = true
	a.fpsTimer = time.Now()
	last := time.Now()

	a.log.Info("starting render loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.frame(dt)
		a.win.SwapBuffers()
		a.countFrame(dt)
	}
	return nil
}

// frame runs everything between polling and presenting.
func (a *App) frame(dt float32) {
	a.handleEvents()
	if !a.running {
		return
	}
	a.updateCamera(dt)
	a.scene.Update(dt)
	a.render()
}

func (a *App) countFrame(dt float32) {
	a.frames++
	if time.Since(a.fpsTimer) < time.Second {
		return
	}
	a.log.Debug("fps",
		zap.Int("count", a.frames),
		zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
	)
	if a.win != nil {
		a.win.SetTitle(fmt.Sprintf("%s - %d fps", a.cfg.Window.Title, a.frames))
	}
	a.frames = 0
	a.fpsTimer = time.Now()
}

// render draws one frame: clear, gizmo, skybox/grid/axes, models, selection.
func (a *App) render() {
	cc := a.cfg.Render.ClearColor
	a.renderer.Clear(cc[0], cc[1], cc[2], cc[3])

	view := a.camera.ViewMatrix()
	projection := a.camera.ProjectionMatrix(a.aspect())

	if a.cfg.Render.Gizmo {
		a.renderer.DrawGizmo(view)
	}
	a.renderer.BeginScene(view, projection)

	if a.progs.model.Valid() {
		for _, m := range a.scene.Models() {
			if err := a.renderer.Submit(a.progs.model, m, view, projection); err != nil {
				a.log.Warn("submit failed", zap.String("model", m.Name()), zap.Error(err))
			}
		}
	}

	if m, ok := a.scene.Model(a.selected); ok {
		a.renderer.DrawBounds(m, selectionColor, view, projection)
	}
}

func (a *App) aspect() float32 {
	if a.height == 0 {
		return 1
	}
	return float32(a.width) / float32(a.height)
}

// Close tears down in reverse order of creation: scene, renderer, shaders,
// window.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.log.Info("closing viewer")

	if a.scene != nil {
		a.scene.Clear()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	for _, p := range a.compiled {
		p.Delete()
	}
	a.compiled = nil
	if a.win != nil {
		a.win.Close()
	}
}
