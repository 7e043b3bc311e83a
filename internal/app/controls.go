package app

import (
	"strings"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/config"
	"github.com/Faultbox/modelview/internal/engine/camera"
	"github.com/Faultbox/modelview/internal/engine/input"
	"github.com/Faultbox/modelview/internal/engine/picking"
)

// Held keys and the camera direction they drive.
var moveKeys = []struct {
	key sdl.Scancode
	dir camera.Direction
}{
	{sdl.SCANCODE_W, camera.Forward},
	{sdl.SCANCODE_S, camera.Backward},
	{sdl.SCANCODE_A, camera.Left},
	{sdl.SCANCODE_D, camera.Right},
	{sdl.SCANCODE_E, camera.Up},
	{sdl.SCANCODE_Q, camera.Down},
}

// handleEvents applies this frame's one-shot events.
func (a *App) handleEvents() {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			a.resize(e.Width, e.Height)
		case input.EventKeyDown:
			a.handleKey(e.Key)
		case input.EventMouseDown:
			switch e.Button {
			case input.ButtonLeft:
				a.pick(e.MouseX, e.MouseY)
			case input.ButtonRight:
				a.captureMouse(true)
			}
		case input.EventMouseUp:
			if e.Button == input.ButtonRight {
				a.captureMouse(false)
			}
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_TAB:
		a.cycleSelection()
	case sdl.SCANCODE_V:
		a.toggleSelectedVisibility()
	case sdl.SCANCODE_O:
		a.logOutliner()
	case sdl.SCANCODE_F:
		a.frameSelection()
	case sdl.SCANCODE_F5:
		a.saveView()
	case sdl.SCANCODE_F12:
		a.screenshot()
	case sdl.SCANCODE_DELETE, sdl.SCANCODE_BACKSPACE:
		a.removeSelected()
	}
}

// updateCamera routes held keys, right-drag and the wheel to the camera.
func (a *App) updateCamera(dt float32) {
	for _, mk := range moveKeys {
		if a.input.IsKeyHeld(mk.key) {
			a.camera.ProcessKeyboard(mk.dir, dt)
		}
	}
	if a.input.IsButtonHeld(input.ButtonRight) {
		dx, dy := a.input.MouseDelta()
		if dx != 0 || dy != 0 {
			// Screen y grows downward; the camera expects positive dy as up.
			a.camera.ProcessMouseMovement(dx, -dy)
		}
	}
	if w := a.input.Wheel(); w != 0 {
		a.camera.ProcessMouseScroll(w)
	}
}

func (a *App) resize(width, height int) {
	if a.win != nil {
		// Events carry window coordinates; GL wants pixels.
		width, height = a.win.DrawableSize()
	}
	if width <= 0 || height <= 0 {
		return
	}
	a.width, a.height = width, height
	a.renderer.Resize(width, height)
}

func (a *App) captureMouse(on bool) {
	if a.win != nil {
		a.win.SetMouseCaptured(on)
	}
}

// Selected returns the selected model index, or -1.
func (a *App) Selected() int { return a.selected }

func (a *App) setSelected(i int) {
	if _, ok := a.scene.Model(i); !ok {
		i = -1
	}
	if i == a.selected {
		return
	}
	a.selected = i
	if m, ok := a.scene.Model(i); ok {
		a.log.Info("selected", zap.Int("index", i), zap.String("model", m.Name()))
	} else {
		a.log.Debug("selection cleared")
	}
}

func (a *App) cycleSelection() {
	n := a.scene.Len()
	if n == 0 {
		a.setSelected(-1)
		return
	}
	a.setSelected((a.selected + 1) % n)
}

// pick selects the nearest visible model under the cursor, or clears the
// selection on a miss.
func (a *App) pick(x, y int) {
	winW, winH := a.width, a.height
	if a.win != nil {
		winW, winH = a.win.GetSize()
	}
	if winW <= 0 || winH <= 0 {
		return
	}
	invViewProj := a.camera.ProjectionMatrix(a.aspect()).Mul4(a.camera.ViewMatrix()).Inv()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(winW), float32(winH), invViewProj)

	idx, dist, ok := picking.PickModel(ray, a.scene.Models())
	if !ok {
		a.setSelected(-1)
		return
	}
	a.log.Debug("pick hit", zap.Int("index", idx), zap.Float32("distance", dist))
	a.setSelected(idx)
}

func (a *App) toggleSelectedVisibility() {
	m, ok := a.scene.Model(a.selected)
	if !ok {
		return
	}
	visible := !m.Visible()
	m.SetVisible(visible)
	a.log.Info("visibility toggled", zap.String("model", m.Name()), zap.Bool("visible", visible))
}

func (a *App) removeSelected() {
	m, ok := a.scene.Model(a.selected)
	if !ok {
		return
	}
	name := m.Name()
	a.scene.Remove(a.selected)
	a.log.Info("model removed", zap.String("model", name))
	a.selected = -1
}

// frameSelection points the orbit camera at the selected model.
func (a *App) frameSelection() {
	orbit, ok := a.camera.(*camera.OrbitCamera)
	if !ok {
		return
	}
	if m, ok := a.scene.Model(a.selected); ok {
		orbit.FitToBounds(m.WorldBounds())
		return
	}
	orbit.FitToBounds(a.sceneBounds())
}

// Outliner returns the scene tree, one model per line, children indented.
func (a *App) Outliner() string {
	var b strings.Builder
	a.scene.Walk(func(i, depth int) {
		m, _ := a.scene.Model(i)
		b.WriteString(strings.Repeat("  ", depth))
		if i == a.selected {
			b.WriteString("* ")
		} else {
			b.WriteString("- ")
		}
		b.WriteString(m.Name())
		if !m.Visible() && m.MeshCount() > 0 {
			b.WriteString(" (hidden)")
		}
		b.WriteByte('\n')
	})
	return b.String()
}

func (a *App) logOutliner() {
	a.log.Info("outliner\n"+a.Outliner(), zap.Int("models", a.scene.Len()))
}

func (a *App) screenshot() {
	path, err := a.shots.Capture(a.dev)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// saveView writes the fly camera and the current scene back into the config
// so the next start opens where this session left off.
func (a *App) saveView() {
	if fly, ok := a.camera.(*camera.FlyCamera); ok {
		a.cfg.Camera.Position = fly.Position()
		a.cfg.Camera.Yaw = fly.Yaw()
		a.cfg.Camera.Pitch = fly.Pitch()
		a.cfg.Camera.FOV = fly.Zoom()
	}

	models := make([]config.ModelConfig, 0, a.scene.Len())
	for i, m := range a.scene.Models() {
		mc := config.ModelConfig{
			Path:     m.Path(),
			Position: m.Position(),
			Rotation: m.Rotation(),
			Scale:    m.Scale(),
			Spin:     m.Spin,
		}
		if p, ok := a.scene.Parent(i); ok {
			mc.Parent = &p
		}
		models = append(models, mc)
	}
	a.cfg.Scene.Models = models

	path := a.savePath
	if path == "" {
		path = config.SavePath()
	}
	if err := a.cfg.SaveTo(path); err != nil {
		a.log.Error("saving view failed", zap.String("path", path), zap.Error(err))
		return
	}
	a.log.Info("view saved", zap.String("path", path), zap.Int("models", len(models)))
}
