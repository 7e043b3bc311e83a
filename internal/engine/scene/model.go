package scene

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/internal/engine/model"
	"github.com/Faultbox/modelview/internal/engine/texture"
)

// Model is a loaded asset: its meshes plus a position, rotation and scale.
// Meshes are fixed after load.
type Model struct {
	// Spin is applied by Scene.Update in degrees per second per axis.
	Spin mgl32.Vec3

	path     string
	meshes   []*Mesh
	textures *texture.Cache

	position mgl32.Vec3
	rotation mgl32.Vec3 // Euler degrees
	scale    mgl32.Vec3

	matrix mgl32.Mat4
	dirty  bool
}

// NewModel returns an empty model for path with unit scale.
func NewModel(path string) *Model {
	return &Model{
		path:  path,
		scale: mgl32.Vec3{1, 1, 1},
		dirty: true,
	}
}

// Path returns the source path.
func (m *Model) Path() string { return m.path }

// Name returns the file name of the source path without its extension.
func (m *Model) Name() string {
	return NameFromPath(m.path)
}

// NameFromPath returns the segment after the last '/' or '\', cut at its
// last '.'.
func NameFromPath(path string) string {
	name := path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}

// Meshes returns a copy of the mesh list.
func (m *Model) Meshes() []*Mesh {
	out := make([]*Mesh, len(m.meshes))
	copy(out, m.meshes)
	return out
}

// MeshCount returns the number of meshes.
func (m *Model) MeshCount() int { return len(m.meshes) }

func (m *Model) Position() mgl32.Vec3 { return m.position }
func (m *Model) Rotation() mgl32.Vec3 { return m.rotation }
func (m *Model) Scale() mgl32.Vec3    { return m.scale }

func (m *Model) SetPosition(p mgl32.Vec3) {
	m.position = p
	m.dirty = true
}

func (m *Model) SetRotation(r mgl32.Vec3) {
	m.rotation = r
	m.dirty = true
}

func (m *Model) SetScale(s mgl32.Vec3) {
	m.scale = s
	m.dirty = true
}

// Translate moves the model by d.
func (m *Model) Translate(d mgl32.Vec3) {
	m.position = m.position.Add(d)
	m.dirty = true
}

// Rotate adds d degrees to the rotation.
func (m *Model) Rotate(d mgl32.Vec3) {
	m.rotation = m.rotation.Add(d)
	m.dirty = true
}

// ModelMatrix returns T * Rx * Ry * Rz * S, recomputed only after a setter ran.
func (m *Model) ModelMatrix() mgl32.Mat4 {
	if m.dirty {
		m.matrix = model.TransformMatrix(m.position, m.rotation, m.scale)
		m.dirty = false
	}
	return m.matrix
}

// Draw sets u_Model and draws every visible mesh.
func (m *Model) Draw(s Shader) {
	s.SetMat4("u_Model", m.ModelMatrix())
	for _, mesh := range m.meshes {
		mesh.Draw(s)
	}
}

// SetVisible shows or hides every mesh.
func (m *Model) SetVisible(v bool) {
	for _, mesh := range m.meshes {
		mesh.Visible = v
	}
}

// Visible reports whether any mesh is visible.
func (m *Model) Visible() bool {
	for _, mesh := range m.meshes {
		if mesh.Visible {
			return true
		}
	}
	return false
}

// Bounds returns the union of the mesh bounds in model space.
func (m *Model) Bounds() model.Bounds {
	b := model.EmptyBounds()
	for _, mesh := range m.meshes {
		b.Union(mesh.Bounds())
	}
	return b
}

// WorldBounds returns the model-space bounds transformed by ModelMatrix.
func (m *Model) WorldBounds() model.Bounds {
	b := m.Bounds()
	if b.IsEmpty() {
		return b
	}
	return b.Transform(m.ModelMatrix())
}

// Textures returns the model's textures in first-load order.
func (m *Model) Textures() []texture.Texture {
	if m.textures == nil {
		return nil
	}
	return m.textures.Textures()
}

// Release deletes mesh buffers and textures. The model is empty afterwards.
func (m *Model) Release() {
	for _, mesh := range m.meshes {
		mesh.Release()
	}
	m.meshes = nil
	if m.textures != nil {
		m.textures.Release()
		m.textures = nil
	}
}
