package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/internal/engine/gpu"
	"github.com/Faultbox/modelview/internal/engine/model"
	"github.com/Faultbox/modelview/internal/engine/texture"
)

// ErrIndexOutOfRange is returned by NewMesh when an index has no vertex.
var ErrIndexOutOfRange = model.ErrIndexOutOfRange

// ErrEmptyMesh is returned by NewMesh for a mesh without vertices or indices.
var ErrEmptyMesh = errors.New("empty mesh")

// Mesh is one drawable sub-mesh with its own vertex array.
type Mesh struct {
	Name    string
	Visible bool

	vertices  []model.Vertex
	indices   []uint32
	textures  []texture.Texture
	baseColor mgl32.Vec4
	primitive gpu.Primitive
	bounds    model.Bounds

	dev      gpu.Device
	vao      gpu.VertexArray
	vbo      gpu.Buffer
	ebo      gpu.Buffer
	released bool
}

// NewMesh validates the geometry and uploads it once.
func NewMesh(dev gpu.Device, name string, vertices []model.Vertex, indices []uint32, textures []texture.Texture, baseColor mgl32.Vec4) (*Mesh, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("mesh %q: %w", name, ErrEmptyMesh)
	}
	if err := model.ValidateIndices(indices, len(vertices)); err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}

	m := &Mesh{
		Name:      name,
		Visible:   true,
		vertices:  vertices,
		indices:   indices,
		textures:  textures,
		baseColor: baseColor,
		primitive: gpu.Triangles,
		bounds:    model.ComputeBounds(vertices),
		dev:       dev,
	}
	m.upload()
	return m, nil
}

func (m *Mesh) upload() {
	m.vao = m.dev.CreateVertexArray()
	m.vbo = m.dev.CreateBuffer()
	m.ebo = m.dev.CreateBuffer()

	m.dev.BindVertexArray(m.vao)

	m.dev.BindBuffer(gpu.ArrayBuffer, m.vbo)
	m.dev.BufferData(gpu.ArrayBuffer, len(m.vertices)*int(model.VertexStride), m.vertices, gpu.StaticDraw)

	m.dev.BindBuffer(gpu.ElementArrayBuffer, m.ebo)
	m.dev.BufferData(gpu.ElementArrayBuffer, len(m.indices)*4, m.indices, gpu.StaticDraw)

	m.dev.VertexAttrib(0, 3, model.VertexStride, 0)
	m.dev.VertexAttrib(1, 3, model.VertexStride, model.NormalOffset)
	m.dev.VertexAttrib(2, 2, model.VertexStride, model.TexCoordsOffset)

	m.dev.BindVertexArray(0)
}

// Draw binds textures by role and issues one indexed draw. Invisible or
// released meshes issue nothing. u_HasDiffuse tells the shader whether
// texture_diffuse1 is bound; without it the base color is used.
func (m *Mesh) Draw(s Shader) {
	if !m.Visible || m.released {
		return
	}

	s.Use()
	s.SetBool("u_HasTexture", len(m.textures) > 0)
	s.SetBool("u_HasDiffuse", m.hasDiffuse())
	s.SetVec4("u_BaseColor", m.baseColor)

	var counters [4]int
	for i, tex := range m.textures {
		m.dev.ActiveTexture(i)
		role := tex.Role
		if role < 0 || int(role) >= len(counters) {
			role = texture.Unknown
		}
		counters[role]++
		s.SetInt(role.SamplerName(counters[role]), int32(i))
		m.dev.BindTexture(gpu.Texture2D, tex.ID)
	}

	m.dev.BindVertexArray(m.vao)
	m.dev.DrawElements(m.primitive, len(m.indices))
	m.dev.BindVertexArray(0)
	m.dev.ActiveTexture(0)
}

func (m *Mesh) hasDiffuse() bool {
	for _, tex := range m.textures {
		if tex.Role == texture.Diffuse {
			return true
		}
	}
	return false
}

// Release deletes the mesh's GPU buffers. Textures belong to the model.
func (m *Mesh) Release() {
	if m.released {
		return
	}
	m.released = true
	m.dev.DeleteVertexArray(m.vao)
	m.dev.DeleteBuffer(m.vbo)
	m.dev.DeleteBuffer(m.ebo)
}

// Vertices returns the vertex list. Callers must not modify it.
func (m *Mesh) Vertices() []model.Vertex { return m.vertices }

// Indices returns the index list. Callers must not modify it.
func (m *Mesh) Indices() []uint32 { return m.indices }

// Textures returns the mesh's textures in binding order.
func (m *Mesh) Textures() []texture.Texture { return m.textures }

// BaseColor returns the color used when no texture is bound.
func (m *Mesh) BaseColor() mgl32.Vec4 { return m.baseColor }

// Bounds returns the local-space bounds.
func (m *Mesh) Bounds() model.Bounds { return m.bounds }

// Primitive returns the draw mode.
func (m *Mesh) Primitive() gpu.Primitive { return m.primitive }
