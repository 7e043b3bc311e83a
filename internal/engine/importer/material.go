package importer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// TextureSlot names a material texture channel.
type TextureSlot int

const (
	SlotDiffuse TextureSlot = iota
	SlotSpecular
	SlotAmbient
	SlotHeight
	SlotNormals
	SlotBaseColor
	SlotUnknown
)

var slotNames = [...]string{"diffuse", "specular", "ambient", "height", "normals", "base_color", "unknown"}

func (s TextureSlot) String() string {
	if s < 0 || int(s) >= len(slotNames) {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}

// Material is the read-only view of an imported material.
type Material interface {
	Name() string
	TextureCount(slot TextureSlot) int
	// TexturePath returns the reference path, relative to the model directory.
	// Embedded images use a "*N" key.
	TexturePath(slot TextureSlot, i int) string
	// TextureData returns encoded image bytes for embedded textures.
	TextureData(slot TextureSlot, i int) ([]byte, bool)
	DiffuseColor() (mgl32.Vec4, bool)
}

// TextureRef is one texture reference in a BasicMaterial.
type TextureRef struct {
	Path string
	Data []byte
}

// BasicMaterial is the Material implementation produced by the backends.
type BasicMaterial struct {
	MaterialName string
	Textures     map[TextureSlot][]TextureRef
	Diffuse      *mgl32.Vec4
}

// NewBasicMaterial returns an empty material.
func NewBasicMaterial(name string) *BasicMaterial {
	return &BasicMaterial{MaterialName: name, Textures: make(map[TextureSlot][]TextureRef)}
}

// AddTexture appends a texture reference to slot. Empty paths are ignored.
func (m *BasicMaterial) AddTexture(slot TextureSlot, ref TextureRef) {
	if ref.Path == "" {
		return
	}
	m.Textures[slot] = append(m.Textures[slot], ref)
}

// SetDiffuse sets the diffuse color.
func (m *BasicMaterial) SetDiffuse(c mgl32.Vec4) {
	m.Diffuse = &c
}

func (m *BasicMaterial) Name() string { return m.MaterialName }

func (m *BasicMaterial) TextureCount(slot TextureSlot) int {
	return len(m.Textures[slot])
}

func (m *BasicMaterial) TexturePath(slot TextureSlot, i int) string {
	refs := m.Textures[slot]
	if i < 0 || i >= len(refs) {
		return ""
	}
	return refs[i].Path
}

func (m *BasicMaterial) TextureData(slot TextureSlot, i int) ([]byte, bool) {
	refs := m.Textures[slot]
	if i < 0 || i >= len(refs) || refs[i].Data == nil {
		return nil, false
	}
	return refs[i].Data, true
}

func (m *BasicMaterial) DiffuseColor() (mgl32.Vec4, bool) {
	if m.Diffuse == nil {
		return mgl32.Vec4{}, false
	}
	return *m.Diffuse, true
}

var _ Material = (*BasicMaterial)(nil)
