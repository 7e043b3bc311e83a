// Package texture provides texture roles, image decoding and the per-model
// texture cache.
package texture

import (
	"strconv"

	"github.com/Faultbox/modelview/internal/engine/gpu"
)

// Role is the shader binding role of a texture.
type Role int

const (
	Diffuse Role = iota
	Specular
	Normal
	Unknown
)

var roleNames = [...]string{"texture_diffuse", "texture_specular", "texture_normal", "texture_unknown"}

// String returns the sampler name template for the role.
func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return roleNames[Unknown]
	}
	return roleNames[r]
}

// SamplerName returns the uniform name for the n-th (1-based) texture of this
// role. Unknown has a single uncounted sampler.
func (r Role) SamplerName(n int) string {
	if r == Unknown || r < 0 || int(r) >= len(roleNames) {
		return roleNames[Unknown]
	}
	return roleNames[r] + strconv.Itoa(n)
}

// Texture is an uploaded texture. Meshes share these values freely.
type Texture struct {
	ID   gpu.Texture
	Role Role
	Path string
}

// Loaded reports whether the texture has a GPU resource.
func (t Texture) Loaded() bool { return t.ID != gpu.NoTexture }
