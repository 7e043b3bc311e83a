// Package gpu defines the low-level GPU resource interface used by the engine
// and its OpenGL 4.1 implementation.
package gpu

import "image"

// VertexArray is a vertex array object handle.
type VertexArray uint32

// Buffer is a buffer object handle.
type Buffer uint32

// Texture is a texture object handle. Zero means no resource.
type Texture uint32

// NoTexture is the handle returned for textures that failed to load.
const NoTexture Texture = 0

// BufferTarget selects the buffer binding point.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// Usage is a buffer usage hint.
type Usage int

const (
	StaticDraw Usage = iota
	DynamicDraw
)

// Primitive is a draw primitive type.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
	Points
)

// Capability is a toggleable pipeline state.
type Capability int

const (
	DepthTest Capability = iota
	Blend
)

// CompareFunc is a depth comparison function.
type CompareFunc int

const (
	Less CompareFunc = iota
	LessEqual
)

// BlendFactor is a blend equation factor.
type BlendFactor int

const (
	SrcAlpha BlendFactor = iota
	OneMinusSrcAlpha
	One
	Zero
)

// TextureTarget selects the texture binding point.
type TextureTarget int

const (
	Texture2D TextureTarget = iota
	TextureCubeMap
)

// ClearMask selects buffers to clear.
type ClearMask int

const (
	ColorBuffer ClearMask = 1 << iota
	DepthBuffer
)

// Viewport is a rectangle in window pixels.
type Viewport struct {
	X, Y, Width, Height int32
}

// Device is the set of GPU operations the engine needs.
// All methods must be called from the thread owning the GL context.
type Device interface {
	CreateVertexArray() VertexArray
	BindVertexArray(vao VertexArray)
	DeleteVertexArray(vao VertexArray)

	CreateBuffer() Buffer
	BindBuffer(target BufferTarget, buf Buffer)
	// BufferData allocates size bytes and copies data, which may be nil.
	BufferData(target BufferTarget, size int, data any, usage Usage)
	BufferSubData(target BufferTarget, offset, size int, data any)
	DeleteBuffer(buf Buffer)
	// VertexAttrib enables attribute index and points it at the bound array buffer.
	VertexAttrib(index uint32, size int32, stride int32, offset int)

	// CreateTexture2D uploads img with mipmaps, REPEAT wrap and
	// LINEAR_MIPMAP_LINEAR / LINEAR filtering.
	CreateTexture2D(img *image.RGBA) Texture
	// CreateCubemap uploads faces in +X, -X, +Y, -Y, +Z, -Z order with
	// CLAMP_TO_EDGE wrap and LINEAR filtering. Nil faces are left empty.
	CreateCubemap(faces [6]*image.RGBA) Texture
	DeleteTexture(tex Texture)
	ActiveTexture(unit int)
	BindTexture(target TextureTarget, tex Texture)

	DrawElements(mode Primitive, count int)
	DrawArrays(mode Primitive, first, count int)

	Enable(c Capability)
	Disable(c Capability)
	BlendFunc(src, dst BlendFactor)
	DepthFunc(f CompareFunc)
	DepthMask(write bool)
	LineWidth(w float32)

	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Viewport() Viewport
	SetViewport(v Viewport)
	// ReadPixels returns RGBA rows bottom-up, as stored by the GPU.
	ReadPixels(v Viewport) []byte
}
