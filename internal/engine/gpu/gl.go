package gpu

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/logger"
)

// GLDevice implements Device on top of an OpenGL 4.1 core context.
type GLDevice struct {
	log *zap.Logger
}

// Init loads the OpenGL function pointers and returns a device.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func Init(log *zap.Logger) (*GLDevice, error) {
	log = logger.OrNop(log)
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	return &GLDevice{log: log}, nil
}

func (d *GLDevice) CreateVertexArray() VertexArray {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return VertexArray(id)
}

func (d *GLDevice) BindVertexArray(vao VertexArray) {
	gl.BindVertexArray(uint32(vao))
}

func (d *GLDevice) DeleteVertexArray(vao VertexArray) {
	id := uint32(vao)
	gl.DeleteVertexArrays(1, &id)
}

func (d *GLDevice) CreateBuffer() Buffer {
	var id uint32
	gl.GenBuffers(1, &id)
	return Buffer(id)
}

func (d *GLDevice) BindBuffer(target BufferTarget, buf Buffer) {
	gl.BindBuffer(glBufferTarget(target), uint32(buf))
}

func (d *GLDevice) BufferData(target BufferTarget, size int, data any, usage Usage) {
	u := uint32(gl.STATIC_DRAW)
	if usage == DynamicDraw {
		u = gl.DYNAMIC_DRAW
	}
	gl.BufferData(glBufferTarget(target), size, gl.Ptr(data), u)
}

func (d *GLDevice) BufferSubData(target BufferTarget, offset, size int, data any) {
	gl.BufferSubData(glBufferTarget(target), offset, size, gl.Ptr(data))
}

func (d *GLDevice) DeleteBuffer(buf Buffer) {
	id := uint32(buf)
	gl.DeleteBuffers(1, &id)
}

func (d *GLDevice) VertexAttrib(index uint32, size int32, stride int32, offset int) {
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, uintptr(offset))
}

func (d *GLDevice) CreateTexture2D(img *image.RGBA) Texture {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	w, h := int32(img.Bounds().Dx()), int32(img.Bounds().Dy())
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return Texture(id)
}

func (d *GLDevice) CreateCubemap(faces [6]*image.RGBA) Texture {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for i, img := range faces {
		if img == nil {
			continue
		}
		w, h := int32(img.Bounds().Dx()), int32(img.Bounds().Dy())
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return Texture(id)
}

func (d *GLDevice) DeleteTexture(tex Texture) {
	if tex == NoTexture {
		return
	}
	id := uint32(tex)
	gl.DeleteTextures(1, &id)
}

func (d *GLDevice) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

func (d *GLDevice) BindTexture(target TextureTarget, tex Texture) {
	t := uint32(gl.TEXTURE_2D)
	if target == TextureCubeMap {
		t = gl.TEXTURE_CUBE_MAP
	}
	gl.BindTexture(t, uint32(tex))
}

func (d *GLDevice) DrawElements(mode Primitive, count int) {
	gl.DrawElements(glPrimitive(mode), int32(count), gl.UNSIGNED_INT, nil)
}

func (d *GLDevice) DrawArrays(mode Primitive, first, count int) {
	gl.DrawArrays(glPrimitive(mode), int32(first), int32(count))
}

func (d *GLDevice) Enable(c Capability) {
	gl.Enable(glCapability(c))
}

func (d *GLDevice) Disable(c Capability) {
	gl.Disable(glCapability(c))
}

func (d *GLDevice) BlendFunc(src, dst BlendFactor) {
	gl.BlendFunc(glBlendFactor(src), glBlendFactor(dst))
}

func (d *GLDevice) DepthFunc(f CompareFunc) {
	if f == LessEqual {
		gl.DepthFunc(gl.LEQUAL)
		return
	}
	gl.DepthFunc(gl.LESS)
}

func (d *GLDevice) DepthMask(write bool) {
	gl.DepthMask(write)
}

func (d *GLDevice) LineWidth(w float32) {
	gl.LineWidth(w)
}

func (d *GLDevice) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *GLDevice) Clear(mask ClearMask) {
	var bits uint32
	if mask&ColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&DepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *GLDevice) Viewport() Viewport {
	var v [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &v[0])
	return Viewport{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
}

func (d *GLDevice) SetViewport(v Viewport) {
	gl.Viewport(v.X, v.Y, v.Width, v.Height)
}

func (d *GLDevice) ReadPixels(v Viewport) []byte {
	pixels := make([]byte, int(v.Width)*int(v.Height)*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(v.X, v.Y, v.Width, v.Height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func glBufferTarget(t BufferTarget) uint32 {
	if t == ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glPrimitive(p Primitive) uint32 {
	switch p {
	case Lines:
		return gl.LINES
	case Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func glCapability(c Capability) uint32 {
	if c == Blend {
		return gl.BLEND
	}
	return gl.DEPTH_TEST
}

func glBlendFactor(f BlendFactor) uint32 {
	switch f {
	case SrcAlpha:
		return gl.SRC_ALPHA
	case OneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case One:
		return gl.ONE
	default:
		return gl.ZERO
	}
}

var _ Device = (*GLDevice)(nil)
