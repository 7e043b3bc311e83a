// Package gputest provides a recording gpu.Device for tests that run without
// a GL context.
package gputest

import (
	"fmt"
	"image"
	"strings"

	"github.com/Faultbox/modelview/internal/engine/gpu"
)

// Call is one recorded Device method invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Device records every call and tracks the minimal state the engine queries.
type Device struct {
	calls []Call
	next  uint32

	viewport    gpu.Viewport
	boundVAO    gpu.VertexArray
	enabled     map[gpu.Capability]bool
	depthFunc   gpu.CompareFunc
	depthWrite  bool
	lineWidth   float32
	activeUnit  int
	bound2D     map[int]gpu.Texture
	liveVAOs    map[gpu.VertexArray]bool
	liveBuffers map[gpu.Buffer]bool
	liveTex     map[gpu.Texture]bool

	// Pixels is returned by ReadPixels when non-nil.
	Pixels []byte
}

// New returns a Device with an 800x600 viewport.
func New() *Device {
	return &Device{
		viewport:    gpu.Viewport{Width: 800, Height: 600},
		enabled:     make(map[gpu.Capability]bool),
		depthWrite:  true,
		lineWidth:   1,
		bound2D:     make(map[int]gpu.Texture),
		liveVAOs:    make(map[gpu.VertexArray]bool),
		liveBuffers: make(map[gpu.Buffer]bool),
		liveTex:     make(map[gpu.Texture]bool),
	}
}

func (d *Device) record(name string, args ...any) {
	d.calls = append(d.calls, Call{Name: name, Args: args})
}

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

// Calls returns all recorded calls in order.
func (d *Device) Calls() []Call { return d.calls }

// Names returns the recorded call names in order.
func (d *Device) Names() []string {
	names := make([]string, len(d.calls))
	for i, c := range d.calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many times the named method was called.
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Last returns the most recent call with the given name.
func (d *Device) Last(name string) (Call, bool) {
	for i := len(d.calls) - 1; i >= 0; i-- {
		if d.calls[i].Name == name {
			return d.calls[i], true
		}
	}
	return Call{}, false
}

// Reset clears the call log but keeps state.
func (d *Device) Reset() { d.calls = nil }

// BoundVertexArray returns the currently bound VAO.
func (d *Device) BoundVertexArray() gpu.VertexArray { return d.boundVAO }

// Enabled reports whether capability c is on.
func (d *Device) Enabled(c gpu.Capability) bool { return d.enabled[c] }

// DepthState returns the current depth function and write mask.
func (d *Device) DepthState() (gpu.CompareFunc, bool) { return d.depthFunc, d.depthWrite }

// CurrentLineWidth returns the last line width set.
func (d *Device) CurrentLineWidth() float32 { return d.lineWidth }

// ActiveUnit returns the active texture unit.
func (d *Device) ActiveUnit() int { return d.activeUnit }

// Live returns the number of VAOs, buffers and textures not yet deleted.
func (d *Device) Live() (vaos, buffers, textures int) {
	return len(d.liveVAOs), len(d.liveBuffers), len(d.liveTex)
}

func (d *Device) CreateVertexArray() gpu.VertexArray {
	v := gpu.VertexArray(d.handle())
	d.liveVAOs[v] = true
	d.record("CreateVertexArray", v)
	return v
}

func (d *Device) BindVertexArray(vao gpu.VertexArray) {
	d.boundVAO = vao
	d.record("BindVertexArray", vao)
}

func (d *Device) DeleteVertexArray(vao gpu.VertexArray) {
	delete(d.liveVAOs, vao)
	d.record("DeleteVertexArray", vao)
}

func (d *Device) CreateBuffer() gpu.Buffer {
	b := gpu.Buffer(d.handle())
	d.liveBuffers[b] = true
	d.record("CreateBuffer", b)
	return b
}

func (d *Device) BindBuffer(target gpu.BufferTarget, buf gpu.Buffer) {
	d.record("BindBuffer", target, buf)
}

func (d *Device) BufferData(target gpu.BufferTarget, size int, data any, usage gpu.Usage) {
	d.record("BufferData", target, size, usage)
}

func (d *Device) BufferSubData(target gpu.BufferTarget, offset, size int, data any) {
	d.record("BufferSubData", target, offset, size, data)
}

func (d *Device) DeleteBuffer(buf gpu.Buffer) {
	delete(d.liveBuffers, buf)
	d.record("DeleteBuffer", buf)
}

func (d *Device) VertexAttrib(index uint32, size int32, stride int32, offset int) {
	d.record("VertexAttrib", index, size, stride, offset)
}

func (d *Device) CreateTexture2D(img *image.RGBA) gpu.Texture {
	t := gpu.Texture(d.handle())
	d.liveTex[t] = true
	d.record("CreateTexture2D", t, img.Bounds().Dx(), img.Bounds().Dy())
	return t
}

func (d *Device) CreateCubemap(faces [6]*image.RGBA) gpu.Texture {
	t := gpu.Texture(d.handle())
	d.liveTex[t] = true
	loaded := 0
	for _, f := range faces {
		if f != nil {
			loaded++
		}
	}
	d.record("CreateCubemap", t, loaded)
	return t
}

func (d *Device) DeleteTexture(tex gpu.Texture) {
	delete(d.liveTex, tex)
	d.record("DeleteTexture", tex)
}

func (d *Device) ActiveTexture(unit int) {
	d.activeUnit = unit
	d.record("ActiveTexture", unit)
}

func (d *Device) BindTexture(target gpu.TextureTarget, tex gpu.Texture) {
	if target == gpu.Texture2D {
		d.bound2D[d.activeUnit] = tex
	}
	d.record("BindTexture", target, tex)
}

// BoundTexture2D returns the 2D texture bound on unit.
func (d *Device) BoundTexture2D(unit int) gpu.Texture { return d.bound2D[unit] }

func (d *Device) DrawElements(mode gpu.Primitive, count int) {
	d.record("DrawElements", mode, count, d.boundVAO)
}

func (d *Device) DrawArrays(mode gpu.Primitive, first, count int) {
	d.record("DrawArrays", mode, first, count, d.boundVAO)
}

func (d *Device) Enable(c gpu.Capability) {
	d.enabled[c] = true
	d.record("Enable", c)
}

func (d *Device) Disable(c gpu.Capability) {
	d.enabled[c] = false
	d.record("Disable", c)
}

func (d *Device) BlendFunc(src, dst gpu.BlendFactor) {
	d.record("BlendFunc", src, dst)
}

func (d *Device) DepthFunc(f gpu.CompareFunc) {
	d.depthFunc = f
	d.record("DepthFunc", f)
}

func (d *Device) DepthMask(write bool) {
	d.depthWrite = write
	d.record("DepthMask", write)
}

func (d *Device) LineWidth(w float32) {
	d.lineWidth = w
	d.record("LineWidth", w)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.record("ClearColor", r, g, b, a)
}

func (d *Device) Clear(mask gpu.ClearMask) {
	d.record("Clear", mask)
}

func (d *Device) Viewport() gpu.Viewport {
	d.record("Viewport")
	return d.viewport
}

func (d *Device) SetViewport(v gpu.Viewport) {
	d.viewport = v
	d.record("SetViewport", v)
}

func (d *Device) ReadPixels(v gpu.Viewport) []byte {
	d.record("ReadPixels", v)
	if d.Pixels != nil {
		return d.Pixels
	}
	return make([]byte, int(v.Width)*int(v.Height)*4)
}

var _ gpu.Device = (*Device)(nil)
