package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/engine/gpu"
	"github.com/Faultbox/modelview/internal/engine/scene"
	"github.com/Faultbox/modelview/internal/engine/texture"
	"github.com/Faultbox/modelview/internal/logger"
)

// skyboxVertices is a unit cube as 36 positions, two triangles per face.
var skyboxVertices = [...]float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1,
	1, -1, -1, 1, 1, -1, -1, 1, -1,

	-1, -1, 1, -1, -1, -1, -1, 1, -1,
	-1, 1, -1, -1, 1, 1, -1, -1, 1,

	1, -1, -1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, -1, 1, -1, -1,

	-1, -1, 1, -1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, -1, 1, -1, -1, 1,

	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, 1, -1,

	-1, -1, -1, -1, -1, 1, 1, -1, -1,
	1, -1, -1, -1, -1, 1, 1, -1, 1,
}

const skyboxVertexCount = len(skyboxVertices) / 3

// Skybox draws a cubemap behind the scene.
type Skybox struct {
	dev      gpu.Device
	shader   scene.Shader
	vao      gpu.VertexArray
	vbo      gpu.Buffer
	tex      gpu.Texture
	released bool
}

// NewSkybox loads the six faces (+X, -X, +Y, -Y, +Z, -Z) and uploads the cube.
// Missing faces are logged and drawn black.
func NewSkybox(dev gpu.Device, shader scene.Shader, faces [6]string, log *zap.Logger) (*Skybox, error) {
	if shader == nil || !shader.Valid() {
		return nil, fmt.Errorf("skybox shader: %w", ErrInvalidProgram)
	}
	log = logger.OrNop(log)
	tex, loaded := texture.LoadCubemap(dev, faces, log)
	if loaded < len(faces) {
		log.Warn("skybox incomplete", zap.Int("faces", loaded))
	}
	return newSkybox(dev, shader, tex), nil
}

func newSkybox(dev gpu.Device, shader scene.Shader, tex gpu.Texture) *Skybox {
	s := &Skybox{dev: dev, shader: shader, tex: tex}
	s.vao = dev.CreateVertexArray()
	s.vbo = dev.CreateBuffer()
	dev.BindVertexArray(s.vao)
	dev.BindBuffer(gpu.ArrayBuffer, s.vbo)
	dev.BufferData(gpu.ArrayBuffer, len(skyboxVertices)*4, skyboxVertices[:], gpu.StaticDraw)
	dev.VertexAttrib(0, 3, 3*4, 0)
	dev.BindVertexArray(0)
	return s
}

// Texture returns the cubemap handle.
func (s *Skybox) Texture() gpu.Texture { return s.tex }

// Draw renders the cube at the far plane using the rotation part of view.
// Depth function and depth writes are restored afterwards.
func (s *Skybox) Draw(view, projection mgl32.Mat4) {
	if s.released {
		return
	}
	s.dev.DepthFunc(gpu.LessEqual)
	s.dev.DepthMask(false)

	s.shader.Use()
	s.shader.SetMat4("u_View", view.Mat3().Mat4())
	s.shader.SetMat4("u_Projection", projection)
	s.shader.SetInt("u_Skybox", 0)

	s.dev.BindVertexArray(s.vao)
	s.dev.ActiveTexture(0)
	s.dev.BindTexture(gpu.TextureCubeMap, s.tex)
	s.dev.DrawArrays(gpu.Triangles, 0, skyboxVertexCount)
	s.dev.BindVertexArray(0)
	s.dev.BindTexture(gpu.TextureCubeMap, gpu.NoTexture)

	s.dev.DepthMask(true)
	s.dev.DepthFunc(gpu.Less)
}

// Release deletes the cube buffers and the cubemap.
func (s *Skybox) Release() {
	if s.released {
		return
	}
	s.released = true
	s.dev.DeleteVertexArray(s.vao)
	s.dev.DeleteBuffer(s.vbo)
	s.dev.DeleteTexture(s.tex)
}
