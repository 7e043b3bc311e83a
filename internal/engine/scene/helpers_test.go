package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/internal/engine/importer"
	"github.com/Faultbox/modelview/internal/engine/model"
)

// recordingShader logs every call as "Method name=value".
type recordingShader struct {
	invalid bool
	calls   []string
	ints    map[string]int32
	bools   map[string]bool
	vec4s   map[string]mgl32.Vec4
	mats    map[string]mgl32.Mat4
}

func newRecordingShader() *recordingShader {
	return &recordingShader{
		ints:  make(map[string]int32),
		bools: make(map[string]bool),
		vec4s: make(map[string]mgl32.Vec4),
		mats:  make(map[string]mgl32.Mat4),
	}
}

func (s *recordingShader) Use()        { s.calls = append(s.calls, "Use") }
func (s *recordingShader) Valid() bool { return !s.invalid }

func (s *recordingShader) SetBool(name string, v bool) {
	s.bools[name] = v
	s.calls = append(s.calls, fmt.Sprintf("SetBool %s=%v", name, v))
}

func (s *recordingShader) SetInt(name string, v int32) {
	s.ints[name] = v
	s.calls = append(s.calls, fmt.Sprintf("SetInt %s=%d", name, v))
}

func (s *recordingShader) SetFloat(name string, v float32) {
	s.calls = append(s.calls, "SetFloat "+name)
}

func (s *recordingShader) SetVec3(name string, v mgl32.Vec3) {
	s.calls = append(s.calls, "SetVec3 "+name)
}

func (s *recordingShader) SetVec4(name string, v mgl32.Vec4) {
	s.vec4s[name] = v
	s.calls = append(s.calls, "SetVec4 "+name)
}

func (s *recordingShader) SetMat4(name string, m mgl32.Mat4) {
	s.mats[name] = m
	s.calls = append(s.calls, "SetMat4 "+name)
}

var _ Shader = (*recordingShader)(nil)

// stubImporter returns a fixed asset or error.
type stubImporter struct {
	asset *importer.Asset
	err   error
	flags importer.Flags
	path  string
}

func (s *stubImporter) Load(path string, flags importer.Flags) (*importer.Asset, error) {
	s.path = path
	s.flags = flags
	return s.asset, s.err
}

func triangleVertices() []model.Vertex {
	return []model.Vertex{
		{Position: mgl32.Vec3{0, 0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec3{0, 1, 0}},
	}
}

func triangleSource(name string, material int) *importer.SourceMesh {
	return &importer.SourceMesh{
		Name:          name,
		Positions:     []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:       []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		UV0:           []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		Faces:         [][]uint32{{0, 1, 2}},
		MaterialIndex: material,
	}
}
