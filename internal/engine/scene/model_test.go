package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/internal/engine/gpu/gputest"
	"github.com/Faultbox/modelview/internal/engine/model"
)

func TestNameFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"models/cat/cat.obj", "cat"},
		{"model", "model"},
		{`C:\assets\ship.v2.gltf`, "ship.v2"},
		{"dir.d/mesh", "mesh"},
		{"models/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := NewModel(tt.path).Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModelMatrixOrigin(t *testing.T) {
	m := NewModel("x.obj")
	m.SetPosition(mgl32.Vec3{1, 2, 3})
	m.SetRotation(mgl32.Vec3{0, 90, 0})
	m.SetScale(mgl32.Vec3{2, 2, 2})

	got := model.TransformPoint(m.ModelMatrix(), mgl32.Vec3{})
	if !got.ApproxEqual(mgl32.Vec3{1, 2, 3}) {
		t.Errorf("origin maps to %v, want (1,2,3)", got)
	}
}

func TestModelMatrixInvalidatedBySetters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Model)
		point  mgl32.Vec3
		want   mgl32.Vec3
	}{
		{"translate", func(m *Model) { m.Translate(mgl32.Vec3{0, 5, 0}) }, mgl32.Vec3{}, mgl32.Vec3{0, 5, 0}},
		{"scale", func(m *Model) { m.SetScale(mgl32.Vec3{3, 3, 3}) }, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{3, 0, 0}},
		{"rotate", func(m *Model) { m.Rotate(mgl32.Vec3{0, 0, 90}) }, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel("x.obj")
			_ = m.ModelMatrix()
			tt.mutate(m)
			got := model.TransformPoint(m.ModelMatrix(), tt.point)
			if !got.ApproxEqualThreshold(tt.want, 1e-5) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModelDrawSkipsHiddenMesh(t *testing.T) {
	dev := gputest.New()
	a, _ := NewMesh(dev, "a", triangleVertices(), []uint32{0, 1, 2}, nil, mgl32.Vec4{1, 1, 1, 1})
	b, _ := NewMesh(dev, "b", triangleVertices(), []uint32{0, 1, 2}, nil, mgl32.Vec4{1, 1, 1, 1})
	m := NewModel("pair.obj")
	m.meshes = []*Mesh{a, b}
	a.Visible = false
	dev.Reset()

	s := newRecordingShader()
	m.Draw(s)

	if got := dev.Count("DrawElements"); got != 1 {
		t.Fatalf("DrawElements = %d, want 1", got)
	}
	call, _ := dev.Last("DrawElements")
	if call.Args[2] != b.vao {
		t.Errorf("drew VAO %v, want sibling %v", call.Args[2], b.vao)
	}
	if s.calls[0] != "SetMat4 u_Model" {
		t.Errorf("first call = %s, want u_Model", s.calls[0])
	}
}

func TestEmptyModelDrawOnlySetsMatrix(t *testing.T) {
	m := NewModel("missing.obj")
	s := newRecordingShader()
	m.Draw(s)
	if len(s.calls) != 1 {
		t.Errorf("calls = %v", s.calls)
	}
	if !m.Bounds().IsEmpty() || !m.WorldBounds().IsEmpty() {
		t.Error("empty model has bounds")
	}
}

func TestModelWorldBounds(t *testing.T) {
	dev := gputest.New()
	mesh, _ := NewMesh(dev, "a", triangleVertices(), []uint32{0, 1, 2}, nil, mgl32.Vec4{})
	m := NewModel("a.obj")
	m.meshes = []*Mesh{mesh}
	m.SetPosition(mgl32.Vec3{10, 0, 0})

	b := m.WorldBounds()
	if !b.Min.ApproxEqual(mgl32.Vec3{10, 0, 0}) || !b.Max.ApproxEqual(mgl32.Vec3{11, 1, 0}) {
		t.Errorf("world bounds = %v", b)
	}
}

func TestModelSetVisible(t *testing.T) {
	dev := gputest.New()
	mesh, _ := NewMesh(dev, "a", triangleVertices(), []uint32{0, 1, 2}, nil, mgl32.Vec4{})
	m := NewModel("a.obj")
	m.meshes = []*Mesh{mesh}

	m.SetVisible(false)
	if m.Visible() {
		t.Error("model still visible")
	}
	m.SetVisible(true)
	if !mesh.Visible {
		t.Error("mesh not visible again")
	}
}
