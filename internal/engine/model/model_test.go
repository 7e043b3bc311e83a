package model

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestVertexLayout(t *testing.T) {
	if VertexStride != 32 {
		t.Errorf("VertexStride = %d, want 32", VertexStride)
	}
	if NormalOffset != 12 {
		t.Errorf("NormalOffset = %d, want 12", NormalOffset)
	}
	if TexCoordsOffset != 24 {
		t.Errorf("TexCoordsOffset = %d, want 24", TexCoordsOffset)
	}
}

func TestTransformMatrix(t *testing.T) {
	tests := []struct {
		name  string
		pos   mgl32.Vec3
		rot   mgl32.Vec3
		scale mgl32.Vec3
		point mgl32.Vec3
		want  mgl32.Vec3
	}{
		{
			name:  "origin maps to position",
			pos:   mgl32.Vec3{1, 2, 3},
			rot:   mgl32.Vec3{0, 90, 0},
			scale: mgl32.Vec3{2, 2, 2},
			point: mgl32.Vec3{0, 0, 0},
			want:  mgl32.Vec3{1, 2, 3},
		},
		{
			name:  "yaw 90 turns +X into -Z",
			pos:   mgl32.Vec3{1, 2, 3},
			rot:   mgl32.Vec3{0, 90, 0},
			scale: mgl32.Vec3{2, 2, 2},
			point: mgl32.Vec3{1, 0, 0},
			want:  mgl32.Vec3{1, 2, 1},
		},
		{
			name:  "identity",
			scale: mgl32.Vec3{1, 1, 1},
			point: mgl32.Vec3{4, 5, 6},
			want:  mgl32.Vec3{4, 5, 6},
		},
		{
			name:  "scale before translate",
			pos:   mgl32.Vec3{10, 0, 0},
			scale: mgl32.Vec3{3, 1, 1},
			point: mgl32.Vec3{1, 1, 1},
			want:  mgl32.Vec3{13, 1, 1},
		},
		{
			name:  "x rotation applied after y and z",
			rot:   mgl32.Vec3{90, 0, 90},
			scale: mgl32.Vec3{1, 1, 1},
			point: mgl32.Vec3{1, 0, 0},
			// Rz(90): (0,1,0); Rx(90): (0,0,1)
			want: mgl32.Vec3{0, 0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := TransformMatrix(tt.pos, tt.rot, tt.scale)
			got := TransformPoint(m, tt.point)
			if !got.ApproxEqualThreshold(tt.want, 1e-5) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildVerticesDefaults(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	normals := []mgl32.Vec3{{0, 0, 1}}

	v := BuildVertices(positions, normals, nil)
	if len(v) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(v))
	}
	if v[0].Normal != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("normal 0 = %v", v[0].Normal)
	}
	if v[2].Normal != (mgl32.Vec3{}) {
		t.Errorf("missing normal should be zero, got %v", v[2].Normal)
	}
	if v[1].TexCoords != (mgl32.Vec2{}) {
		t.Errorf("missing uv should be zero, got %v", v[1].TexCoords)
	}
	if v[1].Position != positions[1] {
		t.Errorf("position 1 = %v", v[1].Position)
	}
}

func TestFlattenFaces(t *testing.T) {
	got := FlattenFaces([][]uint32{{0, 1, 2}, {2, 3, 0}, {4}})
	want := []uint32{0, 1, 2, 2, 3, 0, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, got[i], want[i])
		}
	}
	if len(FlattenFaces(nil)) != 0 {
		t.Error("nil faces should flatten to empty")
	}
}

func TestValidateIndices(t *testing.T) {
	if err := ValidateIndices([]uint32{0, 1, 2}, 3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateIndices([]uint32{0, 3}, 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestBounds(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Fatal("EmptyBounds should be empty")
	}
	b.Extend(mgl32.Vec3{-1, 0, 2})
	b.Extend(mgl32.Vec3{3, 4, -2})

	if b.Min != (mgl32.Vec3{-1, 0, -2}) || b.Max != (mgl32.Vec3{3, 4, 2}) {
		t.Errorf("bounds = %v..%v", b.Min, b.Max)
	}
	if b.Center() != (mgl32.Vec3{1, 2, 0}) {
		t.Errorf("center = %v", b.Center())
	}
	if b.Size() != (mgl32.Vec3{4, 4, 4}) {
		t.Errorf("size = %v", b.Size())
	}

	moved := b.Transform(mgl32.Translate3D(10, 0, 0))
	if moved.Min[0] != 9 || moved.Max[0] != 13 {
		t.Errorf("translated x range = %v..%v", moved.Min[0], moved.Max[0])
	}

	var u Bounds = EmptyBounds()
	u.Union(EmptyBounds())
	if !u.IsEmpty() {
		t.Error("union with empty should stay empty")
	}
	u.Union(b)
	if u != b {
		t.Errorf("union = %v, want %v", u, b)
	}
}

func TestGenerateNormals(t *testing.T) {
	// Two triangles in the XY plane, counter-clockwise from +Z
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	faces := [][]uint32{{0, 1, 2}, {0, 2, 3}}

	normals := GenerateNormals(positions, faces)
	for i, n := range normals {
		if !n.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5) {
			t.Errorf("normal %d = %v, want +Z", i, n)
		}
	}
}

func TestGenerateNormalsSharedPositions(t *testing.T) {
	// Corner of a box: +Z face and +X face share vertex (1,0,0) via duplicate entries
	positions := []mgl32.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, // +Z face
		{1, 0, 0}, {1, 0, -1}, {1, 1, 0}, // +X face
	}
	faces := [][]uint32{{0, 1, 2}, {3, 4, 5}}

	normals := GenerateNormals(positions, faces)
	if normals[1] != normals[3] {
		t.Errorf("shared position normals differ: %v vs %v", normals[1], normals[3])
	}
	want := mgl32.Vec3{1, 0, 1}.Normalize()
	if !normals[1].ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("shared normal = %v, want %v", normals[1], want)
	}
}

func TestComputeTangents(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	normals := []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	uvs := []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}}

	tangents, bitangents := ComputeTangents(positions, normals, uvs, [][]uint32{{0, 1, 2}})
	for i := range positions {
		if !tangents[i].ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5) {
			t.Errorf("tangent %d = %v", i, tangents[i])
		}
		if !bitangents[i].ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-5) {
			t.Errorf("bitangent %d = %v", i, bitangents[i])
		}
	}
}

func TestComputeTangentsDegenerateUV(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	normals := []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	uvs := []mgl32.Vec2{{0, 0}, {0, 0}, {0, 0}}

	tangents, _ := ComputeTangents(positions, normals, uvs, [][]uint32{{0, 1, 2}})
	for i, tg := range tangents {
		if math.Abs(float64(tg.Len()-1)) > 1e-5 {
			t.Errorf("tangent %d not unit: %v", i, tg)
		}
		if math.Abs(float64(tg.Dot(normals[i]))) > 1e-5 {
			t.Errorf("tangent %d not perpendicular to normal: %v", i, tg)
		}
	}
}
