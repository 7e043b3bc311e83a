package model

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrIndexOutOfRange is returned when an index references a missing vertex.
var ErrIndexOutOfRange = errors.New("index out of range")

// BuildVertices interleaves attribute streams. Positions define the vertex
// count; nil or short normals default to zero and nil or short uvs to (0,0).
func BuildVertices(positions, normals []mgl32.Vec3, uvs []mgl32.Vec2) []Vertex {
	vertices := make([]Vertex, len(positions))
	for i, p := range positions {
		vertices[i].Position = p
		if i < len(normals) {
			vertices[i].Normal = normals[i]
		}
		if i < len(uvs) {
			vertices[i].TexCoords = uvs[i]
		}
	}
	return vertices
}

// FlattenFaces concatenates face indices in order.
func FlattenFaces(faces [][]uint32) []uint32 {
	n := 0
	for _, f := range faces {
		n += len(f)
	}
	indices := make([]uint32, 0, n)
	for _, f := range faces {
		indices = append(indices, f...)
	}
	return indices
}

// ValidateIndices checks every index is below vertexCount.
func ValidateIndices(indices []uint32, vertexCount int) error {
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("index %d = %d with %d vertices: %w", i, idx, vertexCount, ErrIndexOutOfRange)
		}
	}
	return nil
}

// ComputeBounds returns the bounds of the vertex positions.
func ComputeBounds(vertices []Vertex) Bounds {
	b := EmptyBounds()
	for i := range vertices {
		b.Extend(vertices[i].Position)
	}
	return b
}

// GenerateNormals computes area-weighted vertex normals for triangle faces and
// then averages them across vertices sharing a position, so seams split only
// by UVs stay smooth. Non-triangle faces are ignored.
func GenerateNormals(positions []mgl32.Vec3, faces [][]uint32) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	for _, f := range faces {
		if len(f) != 3 {
			continue
		}
		i0, i1, i2 := f[0], f[1], f[2]
		if int(i0) >= len(positions) || int(i1) >= len(positions) || int(i2) >= len(positions) {
			continue
		}
		n := positions[i1].Sub(positions[i0]).Cross(positions[i2].Sub(positions[i0]))
		normals[i0] = normals[i0].Add(n)
		normals[i1] = normals[i1].Add(n)
		normals[i2] = normals[i2].Add(n)
	}
	SmoothNormals(positions, normals)
	return normals
}

// SmoothNormals averages normals at shared vertex positions.
func SmoothNormals(positions, normals []mgl32.Vec3) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range positions {
		key := [3]int32{
			int32(positions[i][0] / epsilon),
			int32(positions[i][1] / epsilon),
			int32(positions[i][2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		var sum mgl32.Vec3
		for _, idx := range idxs {
			sum = sum.Add(normals[idx])
		}
		avg := Normalize(sum)
		for _, idx := range idxs {
			normals[idx] = avg
		}
	}
}

// ComputeTangents generates per-vertex tangents and bitangents for triangle
// faces, Gram-Schmidt orthogonalized against the normals. Triangles with a
// degenerate UV area contribute nothing.
func ComputeTangents(positions, normals []mgl32.Vec3, uvs []mgl32.Vec2, faces [][]uint32) (tangents, bitangents []mgl32.Vec3) {
	tangents = make([]mgl32.Vec3, len(positions))
	bitangents = make([]mgl32.Vec3, len(positions))
	if len(normals) < len(positions) || len(uvs) < len(positions) {
		return tangents, bitangents
	}

	for _, f := range faces {
		if len(f) != 3 {
			continue
		}
		i0, i1, i2 := f[0], f[1], f[2]

		e1 := positions[i1].Sub(positions[i0])
		e2 := positions[i2].Sub(positions[i0])
		du1, dv1 := uvs[i1][0]-uvs[i0][0], uvs[i1][1]-uvs[i0][1]
		du2, dv2 := uvs[i2][0]-uvs[i0][0], uvs[i2][1]-uvs[i0][1]

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			continue
		}
		r := 1 / denom

		t := e1.Mul(dv2 * r).Sub(e2.Mul(dv1 * r))
		b := e2.Mul(du1 * r).Sub(e1.Mul(du2 * r))
		for _, i := range f {
			tangents[i] = tangents[i].Add(t)
			bitangents[i] = bitangents[i].Add(b)
		}
	}

	for i := range positions {
		n := normals[i]
		t := tangents[i].Sub(n.Mul(n.Dot(tangents[i])))
		if t.LenSqr() < 1e-8 {
			// Any vector perpendicular to N
			if abs32(n[0]) < 0.9 {
				t = mgl32.Vec3{1, 0, 0}.Sub(n.Mul(n[0]))
			} else {
				t = mgl32.Vec3{0, 1, 0}.Sub(n.Mul(n[1]))
			}
		}
		tangents[i] = Normalize(t)

		b := bitangents[i]
		if b.LenSqr() < 1e-8 {
			b = n.Cross(tangents[i])
		}
		bitangents[i] = Normalize(b)
	}
	return tangents, bitangents
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
