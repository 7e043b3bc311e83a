package importer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/internal/engine/model"
)

// PostProcess runs the steps selected by flags in a fixed order:
// Triangulate, SortByPType, GenNormals, JoinIdenticalVertices, FlipUVs,
// CalcTangentSpace, LimitBoneWeights.
func PostProcess(a *Asset, flags Flags) {
	if flags.Has(Triangulate) {
		for _, m := range a.Meshes {
			triangulate(m)
		}
		a.Applied |= Triangulate
	}
	if flags.Has(SortByPType) {
		sortByPType(a)
		a.Applied |= SortByPType
	}
	if flags.Has(GenNormals) {
		for _, m := range a.Meshes {
			if m.Normals == nil {
				m.Normals = model.GenerateNormals(m.Positions, m.Faces)
			}
		}
		a.Applied |= GenNormals
	}
	if flags.Has(JoinIdenticalVertices) {
		for _, m := range a.Meshes {
			joinIdenticalVertices(m)
		}
		a.Applied |= JoinIdenticalVertices
	}
	if flags.Has(FlipUVs) {
		for _, m := range a.Meshes {
			for i := range m.UV0 {
				m.UV0[i][1] = 1 - m.UV0[i][1]
			}
		}
		a.Applied |= FlipUVs
	}
	if flags.Has(CalcTangentSpace) {
		for _, m := range a.Meshes {
			if m.Normals != nil && m.UV0 != nil {
				m.Tangents, m.Bitangents = model.ComputeTangents(m.Positions, m.Normals, m.UV0, m.Faces)
			}
		}
		a.Applied |= CalcTangentSpace
	}
	if flags.Has(LimitBoneWeights) {
		// Skinning is not imported, so there are no weights to limit.
		a.Applied |= LimitBoneWeights
	}
}

// triangulate fan-splits polygons. Points and lines are left alone.
func triangulate(m *SourceMesh) {
	out := make([][]uint32, 0, len(m.Faces))
	for _, f := range m.Faces {
		if len(f) <= 3 {
			out = append(out, f)
			continue
		}
		for i := 1; i+1 < len(f); i++ {
			out = append(out, []uint32{f[0], f[i], f[i+1]})
		}
	}
	m.Faces = out
}

// sortByPType splits meshes that mix primitive types into one mesh per type,
// triangles first, and rewrites node mesh references.
func sortByPType(a *Asset) {
	order := []PrimitiveType{PrimitiveTriangle, PrimitivePolygon, PrimitiveLine, PrimitivePoint}

	remap := make([][]int, len(a.Meshes))
	var meshes []*SourceMesh
	for i, m := range a.Meshes {
		types := m.PrimitiveTypes()
		if types == 0 || types&(types-1) == 0 {
			// Single type
			remap[i] = []int{len(meshes)}
			meshes = append(meshes, m)
			continue
		}
		for _, t := range order {
			if types&t == 0 {
				continue
			}
			remap[i] = append(remap[i], len(meshes))
			meshes = append(meshes, subMesh(m, t))
		}
	}
	a.Meshes = meshes

	if a.Root == nil {
		return
	}
	a.Root.Walk(mgl32.Ident4(), func(n *Node, _ mgl32.Mat4) {
		var idx []int
		for _, mi := range n.MeshIndices {
			if mi >= 0 && mi < len(remap) {
				idx = append(idx, remap[mi]...)
			}
		}
		n.MeshIndices = idx
	})
}

// subMesh copies the faces of type t and the vertices they use.
func subMesh(m *SourceMesh, t PrimitiveType) *SourceMesh {
	out := &SourceMesh{Name: m.Name, MaterialIndex: m.MaterialIndex}
	used := make(map[uint32]uint32)
	for _, f := range m.Faces {
		if TypeOfFace(len(f)) != t {
			continue
		}
		nf := make([]uint32, len(f))
		for j, idx := range f {
			ni, ok := used[idx]
			if !ok {
				ni = uint32(len(out.Positions))
				used[idx] = ni
				copyVertex(out, m, int(idx))
			}
			nf[j] = ni
		}
		out.Faces = append(out.Faces, nf)
	}
	return out
}

func copyVertex(dst, src *SourceMesh, i int) {
	dst.Positions = append(dst.Positions, src.Positions[i])
	if src.Normals != nil {
		dst.Normals = append(dst.Normals, src.Normals[i])
	}
	if src.UV0 != nil {
		dst.UV0 = append(dst.UV0, src.UV0[i])
	}
	if src.Tangents != nil {
		dst.Tangents = append(dst.Tangents, src.Tangents[i])
	}
	if src.Bitangents != nil {
		dst.Bitangents = append(dst.Bitangents, src.Bitangents[i])
	}
}

type vertexKey struct {
	pos, normal, tangent, bitangent mgl32.Vec3
	uv                              mgl32.Vec2
}

func keyOf(m *SourceMesh, i int) vertexKey {
	k := vertexKey{pos: m.Positions[i]}
	if m.Normals != nil {
		k.normal = m.Normals[i]
	}
	if m.UV0 != nil {
		k.uv = m.UV0[i]
	}
	if m.Tangents != nil {
		k.tangent = m.Tangents[i]
	}
	if m.Bitangents != nil {
		k.bitangent = m.Bitangents[i]
	}
	return k
}

// joinIdenticalVertices merges vertices with identical attributes and remaps
// face indices. Unreferenced vertices are dropped.
func joinIdenticalVertices(m *SourceMesh) {
	out := &SourceMesh{}
	seen := make(map[vertexKey]uint32)
	for _, f := range m.Faces {
		for j, idx := range f {
			k := keyOf(m, int(idx))
			ni, ok := seen[k]
			if !ok {
				ni = uint32(len(out.Positions))
				seen[k] = ni
				copyVertex(out, m, int(idx))
			}
			f[j] = ni
		}
	}
	m.Positions = out.Positions
	m.Normals = out.Normals
	m.UV0 = out.UV0
	m.Tangents = out.Tangents
	m.Bitangents = out.Bitangents
}
