// Package importer reads 3D asset files into a format-neutral Asset and runs
// the requested post-processing steps over it.
package importer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PrimitiveType classifies faces by corner count.
type PrimitiveType int

const (
	PrimitivePoint PrimitiveType = 1 << iota
	PrimitiveLine
	PrimitiveTriangle
	PrimitivePolygon
)

// TypeOfFace returns the primitive type for a face with n corners.
func TypeOfFace(n int) PrimitiveType {
	switch n {
	case 1:
		return PrimitivePoint
	case 2:
		return PrimitiveLine
	case 3:
		return PrimitiveTriangle
	default:
		return PrimitivePolygon
	}
}

// SourceMesh is one imported sub-mesh. Attribute slices are parallel to
// Positions; a nil slice means the attribute is absent.
type SourceMesh struct {
	Name          string
	Positions     []mgl32.Vec3
	Normals       []mgl32.Vec3
	UV0           []mgl32.Vec2
	Tangents      []mgl32.Vec3
	Bitangents    []mgl32.Vec3
	Faces         [][]uint32
	MaterialIndex int // -1 for none
}

// PrimitiveTypes returns the union of face types in the mesh.
func (m *SourceMesh) PrimitiveTypes() PrimitiveType {
	var t PrimitiveType
	for _, f := range m.Faces {
		t |= TypeOfFace(len(f))
	}
	return t
}

// Node is one entry of the asset's node tree.
type Node struct {
	Name        string
	Transform   mgl32.Mat4 // local, relative to the parent
	MeshIndices []int
	Children    []*Node
}

// NewNode returns a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Transform: mgl32.Ident4()}
}

// Walk visits n and its descendants depth-first with accumulated world transforms.
func (n *Node) Walk(parent mgl32.Mat4, fn func(node *Node, world mgl32.Mat4)) {
	world := parent.Mul4(n.Transform)
	fn(n, world)
	for _, c := range n.Children {
		c.Walk(world, fn)
	}
}

// Asset is the importer's output.
type Asset struct {
	Root      *Node
	Meshes    []*SourceMesh
	Materials []Material
	// Incomplete is set when parts of the file could not be represented.
	Incomplete bool
	// Applied records the post-processing steps that ran.
	Applied Flags
}

// MaterialAt returns the material for index i, if valid.
func (a *Asset) MaterialAt(i int) (Material, bool) {
	if i < 0 || i >= len(a.Materials) {
		return nil, false
	}
	return a.Materials[i], true
}
