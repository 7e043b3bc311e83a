package importer

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

// loadGLTF converts a .gltf or .glb document. Each primitive becomes one
// SourceMesh; unreadable primitives are skipped and mark the asset Incomplete.
func loadGLTF(path string, log *zap.Logger) (*Asset, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %s: %w", path, err)
	}

	asset := &Asset{Root: NewNode(filepath.Base(path))}

	for i, gm := range doc.Materials {
		asset.Materials = append(asset.Materials, gltfMaterial(doc, i, gm, log))
	}

	// primitive meshes per glTF mesh
	meshPrims := make([][]int, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			sm, err := gltfPrimitive(doc, prim)
			if err != nil {
				log.Warn("gltf primitive skipped",
					zap.Int("mesh", mi), zap.Int("primitive", pi), zap.Error(err))
				asset.Incomplete = true
				continue
			}
			sm.Name = primitiveName(gm.Name, mi, pi, len(gm.Primitives))
			meshPrims[mi] = append(meshPrims[mi], len(asset.Meshes))
			asset.Meshes = append(asset.Meshes, sm)
		}
	}

	nodes := make([]*Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		name := gn.Name
		if name == "" {
			name = fmt.Sprintf("node_%d", i)
		}
		n := NewNode(name)
		n.Transform = gltfNodeTransform(gn)
		if gn.Mesh != nil && *gn.Mesh >= 0 && *gn.Mesh < len(meshPrims) {
			n.MeshIndices = append(n.MeshIndices, meshPrims[*gn.Mesh]...)
		}
		nodes[i] = n
	}

	// Children are linked once; a node claimed twice keeps its first parent.
	hasParent := make([]bool, len(nodes))
	for i, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < 0 || c >= len(nodes) || c == i || hasParent[c] {
				continue
			}
			hasParent[c] = true
			nodes[i].Children = append(nodes[i].Children, nodes[c])
		}
	}

	var roots []int
	switch {
	case doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes):
		roots = doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		roots = doc.Scenes[0].Nodes
	default:
		for i := range nodes {
			if !hasParent[i] {
				roots = append(roots, i)
			}
		}
	}
	for _, r := range roots {
		if r >= 0 && r < len(nodes) && !hasParent[r] {
			asset.Root.Children = append(asset.Root.Children, nodes[r])
		}
	}

	return asset, nil
}

func primitiveName(meshName string, mi, pi, count int) string {
	if meshName == "" {
		meshName = fmt.Sprintf("mesh_%d", mi)
	}
	if count > 1 {
		return fmt.Sprintf("%s_p%d", meshName, pi)
	}
	return meshName
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func gltfNodeTransform(gn *gltf.Node) mgl32.Mat4 {
	if m := gn.MatrixOrDefault(); m != identityMatrix {
		var out mgl32.Mat4
		for i := range m {
			out[i] = float32(m[i])
		}
		return out
	}
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault()
	s := gn.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func gltfPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*SourceMesh, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok || posIdx < 0 || posIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	sm := &SourceMesh{MaterialIndex: -1}
	sm.Positions = make([]mgl32.Vec3, len(positions))
	for i, p := range positions {
		sm.Positions[i] = p
	}

	if idx, ok := prim.Attributes["NORMAL"]; ok && idx >= 0 && idx < len(doc.Accessors) {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
		if len(normals) == len(positions) {
			sm.Normals = make([]mgl32.Vec3, len(normals))
			for i, n := range normals {
				sm.Normals[i] = n
			}
		}
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok && idx >= 0 && idx < len(doc.Accessors) {
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("texcoords: %w", err)
		}
		if len(uvs) == len(positions) {
			sm.UV0 = make([]mgl32.Vec2, len(uvs))
			for i, uv := range uvs {
				sm.UV0[i] = uv
			}
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if *prim.Indices < 0 || *prim.Indices >= len(doc.Accessors) {
			return nil, fmt.Errorf("indices accessor %d out of range", *prim.Indices)
		}
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("index %d exceeds %d vertices", idx, len(positions))
		}
	}

	faces, err := facesForMode(prim.Mode, indices)
	if err != nil {
		return nil, err
	}
	sm.Faces = faces

	if prim.Material != nil {
		sm.MaterialIndex = *prim.Material
	}
	return sm, nil
}

// facesForMode expands strips, fans and loops into lists.
func facesForMode(mode gltf.PrimitiveMode, idx []uint32) ([][]uint32, error) {
	var faces [][]uint32
	switch mode {
	case gltf.PrimitiveTriangles:
		for i := 0; i+2 < len(idx); i += 3 {
			faces = append(faces, []uint32{idx[i], idx[i+1], idx[i+2]})
		}
	case gltf.PrimitiveTriangleStrip:
		for i := 0; i+2 < len(idx); i++ {
			if i%2 == 0 {
				faces = append(faces, []uint32{idx[i], idx[i+1], idx[i+2]})
			} else {
				faces = append(faces, []uint32{idx[i+1], idx[i], idx[i+2]})
			}
		}
	case gltf.PrimitiveTriangleFan:
		for i := 1; i+1 < len(idx); i++ {
			faces = append(faces, []uint32{idx[0], idx[i], idx[i+1]})
		}
	case gltf.PrimitiveLines:
		for i := 0; i+1 < len(idx); i += 2 {
			faces = append(faces, []uint32{idx[i], idx[i+1]})
		}
	case gltf.PrimitiveLineStrip, gltf.PrimitiveLineLoop:
		for i := 0; i+1 < len(idx); i++ {
			faces = append(faces, []uint32{idx[i], idx[i+1]})
		}
		if mode == gltf.PrimitiveLineLoop && len(idx) > 2 {
			faces = append(faces, []uint32{idx[len(idx)-1], idx[0]})
		}
	case gltf.PrimitivePoints:
		for _, i := range idx {
			faces = append(faces, []uint32{i})
		}
	default:
		return nil, fmt.Errorf("unsupported primitive mode %d", mode)
	}
	return faces, nil
}

func gltfMaterial(doc *gltf.Document, i int, gm *gltf.Material, log *zap.Logger) *BasicMaterial {
	name := gm.Name
	if name == "" {
		name = fmt.Sprintf("material_%d", i)
	}
	mat := NewBasicMaterial(name)

	add := func(slot TextureSlot, texIdx int) {
		ref, err := gltfTextureRef(doc, texIdx)
		if err != nil {
			log.Warn("gltf texture skipped", zap.String("material", name), zap.Stringer("slot", slot), zap.Error(err))
			return
		}
		mat.AddTexture(slot, ref)
	}

	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		cf := pbr.BaseColorFactorOrDefault()
		mat.SetDiffuse(mgl32.Vec4{float32(cf[0]), float32(cf[1]), float32(cf[2]), float32(cf[3])})
		if pbr.BaseColorTexture != nil {
			add(SlotBaseColor, pbr.BaseColorTexture.Index)
		}
	}
	if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
		add(SlotNormals, *gm.NormalTexture.Index)
	}
	if gm.OcclusionTexture != nil && gm.OcclusionTexture.Index != nil {
		add(SlotAmbient, *gm.OcclusionTexture.Index)
	}
	if gm.EmissiveTexture != nil {
		add(SlotUnknown, gm.EmissiveTexture.Index)
	}
	return mat
}

// gltfTextureRef resolves a texture index to a file path or embedded bytes.
// Embedded images are keyed "*N" by image index.
func gltfTextureRef(doc *gltf.Document, texIdx int) (TextureRef, error) {
	if texIdx < 0 || texIdx >= len(doc.Textures) {
		return TextureRef{}, fmt.Errorf("texture %d out of range", texIdx)
	}
	src := doc.Textures[texIdx].Source
	if src == nil || *src < 0 || *src >= len(doc.Images) {
		return TextureRef{}, fmt.Errorf("texture %d has no image", texIdx)
	}
	img := doc.Images[*src]
	key := fmt.Sprintf("*%d", *src)

	switch {
	case img.BufferView != nil:
		if *img.BufferView < 0 || *img.BufferView >= len(doc.BufferViews) {
			return TextureRef{}, fmt.Errorf("image %d buffer view out of range", *src)
		}
		data, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return TextureRef{}, fmt.Errorf("image %d buffer view: %w", *src, err)
		}
		return TextureRef{Path: key, Data: data}, nil
	case img.IsEmbeddedResource():
		data, err := img.MarshalData()
		if err != nil {
			return TextureRef{}, fmt.Errorf("image %d data uri: %w", *src, err)
		}
		return TextureRef{Path: key, Data: data}, nil
	case img.URI != "":
		return TextureRef{Path: img.URI}, nil
	default:
		return TextureRef{}, fmt.Errorf("image %d has no source", *src)
	}
}
