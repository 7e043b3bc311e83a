package importer

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/pkg/formats"
)

// loadOBJ converts a Wavefront OBJ file and its material libraries. Every
// face corner becomes its own vertex; JoinIdenticalVertices merges them.
func loadOBJ(path string, log *zap.Logger) (*Asset, error) {
	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	dir := filepath.Dir(path)

	asset := &Asset{Root: NewNode(filepath.Base(path))}

	var libs []*formats.MTL
	for _, name := range obj.MaterialLibs {
		lib, err := formats.ParseMTLFile(filepath.Join(dir, name))
		if err != nil {
			// Missing libraries leave meshes on the default material
			log.Warn("material library not loaded", zap.String("mtllib", name), zap.Error(err))
			continue
		}
		libs = append(libs, lib)
	}

	materialIndex := make(map[string]int)
	resolveMaterial := func(name string) int {
		if idx, ok := materialIndex[name]; ok {
			return idx
		}
		var mat *BasicMaterial
		for _, lib := range libs {
			if m, ok := lib.Find(name); ok {
				mat = materialFromMTL(m)
				break
			}
		}
		if mat == nil {
			if name != "" {
				log.Warn("material not found", zap.String("material", name))
			}
			mat = NewBasicMaterial("DefaultMaterial")
		}
		idx := len(asset.Materials)
		asset.Materials = append(asset.Materials, mat)
		materialIndex[name] = idx
		return idx
	}

	for _, o := range obj.Objects {
		mesh := &SourceMesh{Name: o.Name, MaterialIndex: resolveMaterial(o.Material)}
		if obj.HasNormals() {
			mesh.Normals = []mgl32.Vec3{}
		}
		if obj.HasTexCoords() {
			mesh.UV0 = []mgl32.Vec2{}
		}

		for _, f := range o.Faces {
			face := make([]uint32, len(f.Corners))
			for j, c := range f.Corners {
				face[j] = uint32(len(mesh.Positions))
				mesh.Positions = append(mesh.Positions, obj.Positions[c.V])
				if mesh.Normals != nil {
					var n mgl32.Vec3
					if c.VN >= 0 {
						n = obj.Normals[c.VN]
					}
					mesh.Normals = append(mesh.Normals, n)
				}
				if mesh.UV0 != nil {
					var uv mgl32.Vec2
					if c.VT >= 0 {
						uv = obj.TexCoords[c.VT]
					}
					mesh.UV0 = append(mesh.UV0, uv)
				}
			}
			mesh.Faces = append(mesh.Faces, face)
		}

		node := NewNode(o.Name)
		node.MeshIndices = []int{len(asset.Meshes)}
		asset.Root.Children = append(asset.Root.Children, node)
		asset.Meshes = append(asset.Meshes, mesh)
	}

	return asset, nil
}

func materialFromMTL(m *formats.MTLMaterial) *BasicMaterial {
	mat := NewBasicMaterial(m.Name)
	if m.HasDiffuse {
		mat.SetDiffuse(mgl32.Vec4{m.Diffuse[0], m.Diffuse[1], m.Diffuse[2], m.Dissolve})
	}
	mat.AddTexture(SlotDiffuse, TextureRef{Path: m.MapDiffuse})
	mat.AddTexture(SlotSpecular, TextureRef{Path: m.MapSpecular})
	mat.AddTexture(SlotAmbient, TextureRef{Path: m.MapAmbient})
	mat.AddTexture(SlotHeight, TextureRef{Path: m.MapBump})
	mat.AddTexture(SlotNormals, TextureRef{Path: m.MapNormal})
	return mat
}
