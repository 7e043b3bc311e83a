package scene

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/engine/gpu"
	"github.com/Faultbox/modelview/internal/engine/importer"
	"github.com/Faultbox/modelview/internal/engine/model"
	"github.com/Faultbox/modelview/internal/engine/texture"
	"github.com/Faultbox/modelview/internal/logger"
)

// Load failures. Each leaves the returned model empty.
var (
	ErrImport     = errors.New("import failed")
	ErrIncomplete = errors.New("asset incomplete")
	ErrNoRootNode = errors.New("asset has no root node")
	ErrMeshSetup  = errors.New("mesh setup failed")
)

var (
	defaultBaseColor = mgl32.Vec4{1, 1, 1, 1}
	blackFallback    = mgl32.Vec4{0.5, 0.5, 0.5, 1}
)

// Slots tried in order for each texture role. The first slot that yields
// any texture wins.
var (
	diffuseSlots  = []importer.TextureSlot{importer.SlotDiffuse, importer.SlotBaseColor, importer.SlotAmbient, importer.SlotUnknown}
	specularSlots = []importer.TextureSlot{importer.SlotSpecular}
	normalSlots   = []importer.TextureSlot{importer.SlotHeight, importer.SlotNormals}
)

// Loader turns asset files into Models.
type Loader struct {
	dev gpu.Device
	imp importer.Importer
	log *zap.Logger
}

// NewLoader returns a Loader uploading through dev.
func NewLoader(dev gpu.Device, imp importer.Importer, log *zap.Logger) *Loader {
	return &Loader{dev: dev, imp: imp, log: logger.OrNop(log)}
}

// Load imports path and builds one Mesh per sub-mesh. On failure the model
// is returned empty together with the error; drawing it is a no-op.
func (l *Loader) Load(path string) (*Model, error) {
	m := NewModel(path)

	asset, err := l.imp.Load(path, importer.FlagsForPath(path))
	switch {
	case err != nil:
		return m, l.fail(path, fmt.Errorf("%w: %w", ErrImport, err))
	case asset == nil:
		return m, l.fail(path, fmt.Errorf("%w: no asset returned", ErrImport))
	case asset.Incomplete:
		return m, l.fail(path, ErrIncomplete)
	case asset.Root == nil:
		return m, l.fail(path, ErrNoRootNode)
	}

	cache := texture.NewCache(l.dev, filepath.Dir(path), l.log)
	b := &meshBuilder{loader: l, asset: asset, cache: cache}
	if err := b.build(); err != nil {
		for _, mesh := range b.meshes {
			mesh.Release()
		}
		cache.Release()
		return m, l.fail(path, fmt.Errorf("%w: %w", ErrMeshSetup, err))
	}

	m.meshes = b.meshes
	m.textures = cache
	l.log.Info("model loaded",
		zap.String("path", path),
		zap.String("name", m.Name()),
		zap.Int("meshes", len(m.meshes)),
		zap.Int("textures", cache.Uploads()),
	)
	return m, nil
}

func (l *Loader) fail(path string, err error) error {
	err = fmt.Errorf("load %s: %w", path, err)
	l.log.Error("model load failed", zap.String("path", path), zap.Error(err))
	return err
}

type meshBuilder struct {
	loader *Loader
	asset  *importer.Asset
	cache  *texture.Cache
	meshes []*Mesh
}

// build creates one Mesh per asset sub-mesh, in asset order. A sub-mesh
// referenced by exactly one node has that node's world transform baked in;
// shared or unreferenced sub-meshes keep their local coordinates.
func (b *meshBuilder) build() error {
	refs := make([]int, len(b.asset.Meshes))
	worlds := make([]mgl32.Mat4, len(b.asset.Meshes))
	if err := b.node(b.asset.Root, mgl32.Ident4(), refs, worlds); err != nil {
		return err
	}

	for i, src := range b.asset.Meshes {
		if src == nil || len(src.Positions) == 0 || len(src.Faces) == 0 {
			b.loader.log.Warn("skipping empty mesh", zap.Int("index", i))
			continue
		}
		world := mgl32.Ident4()
		if refs[i] == 1 {
			world = worlds[i]
		} else if refs[i] > 1 {
			b.loader.log.Debug("mesh shared by several nodes, transform not baked",
				zap.String("mesh", src.Name),
				zap.Int("nodes", refs[i]),
			)
		}
		mesh, err := b.mesh(src, world)
		if err != nil {
			return err
		}
		b.meshes = append(b.meshes, mesh)
	}
	return nil
}

// node records, depth-first, how many nodes reference each sub-mesh and the
// world transform of the last one.
func (b *meshBuilder) node(n *importer.Node, parent mgl32.Mat4, refs []int, worlds []mgl32.Mat4) error {
	world := parent.Mul4(n.Transform)
	for _, idx := range n.MeshIndices {
		if idx < 0 || idx >= len(b.asset.Meshes) {
			return fmt.Errorf("node %q: mesh index %d: %w", n.Name, idx, ErrIndexOutOfRange)
		}
		refs[idx]++
		worlds[idx] = world
	}
	for _, c := range n.Children {
		if err := b.node(c, world, refs, worlds); err != nil {
			return err
		}
	}
	return nil
}

func (b *meshBuilder) mesh(src *importer.SourceMesh, world mgl32.Mat4) (*Mesh, error) {
	positions, normals := src.Positions, src.Normals
	if world != mgl32.Ident4() {
		positions, normals = bakeTransform(world, positions, normals)
	}

	vertices := model.BuildVertices(positions, normals, src.UV0)
	indices := model.FlattenFaces(src.Faces)

	var textures []texture.Texture
	baseColor := defaultBaseColor
	if mat, ok := b.asset.MaterialAt(src.MaterialIndex); ok {
		textures = append(textures, b.resolve(mat, diffuseSlots, texture.Diffuse)...)
		textures = append(textures, b.resolve(mat, specularSlots, texture.Specular)...)
		textures = append(textures, b.resolve(mat, normalSlots, texture.Normal)...)
		baseColor = materialColor(mat)
	}

	mesh, err := NewMesh(b.loader.dev, src.Name, vertices, indices, textures, baseColor)
	if err != nil {
		return nil, err
	}
	mesh.primitive = primitiveFor(src.PrimitiveTypes())
	return mesh, nil
}

// resolve returns the loaded textures of the first slot that has any
// reference. Failed loads stay cached but are not bound.
func (b *meshBuilder) resolve(mat importer.Material, slots []importer.TextureSlot, role texture.Role) []texture.Texture {
	for _, slot := range slots {
		found := b.cache.Resolve(mat, slot, role)
		if len(found) == 0 {
			continue
		}
		loaded := found[:0]
		for _, t := range found {
			if t.Loaded() {
				loaded = append(loaded, t)
			}
		}
		return loaded
	}
	return nil
}

// materialColor returns the material's diffuse color, mapping pure black to
// mid-grey so untextured black materials stay visible.
func materialColor(mat importer.Material) mgl32.Vec4 {
	c, ok := mat.DiffuseColor()
	if !ok {
		return defaultBaseColor
	}
	if c[0] == 0 && c[1] == 0 && c[2] == 0 {
		return blackFallback
	}
	return c
}

func primitiveFor(t importer.PrimitiveType) gpu.Primitive {
	switch t {
	case importer.PrimitiveLine:
		return gpu.Lines
	case importer.PrimitivePoint:
		return gpu.Points
	default:
		return gpu.Triangles
	}
}

func bakeTransform(world mgl32.Mat4, positions, normals []mgl32.Vec3) ([]mgl32.Vec3, []mgl32.Vec3) {
	outPos := make([]mgl32.Vec3, len(positions))
	for i, p := range positions {
		outPos[i] = model.TransformPoint(world, p)
	}
	if normals == nil {
		return outPos, nil
	}
	normalMat := world.Mat3().Inv().Transpose()
	outNorm := make([]mgl32.Vec3, len(normals))
	for i, n := range normals {
		outNorm[i] = model.Normalize(normalMat.Mul3x1(n))
	}
	return outPos, outNorm
}
