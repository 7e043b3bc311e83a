package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/logger"
)

// ErrUnsupportedFormat is returned for extensions without a backend.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Importer loads an asset file and applies post-processing flags.
type Importer interface {
	Load(path string, flags Flags) (*Asset, error)
}

// FileImporter dispatches on file extension to the OBJ or glTF backend.
type FileImporter struct {
	log *zap.Logger
}

// New returns a FileImporter. A nil logger disables logging.
func New(log *zap.Logger) *FileImporter {
	return &FileImporter{log: logger.OrNop(log)}
}

// Load reads path and runs the post-processing steps selected by flags.
func (im *FileImporter) Load(path string, flags Flags) (*Asset, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		asset *Asset
		err   error
	)
	switch ext {
	case ".obj":
		asset, err = loadOBJ(path, im.log)
	case ".gltf", ".glb":
		asset, err = loadGLTF(path, im.log)
	default:
		return nil, fmt.Errorf("%s: %q: %w", path, ext, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}

	PostProcess(asset, flags)

	im.log.Debug("asset imported",
		zap.String("path", path),
		zap.Int("meshes", len(asset.Meshes)),
		zap.Int("materials", len(asset.Materials)),
		zap.Stringer("flags", asset.Applied),
		zap.Bool("incomplete", asset.Incomplete),
	)
	return asset, nil
}

var _ Importer = (*FileImporter)(nil)
