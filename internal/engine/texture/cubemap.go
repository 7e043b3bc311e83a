package texture

import (
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/engine/gpu"
	"github.com/Faultbox/modelview/internal/logger"
)

// LoadCubemap decodes six faces in +X, -X, +Y, -Y, +Z, -Z order and uploads
// them as one cubemap. A face that fails to load is logged and left empty.
// It returns the handle and the number of faces that loaded.
func LoadCubemap(dev gpu.Device, faces [6]string, log *zap.Logger) (gpu.Texture, int) {
	log = logger.OrNop(log)

	var imgs [6]*image.RGBA
	loaded := 0
	for i, path := range faces {
		img, err := LoadImage(path)
		if err != nil {
			log.Warn("cubemap face failed to load", zap.Int("face", i), zap.String("path", path), zap.Error(err))
			continue
		}
		imgs[i] = img
		loaded++
	}
	return dev.CreateCubemap(imgs), loaded
}
