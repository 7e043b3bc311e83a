package texture

import (
	"image"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/engine/gpu"
	"github.com/Faultbox/modelview/internal/engine/importer"
	"github.com/Faultbox/modelview/internal/logger"
)

// Cache deduplicates texture uploads within one model load. Entries are
// keyed on the exact reference path. Failed loads are cached with ID 0 so
// the file is not retried. Not safe for concurrent use.
type Cache struct {
	dev     gpu.Device
	dir     string
	log     *zap.Logger
	entries map[string]Texture
	order   []string
	uploads int
}

// NewCache returns a cache resolving relative paths against dir.
func NewCache(dev gpu.Device, dir string, log *zap.Logger) *Cache {
	return &Cache{
		dev:     dev,
		dir:     dir,
		log:     logger.OrNop(log),
		entries: make(map[string]Texture),
	}
}

// Resolve returns one Texture per reference in the material slot. A miss is
// loaded and tagged with role; a hit returns the cached Texture unchanged,
// keeping the role it was first loaded under.
func (c *Cache) Resolve(mat importer.Material, slot importer.TextureSlot, role Role) []Texture {
	n := mat.TextureCount(slot)
	if n == 0 {
		return nil
	}

	out := make([]Texture, 0, n)
	for i := 0; i < n; i++ {
		path := mat.TexturePath(slot, i)
		if tex, ok := c.entries[path]; ok {
			out = append(out, tex)
			continue
		}

		tex := Texture{Role: role, Path: path}
		img, err := c.decode(mat, slot, i, path)
		if err != nil {
			c.log.Warn("texture load failed",
				zap.String("path", path),
				zap.Stringer("slot", slot),
				zap.Error(err),
			)
		} else {
			tex.ID = c.dev.CreateTexture2D(img)
			c.uploads++
			c.log.Debug("texture uploaded",
				zap.String("path", path),
				zap.Int("width", img.Bounds().Dx()),
				zap.Int("height", img.Bounds().Dy()),
			)
		}

		c.entries[path] = tex
		c.order = append(c.order, path)
		out = append(out, tex)
	}
	return out
}

func (c *Cache) decode(mat importer.Material, slot importer.TextureSlot, i int, path string) (*image.RGBA, error) {
	if data, ok := mat.TextureData(slot, i); ok {
		return DecodeImage(data)
	}
	return LoadImage(filepath.Join(c.dir, filepath.FromSlash(path)))
}

// Uploads returns how many textures were sent to the GPU.
func (c *Cache) Uploads() int { return c.uploads }

// Len returns the number of cached paths, failures included.
func (c *Cache) Len() int { return len(c.entries) }

// Textures returns the cached textures in first-load order.
func (c *Cache) Textures() []Texture {
	out := make([]Texture, 0, len(c.order))
	for _, p := range c.order {
		out = append(out, c.entries[p])
	}
	return out
}

// Release deletes every uploaded texture and empties the cache.
func (c *Cache) Release() {
	for _, p := range c.order {
		if tex := c.entries[p]; tex.Loaded() {
			c.dev.DeleteTexture(tex.ID)
		}
	}
	c.entries = make(map[string]Texture)
	c.order = nil
}
