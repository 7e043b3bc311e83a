package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/modelview/internal/engine/gpu"
)

// Screenshots writes PNG captures of the default framebuffer.
type Screenshots struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewScreenshots returns a capturer writing <dir>/<prefix>_<timestamp>.png.
func NewScreenshots(dir, prefix string) *Screenshots {
	if prefix == "" {
		prefix = "screenshot"
	}
	return &Screenshots{dir: dir, prefix: prefix, now: time.Now}
}

// Capture reads the current viewport from dev and saves it.
func (s *Screenshots) Capture(dev gpu.Device) (string, error) {
	vp := dev.Viewport()
	pixels := dev.ReadPixels(vp)
	return s.WritePixels(pixels, int(vp.Width), int(vp.Height))
}

// WritePixels saves bottom-up RGBA rows, as GL returns them, as a top-down PNG.
func (s *Screenshots) WritePixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid screenshot size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	return s.Save(FlipRows(pixels, width, height))
}

// Save encodes img to a new timestamped file and returns its path.
func (s *Screenshots) Save(img image.Image) (string, error) {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := s.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}

// Filename returns the path the next capture would use.
func (s *Screenshots) Filename() string {
	name := fmt.Sprintf("%s_%s.png", s.prefix, s.now().Format("2006-01-02_15-04-05.000"))
	if s.dir == "" {
		return name
	}
	return filepath.Join(s.dir, name)
}

// FlipRows copies bottom-up RGBA rows into a top-down image.
func FlipRows(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img
}
