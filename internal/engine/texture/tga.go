package texture

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

func init() {
	// TGA has no magic number; match on the color-map and image-type bytes.
	image.RegisterFormat("tga", "?\x00\x02", decodeTGAReader, decodeTGAConfig)
	image.RegisterFormat("tga", "?\x00\x0a", decodeTGAReader, decodeTGAConfig)
}

func decodeTGAReader(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeTGA(data)
}

func decodeTGAConfig(r io.Reader) (image.Config, error) {
	var h [18]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return image.Config{}, fmt.Errorf("TGA header: %w", err)
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      int(h[12]) | int(h[13])<<8,
		Height:     int(h[14]) | int(h[15])<<8,
	}, nil
}

// DecodeTGA decodes a TGA image file.
// Supports uncompressed true-color (type 2) and RLE compressed (type 10) TGA files.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixelData := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bytesPerPixel := bpp / 8

	// Bit 5 of the descriptor marks top-to-bottom row order
	topToBottom := (descriptor & 0x20) != 0
	put := func(pixelIdx int, c color.RGBA) {
		x := pixelIdx % width
		y := pixelIdx / width
		if !topToBottom {
			y = height - 1 - y
		}
		img.SetRGBA(x, y, c)
	}
	pixel := func(p []byte) color.RGBA {
		c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
		if bytesPerPixel == 4 {
			c.A = p[3]
		}
		return c
	}

	pixelCount := width * height
	if imageType == TGATypeUncompressed {
		if len(pixelData) < pixelCount*bytesPerPixel {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < pixelCount; i++ {
			put(i, pixel(pixelData[i*bytesPerPixel:]))
		}
		return img, nil
	}

	pixelIdx, dataIdx := 0, 0
	for pixelIdx < pixelCount && dataIdx < len(pixelData) {
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run packet: one pixel repeated
			if dataIdx+bytesPerPixel > len(pixelData) {
				break
			}
			c := pixel(pixelData[dataIdx:])
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				put(pixelIdx, c)
				pixelIdx++
			}
			continue
		}

		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			if dataIdx+bytesPerPixel > len(pixelData) {
				break
			}
			put(pixelIdx, pixel(pixelData[dataIdx:]))
			dataIdx += bytesPerPixel
			pixelIdx++
		}
	}

	return img, nil
}
