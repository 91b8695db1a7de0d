package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// ImageSize names a bounding box images get scaled into.
type ImageSize struct {
	Name   string
	Width  int
	Height int
}

var (
	SizeAvatar = ImageSize{Name: "avatar", Width: 300, Height: 300}
	SizeCover  = ImageSize{Name: "cover", Width: 1200, Height: 630}
)

// Processor resizes and re-encodes uploaded images.
type Processor struct {
	quality int // JPEG quality, 1-100
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality}
}

// Process decodes the image, scales it into the given bounds preserving
// aspect ratio and re-encodes it in its original format.
func (p *Processor) Process(reader io.Reader, size ImageSize) (io.Reader, string, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	resized := p.resize(img, size.Width, size.Height)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		return &buf, "image/jpeg", nil
	case "png":
		if err := png.Encode(&buf, resized); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return &buf, "image/png", nil
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}
}

func (p *Processor) resize(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		return img
	}

	ratio := float64(width) / float64(height)
	newWidth := maxWidth
	newHeight := maxHeight
	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// IsValidImage reports whether the reader holds a decodable image.
func IsValidImage(reader io.Reader) bool {
	_, _, err := image.Decode(reader)
	return err == nil
}
