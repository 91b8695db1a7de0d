package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngImage(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func jpegImage(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return &buf
}

func TestProcessor_Process(t *testing.T) {
	p := NewProcessor(85)

	t.Run("scales oversized images into the bounds", func(t *testing.T) {
		out, contentType, err := p.Process(pngImage(t, 900, 600), SizeAvatar)
		require.NoError(t, err)
		assert.Equal(t, "image/png", contentType)

		resized, format, err := image.Decode(out)
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.LessOrEqual(t, resized.Bounds().Dx(), SizeAvatar.Width)
		assert.LessOrEqual(t, resized.Bounds().Dy(), SizeAvatar.Height)
	})

	t.Run("preserves aspect ratio", func(t *testing.T) {
		out, _, err := p.Process(pngImage(t, 600, 300), SizeAvatar)
		require.NoError(t, err)

		resized, _, err := image.Decode(out)
		require.NoError(t, err)
		assert.Equal(t, 300, resized.Bounds().Dx())
		assert.Equal(t, 150, resized.Bounds().Dy())
	})

	t.Run("small images pass through unscaled", func(t *testing.T) {
		out, _, err := p.Process(pngImage(t, 100, 80), SizeCover)
		require.NoError(t, err)

		resized, _, err := image.Decode(out)
		require.NoError(t, err)
		assert.Equal(t, 100, resized.Bounds().Dx())
		assert.Equal(t, 80, resized.Bounds().Dy())
	})

	t.Run("jpeg stays jpeg", func(t *testing.T) {
		_, contentType, err := p.Process(jpegImage(t, 50, 50), SizeAvatar)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("garbage input fails", func(t *testing.T) {
		_, _, err := p.Process(strings.NewReader("definitely not an image"), SizeAvatar)
		require.Error(t, err)
	})
}

func TestIsValidImage(t *testing.T) {
	assert.True(t, IsValidImage(pngImage(t, 10, 10)))
	assert.False(t, IsValidImage(strings.NewReader("nope")))
}
