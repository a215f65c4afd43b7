package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	b := new(bytes.Buffer)
	require.NoError(t, png.Encode(b, img))
	return b.Bytes()
}

// mp4Header builds a minimal container prefix: size box, "ftyp", brand.
func mp4Header(brand string) []byte {
	data := []byte{0x00, 0x00, 0x00, 0x18}
	data = append(data, []byte("ftyp")...)
	data = append(data, []byte(brand)...)
	data = append(data, make([]byte, 16)...)
	return data
}

func TestValidateUpload(t *testing.T) {
	p := NewImageProcessor(2 * 1024 * 1024)

	t.Run("detects png", func(t *testing.T) {
		mime, isImage, err := p.ValidateUpload(encodePNG(t, 10, 10))
		require.NoError(t, err)
		assert.Equal(t, "image/png", mime)
		assert.True(t, isImage)
	})

	t.Run("detects jpeg", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 10, 10))
		b := new(bytes.Buffer)
		require.NoError(t, jpeg.Encode(b, img, nil))

		mime, isImage, err := p.ValidateUpload(b.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", mime)
		assert.True(t, isImage)
	})

	t.Run("detects mp4", func(t *testing.T) {
		mime, isImage, err := p.ValidateUpload(mp4Header("isom"))
		require.NoError(t, err)
		assert.Equal(t, "video/mp4", mime)
		assert.False(t, isImage)
	})

	t.Run("detects quicktime", func(t *testing.T) {
		mime, isImage, err := p.ValidateUpload(mp4Header("qt  "))
		require.NoError(t, err)
		assert.Equal(t, "video/quicktime", mime)
		assert.False(t, isImage)
	})

	t.Run("detects webm", func(t *testing.T) {
		data := append([]byte{0x1A, 0x45, 0xDF, 0xA3}, make([]byte, 16)...)
		mime, isImage, err := p.ValidateUpload(data)
		require.NoError(t, err)
		assert.Equal(t, "video/webm", mime)
		assert.False(t, isImage)
	})

	t.Run("rejects unrecognized payload", func(t *testing.T) {
		_, _, err := p.ValidateUpload([]byte("<!doctype html><html></html>"))
		assert.Error(t, err)
	})

	t.Run("rejects truncated container signature", func(t *testing.T) {
		_, _, err := p.ValidateUpload([]byte{0x00, 0x00, 0x00, 0x18, 'f', 't'})
		assert.Error(t, err)
	})

	t.Run("rejects oversize payload", func(t *testing.T) {
		tiny := NewImageProcessor(16)
		_, _, err := tiny.ValidateUpload(encodePNG(t, 10, 10))
		assert.Error(t, err)
	})
}

func TestProcessImage(t *testing.T) {
	p := NewImageProcessor(2 * 1024 * 1024)

	conversions, err := p.ProcessImage(encodePNG(t, 2000, 1000))
	require.NoError(t, err)
	require.Len(t, conversions, 3)

	for name, maxDim := range map[string]int{"thumb": ThumbSize, "card": CardSize, "web": WebSize} {
		data, ok := conversions[name]
		require.True(t, ok, "missing conversion %q", name)

		img, format, err := image.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format, "conversion %q should be jpeg", name)

		bounds := img.Bounds()
		assert.LessOrEqual(t, bounds.Dx(), maxDim, "conversion %q too wide", name)
		assert.LessOrEqual(t, bounds.Dy(), maxDim, "conversion %q too tall", name)
	}
}

func TestProcessImage_SmallSourceNotUpscaled(t *testing.T) {
	p := NewImageProcessor(2 * 1024 * 1024)

	conversions, err := p.ProcessImage(encodePNG(t, 100, 50))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(conversions["web"]))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 100)
	assert.LessOrEqual(t, img.Bounds().Dy(), 50)
}
