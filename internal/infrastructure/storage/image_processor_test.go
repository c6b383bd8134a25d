package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	p := NewImageProcessor()

	assert.NoError(t, p.ValidateImage(encodePNG(t, 10, 10)))
	assert.ErrorIs(t, p.ValidateImage([]byte("plain text")), ErrUnsupportedImage)

	var gifBuf bytes.Buffer
	require.NoError(t, gif.Encode(&gifBuf, image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black}), nil))
	assert.ErrorIs(t, p.ValidateImage(gifBuf.Bytes()), ErrUnsupportedImage)

	small := &ImageProcessor{MaxSize: 10, MaxEdge: 100, Quality: 80}
	assert.ErrorIs(t, small.ValidateImage(encodePNG(t, 10, 10)), ErrUnsupportedImage)
}

func TestProcessCover_FitsLongestEdge(t *testing.T) {
	p := &ImageProcessor{MaxSize: 5 << 20, MaxEdge: 100, Quality: 80}

	out, err := p.ProcessCover(encodePNG(t, 400, 200))
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestProcessCover_KeepsSmallImages(t *testing.T) {
	p := NewImageProcessor()

	out, err := p.ProcessCover(encodePNG(t, 40, 30))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 40, cfg.Width)
}
