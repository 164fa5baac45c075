package scene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// twoRowImage is 2x2 with a red top row and a blue bottom row.
func twoRowImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	img.Set(0, 0, red)
	img.Set(1, 0, red)
	img.Set(0, 1, blue)
	img.Set(1, 1, blue)
	return img
}

func TestDecodeImageFlip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, twoRowImage()))

	img, err := DecodeImage(bytes.NewReader(buf.Bytes()), "rows.png", false)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Len(t, img.Pixels, 16)
	assert.Equal(t, []byte{255, 0, 0, 255}, img.Pixels[0:4])

	flipped, err := DecodeImage(bytes.NewReader(buf.Bytes()), "rows.png", true)
	require.NoError(t, err)
	assert.True(t, flipped.FlippedV)
	assert.Equal(t, []byte{0, 0, 255, 255}, flipped.Pixels[0:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, flipped.Pixels[8:12])
}

func TestLoadImageBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.bmp")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, twoRowImage()))
	require.NoError(t, f.Close())

	img, err := LoadImage(path, true)
	require.NoError(t, err)
	assert.Equal(t, path, img.Path)
	assert.Equal(t, []byte{0, 0, 255, 255}, img.Pixels[0:4])
}

func TestLoadImageErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.png")
	_, err := LoadImage(missing, true)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), missing)

	_, err = DecodeImage(strings.NewReader("garbage"), "bad.png", true)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "bad.png", derr.Path)
	assert.ErrorIs(t, err, image.ErrFormat)
}
