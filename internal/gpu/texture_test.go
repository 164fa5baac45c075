package gpu_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glviewer/internal/gpu"
	"glviewer/internal/gpu/gputest"
	"glviewer/scene"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLoadTextureUploads(t *testing.T) {
	dev := gputest.NewDevice()
	path := writePNG(t, 4, 2)

	tex, err := gpu.LoadTexture(dev, path)
	require.NoError(t, err)

	assert.Equal(t, 4, tex.Width())
	assert.Equal(t, 2, tex.Height())
	assert.Equal(t, 32, tex.BitDepth())
	assert.Equal(t, path, tex.Path())

	uploads := dev.Find("TexImage2D")
	require.Len(t, uploads, 1)
	assert.Equal(t, []any{int32(4), int32(2), 4 * 2 * 4}, uploads[0].Args)
	// the upload leaves unit 0 unbound
	assert.Zero(t, dev.Units[0])
}

func TestLoadTextureMissingFile(t *testing.T) {
	dev := gputest.NewDevice()

	_, err := gpu.LoadTexture(dev, filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, dev.Count("GenTexture"))
}

func TestLoadTextureUndecodable(t *testing.T) {
	dev := gputest.NewDevice()
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := gpu.LoadTexture(dev, path)
	var derr *scene.DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, path, derr.Path)
}

func TestNewTextureRejectsShortPixels(t *testing.T) {
	dev := gputest.NewDevice()

	_, err := gpu.NewTexture(dev, &scene.Image{Width: 2, Height: 2, Pixels: make([]byte, 4)})
	assert.Error(t, err)
	assert.Zero(t, dev.Count("GenTexture"))
}

func TestTextureBindUnits(t *testing.T) {
	dev := gputest.NewDevice()
	a, err := gpu.NewTexture(dev, &scene.Image{Width: 1, Height: 1, Pixels: []byte{1, 2, 3, 4}})
	require.NoError(t, err)
	b, err := gpu.NewTexture(dev, &scene.Image{Width: 1, Height: 1, Pixels: []byte{5, 6, 7, 8}})
	require.NoError(t, err)

	a.Bind(0)
	b.Bind(1)
	assert.Equal(t, a.ID(), dev.Units[0])
	assert.Equal(t, b.ID(), dev.Units[1])

	b.Unbind(1)
	assert.Zero(t, dev.Units[1])

	id := a.ID()
	a.Destroy()
	a.Destroy()
	assert.Equal(t, 1, dev.Deleted[id])
	assert.Panics(t, func() { a.Bind(0) })
}
