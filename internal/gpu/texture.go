package gpu

import (
	"fmt"

	"glviewer/scene"
)

// Texture is a 2D RGBA8 image uploaded once at construction.
type Texture struct {
	dev    Device
	id     uint32
	path   string
	width  int
	height int
	bpp    int
}

// LoadTexture decodes the image at path, flipped so that row 0 is the
// bottom row as the graphics API expects, and uploads it.
func LoadTexture(dev Device, path string) (*Texture, error) {
	img, err := scene.LoadImage(path, true)
	if err != nil {
		return nil, err
	}
	return NewTexture(dev, img)
}

// NewTexture uploads already decoded pixels.
func NewTexture(dev Device, img *scene.Image) (*Texture, error) {
	if img.Width <= 0 || img.Height <= 0 || len(img.Pixels) < img.Width*img.Height*4 {
		return nil, fmt.Errorf("texture %q: invalid image %dx%d with %d bytes", img.Path, img.Width, img.Height, len(img.Pixels))
	}
	id := dev.GenTexture()
	if id == 0 {
		return nil, fmt.Errorf("texture %q: %w", img.Path, ErrResourceCreation)
	}

	dev.BindTexture(0, id)
	dev.TexImage2D(int32(img.Width), int32(img.Height), img.Pixels)
	dev.BindTexture(0, 0)

	return &Texture{
		dev:    dev,
		id:     id,
		path:   img.Path,
		width:  img.Width,
		height: img.Height,
		bpp:    32,
	}, nil
}

// Bind activates texture unit and binds the image to it.
func (t *Texture) Bind(unit uint32) {
	if t.id == 0 {
		panic(fmt.Sprintf("gpu: bind of destroyed texture %q", t.path))
	}
	t.dev.BindTexture(unit, t.id)
}

func (t *Texture) Unbind(unit uint32) {
	t.dev.BindTexture(unit, 0)
}

func (t *Texture) ID() uint32    { return t.id }
func (t *Texture) Path() string  { return t.path }
func (t *Texture) Width() int    { return t.width }
func (t *Texture) Height() int   { return t.height }
func (t *Texture) BitDepth() int { return t.bpp }

func (t *Texture) Destroy() {
	if t == nil || t.id == 0 {
		return
	}
	t.dev.DeleteTexture(t.id)
	t.id = 0
}
