package scene

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeError reports an image file that was readable but not decodable.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Image holds CPU-side pixel data in RGBA8 format (4 bytes per pixel,
// row-major).
type Image struct {
	Path   string
	Width  int
	Height int
	Pixels []byte
	// FlippedV is true when row 0 is the bottom row of the source image.
	FlippedV bool
}

// LoadImage reads a PNG, JPEG, GIF, BMP, TIFF or WebP file and converts it to
// RGBA8. With flipV set the rows are reversed so that the first row is the
// bottom of the picture, matching the texture origin of OpenGL.
func LoadImage(path string, flipV bool) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", path, err)
	}
	defer f.Close()

	return DecodeImage(f, path, flipV)
}

// DecodeImage is LoadImage for an already opened stream; name is used in
// errors and recorded as the image path.
func DecodeImage(r io.Reader, name string, flipV bool) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Path: name, Err: err}
	}

	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)

	if flipV {
		flipRows(rgba.Pix, rgba.Stride, b.Dy())
	}
	return &Image{
		Path:     name,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Pixels:   rgba.Pix,
		FlippedV: flipV,
	}, nil
}

func flipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		z := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, z)
		copy(z, tmp)
	}
}
