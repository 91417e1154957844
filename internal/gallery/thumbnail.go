package gallery

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"mapgallery/internal/errors"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Thumbnail decodes the image at path and scales it into a size x size
// square. The aspect ratio is kept; unused space stays transparent.
func Thumbnail(path string, size int) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileError("cannot open image", path, errors.FileNotFound, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.NewFileError("cannot decode image", path, errors.ImageDecodeFailed, err)
	}
	return Scale(src, size), nil
}

// Scale letterboxes src into a size x size image.
func Scale(src image.Image, size int) *image.NRGBA {
	if size < 1 {
		size = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	b := src.Bounds()
	if b.Empty() {
		return dst
	}

	w, h := size, size
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*size/b.Dx())
	} else if b.Dy() > b.Dx() {
		w = max(1, b.Dx()*size/b.Dy())
	}
	x0 := (size - w) / 2
	y0 := (size - h) / 2

	draw.ApproxBiLinear.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), src, b, draw.Over, nil)
	return dst
}
