package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Crop copies rectangle r of img into a new image with origin (0,0). r is
// clipped to the bounds of img. Grayscale images stay grayscale, everything
// else is copied as RGBA.
func Crop(img image.Image, r image.Rectangle) image.Image {
	r = r.Intersect(img.Bounds())
	frame := image.Rect(0, 0, r.Dx(), r.Dy())
	var dst draw.Image
	switch img.(type) {
	case *image.Gray:
		dst = image.NewGray(frame)
	default:
		dst = image.NewRGBA(frame)
	}
	draw.Copy(dst, image.Point{}, img, r, draw.Src, nil)
	return dst
}
