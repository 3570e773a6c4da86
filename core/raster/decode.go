package raster

import (
	"bufio"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/glyphscan/core"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
)

// Extensions lists the file extensions of raster encodings accepted as input.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}

// IsRasterFile reports whether name carries one of the accepted raster
// extensions (case-insensitive).
func IsRasterFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Decode decodes a raster image from r. Undecodable input and images with
// zero area are reported as core.EINVALIDIMAGE.
func Decode(r io.Reader, name string) (image.Image, error) {
	img, format, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALIDIMAGE, "cannot decode image %s", name)
	}
	if err := CheckImage(img); err != nil {
		return nil, core.WrapError(err, core.EINVALIDIMAGE, "image %s has zero area", name)
	}
	tracer().Debugf("decoded %s image %s, %d×%d", format, name, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

// Load opens and decodes the raster image at path. The file is closed before
// Load returns.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.WrapError(err, core.EMISSING, "image %s not found", path)
		}
		return nil, core.WrapError(err, core.EINVALIDIMAGE, "cannot open image %s", path)
	}
	defer f.Close()
	return Decode(f, filepath.Base(path))
}

// CheckImage returns an EINVALIDIMAGE error if img is nil or has zero area.
func CheckImage(img image.Image) error {
	if img == nil {
		return core.Error(core.EINVALIDIMAGE, "image is nil")
	}
	if img.Bounds().Empty() {
		return core.Error(core.EINVALIDIMAGE, "image has zero area")
	}
	return nil
}
