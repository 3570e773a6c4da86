package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/glyphscan/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// page creates a white w×h image with black rectangles.
func page(w, h int, ink ...image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for _, r := range ink {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

func TestFixedBinarize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.raster")
	defer teardown()
	//
	img := page(10, 8, image.Rect(2, 1, 5, 4))
	img.Set(8, 6, color.Gray{Y: 100})
	img.Set(9, 6, color.Gray{Y: 200})
	m, err := FixedBinarizer(DefaultThreshold).Binarize(img)
	require.NoError(t, err)
	assert.Equal(t, 10, m.W)
	assert.Equal(t, 8, m.H)
	assert.Equal(t, 9+1, m.Count())
	assert.True(t, m.At(2, 1))
	assert.True(t, m.At(4, 3))
	assert.False(t, m.At(5, 3))
	assert.True(t, m.At(8, 6), "dark gray is ink")
	assert.False(t, m.At(9, 6), "light gray is background")
}

func TestAdaptiveBinarize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.raster")
	defer teardown()
	//
	img := page(40, 40, image.Rect(10, 10, 30, 30))
	m, err := AdaptiveBinarizer(3, 0.8).Binarize(img)
	require.NoError(t, err)
	assert.True(t, m.At(20, 20))
	assert.False(t, m.At(2, 2))
	assert.False(t, m.At(37, 37))
	r := m.Rect()
	assert.InDelta(t, 10, r.Min.X, 1)
	assert.InDelta(t, 30, r.Max.X, 1)
}

func TestAdaptiveBinarizeTwoLevel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.raster")
	defer teardown()
	//
	img := page(20, 20, image.Rect(5, 5, 15, 15))
	m, err := AdaptiveBinarizer(1, 0).Binarize(img)
	require.NoError(t, err)
	assert.Equal(t, 100, m.Count(), "black pixels at the Otsu threshold are ink")
	assert.Equal(t, image.Rect(5, 5, 15, 15), m.Rect())
	//
	m, err = AdaptiveBinarizer(1, 0).Binarize(page(8, 8))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Count(), "blank glyph")
}

func TestOtsu(t *testing.T) {
	var hist [256]uint64
	hist[20], hist[30], hist[200], hist[220] = 10, 10, 10, 10
	assert.Equal(t, uint8(30), otsu(hist))
	var flat [256]uint64
	flat[255] = 64
	assert.Equal(t, uint8(0), otsu(flat))
}

func TestBinarizeSubImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.raster")
	defer teardown()
	//
	full := page(40, 30, image.Rect(25, 15, 30, 25))
	sub := full.SubImage(image.Rect(20, 10, 40, 30))
	for _, b := range []Binarizer{FixedBinarizer(DefaultThreshold), AdaptiveBinarizer(1, 0)} {
		m, err := b.Binarize(sub)
		require.NoError(t, err)
		assert.Equal(t, 20, m.W, b.Mode.String())
		assert.Equal(t, 20, m.H, b.Mode.String())
		assert.Equal(t, image.Rect(5, 5, 10, 15), m.Rect(), "%s mask is relative to the image corner", b.Mode)
	}
}

func TestBinarizeInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.raster")
	defer teardown()
	//
	_, err := FixedBinarizer(150).Binarize(nil)
	assert.True(t, core.Is(err, core.EINVALIDIMAGE))
	_, err = FixedBinarizer(150).Binarize(image.NewGray(image.Rect(0, 0, 0, 5)))
	assert.True(t, core.Is(err, core.EINVALIDIMAGE))
}

func TestDecode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.raster")
	defer teardown()
	//
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, page(7, 5)))
	img, err := Decode(&buf, "page.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 7, 5), img.Bounds())
	//
	_, err = Decode(bytes.NewReader([]byte("no image here")), "junk.png")
	assert.True(t, core.Is(err, core.EINVALIDIMAGE))
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.raster")
	defer teardown()
	//
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.png"))
	assert.True(t, core.Is(err, core.EMISSING))
	//
	path := filepath.Join(dir, "p.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, page(3, 3)))
	require.NoError(t, f.Close())
	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
}

func TestIsRasterFile(t *testing.T) {
	assert.True(t, IsRasterFile("a.PNG"))
	assert.True(t, IsRasterFile("dir/b.tiff"))
	assert.False(t, IsRasterFile("c.svg"))
	assert.False(t, IsRasterFile("noext"))
}

func TestMaskRect(t *testing.T) {
	m := MaskFromRows(
		".....",
		"..#..",
		".##..",
		".....",
	)
	assert.Equal(t, image.Rect(1, 1, 3, 3), m.Rect())
	assert.Equal(t, 3, m.Count())
	assert.True(t, NewMask(4, 4).Rect().Empty())
	g := m.Gray()
	assert.Equal(t, uint8(0xff), g.GrayAt(2, 1).Y)
	assert.Equal(t, uint8(0), g.GrayAt(0, 0).Y)
}
