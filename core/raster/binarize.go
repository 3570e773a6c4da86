package raster

import (
	"image"

	"github.com/ernyoke/imger/blur"
	"github.com/ernyoke/imger/grayscale"
	"github.com/ernyoke/imger/histogram"
	"github.com/ernyoke/imger/padding"
	"github.com/npillmayer/glyphscan/core"
)

// Mode selects the thresholding rule of a Binarizer.
type Mode int

// Binarization modes.
const (
	Fixed    Mode = iota // foreground iff luma < Threshold
	Adaptive             // Gaussian smoothing, then foreground iff luma <= Otsu's threshold
)

func (m Mode) String() string {
	switch m {
	case Fixed:
		return "fixed"
	case Adaptive:
		return "adaptive"
	}
	return "<unknown mode>"
}

// DefaultThreshold is the luma threshold for fixed binarization of scanned
// pages.
const DefaultThreshold uint8 = 150

// Binarizer converts raster images to masks. Dark ink on a light background
// becomes foreground in both modes.
type Binarizer struct {
	Mode      Mode
	Threshold uint8   // Fixed only
	BlurSize  int     // Adaptive only: odd kernel size, ≤1 disables smoothing
	Sigma     float64 // Adaptive only: Gaussian sigma
}

// FixedBinarizer returns a binarizer with a fixed luma threshold.
func FixedBinarizer(t uint8) Binarizer {
	return Binarizer{Mode: Fixed, Threshold: t}
}

// AdaptiveBinarizer returns a binarizer smoothing with a size×size Gaussian
// kernel, then thresholding with Otsu's method.
func AdaptiveBinarizer(size int, sigma float64) Binarizer {
	return Binarizer{Mode: Adaptive, BlurSize: size, Sigma: sigma}
}

// Binarize converts img to a mask of the same dimensions. Mask coordinates
// are relative to the top-left corner of img.
// It fails with core.EINVALIDIMAGE if img is nil or has zero area.
func (b Binarizer) Binarize(img image.Image) (*Mask, error) {
	if err := CheckImage(img); err != nil {
		return nil, err
	}
	if img.Bounds().Min != (image.Point{}) {
		img = Crop(img, img.Bounds()) // imger expects origin (0,0)
	}
	gray := grayscale.Grayscale(img)
	switch b.Mode {
	case Fixed:
		t := b.Threshold
		tracer().Debugf("binarizing %v with fixed threshold %d", img.Bounds().Size(), t)
		return fromGray(gray, func(v uint8) bool { return v < t }), nil
	case Adaptive:
		return b.adaptive(gray)
	}
	return nil, core.Error(core.EINVALID, "unknown binarization mode %d", b.Mode)
}

func (b Binarizer) adaptive(gray *image.Gray) (*Mask, error) {
	var err error
	if b.BlurSize > 1 {
		sigma := b.Sigma
		if sigma <= 0 {
			sigma = 0.3*(float64(b.BlurSize-1)*0.5-1) + 0.8
		}
		radius := float64(b.BlurSize / 2)
		if gray, err = blur.GaussianBlurGray(gray, radius, sigma, padding.BorderReflect); err != nil {
			return nil, core.WrapError(err, core.EINTERNAL, "smoothing failed")
		}
	}
	t := otsu(histogram.HistogramGray(gray))
	m := fromGray(gray, func(v uint8) bool { return v <= t })
	tracer().Debugf("adaptive binarization at %d: %d of %d pixels foreground", t, m.Count(), len(m.Pix))
	return m, nil
}

// otsu returns the last gray value of the darker class of Otsu's split of
// hist, or 0 if hist has a single occupied bin.
func otsu(hist [256]uint64) uint8 {
	var total, sum float64
	for v, n := range hist {
		total += float64(n)
		sum += float64(v) * float64(n)
	}
	var wDark, sumDark, best float64
	t := 0
	for v, n := range hist {
		wDark += float64(n)
		if wDark == 0 {
			continue
		}
		wLight := total - wDark
		if wLight == 0 {
			break
		}
		sumDark += float64(v) * float64(n)
		d := sumDark/wDark - (sum-sumDark)/wLight
		if variance := wDark * wLight * d * d; variance > best {
			best, t = variance, v
		}
	}
	return uint8(t)
}
