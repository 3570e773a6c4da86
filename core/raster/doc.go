/*
Package raster converts raster images into binary foreground masks.

A page or glyph image is decoded from one of the supported raster encodings
(PNG, JPEG, BMP, TIFF) and binarized, either with a fixed luma threshold or
adaptively after Gaussian smoothing (Otsu's method). Dark ink on a light
background becomes foreground. The package also provides the small set of
binary morphology operations the vectorizer needs to clean up a glyph mask.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package raster

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphscan.raster'
func tracer() tracing.Trace {
	return tracing.Select("glyphscan.raster")
}
