/*
Package vectorize converts curated glyph images into polygon outlines.

A glyph image is smoothed and binarized with Otsu's method, small gaps in the
ink are closed morphologically, and the borders of the ink and of its holes
are extracted and simplified to polygons. The polygons of a glyph are written
as an SVG document.

Vectorizing a directory treats every glyph independently: a glyph which
cannot be decoded is reported and skipped, the others are written. Glyphs may
be processed concurrently by a configurable number of workers.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package vectorize

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphscan.vectorize'
func tracer() tracing.Trace {
	return tracing.Select("glyphscan.vectorize")
}
