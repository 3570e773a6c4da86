/*
Package segment cuts scanned pages of printed characters into single glyph
images.

A page is binarized with a fixed threshold, the outermost contours of the ink
are extracted, and their bounding boxes are grouped into characters. Grouping
is done by a single left-to-right merge pass: a small box lying directly above
or below a larger one, roughly centered on it, is taken to be a satellite
(the dot of an i or j, an accent) and united with it. Each resulting
component is cropped from the page with a little padding and stored as a
numbered glyph image.

Limitations

Each character absorbs at most one satellite; a character with two accents
keeps the second one as a separate component. A small, independent glyph
satisfying the merge rule (a period below a capital letter, say) is merged
without further verification.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package segment

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphscan.segment'
func tracer() tracing.Trace {
	return tracing.Select("glyphscan.segment")
}
