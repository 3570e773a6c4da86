/*
Package contour extracts the borders of connected foreground regions from a
binary mask and simplifies them to polygons.

Borders are traced with the border following algorithm of Suzuki and Abe
(“Topological Structural Analysis of Digitized Binary Images by Border
Following”, 1985), using 8-connectivity for foreground regions. Each border is
reported as a polyline with collinear points removed. Depending on the
retrieval mode, the nesting of outer borders and hole borders is kept as a
tree, flattened to two levels, or reduced to the outermost borders only.

Polylines are approximated by a closed variant of the Douglas–Peucker
algorithm, with the tolerance given relative to the perimeter of a contour.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package contour

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphscan.contour'
func tracer() tracing.Trace {
	return tracing.Select("glyphscan.contour")
}
