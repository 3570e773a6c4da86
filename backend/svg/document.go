package svg

import (
	"image"

	"github.com/npillmayer/glyphscan/core/contour"
)

// Document is an immutable set of glyph outlines on a canvas.
type Document struct {
	width, height int
	polygons      []contour.Polygon
}

// NewDocument creates a document of size w×h holding copies of polygons, in
// the given order.
func NewDocument(w, h int, polygons []contour.Polygon) *Document {
	d := &Document{width: max(w, 0), height: max(h, 0)}
	d.polygons = make([]contour.Polygon, len(polygons))
	for i, p := range polygons {
		d.polygons[i] = contour.Polygon{
			Points: append([]image.Point(nil), p.Points...),
			Hole:   p.Hole,
		}
	}
	return d
}

// Width is the canvas width.
func (d *Document) Width() int { return d.width }

// Height is the canvas height.
func (d *Document) Height() int { return d.height }

// Len is the number of polygons.
func (d *Document) Len() int { return len(d.polygons) }

// Polygon returns the i-th polygon. Its vertices must not be modified.
func (d *Document) Polygon(i int) contour.Polygon { return d.polygons[i] }

// Holes counts the hole polygons.
func (d *Document) Holes() int {
	n := 0
	for _, p := range d.polygons {
		if p.Hole {
			n++
		}
	}
	return n
}
