package vectorize

import (
	"image"

	"github.com/npillmayer/glyphscan/backend/svg"
	"github.com/npillmayer/glyphscan/core/contour"
	"github.com/npillmayer/glyphscan/core/parameters"
	"github.com/npillmayer/glyphscan/core/raster"
)

// Tracer turns a glyph image into polygons.
type Tracer struct {
	Binarizer  raster.Binarizer
	Kernel     raster.Kernel // structuring element for closing
	Iterations int           // closing iterations; 0 disables closing
	Epsilon    float64       // approximation tolerance relative to a contour's perimeter
}

// NewTracer creates a tracer from parameters. A nil parameter set selects the
// defaults.
func NewTracer(p *parameters.Parameters) *Tracer {
	if p == nil {
		p = parameters.Defaults()
	}
	return &Tracer{
		Binarizer:  raster.AdaptiveBinarizer(p.Blur, p.Sigma),
		Kernel:     raster.Ellipse(p.Close, p.Close),
		Iterations: p.Iterations,
		Epsilon:    p.Epsilon,
	}
}

// Trace extracts the outlines of glyph and their holes, simplified to
// polygons, in discovery order. Contours too small to enclose an area are
// dropped.
func (t *Tracer) Trace(glyph image.Image) ([]contour.Polygon, error) {
	mask, err := t.Binarizer.Binarize(glyph)
	if err != nil {
		return nil, err
	}
	if t.Iterations > 0 {
		mask = raster.Close(mask, t.Kernel, t.Iterations)
	}
	set := contour.Find(mask, contour.TwoLevel)
	polygons := make([]contour.Polygon, 0, set.Len())
	for _, c := range set.Contours {
		if p, ok := c.Approximate(t.Epsilon); ok {
			polygons = append(polygons, p)
		}
	}
	tracer().Debugf("%d of %d contours approximated", len(polygons), set.Len())
	return polygons, nil
}

// Document traces glyph and wraps the polygons in a document of the glyph's
// size.
func (t *Tracer) Document(glyph image.Image) (*svg.Document, error) {
	polygons, err := t.Trace(glyph)
	if err != nil {
		return nil, err
	}
	b := glyph.Bounds()
	return svg.NewDocument(b.Dx(), b.Dy(), polygons), nil
}
