package segment

import (
	"image"

	"github.com/npillmayer/glyphscan/core/raster"
)

// Glyph is a single character image cut from a page.
type Glyph struct {
	Index  int             // index of the component the glyph was cut for
	Bounds image.Rectangle // region of the page the glyph was copied from
	Image  image.Image     // own pixel copy, origin at (0,0)
}

// Cropper cuts components out of a page image.
type Cropper struct {
	Padding int // added on every side of a component's box, then clamped
}

// Crop copies one glyph image per component from page, in component order.
// Component boxes are given relative to the top-left corner of page.
func (c Cropper) Crop(page image.Image, comps []Component) []Glyph {
	glyphs := make([]Glyph, 0, len(comps))
	origin := page.Bounds().Min
	for _, comp := range comps {
		r := comp.Box.Rect().Inset(-c.Padding).Add(origin)
		r = r.Intersect(page.Bounds())
		if r.Empty() {
			tracer().Errorf("component #%d at %v lies outside of page", comp.Index, comp.Box)
			continue
		}
		glyphs = append(glyphs, Glyph{
			Index:  comp.Index,
			Bounds: r,
			Image:  raster.Crop(page, r),
		})
	}
	return glyphs
}
