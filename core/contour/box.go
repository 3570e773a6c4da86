package contour

import (
	"fmt"
	"image"
)

// Box is an axis-aligned bounding box in pixel coordinates. W and H count
// pixels, i.e. a single pixel has a box of size 1×1.
type Box struct {
	X, Y, W, H int
}

// BoxFromRect converts an image rectangle to a box.
func BoxFromRect(r image.Rectangle) Box {
	r = r.Canon()
	return Box{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Top is the y-coordinate of the upper edge.
func (b Box) Top() int { return b.Y }

// Bottom is the y-coordinate just below the lower edge (Y+H).
func (b Box) Bottom() int { return b.Y + b.H }

// Left is the x-coordinate of the left edge.
func (b Box) Left() int { return b.X }

// Right is the x-coordinate just right of the right edge (X+W).
func (b Box) Right() int { return b.X + b.W }

// CenterX is the horizontal center of the box.
func (b Box) CenterX() float64 { return float64(b.X) + float64(b.W)/2 }

// Area is W×H.
func (b Box) Area() int { return b.W * b.H }

// Empty reports whether the box covers no pixel.
func (b Box) Empty() bool { return b.W <= 0 || b.H <= 0 }

// Union returns the smallest box containing b and o. An empty box does not
// contribute.
func (b Box) Union(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return BoxFromRect(b.Rect().Union(o.Rect()))
}

// Rect converts the box to an image rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

func (b Box) String() string {
	return fmt.Sprintf("[%d,%d %d×%d]", b.X, b.Y, b.W, b.H)
}
