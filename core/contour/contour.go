package contour

import (
	"image"
	"math"
)

// Contour is the border of a connected foreground region, or of a hole
// inside one, as a closed polyline. Consecutive points differ in chain
// direction; points on straight runs are omitted.
type Contour struct {
	Points   []image.Point
	Hole     bool  // border of a background region enclosed by foreground
	Parent   int   // index of the enclosing contour within its set, or -1
	Children []int // indices of directly enclosed contours
	box      Box
}

// Box returns the bounding box of the contour.
func (c *Contour) Box() Box {
	return c.box
}

// Area returns the area enclosed by the polyline (shoelace formula). A
// contour of a single pixel or a thin line has area 0.
func (c *Contour) Area() float64 {
	n := len(c.Points)
	if n < 3 {
		return 0
	}
	var a int
	prev := c.Points[n-1]
	for _, p := range c.Points {
		a += prev.X*p.Y - p.X*prev.Y
		prev = p
	}
	return math.Abs(float64(a)) / 2
}

// Perimeter returns the length of the closed polyline.
func (c *Contour) Perimeter() float64 {
	n := len(c.Points)
	if n < 2 {
		return 0
	}
	var l float64
	prev := c.Points[n-1]
	for _, p := range c.Points {
		l += math.Hypot(float64(p.X-prev.X), float64(p.Y-prev.Y))
		prev = p
	}
	return l
}

func (c *Contour) computeBox() {
	if len(c.Points) == 0 {
		return
	}
	minx, miny := c.Points[0].X, c.Points[0].Y
	maxx, maxy := minx, miny
	for _, p := range c.Points[1:] {
		minx, maxx = min(minx, p.X), max(maxx, p.X)
		miny, maxy = min(miny, p.Y), max(maxy, p.Y)
	}
	c.box = Box{X: minx, Y: miny, W: maxx - minx + 1, H: maxy - miny + 1}
}

// Set is the result of contour extraction on one mask. Contours appear in
// discovery order, i.e. in raster-scan order of their first border pixel.
type Set struct {
	Contours []*Contour
	Mode     Retrieval
}

// Len returns the number of contours in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Contours)
}

// Boxes returns the bounding boxes of all contours, in discovery order.
func (s *Set) Boxes() []Box {
	if s == nil {
		return nil
	}
	boxes := make([]Box, len(s.Contours))
	for i, c := range s.Contours {
		boxes[i] = c.box
	}
	return boxes
}

// Roots returns the indices of all contours without a parent.
func (s *Set) Roots() []int {
	var roots []int
	for i, c := range s.Contours {
		if c.Parent < 0 {
			roots = append(roots, i)
		}
	}
	return roots
}
