package contour

import (
	"image"
	"math"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/glyphscan/core"
)

// Polygon is a closed, simplified outline with at least 3 vertices.
type Polygon struct {
	Points []image.Point
	Hole   bool
}

// NewPolygon creates a polygon from a vertex list. Fewer than 3 vertices do
// not enclose an area and are rejected with core.EDEGENERATE.
func NewPolygon(pts []image.Point, hole bool) (Polygon, error) {
	if len(pts) < 3 {
		return Polygon{}, core.Error(core.EDEGENERATE, "polygon with %d vertices is degenerate", len(pts))
	}
	p := Polygon{Points: make([]image.Point, len(pts)), Hole: hole}
	copy(p.Points, pts)
	return p, nil
}

// Bounds returns the bounding rectangle of the polygon's vertices.
func (p Polygon) Bounds() image.Rectangle {
	if len(p.Points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: p.Points[0], Max: p.Points[0]}
	for _, pt := range p.Points[1:] {
		r.Min.X, r.Max.X = min(r.Min.X, pt.X), max(r.Max.X, pt.X)
		r.Min.Y, r.Max.Y = min(r.Min.Y, pt.Y), max(r.Max.Y, pt.Y)
	}
	return r
}

// Approximate simplifies the contour to a polygon. Points farther than
// ratio × perimeter from the simplified outline are kept. If fewer than 3
// vertices remain, Approximate returns false.
func (c *Contour) Approximate(ratio float64) (Polygon, bool) {
	eps := ratio * c.Perimeter()
	pts := approximateClosed(c.Points, eps)
	poly, err := NewPolygon(pts, c.Hole)
	if err != nil {
		tracer().Debugf("dropping contour at %v: %v", c.box, err)
		return Polygon{}, false
	}
	return poly, true
}

type slice struct{ start, end int }

// approximateClosed runs Douglas–Peucker on a closed polyline. The polyline
// is first split at two approximately farthest points, found by three rounds
// of searching the point farthest from the current start.
func approximateClosed(src []image.Point, eps float64) []image.Point {
	n := len(src)
	if n < 3 {
		return src
	}
	pairs := make([]arithm.Pair, n)
	for i, p := range src {
		pairs[i] = arithm.P(float64(p.X), float64(p.Y))
	}
	eps2 := eps * eps
	start, far := 0, 0
	small := false
	for round := 0; round < 3; round++ {
		start = (start + far) % n
		far = 0
		maxd := 0.0
		for j := 1; j < n; j++ {
			if d := dist2(pairs[(start+j)%n], pairs[start]); d > maxd {
				maxd, far = d, j
			}
		}
		small = maxd <= eps2
	}
	if small {
		return []image.Point{src[start]}
	}
	split := (start + far) % n
	stack := []slice{{split, start}, {start, split}}
	var out []int
	for len(stack) > 0 {
		sl := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a, b := pairs[sl.start], pairs[sl.end]
		maxd, at := 0.0, -1
		for i := (sl.start + 1) % n; i != sl.end; i = (i + 1) % n {
			if d := lineDist(pairs[i], a, b); d > maxd {
				maxd, at = d, i
			}
		}
		if at < 0 || maxd <= eps {
			out = append(out, sl.start)
			continue
		}
		stack = append(stack, slice{at, sl.end}, slice{sl.start, at})
	}
	return straighten(src, pairs, out, eps2)
}

// straighten removes vertices lying on an almost straight, forward-running
// line between their neighbours.
func straighten(src []image.Point, pairs []arithm.Pair, idx []int, eps2 float64) []image.Point {
	keep := make([]bool, len(idx))
	for i := range keep {
		keep[i] = true
	}
	count := len(idx)
	for i := 0; i < len(idx) && count > 3; i++ {
		prev := (i + len(idx) - 1) % len(idx)
		for !keep[prev] {
			prev = (prev + len(idx) - 1) % len(idx)
		}
		next := (i + 1) % len(idx)
		for !keep[next] {
			next = (next + 1) % len(idx)
		}
		a, p, b := pairs[idx[prev]], pairs[idx[i]], pairs[idx[next]]
		d := sub(b, a)
		if real(d) == 0 || imag(d) == 0 {
			continue
		}
		cr := cross(sub(p, a), d)
		if cr*cr <= 0.5*eps2*dot(d, d) && dot(sub(p, a), sub(b, p)) >= 0 {
			keep[i] = false
			count--
		}
	}
	out := make([]image.Point, 0, count)
	for i, k := range keep {
		if k {
			out = append(out, src[idx[i]])
		}
	}
	return out
}

func sub(a, b arithm.Pair) complex128 {
	return complex128(a) - complex128(b)
}

func dot(a, b complex128) float64 {
	return real(a)*real(b) + imag(a)*imag(b)
}

func cross(a, b complex128) float64 {
	return real(a)*imag(b) - imag(a)*real(b)
}

func dist2(a, b arithm.Pair) float64 {
	d := sub(a, b)
	return dot(d, d)
}

// lineDist is the distance of p from the line through a and b, or from a if
// both coincide.
func lineDist(p, a, b arithm.Pair) float64 {
	d := sub(b, a)
	l := math.Sqrt(dot(d, d))
	if l == 0 {
		return math.Sqrt(dist2(p, a))
	}
	return math.Abs(cross(sub(p, a), d)) / l
}
