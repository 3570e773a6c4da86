package contour

import (
	"image"

	"github.com/npillmayer/glyphscan/core/raster"
)

// Retrieval selects which borders are reported and how they are related.
type Retrieval int

// Retrieval modes.
const (
	External Retrieval = iota // outermost outer borders only
	TwoLevel                  // outer borders at top level, holes as their children
	Tree                      // full nesting hierarchy
)

func (r Retrieval) String() string {
	switch r {
	case External:
		return "external"
	case TwoLevel:
		return "two-level"
	case Tree:
		return "tree"
	}
	return "<unknown retrieval>"
}

// Chain codes, counter-clockwise on screen (y grows downwards):
// 0=E 1=NE 2=N 3=NW 4=W 5=SW 6=S 7=SE.
var chainDelta = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

// border is the bookkeeping record for one border, indexed by its sequential
// border number. Border number 1 is the frame of the image.
type border struct {
	hole    bool
	parent  int // border number
	contour *Contour
}

// labels is the working grid of the border following algorithm: the mask
// padded by one background pixel on every side, with 0 for background, 1 for
// unvisited foreground and ±n for pixels on border n.
type labels struct {
	f      []int32
	stride int
	offset [8]int
}

func newLabels(m *raster.Mask) *labels {
	w, h := m.W+2, m.H+2
	l := &labels{f: make([]int32, w*h), stride: w}
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.Pix[y*m.W+x] {
				l.f[(y+1)*w+x+1] = 1
			}
		}
	}
	for i, d := range chainDelta {
		l.offset[i] = d.Y*w + d.X
	}
	return l
}

// point converts a grid position into mask coordinates.
func (l *labels) point(p int) image.Point {
	return image.Pt(p%l.stride-1, p/l.stride-1)
}

// Find extracts the contours of all 8-connected foreground regions of m and,
// depending on mode, of the holes within them.
func Find(m *raster.Mask, mode Retrieval) *Set {
	set := &Set{Mode: mode}
	if m == nil || m.W == 0 || m.H == 0 {
		return set
	}
	l := newLabels(m)
	borders := []border{{}, {hole: true, parent: 0}} // [0] unused, [1] frame
	nbd := int32(1)
	w := l.stride
	for y := 1; y <= m.H; y++ {
		lnbd := int32(1)
		for x := 1; x <= m.W; x++ {
			p := y*w + x
			fp := l.f[p]
			if fp == 0 {
				continue
			}
			var hole bool
			var from int
			switch {
			case fp == 1 && l.f[p-1] == 0:
				from = 4
			case fp >= 1 && l.f[p+1] == 0:
				hole, from = true, 0
				if fp > 1 {
					lnbd = fp
				}
			default:
				if fp != 1 {
					lnbd = abs32(fp)
				}
				continue
			}
			nbd++
			prev := borders[lnbd]
			b := border{hole: hole}
			if hole == prev.hole {
				b.parent = prev.parent
			} else {
				b.parent = int(lnbd)
			}
			b.contour = &Contour{Hole: hole, Points: l.follow(p, from, nbd)}
			borders = append(borders, b)
			if fp = l.f[p]; fp != 1 {
				lnbd = abs32(fp)
			}
		}
	}
	collect(set, borders, mode)
	tracer().Debugf("found %d contours (%s) in %d×%d mask", len(set.Contours), mode, m.W, m.H)
	return set
}

// follow traces the border starting at grid position p0, entered from
// direction from, labels its pixels with nbd and returns its points with
// collinear runs compressed.
func (l *labels) follow(p0 int, from int, nbd int32) []image.Point {
	f := l.f
	s := from
	found := false
	for k := 0; k < 8; k++ { // clockwise search for the first neighbour
		s = (s + 7) & 7
		if f[p0+l.offset[s]] != 0 {
			found = true
			break
		}
	}
	if !found {
		f[p0] = -nbd
		return []image.Point{l.point(p0)}
	}
	var points []image.Point
	p1 := p0 + l.offset[s]
	p3 := p0
	prevDir := s ^ 4
	for {
		start := s // direction towards the previous border point
		var p4 int
		eastZero := false
		for k := 1; k <= 8; k++ { // counter-clockwise search
			s = (start + k) & 7
			p4 = p3 + l.offset[s]
			if f[p4] != 0 {
				break
			}
			if s == 0 {
				eastZero = true
			}
		}
		if eastZero {
			f[p3] = -nbd
		} else if f[p3] == 1 {
			f[p3] = nbd
		}
		if s != prevDir {
			points = append(points, l.point(p3))
			prevDir = s
		}
		if p4 == p0 && p3 == p1 {
			break
		}
		p3 = p4
		s = (s + 4) & 7
	}
	return points
}

// collect filters and relinks the traced borders according to mode.
func collect(set *Set, borders []border, mode Retrieval) {
	index := make([]int, len(borders))
	for i := range index {
		index[i] = -1
	}
	for n := 2; n < len(borders); n++ {
		b := borders[n]
		if mode == External && (b.hole || b.parent != 1) {
			continue
		}
		index[n] = len(set.Contours)
		set.Contours = append(set.Contours, b.contour)
	}
	for n := 2; n < len(borders); n++ {
		i := index[n]
		if i < 0 {
			continue
		}
		c := borders[n].contour
		c.computeBox()
		c.Parent = -1
		switch mode {
		case Tree:
			c.Parent = index[borders[n].parent]
		case TwoLevel:
			if c.Hole {
				c.Parent = index[borders[n].parent]
			}
		}
		if c.Parent >= 0 {
			parent := set.Contours[c.Parent]
			parent.Children = append(parent.Children, i)
		}
	}
}

func abs32(n int32) int32 {
	if n < 0 {
		return -n
	}
	return n
}
