package raster

import (
	"fmt"
	"image"
)

// Mask is a binary foreground grid. Coordinates are relative to the top-left
// corner of the image the mask was derived from.
type Mask struct {
	W, H int
	Pix  []bool // row-major, W*H entries
}

// NewMask creates an empty mask of size w×h.
func NewMask(w, h int) *Mask {
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	return &Mask{W: w, H: h, Pix: make([]bool, w*h)}
}

// At reports whether (x,y) is foreground. Positions outside the mask are
// background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.Pix[y*m.W+x]
}

// Set sets the foreground state of (x,y). Positions outside the mask are
// ignored.
func (m *Mask) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.Pix[y*m.W+x] = on
}

// Fill sets all pixels of rectangle r (clipped to the mask) to foreground.
func (m *Mask) Fill(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, m.W, m.H))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Pix[y*m.W+x] = true
		}
	}
}

// Bounds returns the rectangle covered by the mask.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.W, m.H)
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, on := range m.Pix {
		if on {
			n++
		}
	}
	return n
}

// Rect returns the smallest rectangle containing all foreground pixels, or an
// empty rectangle for an empty mask.
func (m *Mask) Rect() image.Rectangle {
	minX, maxX := m.W, -1
	minY, maxY := m.H, -1
	for y := 0; y < m.H; y++ {
		row := m.Pix[y*m.W : (y+1)*m.W]
		active := false
		for x, on := range row {
			if on {
				active = true
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
			}
		}
		if active {
			if y < minY {
				minY = y
			}
			maxY = y
		}
	}
	if maxX < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Clone returns a deep copy of m.
func (m *Mask) Clone() *Mask {
	c := &Mask{W: m.W, H: m.H, Pix: make([]bool, len(m.Pix))}
	copy(c.Pix, m.Pix)
	return c
}

// Gray renders the mask as a grayscale image, foreground white.
func (m *Mask) Gray() *image.Gray {
	g := image.NewGray(m.Bounds())
	for i, on := range m.Pix {
		if on {
			g.Pix[(i/m.W)*g.Stride+i%m.W] = 0xff
		}
	}
	return g
}

// String renders small masks as rows of '#' and '.', for tracing.
func (m *Mask) String() string {
	if m.W*m.H > 64*64 {
		return fmt.Sprintf("Mask(%d×%d, %d set)", m.W, m.H, m.Count())
	}
	b := make([]byte, 0, (m.W+1)*m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.Pix[y*m.W+x] {
				b = append(b, '#')
			} else {
				b = append(b, '.')
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}

// fromGray creates a mask from a grayscale image, with a pixel becoming
// foreground if fg returns true for its value.
func fromGray(g *image.Gray, fg func(uint8) bool) *Mask {
	r := g.Bounds()
	m := NewMask(r.Dx(), r.Dy())
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			v := g.GrayAt(r.Min.X+x, r.Min.Y+y).Y
			m.Pix[y*m.W+x] = fg(v)
		}
	}
	return m
}

var _ fmt.Stringer = (*Mask)(nil)

// MaskFromRows builds a mask from rows of '#' (foreground) and any other
// byte (background). All rows must have equal length. Used in tests and for
// tracing fixtures.
func MaskFromRows(rows ...string) *Mask {
	if len(rows) == 0 {
		return NewMask(0, 0)
	}
	m := NewMask(len(rows[0]), len(rows))
	for y, row := range rows {
		for x := 0; x < len(row) && x < m.W; x++ {
			m.Pix[y*m.W+x] = row[x] == '#'
		}
	}
	return m
}
