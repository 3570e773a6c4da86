package raster

import (
	"image"
	"math"
)

// Kernel is a binary structuring element with its anchor at (W/2, H/2).
type Kernel struct {
	W, H int
	On   []bool // row-major, W*H entries
}

// Anchor returns the reference point of the kernel.
func (k Kernel) Anchor() image.Point {
	return image.Pt(k.W/2, k.H/2)
}

// Ellipse creates an elliptic structuring element of size w×h, inscribed into
// the kernel rectangle.
func Ellipse(w, h int) Kernel {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	k := Kernel{W: w, H: h, On: make([]bool, w*h)}
	r, c := h/2, w/2
	var inv2 float64
	if r > 0 {
		inv2 = 1.0 / float64(r*r)
	}
	for i := 0; i < h; i++ {
		j1, j2 := 0, 0
		dy := i - r
		if abs(dy) <= r {
			dx := int(math.Round(float64(c) * math.Sqrt(float64(r*r-dy*dy)*inv2)))
			j1 = max(c-dx, 0)
			j2 = min(c+dx+1, w)
		}
		for j := j1; j < j2; j++ {
			k.On[i*w+j] = true
		}
	}
	return k
}

// Dilate returns the dilation of m by k. Positions outside m count as
// background.
func Dilate(m *Mask, k Kernel) *Mask {
	return morph(m, k, false)
}

// Erode returns the erosion of m by k. Positions outside m count as
// foreground, so erosion does not eat into shapes touching the border.
func Erode(m *Mask, k Kernel) *Mask {
	return morph(m, k, true)
}

// Close performs n dilations followed by n erosions with kernel k. Gaps
// narrower than the kernel are bridged. For n < 1 a copy of m is returned.
func Close(m *Mask, k Kernel, n int) *Mask {
	r := m.Clone()
	for i := 0; i < n; i++ {
		r = Dilate(r, k)
	}
	for i := 0; i < n; i++ {
		r = Erode(r, k)
	}
	return r
}

func morph(m *Mask, k Kernel, erode bool) *Mask {
	a := k.Anchor()
	out := NewMask(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			hit := erode
			for ky := 0; ky < k.H && hit == erode; ky++ {
				for kx := 0; kx < k.W; kx++ {
					if !k.On[ky*k.W+kx] {
						continue
					}
					sx, sy := x+kx-a.X, y+ky-a.Y
					var v bool
					if sx < 0 || sy < 0 || sx >= m.W || sy >= m.H {
						v = erode
					} else {
						v = m.Pix[sy*m.W+sx]
					}
					if v != erode {
						hit = !erode
						break
					}
				}
			}
			out.Pix[y*m.W+x] = hit
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
