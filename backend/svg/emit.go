package svg

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo"
	"github.com/npillmayer/arithm"
	"github.com/npillmayer/glyphscan/core"
	"github.com/npillmayer/glyphscan/core/contour"
	"github.com/npillmayer/glyphscan/core/parameters"
)

// FillRule selects how outlines are combined.
type FillRule string

// Fill rules. Painter emits one polygon per outline.
const (
	Painter FillRule = ""
	EvenOdd FillRule = "evenodd"
	NonZero FillRule = "nonzero"
)

func (r FillRule) String() string {
	if r == Painter {
		return "painter"
	}
	return string(r)
}

// ParseFillRule checks a fill rule given in configuration.
func ParseFillRule(s string) (FillRule, error) {
	switch r := FillRule(strings.ToLower(strings.TrimSpace(s))); r {
	case Painter, EvenOdd, NonZero:
		return r, nil
	}
	return Painter, core.Error(core.EINVALID, "unknown fill rule %q", s)
}

// Emitter writes documents as SVG.
type Emitter struct {
	Fill     string // fill color, black if empty
	FillRule FillRule
}

// NewEmitter creates an emitter from parameters. Unknown fill rules fall
// back to the painter's algorithm.
func NewEmitter(p *parameters.Parameters) Emitter {
	if p == nil {
		p = parameters.Defaults()
	}
	rule, err := ParseFillRule(p.FillRule)
	if err != nil {
		tracer().Errorf("%v, using painter's algorithm", err)
	}
	return Emitter{Fill: p.Fill, FillRule: rule}
}

// Emit writes d to w.
func (e Emitter) Emit(w io.Writer, d *Document) error {
	ew := &errWriter{w: w}
	canvas := svgo.New(ew)
	canvas.Start(d.Width(), d.Height())
	fill := e.Fill
	if fill == "" {
		fill = "black"
	}
	style := "fill:" + fill + ";stroke:none"
	if e.FillRule == Painter {
		for _, p := range d.polygons {
			if len(p.Points) < 3 {
				continue
			}
			xs, ys := coords(p)
			canvas.Polygon(xs, ys, style)
		}
	} else if d.Len() > 0 {
		canvas.Path(PathData(d), style+";fill-rule:"+string(e.FillRule))
	}
	canvas.End()
	if ew.err != nil {
		return core.WrapError(ew.err, core.EINTERNAL, "cannot write SVG")
	}
	tracer().Debugf("emitted %d polygons (%d holes)", d.Len(), d.Holes())
	return nil
}

// Bytes returns the SVG text of d.
func (e Emitter) Bytes(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Emit(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func coords(p contour.Polygon) ([]int, []int) {
	xs, ys := make([]int, len(p.Points)), make([]int, len(p.Points))
	for i, pt := range p.Points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	return xs, ys
}

// PathData returns the outlines of d as SVG path data, one closed subpath
// per polygon.
func PathData(d *Document) string {
	var b strings.Builder
	for _, p := range d.polygons {
		o := Outline(p)
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("M" + pair(o.Start()))
		for {
			pt, ok := o.ToNextKnot()
			if !ok {
				break
			}
			b.WriteString(" L" + pair(pt))
		}
		b.WriteString(" Z")
	}
	return b.String()
}

func pair(p arithm.Pair) string {
	z := complex128(p)
	return strconv.FormatFloat(real(z), 'f', -1, 64) + "," + strconv.FormatFloat(imag(z), 'f', -1, 64)
}

// OutlineWalker iterates over the vertices of a closed outline.
type OutlineWalker interface {
	Start() arithm.Pair
	ToNextKnot() (arithm.Pair, bool)
	N() int
}

// Outline creates a walker over the vertices of p.
func Outline(p contour.Polygon) OutlineWalker {
	return &polywalker{p: p}
}

// internal type: walker over polygon vertices
type polywalker struct {
	p       contour.Polygon
	current int
}

func (pw *polywalker) N() int {
	return len(pw.p.Points)
}

func (pw *polywalker) Start() arithm.Pair {
	pw.current = 0
	if pw.N() == 0 {
		return arithm.Origin
	}
	return pw.at(0)
}

func (pw *polywalker) ToNextKnot() (arithm.Pair, bool) {
	if pw.current+1 >= pw.N() {
		return arithm.Origin, false
	}
	pw.current++
	return pw.at(pw.current), true
}

func (pw *polywalker) at(i int) arithm.Pair {
	pt := pw.p.Points[i]
	return arithm.P(float64(pt.X), float64(pt.Y))
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
