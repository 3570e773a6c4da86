package svg

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/npillmayer/glyphscan/core"
	"github.com/npillmayer/glyphscan/core/contour"
	"github.com/npillmayer/glyphscan/core/parameters"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 int, hole bool) contour.Polygon {
	return contour.Polygon{
		Points: []image.Point{{x0, y0}, {x0, y1}, {x1, y1}, {x1, y0}},
		Hole:   hole,
	}
}

func letterO() *Document {
	return NewDocument(20, 30, []contour.Polygon{
		square(1, 1, 18, 28, false),
		square(5, 5, 14, 24, true),
	})
}

func TestDocumentCopies(t *testing.T) {
	polys := []contour.Polygon{square(0, 0, 4, 4, false)}
	d := NewDocument(5, 5, polys)
	polys[0].Points[0] = image.Pt(9, 9)
	polys[0] = square(1, 1, 2, 2, true)
	assert.Equal(t, image.Pt(0, 0), d.Polygon(0).Points[0])
	assert.False(t, d.Polygon(0).Hole)
	assert.Equal(t, 1, d.Len())
}

func TestEmitPainter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.svg")
	defer teardown()
	//
	out, err := NewEmitter(nil).Bytes(letterO())
	require.NoError(t, err)
	s := string(out)
	t.Logf("\n%s", s)
	assert.Contains(t, s, `width="20"`)
	assert.Contains(t, s, `height="30"`)
	assert.Equal(t, 2, strings.Count(s, "<polygon"))
	outer := strings.Index(s, `points="1,1 1,28 18,28 18,1"`)
	hole := strings.Index(s, `points="5,5 5,24 14,24 14,5"`)
	require.True(t, outer > 0 && hole > 0)
	assert.Less(t, outer, hole, "outline order is kept")
	assert.Equal(t, 2, strings.Count(s, `style="fill:black;stroke:none"`), "holes are filled like outlines")
	assert.NotContains(t, s, "<path")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(s), "</svg>"))
}

func TestEmitFillRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.svg")
	defer teardown()
	//
	p := parameters.Defaults()
	p.FillRule = "evenodd"
	p.Fill = "#333"
	e := NewEmitter(p)
	assert.Equal(t, EvenOdd, e.FillRule)
	out, err := e.Bytes(letterO())
	require.NoError(t, err)
	s := string(out)
	assert.Equal(t, 1, strings.Count(s, "<path"))
	assert.NotContains(t, s, "<polygon")
	assert.Contains(t, s, `d="M1,1 L1,28 L18,28 L18,1 Z M5,5 L5,24 L14,24 L14,5 Z"`)
	assert.Contains(t, s, "fill:#333;stroke:none;fill-rule:evenodd")
}

func TestEmitEmpty(t *testing.T) {
	out, err := Emitter{}.Bytes(NewDocument(3, 4, nil))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<svg")
	assert.NotContains(t, string(out), "<polygon")
	out, err = Emitter{FillRule: NonZero}.Bytes(NewDocument(3, 4, nil))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<path")
}

func TestParseFillRule(t *testing.T) {
	r, err := ParseFillRule(" NonZero")
	assert.NoError(t, err)
	assert.Equal(t, NonZero, r)
	r, err = ParseFillRule("")
	assert.NoError(t, err)
	assert.Equal(t, "painter", r.String())
	_, err = ParseFillRule("winding")
	assert.True(t, core.Is(err, core.EINVALID))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEmitWriteError(t *testing.T) {
	err := Emitter{}.Emit(failingWriter{}, letterO())
	assert.True(t, core.Is(err, core.EINTERNAL))
}

func TestOutlineWalker(t *testing.T) {
	o := Outline(square(0, 0, 2, 3, false))
	assert.Equal(t, 4, o.N())
	start := o.Start()
	assert.Equal(t, 0.0, real(complex128(start)))
	n := 0
	for {
		if _, ok := o.ToNextKnot(); !ok {
			break
		}
		n++
	}
	assert.Equal(t, 3, n)
}
