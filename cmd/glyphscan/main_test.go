package main

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/npillmayer/glyphscan/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRect(t *testing.T) {
	r, err := parseRect("0, 2,10,12")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 2, 10, 12), r)
	r, err = parseRect("10,12,0,2")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 2, 10, 12), r, "corners are canonicalized")
	for _, s := range []string{"1,2,3", "a,b,c,d", "3,3,3,9", ""} {
		_, err = parseRect(s)
		assert.True(t, core.Is(err, core.EINVALID), s)
	}
}

func TestParseCuration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.cli")
	defer teardown()
	//
	c, err := parseCuration("  ")
	require.NoError(t, err)
	assert.Equal(t, skipping, c.op)
	c, err = parseCuration("ä")
	require.NoError(t, err)
	assert.Equal(t, labeling, c.op)
	assert.Equal(t, "ä", c.chars)
	c, err = parseCuration(":")
	require.NoError(t, err)
	assert.Equal(t, labeling, c.op, "a lone colon is a label")
	c, err = parseCuration(":q")
	require.NoError(t, err)
	assert.Equal(t, quitting, c.op)
	c, err = parseCuration(":d")
	require.NoError(t, err)
	assert.Equal(t, discarding, c.op)
	c, err = parseCuration(":s fi 0,0,5,10 5,0,9,10")
	require.NoError(t, err)
	assert.Equal(t, splitting, c.op)
	assert.Equal(t, "fi", c.chars)
	assert.Equal(t, []image.Rectangle{image.Rect(0, 0, 5, 10), image.Rect(5, 0, 9, 10)}, c.rects)
	_, err = parseCuration(":s fi")
	assert.True(t, core.Is(err, core.EINVALID))
	_, err = parseCuration(":x")
	assert.True(t, core.Is(err, core.EINVALID))
}

func TestPreview(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for y := 50; y < 150; y++ {
		for x := 50; x < 150; x++ {
			img.SetGray(x, y, color.Gray{})
		}
	}
	s := preview(img, 150)
	rows := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	assert.Len(t, rows, previewRows)
	assert.Len(t, rows[0], previewCols)
	assert.NotContains(t, rows[0], "#")
	assert.Contains(t, rows[previewRows/2], "#")
}
