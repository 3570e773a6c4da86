package segment

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/npillmayer/glyphscan/core/contour"
	"github.com/npillmayer/glyphscan/core/parameters"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeRuleBoundary(t *testing.T) {
	main := contour.Box{X: 10, Y: 20, W: 20, H: 30}
	far := contour.Box{X: 15, Y: 0, W: 4, H: 4}
	near := contour.Box{X: 15, Y: 5, W: 4, H: 4}
	assert.False(t, DefaultMergeRule.Matches(main, far), "gap 16 is not below 15")
	assert.True(t, DefaultMergeRule.Matches(main, near), "gap 11 is below 15")
	assert.False(t, DefaultMergeRule.Matches(near, main), "satellite must be the smaller box")
	aside := contour.Box{X: 60, Y: 5, W: 4, H: 4}
	assert.False(t, DefaultMergeRule.Matches(main, aside))
}

func TestMergeBoundary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.segment")
	defer teardown()
	//
	m := &Merger{Rule: DefaultMergeRule, MinSize: 1}
	main := contour.Box{X: 10, Y: 20, W: 20, H: 30}
	comps := m.Merge([]contour.Box{{X: 15, Y: 0, W: 4, H: 4}, main})
	assert.Len(t, comps, 2)
	comps = m.Merge([]contour.Box{{X: 15, Y: 5, W: 4, H: 4}, main})
	require.Len(t, comps, 1)
	assert.Equal(t, contour.Box{X: 10, Y: 5, W: 20, H: 45}, comps[0].Box)
	assert.Equal(t, []int{1, 0}, comps[0].Members)
}

func TestMergeSizeFilter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.segment")
	defer teardown()
	//
	m := NewMerger(nil)
	main := contour.Box{X: 10, Y: 20, W: 20, H: 30}
	comps := m.Merge([]contour.Box{{X: 15, Y: 5, W: 4, H: 4}, main, {X: 50, Y: 20, W: 40, H: 2}})
	require.Len(t, comps, 1, "small boxes are neither emitted nor absorbed")
	assert.Equal(t, main, comps[0].Box)
	assert.Equal(t, []int{1}, comps[0].Members)
}

func TestMergeOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.segment")
	defer teardown()
	//
	boxes := []contour.Box{
		{X: 40, Y: 0, W: 10, H: 20},
		{X: 0, Y: 5, W: 10, H: 20},
		{X: 20, Y: 0, W: 10, H: 20},
		{X: 20, Y: 40, W: 10, H: 20},
	}
	comps := NewMerger(nil).Merge(boxes)
	require.Len(t, comps, 4)
	var members []int
	for i, c := range comps {
		assert.Equal(t, i, c.Index)
		members = append(members, c.Members...)
	}
	assert.Equal(t, []int{1, 2, 3, 0}, members, "left to right, ties in discovery order")
}

func TestMergeSingleSatellite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.segment")
	defer teardown()
	//
	boxes := []contour.Box{
		{X: 10, Y: 20, W: 20, H: 30}, // main
		{X: 14, Y: 8, W: 8, H: 8},    // accent above
		{X: 16, Y: 54, W: 8, H: 8},   // hook below
	}
	comps := NewMerger(nil).Merge(boxes)
	require.Len(t, comps, 2)
	assert.Equal(t, []int{0, 1}, comps[0].Members)
	assert.Equal(t, []int{2}, comps[1].Members)
}

func randomBoxes(r *rand.Rand, n int) []contour.Box {
	boxes := make([]contour.Box, n)
	for i := range boxes {
		w, h := 2+r.Intn(30), 2+r.Intn(40)
		boxes[i] = contour.Box{X: r.Intn(2000), Y: r.Intn(300), W: w, H: h}
	}
	return boxes
}

func TestMergeMapping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.segment")
	defer teardown()
	//
	boxes := randomBoxes(rand.New(rand.NewSource(7)), 200)
	m := NewMerger(nil)
	comps := m.Merge(boxes)
	seen := map[int]int{}
	for i, c := range comps {
		if i > 0 {
			assert.LessOrEqual(t, comps[i-1].Box.X, c.Box.X)
		}
		u := contour.Box{}
		for _, k := range c.Members {
			seen[k]++
			u = u.Union(boxes[k])
		}
		assert.Equal(t, u, c.Box, "component box is the union of its members")
		assert.LessOrEqual(t, len(c.Members), 2)
	}
	for k, b := range boxes {
		if b.W < m.MinSize || b.H < m.MinSize {
			assert.Zero(t, seen[k])
		} else {
			assert.Equal(t, 1, seen[k], "box %d belongs to exactly one component", k)
		}
	}
}

func TestMergeBucketsEquivalent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscan.segment")
	defer teardown()
	//
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		boxes := randomBoxes(r, 50+r.Intn(400))
		p := parameters.Defaults()
		p.Bucketing = 0
		quadratic := NewMerger(p).Merge(boxes)
		p.Bucketing = 16
		bucketed := NewMerger(p).Merge(boxes)
		require.Equal(t, quadratic, bucketed, "round %d", round)
	}
}

func TestMergeDeterministic(t *testing.T) {
	boxes := randomBoxes(rand.New(rand.NewSource(3)), 100)
	a := NewMerger(nil).Merge(boxes)
	b := NewMerger(nil).Merge(boxes)
	assert.Equal(t, a, b)
	idx := make([]int, len(a))
	for i, c := range a {
		idx[i] = c.Index
	}
	assert.True(t, sort.IntsAreSorted(idx))
}
