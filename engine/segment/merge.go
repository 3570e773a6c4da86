package segment

import (
	"math"
	"sort"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/glyphscan/core/contour"
	"github.com/npillmayer/glyphscan/core/parameters"
)

// State tags a contour during the merge pass.
type State int8

// Contour states.
const (
	Unmerged State = iota // still eligible as main or other
	Merged                // absorbed into another component
)

// Component is a finalized character: the union of one or two contour boxes.
type Component struct {
	Index   int         // position in left-to-right order, starting at 0
	Box     contour.Box // smallest box enclosing all members
	Members []int       // indices into the boxes handed to Merge
}

// MergeRule decides whether a box is a satellite of another one.
type MergeRule struct {
	HFactor    float64 // horizontal center distance, relative to the wider width
	VFactor    float64 // vertical gap, relative to the taller height
	AreaFactor float64 // satellite area, relative to the main area
}

// DefaultMergeRule is tuned for printed Latin and Cyrillic text.
var DefaultMergeRule = MergeRule{HFactor: 1.2, VFactor: 0.5, AreaFactor: 0.5}

// Matches reports whether other should be merged into main.
func (r MergeRule) Matches(main, other contour.Box) bool {
	hdist := math.Abs(other.CenterX() - main.CenterX())
	hmax := float64(max(main.W, other.W)) * r.HFactor
	if hdist >= hmax {
		return false
	}
	vgap := min(abs(other.Bottom()-main.Top()), abs(main.Bottom()-other.Top()))
	if float64(vgap) >= float64(max(main.H, other.H))*r.VFactor {
		return false
	}
	return float64(other.Area()) < float64(main.Area())*r.AreaFactor
}

// Merger groups contour boxes of a page into character components.
type Merger struct {
	Rule      MergeRule
	MinSize   int // boxes narrower or lower than this are noise
	Bucketing int // use x-buckets for more candidates than this; 0 disables
}

// NewMerger creates a merger from parameters. A nil parameter set selects
// the defaults.
func NewMerger(p *parameters.Parameters) *Merger {
	if p == nil {
		p = parameters.Defaults()
	}
	return &Merger{
		Rule:      MergeRule{HFactor: p.HFactor, VFactor: p.VFactor, AreaFactor: p.AreaFactor},
		MinSize:   p.MinSize,
		Bucketing: p.Bucketing,
	}
}

// candidate is the merge pass's per-contour record.
type candidate struct {
	box     contour.Box
	members []int
	state   State
}

// Merge performs the merge pass over boxes, given in discovery order. Boxes
// are ordered left-to-right by X (ties keep discovery order), boxes below
// MinSize are dropped, then each remaining box absorbs at most one later
// box satisfying the merge rule. The surviving components are returned in
// left-to-right order, indexed from 0.
func (m *Merger) Merge(boxes []contour.Box) []Component {
	order := make([]int, 0, len(boxes))
	for i, b := range boxes {
		if b.W < m.MinSize || b.H < m.MinSize {
			continue
		}
		order = append(order, i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return boxes[order[a]].X < boxes[order[b]].X
	})
	cands := make([]candidate, len(order))
	for i, k := range order {
		cands[i] = candidate{box: boxes[k], members: []int{k}}
	}
	tracer().Debugf("merging %d of %d boxes", len(cands), len(boxes))
	var reach func(i int) []int
	if m.Bucketing > 0 && len(cands) > m.Bucketing {
		reach = m.buckets(cands)
	} else {
		reach = func(i int) []int {
			js := make([]int, 0, len(cands)-i-1)
			for j := i + 1; j < len(cands); j++ {
				js = append(js, j)
			}
			return js
		}
	}
	for i := range cands {
		if cands[i].state == Merged {
			continue
		}
		m.absorb(cands, &cands[i], reach(i))
	}
	var comps []Component
	for _, c := range cands {
		if c.state == Merged {
			continue
		}
		comps = append(comps, Component{Index: len(comps), Box: c.box, Members: c.members})
	}
	tracer().Infof("%d boxes merged into %d components", len(cands), len(comps))
	return comps
}

// absorb merges the first eligible candidate of js into main.
func (m *Merger) absorb(cands []candidate, main *candidate, js []int) bool {
	for _, j := range js {
		other := &cands[j]
		if other.state == Merged || !m.Rule.Matches(main.box, other.box) {
			continue
		}
		tracer().Debugf("merging %v into %v", other.box, main.box)
		main.box = main.box.Union(other.box)
		main.members = append(main.members, other.members...)
		other.state = Merged
		return true
	}
	return false
}

// buckets sorts candidates into x-buckets by doubled center, so that any
// candidate within merge distance of a box lies in the box's bucket or one of
// its two neighbours. It returns a lookup function for the candidates after
// position i within reach, in ascending order. Candidates' boxes do not change
// before they are looked up, so buckets stay valid during the pass.
func (m *Merger) buckets(cands []candidate) func(int) []int {
	maxW := 1
	for _, c := range cands {
		maxW = max(maxW, c.box.W)
	}
	width := max(1, int(math.Ceil(2*m.Rule.HFactor*float64(maxW))))
	bucketOf := func(b contour.Box) int {
		cx2 := 2*b.X + b.W
		return int(math.Floor(float64(cx2) / float64(width)))
	}
	tree := treemap.NewWithIntComparator()
	for i, c := range cands {
		k := bucketOf(c.box)
		v, found := tree.Get(k)
		if !found {
			v = []int{}
		}
		tree.Put(k, append(v.([]int), i))
	}
	tracer().Debugf("%d candidates in %d buckets of width %d", len(cands), tree.Size(), width)
	return func(i int) []int {
		b := bucketOf(cands[i].box)
		js := []int{}
		for k := b - 1; k <= b+1; k++ {
			if v, found := tree.Get(k); found {
				for _, j := range v.([]int) {
					if j > i {
						js = append(js, j)
					}
				}
			}
		}
		sort.Ints(js)
		return js
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
