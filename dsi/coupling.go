package dsi

import (
	"math"
	"sort"

	"github.com/katalvlaran/lvstereo/scanline"
)

// rowSummary is what a solved scanline offers the scanline below it: per left
// offset, the surviving disparities (ascending) and their candidate costs,
// smoothed so that cost[k] is the cheapest way to reach disp[k] from any
// survivor of the same pixel at vertCost per unit of disparity.
type rowSummary struct {
	index []int // left offset x owns entries [index[x], index[x+1])
	disp  []int
	cost  []float64
}

// summarize builds the summary of a pruned program whose optimum is best.
func summarize(p *scanline.Program, best, vertCost float64) *rowSummary {
	s := &rowSummary{
		index: make([]int, p.WidthLeft+1),
		disp:  make([]int, len(p.Nodes)),
		cost:  make([]float64, len(p.Nodes)),
	}
	for i := range p.Nodes {
		n := &p.Nodes[i]
		s.index[n.Left+1]++
		s.disp[i] = n.Disparity()
		s.cost[i] = candidateCost(n, best)
	}
	for x := 0; x < p.WidthLeft; x++ {
		s.index[x+1] += s.index[x]
	}

	var lo, hi, k int
	var step float64
	for x := 0; x < p.WidthLeft; x++ {
		lo, hi = s.index[x], s.index[x+1]
		for k = lo + 1; k < hi; k++ {
			step = s.cost[k-1] + vertCost*float64(s.disp[k]-s.disp[k-1])
			if step < s.cost[k] {
				s.cost[k] = step
			}
		}
		for k = hi - 2; k >= lo; k-- {
			step = s.cost[k+1] + vertCost*float64(s.disp[k+1]-s.disp[k])
			if step < s.cost[k] {
				s.cost[k] = step
			}
		}
	}

	return s
}

// lookup prices disparity d at left offset x against the summarised row.
// ok is false when that pixel kept no candidate.
func (s *rowSummary) lookup(x, d int, vertCost float64) (v float64, ok bool) {
	if x < 0 || x+1 >= len(s.index) {
		return 0, false
	}
	lo, hi := s.index[x], s.index[x+1]
	if lo == hi {
		return 0, false
	}
	// first entry with disp >= d; the smoothing makes the two neighbours enough
	k := lo + sort.SearchInts(s.disp[lo:hi], d)
	v = math.Inf(1)
	if k < hi {
		v = s.cost[k] + vertCost*float64(s.disp[k]-d)
	}
	if k > lo {
		if c := s.cost[k-1] + vertCost*float64(d-s.disp[k-1]); c < v {
			v = c
		}
	}

	return v, true
}

// candidateCost is the stored cost of a surviving node: its local cost plus
// how far the best path through it is from the scanline optimum.
func candidateCost(n *scanline.Node, best float64) float64 {
	c := n.Cost + scanline.Excess(n, best)
	if c <= scanline.Epsilon {
		return 0
	}

	return c
}
