package scanline

import "math"

// Epsilon absorbs the rounding between the forward and backward sums, which
// reach the same path total along different addition orders.
const Epsilon = 1e-9

// Best returns the minimum Total over all nodes; ok is false for an empty program.
func (p *Program) Best() (best float64, ok bool) {
	if len(p.Nodes) == 0 {
		return math.Inf(1), false
	}
	best = p.Nodes[0].Total()
	for i := 1; i < len(p.Nodes); i++ {
		if t := p.Nodes[i].Total(); t < best {
			best = t
		}
	}

	return best, true
}

// Prune keeps, in place and in order, every node whose Total is within
// errLim×WidthLeft of the scanline optimum, and returns that optimum.
// Forward and Backward must have run. An empty program stays empty and
// reports ok=false; that is "no match" for its pixels, not an error.
func (p *Program) Prune(errLim float64) (best float64, ok bool) {
	best, ok = p.Best()
	if !ok {
		return best, false
	}
	limit := best + errLim*float64(p.WidthLeft) + Epsilon

	kept := 0
	for i := range p.Nodes {
		if p.Nodes[i].Total() <= limit {
			p.Nodes[kept] = p.Nodes[i]
			kept++
		}
	}
	p.Nodes = p.Nodes[:kept]

	return best, true
}

// Excess returns how much dearer the best path through n is than best,
// clamped at zero and snapped to zero within Epsilon.
func Excess(n *Node, best float64) float64 {
	d := n.Total() - best
	if d <= Epsilon {
		return 0
	}

	return d
}
