package scanline

// Forward fills IncCost for every node in one ascending sweep.
//
// A node's cheapest predecessor is any node strictly left AND strictly right
// of it (the scanline origin acts as a virtual node at (-1,-1) with zero cost).
// Stepping from p to n occludes (n.Left-p.Left-1)+(n.Right-p.Right-1) pixels:
//
//	IncCost(n) = Cost(n) + min(occCost·(l+r), min_p Z(p) + occCost·(l+r-2))
//	Z(p)       = IncCost(p) - occCost·(p.Left+p.Right)
//
// Z is the zero-intercept of p: the cost of p's path if everything before the
// origin were pure occlusion. Comparing predecessors by Z makes the choice
// independent of how far away the successor is, so one prefix-minimum tree
// keyed by the right offset serves every node. Nodes sharing a left offset are
// resolved before any of them is published to the tree, since they cannot
// precede one another.
func Forward(p *Program, occCost float64) {
	n := len(p.Nodes)
	if n == 0 {
		return
	}
	zero := newMinTree(p.WidthRight)

	var start, end, i int
	for start = 0; start < n; start = end {
		end = p.groupEnd(start)
		for i = start; i < end; i++ {
			node := &p.Nodes[i]
			span := float64(node.Left + node.Right)
			reach := occCost * span // origin: every earlier pixel occluded
			if z := zero.min(node.Right - 1); z+occCost*(span-2) < reach {
				reach = z + occCost*(span-2)
			}
			node.IncCost = reach + node.Cost
		}
		for i = start; i < end; i++ {
			node := &p.Nodes[i]
			zero.lower(node.Right, node.IncCost-occCost*float64(node.Left+node.Right))
		}
	}
}

// Backward fills DecCost for every node in one descending sweep; it mirrors
// Forward with the scanline end as a virtual node at (WidthLeft, WidthRight):
//
//	DecCost(n) = Cost(n) + min(occCost·(WL-1-l + WR-1-r), min_s D(s) - occCost·(l+r+2))
//	D(s)       = DecCost(s) + occCost·(s.Left+s.Right)
func Backward(p *Program, occCost float64) {
	n := len(p.Nodes)
	if n == 0 {
		return
	}
	wl, wr := p.WidthLeft, p.WidthRight
	// keyed by the mirrored right offset so a prefix query is a suffix query.
	zero := newMinTree(wr)

	var start, end, i int
	for end = n; end > 0; end = start {
		start = end - 1
		for start > 0 && p.Nodes[start-1].Left == p.Nodes[end-1].Left {
			start--
		}
		for i = end - 1; i >= start; i-- {
			node := &p.Nodes[i]
			span := float64(node.Left + node.Right)
			reach := occCost * float64((wl-1-node.Left)+(wr-1-node.Right))
			if d := zero.min(wr - 2 - node.Right); d-occCost*(span+2) < reach {
				reach = d - occCost*(span+2)
			}
			node.DecCost = reach + node.Cost
		}
		for i = start; i < end; i++ {
			node := &p.Nodes[i]
			zero.lower(wr-1-node.Right, node.DecCost+occCost*float64(node.Left+node.Right))
		}
	}
}
