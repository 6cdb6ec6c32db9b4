package scanline

import "sort"

// Parent returns the coarse left offset whose children include fine left x.
// A trailing odd fine pixel folds into the last coarse offset.
func Parent(x, coarseLeft int) int {
	p := x >> 1
	if p > coarseLeft-1 {
		p = coarseLeft - 1
	}

	return p
}

// ChildSpan returns the inclusive range of fine right offsets seeded by the
// coarse right offset r.
//
// The neighbourhood is [2r-radius, 2r+radius] clipped to the fine scanline.
// The last coarse offset also reaches the final fine column (odd widths), and
// a coarse side with a single offset cannot be halved any further, so its
// neighbourhood widens to the whole fine side instead.
func ChildSpan(r, coarseRight, fineRight, radius int) (lo, hi int) {
	if coarseRight <= 1 {
		return 0, fineRight - 1
	}
	lo, hi = 2*r-radius, 2*r+radius
	if r == coarseRight-1 && hi < fineRight-1 {
		hi = fineRight - 1
	}
	if lo < 0 {
		lo = 0
	}
	if hi > fineRight-1 {
		hi = fineRight - 1
	}

	return lo, hi
}

// Expand builds the next (finer) level's Program from the survivors of a
// coarse level.
//
// Every fine left offset x takes the survivors of Parent(x) and unions their
// ChildSpan ranges; the output is deduplicated and strictly ascending by
// (Left, Right). survivors must be ascending by (Left, Right), as Offsets()
// of a pruned program is. No survivors yields an empty, valid program.
//
// Complexity: O(fineLeft·log S + output).
func Expand(survivors []Offset, coarseLeft, coarseRight, fineLeft, fineRight, radius int) *Program {
	p := &Program{WidthLeft: fineLeft, WidthRight: fineRight}
	if len(survivors) == 0 || fineLeft <= 0 || fineRight <= 0 {
		return p
	}
	p.Nodes = make([]Node, 0, len(survivors)*(2*radius+1)*2)

	var x, r, lo, hi, last, parent int
	for x = 0; x < fineLeft; x++ {
		parent = Parent(x, coarseLeft)
		// first survivor with Left >= parent
		i := sort.Search(len(survivors), func(k int) bool { return survivors[k].Left >= parent })
		last = -1
		for ; i < len(survivors) && survivors[i].Left == parent; i++ {
			lo, hi = ChildSpan(survivors[i].Right, coarseRight, fineRight, radius)
			if lo <= last {
				lo = last + 1
			}
			for r = lo; r <= hi; r++ {
				p.Nodes = append(p.Nodes, Node{Offset: Offset{Left: x, Right: r}})
			}
			if hi > last {
				last = hi
			}
		}
	}

	return p
}
