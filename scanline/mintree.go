package scanline

import "math"

// minTree is a Fenwick tree answering prefix minima over [0,n).
// Values only ever decrease, which is all the passes need.
type minTree struct {
	tree []float64
}

func newMinTree(n int) *minTree {
	t := &minTree{tree: make([]float64, n+1)}
	for i := range t.tree {
		t.tree[i] = math.Inf(1)
	}

	return t
}

// lower records v at pos, keeping the smaller of v and any earlier value.
func (t *minTree) lower(pos int, v float64) {
	for i := pos + 1; i < len(t.tree); i += i & -i {
		if v < t.tree[i] {
			t.tree[i] = v
		}
	}
}

// min returns the minimum over [0,pos], +Inf when pos < 0 or nothing was recorded.
func (t *minTree) min(pos int) float64 {
	best := math.Inf(1)
	if pos >= len(t.tree)-1 {
		pos = len(t.tree) - 2
	}
	for i := pos + 1; i > 0; i -= i & -i {
		if t.tree[i] < best {
			best = t.tree[i]
		}
	}

	return best
}
