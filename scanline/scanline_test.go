package scanline_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvstereo/scanline"
)

const eps = 1e-9

// randomProgram returns a sorted random subset of the wl×wr lattice with
// random costs in [0,2).
func randomProgram(rng *rand.Rand, wl, wr int, density float64) *scanline.Program {
	p := &scanline.Program{WidthLeft: wl, WidthRight: wr}
	for l := 0; l < wl; l++ {
		for r := 0; r < wr; r++ {
			if rng.Float64() < density {
				p.Nodes = append(p.Nodes, scanline.Node{
					Offset: scanline.Offset{Left: l, Right: r},
					Cost:   2 * rng.Float64(),
				})
			}
		}
	}

	return p
}

// referenceInc is the quadratic textbook recurrence for IncCost.
func referenceInc(p *scanline.Program, occ float64) []float64 {
	inc := make([]float64, len(p.Nodes))
	for i, n := range p.Nodes {
		best := occ * float64(n.Left+n.Right)
		for j := 0; j < i; j++ {
			q := p.Nodes[j]
			if q.Left < n.Left && q.Right < n.Right {
				c := inc[j] + occ*float64((n.Left-q.Left-1)+(n.Right-q.Right-1))
				best = math.Min(best, c)
			}
		}
		inc[i] = best + n.Cost
	}

	return inc
}

// referenceDec mirrors referenceInc towards the scanline end.
func referenceDec(p *scanline.Program, occ float64) []float64 {
	dec := make([]float64, len(p.Nodes))
	for i := len(p.Nodes) - 1; i >= 0; i-- {
		n := p.Nodes[i]
		best := occ * float64((p.WidthLeft-1-n.Left)+(p.WidthRight-1-n.Right))
		for j := i + 1; j < len(p.Nodes); j++ {
			q := p.Nodes[j]
			if q.Left > n.Left && q.Right > n.Right {
				c := dec[j] + occ*float64((q.Left-n.Left-1)+(q.Right-n.Right-1))
				best = math.Min(best, c)
			}
		}
		dec[i] = best + n.Cost
	}

	return dec
}

// TestNewGrid_Order verifies the complete lattice is ascending by (Left, Right).
func TestNewGrid_Order(t *testing.T) {
	p := scanline.NewGrid(3, 2)
	require.Equal(t, 6, p.Len())
	for i := 1; i < p.Len(); i++ {
		assert.True(t, p.Nodes[i-1].Less(p.Nodes[i].Offset), "node %d out of order", i)
	}
	assert.Equal(t, scanline.Offset{Left: 2, Right: 1}, p.Nodes[5].Offset)
	assert.Equal(t, -1, p.Nodes[5].Disparity())
}

// TestNewProgram_Validation covers every construction error.
func TestNewProgram_Validation(t *testing.T) {
	_, err := scanline.NewProgram(-1, 2, nil)
	assert.ErrorIs(t, err, scanline.ErrBadWidth)

	_, err = scanline.NewProgram(2, 2, []scanline.Offset{{Left: 0, Right: 2}})
	assert.ErrorIs(t, err, scanline.ErrOutOfRange)

	_, err = scanline.NewProgram(2, 2, []scanline.Offset{{Left: 1, Right: 0}, {Left: 0, Right: 1}})
	assert.ErrorIs(t, err, scanline.ErrUnsorted)

	_, err = scanline.NewProgram(2, 2, []scanline.Offset{{Left: 1, Right: 1}, {Left: 1, Right: 1}})
	assert.ErrorIs(t, err, scanline.ErrUnsorted, "duplicates are rejected")

	p, err := scanline.NewProgram(2, 2, []scanline.Offset{{Left: 0, Right: 1}, {Left: 1, Right: 0}})
	require.NoError(t, err)
	assert.Equal(t, []scanline.Offset{{Left: 0, Right: 1}, {Left: 1, Right: 0}}, p.Offsets())
}

// TestPasses_TwoByTwo checks the hand-computed 2×2 lattice with free matches.
//
//	(0,0) and (1,1) form the zero-cost diagonal; (0,1) and (1,0) each force
//	one occlusion on both sides, total 2.
func TestPasses_TwoByTwo(t *testing.T) {
	p := scanline.NewGrid(2, 2)
	scanline.Forward(p, 1)
	scanline.Backward(p, 1)

	want := map[scanline.Offset][3]float64{ // inc, dec, total
		{Left: 0, Right: 0}: {0, 0, 0},
		{Left: 0, Right: 1}: {1, 1, 2},
		{Left: 1, Right: 0}: {1, 1, 2},
		{Left: 1, Right: 1}: {0, 0, 0},
	}
	for i := range p.Nodes {
		n := &p.Nodes[i]
		w := want[n.Offset]
		assert.InDelta(t, w[0], n.IncCost, eps, "inc %v", n.Offset)
		assert.InDelta(t, w[1], n.DecCost, eps, "dec %v", n.Offset)
		assert.InDelta(t, w[2], n.Total(), eps, "total %v", n.Offset)
	}
}

// TestPasses_SingleNode verifies the pure-occlusion boundary terms.
func TestPasses_SingleNode(t *testing.T) {
	p, err := scanline.NewProgram(5, 4, []scanline.Offset{{Left: 2, Right: 1}})
	require.NoError(t, err)
	p.Nodes[0].Cost = 0.5
	scanline.Forward(p, 2)
	scanline.Backward(p, 2)

	// 2 left + 1 right occluded before, 2 left + 2 right after.
	assert.InDelta(t, 2*3+0.5, p.Nodes[0].IncCost, eps)
	assert.InDelta(t, 2*4+0.5, p.Nodes[0].DecCost, eps)
	assert.InDelta(t, 14.5, p.Nodes[0].Total(), eps)
}

// TestPasses_MatchReference compares both sweeps with the quadratic recurrence
// on random sparse programs.
func TestPasses_MatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		wl, wr := 1+rng.Intn(12), 1+rng.Intn(12)
		occ := 0.25 + rng.Float64()
		p := randomProgram(rng, wl, wr, 0.5)

		scanline.Forward(p, occ)
		scanline.Backward(p, occ)
		inc := referenceInc(p, occ)
		dec := referenceDec(p, occ)
		for i := range p.Nodes {
			require.InDelta(t, inc[i], p.Nodes[i].IncCost, eps, "trial %d inc %v", trial, p.Nodes[i].Offset)
			require.InDelta(t, dec[i], p.Nodes[i].DecCost, eps, "trial %d dec %v", trial, p.Nodes[i].Offset)
		}
	}
}

// TestPasses_Empty verifies empty programs are tolerated everywhere.
func TestPasses_Empty(t *testing.T) {
	p := &scanline.Program{WidthLeft: 4, WidthRight: 4}
	scanline.Forward(p, 1)
	scanline.Backward(p, 1)
	best, ok := p.Prune(0.1)
	assert.False(t, ok)
	assert.True(t, math.IsInf(best, 1))
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 0, scanline.Expand(p.Offsets(), 4, 4, 8, 8, 3).Len())
}

// TestPrune_Tolerance checks that the tolerance is errLim × WidthLeft.
func TestPrune_Tolerance(t *testing.T) {
	p := scanline.NewGrid(2, 2)
	scanline.Forward(p, 1)
	scanline.Backward(p, 1)
	best, ok := p.Prune(0)
	require.True(t, ok)
	assert.InDelta(t, 0, best, eps)
	assert.Equal(t, []scanline.Offset{{Left: 0, Right: 0}, {Left: 1, Right: 1}}, p.Offsets())

	p = scanline.NewGrid(2, 2)
	scanline.Forward(p, 1)
	scanline.Backward(p, 1)
	_, ok = p.Prune(1) // tolerance 2 admits the occluding nodes
	require.True(t, ok)
	assert.Equal(t, 4, p.Len())
}

// TestPrune_Monotone verifies a smaller errLim always keeps a subset.
func TestPrune_Monotone(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 30; trial++ {
		base := randomProgram(rng, 10, 10, 0.6)
		scanline.Forward(base, 1)
		scanline.Backward(base, 1)

		loose := &scanline.Program{WidthLeft: 10, WidthRight: 10, Nodes: append([]scanline.Node(nil), base.Nodes...)}
		tight := &scanline.Program{WidthLeft: 10, WidthRight: 10, Nodes: append([]scanline.Node(nil), base.Nodes...)}
		loose.Prune(0.3)
		tight.Prune(0.05)

		kept := make(map[scanline.Offset]bool, loose.Len())
		for _, o := range loose.Offsets() {
			kept[o] = true
		}
		for _, o := range tight.Offsets() {
			assert.True(t, kept[o], "trial %d: %v kept by tight but not loose", trial, o)
		}
		assert.LessOrEqual(t, tight.Len(), loose.Len())
	}
}

// TestPrune_KeepsOptimalPath verifies every optimal node survives errLim=0.
func TestPrune_KeepsOptimalPath(t *testing.T) {
	p := scanline.NewGrid(6, 6)
	for i := range p.Nodes {
		if p.Nodes[i].Right != p.Nodes[i].Left+1 {
			p.Nodes[i].Cost = 1
		}
	}
	scanline.Forward(p, 1)
	scanline.Backward(p, 1)
	best, ok := p.Prune(0)
	require.True(t, ok)
	// Disparity-1 diagonal: one left and one right pixel occluded.
	assert.InDelta(t, 2, best, eps)
	for _, n := range p.Nodes {
		assert.Equal(t, 1, n.Disparity())
		assert.InDelta(t, 0, scanline.Excess(&n, best), eps)
	}
	assert.Equal(t, 5, p.Len())
}

// TestChildSpan covers the regular, trailing and degenerate cases.
func TestChildSpan(t *testing.T) {
	tests := []struct {
		name                 string
		r, coarse, fine, rad int
		wantLo, wantHi       int
	}{
		{"interior", 3, 8, 16, 3, 3, 9},
		{"clipped low", 0, 8, 16, 3, 0, 3},
		{"clipped high", 7, 8, 16, 3, 11, 15},
		{"odd trailing", 2, 3, 7, 1, 3, 6},
		{"single offset widens", 0, 1, 3, 1, 0, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := scanline.ChildSpan(tc.r, tc.coarse, tc.fine, tc.rad)
			assert.Equal(t, tc.wantLo, lo)
			assert.Equal(t, tc.wantHi, hi)
		})
	}
}

// TestExpand_Neighbourhood checks a single survivor seeds both children.
func TestExpand_Neighbourhood(t *testing.T) {
	p := scanline.Expand([]scanline.Offset{{Left: 1, Right: 1}}, 4, 4, 8, 8, 1)
	want := []scanline.Offset{
		{Left: 2, Right: 1}, {Left: 2, Right: 2}, {Left: 2, Right: 3},
		{Left: 3, Right: 1}, {Left: 3, Right: 2}, {Left: 3, Right: 3},
	}
	assert.Equal(t, want, p.Offsets())
	assert.Equal(t, 8, p.WidthLeft)
	assert.Equal(t, 8, p.WidthRight)
}

// TestExpand_Degenerate verifies a one-pixel coarse scanline widens to the
// whole fine lattice rather than producing an empty program.
func TestExpand_Degenerate(t *testing.T) {
	p := scanline.Expand([]scanline.Offset{{Left: 0, Right: 0}}, 1, 1, 2, 3, 3)
	assert.Equal(t, 6, p.Len())

	// Odd fine width: the trailing left pixel folds into the last parent.
	p = scanline.Expand([]scanline.Offset{{Left: 2, Right: 2}}, 3, 3, 7, 7, 1)
	for _, n := range p.Nodes {
		assert.Contains(t, []int{4, 5, 6}, n.Left)
	}
	assert.Equal(t, 6, p.Nodes[p.Len()-1].Left)
}

// TestExpand_SortedAndCovered is the monotone refinement property: every fine
// node lies in the neighbourhood of some coarse survivor, and the output is
// strictly ascending.
func TestExpand_SortedAndCovered(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		coarse := randomProgram(rng, 4, 4, 0.4)
		survivors := coarse.Offsets()
		fine := scanline.Expand(survivors, 4, 4, 8, 9, 2)
		for i, n := range fine.Nodes {
			if i > 0 {
				require.True(t, fine.Nodes[i-1].Less(n.Offset), "trial %d unsorted at %d", trial, i)
			}
			covered := false
			for _, s := range survivors {
				if s.Left != scanline.Parent(n.Left, 4) {
					continue
				}
				lo, hi := scanline.ChildSpan(s.Right, 4, 9, 2)
				if n.Right >= lo && n.Right <= hi {
					covered = true
					break
				}
			}
			assert.True(t, covered, "trial %d: %v has no parent", trial, n.Offset)
		}
	}
}
