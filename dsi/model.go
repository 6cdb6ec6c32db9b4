package dsi

import (
	"math"
	"math/bits"
)

// CostModel supplies the local matching cost of left pixel (i, y) against
// right pixel (j, y). Costs must be non-negative; lower is a better match.
type CostModel interface {
	WidthLeft() int
	HeightLeft() int
	WidthRight() int
	HeightRight() int
	Cost(i, j, y int) float64
}

// LevelCostModel is a CostModel that also prices coarse pyramid levels.
// At level l the pixel i covers the full-resolution columns [i<<l, (i+1)<<l),
// the last one extended to the image edge. LevelCost(0, i, j, y) must equal
// Cost(i, j, y).
type LevelCostModel interface {
	CostModel
	LevelCost(level, i, j, y int) float64
}

// coster prices pixel pairs at any level.
type coster func(level, i, j, y int) float64

// Levels returns the pyramid depth for the given scanline widths: enough
// halvings for the narrower side to reach one pixel, capped at maxLevels
// when maxLevels > 0.
func Levels(widthLeft, widthRight, maxLevels int) int {
	n := bits.Len(uint(widthLeft))
	if m := bits.Len(uint(widthRight)); m < n {
		n = m
	}
	if maxLevels > 0 && maxLevels < n {
		n = maxLevels
	}

	return n
}

// block returns the full-resolution columns [lo,hi) covered by pixel i at level.
func block(i, level, width int) (lo, hi int) {
	lo = i << level
	hi = (i + 1) << level
	if (width>>level)-1 == i || hi > width {
		hi = width
	}

	return lo, hi
}

// levelCost returns the model's own level pricing when it has one, and the
// minimum over the covered full-resolution block otherwise.
func levelCost(m CostModel) coster {
	if lm, ok := m.(LevelCostModel); ok {
		return lm.LevelCost
	}
	wl, wr := m.WidthLeft(), m.WidthRight()

	return func(level, i, j, y int) float64 {
		if level == 0 {
			return m.Cost(i, j, y)
		}
		l0, l1 := block(i, level, wl)
		r0, r1 := block(j, level, wr)
		best := math.Inf(1)
		for a := l0; a < l1; a++ {
			for b := r0; b < r1; b++ {
				if c := m.Cost(a, b, y); c < best {
					best = c
				}
			}
		}

		return best
	}
}
