package matchcost

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Range is an axis-aligned box in CIE Luv, channels ordered L, u, v.
type Range struct {
	Min, Max [3]float64
}

// Point returns the zero-volume range of one colour.
func Point(c colorful.Color) Range {
	l, u, v := c.Luv()
	p := [3]float64{l, u, v}

	return Range{Min: p, Max: p}
}

// Union returns the smallest range containing r and o.
func (r Range) Union(o Range) Range {
	for k := 0; k < 3; k++ {
		r.Min[k] = math.Min(r.Min[k], o.Min[k])
		r.Max[k] = math.Max(r.Max[k], o.Max[k])
	}

	return r
}

// Gap sums, per channel, how far apart the two ranges are; overlapping
// channels contribute nothing.
func (r Range) Gap(o Range) float64 {
	var g float64
	for k := 0; k < 3; k++ {
		g += math.Max(0, math.Max(r.Min[k]-o.Max[k], o.Min[k]-r.Max[k]))
	}

	return g
}

// LuvRange prices a match by the gap between pixel colour ranges.
type LuvRange struct {
	opts Options
	h    int
	// pyramid[l] holds level l, row-major, width w>>l
	left, right [][]Range
	wl, wr      int
}

// NewLuvRange builds the ranges of both images and their pyramids.
func NewLuvRange(left, right image.Image, opts ...Option) (*LuvRange, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	lb, rb := left.Bounds(), right.Bounds()
	if lb.Empty() || rb.Empty() {
		return nil, ErrEmptyImage
	}
	if lb.Dy() != rb.Dy() {
		return nil, fmt.Errorf("%w: %d vs %d", ErrHeightMismatch, lb.Dy(), rb.Dy())
	}

	m := &LuvRange{opts: o, h: lb.Dy(), wl: lb.Dx(), wr: rb.Dx()}
	m.left = pyramid(ranges(left), m.wl, m.h)
	m.right = pyramid(ranges(right), m.wr, m.h)

	return m, nil
}

// ranges spans every pixel from the colour half way to its left neighbour to
// the colour half way to its right one.
func ranges(img image.Image) []Range {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	cols := make([]colorful.Color, w)
	out := make([]Range, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cols[x], _ = colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
		for x := 0; x < w; x++ {
			r := Point(cols[x])
			if x > 0 {
				r = r.Union(Point(cols[x].BlendLuv(cols[x-1], 0.5)))
			}
			if x < w-1 {
				r = r.Union(Point(cols[x].BlendLuv(cols[x+1], 0.5)))
			}
			out[y*w+x] = r
		}
	}

	return out
}

// pyramid halves the rows until a single pixel is left; the last pixel of a
// level absorbs an odd trailing pixel of the level below.
func pyramid(base []Range, w, h int) [][]Range {
	levels := [][]Range{base}
	for fine := w; fine > 1; fine >>= 1 {
		coarse := fine >> 1
		prev := levels[len(levels)-1]
		next := make([]Range, coarse*h)
		for y := 0; y < h; y++ {
			for i := 0; i < coarse; i++ {
				r := prev[y*fine+2*i].Union(prev[y*fine+2*i+1])
				if i == coarse-1 {
					for k := 2*i + 2; k < fine; k++ {
						r = r.Union(prev[y*fine+k])
					}
				}
				next[y*coarse+i] = r
			}
		}
		levels = append(levels, next)
	}

	return levels
}

func (m *LuvRange) WidthLeft() int   { return m.wl }
func (m *LuvRange) HeightLeft() int  { return m.h }
func (m *LuvRange) WidthRight() int  { return m.wr }
func (m *LuvRange) HeightRight() int { return m.h }

// Cost returns min(Mult·gap, Cap) of the two pixel ranges.
func (m *LuvRange) Cost(i, j, y int) float64 {
	return m.LevelCost(0, i, j, y)
}

// LevelCost compares the union ranges of the covered blocks.
func (m *LuvRange) LevelCost(level, i, j, y int) float64 {
	if level >= len(m.left) || level >= len(m.right) {
		return m.opts.Cap
	}
	wl, wr := m.wl>>level, m.wr>>level

	return m.opts.scale(m.left[level][y*wl+i].Gap(m.right[level][y*wr+j]))
}

// Levels reports how many pyramid levels both images support.
func (m *LuvRange) Levels() int {
	return min(len(m.left), len(m.right))
}
