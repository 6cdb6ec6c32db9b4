package matchcost

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Grid is a row-major scalar image.
type Grid struct {
	Width, Height int
	Pix           []float64
}

// At returns the value of pixel (x, y).
func (g Grid) At(x, y int) float64 {
	return g.Pix[y*g.Width+x]
}

func (g Grid) validate() error {
	if g.Width < 1 || g.Height < 1 {
		return ErrEmptyImage
	}
	if len(g.Pix) != g.Width*g.Height {
		return fmt.Errorf("%w: %d×%d needs %d values, have %d", ErrBadGrid, g.Width, g.Height, g.Width*g.Height, len(g.Pix))
	}

	return nil
}

// Lightness converts img to a grid of CIE L* values in [0,1].
func Lightness(img image.Image) Grid {
	b := img.Bounds()
	g := Grid{Width: b.Dx(), Height: b.Dy(), Pix: make([]float64, b.Dx()*b.Dy())}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c, _ := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
			g.Pix[y*g.Width+x], _, _ = c.Luv()
		}
	}

	return g
}

// Difference prices a match by the absolute difference of two scalar grids.
// Coarse levels compare the means of the covered blocks.
type Difference struct {
	opts        Options
	left, right Grid
	// per-row prefix sums, one extra leading zero per row
	sumL, sumR []float64
}

// NewDifference builds the model; the grids must share a height.
func NewDifference(left, right Grid, opts ...Option) (*Difference, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if err = left.validate(); err != nil {
		return nil, fmt.Errorf("left: %w", err)
	}
	if err = right.validate(); err != nil {
		return nil, fmt.Errorf("right: %w", err)
	}
	if left.Height != right.Height {
		return nil, ErrHeightMismatch
	}

	return &Difference{
		opts:  o,
		left:  left,
		right: right,
		sumL:  prefixRows(left),
		sumR:  prefixRows(right),
	}, nil
}

func prefixRows(g Grid) []float64 {
	w := g.Width + 1
	out := make([]float64, w*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			out[y*w+x+1] = out[y*w+x] + g.At(x, y)
		}
	}

	return out
}

func (m *Difference) WidthLeft() int   { return m.left.Width }
func (m *Difference) HeightLeft() int  { return m.left.Height }
func (m *Difference) WidthRight() int  { return m.right.Width }
func (m *Difference) HeightRight() int { return m.right.Height }

// Cost returns min(Mult·|left(i,y) − right(j,y)|, Cap).
func (m *Difference) Cost(i, j, y int) float64 {
	return m.opts.scale(math.Abs(m.left.At(i, y) - m.right.At(j, y)))
}

// LevelCost compares block means at the given level.
func (m *Difference) LevelCost(level, i, j, y int) float64 {
	if level == 0 {
		return m.Cost(i, j, y)
	}

	return m.opts.scale(math.Abs(
		blockMean(m.sumL, m.left.Width, level, i, y) -
			blockMean(m.sumR, m.right.Width, level, j, y)))
}

func blockMean(sum []float64, width, level, i, y int) float64 {
	lo, hi := block(i, level, width)
	row := y * (width + 1)

	return (sum[row+hi] - sum[row+lo]) / float64(hi-lo)
}
