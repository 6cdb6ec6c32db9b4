package dsi

import (
	"cmp"
	"fmt"
	"slices"
	"sync/atomic"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvstereo/progress"
)

// dispWidth is the half-width of the band each stored disparity stands for.
const dispWidth = 0.5

// row holds the stored candidates of one scanline: pixel x owns
// data[index[x]:index[x+1]].
type row struct {
	index []int
	data  []DispCost
}

// SparseDSI is a hierarchical sparse disparity-space image.
//
// A SparseDSI is configured with New and the Set methods, computed by Run and
// then read through Size, Disp, Cost and DispWidth. It is not safe for
// concurrent use, except that State and Level may be polled while Run works.
type SparseDSI struct {
	opts  Options
	model CostModel

	state  atomic.Int32
	level  atomic.Int32
	levels int

	rows   []row
	sorted bool
}

// New returns an Uninitialized SparseDSI over model. model may be nil and set
// later with SetCostModel.
func New(model CostModel, opts ...Option) (*SparseDSI, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if model != nil {
		if err := checkModel(model); err != nil {
			return nil, err
		}
	}

	s := &SparseDSI{opts: o, model: model}
	s.reset()

	return s, nil
}

// SetParams replaces the four cost parameters. Invalid values leave the DSI
// untouched; valid ones reset it to Uninitialized.
func (s *SparseDSI) SetParams(occCost, vertCost, vertMult, errLim float64) error {
	o := s.opts
	o.OccCost, o.VertCost, o.VertMult, o.ErrLim = occCost, vertCost, vertMult, errLim
	if err := o.Validate(); err != nil {
		return err
	}
	s.opts = o
	s.reset()

	return nil
}

// SetRange replaces the refinement neighbourhood half-width and resets the DSI.
func (s *SparseDSI) SetRange(r int) error {
	if r < 1 {
		return ErrBadRange
	}
	s.opts.Range = r
	s.reset()

	return nil
}

// SetCostModel replaces the cost model and resets the DSI.
func (s *SparseDSI) SetCostModel(m CostModel) error {
	if m == nil {
		return ErrNilCostModel
	}
	if err := checkModel(m); err != nil {
		return err
	}
	s.model = m
	s.reset()

	return nil
}

// State reports the life-cycle stage.
func (s *SparseDSI) State() State {
	return State(s.state.Load())
}

// Level reports the pyramid level Run is processing, or -1 outside Run.
func (s *SparseDSI) Level() int {
	return int(s.level.Load())
}

// Options returns a copy of the active configuration.
func (s *SparseDSI) Options() Options {
	return s.opts
}

// Width is the left image width, 0 without a cost model.
func (s *SparseDSI) Width() int {
	if s.model == nil {
		return 0
	}
	return s.model.WidthLeft()
}

// Height is the left image height, 0 without a cost model.
func (s *SparseDSI) Height() int {
	if s.model == nil {
		return 0
	}
	return s.model.HeightLeft()
}

// WidthRight is the right image width, 0 without a cost model.
func (s *SparseDSI) WidthRight() int {
	if s.model == nil {
		return 0
	}
	return s.model.WidthRight()
}

// HeightRight is the right image height, 0 without a cost model.
func (s *SparseDSI) HeightRight() int {
	if s.model == nil {
		return 0
	}
	return s.model.HeightRight()
}

// Size returns the number of candidates of left pixel (x, y).
// It panics with ErrNotFinalized before Run has completed.
func (s *SparseDSI) Size(x, y int) int {
	r := s.row(y)
	return r.index[x+1] - r.index[x]
}

// Disp returns the disparity of candidate i of pixel (x, y).
func (s *SparseDSI) Disp(x, y, i int) float64 {
	return float64(s.entry(x, y, i).Disp)
}

// Cost returns the cost of candidate i of pixel (x, y).
func (s *SparseDSI) Cost(x, y, i int) float64 {
	return s.entry(x, y, i).Cost
}

// DispWidth returns the half-width of the disparity band of candidate i:
// the candidate covers [Disp-w, Disp+w).
func (s *SparseDSI) DispWidth(x, y, i int) float64 {
	s.entry(x, y, i)
	return dispWidth
}

// Candidates returns the candidates of pixel (x, y) in their current order.
// The slice aliases internal storage and must not be modified.
func (s *SparseDSI) Candidates(x, y int) []DispCost {
	r := s.row(y)
	return r.data[r.index[x]:r.index[x+1]:r.index[x+1]]
}

// SortedByCost reports whether the candidates are currently in cost order.
func (s *SparseDSI) SortedByCost() bool {
	return s.State() == Finalized && s.sorted
}

// SortByCost reorders every pixel's candidates by ascending cost, ties by
// ascending disparity. Calling it again leaves the arrays unchanged.
// It panics with ErrNotFinalized before Run has completed.
func (s *SparseDSI) SortByCost(p progress.Reporter) {
	s.sortEach(p, func(a, b DispCost) int {
		if c := cmp.Compare(a.Cost, b.Cost); c != 0 {
			return c
		}
		return cmp.Compare(a.Disp, b.Disp)
	})
	s.sorted = true
}

// SortByDisp restores ascending disparity order, the order Run produces.
func (s *SparseDSI) SortByDisp(p progress.Reporter) {
	s.sortEach(p, func(a, b DispCost) int {
		return cmp.Compare(a.Disp, b.Disp)
	})
	s.sorted = false
}

func (s *SparseDSI) sortEach(p progress.Reporter, less func(a, b DispCost) int) {
	s.mustFinalized()
	p = progress.OrNop(p)
	p.Push()
	defer p.Pop()

	for y := range s.rows {
		p.Report(y, len(s.rows))
		r := &s.rows[y]
		for x := 0; x+1 < len(r.index); x++ {
			slices.SortStableFunc(r.data[r.index[x]:r.index[x+1]], less)
		}
	}
	p.Report(len(s.rows), len(s.rows))
}

// Stats summarises the candidate distribution of a finalized DSI.
func (s *SparseDSI) Stats() Stats {
	s.mustFinalized()
	st := Stats{Levels: s.levels}
	counts := make([]float64, 0, s.Width()*len(s.rows))
	for y := range s.rows {
		r := &s.rows[y]
		for x := 0; x+1 < len(r.index); x++ {
			n := r.index[x+1] - r.index[x]
			counts = append(counts, float64(n))
			st.Candidates += n
			if n == 0 {
				st.Unmatched++
			}
		}
	}
	st.Pixels = len(counts)
	switch {
	case len(counts) > 1:
		st.MeanPerPixel, st.StdDevPerPixel = stat.MeanStdDev(counts, nil)
	case len(counts) == 1:
		st.MeanPerPixel = counts[0]
	}

	return st
}

func (s *SparseDSI) mustFinalized() {
	if s.State() != Finalized {
		panic(ErrNotFinalized)
	}
}

func (s *SparseDSI) row(y int) *row {
	s.mustFinalized()
	return &s.rows[y]
}

func (s *SparseDSI) entry(x, y, i int) DispCost {
	r := s.row(y)
	lo, hi := r.index[x], r.index[x+1]
	if i < 0 || lo+i >= hi {
		panic(fmt.Sprintf("dsi: candidate %d out of range [0,%d) at (%d,%d)", i, hi-lo, x, y))
	}

	return r.data[lo+i]
}

// reset drops results and returns to Uninitialized.
func (s *SparseDSI) reset() {
	s.rows = nil
	s.sorted = false
	s.levels = 0
	s.level.Store(-1)
	s.state.Store(int32(Uninitialized))
}

func checkModel(m CostModel) error {
	if m.WidthLeft() < 1 || m.HeightLeft() < 1 || m.WidthRight() < 1 || m.HeightRight() < 1 {
		return ErrEmptyImage
	}
	if m.HeightLeft() != m.HeightRight() {
		return ErrHeightMismatch
	}

	return nil
}

// logger returns the configured logger, never nil.
func (s *SparseDSI) logger() *zap.Logger {
	if s.opts.Logger == nil {
		return zap.NewNop()
	}
	return s.opts.Logger
}
