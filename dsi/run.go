package dsi

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvstereo/progress"
	"github.com/katalvlaran/lvstereo/scanline"
)

// level is the geometry of one pyramid level.
type level struct {
	n          int  // level number, 0 is full resolution
	wl, wr     int  // scanline widths at this level
	cwl, cwr   int  // widths of the coarser level, unused at the top
	top, final bool // coarsest / finest level
}

// runState is the scratch shared by the levels of one Run.
type runState struct {
	cost      coster
	survivors [][]scanline.Offset // per row, survivors of the last solved level
	rows      []row
}

// Run computes the DSI from scratch. It blocks until every level is done or
// ctx is cancelled; ctx is checked once per scanline. On error the DSI is
// left Uninitialized.
func (s *SparseDSI) Run(ctx context.Context) error {
	if s.model == nil {
		return ErrNilCostModel
	}
	if err := checkModel(s.model); err != nil {
		return err
	}
	s.reset()
	s.state.Store(int32(Running))

	var (
		log    = s.logger()
		prog   = progress.OrNop(s.opts.Progress)
		wl, wr = s.model.WidthLeft(), s.model.WidthRight()
		height = s.model.HeightLeft()
		levels = Levels(wl, wr, s.opts.MaxLevels)
		start  = time.Now()
	)
	rs := &runState{
		cost:      levelCost(s.model),
		survivors: make([][]scanline.Offset, height),
		rows:      make([]row, height),
	}
	log.Debug("dsi run started",
		zap.Int("widthLeft", wl), zap.Int("widthRight", wr), zap.Int("height", height),
		zap.Int("levels", levels), zap.Float64("occCost", s.opts.OccCost),
		zap.Float64("vertMult", s.opts.VertMult), zap.Float64("errLim", s.opts.ErrLim))

	prog.Push()
	defer prog.Pop()

	for n := levels - 1; n >= 0; n-- {
		prog.Report(levels-1-n, levels)
		s.level.Store(int32(n))
		lv := level{
			n:     n,
			wl:    wl >> n,
			wr:    wr >> n,
			top:   n == levels-1,
			final: n == 0,
		}
		if !lv.top {
			lv.cwl, lv.cwr = wl>>(n+1), wr>>(n+1)
		}

		levelStart := time.Now()
		if err := s.runLevel(ctx, lv, rs, prog); err != nil {
			log.Debug("dsi run aborted", zap.Int("level", n), zap.Error(err))
			s.reset()
			return err
		}
		log.Debug("dsi level done",
			zap.Int("level", n), zap.Int("widthLeft", lv.wl), zap.Int("widthRight", lv.wr),
			zap.Int("survivors", countSurvivors(rs.survivors)),
			zap.Duration("elapsed", time.Since(levelStart)))
	}
	prog.Report(levels, levels)

	s.rows = rs.rows
	s.levels = levels
	s.level.Store(-1)
	s.state.Store(int32(Finalized))
	st := s.Stats()
	log.Debug("dsi run finished",
		zap.Int("levels", levels), zap.Int("pixels", st.Pixels), zap.Int("candidates", st.Candidates),
		zap.Float64("meanPerPixel", st.MeanPerPixel), zap.Duration("elapsed", time.Since(start)))

	return nil
}

// runLevel solves every scanline of one level. Coupled rows run top to
// bottom; uncoupled rows are spread over the configured workers.
func (s *SparseDSI) runLevel(ctx context.Context, lv level, rs *runState, prog progress.Reporter) error {
	height := len(rs.rows)
	prog.Push()
	defer prog.Pop()

	if s.opts.VertMult > 0 || s.opts.Workers == 1 {
		var above *rowSummary
		for y := 0; y < height; y++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			prog.Report(y, height)
			above = s.solveRow(lv, y, rs, above)
		}
		prog.Report(height, height)

		return nil
	}

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for y := 0; y < height; y++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s.solveRow(lv, y, rs, nil)
			mu.Lock()
			done++
			prog.Report(done, height)
			mu.Unlock()

			return nil
		})
	}

	return g.Wait()
}

// solveRow runs one scanline of one level and records its survivors. It
// returns the summary the next row couples to, nil when coupling is off.
func (s *SparseDSI) solveRow(lv level, y int, rs *runState, above *rowSummary) *rowSummary {
	var p *scanline.Program
	if lv.top {
		p = scanline.NewGrid(lv.wl, lv.wr)
	} else {
		p = scanline.Expand(rs.survivors[y], lv.cwl, lv.cwr, lv.wl, lv.wr, s.opts.Range)
	}

	vertMult, vertCost := s.opts.VertMult, s.opts.VertCost
	for i := range p.Nodes {
		n := &p.Nodes[i]
		n.Cost = rs.cost(lv.n, n.Left, n.Right, y)
		if above == nil {
			continue
		}
		if v, ok := above.lookup(n.Left, n.Disparity(), vertCost); ok {
			n.Cost += vertMult * v
		}
	}

	scanline.Forward(p, s.opts.OccCost)
	scanline.Backward(p, s.opts.OccCost)
	best, _ := p.Prune(s.opts.ErrLim)

	rs.survivors[y] = p.Offsets()
	if s.opts.LevelHook != nil {
		s.opts.LevelHook(LevelTrace{
			Level:      lv.n,
			Y:          y,
			WidthLeft:  lv.wl,
			WidthRight: lv.wr,
			Best:       best,
			Survivors:  rs.survivors[y],
		})
	}
	if lv.final {
		rs.rows[y] = extract(p, best)
	}
	if vertMult > 0 {
		return summarize(p, best, vertCost)
	}

	return nil
}

// extract stores the survivors of a full-resolution program, ascending by
// disparity within each pixel.
func extract(p *scanline.Program, best float64) row {
	r := row{
		index: make([]int, p.WidthLeft+1),
		data:  make([]DispCost, len(p.Nodes)),
	}
	for i := range p.Nodes {
		n := &p.Nodes[i]
		r.index[n.Left+1]++
		r.data[i] = DispCost{Disp: n.Disparity(), Cost: candidateCost(n, best)}
	}
	for x := 0; x < p.WidthLeft; x++ {
		r.index[x+1] += r.index[x]
	}

	return r
}

func countSurvivors(rows [][]scanline.Offset) int {
	n := 0
	for _, r := range rows {
		n += len(r)
	}
	return n
}
