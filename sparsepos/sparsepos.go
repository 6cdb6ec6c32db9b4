package sparsepos

import (
	"cmp"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvstereo/camera"
	"github.com/katalvlaran/lvstereo/progress"
)

// SparsePos holds the lifted segments of every left-image pixel.
type SparsePos struct {
	width, height int
	// pixel (x,y) owns data[index[y*width+x] : index[y*width+x+1]]
	index   []int
	data    []Segment
	omitted int
}

// New lifts the cheapest candidates of src through pair.
//
// src must be in cost order: when it reports SortedByCost, false is an
// error. A pair that knows its image size must match src; a pair that knows
// its left camera centre orders segments by distance from it, others by
// distance from the origin.
func New(src Source, pair camera.Pair, opts ...Option) (*SparsePos, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if pair == nil {
		return nil, ErrNilPair
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Cap < 0 {
		return nil, ErrBadCap
	}
	if s, ok := src.(costOrdered); ok && !s.SortedByCost() {
		return nil, ErrNotSortedByCost
	}

	w, h := src.Width(), src.Height()
	if s, ok := pair.(camera.Sized); ok {
		cw, ch := s.ImageSize()
		if (cw != 0 || ch != 0) && (cw != w || ch != h) {
			return nil, fmt.Errorf("%w: camera %d×%d, source %d×%d", ErrDimensionMismatch, cw, ch, w, h)
		}
	}
	var eye r3.Vec
	if c, ok := pair.(camera.Centred); ok {
		eye = c.LeftCentre()
	}

	p := progress.OrNop(o.Progress)
	p.Push()
	defer p.Pop()

	sp := &SparsePos{width: w, height: h, index: make([]int, w*h+1)}
	for y := 0; y < h; y++ {
		p.Report(y, h)
		for x := 0; x < w; x++ {
			start := len(sp.data)
			n := min(src.Size(x, y), o.Cap)
			for i := 0; i < n; i++ {
				seg, err := lift(pair, x, y, src.Disp(x, y, i), src.DispWidth(x, y, i))
				if err != nil {
					sp.omitted++
					continue
				}
				seg.Cost = src.Cost(x, y, i)
				sp.data = append(sp.data, seg)
			}
			// most distant first; the stable sort keeps cost order on ties
			slices.SortStableFunc(sp.data[start:], func(a, b Segment) int {
				return cmp.Compare(r3.Norm(r3.Sub(b.Centre, eye)), r3.Norm(r3.Sub(a.Centre, eye)))
			})
			sp.index[y*w+x+1] = len(sp.data)
		}
	}
	p.Report(h, h)

	o.Logger.Debug("sparsepos built",
		zap.Int("width", w), zap.Int("height", h),
		zap.Int("segments", len(sp.data)), zap.Int("omitted", sp.omitted))

	return sp, nil
}

func lift(pair camera.Pair, x, y int, d, w float64) (Segment, error) {
	fx, fy := float64(x), float64(y)
	start, err := pair.Triangulate(fx, fy, d-w)
	if err != nil {
		return Segment{}, err
	}
	centre, err := pair.Triangulate(fx, fy, d)
	if err != nil {
		return Segment{}, err
	}
	end, err := pair.Triangulate(fx, fy, d+w)
	if err != nil {
		return Segment{}, err
	}

	return Segment{Start: start, Centre: centre, End: end}, nil
}

// Width is the image width.
func (sp *SparsePos) Width() int { return sp.width }

// Height is the image height.
func (sp *SparsePos) Height() int { return sp.height }

// Omitted is the number of candidates dropped because they could not be triangulated.
func (sp *SparsePos) Omitted() int { return sp.omitted }

// Size returns the number of segments of pixel (x, y).
func (sp *SparsePos) Size(x, y int) int {
	k := y*sp.width + x
	return sp.index[k+1] - sp.index[k]
}

// Segments returns the segments of pixel (x, y), most distant first.
// The slice aliases internal storage and must not be modified.
func (sp *SparsePos) Segments(x, y int) []Segment {
	k := y*sp.width + x
	return sp.data[sp.index[k]:sp.index[k+1]:sp.index[k+1]]
}

// Start returns the near-disparity end of segment i, the far end in space.
func (sp *SparsePos) Start(x, y, i int) r3.Vec { return sp.segment(x, y, i).Start }

// Centre returns segment i's point at its candidate disparity.
func (sp *SparsePos) Centre(x, y, i int) r3.Vec { return sp.segment(x, y, i).Centre }

// End returns the far-disparity end of segment i, the near end in space.
func (sp *SparsePos) End(x, y, i int) r3.Vec { return sp.segment(x, y, i).End }

// Cost returns the cost of the candidate segment i was lifted from.
func (sp *SparsePos) Cost(x, y, i int) float64 { return sp.segment(x, y, i).Cost }

func (sp *SparsePos) segment(x, y, i int) *Segment {
	segs := sp.Segments(x, y)
	if i < 0 || i >= len(segs) {
		panic(fmt.Sprintf("sparsepos: segment %d out of range [0,%d) at (%d,%d)", i, len(segs), x, y))
	}

	return &segs[i]
}
