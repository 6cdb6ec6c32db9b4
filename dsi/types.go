package dsi

import (
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvstereo/progress"
	"github.com/katalvlaran/lvstereo/scanline"
)

// Sentinel errors returned by the sparse DSI.
var (
	// ErrBadOccCost indicates a negative occlusion cost.
	ErrBadOccCost = errors.New("dsi: occCost must be non-negative")

	// ErrBadVertCost indicates a negative vertical disparity cost.
	ErrBadVertCost = errors.New("dsi: vertCost must be non-negative")

	// ErrBadVertMult indicates a vertical multiplier outside [0,1); at 1 or
	// above the vertical term swamps the matching costs.
	ErrBadVertMult = errors.New("dsi: vertMult must be in [0,1)")

	// ErrBadErrLim indicates a negative pruning tolerance.
	ErrBadErrLim = errors.New("dsi: errLim must be non-negative")

	// ErrBadRange indicates a refinement neighbourhood smaller than 1.
	ErrBadRange = errors.New("dsi: range must be at least 1")

	// ErrBadMaxLevels indicates a negative level cap.
	ErrBadMaxLevels = errors.New("dsi: maxLevels must be non-negative")

	// ErrBadWorkers indicates fewer than one worker.
	ErrBadWorkers = errors.New("dsi: workers must be at least 1")

	// ErrNilCostModel indicates Run without a cost model.
	ErrNilCostModel = errors.New("dsi: cost model is nil")

	// ErrEmptyImage indicates a cost model with a zero dimension.
	ErrEmptyImage = errors.New("dsi: images must be at least 1×1")

	// ErrHeightMismatch indicates left and right images of different heights,
	// which cannot be a rectified pair.
	ErrHeightMismatch = errors.New("dsi: left and right heights differ")

	// ErrNotFinalized is the panic value of accessors called before Run completed.
	ErrNotFinalized = errors.New("dsi: sparse DSI is not finalized")
)

// State is the life-cycle stage of a SparseDSI.
type State int

const (
	// Uninitialized: configured but not run, or reset by a Set call.
	Uninitialized State = iota
	// Running: Run is processing levels; see SparseDSI.Level.
	Running
	// Finalized: results are available.
	Finalized
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Finalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// DispCost is one stored candidate.
type DispCost struct {
	Disp int     // right x − left x
	Cost float64 // lower is better, comparable within a pixel only
}

// LevelTrace describes one solved scanline of one level. It is handed to the
// LevelHook after pruning.
type LevelTrace struct {
	Level      int
	Y          int
	WidthLeft  int // scanline widths at this level
	WidthRight int
	Best       float64           // scanline optimum, +Inf when nothing survived
	Survivors  []scanline.Offset // ascending by (Left, Right); do not retain
}

// Stats summarises a finalized DSI.
type Stats struct {
	Levels         int     // pyramid levels processed
	Pixels         int     // left-image pixels
	Candidates     int     // stored candidates
	Unmatched      int     // pixels without any candidate
	MeanPerPixel   float64 // candidates per pixel
	StdDevPerPixel float64
}

// Options configures the sparse DSI.
type Options struct {
	OccCost   float64           // cost per occluded pixel
	VertCost  float64           // cost per unit disparity difference between rows
	VertMult  float64           // multiplier of the whole vertical term, [0,1)
	ErrLim    float64           // pruning tolerance per scanline pixel
	Range     int               // refinement neighbourhood half-width
	MaxLevels int               // cap on pyramid levels, 0 = no cap
	Workers   int               // goroutines per level when VertMult == 0
	Logger    *zap.Logger       // structured logger, never nil after New
	Progress  progress.Reporter // passive progress observer, may be nil
	LevelHook func(LevelTrace)  // passive per-scanline observer, may be nil
}

// Option represents a functional option for configuring the sparse DSI.
type Option func(*Options)

// WithOccCost sets the cost of one occluded pixel.
func WithOccCost(c float64) Option {
	return func(o *Options) {
		o.OccCost = c
	}
}

// WithVertCost sets the cost per unit disparity between adjacent rows.
func WithVertCost(c float64) Option {
	return func(o *Options) {
		o.VertCost = c
	}
}

// WithVertMult sets the vertical damping multiplier; 0 disables coupling.
func WithVertMult(m float64) Option {
	return func(o *Options) {
		o.VertMult = m
	}
}

// WithErrLim sets the per-pixel pruning tolerance.
func WithErrLim(e float64) Option {
	return func(o *Options) {
		o.ErrLim = e
	}
}

// WithRange sets the refinement neighbourhood half-width.
func WithRange(r int) Option {
	return func(o *Options) {
		o.Range = r
	}
}

// WithMaxLevels caps the pyramid depth; 1 solves the full-resolution lattice directly.
func WithMaxLevels(n int) Option {
	return func(o *Options) {
		o.MaxLevels = n
	}
}

// WithWorkers sets the number of goroutines solving rows of a level in
// parallel. Only used when VertMult is 0.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithLogger injects a structured logger. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithProgress injects a progress observer.
func WithProgress(p progress.Reporter) Option {
	return func(o *Options) {
		o.Progress = p
	}
}

// WithLevelHook registers fn to observe every solved scanline of every level.
// With more than one worker fn is called concurrently.
func WithLevelHook(fn func(LevelTrace)) Option {
	return func(o *Options) {
		o.LevelHook = fn
	}
}

// DefaultOptions returns the defaults:
//
//	OccCost 1.0, VertCost 1.0, VertMult 0.2, ErrLim 0.1, Range 3,
//	MaxLevels 0 (auto), Workers 1, no-op logger, no progress.
func DefaultOptions() Options {
	return Options{
		OccCost:   1.0,
		VertCost:  1.0,
		VertMult:  0.2,
		ErrLim:    0.1,
		Range:     3,
		MaxLevels: 0,
		Workers:   1,
		Logger:    zap.NewNop(),
	}
}

// Validate checks every numeric option.
func (o *Options) Validate() error {
	switch {
	case !(o.OccCost >= 0):
		return ErrBadOccCost
	case !(o.VertCost >= 0):
		return ErrBadVertCost
	case !(o.VertMult >= 0 && o.VertMult < 1):
		return ErrBadVertMult
	case !(o.ErrLim >= 0):
		return ErrBadErrLim
	case o.Range < 1:
		return ErrBadRange
	case o.MaxLevels < 0:
		return ErrBadMaxLevels
	case o.Workers < 1:
		return ErrBadWorkers
	}

	return nil
}
