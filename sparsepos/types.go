package sparsepos

import (
	"errors"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvstereo/progress"
)

// Sentinel errors returned by New.
var (
	// ErrNilSource indicates a nil candidate source.
	ErrNilSource = errors.New("sparsepos: source is nil")

	// ErrNilPair indicates a nil camera pair.
	ErrNilPair = errors.New("sparsepos: camera pair is nil")

	// ErrNotSortedByCost indicates a source whose candidates are not in cost
	// order; call SortByCost first.
	ErrNotSortedByCost = errors.New("sparsepos: source is not sorted by cost")

	// ErrDimensionMismatch indicates a camera pair calibrated for another image size.
	ErrDimensionMismatch = errors.New("sparsepos: camera pair and source sizes differ")

	// ErrBadCap indicates a negative cap.
	ErrBadCap = errors.New("sparsepos: cap must be non-negative")
)

// Source is a per-pixel list of disparity candidates, cheapest first.
// *dsi.SparseDSI satisfies it.
type Source interface {
	Width() int
	Height() int
	Size(x, y int) int
	Disp(x, y, i int) float64
	Cost(x, y, i int) float64
	DispWidth(x, y, i int) float64
}

// costOrdered is implemented by sources that can tell whether they are in cost order.
type costOrdered interface {
	SortedByCost() bool
}

// Segment is one lifted candidate.
type Segment struct {
	Start  r3.Vec  // at disparity d − w
	Centre r3.Vec  // at disparity d
	End    r3.Vec  // at disparity d + w
	Cost   float64 // the candidate's cost
}

// Options configures New.
type Options struct {
	Cap      int               // candidates lifted per pixel
	Progress progress.Reporter // may be nil
	Logger   *zap.Logger       // never nil after New
}

// Option configures Options.
type Option func(*Options)

// WithCap lifts at most k candidates per pixel.
func WithCap(k int) Option {
	return func(o *Options) {
		o.Cap = k
	}
}

// WithProgress injects a progress observer.
func WithProgress(p progress.Reporter) Option {
	return func(o *Options) {
		o.Progress = p
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

// DefaultOptions lifts every candidate without progress or logging.
func DefaultOptions() Options {
	return Options{Cap: math.MaxInt, Logger: zap.NewNop()}
}
