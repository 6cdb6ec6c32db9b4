package matchcost

import (
	"errors"
	"math"
)

// Sentinel errors for cost-model construction.
var (
	// ErrBadGrid indicates a grid whose pixel slice does not match its size.
	ErrBadGrid = errors.New("matchcost: grid size does not match its pixels")

	// ErrEmptyImage indicates an image with a zero dimension.
	ErrEmptyImage = errors.New("matchcost: image is empty")

	// ErrHeightMismatch indicates left and right images of different heights.
	ErrHeightMismatch = errors.New("matchcost: left and right heights differ")

	// ErrBadMult indicates a negative or NaN multiplier.
	ErrBadMult = errors.New("matchcost: mult must be non-negative")

	// ErrBadCap indicates a negative or NaN cap.
	ErrBadCap = errors.New("matchcost: cap must be non-negative")
)

// Options scales and clamps a distance into a cost: min(Mult·distance, Cap).
type Options struct {
	Mult float64
	Cap  float64
}

// Option configures Options.
type Option func(*Options)

// WithMult sets the distance multiplier.
func WithMult(m float64) Option {
	return func(o *Options) {
		o.Mult = m
	}
}

// WithCap sets the largest cost a single match can have.
func WithCap(c float64) Option {
	return func(o *Options) {
		o.Cap = c
	}
}

// DefaultOptions returns Mult 1 and no cap.
func DefaultOptions() Options {
	return Options{Mult: 1, Cap: math.Inf(1)}
}

// Validate checks Mult and Cap.
func (o *Options) Validate() error {
	if !(o.Mult >= 0) {
		return ErrBadMult
	}
	if !(o.Cap >= 0) {
		return ErrBadCap
	}

	return nil
}

func (o *Options) scale(dist float64) float64 {
	return math.Min(o.Mult*dist, o.Cap)
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.Validate()
}

// block returns the full-resolution columns [lo,hi) covered by pixel i at
// level; the last pixel of a level reaches the image edge.
func block(i, level, width int) (lo, hi int) {
	lo, hi = i<<level, (i+1)<<level
	if i == (width>>level)-1 || hi > width {
		hi = width
	}

	return lo, hi
}
