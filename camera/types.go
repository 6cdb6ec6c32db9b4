package camera

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sentinel errors for camera pairs.
var (
	// ErrUncalibrated indicates a pair whose parameters cannot triangulate anything.
	ErrUncalibrated = errors.New("camera: pair is not calibrated")

	// ErrDegenerate indicates a ray pair meeting at infinity or behind the cameras.
	ErrDegenerate = errors.New("camera: degenerate triangulation")

	// ErrBadMatrix indicates a projection or homography of the wrong shape.
	ErrBadMatrix = errors.New("camera: matrix has the wrong shape")
)

// Pair triangulates rectified left-image pixels at a given disparity.
type Pair interface {
	Triangulate(x, y, disparity float64) (r3.Vec, error)
}

// Sized is implemented by pairs calibrated for a fixed image size.
type Sized interface {
	ImageSize() (width, height int)
}

// Centred is implemented by pairs that know where the left camera sits.
// Pairs without it are taken to have the left camera at the origin.
type Centred interface {
	LeftCentre() r3.Vec
}
