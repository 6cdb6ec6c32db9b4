package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Rectified is the canonical rectified pair: both cameras share Focal (in
// pixels) and the principal point (CentreX, CentreY); the right camera sits
// Baseline along the x axis, so a point at depth Z appears at right x = left
// x + Focal·Baseline/Z.
//
// Width and Height, when non-zero, declare the image size the pair was
// calibrated for.
type Rectified struct {
	Focal    float64
	CentreX  float64
	CentreY  float64
	Baseline float64
	Width    int
	Height   int
}

// Triangulate returns the 3D point in the left camera frame.
//
// Errors:
//   - ErrUncalibrated if Focal or Baseline is zero.
//   - ErrDegenerate   if the depth is not finite and positive.
func (r Rectified) Triangulate(x, y, disparity float64) (r3.Vec, error) {
	if r.Focal == 0 || r.Baseline == 0 {
		return r3.Vec{}, ErrUncalibrated
	}
	z := r.Focal * r.Baseline / disparity
	if !(z > 0) || math.IsInf(z, 0) {
		return r3.Vec{}, ErrDegenerate
	}

	return r3.Vec{
		X: (x - r.CentreX) * z / r.Focal,
		Y: (y - r.CentreY) * z / r.Focal,
		Z: z,
	}, nil
}

// ImageSize implements Sized.
func (r Rectified) ImageSize() (width, height int) {
	return r.Width, r.Height
}

// LeftCentre implements Centred: the left camera is the origin.
func (r Rectified) LeftCentre() r3.Vec {
	return r3.Vec{}
}
