package camera

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// minHomogeneous is the smallest |w| accepted when dehomogenising.
const minHomogeneous = 1e-12

// Projective is a general calibrated pair of 3×4 projection matrices.
//
// Rectified coordinates are first mapped through the optional unrectifying
// homographies, then triangulated linearly:
//
//	[ u_l·P_l³ − P_l¹ ]
//	[ v_l·P_l³ − P_l² ] X = 0,   X = right singular vector of the smallest
//	[ u_r·P_r³ − P_r¹ ]          singular value
//	[ v_r·P_r³ − P_r² ]
//
// Projective is immutable after construction and safe for concurrent use.
type Projective struct {
	left, right   *mat.Dense // 3×4
	unrectLeft    *mat.Dense // 3×3, nil = identity
	unrectRight   *mat.Dense // 3×3, nil = identity
	leftSign      float64    // sign of det of left's 3×3 block, for cheirality
	centre        r3.Vec
	width, height int
}

// ProjectiveOption configures a Projective pair.
type ProjectiveOption func(*projectiveConfig)

type projectiveConfig struct {
	unrectLeft, unrectRight mat.Matrix
	width, height           int
}

// WithUnrectify sets the homographies mapping rectified pixel coordinates back
// to each unrectified image.
func WithUnrectify(left, right mat.Matrix) ProjectiveOption {
	return func(c *projectiveConfig) {
		c.unrectLeft, c.unrectRight = left, right
	}
}

// WithImageSize declares the rectified image size the pair is calibrated for.
func WithImageSize(width, height int) ProjectiveOption {
	return func(c *projectiveConfig) {
		c.width, c.height = width, height
	}
}

// NewProjective validates and copies the projection matrices.
//
// Errors:
//   - ErrBadMatrix    if a projection is not 3×4 or a homography not 3×3.
//   - ErrUncalibrated if the left camera centre cannot be recovered.
func NewProjective(left, right mat.Matrix, opts ...ProjectiveOption) (*Projective, error) {
	var cfg projectiveConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := checkShape("left projection", left, 3, 4); err != nil {
		return nil, err
	}
	if err := checkShape("right projection", right, 3, 4); err != nil {
		return nil, err
	}
	p := &Projective{
		left:   mat.DenseCopyOf(left),
		right:  mat.DenseCopyOf(right),
		width:  cfg.width,
		height: cfg.height,
	}
	if cfg.unrectLeft != nil || cfg.unrectRight != nil {
		if err := checkShape("left homography", cfg.unrectLeft, 3, 3); err != nil {
			return nil, err
		}
		if err := checkShape("right homography", cfg.unrectRight, 3, 3); err != nil {
			return nil, err
		}
		p.unrectLeft = mat.DenseCopyOf(cfg.unrectLeft)
		p.unrectRight = mat.DenseCopyOf(cfg.unrectRight)
	}

	det := mat.Det(p.left.Slice(0, 3, 0, 3))
	if det == 0 {
		return nil, fmt.Errorf("%w: singular left projection", ErrUncalibrated)
	}
	p.leftSign = math.Copysign(1, det)

	// The camera centre is the null vector of the left projection.
	var svd mat.SVD
	if !svd.Factorize(p.left, mat.SVDFull) {
		return nil, fmt.Errorf("%w: left projection SVD failed", ErrUncalibrated)
	}
	var v mat.Dense
	svd.VTo(&v)
	c := v.ColView(3)
	if math.Abs(c.AtVec(3)) < minHomogeneous {
		return nil, fmt.Errorf("%w: left camera centre at infinity", ErrUncalibrated)
	}
	p.centre = r3.Scale(1/c.AtVec(3), r3.Vec{X: c.AtVec(0), Y: c.AtVec(1), Z: c.AtVec(2)})

	return p, nil
}

// NewRectifiedProjective returns the Projective equivalent of a Rectified pair:
// P_l = K[I|0], P_r = K[I|(Baseline,0,0)].
func NewRectifiedProjective(r Rectified) (*Projective, error) {
	if r.Focal == 0 || r.Baseline == 0 {
		return nil, ErrUncalibrated
	}
	f, cx, cy := r.Focal, r.CentreX, r.CentreY
	left := mat.NewDense(3, 4, []float64{
		f, 0, cx, 0,
		0, f, cy, 0,
		0, 0, 1, 0,
	})
	right := mat.NewDense(3, 4, []float64{
		f, 0, cx, f * r.Baseline,
		0, f, cy, 0,
		0, 0, 1, 0,
	})

	return NewProjective(left, right, WithImageSize(r.Width, r.Height))
}

// Triangulate implements Pair.
//
// Errors:
//   - ErrDegenerate if a homography sends a pixel to infinity, the rays meet
//     at infinity, or the point lies behind the left camera.
func (p *Projective) Triangulate(x, y, disparity float64) (r3.Vec, error) {
	ul, vl, err := apply(p.unrectLeft, x, y)
	if err != nil {
		return r3.Vec{}, err
	}
	ur, vr, err := apply(p.unrectRight, x+disparity, y)
	if err != nil {
		return r3.Vec{}, err
	}

	a := mat.NewDense(4, 4, nil)
	fillRows(a, 0, p.left, ul, vl)
	fillRows(a, 2, p.right, ur, vr)

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDFull) {
		return r3.Vec{}, fmt.Errorf("%w: SVD failed", ErrDegenerate)
	}
	var v mat.Dense
	svd.VTo(&v)
	h := v.ColView(3)
	w := h.AtVec(3)
	if math.Abs(w) < minHomogeneous {
		return r3.Vec{}, ErrDegenerate
	}
	pt := r3.Vec{X: h.AtVec(0) / w, Y: h.AtVec(1) / w, Z: h.AtVec(2) / w}

	// cheirality: depth in front of the left camera
	depth := p.left.At(2, 0)*pt.X + p.left.At(2, 1)*pt.Y + p.left.At(2, 2)*pt.Z + p.left.At(2, 3)
	if depth*p.leftSign <= 0 {
		return r3.Vec{}, ErrDegenerate
	}

	return pt, nil
}

// ImageSize implements Sized.
func (p *Projective) ImageSize() (width, height int) {
	return p.width, p.height
}

// LeftCentre implements Centred.
func (p *Projective) LeftCentre() r3.Vec {
	return p.centre
}

// fillRows writes the two DLT rows of one camera into a starting at row.
func fillRows(a *mat.Dense, row int, proj *mat.Dense, u, v float64) {
	for c := 0; c < 4; c++ {
		a.Set(row, c, u*proj.At(2, c)-proj.At(0, c))
		a.Set(row+1, c, v*proj.At(2, c)-proj.At(1, c))
	}
}

// apply maps (x, y) through homography h; nil is the identity.
func apply(h *mat.Dense, x, y float64) (float64, float64, error) {
	if h == nil {
		return x, y, nil
	}
	var out mat.VecDense
	out.MulVec(h, mat.NewVecDense(3, []float64{x, y, 1}))
	w := out.AtVec(2)
	if math.Abs(w) < minHomogeneous {
		return 0, 0, ErrDegenerate
	}

	return out.AtVec(0) / w, out.AtVec(1) / w, nil
}

// checkShape rejects nil matrices and wrong dimensions.
func checkShape(name string, m mat.Matrix, rows, cols int) error {
	if m == nil {
		return fmt.Errorf("%w: %s is nil", ErrBadMatrix, name)
	}
	if r, c := m.Dims(); r != rows || c != cols {
		return fmt.Errorf("%w: %s is %dx%d, want %dx%d", ErrBadMatrix, name, r, c, rows, cols)
	}

	return nil
}
