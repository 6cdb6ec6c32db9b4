package camera_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/lvstereo/camera"
)

const tol = 1e-6

var canonical = camera.Rectified{Focal: 500, CentreX: 32, CentreY: 24, Baseline: 0.1, Width: 64, Height: 48}

// TestRectified_Depth checks Z = Focal·Baseline/d and the lateral terms.
func TestRectified_Depth(t *testing.T) {
	p, err := canonical.Triangulate(42, 24, 5)
	require.NoError(t, err)
	z := 500 * 0.1 / 5.0
	assert.InDelta(t, z, p.Z, tol)
	assert.InDelta(t, 10*z/500, p.X, tol)
	assert.InDelta(t, 0, p.Y, tol)

	w, h := canonical.ImageSize()
	assert.Equal(t, 64, w)
	assert.Equal(t, 48, h)
	assert.Equal(t, r3.Vec{}, canonical.LeftCentre())
}

// TestRectified_Failures covers the per-call failure modes.
func TestRectified_Failures(t *testing.T) {
	_, err := camera.Rectified{}.Triangulate(1, 1, 1)
	assert.ErrorIs(t, err, camera.ErrUncalibrated)

	_, err = canonical.Triangulate(1, 1, 0)
	assert.ErrorIs(t, err, camera.ErrDegenerate, "zero disparity is at infinity")

	_, err = canonical.Triangulate(1, 1, -2)
	assert.ErrorIs(t, err, camera.ErrDegenerate, "negative disparity is behind the pair")
}

// TestProjective_MatchesRectified triangulates the same pixels both ways.
func TestProjective_MatchesRectified(t *testing.T) {
	proj, err := camera.NewRectifiedProjective(canonical)
	require.NoError(t, err)

	for _, tc := range []struct{ x, y, d float64 }{
		{32, 24, 1}, {0, 0, 4.5}, {63, 47, 12}, {10.25, 3.5, 0.75},
	} {
		want, err := canonical.Triangulate(tc.x, tc.y, tc.d)
		require.NoError(t, err)
		got, err := proj.Triangulate(tc.x, tc.y, tc.d)
		require.NoError(t, err)
		assert.InDelta(t, want.X, got.X, tol*want.Z, "x at %+v", tc)
		assert.InDelta(t, want.Y, got.Y, tol*want.Z, "y at %+v", tc)
		assert.InDelta(t, want.Z, got.Z, tol*want.Z, "z at %+v", tc)
	}

	c := proj.LeftCentre()
	assert.InDelta(t, 0, r3.Norm(c), tol)
	w, h := proj.ImageSize()
	assert.Equal(t, 64, w)
	assert.Equal(t, 48, h)
}

// TestProjective_Degenerate checks infinity and behind-camera rejections.
func TestProjective_Degenerate(t *testing.T) {
	proj, err := camera.NewRectifiedProjective(canonical)
	require.NoError(t, err)

	_, err = proj.Triangulate(10, 10, 0)
	assert.ErrorIs(t, err, camera.ErrDegenerate)

	_, err = proj.Triangulate(10, 10, -3)
	assert.ErrorIs(t, err, camera.ErrDegenerate)
}

// TestProjective_Unrectify verifies homographies are applied before
// triangulation: shifting both images by the same translation and undoing it
// with the homographies leaves the result unchanged.
func TestProjective_Unrectify(t *testing.T) {
	f, cx, cy, b := canonical.Focal, canonical.CentreX, canonical.CentreY, canonical.Baseline
	// Projections of cameras whose principal point moved by (+5, -2).
	left := mat.NewDense(3, 4, []float64{f, 0, cx + 5, 0, 0, f, cy - 2, 0, 0, 0, 1, 0})
	right := mat.NewDense(3, 4, []float64{f, 0, cx + 5, f * b, 0, f, cy - 2, 0, 0, 0, 1, 0})
	shift := mat.NewDense(3, 3, []float64{1, 0, 5, 0, 1, -2, 0, 0, 1})

	proj, err := camera.NewProjective(left, right, camera.WithUnrectify(shift, shift))
	require.NoError(t, err)
	want, err := canonical.Triangulate(20, 30, 2)
	require.NoError(t, err)
	got, err := proj.Triangulate(20, 30, 2)
	require.NoError(t, err)
	assert.InDelta(t, want.X, got.X, tol)
	assert.InDelta(t, want.Y, got.Y, tol)
	assert.InDelta(t, want.Z, got.Z, tol)
}

// TestNewProjective_Validation covers construction errors.
func TestNewProjective_Validation(t *testing.T) {
	good := mat.NewDense(3, 4, []float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0})

	_, err := camera.NewProjective(mat.NewDense(3, 3, nil), good)
	assert.ErrorIs(t, err, camera.ErrBadMatrix)

	_, err = camera.NewProjective(good, nil)
	assert.ErrorIs(t, err, camera.ErrBadMatrix)

	_, err = camera.NewProjective(good, good, camera.WithUnrectify(mat.NewDense(3, 3, nil), nil))
	assert.ErrorIs(t, err, camera.ErrBadMatrix)

	_, err = camera.NewProjective(mat.NewDense(3, 4, nil), good)
	assert.ErrorIs(t, err, camera.ErrUncalibrated)

	_, err = camera.NewRectifiedProjective(camera.Rectified{Focal: 1})
	assert.ErrorIs(t, err, camera.ErrUncalibrated)
}
