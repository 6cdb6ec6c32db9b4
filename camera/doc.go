// Package camera provides the calibrated camera-pair boundary used to lift
// disparities into 3D.
//
// A Pair answers one question: given a left-image pixel (x, y) and a disparity
// d (right x = left x + d on the same rectified row), where is the 3D point?
//
// Two implementations are provided:
//
//   - Rectified  – the canonical rectified pair (shared focal length and
//     principal point, pure horizontal baseline), solved analytically:
//     Z = Focal·Baseline/d.
//   - Projective – two general 3×4 projection matrices, with optional 3×3
//     homographies taking rectified coordinates back to the unrectified images;
//     solved by linear (DLT) triangulation with an SVD.
//
// Failures (an uncalibrated pair, a point at infinity or behind the cameras)
// are reported per call, so a caller can drop a single candidate and carry on.
package camera
