// Package lvstereo turns a rectified stereo pair into a sparse set of
// plausible depths per pixel, from the matching lattice all the way to 3D.
//
// 🚀 What is lvstereo?
//
//	A hierarchical sparse Disparity-Space Image (DSI) builder:
//		• Scanline dynamic programming over left/right alignments
//		• Occlusion-aware forward and backward sweeps in O(n log n)
//		• A coarse-to-fine pyramid that refines only what survived
//		• Vertical coupling between scanlines
//		• Candidate bands lifted to 3D segments through a camera pair
//
// ✨ Why a sparse DSI?
//
//   - Keeps every disparity within a tolerance of the best alignment, not
//     just the winner, so later stages can still change their mind
//   - Memory follows the ambiguity of the scene instead of width×disparities
//   - Deterministic; rows run in parallel when they are independent
//
// Packages:
//
//	scanline/  - alignment lattice, forward/backward sweeps, pruning, level expansion
//	dsi/       - the SparseDSI orchestrator, cost-model boundary, vertical coupling
//	matchcost/ - ready-made cost models (closure, scalar difference, Luv ranges)
//	camera/    - rectified and projective camera pairs, triangulation
//	sparsepos/ - 3D segments from a cost-sorted DSI
//	progress/  - nested progress reporting
//
// Quick ASCII example of one scanline lattice (left ↓, right →):
//
//	    0 1 2 3
//	0   ● · · ·      ● a match hypothesis on the best alignment
//	1   · ● · ·      skipping a row or column occludes a pixel
//	2   · · · ●
//
// Dive into examples/ for runnable end-to-end demos.
//
//	go get github.com/katalvlaran/lvstereo
package lvstereo
