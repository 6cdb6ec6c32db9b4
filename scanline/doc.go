// Package scanline implements the per-scanline alignment lattice used by the
// hierarchical sparse disparity search.
//
// What is a scanline program?
//
//	For one row of a rectified stereo pair at one pyramid level, a Program is
//	the ordered list of candidate matches (left offset, right offset). Read in
//	order it describes a monotone alignment graph, much like an edit-distance
//	lattice: a path visits matches whose left AND right offsets strictly
//	increase, and every pixel skipped on either side between two matches is an
//	occlusion priced at occCost.
//
// The four operations:
//
//   - Forward  – best cost of any path from the scanline origin to each node.
//   - Backward – best cost of any path from each node to the scanline end.
//   - Prune    – keep every node whose best through-path lies within
//     errLim × WidthLeft of the scanline optimum.
//   - Expand   – seed the next (finer) level from the survivors.
//
// Unlike a classic single-path DP stereo matcher nothing is backtracked: the
// survivors of Prune form a set of viable alignments, which is what makes the
// resulting disparity-space image sparse but multi-hypothesis.
//
// Complexity:
//
//   - Forward / Backward: O(N log W), N = nodes, W = right width.
//   - Prune:              O(N).
//   - Expand:             O(S·R + N'), S = survivors, R = radius, N' = output.
//
// Usage:
//
//	p := scanline.NewGrid(8, 8)
//	for i := range p.Nodes {
//		p.Nodes[i].Cost = myCost(p.Nodes[i].Left, p.Nodes[i].Right)
//	}
//	scanline.Forward(p, 1.0)
//	scanline.Backward(p, 1.0)
//	best, _ := p.Prune(0.1)
//	next := scanline.Expand(p.Offsets(), 8, 8, 16, 16, 3)
package scanline
