// Package dsi builds a hierarchical sparse Disparity-Space Image (DSI) for a
// rectified stereo pair.
//
// What is a sparse DSI?
//
//	A dense DSI stores a cost for every (x, y, disparity). The sparse DSI keeps,
//	per left-image pixel, only the few disparities that lie on some scanline
//	alignment within a tolerance of the best one. Each kept disparity d stands
//	for the band [d-0.5, d+0.5) and carries a cost that is comparable with the
//	other candidates of the same pixel.
//
// How it is computed:
//
//  1. The scanlines are halved repeatedly into a pyramid; level 0 is the full
//     resolution and level Levels-1 the coarsest, where one image side is a
//     single pixel wide.
//  2. At the coarsest level every left/right pairing of a scanline is a
//     candidate. Each level solves every scanline top to bottom:
//     costs from the CostModel, vertical coupling with the row above,
//     forward and backward sweeps over the alignment lattice, pruning to
//     everything within ErrLim × width of the scanline optimum.
//  3. Survivors seed the next finer level in a ±Range neighbourhood.
//  4. At level 0 the survivors become the stored candidates.
//
// Candidate cost:
//
//	cost = local match cost (with coupling) + (best path through it − scanline optimum)
//
// so 0 means "a perfect match on an optimal alignment".
//
// Options:
//
//	– OccCost   (1.0) cost per occluded pixel, either image.
//	– VertCost  (1.0) cost per unit disparity change between rows.
//	– VertMult  (0.2) damping of the whole vertical term; must be in [0,1).
//	– ErrLim    (0.1) per-pixel pruning tolerance.
//	– Range     (3)   neighbourhood half-width when refining a level.
//	– MaxLevels (0)   cap on pyramid depth, 0 = as deep as the images allow.
//	– Workers   (1)   goroutines per level; used only when VertMult is 0,
//	                  because coupling orders the rows.
//
// Errors (sentinel):
//
//	– ErrBadOccCost, ErrBadVertCost, ErrBadVertMult, ErrBadErrLim, ErrBadRange,
//	  ErrBadMaxLevels, ErrBadWorkers for invalid configuration.
//	– ErrNilCostModel, ErrEmptyImage, ErrHeightMismatch for an unusable model.
//	– ErrNotFinalized is the panic value of accessors used before Run completes.
//
// Example usage:
//
//	d, err := dsi.New(model, dsi.WithErrLim(0.05), dsi.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	if err = d.Run(ctx); err != nil {
//	    return err
//	}
//	d.SortByCost(nil)
//	best := d.Disp(x, y, 0)
package dsi
