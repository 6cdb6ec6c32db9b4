// Package sparsepos lifts a cost-sorted sparse DSI into 3D.
//
// Every kept candidate of a left pixel is a disparity band [d−w, d+w). Through
// a calibrated camera pair that band becomes a segment along the pixel's ray:
// Start is triangulated at d−w, End at d+w and Centre at d. The k cheapest
// candidates of each pixel are lifted (WithCap) and the resulting segments
// are ordered most distant first, which is the order a renderer or surface
// fitter wants to walk them in.
//
// A candidate whose triangulation fails (zero disparity, a point behind the
// cameras) is dropped on its own; the rest of the pixel and the image are
// unaffected. Pixels with no candidates simply have Size 0.
package sparsepos
