// Package matchcost provides ready-made dsi.CostModel implementations.
//
// The sparse DSI is agnostic to how two pixels are compared; these adapters
// cover the common cases:
//
//	– Func:       any closure with explicit image sizes.
//	– Difference: |left − right| of two scalar grids; coarse levels compare
//	              block means.
//	– LuvRange:   colour ranges in CIE Luv. Each pixel stands for the colours
//	              half way towards its horizontal neighbours, so a match that
//	              is off by a sub-pixel shift still costs nothing (Birchfield
//	              and Tomasi's sampling-insensitive measure). Coarse levels
//	              compare the union of the covered ranges.
//
// Difference and LuvRange share Options: the raw distance is scaled by Mult
// and clamped at Cap.
package matchcost
