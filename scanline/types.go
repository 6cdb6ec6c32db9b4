package scanline

import (
	"errors"
)

// Sentinel errors returned by program construction.
var (
	// ErrBadWidth indicates a negative scanline width.
	ErrBadWidth = errors.New("scanline: widths must be non-negative")

	// ErrOutOfRange indicates an offset outside [0,WidthLeft) × [0,WidthRight).
	ErrOutOfRange = errors.New("scanline: offset out of range")

	// ErrUnsorted indicates offsets not strictly ascending by (Left, Right).
	ErrUnsorted = errors.New("scanline: offsets must be strictly ascending by (left, right)")
)

// Offset pairs a left-scanline offset with a right-scanline offset.
type Offset struct {
	Left  int // offset in the left scanline
	Right int // offset in the right scanline
}

// Disparity returns Right-Left.
func (o Offset) Disparity() int {
	return o.Right - o.Left
}

// Less orders offsets by Left, then Right.
func (o Offset) Less(other Offset) bool {
	if o.Left != other.Left {
		return o.Left < other.Left
	}

	return o.Right < other.Right
}

// Node is one match hypothesis of a Program.
//
// IncCost and DecCost each include Cost, so the best path through the node
// costs IncCost+DecCost-Cost (see Total).
type Node struct {
	Offset
	Cost    float64 // local match cost, plus any vertical coupling
	IncCost float64 // best cost from the scanline origin up to and including this node
	DecCost float64 // best cost from this node (inclusive) to the scanline end
}

// Total returns the cost of the cheapest complete path through n.
func (n *Node) Total() float64 {
	return n.IncCost + n.DecCost - n.Cost
}

// Program is the ordered match lattice of one scanline at one level.
//
// Nodes are strictly ascending by (Left, Right) and every offset lies within
// [0,WidthLeft) × [0,WidthRight). A Program is working storage: it is built
// for a level, solved, pruned and then discarded.
type Program struct {
	WidthLeft  int
	WidthRight int
	Nodes      []Node
}
