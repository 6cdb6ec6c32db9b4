package scanline

import "fmt"

// NewGrid returns the complete lattice wl × wr, used at the coarsest level
// where every pairing is still a candidate.
func NewGrid(wl, wr int) *Program {
	if wl < 0 || wr < 0 {
		panic(ErrBadWidth)
	}
	p := &Program{WidthLeft: wl, WidthRight: wr, Nodes: make([]Node, 0, wl*wr)}
	var l, r int
	for l = 0; l < wl; l++ {
		for r = 0; r < wr; r++ {
			p.Nodes = append(p.Nodes, Node{Offset: Offset{Left: l, Right: r}})
		}
	}

	return p
}

// NewProgram builds a Program from explicit offsets.
//
// Errors:
//   - ErrBadWidth   if wl or wr is negative.
//   - ErrOutOfRange if an offset falls outside the lattice.
//   - ErrUnsorted   if offsets are not strictly ascending by (Left, Right).
func NewProgram(wl, wr int, offsets []Offset) (*Program, error) {
	if wl < 0 || wr < 0 {
		return nil, ErrBadWidth
	}
	p := &Program{WidthLeft: wl, WidthRight: wr, Nodes: make([]Node, len(offsets))}
	for i, o := range offsets {
		if o.Left < 0 || o.Left >= wl || o.Right < 0 || o.Right >= wr {
			return nil, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, o.Left, o.Right, wl, wr)
		}
		if i > 0 && !offsets[i-1].Less(o) {
			return nil, fmt.Errorf("%w: (%d,%d) after (%d,%d)",
				ErrUnsorted, o.Left, o.Right, offsets[i-1].Left, offsets[i-1].Right)
		}
		p.Nodes[i].Offset = o
	}

	return p, nil
}

// Len returns the number of nodes.
func (p *Program) Len() int {
	return len(p.Nodes)
}

// Offsets projects the nodes onto their offsets, in program order.
func (p *Program) Offsets() []Offset {
	out := make([]Offset, len(p.Nodes))
	for i := range p.Nodes {
		out[i] = p.Nodes[i].Offset
	}

	return out
}

// groupEnd returns the index one past the run of nodes sharing Nodes[start].Left.
func (p *Program) groupEnd(start int) int {
	left := p.Nodes[start].Left
	end := start + 1
	for end < len(p.Nodes) && p.Nodes[end].Left == left {
		end++
	}

	return end
}
