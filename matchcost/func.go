package matchcost

// Func adapts a closure to a cost model.
type Func struct {
	wl, wr, h int
	f         func(leftX, rightX, y int) float64
}

// NewFunc returns a cost model of a wl×h left and wr×h right image priced by f.
func NewFunc(wl, wr, h int, f func(leftX, rightX, y int) float64) (*Func, error) {
	if wl < 1 || wr < 1 || h < 1 || f == nil {
		return nil, ErrEmptyImage
	}

	return &Func{wl: wl, wr: wr, h: h, f: f}, nil
}

func (m *Func) WidthLeft() int   { return m.wl }
func (m *Func) HeightLeft() int  { return m.h }
func (m *Func) WidthRight() int  { return m.wr }
func (m *Func) HeightRight() int { return m.h }

// Cost calls the wrapped closure.
func (m *Func) Cost(leftX, rightX, y int) float64 {
	return m.f(leftX, rightX, y)
}
