package geom

// Edges represents the four sides of a box (top, right, bottom, left).
type Edges struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformEdges returns edges with the same value on every side.
func UniformEdges(v float64) Edges {
	return Edges{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns Left + Right.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// IsZero reports whether every side is zero.
func (e Edges) IsZero() bool {
	return e == Edges{}
}
