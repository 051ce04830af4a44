package layout

import (
	"math"

	"cellgrid/pkg/geom"
)

// DefaultDebugColor is used by configuration loaders when a debug style
// omits its color.
const DefaultDebugColor uint32 = 0xffffff

// CellConfig declares one cell and, recursively, its children. A config is
// treated as immutable once passed to a build.
type CellConfig struct {
	Name    string
	Bounds  Bounds
	Padding *Padding
	Scale   ScaleMode
	Align   AlignMode
	Offset  *geom.Vector
	Debug   *Debug
	Cells   []*CellConfig
}

// Bounds is either a callback producing an absolute rectangle (used at the
// root to query the host viewport) or four optional fields resolved against
// the parent's content area. Unset fields fill the remaining space.
type Bounds struct {
	Func func() geom.Rect

	X, Y, Width, Height Dim
}

// BoundsFunc wraps f as callback bounds.
func BoundsFunc(f func() geom.Rect) Bounds {
	return Bounds{Func: f}
}

// Fraction returns bounds with all four fields set.
func Fraction(x, y, w, h float64) Bounds {
	return Bounds{X: Val(x), Y: Val(y), Width: Val(w), Height: Val(h)}
}

// Dim is one bounds or padding field. Its zero value is unset.
type Dim struct {
	Value    float64
	Set      bool
	Absolute bool
}

// Val returns a Dim interpreted as a fraction of the reference extent when it
// lies in [0,1] and as units otherwise.
func Val(v float64) Dim { return Dim{Value: v, Set: true} }

// Px returns a Dim that is always interpreted as units.
func Px(v float64) Dim { return Dim{Value: v, Set: true, Absolute: true} }

// Resolve converts d against the reference extent. Unset resolves to 0.
func (d Dim) Resolve(extent float64) float64 {
	if !d.Set {
		return 0
	}
	if !d.Absolute && d.Value >= 0 && d.Value <= 1 {
		return d.Value * extent
	}
	return d.Value
}

func (d Dim) valid() bool {
	return !math.IsNaN(d.Value) && !math.IsInf(d.Value, 0)
}

// Padding shrinks a cell's bounds to its content area. Fractional sides refer
// to the bounds width (left, right) or height (top, bottom).
type Padding struct {
	Top, Right, Bottom, Left Dim
}

// Uniform returns the same padding on all four sides.
func Uniform(v float64) *Padding {
	d := Val(v)
	return &Padding{Top: d, Right: d, Bottom: d, Left: d}
}

// Sides returns per-side padding.
func Sides(top, right, bottom, left float64) *Padding {
	return &Padding{Top: Val(top), Right: Val(right), Bottom: Val(bottom), Left: Val(left)}
}

// Resolve converts p against the size of the padded rectangle.
func (p *Padding) Resolve(size geom.Size) geom.Edges {
	if p == nil {
		return geom.Edges{}
	}
	return geom.Edges{
		Top:    p.Top.Resolve(size.Height),
		Right:  p.Right.Resolve(size.Width),
		Bottom: p.Bottom.Resolve(size.Height),
		Left:   p.Left.Resolve(size.Width),
	}
}

// Debug describes how an overlay should visualize a cell. A nil *Debug in a
// config inherits the nearest ancestor's style; Disabled opts the cell and its
// descendants out until a descendant declares its own style.
type Debug struct {
	Color    uint32
	Fill     bool
	Disabled bool
}

// NoDebug returns the explicit opt-out style.
func NoDebug() *Debug { return &Debug{Disabled: true} }

// ContentConfig overrides a cell's placement rules for one attachment. Zero
// fields inherit the cell's values.
type ContentConfig struct {
	Scale   ScaleMode
	Align   AlignMode
	Offset  *geom.Vector
	Debug   *Debug
	Padding *Padding
}

// Merge returns c with every unset field taken from base.
func (c ContentConfig) Merge(base ContentConfig) ContentConfig {
	out := c
	if out.Scale == ScaleUnset {
		out.Scale = base.Scale
	}
	if out.Align == AlignUnset {
		out.Align = base.Align
	}
	if out.Offset == nil {
		out.Offset = base.Offset
	}
	if out.Debug == nil {
		out.Debug = base.Debug
	}
	if out.Padding == nil {
		out.Padding = base.Padding
	}
	return out
}

// Clone returns a deep copy of c. Bounds callbacks are shared.
func (c *CellConfig) Clone() *CellConfig {
	if c == nil {
		return nil
	}
	out := *c
	if c.Padding != nil {
		p := *c.Padding
		out.Padding = &p
	}
	if c.Offset != nil {
		o := *c.Offset
		out.Offset = &o
	}
	if c.Debug != nil {
		d := *c.Debug
		out.Debug = &d
	}
	if c.Cells != nil {
		out.Cells = make([]*CellConfig, len(c.Cells))
		for i, child := range c.Cells {
			out.Cells[i] = child.Clone()
		}
	}
	return &out
}
