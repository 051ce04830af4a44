package layout

import (
	"fmt"
	"math"
	"strings"

	"cellgrid/pkg/geom"
)

// BuildTree resolves cfg into a cell tree. parent is the rectangle the root's
// non-callback bounds resolve against, normally the host viewport. Non-fatal
// conditions (degenerate areas, clipped bounds) go to warn and the build
// continues; malformed configs fail before any cell is built.
func BuildTree(cfg *CellConfig, parent geom.Rect, warn WarnFunc) (*Cell, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	b := &builder{warn: warn}
	return b.root(cfg, parent), nil
}

// Validate checks the structural rules of a config tree: non-nil nodes,
// non-empty names without PathSeparator and unique among siblings, finite
// numbers and non-negative padding.
func Validate(cfg *CellConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	return validate(cfg, cfg.Name)
}

func validate(cfg *CellConfig, path string) error {
	if cfg.Name == "" {
		return fmt.Errorf("%w: cell at %q has no name", ErrInvalidConfig, path)
	}
	if strings.Contains(cfg.Name, PathSeparator) {
		return fmt.Errorf("%w: cell name %q contains %q", ErrInvalidConfig, cfg.Name, PathSeparator)
	}
	for _, d := range []Dim{cfg.Bounds.X, cfg.Bounds.Y, cfg.Bounds.Width, cfg.Bounds.Height} {
		if !d.valid() {
			return fmt.Errorf("%w: cell %q has a non-finite bound", ErrInvalidConfig, path)
		}
	}
	if p := cfg.Padding; p != nil {
		for _, d := range []Dim{p.Top, p.Right, p.Bottom, p.Left} {
			if !d.valid() || d.Value < 0 {
				return fmt.Errorf("%w: cell %q has invalid padding %v", ErrInvalidConfig, path, d.Value)
			}
		}
	}

	seen := make(map[string]bool, len(cfg.Cells))
	for i, child := range cfg.Cells {
		if child == nil {
			return fmt.Errorf("%w: cell %q has nil child %d", ErrInvalidConfig, path, i)
		}
		if seen[child.Name] {
			return fmt.Errorf("%w: %q under %q", ErrDuplicateName, child.Name, path)
		}
		seen[child.Name] = true
		if err := validate(child, path+PathSeparator+child.Name); err != nil {
			return err
		}
	}
	return nil
}

type builder struct {
	warn WarnFunc
}

// siblings tracks how far earlier siblings reach along each axis, relative to
// the parent content area origin.
type siblings struct {
	consumedX float64
	consumedY float64
}

func (b *builder) root(cfg *CellConfig, parent geom.Rect) *Cell {
	var bounds geom.Rect
	if cfg.Bounds.Func != nil {
		bounds = cfg.Bounds.Func()
	} else {
		bounds, _, _ = resolveBounds(cfg.Bounds, parent, &siblings{})
	}
	return b.cell(cfg, nil, bounds)
}

func (b *builder) child(cfg *CellConfig, parent *Cell, s *siblings) *Cell {
	var bounds geom.Rect
	if cfg.Bounds.Func != nil {
		bounds = cfg.Bounds.Func()
	} else {
		var relX, relY [2]float64
		bounds, relX, relY = resolveBounds(cfg.Bounds, parent.Area, s)
		// Only a declared extent smaller than the parent consumes its axis;
		// a cell that took the remainder leaves the axis to later siblings.
		if cfg.Bounds.Width.Set && relX[1] < parent.Area.Width-geom.Epsilon {
			s.consumedX = math.Max(s.consumedX, relX[0]+relX[1])
		}
		if cfg.Bounds.Height.Set && relY[1] < parent.Area.Height-geom.Epsilon {
			s.consumedY = math.Max(s.consumedY, relY[0]+relY[1])
		}
	}

	if !parent.Area.Contains(bounds) {
		clipped := parent.Area.Intersect(bounds)
		b.warn.emit(&Warning{
			Kind:   ErrBoundsOverflow,
			Cell:   cfg.Name,
			Detail: fmt.Sprintf("%v clipped to %v", bounds, clipped),
		})
		bounds = clipped
	}
	return b.cell(cfg, parent, bounds)
}

func (b *builder) cell(cfg *CellConfig, parent *Cell, bounds geom.Rect) *Cell {
	c := &Cell{
		Name:   cfg.Name,
		Bounds: bounds,
		Scale:  cfg.Scale,
		Align:  cfg.Align,
		Parent: parent,
		Config: cfg,
	}
	if c.Scale == ScaleUnset {
		c.Scale = ScaleShowAll
	}
	if c.Align == AlignUnset {
		c.Align = AlignCenter
	}
	if cfg.Offset != nil {
		c.Offset = *cfg.Offset
	}
	c.Debug, c.DebugInherited = resolveDebug(cfg.Debug, parent)

	c.Padding = cfg.Padding.Resolve(bounds.Size())
	area, fits := bounds.Inset(c.Padding)
	switch {
	case bounds.Empty():
		b.warn.emit(&Warning{Kind: ErrDegenerateArea, Cell: cfg.Name, Detail: fmt.Sprintf("bounds %v", bounds)})
	case !fits || area.Empty():
		b.warn.emit(&Warning{Kind: ErrDegenerateArea, Cell: cfg.Name, Detail: fmt.Sprintf("padding %+v leaves %v", c.Padding, area)})
	}
	c.Area = area

	s := &siblings{}
	c.Children = make([]*Cell, 0, len(cfg.Cells))
	for _, childCfg := range cfg.Cells {
		c.Children = append(c.Children, b.child(childCfg, c, s))
	}
	return c
}

// resolveBounds resolves the four fields of bounds against area. It also
// returns the position and extent per axis relative to area's origin.
func resolveBounds(bounds Bounds, area geom.Rect, s *siblings) (geom.Rect, [2]float64, [2]float64) {
	x, w := resolveAxis(bounds.X, bounds.Width, area.Width, s.consumedX)
	y, h := resolveAxis(bounds.Y, bounds.Height, area.Height, s.consumedY)
	r := geom.Rect{X: area.X + x, Y: area.Y + y, Width: math.Max(0, w), Height: math.Max(0, h)}
	return r, [2]float64{x, w}, [2]float64{y, h}
}

// resolveAxis returns the start and extent along one axis. An unset start
// begins where earlier siblings stopped; an unset extent runs to the far edge.
func resolveAxis(pos, ext Dim, extent, consumed float64) (float64, float64) {
	start := consumed
	if pos.Set {
		start = pos.Resolve(extent)
	}
	size := extent - start
	if ext.Set {
		size = ext.Resolve(extent)
	}
	return start, size
}

func resolveDebug(d *Debug, parent *Cell) (*Debug, bool) {
	if d == nil {
		if parent == nil || parent.Debug == nil {
			return nil, false
		}
		return parent.Debug, true
	}
	if d.Disabled {
		return nil, false
	}
	return d, false
}
