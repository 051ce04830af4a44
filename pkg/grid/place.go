package grid

import (
	"errors"
	"fmt"

	"cellgrid/pkg/geom"
	"cellgrid/pkg/layout"
)

// attach records content on cell and places it. The entry is recorded even
// when placement of a nested grid fails, so a later rebuild retries it.
func (g *Grid) attach(cell *layout.Cell, content Content, override layout.ContentConfig) error {
	merged := override.Merge(cell.Defaults())
	entry := &layout.Entry{Content: content, Override: override, Merged: merged}
	target := g.target(cell, override)

	var err error
	if nested, ok := content.(NestedGrid); ok {
		err = g.placeGrid(cell, nested, target, entry)
	} else {
		g.placeContent(cell, content, target, merged, entry)
	}
	cell.Contents = append(cell.Contents, entry)
	return err
}

// target is the cell's content area, or its bounds inset by the override's
// own padding when the attachment declares one.
func (g *Grid) target(cell *layout.Cell, override layout.ContentConfig) geom.Rect {
	if override.Padding == nil {
		return cell.Area
	}
	edges := override.Padding.Resolve(cell.Bounds.Size())
	area, fits := cell.Bounds.Inset(edges)
	if !fits || area.Empty() {
		g.warn(&layout.Warning{
			Kind:   layout.ErrDegenerateArea,
			Cell:   cell.Name,
			Detail: fmt.Sprintf("content padding %+v leaves %v", edges, area),
		})
	}
	return area
}

// placeContent resets the content transform, fits its native size into
// target, aligns it and applies the offset.
func (g *Grid) placeContent(cell *layout.Cell, content Content, target geom.Rect, cfg layout.ContentConfig, entry *layout.Entry) {
	content.SetPosition(0, 0)
	content.SetScale(1, 1)
	content.CommitTransform()

	world := nonZero(content.WorldScale())
	size := content.IntrinsicSize()
	native := geom.Size{Width: size.Width / world.X, Height: size.Height / world.Y}

	scale, err := layout.Fit(native, target, cfg.Scale)
	var w *layout.Warning
	if errors.As(err, &w) {
		w.Cell, w.Content = cell.Name, content
		g.warn(w)
	}
	content.SetScale(scale.X, scale.Y)

	scaled := native.Scale(scale)
	at := layout.Align(scaled, target, cfg.Align)
	if cfg.Offset != nil {
		at = at.Add(*cfg.Offset)
	}
	pos := geom.Point(at)
	if a, ok := content.(Anchored); ok {
		origin, wp := a.BoundsOrigin(), content.WorldPosition()
		pos.X -= (origin.X - wp.X) / world.X * scale.X
		pos.Y -= (origin.Y - wp.Y) / world.Y * scale.Y
	}
	content.SetPosition(pos.X, pos.Y)
	content.CommitTransform()

	entry.Placement = layout.Placement{
		Target:   target,
		Scale:    scale,
		Position: pos,
		Rect:     geom.Rect{X: at.X, Y: at.Y, Width: scaled.Width, Height: scaled.Height},
	}
}

// placeGrid drives a nested grid's root bounds with target and rebuilds it
// unscaled and top-left aligned.
func (g *Grid) placeGrid(cell *layout.Cell, nested NestedGrid, target geom.Rect, entry *layout.Entry) error {
	entry.Placement = layout.Placement{
		Target:   target,
		Scale:    geom.Vector{X: 1, Y: 1},
		Position: target.Origin(),
		Rect:     target,
	}
	cfg := nested.Configuration()
	if cfg == nil {
		return fmt.Errorf("%w: nested grid in cell %q has no configuration", layout.ErrInvalidConfig, cell.Name)
	}
	hosted := *cfg
	hosted.Bounds = layout.BoundsFunc(func() geom.Rect { return target })
	hosted.Scale = layout.ScaleNone
	hosted.Align = layout.AlignLeftTop
	if err := nested.Rebuild(&hosted); err != nil {
		return fmt.Errorf("rebuild nested grid in cell %q: %w", cell.Name, err)
	}
	return nil
}

func nonZero(v geom.Vector) geom.Vector {
	if v.X == 0 {
		v.X = 1
	}
	if v.Y == 0 {
		v.Y = 1
	}
	return v
}
