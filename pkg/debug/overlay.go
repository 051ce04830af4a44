// Package debug flattens a cell tree into drawable shapes for overlay
// renderers. It holds no drawing code.
package debug

import (
	"cellgrid/pkg/geom"
	"cellgrid/pkg/layout"
)

// FillAlpha is the opacity overlay renderers use for filled shapes.
const FillAlpha = 0.4

// Kind tells a renderer which rectangle of a cell a shape outlines.
type Kind uint8

const (
	KindBounds  Kind = iota // cell bounds, stroked
	KindArea                // content area when padding shrinks it
	KindContent             // placed content box
)

func (k Kind) String() string {
	switch k {
	case KindBounds:
		return "bounds"
	case KindArea:
		return "area"
	case KindContent:
		return "content"
	}
	return "unknown"
}

// Shape is one rectangle to draw.
type Shape struct {
	Cell      string
	Kind      Kind
	Rect      geom.Rect
	Color     uint32 // 0xRRGGBB
	Fill      bool
	Inherited bool
	LineWidth float64
}

// RGB splits Color into components in [0,1].
func (s Shape) RGB() (r, g, b float64) {
	return float64(s.Color>>16&0xff) / 255, float64(s.Color>>8&0xff) / 255, float64(s.Color&0xff) / 255
}

// Overlay walks root in pre-order and returns a shape for every cell with a
// resolved debug style. Parents come before children so later shapes draw on
// top.
func Overlay(root *layout.Cell) []Shape {
	var shapes []Shape
	root.Walk(func(c *layout.Cell) bool {
		if d := c.Debug; d != nil {
			shapes = append(shapes, Shape{
				Cell:      c.Name,
				Kind:      KindBounds,
				Rect:      c.Bounds,
				Color:     d.Color,
				Fill:      d.Fill && c.Area == c.Bounds,
				Inherited: c.DebugInherited,
				LineWidth: 1,
			})
			if c.Area != c.Bounds {
				shapes = append(shapes, Shape{
					Cell:      c.Name,
					Kind:      KindArea,
					Rect:      c.Area,
					Color:     d.Color,
					Fill:      d.Fill,
					Inherited: c.DebugInherited,
					LineWidth: 1,
				})
			}
		}
		for _, e := range c.Contents {
			d := e.Merged.Debug
			if d == nil || d.Disabled {
				continue
			}
			shapes = append(shapes, Shape{
				Cell:      c.Name,
				Kind:      KindContent,
				Rect:      e.Placement.Rect,
				Color:     d.Color,
				Fill:      d.Fill,
				Inherited: e.Override.Debug == nil,
				LineWidth: 2,
			})
		}
		return true
	})
	return shapes
}
