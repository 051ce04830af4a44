// Package config decodes cell trees from YAML or JSON documents and loads
// them, or scripted configurations, from files and URLs.
//
// A document is one cell:
//
//	name: ui
//	bounds: viewport
//	debug: {color: "#ffffff"}
//	cells:
//	  - name: ui_1
//	    bounds: {x: 0, y: 0, height: 0.25}
//	    align: leftTop
//	    padding: 0.1
//	  - name: ui_4
//	    bounds: {x: 0}
//	    padding: "20px 10%"
//	    scale: showAll
//	    debug: null
//
// Lengths are numbers (fractions in [0,1], units otherwise), "50%" or
// "120px". A debug value of null or false opts the cell out of an inherited
// style; omitting it inherits.
package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"cellgrid/pkg/geom"
	"cellgrid/pkg/layout"
	"cellgrid/pkg/style"
)

// DecodeError locates a problem in a configuration document.
type DecodeError struct {
	Line, Column int
	Path         string
	Msg          string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d, column %d): %s", layout.ErrInvalidConfig, e.Path, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", layout.ErrInvalidConfig, e.Path, e.Msg)
}

func (e *DecodeError) Unwrap() error { return layout.ErrInvalidConfig }

// Decode parses a YAML or JSON cell tree. The result is validated.
func Decode(data []byte) (*layout.CellConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", layout.ErrInvalidConfig, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", layout.ErrInvalidConfig)
	}
	cfg, err := decodeCell(doc.Content[0], "", "", true)
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fail(n *yaml.Node, path, format string, args ...any) error {
	return &DecodeError{Line: n.Line, Column: n.Column, Path: path, Msg: fmt.Sprintf(format, args...)}
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// pairs iterates the key/value pairs of a mapping node.
func pairs(n *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func decodeCell(n *yaml.Node, parent, name string, root bool) (*layout.CellConfig, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fail(n, join(parent, name), "expected a mapping for a cell")
	}
	cfg := &layout.CellConfig{Name: name}

	// The name comes first so errors in the other keys can use it.
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value != "name" {
			continue
		}
		v := n.Content[i+1]
		if v.Kind != yaml.ScalarNode || isNull(v) {
			return nil, fail(v, join(parent, name), "name must be a string")
		}
		cfg.Name = v.Value
	}
	path := join(parent, cfg.Name)

	err := pairs(n, func(key string, v *yaml.Node) error {
		var err error
		switch key {
		case "name":
		case "bounds":
			cfg.Bounds, err = decodeBounds(v, path, root)
		case "padding":
			cfg.Padding, err = decodePadding(v, path)
		case "scale":
			cfg.Scale, err = decodeMode(v, path, "scale", layout.ParseScaleMode)
		case "align":
			cfg.Align, err = decodeMode(v, path, "align", layout.ParseAlignMode)
		case "offset":
			cfg.Offset, err = decodeOffset(v, path)
		case "debug":
			cfg.Debug, err = decodeDebug(v, path)
		case "cells":
			cfg.Cells, err = decodeCells(v, path)
		default:
			err = fail(v, path, "unknown key %q", key)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + layout.PathSeparator + name
}

func decodeCells(n *yaml.Node, path string) ([]*layout.CellConfig, error) {
	switch {
	case isNull(n):
		return nil, nil
	case n.Kind == yaml.SequenceNode:
		cells := make([]*layout.CellConfig, 0, len(n.Content))
		for _, item := range n.Content {
			c, err := decodeCell(item, path, "", false)
			if err != nil {
				return nil, err
			}
			cells = append(cells, c)
		}
		return cells, nil
	case n.Kind == yaml.MappingNode:
		// name: {cell} form; mapping order is declaration order.
		var cells []*layout.CellConfig
		err := pairs(n, func(key string, v *yaml.Node) error {
			if isNull(v) {
				cells = append(cells, &layout.CellConfig{Name: key})
				return nil
			}
			c, err := decodeCell(v, path, key, false)
			if err != nil {
				return err
			}
			if c.Name != key {
				return fail(v, path, "cell %q declares a different name %q", key, c.Name)
			}
			cells = append(cells, c)
			return nil
		})
		return cells, err
	}
	return nil, fail(n, path, "cells must be a list or a mapping")
}

func decodeBounds(n *yaml.Node, path string, root bool) (layout.Bounds, error) {
	var b layout.Bounds
	switch {
	case isNull(n):
		return b, nil
	case n.Kind == yaml.ScalarNode && strings.EqualFold(n.Value, "viewport"):
		if !root {
			return b, fail(n, path, "only the root cell can use viewport bounds")
		}
		return b, nil
	case n.Kind == yaml.SequenceNode:
		if len(n.Content) > 4 {
			return b, fail(n, path, "bounds list takes at most [x, y, width, height]")
		}
		fields := []*layout.Dim{&b.X, &b.Y, &b.Width, &b.Height}
		for i, item := range n.Content {
			d, err := decodeLength(item, path)
			if err != nil {
				return b, err
			}
			*fields[i] = d
		}
		return b, nil
	case n.Kind == yaml.MappingNode:
		err := pairs(n, func(key string, v *yaml.Node) error {
			var field *layout.Dim
			switch strings.ToLower(key) {
			case "x", "left":
				field = &b.X
			case "y", "top":
				field = &b.Y
			case "width", "w":
				field = &b.Width
			case "height", "h":
				field = &b.Height
			default:
				return fail(v, path, "unknown bounds field %q", key)
			}
			d, err := decodeLength(v, path)
			*field = d
			return err
		})
		return b, err
	}
	return b, fail(n, path, "bounds must be a mapping, a list or \"viewport\"")
}

// decodeLength reads one length. null is unset.
func decodeLength(n *yaml.Node, path string) (layout.Dim, error) {
	if isNull(n) {
		return layout.Dim{}, nil
	}
	if n.Kind != yaml.ScalarNode {
		return layout.Dim{}, fail(n, path, "expected a length")
	}
	switch n.Tag {
	case "!!int", "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return layout.Dim{}, fail(n, path, "invalid number %q", n.Value)
		}
		return layout.Val(v), nil
	}
	d, ok := style.ParseLength(n.Value)
	if !ok {
		return layout.Dim{}, fail(n, path, "invalid length %q", n.Value)
	}
	return d, nil
}

func decodePadding(n *yaml.Node, path string) (*layout.Padding, error) {
	switch {
	case isNull(n):
		return nil, nil
	case n.Kind == yaml.ScalarNode && n.Tag == "!!str":
		p, ok := style.ParseBox(n.Value)
		if !ok {
			return nil, fail(n, path, "invalid padding %q", n.Value)
		}
		return p, nil
	case n.Kind == yaml.ScalarNode:
		d, err := decodeLength(n, path)
		if err != nil {
			return nil, err
		}
		p, _ := style.BoxOf([]layout.Dim{d})
		return p, nil
	case n.Kind == yaml.SequenceNode:
		dims := make([]layout.Dim, 0, len(n.Content))
		for _, item := range n.Content {
			d, err := decodeLength(item, path)
			if err != nil {
				return nil, err
			}
			dims = append(dims, d)
		}
		p, ok := style.BoxOf(dims)
		if !ok {
			return nil, fail(n, path, "padding list takes 1 to 4 values")
		}
		return p, nil
	case n.Kind == yaml.MappingNode:
		p := &layout.Padding{}
		err := pairs(n, func(key string, v *yaml.Node) error {
			d, err := decodeLength(v, path)
			if err != nil {
				return err
			}
			switch strings.ToLower(key) {
			case "top":
				p.Top = d
			case "right":
				p.Right = d
			case "bottom":
				p.Bottom = d
			case "left":
				p.Left = d
			case "horizontal":
				p.Left, p.Right = d, d
			case "vertical":
				p.Top, p.Bottom = d, d
			default:
				return fail(v, path, "unknown padding side %q", key)
			}
			return nil
		})
		return p, err
	}
	return nil, fail(n, path, "invalid padding")
}

func decodeMode[M any](n *yaml.Node, path, what string, parse func(string) (M, error)) (M, error) {
	var zero M
	if isNull(n) {
		return zero, nil
	}
	if n.Kind != yaml.ScalarNode {
		return zero, fail(n, path, "expected a %s mode name", what)
	}
	m, err := parse(n.Value)
	if err != nil {
		return zero, fail(n, path, "unknown %s mode %q", what, n.Value)
	}
	return m, nil
}

func decodeOffset(n *yaml.Node, path string) (*geom.Vector, error) {
	var nums []*yaml.Node
	switch {
	case isNull(n):
		return nil, nil
	case n.Kind == yaml.SequenceNode && len(n.Content) == 2:
		nums = n.Content
	case n.Kind == yaml.MappingNode:
		nums = make([]*yaml.Node, 2)
		err := pairs(n, func(key string, v *yaml.Node) error {
			switch strings.ToLower(key) {
			case "x":
				nums[0] = v
			case "y":
				nums[1] = v
			default:
				return fail(v, path, "unknown offset field %q", key)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fail(n, path, "offset must be {x, y} or [x, y]")
	}

	var out [2]float64
	for i, v := range nums {
		if v == nil {
			continue
		}
		f, err := number(v)
		if err != nil {
			return nil, fail(v, path, "%v", err)
		}
		out[i] = f
	}
	return &geom.Vector{X: out[0], Y: out[1]}, nil
}

func number(n *yaml.Node) (float64, error) {
	if n.Kind != yaml.ScalarNode || (n.Tag != "!!int" && n.Tag != "!!float") {
		return 0, fmt.Errorf("expected a number, got %q", n.Value)
	}
	v, err := strconv.ParseFloat(n.Value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", n.Value)
	}
	return v, nil
}

func decodeDebug(n *yaml.Node, path string) (*layout.Debug, error) {
	switch {
	case isNull(n):
		return layout.NoDebug(), nil
	case n.Kind == yaml.ScalarNode && n.Tag == "!!bool":
		on, _ := strconv.ParseBool(n.Value)
		if !on {
			return layout.NoDebug(), nil
		}
		return &layout.Debug{Color: layout.DefaultDebugColor}, nil
	case n.Kind == yaml.ScalarNode:
		c, err := decodeColor(n, path)
		if err != nil {
			return nil, err
		}
		return &layout.Debug{Color: c}, nil
	case n.Kind == yaml.MappingNode:
		d := &layout.Debug{Color: layout.DefaultDebugColor}
		err := pairs(n, func(key string, v *yaml.Node) error {
			switch strings.ToLower(key) {
			case "color":
				c, err := decodeColor(v, path)
				d.Color = c
				return err
			case "fill":
				if v.Tag != "!!bool" {
					return fail(v, path, "fill must be true or false")
				}
				d.Fill, _ = strconv.ParseBool(v.Value)
			default:
				return fail(v, path, "unknown debug field %q", key)
			}
			return nil
		})
		return d, err
	}
	return nil, fail(n, path, "invalid debug style")
}

func decodeColor(n *yaml.Node, path string) (uint32, error) {
	if n.Kind != yaml.ScalarNode || isNull(n) {
		return 0, fail(n, path, "expected a color")
	}
	value := n.Value
	if n.Tag == "!!int" {
		// YAML reads 0xff8800 as an int; normalize to decimal.
		v, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil || v < 0 {
			return 0, fail(n, path, "invalid color %q", n.Value)
		}
		value = strconv.FormatInt(v, 10)
	}
	c, ok := style.ParseColor(value)
	if !ok {
		return 0, fail(n, path, "invalid color %q", n.Value)
	}
	return c, nil
}
