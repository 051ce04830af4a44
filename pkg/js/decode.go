package js

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dop251/goja"

	"cellgrid/pkg/geom"
	"cellgrid/pkg/layout"
	"cellgrid/pkg/style"
)

func invalid(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", layout.ErrInvalidConfig, path, fmt.Sprintf(format, args...))
}

// present reports whether v is neither undefined nor null.
func present(v goja.Value) bool {
	return v != nil && !goja.IsUndefined(v) && !goja.IsNull(v)
}

// object returns v as an object. Primitives are rejected.
func object(v goja.Value) (*goja.Object, bool) {
	o, ok := v.(*goja.Object)
	return o, ok
}

// array returns the elements of a JS array.
func array(v goja.Value) ([]goja.Value, bool) {
	o, ok := object(v)
	if !ok || o.ClassName() != "Array" {
		return nil, false
	}
	n := o.Get("length").ToInteger()
	items := make([]goja.Value, 0, n)
	for i := int64(0); i < n; i++ {
		items = append(items, o.Get(strconv.FormatInt(i, 10)))
	}
	return items, true
}

func (e *Engine) decode(v goja.Value) (*layout.CellConfig, error) {
	return e.decodeCell(v, "", true)
}

func (e *Engine) decodeCell(v goja.Value, parent string, root bool) (*layout.CellConfig, error) {
	o, ok := object(v)
	if !ok {
		return nil, invalid(parent, "expected a cell object")
	}

	cfg := &layout.CellConfig{}
	if name := o.Get("name"); present(name) {
		cfg.Name = name.String()
	}
	path := cfg.Name
	if parent != "" {
		path = parent + layout.PathSeparator + cfg.Name
	}

	// Own keys include those explicitly set to undefined.
	var err error
	for _, key := range o.Keys() {
		val := o.Get(key)
		switch key {
		case "name":
		case "bounds":
			cfg.Bounds, err = e.decodeBounds(val, path, root)
		case "padding":
			cfg.Padding, err = e.decodePadding(val, path)
		case "scale":
			if present(val) {
				cfg.Scale, err = layout.ParseScaleMode(exportString(val))
			}
			if err != nil {
				err = fmt.Errorf("%s: %w", path, err)
			}
		case "align":
			if present(val) {
				cfg.Align, err = layout.ParseAlignMode(exportString(val))
			}
			if err != nil {
				err = fmt.Errorf("%s: %w", path, err)
			}
		case "offset":
			cfg.Offset, err = e.decodeOffset(val, path)
		case "debug":
			cfg.Debug, err = e.decodeDebug(val, path)
		case "cells":
			cfg.Cells, err = e.decodeCells(val, path)
		default:
			err = invalid(path, "unknown key %q", key)
		}
		if err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (e *Engine) decodeCells(v goja.Value, path string) ([]*layout.CellConfig, error) {
	if !present(v) {
		return nil, nil
	}
	items, ok := array(v)
	if !ok {
		return nil, invalid(path, "cells must be an array")
	}
	cells := make([]*layout.CellConfig, 0, len(items))
	for _, item := range items {
		c, err := e.decodeCell(item, path, false)
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return cells, nil
}

func (e *Engine) decodeBounds(v goja.Value, path string, root bool) (layout.Bounds, error) {
	var b layout.Bounds
	if !present(v) {
		return b, nil
	}
	if fn, ok := goja.AssertFunction(v); ok {
		return layout.BoundsFunc(func() geom.Rect {
			res, err := fn(goja.Undefined())
			if err != nil {
				e.logger.Printf("ERROR: bounds of %s: %v", path, err)
				return geom.Rect{}
			}
			r, err := e.rect(res, path)
			if err != nil {
				e.logger.Printf("ERROR: bounds of %s: %v", path, err)
			}
			return r
		}), nil
	}
	if s, ok := v.Export().(string); ok {
		if !strings.EqualFold(s, "viewport") || !root {
			return b, invalid(path, "unexpected bounds %q", s)
		}
		return b, nil
	}

	o, ok := object(v)
	if !ok {
		return b, invalid(path, "bounds must be an object, a function or \"viewport\"")
	}
	for _, key := range o.Keys() {
		var field *layout.Dim
		switch key {
		case "x":
			field = &b.X
		case "y":
			field = &b.Y
		case "width":
			field = &b.Width
		case "height":
			field = &b.Height
		default:
			return b, invalid(path, "unknown bounds field %q", key)
		}
		d, err := length(o.Get(key), path)
		if err != nil {
			return b, err
		}
		*field = d
	}
	return b, nil
}

// rect converts a callback result to an absolute rectangle.
func (e *Engine) rect(v goja.Value, path string) (geom.Rect, error) {
	o, ok := object(v)
	if !ok {
		return geom.Rect{}, invalid(path, "bounds callback did not return an object")
	}
	var out [4]float64
	for i, key := range []string{"x", "y", "width", "height"} {
		f := o.Get(key)
		if !present(f) {
			continue
		}
		n, ok := toNumber(f)
		if !ok {
			return geom.Rect{}, invalid(path, "bounds callback field %s is not a number", key)
		}
		out[i] = n
	}
	return geom.XYWH(out[0], out[1], out[2], out[3]), nil
}

func toNumber(v goja.Value) (float64, bool) {
	switch n := v.Export().(type) {
	case int64:
		return float64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func exportString(v goja.Value) string {
	if s, ok := v.Export().(string); ok {
		return s
	}
	return v.String()
}

// length reads a number or a length string. undefined and null are unset.
func length(v goja.Value, path string) (layout.Dim, error) {
	if !present(v) {
		return layout.Dim{}, nil
	}
	if n, ok := toNumber(v); ok {
		return layout.Val(n), nil
	}
	if s, ok := v.Export().(string); ok {
		if d, ok := style.ParseLength(s); ok {
			return d, nil
		}
	}
	return layout.Dim{}, invalid(path, "invalid length %s", v.String())
}

func (e *Engine) decodePadding(v goja.Value, path string) (*layout.Padding, error) {
	if !present(v) {
		return nil, nil
	}
	if s, ok := v.Export().(string); ok {
		p, ok := style.ParseBox(s)
		if !ok {
			return nil, invalid(path, "invalid padding %q", s)
		}
		return p, nil
	}
	if _, ok := toNumber(v); ok {
		d, err := length(v, path)
		if err != nil {
			return nil, err
		}
		p, _ := style.BoxOf([]layout.Dim{d})
		return p, nil
	}

	if items, ok := array(v); ok {
		dims := make([]layout.Dim, 0, len(items))
		for _, item := range items {
			d, err := length(item, path)
			if err != nil {
				return nil, err
			}
			dims = append(dims, d)
		}
		p, ok := style.BoxOf(dims)
		if !ok {
			return nil, invalid(path, "padding array takes 1 to 4 values")
		}
		return p, nil
	}

	o, ok := object(v)
	if !ok {
		return nil, invalid(path, "invalid padding")
	}
	p := &layout.Padding{}
	for _, key := range o.Keys() {
		d, err := length(o.Get(key), path)
		if err != nil {
			return nil, err
		}
		switch key {
		case "top":
			p.Top = d
		case "right":
			p.Right = d
		case "bottom":
			p.Bottom = d
		case "left":
			p.Left = d
		default:
			return nil, invalid(path, "unknown padding side %q", key)
		}
	}
	return p, nil
}

func (e *Engine) decodeOffset(v goja.Value, path string) (*geom.Vector, error) {
	if !present(v) {
		return nil, nil
	}
	o, ok := object(v)
	if !ok {
		return nil, invalid(path, "offset must be {x, y}")
	}
	var out geom.Vector
	for key, dst := range map[string]*float64{"x": &out.X, "y": &out.Y} {
		f := o.Get(key)
		if !present(f) {
			continue
		}
		n, ok := toNumber(f)
		if !ok {
			return nil, invalid(path, "offset.%s is not a number", key)
		}
		*dst = n
	}
	return &out, nil
}

// decodeDebug maps undefined, null and false to the explicit opt-out. The
// caller only reaches it for keys the object declares.
func (e *Engine) decodeDebug(v goja.Value, path string) (*layout.Debug, error) {
	if !present(v) {
		return layout.NoDebug(), nil
	}
	if b, ok := v.Export().(bool); ok {
		if !b {
			return layout.NoDebug(), nil
		}
		return &layout.Debug{Color: layout.DefaultDebugColor}, nil
	}
	if _, ok := v.Export().(string); ok {
		c, err := color(v, path)
		return &layout.Debug{Color: c}, err
	}

	o, ok := object(v)
	if !ok {
		return nil, invalid(path, "invalid debug style")
	}
	d := &layout.Debug{Color: layout.DefaultDebugColor}
	for _, key := range o.Keys() {
		f := o.Get(key)
		switch key {
		case "color":
			c, err := color(f, path)
			if err != nil {
				return nil, err
			}
			d.Color = c
		case "fill":
			d.Fill = f.ToBoolean()
		default:
			return nil, invalid(path, "unknown debug field %q", key)
		}
	}
	return d, nil
}

func color(v goja.Value, path string) (uint32, error) {
	if n, ok := toNumber(v); ok {
		if n < 0 || n > 0xffffff || n != math.Trunc(n) {
			return 0, invalid(path, "invalid color %v", n)
		}
		return uint32(n), nil
	}
	if s, ok := v.Export().(string); ok {
		if c, ok := style.ParseColor(s); ok {
			return c, nil
		}
	}
	return 0, invalid(path, "invalid color %s", v.String())
}
