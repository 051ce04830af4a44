// Package js evaluates scripted cell configurations with goja.
//
// A script's completion value is a config object or a function returning
// one. [Script.Config] calls such a function again every time, so a script
// can branch on viewport.isLandscape:
//
//	(function () {
//	  var canvas = function () { return viewport.bounds(); };
//	  return {
//	    name: "main",
//	    bounds: canvas,
//	    cells: viewport.isLandscape
//	      ? [{ name: "a", bounds: { width: 0.4 } }, { name: "b" }]
//	      : [{ name: "a", bounds: { height: 0.5 } }, { name: "b" }],
//	  };
//	})
//
// Globals: viewport {width, height, isLandscape, bounds()}, CellScale and
// CellAlign name constants, console.
package js

import (
	"fmt"
	"log"

	"github.com/dop251/goja"

	"cellgrid/pkg/geom"
	"cellgrid/pkg/layout"
)

// Engine owns one goja runtime. It is not safe for concurrent use.
type Engine struct {
	vm       *goja.Runtime
	logger   *log.Logger
	viewport geom.Rect
	view     *goja.Object
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes console output and callback failures to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates a new JS engine with a fresh goja runtime.
func New(opts ...Option) *Engine {
	vm := goja.New()
	e := &Engine{vm: vm, logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}

	c := &consoleAPI{logger: e.logger}
	c.register(vm)
	registerConstants(vm)

	e.view = vm.NewObject()
	e.view.Set("bounds", func(goja.FunctionCall) goja.Value {
		return e.rectValue(e.viewport)
	})
	e.updateViewport()
	vm.Set("viewport", e.view)
	return e
}

// SetViewport updates the viewport global. Config functions and bounds
// callbacks see the new values the next time they run.
func (e *Engine) SetViewport(width, height float64) {
	e.viewport = geom.XYWH(0, 0, width, height)
	e.updateViewport()
}

// Viewport returns the rectangle last set with SetViewport.
func (e *Engine) Viewport() geom.Rect {
	return e.viewport
}

func (e *Engine) updateViewport() {
	e.view.Set("width", e.viewport.Width)
	e.view.Set("height", e.viewport.Height)
	e.view.Set("isLandscape", e.viewport.Width > e.viewport.Height)
}

func (e *Engine) rectValue(r geom.Rect) goja.Value {
	o := e.vm.NewObject()
	o.Set("x", r.X)
	o.Set("y", r.Y)
	o.Set("width", r.Width)
	o.Set("height", r.Height)
	return o
}

func registerConstants(vm *goja.Runtime) {
	scale := vm.NewObject()
	for _, m := range []layout.ScaleMode{layout.ScaleNone, layout.ScaleShowAll, layout.ScaleFill, layout.ScaleCover} {
		scale.Set(exportName(m.String()), m.String())
	}
	vm.Set("CellScale", scale)

	align := vm.NewObject()
	for m := layout.AlignLeftTop; m <= layout.AlignRightBottom; m++ {
		align.Set(exportName(m.String()), m.String())
	}
	vm.Set("CellAlign", align)
}

// exportName turns "showAll" into "ShowAll".
func exportName(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// Compile runs src and keeps its completion value as a configuration
// script. name labels errors.
func (e *Engine) Compile(name, src string) (*Script, error) {
	v, err := e.vm.RunScript(name, src)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, fmt.Errorf("%w: script %s did not produce a configuration", layout.ErrInvalidConfig, name)
	}
	return &Script{engine: e, name: name, value: v}, nil
}

// Script is a compiled configuration.
type Script struct {
	engine *Engine
	name   string
	value  goja.Value
}

// Engine returns the engine the script runs on.
func (s *Script) Engine() *Engine {
	return s.engine
}

// Config evaluates the script's configuration. When the completion value is
// a function it is called again on every Config call.
func (s *Script) Config() (*layout.CellConfig, error) {
	v := s.value
	if fn, ok := goja.AssertFunction(v); ok {
		res, err := fn(goja.Undefined())
		if err != nil {
			return nil, fmt.Errorf("script %s: %w", s.name, err)
		}
		v = res
	}
	cfg, err := s.engine.decode(v)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", s.name, err)
	}
	if err := layout.Validate(cfg); err != nil {
		return nil, fmt.Errorf("script %s: %w", s.name, err)
	}
	return cfg, nil
}
