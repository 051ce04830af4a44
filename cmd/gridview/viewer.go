package main

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"cellgrid/pkg/config"
	"cellgrid/pkg/geom"
	"cellgrid/pkg/images"
	"cellgrid/pkg/js"
	"cellgrid/pkg/render"
	"cellgrid/pkg/scene"
)

// viewer owns the layout state of the window. frame runs on fyne's render
// goroutine; the mutex serializes it with setup calls.
type viewer struct {
	mu       sync.Mutex
	src      config.Source
	engine   *js.Engine
	view     *scene.View
	labels   bool
	onStatus func(string)

	width, height int
	last          image.Image
}

func newViewer(src config.Source, engine *js.Engine, view *scene.View, labels bool) *viewer {
	return &viewer{src: src, engine: engine, view: view, labels: labels}
}

// resize re-evaluates the config for a w x h viewport and rebuilds the grid,
// keeping attached sprites placed.
func (v *viewer) resize(w, h int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.relayout(w, h)
}

func (v *viewer) relayout(w, h int) error {
	v.engine.SetViewport(float64(w), float64(h))
	cfg, err := v.src.Config()
	if err != nil {
		return err
	}
	v.view.Grid().SetViewport(func() geom.Rect { return geom.XYWH(0, 0, float64(w), float64(h)) })
	if err := v.view.Rebuild(cfg); err != nil {
		return err
	}
	v.width, v.height = w, h

	orientation := "portrait"
	if w > h {
		orientation = "landscape"
	}
	v.status(fmt.Sprintf("%dx%d %s, %d cells, %d orphaned", w, h, orientation,
		len(v.view.Grid().Root().Cells()), len(v.view.Grid().Orphans())))
	return nil
}

// attach loads arg ("cell=uri") and attaches the image to the cell.
func (v *viewer) attach(l *images.Loader, arg string) error {
	cell, uri, ok := strings.Cut(arg, "=")
	if !ok || cell == "" || uri == "" {
		return fmt.Errorf("expected cell=uri, got %q", arg)
	}
	node, err := scene.LoadImage(cell, l, uri)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.view.SetChild(cell, node)
}

// frame is the raster generator. A failed relayout keeps the previous
// layout and reports the error in the status line.
func (v *viewer) frame(w, h int) image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()

	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	if w != v.width || h != v.height || v.last == nil {
		if err := v.relayout(w, h); err != nil {
			v.status("layout error: " + err.Error())
		}
	}

	r := render.NewRenderer(w, h)
	r.SetLabels(v.labels)
	r.Clear(0x202020)
	scene.Draw(r, v.view.Node)
	r.Render(v.view.Grid().Overlay())
	v.last = r.Image()
	return v.last
}

func (v *viewer) status(text string) {
	if v.onStatus != nil {
		v.onStatus(text)
	}
}
