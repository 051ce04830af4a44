package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"cellgrid/pkg/config"
	"cellgrid/pkg/grid"
	"cellgrid/pkg/images"
	"cellgrid/pkg/js"
	"cellgrid/pkg/resource"
	"cellgrid/pkg/scene"
	stdnet "cellgrid/std/net"
)

func main() {
	width := flag.Int("w", 1024, "initial window width")
	height := flag.Int("h", 768, "initial window height")
	labels := flag.Bool("labels", true, "draw cell names")
	var attach []string
	flag.Func("sprite", "attach an image to a cell, as cell=uri (repeatable)", func(v string) error {
		attach = append(attach, v)
		return nil
	})
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gridview [flags] <config.yaml|config.json|config.js>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	uri := flag.Arg(0)
	logger := log.New(os.Stderr, "", 0)

	engine := js.New(js.WithLogger(logger))
	engine.SetViewport(float64(*width), float64(*height))
	src, err := config.Load(uri, nil, engine)
	if err != nil {
		logger.Fatalf("Error loading config: %v", err)
	}
	cfg, err := src.Config()
	if err != nil {
		logger.Fatalf("Error evaluating config: %v", err)
	}

	loader := images.NewLoader(resource.NewFetcher(stdnet.BaseOf(uri)))

	a := app.New()
	w := a.NewWindow("gridview - " + uri)
	w.Resize(fyne.NewSize(float32(*width), float32(*height)))

	status := widget.NewLabel("")
	v := newViewer(src, engine, scene.NewView(cfg.Name, cfg, grid.WithLogger(logger)), *labels)
	v.onStatus = func(text string) {
		fyne.Do(func() { status.SetText(text) })
	}
	if err := v.resize(*width, *height); err != nil {
		logger.Fatalf("Error building layout: %v", err)
	}
	for _, arg := range attach {
		if err := v.attach(loader, arg); err != nil {
			logger.Fatalf("Error attaching sprite: %v", err)
		}
	}

	// The raster regenerates on every resize; each frame re-evaluates the
	// config for the new viewport and rebuilds the grid.
	raster := canvas.NewRaster(v.frame)
	w.SetContent(container.NewBorder(nil, status, nil, nil, raster))
	w.ShowAndRun()
}
