package main

import (
	"io"
	"log"
	"strings"
	"testing"

	"cellgrid/pkg/config"
	"cellgrid/pkg/grid"
	"cellgrid/pkg/js"
	"cellgrid/pkg/scene"
)

func newTestViewer(t *testing.T, uri string) (*viewer, *[]string) {
	t.Helper()
	engine := js.New(js.WithLogger(log.New(io.Discard, "", 0)))
	src, err := config.Load(uri, nil, engine)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := src.Config()
	if err != nil {
		t.Fatal(err)
	}
	view := scene.NewView(cfg.Name, cfg, grid.WithLogger(log.New(io.Discard, "", 0)))
	v := newViewer(src, engine, view, false)
	var lines []string
	v.onStatus = func(s string) { lines = append(lines, s) }
	return v, &lines
}

func TestViewer_FrameFollowsWindowSize(t *testing.T) {
	v, lines := newTestViewer(t, "../../pkg/config/testdata/ui.yaml")

	img := v.frame(400, 300)
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("unexpected frame size %v", b)
	}
	area, err := v.view.Grid().CellBoundsByName("ui_4")
	if err != nil {
		t.Fatal(err)
	}
	if area.Y != 225 || area.Height != 75 {
		t.Errorf("unexpected ui_4 bounds %v", area)
	}

	v.frame(400, 300)
	if len(*lines) != 1 {
		t.Errorf("an unchanged size must not relayout, got %v", *lines)
	}
	v.frame(800, 600)
	if len(*lines) != 2 || !strings.HasPrefix((*lines)[1], "800x600 landscape") {
		t.Errorf("unexpected status %v", *lines)
	}
}

func TestViewer_ScriptSwitchesOrientation(t *testing.T) {
	v, _ := newTestViewer(t, "../../pkg/config/testdata/main.js")

	if err := v.resize(1200, 800); err != nil {
		t.Fatal(err)
	}
	if _, err := v.view.Cell("main_3"); err != nil {
		t.Errorf("landscape layout must have main_3: %v", err)
	}
	if err := v.resize(800, 1200); err != nil {
		t.Fatal(err)
	}
	if _, err := v.view.Cell("main_3"); err == nil {
		t.Error("portrait layout must not have main_3")
	}
}

func TestViewer_AttachRejectsBadSpec(t *testing.T) {
	v, _ := newTestViewer(t, "../../pkg/config/testdata/ui.yaml")
	if err := v.attach(nil, "ui_4"); err == nil {
		t.Error("expected an error for an argument without a uri")
	}
}
