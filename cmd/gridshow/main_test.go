package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cellgrid/pkg/geom"
	"cellgrid/pkg/layout"
)

func TestSpritesFlag(t *testing.T) {
	var s sprites
	for _, v := range []string{"ui_4=pixel.png", "main/top=http://example.com/a.png"} {
		if err := s.Set(v); err != nil {
			t.Fatalf("Set(%q): %v", v, err)
		}
	}
	if len(s) != 2 || s[1].cell != "main/top" || s[1].uri != "http://example.com/a.png" {
		t.Errorf("unexpected sprites %+v", s)
	}
	if got := s.String(); got != "ui_4=pixel.png,main/top=http://example.com/a.png" {
		t.Errorf("unexpected String %q", got)
	}
	for _, bad := range []string{"ui_4", "=a.png", "ui_4="} {
		if err := s.Set(bad); err == nil {
			t.Errorf("expected an error for %q", bad)
		}
	}
}

func TestCellTable(t *testing.T) {
	cfg := &layout.CellConfig{
		Name:  "ui",
		Debug: &layout.Debug{Color: 0xffffff},
		Cells: []*layout.CellConfig{
			{Name: "top", Bounds: layout.Bounds{Height: layout.Val(0.5)}, Debug: &layout.Debug{Color: 0x5bc8a1}},
			{Name: "bottom"},
		},
	}
	root, err := layout.BuildTree(cfg, geom.XYWH(0, 0, 100, 100), nil)
	if err != nil {
		t.Fatal(err)
	}
	out := cellTable(root).String()
	for _, want := range []string{"ui/top", "#5bc8a1", "ui/bottom", "#ffffff (inherited)", "(0,50 100x50)", "showAll"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in\n%s", want, out)
		}
	}
}

func TestWriteImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	out := filepath.Join(t.TempDir(), "out.png")
	if err := writeImage(out, img); err != nil {
		t.Fatalf("writeImage: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("expected a complete PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
	if r, _, _, _ := decoded.At(1, 1).RGBA(); r>>8 != 255 {
		t.Errorf("expected the red pixel to survive, got red=%d", r>>8)
	}

	if err := writeImage(filepath.Join(t.TempDir(), "missing", "out.png"), img); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
