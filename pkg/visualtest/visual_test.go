package visualtest

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"cellgrid/pkg/layout"
)

// boxConfig is a stroked root holding one filled cell whose content area is
// inset by pad.
func boxConfig(pad float64) *layout.CellConfig {
	return &layout.CellConfig{
		Name:  "root",
		Debug: &layout.Debug{Color: 0xffffff},
		Cells: []*layout.CellConfig{{
			Name:    "box",
			Debug:   &layout.Debug{Color: 0x5bc8a1, Fill: true},
			Padding: layout.Uniform(pad),
		}},
	}
}

// columnConfig places a stroked 100px column x units from the left.
func columnConfig(x float64) *layout.CellConfig {
	return &layout.CellConfig{
		Name: "root",
		Cells: []*layout.CellConfig{{
			Name:   "column",
			Bounds: layout.Bounds{X: layout.Px(x), Y: layout.Px(20), Width: layout.Px(100), Height: layout.Px(100)},
			Debug:  &layout.Debug{Color: 0xffcc00},
		}},
	}
}

func renderOverlay(t *testing.T, cfg *layout.CellConfig, w, h int) image.Image {
	t.Helper()
	img, err := RenderConfig(cfg, w, h, Options{})
	if err != nil {
		t.Fatalf("render %s: %v", cfg.Name, err)
	}
	return img
}

func TestCompare_SameConfigMatches(t *testing.T) {
	result, err := Compare(renderOverlay(t, boxConfig(0.1), 200, 150), renderOverlay(t, boxConfig(0.1), 200, 150), DefaultOptions())
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match || result.DifferentPixels != 0 {
		t.Errorf("expected identical overlays, %d pixels differ", result.DifferentPixels)
	}
	if result.TotalPixels != 200*150 {
		t.Errorf("expected %d pixels, got %d", 200*150, result.TotalPixels)
	}
}

func TestCompare_PaddingChangeFails(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.SaveDiffImage = true
	opts.DiffImagePath = filepath.Join(dir, "diff", "padding.png")

	// The area moves from (20,15 160x120) to (40,30 120x90).
	result, err := Compare(renderOverlay(t, boxConfig(0.1), 200, 150), renderOverlay(t, boxConfig(0.2), 200, 150), opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if result.Match {
		t.Fatal("expected overlays with different padding not to match")
	}
	if result.MaxDifference < 100 {
		t.Errorf("expected a large channel difference, got %d", result.MaxDifference)
	}

	diff, err := loadPNG(opts.DiffImagePath)
	if err != nil {
		t.Fatalf("diff image was not written: %v", err)
	}
	if r, g, b := RGBAt(diff, 20, 75); r != 255 || g != 0 || b != 0 {
		t.Errorf("expected the old area edge marked red, got (%d,%d,%d)", r, g, b)
	}
	if r, g, b := RGBAt(diff, 100, 75); r == 255 && g == 0 && b == 0 {
		t.Errorf("expected the shared interior to match")
	}
}

func TestCompare_Tolerance(t *testing.T) {
	base := asRGBA(renderOverlay(t, boxConfig(0.1), 200, 150))
	shifted := image.NewRGBA(base.Bounds())
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			c := base.RGBAAt(x, y)
			if c.G <= 253 {
				c.G += 2
			}
			shifted.SetRGBA(x, y, c)
		}
	}

	opts := DefaultOptions()
	opts.Tolerance = 2
	if result, err := Compare(shifted, base, opts); err != nil || !result.Match {
		t.Errorf("expected a match with tolerance 2, got %+v (%v)", result, err)
	}
	opts.Tolerance = 0
	if result, err := Compare(shifted, base, opts); err != nil || result.Match {
		t.Errorf("expected a mismatch with tolerance 0, got %+v (%v)", result, err)
	}
}

func TestCompare_FuzzyRadiusAbsorbsOnePixelShift(t *testing.T) {
	a, b := renderOverlay(t, columnConfig(41), 200, 150), renderOverlay(t, columnConfig(40), 200, 150)

	strict, err := Compare(a, b, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if strict.Match {
		t.Fatal("expected a one pixel shift to differ without fuzzy matching")
	}

	opts := DefaultOptions()
	opts.FuzzyRadius = 1
	fuzzy, err := Compare(a, b, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !fuzzy.Match {
		t.Errorf("expected fuzzy radius 1 to absorb the shift, %d pixels differ", fuzzy.DifferentPixels)
	}
}

func TestCompare_MaxDifferentPercent(t *testing.T) {
	a, b := renderOverlay(t, columnConfig(41), 200, 150), renderOverlay(t, columnConfig(40), 200, 150)
	strict, err := Compare(a, b, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	opts := DefaultOptions()
	opts.MaxDifferentPercent = strict.DiffPercent() + 0.01
	result, err := Compare(a, b, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Match {
		t.Errorf("expected %.2f%% differing pixels to be accepted", strict.DiffPercent())
	}

	opts.MaxDifferentPercent = strict.DiffPercent() / 2
	if result, _ := Compare(a, b, opts); result.Match {
		t.Errorf("expected a half budget to reject the shift")
	}
}

func TestCompare_DifferentDimensions(t *testing.T) {
	result, err := Compare(renderOverlay(t, boxConfig(0.1), 200, 150), renderOverlay(t, boxConfig(0.1), 100, 75), DefaultOptions())
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
	if result != nil && result.Match {
		t.Errorf("expected renders of different sizes not to match")
	}
}

func TestCompareImages_Files(t *testing.T) {
	dir := t.TempDir()
	narrow := filepath.Join(dir, "narrow.png")
	wide := filepath.Join(dir, "wide.png")
	if err := RenderConfigToFile(boxConfig(0.2), narrow, 200, 150); err != nil {
		t.Fatal(err)
	}
	if err := RenderConfigToFile(boxConfig(0.05), wide, 200, 150); err != nil {
		t.Fatal(err)
	}

	if result, err := CompareImages(narrow, narrow, DefaultOptions()); err != nil || !result.Match {
		t.Errorf("expected a file to match itself, got %+v (%v)", result, err)
	}
	if result, err := CompareImages(narrow, wide, DefaultOptions()); err != nil || result.Match {
		t.Errorf("expected different paddings to differ, got %+v (%v)", result, err)
	}
	if _, err := CompareImages(filepath.Join(dir, "missing.png"), wide, DefaultOptions()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a missing file error, got %v", err)
	}
}
