package visualtest

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"cellgrid/pkg/config"
	"cellgrid/pkg/js"
	"cellgrid/pkg/layout"
	"cellgrid/pkg/render"
	"cellgrid/pkg/scene"
)

// Options controls how a view is rendered.
type Options struct {
	Background uint32
	Labels     bool
}

// RenderView lays v out at width x height, draws its scene and then the
// debug overlay of its grid on top.
func RenderView(v *scene.View, width, height int, opts Options) (image.Image, error) {
	if err := v.Resize(float64(width), float64(height)); err != nil {
		return nil, fmt.Errorf("layout error: %w", err)
	}
	r := render.NewRenderer(width, height)
	r.SetLabels(opts.Labels)
	r.Clear(opts.Background)
	scene.Draw(r, v.Node)
	r.Render(v.Grid().Overlay())
	return r.Image(), nil
}

// RenderConfig renders the overlay of cfg without content.
func RenderConfig(cfg *layout.CellConfig, width, height int, opts Options) (image.Image, error) {
	return RenderView(scene.NewView(cfg.Name, cfg), width, height, opts)
}

// RenderConfigToFile renders cfg to a PNG file.
func RenderConfigToFile(cfg *layout.CellConfig, outputPath string, width, height int) error {
	img, err := RenderConfig(cfg, width, height, Options{})
	if err != nil {
		return err
	}
	return writePNG(img, outputPath)
}

// RenderFile loads a YAML, JSON or JS configuration and renders it to a PNG
// file. Scripts see a viewport of width x height.
func RenderFile(configPath, outputPath string, width, height int) error {
	engine := js.New()
	engine.SetViewport(float64(width), float64(height))
	src, err := config.Load(configPath, nil, engine)
	if err != nil {
		return err
	}
	cfg, err := src.Config()
	if err != nil {
		return err
	}
	return RenderConfigToFile(cfg, outputPath, width, height)
}

// UpdateReferenceImage generates a new reference image.
// Use this when you've intentionally changed rendering behavior
func UpdateReferenceImage(configPath, referencePath string, width, height int) error {
	fmt.Printf("Updating reference image: %s\n", referencePath)
	return RenderFile(configPath, referencePath, width, height)
}

func writePNG(img image.Image, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("save error: %w", err)
	}
	return f.Close()
}

// RGBAt returns the 8-bit color channels at (x, y).
func RGBAt(img image.Image, x, y int) (r, g, b uint8) {
	cr, cg, cb, _ := img.At(x, y).RGBA()
	return uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8)
}

// Reference pairs a configuration with its expected rendering.
type Reference struct {
	Config string
	Image  string
	Width  int
	Height int
}

// References lists the YAML, JSON and JS configurations in dir. Reference
// images live in dir/reference/<name>.png and are rendered at 800x600.
func References(dir string) ([]Reference, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var refs []Reference
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		switch ext {
		case ".yaml", ".yml", ".json", ".js":
		default:
			continue
		}
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		refs = append(refs, Reference{
			Config: filepath.Join(dir, e.Name()),
			Image:  filepath.Join(dir, "reference", name+".png"),
			Width:  800,
			Height: 600,
		})
	}
	return refs, nil
}
