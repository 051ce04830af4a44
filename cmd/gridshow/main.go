package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"cellgrid/pkg/config"
	"cellgrid/pkg/grid"
	"cellgrid/pkg/images"
	"cellgrid/pkg/js"
	"cellgrid/pkg/layout"
	"cellgrid/pkg/resource"
	"cellgrid/pkg/scene"
	"cellgrid/pkg/style"
	"cellgrid/pkg/visualtest"
	stdnet "cellgrid/std/net"
)

// sprites collects repeated -sprite cell=uri flags.
type sprites []sprite

type sprite struct {
	cell, uri string
}

func (s *sprites) String() string {
	parts := make([]string, len(*s))
	for i, sp := range *s {
		parts[i] = sp.cell + "=" + sp.uri
	}
	return strings.Join(parts, ",")
}

func (s *sprites) Set(v string) error {
	cell, uri, ok := strings.Cut(v, "=")
	if !ok || cell == "" || uri == "" {
		return fmt.Errorf("expected cell=uri, got %q", v)
	}
	*s = append(*s, sprite{cell: cell, uri: uri})
	return nil
}

func main() {
	width := flag.Int("w", 800, "viewport width in pixels")
	height := flag.Int("h", 600, "viewport height in pixels")
	output := flag.String("o", "output.png", "output PNG file path")
	labels := flag.Bool("labels", false, "draw cell names")
	background := flag.String("bg", "black", "background color")
	quiet := flag.Bool("q", false, "do not print the cell table")
	var attach sprites
	flag.Var(&attach, "sprite", "attach an image to a cell, as cell=uri (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gridshow [flags] <config.yaml|config.json|config.js>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	uri := flag.Arg(0)
	bg, ok := style.ParseColor(*background)
	if !ok {
		fmt.Fprintf(os.Stderr, "Invalid background color %q\n", *background)
		os.Exit(1)
	}
	logger := log.New(os.Stderr, "", 0)

	engine := js.New(js.WithLogger(logger))
	engine.SetViewport(float64(*width), float64(*height))
	fmt.Fprintf(os.Stderr, "Loading %s...\n", uri)
	src, err := config.Load(uri, nil, engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg, err := src.Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating config: %v\n", err)
		os.Exit(1)
	}

	view := scene.NewView(cfg.Name, cfg, grid.WithLogger(logger))
	if err := view.Resize(float64(*width), float64(*height)); err != nil {
		fmt.Fprintf(os.Stderr, "Error building layout: %v\n", err)
		os.Exit(1)
	}

	// Sprite URIs are relative to the config.
	loader := images.NewLoader(resource.NewFetcher(stdnet.BaseOf(uri)))
	for _, sp := range attach {
		node, err := scene.LoadImage(sp.cell, loader, sp.uri)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading sprite: %v\n", err)
			os.Exit(1)
		}
		if err := view.SetChild(sp.cell, node); err != nil {
			fmt.Fprintf(os.Stderr, "Error attaching sprite: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Fprintf(os.Stderr, "Rendering %dx%d...\n", *width, *height)
	img, err := visualtest.RenderView(view, *width, *height, visualtest.Options{Background: bg, Labels: *labels})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}

	if err := writeImage(*output, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Saved to %s\n", *output)

	if !*quiet {
		fmt.Println(cellTable(view.Grid().Root()))
	}
}

// writeImage encodes img as PNG to path. The file is closed before returning
// on every path.
func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return f.Close()
}

// cellTable renders one row per cell: path, bounds, content area, resolved
// modes, the debug color as a swatch and the number of attached items.
func cellTable(root *layout.Cell) *table.Table {
	var rows [][]string
	var colors []lipgloss.Style
	root.Walk(func(c *layout.Cell) bool {
		swatch, ink := "-", lipgloss.NewStyle()
		if c.Debug != nil {
			swatch = fmt.Sprintf("#%06x", c.Debug.Color)
			ink = ink.Foreground(lipgloss.Color(swatch))
			if c.DebugInherited {
				swatch += " (inherited)"
			}
		}
		rows = append(rows, []string{
			c.Path(),
			c.Bounds.String(),
			c.Area.String(),
			c.Scale.String(),
			c.Align.String(),
			swatch,
			strconv.Itoa(len(c.Contents)),
		})
		colors = append(colors, ink)
		return true
	})

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CELL", "BOUNDS", "AREA", "SCALE", "ALIGN", "DEBUG", "CONTENT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 5 && row >= 0 && row < len(colors):
				return colors[row].Padding(0, 1)
			}
			return cell
		})
}
