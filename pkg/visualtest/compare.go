package visualtest

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

// ErrSizeMismatch is returned when the compared images differ in bounds.
var ErrSizeMismatch = errors.New("image dimensions differ")

// CompareResult reports how two renders differ.
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest channel difference seen, 0-255
}

// DiffPercent is the share of differing pixels, 0-100.
func (r *CompareResult) DiffPercent() float64 {
	if r.TotalPixels == 0 {
		return 0
	}
	return float64(r.DifferentPixels) / float64(r.TotalPixels) * 100
}

// CompareOptions configures a comparison.
type CompareOptions struct {
	// Tolerance is the largest per-channel difference (0-255) still counted
	// as equal.
	Tolerance int

	// FuzzyRadius lets a pixel match any expected pixel within this many
	// pixels, absorbing one-pixel shifts of cell edges.
	FuzzyRadius int

	// MaxDifferentPercent accepts the images when at most this share of
	// pixels differs.
	MaxDifferentPercent float64

	// SaveDiffImage writes DiffImagePath on mismatch: differing pixels in
	// red over a grayscale copy of the actual image.
	SaveDiffImage bool
	DiffImagePath string
}

// DefaultOptions allows small rendering differences only.
func DefaultOptions() CompareOptions {
	return CompareOptions{Tolerance: 2}
}

// ReferenceOptions is used against the committed reference images. It
// absorbs anti-aliasing differences at round stroke caps while a cell edge
// that moves by a pixel still fails.
func ReferenceOptions() CompareOptions {
	return CompareOptions{Tolerance: 12, MaxDifferentPercent: 0.1}
}

// CompareImages compares two PNG files.
func CompareImages(actualPath, expectedPath string, opts CompareOptions) (*CompareResult, error) {
	actual, err := loadPNG(actualPath)
	if err != nil {
		return nil, fmt.Errorf("actual image: %w", err)
	}
	expected, err := loadPNG(expectedPath)
	if err != nil {
		return nil, fmt.Errorf("expected image: %w", err)
	}
	return Compare(actual, expected, opts)
}

// Compare compares two decoded images pixel by pixel.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &CompareResult{}, fmt.Errorf("%w: actual=%v, expected=%v", ErrSizeMismatch, bounds, expected.Bounds())
	}
	a, e := asRGBA(actual), asRGBA(expected)

	result := &CompareResult{TotalPixels: bounds.Dx() * bounds.Dy()}
	var diff *image.RGBA
	if opts.SaveDiffImage {
		diff = image.NewRGBA(bounds)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := a.RGBAAt(x, y)
			d := channelDiff(px, e.RGBAAt(x, y))
			result.MaxDifference = max(result.MaxDifference, d)

			same := d <= opts.Tolerance || nearMatch(px, e, x, y, opts)
			if !same {
				result.DifferentPixels++
			}
			if diff != nil {
				diff.SetRGBA(x, y, diffColor(px, same))
			}
		}
	}
	result.Match = result.DifferentPixels == 0 ||
		(opts.MaxDifferentPercent > 0 && result.DiffPercent() <= opts.MaxDifferentPercent)

	if diff != nil && !result.Match && opts.DiffImagePath != "" {
		if err := writePNG(diff, opts.DiffImagePath); err != nil {
			return result, fmt.Errorf("diff image: %w", err)
		}
	}
	return result, nil
}

// nearMatch reports whether px equals, within tolerance, any expected pixel
// in the fuzzy radius around (x, y).
func nearMatch(px color.RGBA, expected *image.RGBA, x, y int, opts CompareOptions) bool {
	r := opts.FuzzyRadius
	if r <= 0 {
		return false
	}
	area := image.Rect(x-r, y-r, x+r+1, y+r+1).Intersect(expected.Bounds())
	for ny := area.Min.Y; ny < area.Max.Y; ny++ {
		for nx := area.Min.X; nx < area.Max.X; nx++ {
			if channelDiff(px, expected.RGBAAt(nx, ny)) <= opts.Tolerance {
				return true
			}
		}
	}
	return false
}

func channelDiff(a, b color.RGBA) int {
	return max(absDiff(a.R, b.R), absDiff(a.G, b.G), absDiff(a.B, b.B), absDiff(a.A, b.A))
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func diffColor(px color.RGBA, same bool) color.RGBA {
	if !same {
		return color.RGBA{R: 255, A: 255}
	}
	return color.RGBA{R: px.R, G: px.R, B: px.R, A: 255}
}

func asRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
