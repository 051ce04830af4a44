package images

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"cellgrid/pkg/geom"
	"cellgrid/pkg/resource"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	red := color.RGBA{255, 0, 0, 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, red)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// createTestPNGDataURI creates a small red PNG as a data URI.
func createTestPNGDataURI(t *testing.T) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(testPNG(t, 2, 2))
}

// countingFetcher serves a single file and counts requests.
type countingFetcher struct {
	data  []byte
	calls int
}

func (f *countingFetcher) Fetch(uri string) ([]byte, string, error) {
	f.calls++
	return f.data, "image/png", nil
}

func TestIsDataURI(t *testing.T) {
	if !IsDataURI("data:image/png;base64,abc") {
		t.Error("expected true for data URI")
	}
	if IsDataURI("/path/to/file.png") {
		t.Error("expected false for file path")
	}
	if IsDataURI("") {
		t.Error("expected false for empty string")
	}
}

func TestDecodeDataURI(t *testing.T) {
	img, err := DecodeDataURI(createTestPNGDataURI(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := SizeOf(img); got != (geom.Size{Width: 2, Height: 2}) {
		t.Errorf("expected 2x2 image, got %v", got)
	}
}

func TestDecodeDataURI_Invalid(t *testing.T) {
	tests := []string{
		"not-a-data-uri",
		"data:image/png;base64", // no comma
		"data:image/png;base64,!!!invalid-base64!!!",
		"data:image/png;base64,aGVsbG8=", // valid base64 but not an image
	}
	for _, uri := range tests {
		if _, err := DecodeDataURI(uri); err == nil {
			t.Errorf("expected error for %q", uri)
		}
	}
}

func TestLoader_CachesByURI(t *testing.T) {
	f := &countingFetcher{data: testPNG(t, 3, 5)}
	l := NewLoader(f)

	img, err := l.Load("sprite.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img2, err := l.Load("sprite.png")
	if err != nil {
		t.Fatalf("unexpected error on cached load: %v", err)
	}
	if img != img2 {
		t.Error("expected cached image to be the same value")
	}
	if f.calls != 1 {
		t.Errorf("expected one fetch, got %d", f.calls)
	}

	size, err := l.Size("sprite.png")
	if err != nil {
		t.Fatal(err)
	}
	if size != (geom.Size{Width: 3, Height: 5}) {
		t.Errorf("expected 3x5, got %v", size)
	}
}

func TestLoader_DataURIBypassesFetcher(t *testing.T) {
	f := &countingFetcher{}
	l := NewLoader(f)
	size, err := l.Size(createTestPNGDataURI(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size.Width != 2 || size.Height != 2 || f.calls != 0 {
		t.Errorf("expected a 2x2 image without fetching, got %v after %d fetches", size, f.calls)
	}
}

func TestLoader_LocalFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.png"), testPNG(t, 4, 1), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader(resource.NewFetcher(dir))
	size, err := l.Size("a.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size.Width != 4 || size.Height != 1 {
		t.Errorf("expected 4x1, got %v", size)
	}
	if _, err := l.Load("missing.png"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
