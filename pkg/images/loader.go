// Package images decodes and caches the images sprites are built from.
package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"
	"sync"

	"cellgrid/pkg/geom"
	"cellgrid/pkg/resource"
)

// Loader fetches images through a resource.Fetcher and caches them by URI.
// It is safe for concurrent use.
type Loader struct {
	fetcher resource.Fetcher
	cache   map[string]image.Image
	mu      sync.RWMutex
}

// NewLoader creates a Loader. A nil fetcher reads local files and http(s)
// URLs.
func NewLoader(f resource.Fetcher) *Loader {
	if f == nil {
		f = resource.NewFetcher("")
	}
	return &Loader{fetcher: f, cache: make(map[string]image.Image)}
}

// Load returns the decoded image at uri. Data URIs are decoded in place.
func (l *Loader) Load(uri string) (image.Image, error) {
	l.mu.RLock()
	if img, ok := l.cache[uri]; ok {
		l.mu.RUnlock()
		return img, nil
	}
	l.mu.RUnlock()

	var (
		img image.Image
		err error
	)
	if IsDataURI(uri) {
		img, err = DecodeDataURI(uri)
	} else {
		var data []byte
		data, err = resource.FetchImage(l.fetcher, uri)
		if err == nil {
			img, _, err = image.Decode(bytes.NewReader(data))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", abbreviate(uri), err)
	}

	l.mu.Lock()
	l.cache[uri] = img
	l.mu.Unlock()
	return img, nil
}

// Size returns the pixel dimensions of the image at uri.
func (l *Loader) Size(uri string) (geom.Size, error) {
	img, err := l.Load(uri)
	if err != nil {
		return geom.Size{}, err
	}
	return SizeOf(img), nil
}

// SizeOf returns the pixel dimensions of img.
func SizeOf(img image.Image) geom.Size {
	b := img.Bounds()
	return geom.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// IsDataURI reports whether uri carries its data inline.
func IsDataURI(uri string) bool {
	return strings.HasPrefix(uri, "data:")
}

// DecodeDataURI decodes a base64 or percent-encoded image data URI.
func DecodeDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("data URI has no payload")
	}

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		var err error
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data URI: %w", err)
		}
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("data URI: %w", err)
		}
		data = []byte(s)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("data URI: %w", err)
	}
	return img, nil
}

func abbreviate(uri string) string {
	if IsDataURI(uri) && len(uri) > 32 {
		return uri[:32] + "..."
	}
	return uri
}
