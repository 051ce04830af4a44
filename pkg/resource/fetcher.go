package resource

import (
	"fmt"
	"mime"
	"os"
	"strings"

	stdnet "cellgrid/std/net"
)

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(uri string) (body []byte, contentType string, err error)
}

// DefaultFetcher fetches resources over HTTP/HTTPS or from the local
// filesystem, resolving relative URIs against a base URL or directory.
type DefaultFetcher struct {
	baseURL string
}

// NewFetcher creates a DefaultFetcher with the given base URL or directory.
// Relative URIs passed to Fetch will be resolved against this base.
func NewFetcher(baseURL string) *DefaultFetcher {
	return &DefaultFetcher{baseURL: baseURL}
}

// Fetch retrieves the resource at the given URI.
// Relative URIs are resolved against the fetcher's base URL.
func (f *DefaultFetcher) Fetch(uri string) ([]byte, string, error) {
	resolved := uri
	if !stdnet.IsNetworkURL(uri) && f.baseURL != "" {
		resolved = stdnet.ResolveURL(f.baseURL, uri)
	}
	if stdnet.IsNetworkURL(resolved) {
		return stdnet.Fetch(resolved)
	}

	path := stdnet.FilePath(resolved)
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return body, mime.TypeByExtension(stdnet.Ext(path)), nil
}

// FetchText fetches a configuration document and returns its text.
// Returns an error if the content type is clearly not text.
func FetchText(f Fetcher, uri string) (string, error) {
	body, contentType, err := f.Fetch(uri)
	if err != nil {
		return "", err
	}
	ct := strings.ToLower(contentType)
	if ct != "" && !strings.HasPrefix(ct, "text/") && !isTextApplication(ct) {
		return "", fmt.Errorf("unexpected content type for %s: %s", uri, contentType)
	}
	return string(body), nil
}

func isTextApplication(ct string) bool {
	for _, s := range []string{"json", "yaml", "javascript", "ecmascript"} {
		if strings.Contains(ct, s) {
			return true
		}
	}
	return false
}

// FetchImage fetches an image URI and returns its raw bytes.
func FetchImage(f Fetcher, uri string) ([]byte, error) {
	body, _, err := f.Fetch(uri)
	if err != nil {
		return nil, err
	}
	return body, nil
}
