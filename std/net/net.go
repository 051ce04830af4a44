package net

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

const userAgent = "cellgrid/1.0 (compatible; Go)"

// httpClient is a shared HTTP client with reasonable timeouts.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Fetch retrieves the content at the given URL via HTTP/HTTPS.
// Returns the response body, content type, and any error.
func Fetch(rawURL string) (body []byte, contentType string, err error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, rawURL)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}

	contentType = resp.Header.Get("Content-Type")
	return body, contentType, nil
}

// ResolveURL resolves a possibly-relative URI against a base URL or
// directory. If ref is already absolute, it is returned as-is.
func ResolveURL(base, ref string) string {
	if !IsNetworkURL(base) {
		if IsNetworkURL(ref) || filepath.IsAbs(FilePath(ref)) {
			return ref
		}
		return filepath.Join(FilePath(base), FilePath(ref))
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// BaseOf returns the base that relative references inside uri resolve
// against: the URL itself for network resources, the containing directory
// for files.
func BaseOf(uri string) string {
	if IsNetworkURL(uri) {
		return uri
	}
	return filepath.Dir(FilePath(uri))
}

// IsNetworkURL returns true if the string looks like an HTTP or HTTPS URL.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// FilePath strips a file:// scheme, leaving plain paths alone.
func FilePath(s string) string {
	return strings.TrimPrefix(s, "file://")
}

// Ext returns the lower-cased extension of a URL or path, ignoring any query
// string or fragment.
func Ext(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 && IsNetworkURL(s) {
		s = s[:i]
	}
	return strings.ToLower(filepath.Ext(s))
}
