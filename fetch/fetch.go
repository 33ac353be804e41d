// Package fetch performs plain HTTP retrieval with browser-like headers
// and transparent response decompression.
package fetch

import (
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

var client = &http.Client{Timeout: 30 * time.Second}

// Get fetches a URL and returns the decompressed response body. It sends
// browser-like headers so that sites serving compressed or bot-filtered
// responses behave as they would for a regular visitor.
func Get(url string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:135.0) Gecko/20100101 Firefox/135.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	var body []byte
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		body, err = io.ReadAll(gzipReader)
		if err != nil {
			return nil, err
		}
	case "deflate":
		flateReader := flate.NewReader(resp.Body)
		defer flateReader.Close()
		body, err = io.ReadAll(flateReader)
	case "br":
		brReader := brotli.NewReader(resp.Body)
		body, err = io.ReadAll(brReader)
	case "zstd":
		zstdReader, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer zstdReader.Close()
		body, err = io.ReadAll(zstdReader)
		if err != nil {
			return nil, err
		}
	default:
		body, err = io.ReadAll(resp.Body)
	}
	if err != nil {
		return nil, err
	}

	return body, nil
}
