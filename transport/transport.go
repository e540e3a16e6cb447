// Package transport acquires blob/text bytes for a source URL, with HTTP as
// the default transport, an S3-compatible fallback for `s3://` sources, and
// an optional Redis cache layer keyed by source URL (spec §4.H step 1,
// §6 "cache" feed option, §7 "Transport" error category).
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher acquires the raw bytes behind a source URL. FetchText is a
// convenience for text-ish sources (CSV/JSON/XML); FetchBlob is used by the
// Parquet pipeline, which needs the untouched bytes.
type Fetcher interface {
	FetchBlob(ctx context.Context, source string) ([]byte, error)
	FetchText(ctx context.Context, source string) (string, error)
}

// HTTPFetcher is the default Fetcher: it dispatches s3:// sources to an S3
// client (when configured) and everything else over HTTP(S).
type HTTPFetcher struct {
	Client *http.Client
	S3     *S3Fetcher // optional; nil disables s3:// support
	Cache  *CacheFetcher // optional read-through cache wrapping this fetcher
}

// NewHTTPFetcher builds a default HTTPFetcher with a bounded request
// timeout, using an explicit *http.Client rather than http.DefaultClient.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{Client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) FetchBlob(ctx context.Context, source string) ([]byte, error) {
	if f.Cache != nil {
		if data, ok := f.Cache.Get(ctx, source); ok {
			return data, nil
		}
	}

	data, err := f.fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	if f.Cache != nil {
		f.Cache.Set(ctx, source, data)
	}
	return data, nil
}

func (f *HTTPFetcher) FetchText(ctx context.Context, source string) (string, error) {
	data, err := f.FetchBlob(ctx, source)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *HTTPFetcher) fetch(ctx context.Context, source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("transport: parsing source URL: %w", err)
	}

	if u.Scheme == "s3" {
		if f.S3 == nil {
			return nil, fmt.Errorf("transport: s3:// source requested but no S3 fetcher configured: %s", source)
		}
		return f.S3.FetchBlob(ctx, source)
	}

	return f.fetchHTTP(ctx, source)
}

func (f *HTTPFetcher) fetchHTTP(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: building request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: fetching %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("transport: %s returned status %d", source, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: reading response body: %w", err)
	}
	return data, nil
}

// parseS3URL splits an "s3://bucket/key" source into bucket and key.
func parseS3URL(source string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(source, "s3://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("transport: malformed s3 source %q, expected s3://bucket/key", source)
	}
	return parts[0], parts[1], nil
}
