package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_FetchBlob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello world"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(2 * time.Second)
	data, err := f.FetchBlob(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestHTTPFetcher_FetchText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("csv,data"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(0)
	text, err := f.FetchText(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "csv,data", text)
}

func TestHTTPFetcher_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(0)
	_, err := f.FetchBlob(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestHTTPFetcher_S3SchemeWithoutFetcherConfiguredErrors(t *testing.T) {
	f := NewHTTPFetcher(0)
	_, err := f.FetchBlob(context.Background(), "s3://bucket/key.parquet")
	assert.Error(t, err)
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := parseS3URL("s3://my-bucket/path/to/file.parquet")
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", bucket)
	assert.Equal(t, "path/to/file.parquet", key)
}

func TestParseS3URL_Malformed(t *testing.T) {
	_, _, err := parseS3URL("s3://bucket-only")
	assert.Error(t, err)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "ixdata:blob:https://example.com/a.csv", cacheKey("https://example.com/a.csv"))
}
