package playlist

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlaylist = "#EXTM3U\n#EXTINF:-1 tvg-id=\"globo.br\",Globo\nhttp://stream.example/globo\n"

func gzipped(t *testing.T, content string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestSourceLoadHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(samplePlaylist))
	}))
	defer server.Close()

	source := NewSource(server.Client(), "test-agent/1.0")
	rc, err := source.Load(context.Background(), server.URL)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, samplePlaylist, string(content))
}

func TestSourceLoadHTTPGzip(t *testing.T) {
	// gzip payload without a Content-Encoding header
	payload := gzipped(t, samplePlaylist)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	source := NewSource(server.Client(), "")
	rc, err := source.Load(context.Background(), server.URL)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, samplePlaylist, string(content))
}

func TestSourceLoadHTTPStatusNotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	source := NewSource(server.Client(), "")
	_, err := source.Load(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestSourceLoadHTTPUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	source := NewSource(nil, "")
	_, err := source.Load(context.Background(), serverURL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestSourceLoadLocalFile(t *testing.T) {
	fPath := filepath.Join(t.TempDir(), "lista.m3u")
	require.NoError(t, os.WriteFile(fPath, []byte(samplePlaylist), 0644))

	source := NewSource(nil, "")
	rc, err := source.Load(context.Background(), fPath)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, samplePlaylist, string(content))
}

func TestSourceLoadLocalFileGzip(t *testing.T) {
	fPath := filepath.Join(t.TempDir(), "lista.m3u.gz")
	require.NoError(t, os.WriteFile(fPath, gzipped(t, samplePlaylist), 0644))

	source := NewSource(nil, "")
	rc, err := source.Load(context.Background(), fPath)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, samplePlaylist, string(content))
}

func TestSourceLoadMissingFile(t *testing.T) {
	source := NewSource(nil, "")
	_, err := source.Load(context.Background(), filepath.Join(t.TempDir(), "nao-existe.m3u"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestSourceLoadEmptyFile(t *testing.T) {
	fPath := filepath.Join(t.TempDir(), "vazia.m3u")
	require.NoError(t, os.WriteFile(fPath, nil, 0644))

	source := NewSource(nil, "")
	rc, err := source.Load(context.Background(), fPath)
	require.NoError(t, err)
	defer rc.Close()

	channels, err := Parse(rc)
	require.NoError(t, err)
	assert.Empty(t, channels)
}
