package playlist

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ErrSourceUnavailable marks a playlist source that could not be opened or
// downloaded. Callers keep any previously generated output untouched.
var ErrSourceUnavailable = errors.New("playlist source unavailable")

// Source loads playlist content from a local path or an HTTP(S) URL.
type Source struct {
	httpClient *http.Client
	userAgent  string
}

func NewSource(httpClient *http.Client, userAgent string) *Source {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Source{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Load opens the playlist. Gzip payloads are detected by their magic bytes
// and decompressed transparently. The caller closes the returned reader.
func (s *Source) Load(ctx context.Context, pathOrURL string) (io.ReadCloser, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return s.fetch(ctx, pathOrURL)
	}

	f, err := os.Open(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return decompress(f)
}

func (s *Source) fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	// create the request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	// execute the request
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: http status code: %d", ErrSourceUnavailable, resp.StatusCode)
	}

	return decompress(resp.Body)
}

// decompress peeks at the first bytes and unwraps a gzip stream when the
// 0x1f 0x8b magic shows up. Some playlist hosts serve .m3u.gz without a
// matching Content-Encoding header.
func decompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		return &gzipReadCloser{zr: zr, under: rc}, nil
	}
	// short or empty payloads fall through to the plain reader
	return &bufferedReadCloser{br: br, under: rc}, nil
}

type gzipReadCloser struct {
	zr    *gzip.Reader
	under io.ReadCloser
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipReadCloser) Close() error {
	if err := g.zr.Close(); err != nil {
		g.under.Close()
		return err
	}
	return g.under.Close()
}

type bufferedReadCloser struct {
	br    *bufio.Reader
	under io.ReadCloser
}

func (b *bufferedReadCloser) Read(p []byte) (int, error) { return b.br.Read(p) }

func (b *bufferedReadCloser) Close() error { return b.under.Close() }
