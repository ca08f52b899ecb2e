// Package fetch streams remote archives to disk with redirect
// following, progress reporting, and partial-file cleanup.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
)

// MaxRedirects caps how many Location hops a single fetch will follow
const MaxRedirects = 10

// Errors
var (
	ErrTooManyRedirects = errors.New("redirect chain exceeded limit")
)

// BadStatusError reports a non-success terminal HTTP response
type BadStatusError struct {
	StatusCode int
}

func (e *BadStatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
}

// ProgressFunc receives transfer progress. percent is 0-100 and
// non-decreasing, or -1 throughout when the server sent no
// Content-Length.
type ProgressFunc func(percent int, received, total int64)

// Fetcher downloads archives over HTTP
type Fetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher. Redirects are handled manually so the
// chain can be bounded and logged.
func NewFetcher(logger *slog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger.With(slog.String("component", "fetch")),
	}
}

// Fetch streams the resource at url into destPath. The body goes
// straight to disk, so memory use is bounded regardless of archive
// size. On any error, including cancellation, the partial destination
// file is removed before returning.
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string, onProgress ProgressFunc) error {
	resp, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	file, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}

	if err := copyBody(file, resp, onProgress); err != nil {
		_ = file.Close()
		f.discardPartial(destPath)
		return err
	}

	if err := file.Close(); err != nil {
		f.discardPartial(destPath)
		return fmt.Errorf("close %s: %w", destPath, err)
	}

	f.logger.Info("archive downloaded",
		slog.String("url", url),
		slog.String("dest", destPath))
	return nil
}

// get issues the request, following 301/302/307/308 responses by hand
// up to MaxRedirects hops.
func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	for hop := 0; hop <= MaxRedirects; hop++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := f.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request %s: %w", url, err)
		}

		switch resp.StatusCode {
		case http.StatusMovedPermanently, http.StatusFound,
			http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
			location := resp.Header.Get("Location")
			_ = resp.Body.Close()
			if location == "" {
				return nil, fmt.Errorf("redirect from %s carried no Location", url)
			}
			next, err := resp.Request.URL.Parse(location)
			if err != nil {
				return nil, fmt.Errorf("bad redirect target %q: %w", location, err)
			}
			url = next.String()
			f.logger.Debug("following redirect", slog.String("url", url))
			continue
		}

		if resp.StatusCode != http.StatusOK {
			code := resp.StatusCode
			_ = resp.Body.Close()
			return nil, &BadStatusError{StatusCode: code}
		}
		return resp, nil
	}
	return nil, ErrTooManyRedirects
}

func copyBody(file *os.File, resp *http.Response, onProgress ProgressFunc) error {
	total := resp.ContentLength // -1 when the server sent no length
	var received int64
	lastPercent := -2

	buf := make([]byte, 128*1024)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := file.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write archive: %w", werr)
			}
			received += int64(n)

			if onProgress != nil {
				percent := -1
				if total > 0 {
					percent = int(received * 100 / total)
				}
				if percent != lastPercent || percent == -1 {
					onProgress(percent, received, total)
					lastPercent = percent
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read response body: %w", err)
		}
	}
}

// discardPartial removes a failed download. No partial artifacts
// survive a failed fetch.
func (f *Fetcher) discardPartial(destPath string) {
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		f.logger.Warn("could not remove partial download",
			slog.String("path", destPath),
			slog.String("error", err.Error()))
	}
}
