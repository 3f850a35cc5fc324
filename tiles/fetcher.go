// Package tiles downloads XYZ map tiles for the route map background. Tiles
// are rate limited and cached on disk, so re-rendering the same area does not
// hit the tile server again.
package tiles

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultUserAgent = "gpxmerge/1.0 (+route map; https://openstreetmap.org)"

type Fetcher struct {
	Client     *http.Client
	Limiter    *rate.Limiter
	CacheDir   string
	UserAgent  string
	MaxRetries int
	// Backoff is the wait before retry n (0-based).
	Backoff func(n int) time.Duration
}

func NewFetcher(cacheDir string, rps float64, burst int, timeout time.Duration) (*Fetcher, error) {
	if cacheDir == "" {
		cacheDir = ".tile-cache"
	}
	if burst < 1 {
		burst = 1
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("tile cache: %w", err)
	}
	return &Fetcher{
		Client:     &http.Client{Timeout: timeout},
		Limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		CacheDir:   cacheDir,
		UserAgent:  defaultUserAgent,
		MaxRetries: 3,
		Backoff: func(n int) time.Duration {
			return time.Duration(250+n*250) * time.Millisecond
		},
	}, nil
}

// cachePath shards by the sha1 of the URL; the query string is not part of
// the file extension.
func (f *Fetcher) cachePath(u string) string {
	sum := sha1.Sum([]byte(u))
	id := hex.EncodeToString(sum[:])
	ext := ".tile"
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	if e := filepath.Ext(u); e != "" && len(e) <= 5 && !strings.ContainsRune(e, '/') {
		ext = e
	}
	return filepath.Join(f.CacheDir, id[:2], id[2:4], id+ext)
}

// Get returns the tile body, from cache when possible.
func (f *Fetcher) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	cp := f.cachePath(url)
	if b, err := os.ReadFile(cp); err == nil {
		return b, nil
	}

	var lastErr error
	for attempt := 0; attempt < f.MaxRetries; attempt++ {
		if attempt > 0 && f.Backoff != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.Backoff(attempt - 1)):
			}
		}
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
		body, err := f.fetch(ctx, url, headers)
		if err != nil {
			lastErr = err
			continue
		}
		if err := writeCache(cp, body); err != nil {
			return nil, err
		}
		return body, nil
	}
	return nil, lastErr
}

func (f *Fetcher) fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
		return nil, fmt.Errorf("tile HTTP %d for %s: %s", resp.StatusCode, url, strings.TrimSpace(string(b)))
	}
	return io.ReadAll(resp.Body)
}

func writeCache(path string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
