// Package covers keeps local copies of remote cover images so the API can
// serve them without hitting the catalog on every request.
package covers

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxCoverSize caps the size of a downloaded image.
const MaxCoverSize = 5 << 20

var (
	ErrNoCover     = errors.New("no cover")
	ErrNotAnImage  = errors.New("response is not an image")
	ErrCoverTooBig = errors.New("cover exceeds size limit")
)

// Cache stores covers on disk keyed by their URL.
type Cache struct {
	dir        string
	userAgent  string
	httpClient *http.Client
}

// NewCache creates a cover cache in dir, creating the directory if needed.
func NewCache(dir, userAgent string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{
		dir:        dir,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Get returns the path of the cached copy of coverURL, downloading it on
// first use. An empty URL yields ErrNoCover.
func (c *Cache) Get(ctx context.Context, coverURL string) (string, error) {
	if coverURL == "" {
		return "", ErrNoCover
	}

	path := filepath.Join(c.dir, c.filename(coverURL))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := c.download(ctx, coverURL, path); err != nil {
		return "", fmt.Errorf("fetch cover %s: %w", coverURL, err)
	}
	return path, nil
}

// Invalidate removes the cached copy of coverURL, if any.
func (c *Cache) Invalidate(coverURL string) error {
	err := os.Remove(filepath.Join(c.dir, c.filename(coverURL)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) filename(coverURL string) string {
	hash := sha256.Sum256([]byte(coverURL))
	return fmt.Sprintf("cover_%x", hash[:12])
}

func (c *Cache) download(ctx context.Context, coverURL, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if err != nil {
		return err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("%w: %s", ErrNotAnImage, ct)
	}

	// Write to a temp file in the same directory, then rename into place.
	tmp, err := os.CreateTemp(c.dir, "cover_tmp_")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	n, err := io.Copy(tmp, io.LimitReader(resp.Body, MaxCoverSize+1))
	if err != nil {
		return err
	}
	if n > MaxCoverSize {
		return ErrCoverTooBig
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
