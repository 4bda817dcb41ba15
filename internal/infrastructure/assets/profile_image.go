package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"streamNotify/internal/domain"
)

// maxImageBytes caps a profile image download. Twitch serves 300x300 images.
const maxImageBytes = 5 << 20

// ImageStore keeps broadcaster profile images on disk for use as
// notification icons.
type ImageStore struct {
	dir     string
	httpCli *http.Client
}

func NewImageStore(dir string, httpCli *http.Client) *ImageStore {
	if httpCli == nil {
		httpCli = &http.Client{Timeout: 10 * time.Second}
	}
	return &ImageStore{dir: dir, httpCli: httpCli}
}

// Fetch downloads the profile image of b and returns the local path.
func (s *ImageStore) Fetch(ctx context.Context, b domain.Broadcaster) (string, error) {
	if b.ProfileImageURL == "" {
		return "", fmt.Errorf("assets: %s has no profile image", b.Login)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.ProfileImageURL, nil)
	if err != nil {
		return "", fmt.Errorf("assets: request: %w", err)
	}

	resp, err := s.httpCli.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: assets: download: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: assets: download status %d", domain.ErrNetwork, resp.StatusCode)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("assets: creating dir: %w", err)
	}

	dst := filepath.Join(s.dir, fileName(b))
	tmp, err := os.CreateTemp(s.dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("assets: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(resp.Body, maxImageBytes+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("%w: assets: write: %w", domain.ErrNetwork, err)
	}
	if n > maxImageBytes {
		return "", fmt.Errorf("assets: image larger than %d bytes", maxImageBytes)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("assets: rename: %w", err)
	}
	return dst, nil
}

// Remove deletes a file written by Fetch. Missing files are not an error.
func (s *ImageStore) Remove(p string) error {
	if p == "" {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("assets: remove %s: %w", p, err)
	}
	return nil
}

func fileName(b domain.Broadcaster) string {
	ext := ".png"
	if u, err := url.Parse(b.ProfileImageURL); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); e == ".jpg" || e == ".jpeg" || e == ".png" || e == ".gif" {
			ext = e
		}
	}
	name := b.Login
	if name == "" {
		name = b.ID
	}
	return strings.ToLower(name) + ext
}
