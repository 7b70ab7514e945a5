// Package bootstrap makes sure an external tool exists on disk before it is
// invoked, downloading it once when it is missing.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/thellimist/docstrap/internal/logger"
)

// lockWait bounds how long a run waits for a concurrent download of the same
// tool to finish.
const lockWait = 5 * time.Minute

// Reporter receives user-facing status lines.
type Reporter interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
}

// Tool identifies a tool by where it lives locally and where to fetch it.
type Tool struct {
	Path string
	URL  string
}

// Bootstrapper fetches missing tools.
type Bootstrapper struct {
	client   *http.Client
	reporter Reporter
	manifest *Manifest
	refresh  bool
	now      func() time.Time
}

// Option configures a Bootstrapper.
type Option func(*Bootstrapper)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Bootstrapper) { b.client = c }
}

// WithManifest records every download in m.
func WithManifest(m *Manifest) Option {
	return func(b *Bootstrapper) { b.manifest = m }
}

// WithRefresh downloads the tool even if a copy exists. The old copy is
// replaced only once the new one is complete.
func WithRefresh(refresh bool) Option {
	return func(b *Bootstrapper) { b.refresh = refresh }
}

// New returns a Bootstrapper reporting to r.
func New(r Reporter, opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		client:   http.DefaultClient,
		reporter: r,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// EnsureToolPresent downloads t.URL to t.Path unless a file is already there.
// It reports whether a download happened. On failure the error is a
// *DownloadError and nothing is left at t.Path.
func (b *Bootstrapper) EnsureToolPresent(ctx context.Context, t Tool) (bool, error) {
	if t.Path == "" {
		return false, errors.New("bootstrap: tool path is empty")
	}

	if !b.refresh {
		if ok, err := fileExists(t.Path); err != nil || ok {
			return false, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(t.Path), 0o755); err != nil {
		return false, &DownloadError{URL: t.URL, Path: t.Path, Err: fmt.Errorf("create tool directory: %w", err)}
	}

	unlock, err := lockPath(ctx, t.Path)
	if err != nil {
		return false, err
	}
	defer unlock()

	if !b.refresh {
		if ok, err := fileExists(t.Path); err != nil || ok {
			// Another run finished the download while we waited for the lock.
			return false, err
		}
	}

	if t.URL == "" {
		return false, &DownloadError{Path: t.Path, Err: errors.New("no download URL configured")}
	}

	b.reporter.Info("Downloading new %s from %s ...", filepath.Base(t.Path), t.URL)

	started := b.now()
	sum, size, err := download(ctx, b.client, t.URL, t.Path)
	if err != nil {
		return false, &DownloadError{URL: t.URL, Path: t.Path, Err: err}
	}

	logger.Debug().
		Str("url", t.URL).
		Str("path", t.Path).
		Int64("bytes", size).
		Dur("took", b.now().Sub(started)).
		Msg("tool downloaded")

	if b.manifest != nil {
		entry := ManifestEntry{URL: t.URL, SHA256: sum, Size: size, DownloadedAt: b.now().UTC()}
		if err := b.manifest.Record(t.Path, entry); err != nil {
			logger.Warn().Err(err).Str("manifest", b.manifest.Path()).Msg("could not record download")
		}
	}

	b.reporter.Success("File downloaded")
	return true, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

// lockPath takes an advisory lock on path+".lock", waiting for concurrent
// holders up to lockWait.
func lockPath(ctx context.Context, path string) (func(), error) {
	fl := flock.New(path + ".lock")

	ctx, cancel := context.WithTimeout(ctx, lockWait)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquiring file lock for %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("timed out acquiring file lock for %s", path)
	}
	return func() { _ = fl.Unlock() }, nil
}
