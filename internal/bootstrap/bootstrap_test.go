package bootstrap

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	lines []string
}

func (r *recordingReporter) Info(format string, args ...any) {
	r.lines = append(r.lines, "info: "+fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Success(format string, args ...any) {
	r.lines = append(r.lines, "success: "+fmt.Sprintf(format, args...))
}

type pharServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newPharServer(t *testing.T, status int, body string) *pharServer {
	t.Helper()
	ps := &pharServer{}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ps.hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ps.Close)
	return ps
}

func TestEnsureToolPresent_ExistingToolSkipsDownload(t *testing.T) {
	srv := newPharServer(t, http.StatusOK, "new phar")
	path := filepath.Join(t.TempDir(), "phpDocumentor.phar")
	require.NoError(t, os.WriteFile(path, []byte("old phar"), 0o644))

	rep := &recordingReporter{}
	b := New(rep)

	downloaded, err := b.EnsureToolPresent(context.Background(), Tool{Path: path, URL: srv.URL})
	require.NoError(t, err)
	assert.False(t, downloaded)
	assert.Equal(t, int32(0), srv.hits.Load())
	assert.Empty(t, rep.lines)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old phar", string(data))
}

func TestEnsureToolPresent_MissingToolDownloadsOnce(t *testing.T) {
	srv := newPharServer(t, http.StatusOK, "<?php phar contents")
	dir := t.TempDir()
	path := filepath.Join(dir, "phpDocumentor.phar")
	manifest := NewManifest(filepath.Join(dir, ".docstrap", "tools.yaml"))

	rep := &recordingReporter{}
	b := New(rep, WithHTTPClient(srv.Client()), WithManifest(manifest))
	tool := Tool{Path: path, URL: srv.URL + "/phpDocumentor.phar"}

	downloaded, err := b.EnsureToolPresent(context.Background(), tool)
	require.NoError(t, err)
	assert.True(t, downloaded)
	assert.Equal(t, int32(1), srv.hits.Load())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<?php phar contents", string(data))

	assert.Equal(t, []string{
		"info: Downloading new phpDocumentor.phar from " + tool.URL + " ...",
		"success: File downloaded",
	}, rep.lines)

	// Second run finds the tool and does not touch the network.
	downloaded, err = b.EnsureToolPresent(context.Background(), tool)
	require.NoError(t, err)
	assert.False(t, downloaded)
	assert.Equal(t, int32(1), srv.hits.Load())

	entries, err := manifest.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	sum := sha256.Sum256([]byte("<?php phar contents"))
	assert.Equal(t, path, entries[0].Path)
	assert.Equal(t, tool.URL, entries[0].URL)
	assert.Equal(t, hex.EncodeToString(sum[:]), entries[0].SHA256)
	assert.Equal(t, int64(len("<?php phar contents")), entries[0].Size)
}

func TestEnsureToolPresent_CreatesParentDirectories(t *testing.T) {
	srv := newPharServer(t, http.StatusOK, "x")
	path := filepath.Join(t.TempDir(), "scripts", "bin", "composer.phar")

	_, err := New(&recordingReporter{}).EnsureToolPresent(context.Background(), Tool{Path: path, URL: srv.URL})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestEnsureToolPresent_HTTPErrorLeavesNothing(t *testing.T) {
	srv := newPharServer(t, http.StatusNotFound, "not found")
	dir := t.TempDir()
	path := filepath.Join(dir, "phpDocumentor.phar")

	rep := &recordingReporter{}
	downloaded, err := New(rep).EnsureToolPresent(context.Background(), Tool{Path: path, URL: srv.URL})
	require.Error(t, err)
	assert.False(t, downloaded)

	var dlErr *DownloadError
	require.True(t, errors.As(err, &dlErr))
	assert.Equal(t, srv.URL, dlErr.URL)
	assert.Equal(t, path, dlErr.Path)
	assert.Contains(t, err.Error(), "http status 404")

	assert.NoFileExists(t, path)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".part"), "leftover temp file %s", e.Name())
	}
	assert.NotContains(t, rep.lines, "success: File downloaded")
	assert.Equal(t, int32(1), srv.hits.Load())
}

func TestEnsureToolPresent_TransportError(t *testing.T) {
	srv := newPharServer(t, http.StatusOK, "x")
	url := srv.URL
	srv.Close()

	path := filepath.Join(t.TempDir(), "phpDocumentor.phar")
	_, err := New(&recordingReporter{}).EnsureToolPresent(context.Background(), Tool{Path: path, URL: url})

	var dlErr *DownloadError
	require.True(t, errors.As(err, &dlErr))
	assert.NoFileExists(t, path)
}

func TestEnsureToolPresent_CancelledContext(t *testing.T) {
	srv := newPharServer(t, http.StatusOK, "x")
	path := filepath.Join(t.TempDir(), "phpDocumentor.phar")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(&recordingReporter{}).EnsureToolPresent(ctx, Tool{Path: path, URL: srv.URL})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NoFileExists(t, path)
}

func TestEnsureToolPresent_Refresh(t *testing.T) {
	srv := newPharServer(t, http.StatusOK, "fresh")
	path := filepath.Join(t.TempDir(), "phpDocumentor.phar")
	require.NoError(t, os.WriteFile(path, []byte("corrupted"), 0o644))

	downloaded, err := New(&recordingReporter{}, WithRefresh(true)).
		EnsureToolPresent(context.Background(), Tool{Path: path, URL: srv.URL})
	require.NoError(t, err)
	assert.True(t, downloaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}

func TestEnsureToolPresent_RefreshFailureKeepsExistingTool(t *testing.T) {
	tests := []struct {
		name string
		url  func(*pharServer) string
	}{
		{"bad gateway", func(srv *pharServer) string { return srv.URL }},
		{"no url", func(*pharServer) string { return "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newPharServer(t, http.StatusBadGateway, "upstream down")
			dir := t.TempDir()
			path := filepath.Join(dir, "phpDocumentor.phar")
			require.NoError(t, os.WriteFile(path, []byte("working"), 0o755))

			downloaded, err := New(&recordingReporter{}, WithRefresh(true)).
				EnsureToolPresent(context.Background(), Tool{Path: path, URL: tt.url(srv)})
			var dlErr *DownloadError
			require.True(t, errors.As(err, &dlErr))
			assert.False(t, downloaded)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "working", string(data))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			for _, e := range entries {
				assert.False(t, strings.HasSuffix(e.Name(), ".part"), "leftover temp file %s", e.Name())
			}
		})
	}
}

func TestEnsureToolPresent_MissingURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "composer.phar")

	_, err := New(&recordingReporter{}).EnsureToolPresent(context.Background(), Tool{Path: path})

	var dlErr *DownloadError
	require.True(t, errors.As(err, &dlErr))
	assert.Contains(t, err.Error(), "no download URL configured")
}

func TestEnsureToolPresent_EmptyPath(t *testing.T) {
	_, err := New(&recordingReporter{}).EnsureToolPresent(context.Background(), Tool{URL: "http://example.invalid"})
	require.Error(t, err)
}
