package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

const manifestVersion = 1

// ManifestFile is the on-disk record of downloaded tools, keyed by the
// absolute tool path.
type ManifestFile struct {
	Version int                      `yaml:"version"`
	Tools   map[string]ManifestEntry `yaml:"tools"`
}

// ManifestEntry describes one download.
type ManifestEntry struct {
	Path         string    `yaml:"-"`
	URL          string    `yaml:"url"`
	SHA256       string    `yaml:"sha256"`
	Size         int64     `yaml:"size"`
	DownloadedAt time.Time `yaml:"downloaded_at"`
}

// Manifest reads and updates a manifest file.
type Manifest struct {
	path string
}

func NewManifest(path string) *Manifest {
	return &Manifest{path: path}
}

func (m *Manifest) Path() string { return m.path }

// Record stores entry under toolPath, replacing any previous entry.
func (m *Manifest) Record(toolPath string, entry ManifestEntry) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	unlock, err := lockPath(context.Background(), m.path)
	if err != nil {
		return err
	}
	defer unlock()

	mf, err := LoadManifest(m.path)
	if err != nil {
		return err
	}
	mf.Tools[toolPath] = entry
	return SaveManifest(m.path, mf)
}

// Entries returns all recorded downloads sorted by path.
func (m *Manifest) Entries() ([]ManifestEntry, error) {
	mf, err := LoadManifest(m.path)
	if err != nil {
		return nil, err
	}

	entries := make([]ManifestEntry, 0, len(mf.Tools))
	for p, e := range mf.Tools {
		e.Path = p
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// LoadManifest reads a manifest file. A missing file yields an empty
// manifest, not an error.
func LoadManifest(path string) (*ManifestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ManifestFile{Version: manifestVersion, Tools: map[string]ManifestEntry{}}, nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var mf ManifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if mf.Version == 0 {
		mf.Version = manifestVersion
	}
	if mf.Tools == nil {
		mf.Tools = map[string]ManifestEntry{}
	}
	return &mf, nil
}

// SaveManifest atomically writes mf to path (write to temp, rename).
func SaveManifest(path string, mf *ManifestFile) error {
	data, err := yaml.Marshal(mf)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return os.Rename(tmp, path)
}
