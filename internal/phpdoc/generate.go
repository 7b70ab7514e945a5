package phpdoc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrConfigExists is returned by WriteConfigFile when the target exists and
// overwriting was not requested.
var ErrConfigExists = errors.New("configuration file already exists")

// WriteConfigFile renders the phpdoc.xml skeleton to path. An existing file
// is only replaced when force is set.
func WriteConfigFile(path string, data TemplateData, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := configTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("render %s template: %w", filepath.Base(path), err)
	}
	return f.Close()
}
