// Package phpdoc builds phpDocumentor invocations.
package phpdoc

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/thellimist/docstrap/internal/bootstrap"
	"github.com/thellimist/docstrap/internal/invoke"
)

// Mode selects how phpDocumentor learns its output locations.
type Mode string

const (
	ModeConfig Mode = "config" // --config <file>
	ModeOutput Mode = "output" // -t <output> --cache-folder <cache>
)

// Config is one documentation run: where the phar lives and where it is
// fetched from, what to document and where results go.
type Config struct {
	ToolPath   string
	ToolURL    string
	SourceDir  string
	OutputDir  string
	CacheDir   string
	ConfigFile string
}

// Mode reports ModeConfig when a configuration file is set.
func (c Config) Mode() Mode {
	if c.ConfigFile != "" {
		return ModeConfig
	}
	return ModeOutput
}

// Tool returns the bootstrap descriptor for the phar.
func (c Config) Tool() bootstrap.Tool {
	return bootstrap.Tool{Path: c.ToolPath, URL: c.ToolURL}
}

// Resolve returns a copy with every path made absolute against projectDir.
// Paths are not checked for existence; phpDocumentor reports missing ones.
func (c Config) Resolve(projectDir string) (Config, error) {
	base, err := filepath.Abs(projectDir)
	if err != nil {
		return c, fmt.Errorf("resolve project dir: %w", err)
	}

	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	c.ToolPath = abs(c.ToolPath)
	c.SourceDir = abs(c.SourceDir)
	c.OutputDir = abs(c.OutputDir)
	c.CacheDir = abs(c.CacheDir)
	c.ConfigFile = abs(c.ConfigFile)
	return c, nil
}

// BuildCommand assembles the phpDocumentor run command:
//
//	<interpreter...> -d phar.readonly=on <phar> run -d <source> --config <file>
//	<interpreter...> -d phar.readonly=on <phar> run -d <source> -t <output> --cache-folder <cache>
//
// phar.readonly keeps the interpreter from rewriting the phar while it runs.
func BuildCommand(interpreter []string, c Config) (invoke.Command, error) {
	if len(interpreter) == 0 {
		return invoke.Command{}, errors.New("no PHP interpreter configured")
	}
	if c.ToolPath == "" {
		return invoke.Command{}, errors.New("phpDocumentor path is empty")
	}
	if c.SourceDir == "" {
		return invoke.Command{}, errors.New("documentation source directory is empty")
	}

	args := append([]string{}, interpreter[1:]...)
	args = append(args, "-d", "phar.readonly=on", c.ToolPath, "run", "-d", c.SourceDir)

	switch c.Mode() {
	case ModeConfig:
		args = append(args, "--config", c.ConfigFile)
	default:
		if c.OutputDir == "" || c.CacheDir == "" {
			return invoke.Command{}, errors.New("output and cache directories are required without a configuration file")
		}
		args = append(args, "-t", c.OutputDir, "--cache-folder", c.CacheDir)
	}

	return invoke.Command{Path: interpreter[0], Args: args}, nil
}
