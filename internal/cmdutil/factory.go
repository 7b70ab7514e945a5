// Package cmdutil holds what commands share: the Factory and the error types
// cmd.Run maps to exit codes.
package cmdutil

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/thellimist/docstrap/internal/config"
	"github.com/thellimist/docstrap/internal/invoke"
	"github.com/thellimist/docstrap/internal/iostreams"
	"github.com/thellimist/docstrap/internal/phpcheck"
)

// Factory provides shared dependencies for CLI commands. Tests replace the
// fields they care about.
type Factory struct {
	Version string

	IOStreams  *iostreams.IOStreams
	HTTPClient *http.Client
	Runner     invoke.Runner
	Viper      *viper.Viper

	// Getenv reads the invoking environment (the user identity, mostly).
	Getenv func(string) string

	// CheckPHP verifies the interpreter before it is used.
	CheckPHP func(ctx context.Context, interpreter []string) (string, error)

	// Set from global flags before RunE.
	ProjectDir string
	ConfigFile string
	Debug      bool
}

// New returns a Factory wired to the real process environment.
func New(version string) *Factory {
	ios := iostreams.System()
	return &Factory{
		Version:    version,
		IOStreams:  ios,
		HTTPClient: http.DefaultClient,
		Runner:     &invoke.ExecRunner{Stdin: ios.In, Stdout: ios.Out, Stderr: ios.ErrOut},
		Viper:      config.New(),
		Getenv:     os.Getenv,
		CheckPHP:   phpcheck.Check,
	}
}

// Config loads configuration for the current project directory.
func (f *Factory) Config() (*config.Config, error) {
	dir, err := f.ProjectPath()
	if err != nil {
		return nil, err
	}
	return config.Load(f.Viper, dir, f.ConfigFile)
}

// ProjectPath returns the absolute project directory.
func (f *Factory) ProjectPath() (string, error) {
	dir := f.ProjectDir
	if dir == "" {
		dir = "."
	}
	return filepath.Abs(dir)
}

// ManifestPath is where downloaded tools are recorded.
func (f *Factory) ManifestPath() (string, error) {
	dir, err := f.ProjectPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.DefaultStateDir, config.DefaultManifestFile), nil
}
