package cmd

import (
	"errors"

	"github.com/thellimist/docstrap/internal/cmdutil"
	"github.com/thellimist/docstrap/internal/config"
	"github.com/thellimist/docstrap/internal/invoke"
	"github.com/thellimist/docstrap/internal/iostreams"
	"github.com/thellimist/docstrap/internal/logger"
)

// delegatedOutcome applies the exit-status policy to the error returned by
// a delegated tool. A failing tool is a warning unless strict is set, in
// which case its exit code becomes ours.
func delegatedOutcome(ios *iostreams.IOStreams, err error, strict bool) error {
	if err == nil {
		return nil
	}

	var toolErr *invoke.DelegatedToolError
	if !errors.As(err, &toolErr) {
		return err
	}

	if strict {
		ios.Failure("%s", toolErr)
		code := toolErr.ExitCode
		if code <= 0 {
			// Killed by a signal: there is no status to pass on.
			code = exitError
		}
		return &cmdutil.ExitError{Code: code, Err: cmdutil.SilentError}
	}

	logger.Warn().Str("tool", toolErr.Name).Int("exit_code", toolErr.ExitCode).Msg("delegated tool failed")
	ios.Warning("%s (use --strict to fail on tool errors)", toolErr)
	return nil
}

// setupFileLogging switches to the file-backed logger when log.file is set.
func setupFileLogging(f *cmdutil.Factory, cfg *config.Config, projectDir string) error {
	if cfg.Log.File == "" {
		return nil
	}
	return logger.InitWithFile(f.Debug, f.IOStreams.ErrOut, logger.FileConfig{
		Path:       absPath(projectDir, cfg.Log.File),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		MaxBackups: cfg.Log.MaxBackups,
	})
}

// readConfig loads configuration and the project directory without touching
// the filesystem.
func readConfig(f *cmdutil.Factory) (*config.Config, string, error) {
	projectDir, err := f.ProjectPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := f.Config()
	if err != nil {
		return nil, "", err
	}
	if cfg.File != "" {
		logger.Debug().Str("file", cfg.File).Msg("configuration loaded")
	}
	return cfg, projectDir, nil
}

// loadConfig is readConfig followed by starting file logging if configured.
func loadConfig(f *cmdutil.Factory) (*config.Config, string, error) {
	cfg, projectDir, err := readConfig(f)
	if err != nil {
		return nil, "", err
	}
	if err := setupFileLogging(f, cfg, projectDir); err != nil {
		return nil, "", err
	}
	return cfg, projectDir, nil
}
