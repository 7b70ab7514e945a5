// Package config loads docstrap settings from docstrap.yaml, DOCSTRAP_*
// environment variables and command flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/thellimist/docstrap/internal/shellwords"
)

// Config is the resolved configuration.
type Config struct {
	PHP      PHPConfig      `mapstructure:"php"`
	Doc      DocConfig      `mapstructure:"doc"`
	Composer ComposerConfig `mapstructure:"composer"`
	Log      LogConfig      `mapstructure:"log"`

	// File is the configuration file that was read, if any.
	File string `mapstructure:"-"`
}

// PHPConfig selects the interpreter used to run phars.
type PHPConfig struct {
	Command string `mapstructure:"command"`
	Check   bool   `mapstructure:"check"`
}

// Interpreter splits Command into argv.
func (c PHPConfig) Interpreter() ([]string, error) {
	argv, err := shellwords.Split(c.Command)
	if err != nil {
		return nil, fmt.Errorf("php.command: %w", err)
	}
	if len(argv) == 0 {
		return nil, errors.New("php.command is empty")
	}
	return argv, nil
}

// DocConfig holds phpDocumentor settings. Relative paths are resolved
// against the project directory.
type DocConfig struct {
	ToolPath string `mapstructure:"tool_path"`
	ToolURL  string `mapstructure:"tool_url"`
	Source   string `mapstructure:"source"`
	Output   string `mapstructure:"output"`
	Cache    string `mapstructure:"cache"`
	Config   string `mapstructure:"config"`
	Title    string `mapstructure:"title"`
}

// ComposerConfig holds Composer settings.
type ComposerConfig struct {
	PharPath     string `mapstructure:"phar_path"`
	InstallerURL string `mapstructure:"installer_url"`
	LocalConfig  string `mapstructure:"local_config"`
	AdminUser    string `mapstructure:"admin_user"`
	SelfUpdate   bool   `mapstructure:"self_update"`
	Binary       string `mapstructure:"binary"`
}

// LogConfig configures the optional diagnostic log file.
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Validate checks values that would otherwise fail late, after a download
// or a spawned process.
func (c *Config) Validate() error {
	if _, err := c.PHP.Interpreter(); err != nil {
		return err
	}
	if c.Doc.ToolPath == "" {
		return errors.New("doc.tool_path is empty")
	}
	if c.Composer.PharPath == "" {
		return errors.New("composer.phar_path is empty")
	}
	for key, raw := range map[string]string{
		"doc.tool_url":           c.Doc.ToolURL,
		"composer.installer_url": c.Composer.InstallerURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s: unsupported scheme %q (want http or https)", key, u.Scheme)
		}
	}
	return nil
}
