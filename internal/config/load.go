package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// New returns a viper instance with defaults and DOCSTRAP_* environment
// bindings (doc.tool_url -> DOCSTRAP_DOC_TOOL_URL).
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("DOCSTRAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the configuration file into v and decodes the result. With an
// explicit file the file must exist; otherwise docstrap.{yaml,yml,json,toml}
// is looked up in projectDir and its absence is not an error.
func Load(v *viper.Viper, projectDir, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(DefaultConfigFileName)
		v.AddConfigPath(projectDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
