package config

import "github.com/spf13/viper"

const (
	DefaultPharURL        = "https://phpdoc.org/phpDocumentor.phar"
	DefaultInstallerURL   = "https://getcomposer.org/installer"
	DefaultConfigFileName = "docstrap"
	DefaultStateDir       = ".docstrap"
	DefaultManifestFile   = "tools.yaml"
	DefaultPHPDocConfig   = "phpdoc.xml"
	DefaultComposerLocal  = "composer.local.json"
	DefaultAdministrator  = "root"
	DefaultDocumentation  = "Documentation"
)

// SetDefaults registers every key so that environment variables and
// Unmarshal see the full key set.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("php.command", "php")
	v.SetDefault("php.check", true)

	v.SetDefault("doc.tool_path", "phpDocumentor.phar")
	v.SetDefault("doc.tool_url", DefaultPharURL)
	v.SetDefault("doc.source", "vendor/orpheus")
	v.SetDefault("doc.output", "html")
	v.SetDefault("doc.cache", "cache")
	v.SetDefault("doc.config", DefaultPHPDocConfig)
	v.SetDefault("doc.title", DefaultDocumentation)

	v.SetDefault("composer.phar_path", "composer.phar")
	v.SetDefault("composer.installer_url", DefaultInstallerURL)
	v.SetDefault("composer.local_config", DefaultComposerLocal)
	v.SetDefault("composer.admin_user", DefaultAdministrator)
	v.SetDefault("composer.self_update", true)
	v.SetDefault("composer.binary", "composer")

	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.max_backups", 3)
}
