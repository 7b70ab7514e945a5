// Package composer drives Composer updates: installing or self-updating the
// composer phar, then running "update" with the right environment.
package composer

import (
	"errors"
	"path/filepath"

	"github.com/thellimist/docstrap/internal/config"
	"github.com/thellimist/docstrap/internal/invoke"
)

// UpdateOptions describes one dependency update.
type UpdateOptions struct {
	PharPath   string
	ProjectDir string

	// Local switches Composer to LocalConfigFile and builds packages from
	// source.
	Local           bool
	LocalConfigFile string

	InstallerURL string
	SelfUpdate   bool
	Verbose      bool

	User      string
	AdminUser string
}

func (o UpdateOptions) localConfigFile() string {
	if o.LocalConfigFile == "" {
		return config.DefaultComposerLocal
	}
	return o.LocalConfigFile
}

func prefix(interpreter []string) (string, []string, error) {
	if len(interpreter) == 0 {
		return "", nil, errors.New("no PHP interpreter configured")
	}
	return interpreter[0], append([]string{}, interpreter[1:]...), nil
}

// BuildUpdateCommand assembles
//
//	COMPOSER_ALLOW_XDEBUG=1 [COMPOSER=<local file>] <interpreter...> <composer.phar> update [--prefer-source]
//
// run from the project directory.
func BuildUpdateCommand(interpreter []string, o UpdateOptions) (invoke.Command, error) {
	path, args, err := prefix(interpreter)
	if err != nil {
		return invoke.Command{}, err
	}
	if o.PharPath == "" {
		return invoke.Command{}, errors.New("composer phar path is empty")
	}

	env := []string{"COMPOSER_ALLOW_XDEBUG=1"}
	if o.Local {
		env = append(env, "COMPOSER="+o.localConfigFile())
	}

	args = append(args, o.PharPath, "update")
	if o.Local {
		args = append(args, "--prefer-source")
	}

	return invoke.Command{Path: path, Args: args, Env: env, Dir: o.ProjectDir}, nil
}

// BuildSelfUpdateCommand assembles "<interpreter...> <composer.phar> self-update".
func BuildSelfUpdateCommand(interpreter []string, pharPath, dir string) (invoke.Command, error) {
	path, args, err := prefix(interpreter)
	if err != nil {
		return invoke.Command{}, err
	}
	args = append(args, pharPath, "self-update")
	return invoke.Command{Path: path, Args: args, Dir: dir}, nil
}

// BuildInstallCommand assembles the installer run that writes pharPath:
//
//	<interpreter...> <installer> --install-dir=<dir of pharPath> --filename=<base of pharPath>
func BuildInstallCommand(interpreter []string, installerPath, pharPath, dir string) (invoke.Command, error) {
	path, args, err := prefix(interpreter)
	if err != nil {
		return invoke.Command{}, err
	}
	args = append(args,
		installerPath,
		"--install-dir="+filepath.Dir(pharPath),
		"--filename="+filepath.Base(pharPath),
	)
	return invoke.Command{Path: path, Args: args, Dir: dir}, nil
}

// BuildGlobalUpdateCommand runs a composer binary found on PATH, as used
// before documentation generation.
func BuildGlobalUpdateCommand(binary, dir string) invoke.Command {
	if binary == "" {
		binary = "composer"
	}
	return invoke.Command{Path: binary, Args: []string{"update"}, Dir: dir}
}
