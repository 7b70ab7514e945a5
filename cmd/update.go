package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thellimist/docstrap/internal/bootstrap"
	"github.com/thellimist/docstrap/internal/cmdutil"
	"github.com/thellimist/docstrap/internal/composer"
	"github.com/thellimist/docstrap/internal/config"
	"github.com/thellimist/docstrap/internal/logger"
)

type updateOptions struct {
	local        bool
	verbose      bool
	noSelfUpdate bool
	strict       bool
	skipPHPCheck bool
}

func newCmdComposerUpdate(f *cmdutil.Factory) *cobra.Command {
	opts := &updateOptions{}

	cmd := &cobra.Command{
		Use:     "composer-update",
		Aliases: []string{"update"},
		Short:   "Update the project dependencies with Composer",
		Long: `Update the project dependencies with Composer.

composer.phar is installed with the official installer when missing and
self-updated otherwise. With --local, composer.local.json is used and
packages are built from source.

Refuses to run as root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComposerUpdate(cmd.Context(), f, opts)
		},
	}

	fl := cmd.Flags()
	fl.BoolVarP(&opts.local, "local", "l", false, "use the local Composer file and prefer sources")
	fl.BoolVarP(&opts.verbose, "verbose", "v", false, "describe each step")
	fl.BoolVar(&opts.noSelfUpdate, "no-self-update", false, "do not run \"composer self-update\" first")
	fl.BoolVar(&opts.strict, "strict", false, "exit with Composer's status when it fails")
	fl.BoolVar(&opts.skipPHPCheck, "skip-php-check", false, "do not probe the PHP interpreter version")

	return cmd
}

func runComposerUpdate(ctx context.Context, f *cmdutil.Factory, opts *updateOptions) error {
	ios := f.IOStreams
	current := composer.CurrentUser(f.Getenv)

	cfg, projectDir, err := readConfig(f)
	if err != nil {
		// A broken config must not hide the privilege refusal.
		if guardErr := composer.CheckUser(current, config.DefaultAdministrator); guardErr != nil {
			return privilegeExit(f, guardErr)
		}
		return err
	}

	if err := composer.CheckUser(current, cfg.Composer.AdminUser); err != nil {
		return privilegeExit(f, err)
	}

	// File logging creates the log directory, so it waits for the guard.
	if err := setupFileLogging(f, cfg, projectDir); err != nil {
		return err
	}

	interpreter, err := cfg.PHP.Interpreter()
	if err != nil {
		return err
	}

	if cfg.PHP.Check && !opts.skipPHPCheck {
		version, err := f.CheckPHP(ctx, interpreter)
		if err != nil {
			return err
		}
		logger.Debug().Str("php_version", version).Msg("php interpreter ok")
	}

	updater := &composer.Updater{
		Interpreter:  interpreter,
		Runner:       f.Runner,
		Bootstrapper: bootstrap.New(ios, bootstrap.WithHTTPClient(f.HTTPClient)),
		Reporter:     ios,
	}

	_, err = updater.Run(ctx, composer.UpdateOptions{
		PharPath:        absPath(projectDir, cfg.Composer.PharPath),
		ProjectDir:      projectDir,
		Local:           opts.local,
		LocalConfigFile: cfg.Composer.LocalConfig,
		InstallerURL:    cfg.Composer.InstallerURL,
		SelfUpdate:      cfg.Composer.SelfUpdate && !opts.noSelfUpdate,
		Verbose:         opts.verbose,
		User:            current,
		AdminUser:       cfg.Composer.AdminUser,
	})

	var privErr *composer.PrivilegeError
	if errors.As(err, &privErr) {
		return privilegeExit(f, err)
	}
	if err != nil {
		return delegatedOutcome(ios, err, opts.strict)
	}

	ios.Success("Dependencies updated")
	return nil
}

// privilegeExit prints the refusal as is and exits 1.
func privilegeExit(f *cmdutil.Factory, err error) error {
	logger.Debug().Err(err).Msg("privilege guard refused the update")
	fmt.Fprintln(f.IOStreams.ErrOut, err)
	return &cmdutil.ExitError{Code: 1, Err: cmdutil.SilentError}
}
