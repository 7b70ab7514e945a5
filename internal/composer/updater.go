package composer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thellimist/docstrap/internal/bootstrap"
	"github.com/thellimist/docstrap/internal/config"
	"github.com/thellimist/docstrap/internal/invoke"
	"github.com/thellimist/docstrap/internal/logger"
)

// Reporter receives status lines.
type Reporter interface {
	bootstrap.Reporter
	Warning(format string, args ...any)
}

// Updater runs the whole update: privilege guard, composer phar install or
// self-update, then "composer update".
type Updater struct {
	Interpreter  []string
	Runner       invoke.Runner
	Bootstrapper *bootstrap.Bootstrapper
	Reporter     Reporter
}

// Run performs the update. The privilege guard runs before anything else;
// on a *PrivilegeError nothing has been downloaded or spawned. A failing
// update returns the *invoke.DelegatedToolError from the runner.
func (u *Updater) Run(ctx context.Context, o UpdateOptions) (invoke.Result, error) {
	if err := CheckUser(o.User, o.AdminUser); err != nil {
		return invoke.Result{}, err
	}

	if err := u.ensureComposer(ctx, o); err != nil {
		return invoke.Result{}, err
	}

	if o.Verbose {
		if o.Local {
			u.Reporter.Info("Using local config")
			u.Reporter.Info("Using specific config file %q", o.localConfigFile())
		}
	}

	cmd, err := BuildUpdateCommand(u.Interpreter, o)
	if err != nil {
		return invoke.Result{}, err
	}
	logger.Debug().Str("command", cmd.String()).Msg("running composer update")

	return u.Runner.Run(ctx, cmd)
}

func (u *Updater) ensureComposer(ctx context.Context, o UpdateOptions) error {
	_, err := os.Stat(o.PharPath)
	switch {
	case err == nil:
		if !o.SelfUpdate {
			return nil
		}
		if o.Verbose {
			u.Reporter.Info("Try to update composer itself")
		}
		cmd, err := BuildSelfUpdateCommand(u.Interpreter, o.PharPath, o.ProjectDir)
		if err != nil {
			return err
		}
		if _, err := u.Runner.Run(ctx, cmd); err != nil {
			var toolErr *invoke.DelegatedToolError
			if !errors.As(err, &toolErr) {
				return err
			}
			u.Reporter.Warning("composer self-update failed (status %d), continuing with the installed version", toolErr.ExitCode)
		}
		return nil
	case errors.Is(err, os.ErrNotExist):
		return u.install(ctx, o)
	default:
		return fmt.Errorf("stat %s: %w", o.PharPath, err)
	}
}

// install fetches the installer script into a scratch directory, runs it to
// produce o.PharPath and removes the script again.
func (u *Updater) install(ctx context.Context, o UpdateOptions) error {
	url := o.InstallerURL
	if url == "" {
		url = config.DefaultInstallerURL
	}

	scratch, err := os.MkdirTemp("", "docstrap-composer-*")
	if err != nil {
		return fmt.Errorf("create installer dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	installer := filepath.Join(scratch, "composer-setup.php")
	if _, err := u.Bootstrapper.EnsureToolPresent(ctx, bootstrap.Tool{Path: installer, URL: url}); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(o.PharPath), 0o755); err != nil {
		return fmt.Errorf("create composer dir: %w", err)
	}

	cmd, err := BuildInstallCommand(u.Interpreter, installer, o.PharPath, o.ProjectDir)
	if err != nil {
		return err
	}
	if _, err := u.Runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("install composer: %w", err)
	}

	if _, err := os.Stat(o.PharPath); err != nil {
		return fmt.Errorf("composer installer did not produce %s: %w", o.PharPath, err)
	}
	u.Reporter.Success("Composer installed to %s", o.PharPath)
	return nil
}
