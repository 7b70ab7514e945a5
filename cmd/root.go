package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thellimist/docstrap/internal/cmdutil"
	"github.com/thellimist/docstrap/internal/logger"
	"github.com/thellimist/docstrap/internal/signals"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Execute runs the CLI against the real process environment and returns the
// exit code.
func Execute(version string) int {
	defer logger.CloseFileWriter()

	ctx, cancel := signals.Context(context.Background())
	defer cancel()

	return Run(ctx, cmdutil.New(version), nil)
}

// Run executes the command tree with args (os.Args[1:] when nil) and maps
// the outcome to an exit code.
func Run(ctx context.Context, f *cmdutil.Factory, args []string) int {
	root := NewCmdRoot(f)
	if args != nil {
		root.SetArgs(args)
	}

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return exitOK
	}

	errOut := f.IOStreams.ErrOut

	var exitErr *cmdutil.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil && !errors.Is(exitErr.Err, cmdutil.SilentError) {
			fmt.Fprintf(errOut, "Error: %s\n", exitErr.Err)
		}
		return exitErr.Code
	}

	if errors.Is(err, cmdutil.SilentError) {
		return exitError
	}

	var flagErr *cmdutil.FlagError
	if errors.As(err, &flagErr) {
		fmt.Fprintf(errOut, "Error: %s\n", err)
		if cmd != nil {
			fmt.Fprintf(errOut, "\n%s", cmd.UsageString())
		}
		return exitUsage
	}

	fmt.Fprintf(errOut, "Error: %s\n", err)
	return exitError
}

// NewCmdRoot creates the root command.
func NewCmdRoot(f *cmdutil.Factory) *cobra.Command {
	root := &cobra.Command{
		Use:   "docstrap",
		Short: "Bootstrap and run the PHP documentation and dependency tools",
		Long: `docstrap fetches phpDocumentor and Composer when they are missing and runs
them with paths resolved from the project directory.

Examples:
  # Generate documentation using phpdoc.xml
  docstrap doc

  # Generate without a configuration file
  docstrap doc --no-config --source vendor/orpheus --output html --cache cache

  # Update dependencies using composer.local.json, building from source
  docstrap composer-update --local --verbose`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       f.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(f.Debug, f.IOStreams.ErrOut)
			logger.Debug().Str("version", f.Version).Str("project_dir", f.ProjectDir).Msg("docstrap starting")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.SetOut(f.IOStreams.Out)
	root.SetErr(f.IOStreams.ErrOut)
	root.SetVersionTemplate(fmt.Sprintf("docstrap v%s\n", f.Version))
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cmdutil.FlagErrorf("%w", err)
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&f.ProjectDir, "project-dir", "C", ".", "project directory all relative paths are resolved against")
	pf.StringVar(&f.ConfigFile, "config-file", "", "docstrap configuration file (default <project-dir>/docstrap.yaml)")
	pf.BoolVarP(&f.Debug, "debug", "D", false, "enable debug logging")

	root.AddCommand(newCmdDoc(f))
	root.AddCommand(newCmdComposerUpdate(f))
	root.AddCommand(newCmdTools(f))
	root.AddCommand(newCmdVersion(f))

	return root
}
