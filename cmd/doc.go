package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thellimist/docstrap/internal/bootstrap"
	"github.com/thellimist/docstrap/internal/cmdutil"
	"github.com/thellimist/docstrap/internal/composer"
	"github.com/thellimist/docstrap/internal/logger"
	"github.com/thellimist/docstrap/internal/phpdoc"
)

type docOptions struct {
	noConfig       bool
	refresh        bool
	strict         bool
	composerUpdate bool
	skipPHPCheck   bool
}

var docFlagKeys = map[string]string{
	"source":    "doc.source",
	"output":    "doc.output",
	"cache":     "doc.cache",
	"config":    "doc.config",
	"tool-path": "doc.tool_path",
	"tool-url":  "doc.tool_url",
}

func newCmdDoc(f *cmdutil.Factory) *cobra.Command {
	opts := &docOptions{}

	cmd := &cobra.Command{
		Use:     "doc",
		Aliases: []string{"phpdoc"},
		Short:   "Generate the API documentation with phpDocumentor",
		Long: `Generate the API documentation with phpDocumentor.

The phpDocumentor phar is downloaded on first use. With a configuration file
(phpdoc.xml by default) phpDocumentor reads output and cache paths from it;
with --no-config they are passed on the command line.

A failing phpDocumentor run is reported as a warning. Use --strict to exit
with its status instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.noConfig && cmd.Flags().Changed("config") {
				return cmdutil.FlagErrorf("--config and --no-config are mutually exclusive")
			}
			if err := bindFlags(f.Viper, cmd.Flags(), docFlagKeys); err != nil {
				return err
			}
			if opts.noConfig {
				f.Viper.Set("doc.config", "")
			}
			return runDoc(cmd.Context(), f, opts)
		},
	}

	fl := cmd.Flags()
	fl.String("source", "", "directory to document (default \"vendor/orpheus\")")
	fl.StringP("output", "o", "", "output directory (default \"html\")")
	fl.String("cache", "", "phpDocumentor cache directory (default \"cache\")")
	fl.StringP("config", "c", "", "phpDocumentor configuration file (default \"phpdoc.xml\")")
	fl.BoolVar(&opts.noConfig, "no-config", false, "pass output and cache paths instead of a configuration file")
	fl.String("tool-path", "", "where the phpDocumentor phar is stored (default \"phpDocumentor.phar\")")
	fl.String("tool-url", "", "where the phpDocumentor phar is downloaded from")
	fl.BoolVar(&opts.refresh, "refresh", false, "download the phar again even if it exists")
	fl.BoolVar(&opts.strict, "strict", false, "exit with phpDocumentor's status when it fails")
	fl.BoolVar(&opts.composerUpdate, "composer-update", false, "run \"composer update\" before generating")
	fl.BoolVar(&opts.skipPHPCheck, "skip-php-check", false, "do not probe the PHP interpreter version")

	cmd.AddCommand(newCmdDocInit(f))

	return cmd
}

func runDoc(ctx context.Context, f *cmdutil.Factory, opts *docOptions) error {
	ios := f.IOStreams

	cfg, projectDir, err := loadConfig(f)
	if err != nil {
		return err
	}

	interpreter, err := cfg.PHP.Interpreter()
	if err != nil {
		return err
	}

	docCfg, err := phpdoc.Config{
		ToolPath:   cfg.Doc.ToolPath,
		ToolURL:    cfg.Doc.ToolURL,
		SourceDir:  cfg.Doc.Source,
		OutputDir:  cfg.Doc.Output,
		CacheDir:   cfg.Doc.Cache,
		ConfigFile: cfg.Doc.Config,
	}.Resolve(projectDir)
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

	ios.Info("Source: %s", docCfg.SourceDir)
	ios.Info("Phar location: %s", docCfg.ToolPath)

	manifestPath, err := f.ManifestPath()
	if err != nil {
		return err
	}
	b := bootstrap.New(ios,
		bootstrap.WithHTTPClient(f.HTTPClient),
		bootstrap.WithManifest(bootstrap.NewManifest(manifestPath)),
		bootstrap.WithRefresh(opts.refresh),
	)
	if _, err := b.EnsureToolPresent(ctx, docCfg.Tool()); err != nil {
		return err
	}

	if docCfg.Mode() == phpdoc.ModeConfig {
		ios.Info("Configuration: %s", docCfg.ConfigFile)
	} else {
		ios.Info("Configuration: none")
	}
	ios.Info("Output path: %s", docCfg.OutputDir)
	ios.Info("Cache path: %s", docCfg.CacheDir)

	if opts.composerUpdate {
		ios.Info("Updating dependencies with %s ...", cfg.Composer.Binary)
		_, err := f.Runner.Run(ctx, composer.BuildGlobalUpdateCommand(cfg.Composer.Binary, projectDir))
		if err := delegatedOutcome(ios, err, opts.strict); err != nil {
			return err
		}
	}

	command, err := phpdoc.BuildCommand(interpreter, docCfg)
	if err != nil {
		return err
	}

	ios.Info("Generating new documentation ...")
	fmt.Fprintln(ios.Out, command.String())

	_, err = f.Runner.Run(ctx, command)
	if err != nil {
		return delegatedOutcome(ios, err, opts.strict)
	}

	ios.Success("Documentation generated")
	return nil
}
