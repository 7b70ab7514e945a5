package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thellimist/docstrap/internal/cmdutil"
	"github.com/thellimist/docstrap/internal/config"
	"github.com/thellimist/docstrap/internal/phpdoc"
)

type docInitOptions struct {
	force bool
}

var docInitFlagKeys = map[string]string{
	"source": "doc.source",
	"output": "doc.output",
	"cache":  "doc.cache",
	"config": "doc.config",
	"title":  "doc.title",
}

func newCmdDocInit(f *cmdutil.Factory) *cobra.Command {
	opts := &docInitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a phpdoc.xml configuration skeleton",
		Long: `Write a phpdoc.xml configuration skeleton using the configured source,
output and cache directories. Paths in the file are relative to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(f.Viper, cmd.Flags(), docInitFlagKeys); err != nil {
				return err
			}
			return runDocInit(f, opts)
		},
	}

	fl := cmd.Flags()
	fl.String("source", "", "directory to document")
	fl.StringP("output", "o", "", "output directory")
	fl.String("cache", "", "phpDocumentor cache directory")
	fl.StringP("config", "c", "", "file to write (default \"phpdoc.xml\")")
	fl.String("title", "", "documentation title")
	fl.BoolVarP(&opts.force, "force", "f", false, "overwrite an existing file")

	return cmd
}

func runDocInit(f *cmdutil.Factory, opts *docInitOptions) error {
	cfg, projectDir, err := loadConfig(f)
	if err != nil {
		return err
	}

	target := cfg.Doc.Config
	if target == "" {
		target = config.DefaultPHPDocConfig
	}
	target = absPath(projectDir, target)
	base := filepath.Dir(target)

	data := phpdoc.TemplateData{
		Title:  cfg.Doc.Title,
		Source: relativeTo(base, absPath(projectDir, cfg.Doc.Source)),
		Output: relativeTo(base, absPath(projectDir, cfg.Doc.Output)),
		Cache:  relativeTo(base, absPath(projectDir, cfg.Doc.Cache)),
	}
	if data.Title == "" {
		data.Title = config.DefaultDocumentation
	}

	if err := phpdoc.WriteConfigFile(target, data, opts.force); err != nil {
		return err
	}

	f.IOStreams.Success("Wrote %s", target)
	return nil
}

// relativeTo expresses p relative to base when possible.
func relativeTo(base, p string) string {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(rel)
}
