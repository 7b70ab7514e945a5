package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/thellimist/docstrap/internal/bootstrap"
	"github.com/thellimist/docstrap/internal/cmdutil"
)

func newCmdTools(f *cmdutil.Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools downloaded for this project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTools(f)
		},
	}
}

func runTools(f *cmdutil.Factory) error {
	ios := f.IOStreams

	manifestPath, err := f.ManifestPath()
	if err != nil {
		return err
	}
	entries, err := bootstrap.NewManifest(manifestPath).Entries()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(ios.ErrOut, "No tools downloaded yet.")
		return nil
	}

	projectDir, err := f.ProjectPath()
	if err != nil {
		return err
	}

	tp := ios.NewTablePrinter("PATH", "SHA256", "SIZE", "DOWNLOADED", "URL")
	for _, e := range entries {
		path := e.Path
		if rel, err := filepath.Rel(projectDir, path); err == nil {
			path = rel
		}
		tp.AddRow(path, shortHash(e.SHA256), strconv.FormatInt(e.Size, 10),
			e.DownloadedAt.Local().Format(time.DateTime), e.URL)
	}
	return tp.Render()
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
