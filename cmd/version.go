package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thellimist/docstrap/internal/cmdutil"
)

func newCmdVersion(f *cmdutil.Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the docstrap version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(f.IOStreams.Out, "docstrap v%s (%s/%s, %s)\n", f.Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
		},
	}
}
