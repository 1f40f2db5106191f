package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/xiaobogaga/charon/compiler/internal"
	"github.com/xiaobogaga/charon/compiler/internal/report"
)

func newParseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the syntax tree of a charon file",
		Long: `Parse a charon file and print its syntax tree.

The tree is printed even if the program has semantic errors, use check for those.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer src.Close()
			result, err := internal.Compile(args[0], src, opts.logger)
			if err != nil {
				return err
			}
			return report.WriteProgram(cmd.OutOrStdout(), result.Program, opts.reportFormat())
		},
	}
}
