package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xiaobogaga/charon/compiler/internal"
	"github.com/xiaobogaga/charon/compiler/internal/report"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Type check charon files",
		Long: `Tokenize, parse and type check charon files.

A directory stands for the charon files directly inside it. Every semantic error of
every file is reported, the exit status is 1 if any file failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := internal.LoadUnits(args, opts.cfg.Compiler.Extension)
			if err != nil {
				return err
			}
			if len(units) == 0 {
				return fmt.Errorf("no %s files found in %s", opts.cfg.Compiler.Extension, strings.Join(args, ", "))
			}
			batch, err := internal.CompileBatch(cmd.Context(), units, opts.cfg.Compiler.Workers, opts.logger)
			if err != nil {
				return err
			}
			err = report.WriteBatch(cmd.OutOrStdout(), batch, report.Options{
				Format:         opts.reportFormat(),
				Color:          opts.cfg.ColorEnabled(),
				MaxDiagnostics: opts.cfg.Compiler.MaxDiagnostics,
			})
			if err != nil {
				return err
			}
			if batch.Failed() {
				return ErrFailed
			}
			return nil
		},
	}
}
