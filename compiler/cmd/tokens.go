package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/xiaobogaga/charon/compiler/internal"
	"github.com/xiaobogaga/charon/compiler/internal/report"
)

func newTokensCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a charon file",
		Long: `Print every token of a charon file with its position.

Comments and whitespace are not tokens and don't show up.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			opts.logger.Debug("charonc: tokenize", "unit", args[0])
			tokenizer := &internal.Tokenizer{}
			tokens, err := tokenizer.TokenizeBytes(src)
			if err != nil {
				return err
			}
			return report.WriteTokens(cmd.OutOrStdout(), tokens, opts.reportFormat())
		},
	}
}
