package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/xiaobogaga/charon/compiler/internal/report"
	"github.com/xiaobogaga/charon/config"
)

// ErrFailed is returned when a unit did not compile cleanly. Its details were already
// written to the report, so Execute prints nothing more for it.
var ErrFailed = errors.New("compilation failed")

// options holds the global flags and what PersistentPreRunE derives from them.
type options struct {
	cfgFile  string
	logLevel string
	format   string
	noColor  bool
	workers  int

	cfg    *config.Config
	logger *slog.Logger
}

func NewRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "charonc",
		Short: "charonc - front end of the charon language",
		Long: `charonc tokenizes, parses and type checks charon programs.

Commands:
  tokens   - print the token stream of a file
  parse    - print the syntax tree of a file
  check    - type check files or directories
  version  - print the version`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default: $"+config.EnvVar+" or ./"+config.FileName+")")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.format, "format", "", "output format: text, json or yaml")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.IntVar(&opts.workers, "workers", 0, "files compiled in parallel")

	rootCmd.AddCommand(newTokensCmd(opts), newParseCmd(opts), newCheckCmd(opts), newVersionCmd())
	return rootCmd
}

// load reads the configuration and lets the flags that were set override it.
func (opts *options) load(cmd *cobra.Command) error {
	var cfg *config.Config
	var err error
	if opts.cfgFile != "" {
		cfg, err = config.Load(opts.cfgFile)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("format") {
		cfg.Report.Format = opts.format
	}
	if flags.Changed("no-color") {
		color := !opts.noColor
		cfg.Report.Color = &color
	}
	if flags.Changed("workers") {
		cfg.Compiler.Workers = opts.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	opts.cfg = cfg
	opts.logger = cfg.NewLogger(cmd.ErrOrStderr())
	return nil
}

func (opts *options) reportFormat() report.Format {
	f, err := report.ParseFormat(opts.cfg.Report.Format)
	if err != nil {
		return report.FormatText
	}
	return f
}

// Execute runs charonc with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	if !errors.Is(err, ErrFailed) {
		printError(stderr, err)
	}
	return 1
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
