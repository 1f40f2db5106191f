package internal

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
)

// Result is everything one compilation produced. A Result exists only when tokenizing and
// parsing succeeded, semantic errors live in Check.Diagnostics.
type Result struct {
	Unit    string
	Tokens  []*Token
	Program *Program
	Check   *CheckResult
}

func (result *Result) HasErrors() bool {
	return result.Check.HasErrors()
}

var discardLogger = slog.New(slog.DiscardHandler)

// Compile runs source text -> tokens -> program -> diagnostics for one unit. The returned
// error is a *TokenizeError or a *ParseError wrapped with the unit name, or a read error.
// Compile keeps no state between calls and is safe to run concurrently.
func Compile(unit string, rd io.Reader, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = discardLogger
	}
	logger = logger.With("unit", unit)

	logger.Debug("compiler: start tokenizer")
	tokenizer := &Tokenizer{}
	tokens, err := tokenizer.Tokenize(rd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", unit, err)
	}

	logger.Debug("compiler: start parser", "tokens", len(tokens))
	parser := &Parser{}
	program, err := parser.Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", unit, err)
	}

	logger.Debug("compiler: start type checker", "items", len(program.Items))
	check := Check(program)

	logger.Info("compiler: unit compiled",
		"tokens", len(tokens),
		"items", len(program.Items),
		"diagnostics", len(check.Diagnostics))
	return &Result{Unit: unit, Tokens: tokens, Program: program, Check: check}, nil
}

func CompileString(unit string, src string, logger *slog.Logger) (*Result, error) {
	return Compile(unit, bytes.NewReader([]byte(src)), logger)
}
