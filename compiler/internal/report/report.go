// Package report renders what the compiler produced: batch results, token streams and
// program trees, as styled text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/xiaobogaga/charon/compiler/internal"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("report: unknown format %q, want text, json or yaml", s)
}

type Options struct {
	Format Format
	Color  bool
	// MaxDiagnostics caps the diagnostics listed per unit, 0 lists them all.
	MaxDiagnostics int
}

const (
	StatusOK     = "ok"
	StatusErrors = "errors"
	StatusFailed = "failed"
)

type BatchReport struct {
	RunID  string       `json:"run_id" yaml:"run_id"`
	Failed bool         `json:"failed" yaml:"failed"`
	Units  []UnitReport `json:"units" yaml:"units"`
}

type UnitReport struct {
	Unit        string             `json:"unit" yaml:"unit"`
	Status      string             `json:"status" yaml:"status"`
	Error       string             `json:"error,omitempty" yaml:"error,omitempty"`
	Summary     string             `json:"summary,omitempty" yaml:"summary,omitempty"`
	Diagnostics []DiagnosticReport `json:"diagnostics" yaml:"diagnostics"`
	Omitted     int                `json:"omitted,omitempty" yaml:"omitted,omitempty"`
	Symbols     []SymbolReport     `json:"symbols,omitempty" yaml:"symbols,omitempty"`
}

type DiagnosticReport struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

type SymbolReport struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

type TokenReport struct {
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// NewBatchReport flattens batch. Units keep the batch order.
func NewBatchReport(batch *internal.BatchResult, maxDiagnostics int) *BatchReport {
	report := &BatchReport{RunID: batch.RunID, Failed: batch.Failed(), Units: []UnitReport{}}
	for _, unit := range batch.Units {
		report.Units = append(report.Units, newUnitReport(unit, maxDiagnostics))
	}
	return report
}

func newUnitReport(unit *internal.UnitResult, maxDiagnostics int) UnitReport {
	ret := UnitReport{Unit: unit.Unit, Status: StatusOK, Diagnostics: []DiagnosticReport{}}
	if unit.Err != nil {
		ret.Status, ret.Error = StatusFailed, unit.Err.Error()
		return ret
	}
	check := unit.Result.Check
	ret.Summary = check.Summary()
	if check.HasErrors() {
		ret.Status = StatusErrors
	}
	for i, d := range check.Diagnostics {
		if maxDiagnostics > 0 && i >= maxDiagnostics {
			ret.Omitted = len(check.Diagnostics) - maxDiagnostics
			break
		}
		ret.Diagnostics = append(ret.Diagnostics, DiagnosticReport{Kind: d.Kind.String(), Message: d.Message})
	}
	for _, desc := range check.Symbols.Symbols() {
		ret.Symbols = append(ret.Symbols, SymbolReport{Name: desc.Name(), Type: desc.VariableType().String()})
	}
	return ret
}

func NewTokenReports(tokens []*internal.Token) []TokenReport {
	ret := make([]TokenReport, 0, len(tokens))
	for _, token := range tokens {
		ret = append(ret, TokenReport{
			Kind:   token.Type().String(),
			Text:   token.Content(),
			Line:   token.Line(),
			Column: token.Column(),
		})
	}
	return ret
}

// WriteBatch writes the result of a batch in opts.Format.
func WriteBatch(w io.Writer, batch *internal.BatchResult, opts Options) error {
	report := NewBatchReport(batch, opts.MaxDiagnostics)
	if opts.Format == FormatText || opts.Format == "" {
		return writeBatchText(w, report, newStyles(opts.Color))
	}
	return encode(w, report, opts.Format)
}

func writeBatchText(w io.Writer, report *BatchReport, s *styles) error {
	b := &strings.Builder{}
	failed := 0
	for _, unit := range report.Units {
		name := s.render(s.unit, unit.Unit)
		switch unit.Status {
		case StatusFailed:
			failed++
			fmt.Fprintf(b, "%s: %s\n", name, s.render(s.failed, "failed"))
			fmt.Fprintf(b, "  %s\n", unit.Error)
		case StatusErrors:
			failed++
			fmt.Fprintf(b, "%s: %s\n", name, s.render(s.warning, unit.Summary))
			for _, d := range unit.Diagnostics {
				fmt.Fprintf(b, "  %s %s\n", s.render(s.failed, "error:"), d.Message)
			}
			if unit.Omitted > 0 {
				fmt.Fprintf(b, "  %s\n", s.render(s.muted, fmt.Sprintf("... %d more", unit.Omitted)))
			}
		default:
			fmt.Fprintf(b, "%s: %s\n", name, s.render(s.ok, unit.Summary))
		}
	}
	if len(report.Units) > 1 {
		line := fmt.Sprintf("run %s: %d unit(s), %d failed", report.RunID, len(report.Units), failed)
		fmt.Fprintln(b, s.render(s.muted, line))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTokens writes one token per line, or the token list in json and yaml.
func WriteTokens(w io.Writer, tokens []*internal.Token, format Format) error {
	reports := NewTokenReports(tokens)
	if format != FormatText && format != "" {
		return encode(w, reports, format)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, token := range reports {
		fmt.Fprintf(tw, "%d:%d\t%s\t%q\n", token.Line, token.Column, token.Kind, token.Text)
	}
	return tw.Flush()
}

// WriteProgram dumps program as an indented tree, or its node tree in json and yaml.
func WriteProgram(w io.Writer, program *internal.Program, format Format) error {
	root := DumpProgram(program)
	if format != FormatText && format != "" {
		return encode(w, root, format)
	}
	return WriteTree(w, root)
}

func encode(w io.Writer, v interface{}, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("report: unknown format %q", format)
}
