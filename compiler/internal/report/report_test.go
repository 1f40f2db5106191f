package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaobogaga/charon/compiler/internal"
	"gopkg.in/yaml.v3"
)

func testBatch(t *testing.T) *internal.BatchResult {
	units := []internal.Unit{
		{Name: "ok.charon", Source: []byte("var c : Char; c := 'A'; print(c + 'B');")},
		{Name: "bad.charon", Source: []byte("x := True; y := 'a'; z := 'b';")},
		{Name: "broken.charon", Source: []byte("var x : Boolean")},
	}
	batch, err := internal.CompileBatch(context.Background(), units, 2, nil)
	require.Nil(t, err)
	return batch
}

func TestParseFormat(t *testing.T) {
	testData := []struct {
		input    string
		expected Format
		hasErr   bool
	}{
		{input: "text", expected: FormatText},
		{input: "JSON", expected: FormatJSON},
		{input: "yaml", expected: FormatYAML},
		{input: "xml", hasErr: true},
		{input: "", hasErr: true},
	}
	for _, data := range testData {
		f, err := ParseFormat(data.input)
		assert.Equal(t, data.hasErr, err != nil, data.input)
		assert.Equal(t, data.expected, f)
	}
}

func TestNewBatchReport(t *testing.T) {
	batch := testBatch(t)
	report := NewBatchReport(batch, 2)
	assert.Equal(t, batch.RunID, report.RunID)
	assert.True(t, report.Failed)
	require.Len(t, report.Units, 3)

	ok := report.Units[0]
	assert.Equal(t, StatusOK, ok.Status)
	assert.Equal(t, "no semantic errors", ok.Summary)
	assert.Equal(t, []SymbolReport{{Name: "c", Type: "Char"}}, ok.Symbols)

	bad := report.Units[1]
	assert.Equal(t, StatusErrors, bad.Status)
	assert.Equal(t, "3 semantic error(s) found", bad.Summary)
	assert.Equal(t, []DiagnosticReport{
		{Kind: "not declared", Message: "Variable 'x' not declared before assignment."},
		{Kind: "not declared", Message: "Variable 'y' not declared before assignment."},
	}, bad.Diagnostics)
	assert.Equal(t, 1, bad.Omitted)

	broken := report.Units[2]
	assert.Equal(t, StatusFailed, broken.Status)
	assert.Equal(t, "broken.charon: expected SEMICOLON but got EOF at 1:16", broken.Error)
	assert.Len(t, broken.Diagnostics, 0)
}

func TestWriteBatch_Text(t *testing.T) {
	batch := testBatch(t)
	buf := &bytes.Buffer{}
	err := WriteBatch(buf, batch, Options{Format: FormatText, MaxDiagnostics: 1})
	assert.Nil(t, err)
	expected := strings.Join([]string{
		"ok.charon: no semantic errors",
		"bad.charon: 3 semantic error(s) found",
		"  error: Variable 'x' not declared before assignment.",
		"  ... 2 more",
		"broken.charon: failed",
		"  broken.charon: expected SEMICOLON but got EOF at 1:16",
		"run " + batch.RunID + ": 3 unit(s), 2 failed",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestWriteBatch_Encoded(t *testing.T) {
	batch := testBatch(t)

	buf := &bytes.Buffer{}
	assert.Nil(t, WriteBatch(buf, batch, Options{Format: FormatJSON}))
	fromJSON := &BatchReport{}
	assert.Nil(t, json.Unmarshal(buf.Bytes(), fromJSON))
	assert.Equal(t, NewBatchReport(batch, 0), fromJSON)
	assert.True(t, strings.Contains(buf.String(), `"run_id": "`+batch.RunID+`"`))

	buf.Reset()
	assert.Nil(t, WriteBatch(buf, batch, Options{Format: FormatYAML}))
	fromYAML := &BatchReport{}
	assert.Nil(t, yaml.Unmarshal(buf.Bytes(), fromYAML))
	assert.Equal(t, NewBatchReport(batch, 0), fromYAML)
	assert.True(t, strings.Contains(buf.String(), "run_id: "+batch.RunID))
}

func TestWriteTokens(t *testing.T) {
	tokenizer := &internal.Tokenizer{}
	tokens, err := tokenizer.TokenizeBytes([]byte("var x : Char;"))
	require.Nil(t, err)

	buf := &bytes.Buffer{}
	assert.Nil(t, WriteTokens(buf, tokens, FormatText))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, `1:1   VAR        "var"`, lines[0])
	assert.Equal(t, `1:14  EOF        ""`, lines[5])

	buf.Reset()
	assert.Nil(t, WriteTokens(buf, tokens, FormatJSON))
	reports := []TokenReport{}
	assert.Nil(t, json.Unmarshal(buf.Bytes(), &reports))
	assert.Equal(t, TokenReport{Kind: "COLON", Text: ":", Line: 1, Column: 7}, reports[2])
}
