package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseTestProgram(t *testing.T, content string) (*Program, error) {
	tokenizer := &Tokenizer{}
	tokens, err := tokenizer.TokenizeBytes([]byte(content))
	assert.Nil(t, err)
	parser := &Parser{}
	return parser.Parse(tokens)
}

func parseTestExpression(t *testing.T, content string) Expression {
	program, err := parseTestProgram(t, content+";")
	assert.Nil(t, err, content)
	if err != nil {
		return nil
	}
	assert.Len(t, program.Items, 1)
	stm, ok := program.Items[0].(*ExpressionStatementAst)
	assert.True(t, ok, content)
	if !ok {
		return nil
	}
	return stm.Value
}

func ident(name string) *IdentifierAst {
	return &IdentifierAst{Name: name}
}

func binary(op OpCode, l, r Expression) *BinaryExpressionAst {
	return &BinaryExpressionAst{Op: op, LeftExpr: l, RightExpr: r}
}

func TestParser_ParseExpression(t *testing.T) {
	testData := []struct {
		content  string
		expected Expression
	}{
		{content: "a", expected: ident("a")},
		{content: "True", expected: &BooleanConstantAst{Value: true}},
		{content: "False", expected: &BooleanConstantAst{Value: false}},
		{content: "'A'", expected: &CharacterConstantAst{RawText: "'A'"}},
		{content: `'\n'`, expected: &CharacterConstantAst{RawText: `'\n'`}},
		{content: "a or b", expected: binary(OrOpTP, ident("a"), ident("b"))},
		{content: "a or b and c", expected: binary(OrOpTP, ident("a"), binary(AndOpTP, ident("b"), ident("c")))},
		{content: "a and b or c", expected: binary(OrOpTP, binary(AndOpTP, ident("a"), ident("b")), ident("c"))},
		{content: "a or b or c", expected: binary(OrOpTP, binary(OrOpTP, ident("a"), ident("b")), ident("c"))},
		{content: "a and b and c", expected: binary(AndOpTP, binary(AndOpTP, ident("a"), ident("b")), ident("c"))},
		{content: "a + b + c", expected: binary(AddOpTP, binary(AddOpTP, ident("a"), ident("b")), ident("c"))},
		{content: "a + (b + c)", expected: binary(AddOpTP, ident("a"), binary(AddOpTP, ident("b"), ident("c")))},
		{content: "a + b < c", expected: binary(LessOpTP, binary(AddOpTP, ident("a"), ident("b")), ident("c"))},
		{content: "a = b", expected: binary(EqualOpTP, ident("a"), ident("b"))},
		{content: "a <= b", expected: binary(LessEqualOpTP, ident("a"), ident("b"))},
		{content: "a > b", expected: binary(GreaterOpTP, ident("a"), ident("b"))},
		{content: "a >= b", expected: binary(GreaterEqualOpTP, ident("a"), ident("b"))},
		{content: "a < b and c = d", expected: binary(AndOpTP, binary(LessOpTP, ident("a"), ident("b")),
			binary(EqualOpTP, ident("c"), ident("d")))},
		{content: "(a < b) < c", expected: binary(LessOpTP, binary(LessOpTP, ident("a"), ident("b")), ident("c"))},
		{content: "((a))", expected: ident("a")},
		{content: "f(a + b)", expected: &CallAst{FuncName: "f", Argument: binary(AddOpTP, ident("a"), ident("b"))}},
		{content: "f(g(a)) + b", expected: binary(AddOpTP,
			&CallAst{FuncName: "f", Argument: &CallAst{FuncName: "g", Argument: ident("a")}}, ident("b"))},
	}
	for _, data := range testData {
		assert.Equal(t, data.expected, parseTestExpression(t, data.content), data.content)
	}
}

func TestParser_ParseProgram(t *testing.T) {
	content := `
		var b : Boolean;
		var c : Char;
		c := 'A';
		print(c + 'B');
		if b then c := 'x'; else c := 'y'; end;
		while not_done do end;
		b;
	`
	program, err := parseTestProgram(t, content)
	assert.Nil(t, err)
	expected := &Program{Items: []Item{
		&VarDeclareAst{VarName: "b", VarType: BooleanVariableType},
		&VarDeclareAst{VarName: "c", VarType: CharVariableType},
		&AssignStatementAst{VarName: "c", Value: &CharacterConstantAst{RawText: "'A'"}},
		&PrintStatementAst{Value: binary(AddOpTP, ident("c"), &CharacterConstantAst{RawText: "'B'"})},
		&IfStatementAst{
			Condition:        ident("b"),
			IfTrueStatements: []Statement{&AssignStatementAst{VarName: "c", Value: &CharacterConstantAst{RawText: "'x'"}}},
			ElseStatements:   []Statement{&AssignStatementAst{VarName: "c", Value: &CharacterConstantAst{RawText: "'y'"}}},
		},
		&WhileStatementAst{Condition: ident("not_done"), Statements: []Statement{}},
		&ExpressionStatementAst{Value: ident("b")},
	}}
	assert.Equal(t, expected, program)
}

func TestParser_EmptyBranches(t *testing.T) {
	testData := []string{
		"if True then end;",
		"if True then else end;",
	}
	for _, content := range testData {
		program, err := parseTestProgram(t, content)
		assert.Nil(t, err, content)
		stm := program.Items[0].(*IfStatementAst)
		assert.NotNil(t, stm.IfTrueStatements)
		assert.NotNil(t, stm.ElseStatements)
		assert.Len(t, stm.IfTrueStatements, 0)
		assert.Len(t, stm.ElseStatements, 0)
	}
	program, err := parseTestProgram(t, "while False do end;")
	assert.Nil(t, err)
	assert.NotNil(t, program.Items[0].(*WhileStatementAst).Statements)
}

func TestParser_NestedStatements(t *testing.T) {
	content := "while a do if b then print(c); end; a := False; end;"
	program, err := parseTestProgram(t, content)
	assert.Nil(t, err)
	assert.Len(t, program.Items, 1)
	while := program.Items[0].(*WhileStatementAst)
	assert.Len(t, while.Statements, 2)
	inner := while.Statements[0].(*IfStatementAst)
	assert.Equal(t, []Statement{&PrintStatementAst{Value: ident("c")}}, inner.IfTrueStatements)
	assert.Equal(t, &AssignStatementAst{VarName: "a", Value: &BooleanConstantAst{Value: false}}, while.Statements[1])
}

func TestParser_Empty(t *testing.T) {
	program, err := parseTestProgram(t, "  // nothing here\n")
	assert.Nil(t, err)
	assert.NotNil(t, program.Items)
	assert.Len(t, program.Items, 0)
}

func TestParser_ParseError(t *testing.T) {
	testData := []struct {
		content  string
		expected []TokenType
		found    TokenType
		line     int
		column   int
	}{
		{content: "a < b < c;", expected: []TokenType{SemiColonTP}, found: LessTP, line: 1, column: 7},
		{content: "a = b = c;", expected: []TokenType{SemiColonTP}, found: EqualTP, line: 1, column: 7},
		{content: "var x Boolean;", expected: []TokenType{ColonTP}, found: BooleanTP, line: 1, column: 7},
		{content: "var x : Int;", expected: []TokenType{BooleanTP, CharTP}, found: IdentifierTP, line: 1, column: 9},
		{content: "var 1 : Char;", expected: []TokenType{IdentifierTP}, found: UnknownTP, line: 1, column: 5},
		{content: "x := 'A'", expected: []TokenType{SemiColonTP}, found: EOFTP, line: 1, column: 9},
		{content: "print x;", expected: []TokenType{LeftParentThesesTP}, found: IdentifierTP, line: 1, column: 7},
		{content: "print((a) ;", expected: []TokenType{RightParentThesesTP}, found: SemiColonTP, line: 1, column: 11},
		{content: "if a print(a); end;", expected: []TokenType{ThenTP}, found: PrintTP, line: 1, column: 6},
		{content: "if a then\nprint(a);", expected: []TokenType{EndTP}, found: EOFTP, line: 2, column: 10},
		{content: "if a then end", expected: []TokenType{SemiColonTP}, found: EOFTP, line: 1, column: 14},
		{content: "while a end;", expected: []TokenType{DoTP}, found: EndTP, line: 1, column: 9},
		{content: "x := ;", expected: []TokenType{IdentifierTP, CharacterTP, TrueTP, FalseTP, LeftParentThesesTP},
			found: SemiColonTP, line: 1, column: 6},
		{content: "x := a +;", expected: []TokenType{IdentifierTP, CharacterTP, TrueTP, FalseTP, LeftParentThesesTP},
			found: SemiColonTP, line: 1, column: 9},
		{content: "f(a, b);", expected: []TokenType{RightParentThesesTP}, found: CommaTP, line: 1, column: 4},
		{content: "end;", expected: []TokenType{IdentifierTP, CharacterTP, TrueTP, FalseTP, LeftParentThesesTP},
			found: EndTP, line: 1, column: 1},
		{content: "else", expected: []TokenType{IdentifierTP, CharacterTP, TrueTP, FalseTP, LeftParentThesesTP},
			found: ElseTP, line: 1, column: 1},
	}
	for _, data := range testData {
		program, err := parseTestProgram(t, data.content)
		assert.Nil(t, program, data.content)
		var parseErr *ParseError
		if !assert.True(t, errors.As(err, &parseErr), data.content) {
			continue
		}
		assert.Equal(t, data.expected, parseErr.Expected, data.content)
		assert.Equal(t, data.found, parseErr.Found, data.content)
		assert.Equal(t, data.line, parseErr.Line, data.content)
		assert.Equal(t, data.column, parseErr.Column, data.content)
	}
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{Expected: []TokenType{EndTP, ElseTP}, Found: EOFTP, Line: 3, Column: 2}
	assert.Equal(t, "expected END/ELSE but got EOF at 3:2", err.Error())
	err = &ParseError{Found: UnknownTP, Text: "#", Line: 1, Column: 1}
	assert.Equal(t, "unexpected token UNKNOWN at 1:1", err.Error())
}

func TestParser_MissingEOF(t *testing.T) {
	tokenizer := &Tokenizer{}
	tokens, err := tokenizer.TokenizeBytes([]byte("print(a);"))
	assert.Nil(t, err)
	parser := &Parser{}
	program, err := parser.Parse(tokens[:len(tokens)-1])
	assert.Nil(t, err)
	assert.Len(t, program.Items, 1)

	program, err = parser.Parse(nil)
	assert.Nil(t, err)
	assert.Len(t, program.Items, 0)
}

func TestParser_Deterministic(t *testing.T) {
	content := "var a : Boolean; a := a or a and (a = a); if a then print(a); end;"
	first, err := parseTestProgram(t, content)
	assert.Nil(t, err)
	second, err := parseTestProgram(t, content)
	assert.Nil(t, err)
	assert.Equal(t, first, second)
}
