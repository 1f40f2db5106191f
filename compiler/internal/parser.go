package internal

import (
	"fmt"
	"strings"
)

// ParseError is returned for the first grammar violation found. There is no recovery:
// once returned, the parse is abandoned and no partial program is produced.
type ParseError struct {
	Expected []TokenType
	Found    TokenType
	Text     string
	Line     int
	Column   int
}

func (e *ParseError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("unexpected token %s at %d:%d", e.Found, e.Line, e.Column)
	}
	expected := make([]string, 0, len(e.Expected))
	for _, tp := range e.Expected {
		expected = append(expected, tp.String())
	}
	return fmt.Sprintf("expected %s but got %s at %d:%d", strings.Join(expected, "/"), e.Found,
		e.Line, e.Column)
}

// Parser is a lookahead-1 recursive descent parser. The only place it peeks a second
// token is to tell `x := ...` apart from an expression statement starting with `x`.
type Parser struct {
	currentTokenPos int
	currentTokens   []*Token
}

// Parse builds the program for tokens, which should end with an EOFTP token as produced
// by Tokenizer. A missing EOFTP is supplied.
func (parser *Parser) Parse(tokens []*Token) (*Program, error) {
	parser.reset()
	parser.currentTokens = withEOF(tokens)
	return parser.ParseProgram()
}

func (parser *Parser) reset() {
	parser.currentTokenPos, parser.currentTokens = 0, nil
}

func withEOF(tokens []*Token) []*Token {
	if len(tokens) > 0 && tokens[len(tokens)-1].tp == EOFTP {
		return tokens
	}
	eof := &Token{tp: EOFTP, line: 1, column: 1}
	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		eof.line, eof.column = last.line, last.column+len([]rune(last.content))
		eof.startPos, eof.endPos = last.endPos, last.endPos
	}
	ret := make([]*Token, 0, len(tokens)+1)
	return append(append(ret, tokens...), eof)
}

// Program := (VarDecl | Statement)* EOF
func (parser *Parser) ParseProgram() (*Program, error) {
	program := &Program{Items: []Item{}}
	for !parser.matchToken(EOFTP) {
		var item Item
		var err error
		if parser.matchToken(VarTP) {
			item, err = parser.parseVarDeclareStatement()
		} else {
			item, err = parser.parseStatement()
		}
		if err != nil {
			return nil, err
		}
		program.Items = append(program.Items, item)
	}
	return program, nil
}

// var x : Boolean;
func (parser *Parser) parseVarDeclareStatement() (*VarDeclareAst, error) {
	_, match := parser.expectToken(VarTP, true)
	if !match {
		return nil, parser.makeError(VarTP)
	}
	varNameToken, match := parser.expectToken(IdentifierTP, true)
	if !match {
		return nil, parser.makeError(IdentifierTP)
	}
	_, match = parser.expectToken(ColonTP, true)
	if !match {
		return nil, parser.makeError(ColonTP)
	}
	varType, err := parser.parseVariableType()
	if err != nil {
		return nil, err
	}
	_, match = parser.expectToken(SemiColonTP, true)
	if !match {
		return nil, parser.makeError(SemiColonTP)
	}
	return &VarDeclareAst{VarName: varNameToken.content, VarType: varType}, nil
}

func (parser *Parser) parseVariableType() (VariableType, error) {
	token := parser.getCurrentToken()
	var v VariableType
	switch token.tp {
	case BooleanTP:
		v = BooleanVariableType
	case CharTP:
		v = CharVariableType
	default:
		return UnknownVariableType, parser.makeError(BooleanTP, CharTP)
	}
	parser.stepForward()
	return v, nil
}

func (parser *Parser) parseStatement() (Statement, error) {
	token := parser.getCurrentToken()
	switch token.tp {
	case IdentifierTP:
		if parser.peekToken(1).tp == AssignTP {
			return parser.parseAssignStatement()
		}
	case PrintTP:
		return parser.parsePrintStatement()
	case IfTP:
		return parser.parseIfStatement()
	case WhileTP:
		return parser.parseWhileStatement()
	}
	return parser.parseExpressionStatement()
}

// parseStatements parses statements until one of terminators or the end of input. The
// terminator is left for the caller. The result is never nil.
func (parser *Parser) parseStatements(terminators ...TokenType) ([]Statement, error) {
	stms := []Statement{}
	for !parser.matchToken(EOFTP) && !parser.matchToken(terminators...) {
		stm, err := parser.parseStatement()
		if err != nil {
			return nil, err
		}
		stms = append(stms, stm)
	}
	return stms, nil
}

// x := expr;
func (parser *Parser) parseAssignStatement() (Statement, error) {
	varNameToken, match := parser.expectToken(IdentifierTP, true)
	if !match {
		return nil, parser.makeError(IdentifierTP)
	}
	_, match = parser.expectToken(AssignTP, true)
	if !match {
		return nil, parser.makeError(AssignTP)
	}
	value, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	_, match = parser.expectToken(SemiColonTP, true)
	if !match {
		return nil, parser.makeError(SemiColonTP)
	}
	return &AssignStatementAst{VarName: varNameToken.content, Value: value}, nil
}

// print(expr);
func (parser *Parser) parsePrintStatement() (Statement, error) {
	missing, match := parser.expectTokens(PrintTP, LeftParentThesesTP)
	if !match {
		return nil, parser.makeError(missing)
	}
	value, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	missing, match = parser.expectTokens(RightParentThesesTP, SemiColonTP)
	if !match {
		return nil, parser.makeError(missing)
	}
	return &PrintStatementAst{Value: value}, nil
}

// if condition then statements [else statements] end;
func (parser *Parser) parseIfStatement() (Statement, error) {
	_, match := parser.expectToken(IfTP, true)
	if !match {
		return nil, parser.makeError(IfTP)
	}
	condition, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	_, match = parser.expectToken(ThenTP, true)
	if !match {
		return nil, parser.makeError(ThenTP)
	}
	ifTrueStatements, err := parser.parseStatements(ElseTP, EndTP)
	if err != nil {
		return nil, err
	}
	elseStatements := []Statement{}
	_, match = parser.expectToken(ElseTP, true)
	if match {
		elseStatements, err = parser.parseStatements(EndTP)
		if err != nil {
			return nil, err
		}
	}
	missing, match := parser.expectTokens(EndTP, SemiColonTP)
	if !match {
		return nil, parser.makeError(missing)
	}
	return &IfStatementAst{
		Condition:        condition,
		IfTrueStatements: ifTrueStatements,
		ElseStatements:   elseStatements,
	}, nil
}

// while condition do statements end;
func (parser *Parser) parseWhileStatement() (Statement, error) {
	_, match := parser.expectToken(WhileTP, true)
	if !match {
		return nil, parser.makeError(WhileTP)
	}
	condition, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	_, match = parser.expectToken(DoTP, true)
	if !match {
		return nil, parser.makeError(DoTP)
	}
	statements, err := parser.parseStatements(EndTP)
	if err != nil {
		return nil, err
	}
	missing, match := parser.expectTokens(EndTP, SemiColonTP)
	if !match {
		return nil, parser.makeError(missing)
	}
	return &WhileStatementAst{Condition: condition, Statements: statements}, nil
}

// expr;
func (parser *Parser) parseExpressionStatement() (Statement, error) {
	value, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	_, match := parser.expectToken(SemiColonTP, true)
	if !match {
		return nil, parser.makeError(SemiColonTP)
	}
	return &ExpressionStatementAst{Value: value}, nil
}

func (parser *Parser) getCurrentToken() *Token {
	return parser.peekToken(0)
}

// peekToken returns the token offset positions ahead, the EOFTP token once past the end.
func (parser *Parser) peekToken(offset int) *Token {
	pos := parser.currentTokenPos + offset
	if pos >= len(parser.currentTokens) {
		pos = len(parser.currentTokens) - 1
	}
	return parser.currentTokens[pos]
}

func (parser *Parser) stepForward() {
	if parser.currentTokenPos < len(parser.currentTokens)-1 {
		parser.currentTokenPos++
	}
}

func (parser *Parser) matchToken(tps ...TokenType) bool {
	current := parser.getCurrentToken().tp
	for _, tp := range tps {
		if current == tp {
			return true
		}
	}
	return false
}

// expectTokens consumes expectedTokenTPs in order and stops at the first mismatch, which
// is then the current token. The token type that failed is returned.
func (parser *Parser) expectTokens(expectedTokenTPs ...TokenType) (TokenType, bool) {
	for _, tokenType := range expectedTokenTPs {
		_, ok := parser.expectToken(tokenType, true)
		if !ok {
			return tokenType, false
		}
	}
	return EOFTP, true
}

func (parser *Parser) expectToken(expectedTokenTp TokenType, walk bool) (*Token, bool) {
	token := parser.getCurrentToken()
	if token.tp != expectedTokenTp {
		return nil, false
	}
	if walk {
		parser.stepForward()
	}
	return token, true
}

// makeError reports the current token as the offending one.
func (parser *Parser) makeError(expected ...TokenType) error {
	token := parser.getCurrentToken()
	return &ParseError{
		Expected: expected,
		Found:    token.tp,
		Text:     token.content,
		Line:     token.line,
		Column:   token.column,
	}
}
