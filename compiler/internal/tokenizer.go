package internal

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xiaobogaga/charon/util"
)

// A simple Tokenizer for charon.

// Charon language has those elements:
// * KeyWord: var, if, then, else, end, while, do, print, Boolean, Char, True, False, or, and,
// 			return, func.
// * Symbol: :=, <=, >=, =, <, >, +, :, ;, (, ), ,.
// * Constant: character ('a' or '\n').
// * Identifier: letters, digits, underscore, not starting with a digit.
// * Comment: //.
// Anything else becomes a single UnknownTP token and is left to the parser to reject.

type TokenType int

const (
	CommentTP           TokenType = iota // //, discarded
	WhiteSpaceTP                         // discarded
	AssignTP                             // :=
	LessEqualTP                          // <=
	GreaterEqualTP                       // >=
	CharacterTP                          // 'a'
	IdentifierTP                         // varA
	EqualTP                              // =
	LessTP                               // <
	GreaterTP                            // >
	AddTP                                // +
	ColonTP                              // :
	SemiColonTP                          // ;
	LeftParentThesesTP                   // (
	RightParentThesesTP                  // )
	CommaTP                              // ,
	VarTP                                // var
	IfTP                                 // if
	ThenTP                               // then
	ElseTP                               // else
	EndTP                                // end
	WhileTP                              // while
	DoTP                                 // do
	PrintTP                              // print
	BooleanTP                            // Boolean
	CharTP                               // Char
	TrueTP                               // True
	FalseTP                              // False
	OrTP                                 // or
	AndTP                                // and
	ReturnTP                             // return, reserved
	FuncTP                               // func, reserved
	UnknownTP                            // any other character
	EOFTP                                // end of input
)

var tokenTypeNames = [...]string{
	CommentTP:           "COMMENT",
	WhiteSpaceTP:        "WHITESPACE",
	AssignTP:            "ASSIGN",
	LessEqualTP:         "LE",
	GreaterEqualTP:      "GE",
	CharacterTP:         "CHAR_LIT",
	IdentifierTP:        "IDENT",
	EqualTP:             "EQ",
	LessTP:              "LT",
	GreaterTP:           "GT",
	AddTP:               "PLUS",
	ColonTP:             "COLON",
	SemiColonTP:         "SEMICOLON",
	LeftParentThesesTP:  "LPAREN",
	RightParentThesesTP: "RPAREN",
	CommaTP:             "COMMA",
	VarTP:               "VAR",
	IfTP:                "IF",
	ThenTP:              "THEN",
	ElseTP:              "ELSE",
	EndTP:               "END",
	WhileTP:             "WHILE",
	DoTP:                "DO",
	PrintTP:             "PRINT",
	BooleanTP:           "BOOLEAN",
	CharTP:              "CHAR",
	TrueTP:              "TRUE",
	FalseTP:             "FALSE",
	OrTP:                "OR",
	AndTP:               "AND",
	ReturnTP:            "RETURN",
	FuncTP:              "FUNC",
	UnknownTP:           "UNKNOWN",
	EOFTP:               "EOF",
}

func (tp TokenType) String() string {
	if tp < 0 || int(tp) >= len(tokenTypeNames) {
		return fmt.Sprintf("TokenType(%d)", int(tp))
	}
	return tokenTypeNames[tp]
}

// keyWordTokenTPMap is the mapping from identifier to the corresponding TokenTP. Lookup is
// case-sensitive: "Boolean" is a keyword, "boolean" is an identifier.
var keyWordTokenTPMap = map[string]TokenType{
	"var":     VarTP,
	"if":      IfTP,
	"then":    ThenTP,
	"else":    ElseTP,
	"end":     EndTP,
	"while":   WhileTP,
	"do":      DoTP,
	"print":   PrintTP,
	"Boolean": BooleanTP,
	"Char":    CharTP,
	"True":    TrueTP,
	"False":   FalseTP,
	"or":      OrTP,
	"and":     AndTP,
	"return":  ReturnTP,
	"func":    FuncTP,
}

// Token is immutable once the tokenizer produced it. startPos and endPos are byte offsets
// into the source, line and column are 1-based and count characters, not bytes.
type Token struct {
	content  string
	line     int
	column   int
	startPos int
	endPos   int
	tp       TokenType
}

func (t *Token) Type() TokenType { return t.tp }
func (t *Token) Content() string { return t.content }
func (t *Token) Line() int       { return t.line }
func (t *Token) Column() int     { return t.column }
func (t *Token) StartPos() int   { return t.startPos }
func (t *Token) EndPos() int     { return t.endPos }

func (t *Token) String() string {
	return fmt.Sprintf("%s(%q, l=%d, c=%d)", t.tp, t.content, t.line, t.column)
}

// lexicalCategory recognizes one family of tokens. match returns the length in bytes of
// the span starting at pos, or 0 when the category doesn't apply there.
type lexicalCategory struct {
	tp    TokenType
	match func(src []byte, pos int) int
}

// lexicalCategories is scanned in order and the first category matching wins, so the two
// characters operators must come before their one character prefixes.
var lexicalCategories = []lexicalCategory{
	{tp: CommentTP, match: matchComment},
	{tp: WhiteSpaceTP, match: matchWhiteSpace},
	{tp: AssignTP, match: matchLiteral(":=")},
	{tp: LessEqualTP, match: matchLiteral("<=")},
	{tp: GreaterEqualTP, match: matchLiteral(">=")},
	{tp: CharacterTP, match: matchCharacter},
	{tp: IdentifierTP, match: matchIdentifier},
	{tp: EqualTP, match: matchLiteral("=")},
	{tp: LessTP, match: matchLiteral("<")},
	{tp: GreaterTP, match: matchLiteral(">")},
	{tp: AddTP, match: matchLiteral("+")},
	{tp: ColonTP, match: matchLiteral(":")},
	{tp: SemiColonTP, match: matchLiteral(";")},
	{tp: LeftParentThesesTP, match: matchLiteral("(")},
	{tp: RightParentThesesTP, match: matchLiteral(")")},
	{tp: CommaTP, match: matchLiteral(",")},
	{tp: UnknownTP, match: matchUnknown},
}

func matchComment(src []byte, pos int) int {
	if pos+1 >= len(src) || src[pos] != '/' || src[pos+1] != '/' {
		return 0
	}
	end := pos + 2
	for end < len(src) && !util.IsNewLine(src[end]) {
		end++
	}
	return end - pos
}

func matchWhiteSpace(src []byte, pos int) int {
	end := pos
	for end < len(src) && util.IsWhiteSpace(src[end]) {
		end++
	}
	return end - pos
}

func matchLiteral(symbol string) func(src []byte, pos int) int {
	return func(src []byte, pos int) int {
		if len(src)-pos < len(symbol) || string(src[pos:pos+len(symbol)]) != symbol {
			return 0
		}
		return len(symbol)
	}
}

// A character literal is a quote, one character or a backslash followed by one character,
// and a closing quote. The escaped character can be anything but a newline.
func matchCharacter(src []byte, pos int) int {
	if src[pos] != '\'' || pos+1 >= len(src) {
		return 0
	}
	end := pos + 1
	r, size := utf8.DecodeRune(src[end:])
	switch r {
	case '\'':
		return 0
	case '\\':
		end += size
		if end >= len(src) {
			return 0
		}
		r, size = utf8.DecodeRune(src[end:])
		if r == '\n' {
			return 0
		}
	}
	end += size
	if end >= len(src) || src[end] != '\'' {
		return 0
	}
	return end + 1 - pos
}

func matchIdentifier(src []byte, pos int) int {
	if !util.IsIdentifierStart(src[pos]) {
		return 0
	}
	end := pos + 1
	for end < len(src) && util.IsIdentifierPart(src[end]) {
		end++
	}
	return end - pos
}

// matchUnknown takes exactly one character, never a newline.
func matchUnknown(src []byte, pos int) int {
	r, size := utf8.DecodeRune(src[pos:])
	if r == '\n' {
		return 0
	}
	return size
}

// TokenizeError means some input is covered by no lexical category. The catch-all category
// makes this unreachable for the default rule set, so seeing one is a tokenizer bug.
type TokenizeError struct {
	StartPos int
	EndPos   int
	Line     int
	Column   int
	Near     string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("tokenizer: no lexical category covers bytes [%d, %d) %q at %d:%d",
		e.StartPos, e.EndPos, e.Near, e.Line, e.Column)
}

type Tokenizer struct {
	currentPos    int
	currentLine   int
	currentColumn int
	tokens        []*Token

	// categories overrides lexicalCategories, nil means the default rule set.
	categories []lexicalCategory
}

// Tokenize reads the whole source `rd` and tokenizes its content according to charon
// language rules. The returned slice always ends with a single EOFTP token.
func (tokenizer *Tokenizer) Tokenize(rd io.Reader) ([]*Token, error) {
	src, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	return tokenizer.TokenizeBytes(src)
}

func (tokenizer *Tokenizer) TokenizeBytes(src []byte) ([]*Token, error) {
	tokenizer.Reset()
	for tokenizer.currentPos < len(src) {
		token, err := tokenizer.getNextToken(src)
		if err != nil {
			return nil, err
		}
		tokenizer.stepForward(src[token.startPos:token.endPos])
		switch token.tp {
		case CommentTP, WhiteSpaceTP:
			continue
		default:
			tokenizer.tokens = append(tokenizer.tokens, token)
		}
	}
	tokenizer.tokens = append(tokenizer.tokens, &Token{
		line:     tokenizer.currentLine,
		column:   tokenizer.currentColumn,
		startPos: tokenizer.currentPos,
		endPos:   tokenizer.currentPos,
		tp:       EOFTP,
	})
	return tokenizer.tokens, nil
}

// getNextToken returns the token starting at the current position.
func (tokenizer *Tokenizer) getNextToken(src []byte) (*Token, error) {
	categories := tokenizer.categories
	if categories == nil {
		categories = lexicalCategories
	}
	for _, category := range categories {
		n := category.match(src, tokenizer.currentPos)
		if n <= 0 {
			continue
		}
		tp := category.tp
		content := string(src[tokenizer.currentPos : tokenizer.currentPos+n])
		if tp == IdentifierTP {
			if keyWordTP, isKeyWord := keyWordTokenTPMap[content]; isKeyWord {
				tp = keyWordTP
			}
		}
		return &Token{
			content:  content,
			line:     tokenizer.currentLine,
			column:   tokenizer.currentColumn,
			startPos: tokenizer.currentPos,
			endPos:   tokenizer.currentPos + n,
			tp:       tp,
		}, nil
	}
	return nil, tokenizer.makeError(src)
}

// stepForward moves the cursor over span. A newline resets the column to one plus the
// characters following the last newline of the span.
func (tokenizer *Tokenizer) stepForward(span []byte) {
	tokenizer.currentPos += len(span)
	lastNewLine := -1
	for i, b := range span {
		if util.IsNewLine(b) {
			tokenizer.currentLine++
			lastNewLine = i
		}
	}
	if lastNewLine < 0 {
		tokenizer.currentColumn += utf8.RuneCount(span)
		return
	}
	tokenizer.currentColumn = utf8.RuneCount(span[lastNewLine+1:]) + 1
}

func (tokenizer *Tokenizer) makeError(src []byte) error {
	_, size := utf8.DecodeRune(src[tokenizer.currentPos:])
	return &TokenizeError{
		StartPos: tokenizer.currentPos,
		EndPos:   tokenizer.currentPos + size,
		Line:     tokenizer.currentLine,
		Column:   tokenizer.currentColumn,
		Near:     string(src[tokenizer.currentPos : tokenizer.currentPos+size]),
	}
}

func (tokenizer *Tokenizer) Reset() {
	tokenizer.currentPos, tokenizer.currentLine, tokenizer.currentColumn = 0, 1, 1
	tokenizer.tokens = nil
}
