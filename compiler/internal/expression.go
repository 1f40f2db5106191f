package internal

// Expressions are parsed with one method per precedence level, lowest binding first:
//
//	Expr    := Or
//	Or      := And ('or' And)*
//	And     := Rel ('and' Rel)*
//	Rel     := Add (('='|'<'|'<='|'>'|'>=') Add)?
//	Add     := Primary ('+' Primary)*
//	Primary := IDENT ('(' Expr ')')? | CHAR_LIT | 'True' | 'False' | '(' Expr ')'
//
// or, and, + are left associative. Relational operators don't associate at all: Rel takes at
// most one operator, so `a < b < c` leaves the second '<' to the caller, which fails on it.

func (parser *Parser) parseExpression() (Expression, error) {
	return parser.parseOrExpression()
}

func (parser *Parser) parseOrExpression() (Expression, error) {
	left, err := parser.parseAndExpression()
	if err != nil {
		return nil, err
	}
	for parser.matchToken(OrTP) {
		parser.stepForward()
		right, err := parser.parseAndExpression()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpressionAst{Op: OrOpTP, LeftExpr: left, RightExpr: right}
	}
	return left, nil
}

func (parser *Parser) parseAndExpression() (Expression, error) {
	left, err := parser.parseRelationalExpression()
	if err != nil {
		return nil, err
	}
	for parser.matchToken(AndTP) {
		parser.stepForward()
		right, err := parser.parseRelationalExpression()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpressionAst{Op: AndOpTP, LeftExpr: left, RightExpr: right}
	}
	return left, nil
}

func (parser *Parser) parseRelationalExpression() (Expression, error) {
	left, err := parser.parseAddExpression()
	if err != nil {
		return nil, err
	}
	op, isRelational := relationalOpTokenMap[parser.getCurrentToken().tp]
	if !isRelational {
		return left, nil
	}
	parser.stepForward()
	right, err := parser.parseAddExpression()
	if err != nil {
		return nil, err
	}
	return &BinaryExpressionAst{Op: op, LeftExpr: left, RightExpr: right}, nil
}

func (parser *Parser) parseAddExpression() (Expression, error) {
	left, err := parser.parseExpressionTerm()
	if err != nil {
		return nil, err
	}
	for parser.matchToken(AddTP) {
		parser.stepForward()
		right, err := parser.parseExpressionTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpressionAst{Op: AddOpTP, LeftExpr: left, RightExpr: right}
	}
	return left, nil
}

// parseExpressionTerm parses a Primary.
func (parser *Parser) parseExpressionTerm() (Expression, error) {
	token := parser.getCurrentToken()
	switch token.tp {
	// When it's identifier, it can be a call or a variable like: i
	case IdentifierTP:
		return parser.parseCallOrIdentifierTerm()
	case CharacterTP:
		parser.stepForward()
		return &CharacterConstantAst{RawText: token.content}, nil
	case TrueTP:
		parser.stepForward()
		return &BooleanConstantAst{Value: true}, nil
	case FalseTP:
		parser.stepForward()
		return &BooleanConstantAst{Value: false}, nil
	case LeftParentThesesTP:
		return parser.parseSubExpressionTerm()
	}
	return nil, parser.makeError(IdentifierTP, CharacterTP, TrueTP, FalseTP, LeftParentThesesTP)
}

func (parser *Parser) parseCallOrIdentifierTerm() (Expression, error) {
	nameToken, match := parser.expectToken(IdentifierTP, true)
	if !match {
		return nil, parser.makeError(IdentifierTP)
	}
	_, match = parser.expectToken(LeftParentThesesTP, true)
	if !match {
		return &IdentifierAst{Name: nameToken.content}, nil
	}
	argument, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	_, match = parser.expectToken(RightParentThesesTP, true)
	if !match {
		return nil, parser.makeError(RightParentThesesTP)
	}
	return &CallAst{FuncName: nameToken.content, Argument: argument}, nil
}

// (expr), the parentheses only group and leave no node behind.
func (parser *Parser) parseSubExpressionTerm() (Expression, error) {
	_, match := parser.expectToken(LeftParentThesesTP, true)
	if !match {
		return nil, parser.makeError(LeftParentThesesTP)
	}
	expr, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	_, match = parser.expectToken(RightParentThesesTP, true)
	if !match {
		return nil, parser.makeError(RightParentThesesTP)
	}
	return expr, nil
}
