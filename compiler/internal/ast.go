package internal

// In this file, we defined all ast of charon programming language according to charon grammar.
// A charon program is a flat list of variable declarations and statements, there is no
// function, class or module declaration.
//
// Items, statements and expressions are closed sets: the marker methods are unexported so no
// other package can add a variant, and each consumer implements the matching visitor
// interface, so adding a variant here breaks every consumer until it handles the new node.

type Program struct {
	Items []Item
}

// Item is either a *VarDeclareAst or a Statement.
type Item interface {
	AcceptItem(visitor ItemVisitor)
}

type ItemVisitor interface {
	VisitVarDeclare(ast *VarDeclareAst)
	VisitStatement(stm Statement)
}

type VarDeclareAst struct {
	VarName string
	VarType VariableType
}

func (ast *VarDeclareAst) AcceptItem(visitor ItemVisitor) { visitor.VisitVarDeclare(ast) }

// VariableType is the static type of a variable or an expression. UnknownVariableType never
// appears in a declaration, the type checker uses it for expressions it failed to type.
type VariableType int

const (
	UnknownVariableType VariableType = iota
	BooleanVariableType
	CharVariableType
)

func (t VariableType) String() string {
	switch t {
	case BooleanVariableType:
		return "Boolean"
	case CharVariableType:
		return "Char"
	}
	return "Unknown"
}

// Statements.

type Statement interface {
	Item
	AcceptStatement(visitor StatementVisitor)
	statementNode()
}

type StatementVisitor interface {
	VisitAssign(stm *AssignStatementAst)
	VisitPrint(stm *PrintStatementAst)
	VisitIf(stm *IfStatementAst)
	VisitWhile(stm *WhileStatementAst)
	VisitExpressionStatement(stm *ExpressionStatementAst)
}

type AssignStatementAst struct {
	VarName string
	Value   Expression
}

type PrintStatementAst struct {
	Value Expression
}

// IfStatementAst branches are never nil, an absent else is an empty slice.
type IfStatementAst struct {
	Condition        Expression
	IfTrueStatements []Statement
	ElseStatements   []Statement
}

type WhileStatementAst struct {
	Condition  Expression
	Statements []Statement
}

// ExpressionStatementAst is an expression followed by ';'. Its value is discarded.
type ExpressionStatementAst struct {
	Value Expression
}

func (stm *AssignStatementAst) AcceptStatement(visitor StatementVisitor) { visitor.VisitAssign(stm) }
func (stm *PrintStatementAst) AcceptStatement(visitor StatementVisitor)  { visitor.VisitPrint(stm) }
func (stm *IfStatementAst) AcceptStatement(visitor StatementVisitor)     { visitor.VisitIf(stm) }
func (stm *WhileStatementAst) AcceptStatement(visitor StatementVisitor)  { visitor.VisitWhile(stm) }
func (stm *ExpressionStatementAst) AcceptStatement(visitor StatementVisitor) {
	visitor.VisitExpressionStatement(stm)
}

func (stm *AssignStatementAst) AcceptItem(visitor ItemVisitor)     { visitor.VisitStatement(stm) }
func (stm *PrintStatementAst) AcceptItem(visitor ItemVisitor)      { visitor.VisitStatement(stm) }
func (stm *IfStatementAst) AcceptItem(visitor ItemVisitor)         { visitor.VisitStatement(stm) }
func (stm *WhileStatementAst) AcceptItem(visitor ItemVisitor)      { visitor.VisitStatement(stm) }
func (stm *ExpressionStatementAst) AcceptItem(visitor ItemVisitor) { visitor.VisitStatement(stm) }

func (*AssignStatementAst) statementNode()     {}
func (*PrintStatementAst) statementNode()      {}
func (*IfStatementAst) statementNode()         {}
func (*WhileStatementAst) statementNode()      {}
func (*ExpressionStatementAst) statementNode() {}

// Expressions.

type Expression interface {
	AcceptExpression(visitor ExpressionVisitor) VariableType
	expressionNode()
}

// ExpressionVisitor returns a VariableType because the only traversal producing a value
// over expressions is type inference. Visitors with no use for it return UnknownVariableType.
type ExpressionVisitor interface {
	VisitIdentifier(expr *IdentifierAst) VariableType
	VisitBoolean(expr *BooleanConstantAst) VariableType
	VisitCharacter(expr *CharacterConstantAst) VariableType
	VisitCall(expr *CallAst) VariableType
	VisitBinary(expr *BinaryExpressionAst) VariableType
}

type IdentifierAst struct {
	Name string
}

type BooleanConstantAst struct {
	Value bool
}

// CharacterConstantAst keeps the literal as written, quotes included: 'A' or '\n'.
type CharacterConstantAst struct {
	RawText string
}

// CallAst is the single argument form name(expr). The language has no functions yet so
// the type checker rejects it.
type CallAst struct {
	FuncName string
	Argument Expression
}

type BinaryExpressionAst struct {
	Op        OpCode
	LeftExpr  Expression
	RightExpr Expression
}

func (expr *IdentifierAst) AcceptExpression(visitor ExpressionVisitor) VariableType {
	return visitor.VisitIdentifier(expr)
}

func (expr *BooleanConstantAst) AcceptExpression(visitor ExpressionVisitor) VariableType {
	return visitor.VisitBoolean(expr)
}

func (expr *CharacterConstantAst) AcceptExpression(visitor ExpressionVisitor) VariableType {
	return visitor.VisitCharacter(expr)
}

func (expr *CallAst) AcceptExpression(visitor ExpressionVisitor) VariableType {
	return visitor.VisitCall(expr)
}

func (expr *BinaryExpressionAst) AcceptExpression(visitor ExpressionVisitor) VariableType {
	return visitor.VisitBinary(expr)
}

func (*IdentifierAst) expressionNode()        {}
func (*BooleanConstantAst) expressionNode()   {}
func (*CharacterConstantAst) expressionNode() {}
func (*CallAst) expressionNode()              {}
func (*BinaryExpressionAst) expressionNode()  {}

type OpCode int

const (
	OrOpTP OpCode = iota
	AndOpTP
	EqualOpTP
	LessOpTP
	LessEqualOpTP
	GreaterOpTP
	GreaterEqualOpTP
	AddOpTP
)

func (op OpCode) String() string {
	switch op {
	case OrOpTP:
		return "or"
	case AndOpTP:
		return "and"
	case EqualOpTP:
		return "="
	case LessOpTP:
		return "<"
	case LessEqualOpTP:
		return "<="
	case GreaterOpTP:
		return ">"
	case GreaterEqualOpTP:
		return ">="
	case AddOpTP:
		return "+"
	}
	return ""
}

// IsRelational reports whether op is one of the non associative comparison operators.
func (op OpCode) IsRelational() bool {
	switch op {
	case EqualOpTP, LessOpTP, LessEqualOpTP, GreaterOpTP, GreaterEqualOpTP:
		return true
	}
	return false
}

// relationalOpTokenMap maps relational tokens to the operator they build.
var relationalOpTokenMap = map[TokenType]OpCode{
	EqualTP:        EqualOpTP,
	LessTP:         LessOpTP,
	LessEqualTP:    LessEqualOpTP,
	GreaterTP:      GreaterOpTP,
	GreaterEqualTP: GreaterEqualOpTP,
}
