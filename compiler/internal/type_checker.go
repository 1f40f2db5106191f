package internal

import "fmt"

type DiagnosticKind int

const (
	DuplicateDeclarationKind DiagnosticKind = iota
	NotDeclaredKind
	TypeMismatchKind
	NonBooleanConditionKind
	InvalidOperandsKind
	IncompatibleTypesKind
	UsedBeforeDeclarationKind
	UnsupportedConstructKind
)

func (kind DiagnosticKind) String() string {
	switch kind {
	case DuplicateDeclarationKind:
		return "duplicate declaration"
	case NotDeclaredKind:
		return "not declared"
	case TypeMismatchKind:
		return "type mismatch"
	case NonBooleanConditionKind:
		return "non-boolean condition"
	case InvalidOperandsKind:
		return "invalid operands"
	case IncompatibleTypesKind:
		return "incompatible types"
	case UsedBeforeDeclarationKind:
		return "used before declaration"
	case UnsupportedConstructKind:
		return "unsupported construct"
	}
	return "unknown"
}

// Diagnostic is one semantic error. Diagnostics are collected, never returned as errors.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string {
	return d.Message
}

type CheckResult struct {
	Symbols     *SymbolTable
	Diagnostics []Diagnostic
}

func (result *CheckResult) HasErrors() bool {
	return len(result.Diagnostics) > 0
}

func (result *CheckResult) Summary() string {
	if !result.HasErrors() {
		return "no semantic errors"
	}
	return fmt.Sprintf("%d semantic error(s) found", len(result.Diagnostics))
}

// Count returns how many diagnostics of kind were reported.
func (result *CheckResult) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range result.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Check walks the whole program in source order. It never stops at an error: every item is
// visited and every violation is reported, expressions that can't be typed get
// UnknownVariableType so checking goes on.
func Check(program *Program) *CheckResult {
	checker := newTypeChecker(NewSymbolTable())
	for _, item := range program.Items {
		item.AcceptItem(checker)
	}
	return &CheckResult{Symbols: checker.symbols, Diagnostics: checker.diagnostics}
}

// InferExpressionType types expr against symbols without modifying the table.
func InferExpressionType(expr Expression, symbols *SymbolTable) (VariableType, []Diagnostic) {
	checker := newTypeChecker(symbols)
	return checker.infer(expr), checker.diagnostics
}

type typeChecker struct {
	symbols     *SymbolTable
	diagnostics []Diagnostic
}

func newTypeChecker(symbols *SymbolTable) *typeChecker {
	return &typeChecker{symbols: symbols, diagnostics: []Diagnostic{}}
}

func (checker *typeChecker) makeSemanticError(kind DiagnosticKind, format string, args ...interface{}) {
	checker.diagnostics = append(checker.diagnostics, Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func (checker *typeChecker) VisitVarDeclare(ast *VarDeclareAst) {
	_, ok := checker.symbols.Declare(ast.VarName, ast.VarType)
	if !ok {
		checker.makeSemanticError(DuplicateDeclarationKind, "Variable '%s' already declared.", ast.VarName)
	}
}

func (checker *typeChecker) VisitStatement(stm Statement) {
	stm.AcceptStatement(checker)
}

func (checker *typeChecker) typeCheckStatements(statements []Statement) {
	for _, stm := range statements {
		stm.AcceptStatement(checker)
	}
}

func (checker *typeChecker) VisitAssign(stm *AssignStatementAst) {
	l, ok := checker.symbols.LookUpType(stm.VarName)
	if !ok {
		checker.makeSemanticError(NotDeclaredKind, "Variable '%s' not declared before assignment.", stm.VarName)
		return
	}
	r := checker.infer(stm.Value)
	if l != r {
		checker.makeSemanticError(TypeMismatchKind, "Type mismatch in assignment: %s (%s) := (%s).", stm.VarName, l, r)
	}
}

func (checker *typeChecker) VisitPrint(stm *PrintStatementAst) {
	checker.infer(stm.Value)
}

func (checker *typeChecker) VisitIf(stm *IfStatementAst) {
	checker.typeCheckCondition("if", stm.Condition)
	checker.typeCheckStatements(stm.IfTrueStatements)
	checker.typeCheckStatements(stm.ElseStatements)
}

func (checker *typeChecker) VisitWhile(stm *WhileStatementAst) {
	checker.typeCheckCondition("while", stm.Condition)
	checker.typeCheckStatements(stm.Statements)
}

// VisitExpressionStatement validates the expression and drops its type.
func (checker *typeChecker) VisitExpressionStatement(stm *ExpressionStatementAst) {
	checker.infer(stm.Value)
}

func (checker *typeChecker) typeCheckCondition(construct string, condition Expression) {
	if checker.infer(condition) != BooleanVariableType {
		checker.makeSemanticError(NonBooleanConditionKind, "Condition in '%s' must be Boolean.", construct)
	}
}

func (checker *typeChecker) infer(expr Expression) VariableType {
	return expr.AcceptExpression(checker)
}

func (checker *typeChecker) VisitIdentifier(expr *IdentifierAst) VariableType {
	t, ok := checker.symbols.LookUpType(expr.Name)
	if !ok {
		checker.makeSemanticError(UsedBeforeDeclarationKind, "Variable '%s' used before declaration.", expr.Name)
	}
	return t
}

func (checker *typeChecker) VisitBoolean(*BooleanConstantAst) VariableType {
	return BooleanVariableType
}

func (checker *typeChecker) VisitCharacter(*CharacterConstantAst) VariableType {
	return CharVariableType
}

// VisitCall still types the argument so errors inside it are reported.
func (checker *typeChecker) VisitCall(expr *CallAst) VariableType {
	checker.infer(expr.Argument)
	checker.makeSemanticError(UnsupportedConstructKind,
		"Call to '%s' is not supported: functions are not part of the language.", expr.FuncName)
	return UnknownVariableType
}

// VisitBinary types both operands before looking at the operator, so an error on the left
// never hides one on the right.
func (checker *typeChecker) VisitBinary(expr *BinaryExpressionAst) VariableType {
	l := checker.infer(expr.LeftExpr)
	r := checker.infer(expr.RightExpr)
	switch {
	case expr.Op == OrOpTP || expr.Op == AndOpTP:
		if l == BooleanVariableType && r == BooleanVariableType {
			return BooleanVariableType
		}
		checker.makeSemanticError(InvalidOperandsKind, "Invalid operands for '%s': %s, %s", expr.Op, l, r)
	case expr.Op.IsRelational():
		// Any type compares with itself, Char < Char included.
		if l == r {
			return BooleanVariableType
		}
		checker.makeSemanticError(IncompatibleTypesKind, "Incompatible types for '%s': %s, %s", expr.Op, l, r)
	case expr.Op == AddOpTP:
		// + concatenates characters, there is no arithmetic.
		if l == CharVariableType && r == CharVariableType {
			return CharVariableType
		}
		checker.makeSemanticError(InvalidOperandsKind, "Invalid operands for '+': %s, %s", l, r)
	}
	return UnknownVariableType
}
