package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xiaobogaga/charon/compiler/internal"
)

// Node is a neutral view of one AST node, used to print or encode a program.
type Node struct {
	Kind     string  `json:"kind" yaml:"kind"`
	Value    string  `json:"value,omitempty" yaml:"value,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// DumpProgram converts program into a Node tree. Branches of if and while are grouped
// under Then, Else and Body nodes, which are present even when empty.
func DumpProgram(program *internal.Program) *Node {
	d := &dumper{}
	root := &Node{Kind: "Program", Children: []*Node{}}
	for _, item := range program.Items {
		item.AcceptItem(d)
		root.Children = append(root.Children, d.pop())
	}
	return root
}

// dumper implements every visitor of the ast, the node built by the last visit is left
// in last.
type dumper struct {
	last *Node
}

func (d *dumper) pop() *Node {
	n := d.last
	d.last = nil
	return n
}

func (d *dumper) statements(kind string, stms []internal.Statement) *Node {
	group := &Node{Kind: kind, Children: []*Node{}}
	for _, stm := range stms {
		stm.AcceptStatement(d)
		group.Children = append(group.Children, d.pop())
	}
	return group
}

func (d *dumper) expression(expr internal.Expression) *Node {
	expr.AcceptExpression(d)
	return d.pop()
}

func (d *dumper) VisitVarDeclare(ast *internal.VarDeclareAst) {
	d.last = &Node{Kind: "VarDecl", Value: fmt.Sprintf("%s : %s", ast.VarName, ast.VarType)}
}

func (d *dumper) VisitStatement(stm internal.Statement) {
	stm.AcceptStatement(d)
}

func (d *dumper) VisitAssign(stm *internal.AssignStatementAst) {
	d.last = &Node{Kind: "Assign", Value: stm.VarName, Children: []*Node{d.expression(stm.Value)}}
}

func (d *dumper) VisitPrint(stm *internal.PrintStatementAst) {
	d.last = &Node{Kind: "Print", Children: []*Node{d.expression(stm.Value)}}
}

func (d *dumper) VisitIf(stm *internal.IfStatementAst) {
	d.last = &Node{Kind: "If", Children: []*Node{
		d.expression(stm.Condition),
		d.statements("Then", stm.IfTrueStatements),
		d.statements("Else", stm.ElseStatements),
	}}
}

func (d *dumper) VisitWhile(stm *internal.WhileStatementAst) {
	d.last = &Node{Kind: "While", Children: []*Node{
		d.expression(stm.Condition),
		d.statements("Body", stm.Statements),
	}}
}

func (d *dumper) VisitExpressionStatement(stm *internal.ExpressionStatementAst) {
	d.last = &Node{Kind: "ExprStmt", Children: []*Node{d.expression(stm.Value)}}
}

func (d *dumper) VisitIdentifier(expr *internal.IdentifierAst) internal.VariableType {
	d.last = &Node{Kind: "Ident", Value: expr.Name}
	return internal.UnknownVariableType
}

func (d *dumper) VisitBoolean(expr *internal.BooleanConstantAst) internal.VariableType {
	value := "False"
	if expr.Value {
		value = "True"
	}
	d.last = &Node{Kind: "BoolLit", Value: value}
	return internal.UnknownVariableType
}

func (d *dumper) VisitCharacter(expr *internal.CharacterConstantAst) internal.VariableType {
	d.last = &Node{Kind: "CharLit", Value: expr.RawText}
	return internal.UnknownVariableType
}

func (d *dumper) VisitCall(expr *internal.CallAst) internal.VariableType {
	d.last = &Node{Kind: "Call", Value: expr.FuncName, Children: []*Node{d.expression(expr.Argument)}}
	return internal.UnknownVariableType
}

func (d *dumper) VisitBinary(expr *internal.BinaryExpressionAst) internal.VariableType {
	left := d.expression(expr.LeftExpr)
	right := d.expression(expr.RightExpr)
	d.last = &Node{Kind: "Binary", Value: expr.Op.String(), Children: []*Node{left, right}}
	return internal.UnknownVariableType
}

// WriteTree prints node and its children, two spaces of indent per level.
func WriteTree(w io.Writer, node *Node) error {
	return writeTree(w, node, 0)
}

func writeTree(w io.Writer, node *Node, depth int) error {
	line := strings.Repeat("  ", depth) + node.Kind
	if node.Value != "" {
		line += " " + node.Value
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := writeTree(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
