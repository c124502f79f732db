// ==============================================================================================
// FILE: ast/ast.go
// ==============================================================================================
// PACKAGE: ast
// PURPOSE: The data model produced by the Parser and walked by the Evaluator. Every
//          node owns its children; there is no sharing between subtrees.
// ==============================================================================================

package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Hrpavi7/SharpScript/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement is a Node that appears in statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of every parsed unit: an ordered sequence of statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// ----------------------------------------------------------------------------------------------
// Declaration flavor for assignment / declaration statements.
// ----------------------------------------------------------------------------------------------

type DeclKind int

const (
	DeclNone DeclKind = iota
	DeclInsert
	DeclConst
)

// ----------------------------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------------------------

type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) String() string       { return n.Token.Literal }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) String() string       { return fmt.Sprintf("%q", s.Value) }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) String() string       { return b.Token.Literal }

type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NullLiteral) String() string       { return "null" }

// BinaryExpression is a left-associative infix operator application.
type BinaryExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Operator, b.Right.String())
}

// UnaryExpression covers prefix '!' and '-'.
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) String() string       { return fmt.Sprintf("(%s%s)", u.Operator, u.Right.String()) }

// IndexExpression is postfix e[e], left-associative so that a[b][c] nests.
type IndexExpression struct {
	Token token.Token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) String() string {
	return fmt.Sprintf("(%s[%s])", ie.Left.String(), ie.Index.String())
}

// Parameter is a function/lambda parameter name with an optional default expression.
type Parameter struct {
	Name    string
	Default Expression
}

// FunctionLiteral is the lambda form: `(params) => { body }`.
type FunctionLiteral struct {
	Token      token.Token
	Parameters []Parameter
	Body       *BlockStatement
}

func (f *FunctionLiteral) expressionNode()      {}
func (f *FunctionLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionLiteral) String() string {
	names := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		names[i] = p.Name
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(names, ", "), f.Body.String())
}

// CallExpression invokes a name (a plain identifier or a dotted qualified name,
// since '.' is permitted inside identifier lexing) with evaluated arguments.
type CallExpression struct {
	Token     token.Token
	Name      string
	Arguments []Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapLiteral holds parallel key/value expression slices (§3): keys are evaluated to
// their display string at runtime, not restricted to literal text at parse time.
type MapLiteral struct {
	Token  token.Token
	Keys   []Expression
	Values []Expression
}

func (m *MapLiteral) expressionNode()      {}
func (m *MapLiteral) TokenLiteral() string { return m.Token.Literal }
func (m *MapLiteral) String() string {
	parts := make([]string, len(m.Keys))
	for i := range m.Keys {
		parts[i] = fmt.Sprintf("%s: %s", m.Keys[i].String(), m.Values[i].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ----------------------------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------------------------

type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) String() string {
	var out bytes.Buffer
	for _, s := range b.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// ExpressionStatement wraps a bare expression used as a statement (e.g. a call).
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) String() string {
	if e.Expression != nil {
		return e.Expression.String()
	}
	return ""
}

// NullStatement is a no-op: an empty `;`, an ILLEGAL lexical token, a duplicate
// #include, or a parse-error recovery point.
type NullStatement struct {
	Token token.Token
}

func (n *NullStatement) statementNode()       {}
func (n *NullStatement) TokenLiteral() string { return n.Token.Literal }
func (n *NullStatement) String() string       { return ";" }

// AssignmentStatement covers declarations (&insert / const), plain '=', and the
// compound operators (+= -= *= /= %=, including their word-operator spellings).
type AssignmentStatement struct {
	Token    token.Token
	Name     string
	Operator string
	TypeName *string
	Decl     DeclKind
	Value    Expression
}

func (a *AssignmentStatement) statementNode()       {}
func (a *AssignmentStatement) TokenLiteral() string { return a.Token.Literal }
func (a *AssignmentStatement) String() string {
	return fmt.Sprintf("%s %s %s", a.Name, a.Operator, a.Value.String())
}

// IncDecStatement covers postfix ++ / --.
type IncDecStatement struct {
	Token    token.Token
	Name     string
	Operator string
}

func (i *IncDecStatement) statementNode()       {}
func (i *IncDecStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IncDecStatement) String() string       { return i.Name + i.Operator }

type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(i.Condition.String())
	out.WriteString(") { ")
	out.WriteString(i.Consequence.String())
	out.WriteString(" }")
	if i.Alternative != nil {
		out.WriteString(" else { ")
		out.WriteString(i.Alternative.String())
		out.WriteString(" }")
	}
	return out.String()
}

type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) String() string {
	return fmt.Sprintf("while (%s) { %s }", w.Condition.String(), w.Body.String())
}

// ForStatement is the C-style `for (init; cond; post) { body }`. Init and Post may
// be nil.
type ForStatement struct {
	Token     token.Token
	Init      Statement
	Condition Expression
	Post      Statement
	Body      *BlockStatement
}

func (f *ForStatement) statementNode()       {}
func (f *ForStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForStatement) String() string {
	return fmt.Sprintf("for (...; %s; ...) { %s }", f.Condition.String(), f.Body.String())
}

// ForInStatement is `for (name in iterable) { body }`.
type ForInStatement struct {
	Token    token.Token
	Name     string
	Iterable Expression
	Body     *BlockStatement
}

func (f *ForInStatement) statementNode()       {}
func (f *ForInStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForInStatement) String() string {
	return fmt.Sprintf("for (%s in %s) { %s }", f.Name, f.Iterable.String(), f.Body.String())
}

// FunctionDeclaration is the statement form `function name(params) { body }`. It
// binds a Function value under Name in the current environment.
type FunctionDeclaration struct {
	Token      token.Token
	Name       string
	Parameters []Parameter
	Body       *BlockStatement
}

func (f *FunctionDeclaration) statementNode()       {}
func (f *FunctionDeclaration) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDeclaration) String() string {
	names := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		names[i] = p.Name
	}
	return fmt.Sprintf("function %s(%s) { %s }", f.Name, strings.Join(names, ", "), f.Body.String())
}

type ReturnStatement struct {
	Token       token.Token
	ReturnValue Expression // nil for a bare `return;`
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) String() string {
	if r.ReturnValue == nil {
		return "return"
	}
	return "return " + r.ReturnValue.String()
}

type BreakStatement struct{ Token token.Token }

func (b *BreakStatement) statementNode()       {}
func (b *BreakStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStatement) String() string       { return "break" }

type ContinueStatement struct{ Token token.Token }

func (c *ContinueStatement) statementNode()       {}
func (c *ContinueStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStatement) String() string       { return "continue" }

// NamespaceStatement groups declarations under a qualifying name; on evaluation
// every binding in its body is re-published into the parent frame as
// "Name.member" (§4.3).
type NamespaceStatement struct {
	Token token.Token
	Name  string
	Body  *BlockStatement
}

func (n *NamespaceStatement) statementNode()       {}
func (n *NamespaceStatement) TokenLiteral() string { return n.Token.Literal }
func (n *NamespaceStatement) String() string {
	return fmt.Sprintf("namespace %s { %s }", n.Name, n.Body.String())
}

type EnumMember struct {
	Name  string
	Value Expression // nil: last-explicit-plus-one, default 0
}

type EnumStatement struct {
	Token   token.Token
	Name    string
	Members []EnumMember
}

func (e *EnumStatement) statementNode()       {}
func (e *EnumStatement) TokenLiteral() string { return e.Token.Literal }
func (e *EnumStatement) String() string       { return fmt.Sprintf("enum %s { ... }", e.Name) }

// ClassStatement covers both `class` and `struct` declarations. Per the language
// spec's open questions, the evaluator does not instantiate or dispatch methods;
// the body is evaluated as an ordinary block in the current frame.
type ClassStatement struct {
	Token  token.Token
	Name   string
	Base   *string
	Body   *BlockStatement
	Struct bool // true if declared with the `struct` keyword rather than `class`
}

func (c *ClassStatement) statementNode()       {}
func (c *ClassStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ClassStatement) String() string       { return fmt.Sprintf("class %s { ... }", c.Name) }

// MatchCase is a single `case pattern: body` arm; Body may be a single statement or
// a block (both satisfy Statement).
type MatchCase struct {
	Pattern Expression
	Body    Statement
}

type MatchStatement struct {
	Token     token.Token
	Scrutinee Expression
	Cases     []MatchCase
	Default   Statement // nil if no default arm
}

func (m *MatchStatement) statementNode()       {}
func (m *MatchStatement) TokenLiteral() string { return m.Token.Literal }
func (m *MatchStatement) String() string       { return fmt.Sprintf("match (%s) { ... }", m.Scrutinee.String()) }

// TryStatement implements try/catch/finally. CatchName is the optional identifier
// bound to the caught error inside CatchBlock.
type TryStatement struct {
	Token        token.Token
	TryBlock     *BlockStatement
	CatchName    *string
	CatchBlock   *BlockStatement
	FinallyBlock *BlockStatement
}

func (t *TryStatement) statementNode()       {}
func (t *TryStatement) TokenLiteral() string { return t.Token.Literal }
func (t *TryStatement) String() string       { return "try { ... }" }
