// ==============================================================================================
// FILE: parser/parser_test.go
// ==============================================================================================
// PURPOSE: Validates that each statement/expression grammar rule in the language
//          spec (§4.2) produces the expected AST shape, and that parse errors are
//          tolerant (unknown tokens degrade to a null statement rather than halting).
// ==============================================================================================

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hrpavi7/SharpScript/ast"
	"github.com/Hrpavi7/SharpScript/lexer"
)

func newParser(input string) *Parser {
	return New(lexer.New(input))
}

func requireNoErrors(t *testing.T, p *Parser) {
	t.Helper()
	require.Emptyf(t, p.Errors(), "parser errors: %v", p.Errors())
}

func TestDeclarationStatements(t *testing.T) {
	p := newParser(`&insert x = 5; const pi = 3.14;`)
	program := p.ParseProgram()
	requireNoErrors(t, p)
	require.Len(t, program.Statements, 2)

	insert := program.Statements[0].(*ast.AssignmentStatement)
	assert.Equal(t, "x", insert.Name)
	assert.Equal(t, ast.DeclInsert, insert.Decl)

	constDecl := program.Statements[1].(*ast.AssignmentStatement)
	assert.Equal(t, "pi", constDecl.Name)
	assert.Equal(t, ast.DeclConst, constDecl.Decl)
}

func TestCompoundAssignmentAndWordForm(t *testing.T) {
	p := newParser(`x += 1; add y = 2;`)
	program := p.ParseProgram()
	requireNoErrors(t, p)
	require.Len(t, program.Statements, 2)

	a := program.Statements[0].(*ast.AssignmentStatement)
	assert.Equal(t, "+=", a.Operator)

	b := program.Statements[1].(*ast.AssignmentStatement)
	assert.Equal(t, "y", b.Name)
	assert.Equal(t, "+=", b.Operator)
}

func TestIncDecStatement(t *testing.T) {
	p := newParser(`i++; j--;`)
	program := p.ParseProgram()
	requireNoErrors(t, p)
	require.Len(t, program.Statements, 2)

	inc := program.Statements[0].(*ast.IncDecStatement)
	assert.Equal(t, "i", inc.Name)
	assert.Equal(t, "++", inc.Operator)
}

func TestIfElseStatement(t *testing.T) {
	p := newParser(`if (x < 10) { y = 1; } else { y = 2; }`)
	program := p.ParseProgram()
	requireNoErrors(t, p)
	require.Len(t, program.Statements, 1)

	ifStmt := program.Statements[0].(*ast.IfStatement)
	require.NotNil(t, ifStmt.Alternative)
	assert.Len(t, ifStmt.Consequence.Statements, 1)
	assert.Len(t, ifStmt.Alternative.Statements, 1)
}

func TestForInVersusCStyleFor(t *testing.T) {
	p := newParser(`for (item in items) { x = item; }`)
	program := p.ParseProgram()
	requireNoErrors(t, p)
	_, ok := program.Statements[0].(*ast.ForInStatement)
	assert.True(t, ok)

	p2 := newParser(`for (i = 0; i < 10; i++) { x = i; }`)
	program2 := p2.ParseProgram()
	requireNoErrors(t, p2)
	forStmt, ok := program2.Statements[0].(*ast.ForStatement)
	require.True(t, ok)
	assert.NotNil(t, forStmt.Init)
	assert.NotNil(t, forStmt.Post)
}

func TestFunctionDeclarationWithDefaults(t *testing.T) {
	p := newParser(`function add(x, y = 10) { return x + y; }`)
	program := p.ParseProgram()
	requireNoErrors(t, p)

	fn := program.Statements[0].(*ast.FunctionDeclaration)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Parameters, 2)
	assert.Nil(t, fn.Parameters[0].Default)
	assert.NotNil(t, fn.Parameters[1].Default)
}

func TestLambdaLiteralLeavesParserPositionedCorrectly(t *testing.T) {
	p := newParser(`&insert f = (x, y) => { return x + y; }; &insert z = f(1, 2);`)
	program := p.ParseProgram()
	requireNoErrors(t, p)
	require.Len(t, program.Statements, 2)

	decl := program.Statements[0].(*ast.AssignmentStatement)
	lambda, ok := decl.Value.(*ast.FunctionLiteral)
	require.True(t, ok)
	assert.Len(t, lambda.Parameters, 2)
}

func TestNewIsTransparentWrapper(t *testing.T) {
	p := newParser(`&insert obj = new Foo(1, 2);`)
	program := p.ParseProgram()
	requireNoErrors(t, p)

	decl := program.Statements[0].(*ast.AssignmentStatement)
	call, ok := decl.Value.(*ast.CallExpression)
	require.True(t, ok)
	assert.Equal(t, "Foo", call.Name)
	assert.Len(t, call.Arguments, 2)
}

func TestNamespaceEnumClassMatchTry(t *testing.T) {
	input := `
namespace M { &insert b = 10; }
enum C { R = 1, G, B = 4 }
class Point { &insert x = 0; }
struct Vec : Point { &insert y = 0; }
match (k) { case 1: x = 1; default: x = 2; }
try { system.throw("E", "m"); } catch (e) { x = e; } finally { y = 1; }
`
	p := newParser(input)
	program := p.ParseProgram()
	requireNoErrors(t, p)
	require.Len(t, program.Statements, 6)

	ns := program.Statements[0].(*ast.NamespaceStatement)
	assert.Equal(t, "M", ns.Name)

	enum := program.Statements[1].(*ast.EnumStatement)
	require.Len(t, enum.Members, 3)

	class := program.Statements[2].(*ast.ClassStatement)
	assert.False(t, class.Struct)

	strct := program.Statements[3].(*ast.ClassStatement)
	require.NotNil(t, strct.Base)
	assert.Equal(t, "Point", *strct.Base)
	assert.True(t, strct.Struct)

	match := program.Statements[4].(*ast.MatchStatement)
	require.Len(t, match.Cases, 1)
	assert.NotNil(t, match.Default)

	try := program.Statements[5].(*ast.TryStatement)
	require.NotNil(t, try.CatchBlock)
	require.NotNil(t, try.FinallyBlock)
	require.NotNil(t, try.CatchName)
	assert.Equal(t, "e", *try.CatchName)
}

func TestUnresolvedIncludeDirectivesDegradeToNullStatements(t *testing.T) {
	// Neither literal "missing.sharp" nor "src/missing.sharp" resolves, so both
	// directives degrade to a null statement rather than halting the parse.
	p := newParser(`#include "missing.sharp" #include "missing.sharp"`)
	program := p.ParseProgram()
	require.Len(t, program.Statements, 2)
	for _, stmt := range program.Statements {
		_, ok := stmt.(*ast.NullStatement)
		assert.True(t, ok)
	}
}

func TestUnknownTokenDegradesToNullStatement(t *testing.T) {
	p := newParser(`@`)
	program := p.ParseProgram()
	require.Len(t, program.Statements, 1)
	_, ok := program.Statements[0].(*ast.NullStatement)
	assert.True(t, ok)
}

func TestOperatorPrecedence(t *testing.T) {
	p := newParser(`&insert r = 1 + 2 * 3 == 7 && true;`)
	program := p.ParseProgram()
	requireNoErrors(t, p)

	decl := program.Statements[0].(*ast.AssignmentStatement)
	bin, ok := decl.Value.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "&&", bin.Operator)
}

func TestIndexExpressionNests(t *testing.T) {
	p := newParser(`&insert v = a[0][1];`)
	program := p.ParseProgram()
	requireNoErrors(t, p)

	decl := program.Statements[0].(*ast.AssignmentStatement)
	outer, ok := decl.Value.(*ast.IndexExpression)
	require.True(t, ok)
	_, ok = outer.Left.(*ast.IndexExpression)
	assert.True(t, ok)
}
