// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Recursive-descent parser with Pratt-style expression parsing. Converts a
//          token stream into an *ast.Program, resolving #include/#involve directives
//          inline as it goes (§4.2 of the language spec).
// ==============================================================================================

package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Hrpavi7/SharpScript/ast"
	"github.com/Hrpavi7/SharpScript/lexer"
	"github.com/Hrpavi7/SharpScript/token"
)

// Precedence levels, lowest to highest (§4.2).
const (
	_ int = iota
	LOWEST
	LOGIC_OR
	LOGIC_AND
	EQUALITY
	RELATIONAL
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	INDEX
)

var precedences = map[token.TokenType]int{
	token.OR:          LOGIC_OR,
	token.AND:         LOGIC_AND,
	token.EQ:          EQUALITY,
	token.NOT_EQ:      EQUALITY,
	token.LT:          RELATIONAL,
	token.LT_EQ:       RELATIONAL,
	token.GT:          RELATIONAL,
	token.GT_EQ:       RELATIONAL,
	token.PLUS:        ADDITIVE,
	token.MINUS:       ADDITIVE,
	token.ASTERISK:    MULTIPLICATIVE,
	token.SLASH:       MULTIPLICATIVE,
	token.PERCENT:     MULTIPLICATIVE,
	token.LBRACKET:    INDEX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser holds all state for one parse session, including the shared include-guard
// set threaded through any #include/#involve-spawned sub-parsers.
type Parser struct {
	l         *lexer.Lexer
	curToken  token.Token
	peekToken token.Token
	errors    []string

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	includeGuard map[string]bool
}

// New creates a Parser ready to parse a top-level source unit.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, includeGuard: make(map[string]bool)}
	p.registerParseFns()
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerParseFns() {
	p.prefixParseFns = map[token.TokenType]prefixParseFn{}
	p.infixParseFns = map[token.TokenType]infixParseFn{}

	prefixIdents := []token.TokenType{
		token.IDENT, token.SYSTEM_PRINT, token.SYSTEM_INPUT, token.SYSTEM_LEN,
		token.SYSTEM_TYPE, token.SYSTEM_OUTPUT, token.SYSTEM_ERROR, token.SYSTEM_WARNING,
		token.ADD, token.SUB, token.MUL, token.DIV, token.MOD,
	}
	for _, tt := range prefixIdents {
		p.registerPrefix(tt, p.parseIdentifierOrCall)
	}
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.MINUS, p.parseUnaryExpression)
	p.registerPrefix(token.BANG, p.parseUnaryExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedOrLambda)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(token.LBRACE, p.parseMapLiteral)
	p.registerPrefix(token.NEW, p.parseNewExpression)

	p.registerInfix(token.PLUS, p.parseBinaryExpression)
	p.registerInfix(token.MINUS, p.parseBinaryExpression)
	p.registerInfix(token.ASTERISK, p.parseBinaryExpression)
	p.registerInfix(token.SLASH, p.parseBinaryExpression)
	p.registerInfix(token.PERCENT, p.parseBinaryExpression)
	p.registerInfix(token.EQ, p.parseBinaryExpression)
	p.registerInfix(token.NOT_EQ, p.parseBinaryExpression)
	p.registerInfix(token.LT, p.parseBinaryExpression)
	p.registerInfix(token.LT_EQ, p.parseBinaryExpression)
	p.registerInfix(token.GT, p.parseBinaryExpression)
	p.registerInfix(token.GT_EQ, p.parseBinaryExpression)
	p.registerInfix(token.AND, p.parseBinaryExpression)
	p.registerInfix(token.OR, p.parseBinaryExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)
}

func (p *Parser) registerPrefix(t token.TokenType, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t token.TokenType, fn infixParseFn)   { p.infixParseFns[t] = fn }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.errors = append(p.errors, fmt.Sprintf("line %d:%d - expected next token to be %s, got %s instead",
		p.peekToken.Line, p.peekToken.Column, t, p.peekToken.Type))
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Sprintf("line %d:%d - %s", p.curToken.Line, p.curToken.Column, fmt.Sprintf(format, args...)))
}

// Errors returns every diagnostic accumulated during parsing, including those
// bubbled up from #include/#involve sub-parses.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram is the entry point: parses the whole token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		stmts := p.parseTopLevel()
		program.Statements = append(program.Statements, stmts...)
	}
	return program
}

// parseTopLevel parses one statement, returning possibly many (an #include/#involve
// expands to every statement of the included file).
func (p *Parser) parseTopLevel() []ast.Statement {
	if p.curTokenIs(token.INCLUDE) || p.curTokenIs(token.INVOLVE) {
		return p.parseIncludeDirective()
	}
	stmt := p.parseStatement()
	p.finishStatement()
	if stmt == nil {
		return nil
	}
	return []ast.Statement{stmt}
}

// finishStatement consumes any trailing optional semicolons and advances to the
// next statement's first token (§4.2: "trailing semicolons ... are optional").
func (p *Parser) finishStatement() {
	for p.curTokenIs(token.SEMI) {
		p.nextToken()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.SEMI:
		return &ast.NullStatement{Token: p.curToken}
	case token.ILLEGAL:
		p.errorf("invalid character %q", p.curToken.Literal)
		stmt := &ast.NullStatement{Token: p.curToken}
		p.nextToken()
		return stmt
	case token.INSERT:
		return p.parseDeclaration(ast.DeclInsert)
	case token.CONST:
		return p.parseDeclaration(ast.DeclConst)
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		stmt := &ast.BreakStatement{Token: p.curToken}
		p.nextToken()
		return stmt
	case token.CONTINUE:
		stmt := &ast.ContinueStatement{Token: p.curToken}
		p.nextToken()
		return stmt
	case token.NAMESPACE:
		return p.parseNamespaceStatement()
	case token.ENUM:
		return p.parseEnumStatement()
	case token.CLASS, token.STRUCT:
		return p.parseClassStatement()
	case token.MATCH:
		return p.parseMatchStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.ADD, token.SUB, token.MUL, token.DIV, token.MOD:
		return p.parseWordCompoundAssignment()
	case token.IDENT:
		return p.parseIdentStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseStatementOrBlock parses a `{ block }` if one starts here, otherwise a single
// statement (used by match case/default bodies, §4.2).
func (p *Parser) parseStatementOrBlock() ast.Statement {
	if p.curTokenIs(token.LBRACE) {
		return p.parseBracedBlock()
	}
	stmt := p.parseStatement()
	p.finishStatement()
	return stmt
}

// parseBracedBlock requires curToken == '{' and leaves curToken on the token right
// after the matching '}'.
func (p *Parser) parseBracedBlock() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken() // consume '{'
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		p.finishStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	if !p.curTokenIs(token.RBRACE) {
		p.errorf("expected '}' to close block, got %s", p.curToken.Type)
		return block
	}
	p.nextToken() // consume '}'
	return block
}

func (p *Parser) expectBlock() *ast.BlockStatement {
	if !p.curTokenIs(token.LBRACE) {
		p.errorf("expected '{', got %s", p.curToken.Type)
		return &ast.BlockStatement{}
	}
	return p.parseBracedBlock()
}

// skipArrow consumes an optional `=>` decoration before a brace block (§4.2).
func (p *Parser) skipArrow() {
	if p.curTokenIs(token.ARROW) {
		p.nextToken()
	}
}

// ----------------------------------------------------------------------------------------------
// Declarations & assignment
// ----------------------------------------------------------------------------------------------

func (p *Parser) parseDeclaration(kind ast.DeclKind) ast.Statement {
	stmt := &ast.AssignmentStatement{Token: p.curToken, Operator: "=", Decl: kind}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		t := p.curToken.Literal
		stmt.TypeName = &t
	}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.nextToken()
	return stmt
}

var compoundOps = map[token.TokenType]string{
	token.ASSIGN:      "=",
	token.PLUS_EQ:     "+=",
	token.MINUS_EQ:    "-=",
	token.ASTERISK_EQ: "*=",
	token.SLASH_EQ:    "/=",
	token.PERCENT_EQ:  "%=",
}

// parseIdentStatement disambiguates assignment/incdec/bare-call forms that begin
// with an identifier (§4.2).
func (p *Parser) parseIdentStatement() ast.Statement {
	name := p.curToken.Literal
	nameTok := p.curToken

	if op, ok := compoundOps[p.peekToken.Type]; ok {
		p.nextToken() // consume the operator
		opTok := p.curToken
		p.nextToken()
		value := p.parseExpression(LOWEST)
		p.nextToken()
		return &ast.AssignmentStatement{Token: opTok, Name: name, Operator: op, Value: value}
	}
	if p.peekTokenIs(token.INC) || p.peekTokenIs(token.DEC) {
		p.nextToken()
		op := "++"
		if p.curToken.Type == token.DEC {
			op = "--"
		}
		stmt := &ast.IncDecStatement{Token: p.curToken, Name: name, Operator: op}
		p.nextToken()
		return stmt
	}
	_ = nameTok
	return p.parseExpressionStatement()
}

// parseWordCompoundAssignment handles `add x = e` and friends, desugaring to the
// matching compound-assignment operator (§4.2).
func (p *Parser) parseWordCompoundAssignment() ast.Statement {
	wordTok := p.curToken
	op := map[token.TokenType]string{
		token.ADD: "+=", token.SUB: "-=", token.MUL: "*=", token.DIV: "/=", token.MOD: "%=",
	}[wordTok.Type]

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	p.nextToken()
	return &ast.AssignmentStatement{Token: wordTok, Name: name, Operator: op, Value: value}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	p.nextToken()
	return stmt
}

// ----------------------------------------------------------------------------------------------
// Control flow
// ----------------------------------------------------------------------------------------------

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	// A body without braces is a single statement, wrapped in a block.
	body := func() *ast.BlockStatement {
		if p.curTokenIs(token.LBRACE) {
			return p.parseBracedBlock()
		}
		block := &ast.BlockStatement{Token: p.curToken}
		if s := p.parseStatementOrBlock(); s != nil {
			block.Statements = append(block.Statements, s)
		}
		return block
	}
	p.nextToken()
	p.skipArrow()
	stmt.Consequence = body()
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		p.skipArrow()
		stmt.Alternative = body()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.nextToken()
	p.skipArrow()
	stmt.Body = p.expectBlock()
	return stmt
}

// parseForStatement disambiguates `for (x in e)` from `for (init; cond; post)` using
// a non-destructive peek, per §4.2.
func (p *Parser) parseForStatement() ast.Statement {
	forTok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	if p.peekTokenIs(token.IDENT) && p.peekIsForIn() {
		p.nextToken() // now on IDENT
		name := p.curToken.Literal
		if !p.expectPeek(token.IN) {
			return nil
		}
		p.nextToken()
		iterable := p.parseExpression(LOWEST)
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		p.nextToken()
		p.skipArrow()
		body := p.expectBlock()
		return &ast.ForInStatement{Token: forTok, Name: name, Iterable: iterable, Body: body}
	}

	stmt := &ast.ForStatement{Token: forTok}
	p.nextToken()
	if !p.curTokenIs(token.SEMI) {
		stmt.Init = p.parseStatement()
	}
	if !p.curTokenIs(token.SEMI) {
		p.errorf("expected ';' after for-init, got %s", p.curToken.Type)
	} else {
		p.nextToken()
	}
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.SEMI) {
		return nil
	}
	p.nextToken()
	if !p.curTokenIs(token.RPAREN) {
		stmt.Post = p.parseStatement()
	}
	if !p.curTokenIs(token.RPAREN) {
		p.errorf("expected ')' to close for-header, got %s", p.curToken.Type)
		return stmt
	}
	p.nextToken()
	p.skipArrow()
	stmt.Body = p.expectBlock()
	return stmt
}

// peekIsForIn looks past the identifier following '(' to see whether it is followed
// by `in`, without permanently consuming tokens (mirrors the spec's lexer-state-save
// peek operation, §4.2).
func (p *Parser) peekIsForIn() bool {
	save := *p.l
	savedCur, savedPeek := p.curToken, p.peekToken
	p.nextToken() // IDENT becomes cur
	isIn := p.peekTokenIs(token.IN)
	*p.l = save
	p.curToken, p.peekToken = savedCur, savedPeek
	return isIn
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	p.nextToken()
	if p.curTokenIs(token.SEMI) || p.curTokenIs(token.RBRACE) || p.curTokenIs(token.EOF) {
		return stmt
	}
	stmt.ReturnValue = p.parseExpression(LOWEST)
	p.nextToken()
	return stmt
}

// ----------------------------------------------------------------------------------------------
// Functions
// ----------------------------------------------------------------------------------------------

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	stmt := &ast.FunctionDeclaration{Token: p.curToken}
	if !p.peekTokenIs(token.IDENT) && !token.IsWordOperator(p.peekToken.Type) {
		p.peekError(token.IDENT)
		return nil
	}
	p.nextToken()
	stmt.Name = p.curToken.Literal
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.Parameters = p.parseParameterList()
	p.nextToken()
	p.skipArrow()
	stmt.Body = p.expectBlock()
	return stmt
}

// parseParameterList parses the parameter list of a function/lambda, starting with
// curToken == '(' and leaving curToken on the matching ')'. `void` denotes zero
// parameters (§4.2).
func (p *Parser) parseParameterList() []ast.Parameter {
	var params []ast.Parameter
	if p.peekTokenIs(token.VOID) {
		p.nextToken()
		p.expectPeek(token.RPAREN)
		return params
	}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.parseOneParameter())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseOneParameter())
	}
	p.expectPeek(token.RPAREN)
	return params
}

func (p *Parser) parseOneParameter() ast.Parameter {
	param := ast.Parameter{Name: p.curToken.Literal}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		param.Default = p.parseExpression(LOWEST)
	}
	return param
}

// ----------------------------------------------------------------------------------------------
// Namespace / enum / class
// ----------------------------------------------------------------------------------------------

func (p *Parser) parseNamespaceStatement() ast.Statement {
	stmt := &ast.NamespaceStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBracedBlock()
	return stmt
}

func (p *Parser) parseEnumStatement() ast.Statement {
	stmt := &ast.EnumStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		member := ast.EnumMember{Name: p.curToken.Literal}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			member.Value = p.parseExpression(LOWEST)
		}
		stmt.Members = append(stmt.Members, member)
		p.nextToken()
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.nextToken() // consume '}'
	return stmt
}

func (p *Parser) parseClassStatement() ast.Statement {
	stmt := &ast.ClassStatement{Token: p.curToken, Struct: p.curToken.Type == token.STRUCT}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		base := p.curToken.Literal
		stmt.Base = &base
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBracedBlock()
	return stmt
}

// ----------------------------------------------------------------------------------------------
// match / try
// ----------------------------------------------------------------------------------------------

func (p *Parser) parseMatchStatement() ast.Statement {
	stmt := &ast.MatchStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Scrutinee = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.CASE) {
			p.nextToken()
			pattern := p.parseExpression(LOWEST)
			if !p.expectPeek(token.COLON) {
				return nil
			}
			p.nextToken()
			body := p.parseStatementOrBlock()
			stmt.Cases = append(stmt.Cases, ast.MatchCase{Pattern: pattern, Body: body})
			continue
		}
		if p.curTokenIs(token.DEFAULT) {
			if !p.expectPeek(token.COLON) {
				return nil
			}
			p.nextToken()
			stmt.Default = p.parseStatementOrBlock()
			continue
		}
		p.errorf("expected 'case' or 'default' in match body, got %s", p.curToken.Type)
		p.nextToken()
	}
	p.nextToken() // consume '}'
	return stmt
}

func (p *Parser) parseTryStatement() ast.Statement {
	stmt := &ast.TryStatement{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.TryBlock = p.parseBracedBlock()

	if p.curTokenIs(token.CATCH) {
		p.nextToken()
		if p.curTokenIs(token.LPAREN) {
			p.nextToken()
			name := p.curToken.Literal
			stmt.CatchName = &name
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
			p.nextToken()
		}
		stmt.CatchBlock = p.expectBlock()
	}
	if p.curTokenIs(token.FINALLY) {
		p.nextToken()
		stmt.FinallyBlock = p.expectBlock()
	}
	return stmt
}

// ----------------------------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------------------------

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf("no prefix parse function for %s", p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMI) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifierOrCall() ast.Expression {
	name := p.curToken.Literal
	tok := p.curToken
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		args := p.parseExpressionList(token.RPAREN)
		return &ast.CallExpression{Token: tok, Name: name, Arguments: args}
	}
	return &ast.Identifier{Token: tok, Value: name}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	val, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf("could not parse %q as number", p.curToken.Literal)
		return nil
	}
	return &ast.NumberLiteral{Token: p.curToken, Value: val}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curToken.Type == token.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	exp := &ast.UnaryExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	exp.Right = p.parseExpression(UNARY)
	return exp
}

// parseNewExpression treats `new` as a transparent no-op wrapper (open question,
// §9): `new Foo()` evaluates exactly like `Foo()`.
func (p *Parser) parseNewExpression() ast.Expression {
	p.nextToken()
	return p.parseExpression(UNARY)
}

// parseGroupedOrLambda disambiguates `(expr)` from a lambda `(params) => { body }`:
// a parenthesized form is a lambda iff the matching ')' is immediately followed by
// '=>' (§4.2), in which case every enclosed expression must be a bare identifier.
func (p *Parser) parseGroupedOrLambda() ast.Expression {
	if p.isLambdaAhead() {
		return p.parseLambdaLiteral()
	}
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// isLambdaAhead scans forward from the current '(' to its matching ')' and checks
// whether '=>' immediately follows, restoring lexer/parser state afterward.
func (p *Parser) isLambdaAhead() bool {
	save := *p.l
	savedCur, savedPeek := p.curToken, p.peekToken

	depth := 0
	for {
		if p.curTokenIs(token.LPAREN) {
			depth++
		} else if p.curTokenIs(token.RPAREN) {
			depth--
			if depth == 0 {
				break
			}
		} else if p.curTokenIs(token.EOF) {
			break
		}
		p.nextToken()
	}
	isLambda := p.peekTokenIs(token.ARROW)

	*p.l = save
	p.curToken, p.peekToken = savedCur, savedPeek
	return isLambda
}

func (p *Parser) parseLambdaLiteral() ast.Expression {
	tok := p.curToken
	params := p.parseParameterList()
	if !p.expectPeek(token.ARROW) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseLambdaBody()
	return &ast.FunctionLiteral{Token: tok, Parameters: params, Body: body}
}

// parseLambdaBody parses a brace-delimited body in expression position. Unlike
// parseBracedBlock (used at statement level), it leaves curToken ON the closing
// '}' rather than past it, preserving the Pratt loop's "leave curToken on the
// expression's own last token" invariant.
func (p *Parser) parseLambdaBody() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken() // consume '{'
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		p.finishStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	return block
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	arr := &ast.ArrayLiteral{Token: p.curToken}
	arr.Elements = p.parseExpressionList(token.RBRACKET)
	return arr
}

func (p *Parser) parseMapLiteral() ast.Expression {
	m := &ast.MapLiteral{Token: p.curToken}
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return m
	}
	p.nextToken()
	for {
		key := p.parseExpression(LOWEST)
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		val := p.parseExpression(LOWEST)
		m.Keys = append(m.Keys, key)
		m.Values = append(m.Values, val)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return m
}

func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	p.expectPeek(end)
	return list
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	exp := &ast.BinaryExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	precedence := p.curPrecedence()
	p.nextToken()
	exp.Right = p.parseExpression(precedence)
	return exp
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	exp := &ast.IndexExpression{Token: p.curToken, Left: left}
	p.nextToken()
	exp.Index = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return exp
}

// ----------------------------------------------------------------------------------------------
// #include / #involve
// ----------------------------------------------------------------------------------------------

// parseIncludeDirective resolves path first literally then under "src/", splicing
// the included file's statements in place. A second inclusion of the same resolved
// path, like a path that cannot be resolved, expands to a single null statement
// (§4.2). Failures and duplicates consume the directive token and emit (at most)
// one diagnostic.
func (p *Parser) parseIncludeDirective() []ast.Statement {
	path := p.curToken.Literal
	p.nextToken()

	resolved, data, err := resolveInclude(path)
	if err != nil {
		p.errorf("could not resolve include %q", path)
		return []ast.Statement{&ast.NullStatement{Token: p.curToken}}
	}
	if p.includeGuard[resolved] {
		return []ast.Statement{&ast.NullStatement{Token: p.curToken}}
	}
	p.includeGuard[resolved] = true

	childLexer := lexer.New(string(data))
	child := New(childLexer)
	child.includeGuard = p.includeGuard
	program := child.ParseProgram()
	p.errors = append(p.errors, child.errors...)
	return program.Statements
}

func resolveInclude(path string) (resolvedPath string, data []byte, err error) {
	if data, err = os.ReadFile(path); err == nil {
		return path, data, nil
	}
	alt := filepath.Join("src", path)
	if data, err = os.ReadFile(alt); err == nil {
		return alt, data, nil
	}
	return "", nil, err
}
