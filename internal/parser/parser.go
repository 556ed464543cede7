// Package parser implements the LL(1) recursive-descent parser for
// MiniLang.
//
// The parser holds a single lookahead token pulled from the lexer and
// accepts it with match(). The grammar (start symbol P):
//
//	P        → StmtList EOF
//	StmtList → Stmt StmtList | ε
//	Stmt     → 'int' IDENT ';'
//	         | IDENT '=' Expr ';'
//	         | 'print' Expr ';'
//	         | 'if' '(' Cond ')' '{' StmtList '}' ElseOpt
//	         | 'while' '(' Cond ')' '{' StmtList '}'
//	ElseOpt  → 'else' '{' StmtList '}' | ε
//	Cond     → Expr RelOp Expr
//	RelOp    → '==' | '!=' | '<' | '>'
//	Expr     → Term (('+'|'-') Term)*
//	Term     → Factor (('*'|'/') Factor)*
//	Factor   → '(' Expr ')' | IDENT | INT_LITERAL
//
// + - * / are left-associative; * and / bind tighter than + and -.
// A relational operator appears exactly once, inside a condition.
// The first syntax error aborts the parse; there is no token-level
// recovery.
package parser

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/go-minilang/internal/ast"
	"github.com/cwbudde/go-minilang/internal/errors"
	"github.com/cwbudde/go-minilang/internal/lexer"
)

// Parser represents the MiniLang parser.
type Parser struct {
	l        *lexer.Lexer
	sink     *errors.Sink
	curToken lexer.Token
	failed   bool
}

// errAbort unwinds the recursive descent after the first syntax error
// has been recorded in the sink.
var errAbort = fmt.Errorf("parse aborted")

// New creates a new Parser and primes the lookahead token.
func New(l *lexer.Lexer, sink *errors.Sink) *Parser {
	p := &Parser{
		l:    l,
		sink: sink,
	}
	p.curToken = l.NextToken()
	return p
}

// ParseProgram parses the whole token stream into a Program.
// On a syntax error it records a diagnostic in the sink and returns
// nil; the partial AST is discarded.
func (p *Parser) ParseProgram() *ast.Program {
	program, err := p.parseStmtList()
	if err != nil {
		return nil
	}
	if err := p.match(lexer.EOF); err != nil {
		return nil
	}
	return program
}

// nextToken advances the lookahead.
func (p *Parser) nextToken() {
	p.curToken = p.l.NextToken()
}

// curTokenIs checks the lookahead against a token type.
func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

// match accepts the lookahead if its type equals t and advances;
// otherwise it records a syntax error and aborts.
func (p *Parser) match(t lexer.TokenType) error {
	if p.curTokenIs(t) {
		p.nextToken()
		return nil
	}
	return p.syntaxErrorf("expected %s, got %s", t, p.describeCur())
}

// describeCur renders the lookahead for error messages.
func (p *Parser) describeCur() string {
	if p.curTokenIs(lexer.EOF) {
		return "end of input"
	}
	return fmt.Sprintf("%s (%q)", p.curToken.Type, p.curToken.Literal)
}

// syntaxErrorf records the first syntax diagnostic at the lookahead's
// coordinates and returns errAbort. Later errors are suppressed so
// the sink captures exactly the first fault.
func (p *Parser) syntaxErrorf(format string, args ...any) error {
	if !p.failed {
		p.failed = true
		p.sink.Add(errors.Syntax, fmt.Sprintf(format, args...),
			p.curToken.Pos.Line, p.curToken.Pos.Column)
	}
	return errAbort
}

// parseStmtList parses statements until a token that cannot start a
// statement (RBRACE or EOF) is reached.
func (p *Parser) parseStmtList() (*ast.Program, error) {
	program := &ast.Program{}

	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program, nil
}

// parseStatement dispatches on the lookahead token.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curToken.Type {
	case lexer.INT:
		return p.parseVarDeclStatement()
	case lexer.IDENT:
		return p.parseAssignStatement()
	case lexer.PRINT:
		return p.parsePrintStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	default:
		return nil, p.syntaxErrorf("expected statement, got %s", p.describeCur())
	}
}

// parseVarDeclStatement parses: 'int' IDENT ';'
func (p *Parser) parseVarDeclStatement() (ast.Statement, error) {
	stmt := &ast.VarDeclStatement{Token: p.curToken}
	p.nextToken()

	if !p.curTokenIs(lexer.IDENT) {
		return nil, p.syntaxErrorf("expected identifier after 'int', got %s", p.describeCur())
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.nextToken()

	if err := p.match(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseAssignStatement parses: IDENT '=' Expr ';'
func (p *Parser) parseAssignStatement() (ast.Statement, error) {
	stmt := &ast.AssignStatement{
		Token: p.curToken,
		Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
	}
	p.nextToken()

	if err := p.match(lexer.ASSIGN); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Value = value

	if err := p.match(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parsePrintStatement parses: 'print' Expr ';'
func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	stmt := &ast.PrintStatement{Token: p.curToken}
	p.nextToken()

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Value = value

	if err := p.match(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseIfStatement parses: 'if' '(' Cond ')' '{' StmtList '}' ElseOpt
func (p *Parser) parseIfStatement() (ast.Statement, error) {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.nextToken()

	if err := p.match(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	stmt.Condition = cond
	if err := p.match(lexer.RPAREN); err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt.Then = then

	if p.curTokenIs(lexer.ELSE) {
		p.nextToken()
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
	}
	return stmt, nil
}

// parseWhileStatement parses: 'while' '(' Cond ')' '{' StmtList '}'
func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	stmt := &ast.WhileStatement{Token: p.curToken}
	p.nextToken()

	if err := p.match(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	stmt.Condition = cond
	if err := p.match(lexer.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

// parseBlock parses a brace-delimited statement list. Bodies must be
// brace-delimited even when they hold a single statement.
func (p *Parser) parseBlock() (*ast.Program, error) {
	if err := p.match(lexer.LBRACE); err != nil {
		return nil, err
	}
	body, err := p.parseStmtList()
	if err != nil {
		return nil, err
	}
	if err := p.match(lexer.RBRACE); err != nil {
		return nil, err
	}
	return body, nil
}

// parseCondition parses: Expr RelOp Expr
func (p *Parser) parseCondition() (ast.Expression, error) {
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if !isRelOp(p.curToken.Type) {
		return nil, p.syntaxErrorf("expected relational operator, got %s", p.describeCur())
	}
	opToken := p.curToken
	p.nextToken()

	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.BinaryExpression{
		Token:    opToken,
		Operator: opToken.Literal,
		Left:     left,
		Right:    right,
	}, nil
}

// isRelOp reports whether t is one of == != < >.
func isRelOp(t lexer.TokenType) bool {
	return t == lexer.EQ_EQ || t == lexer.NOT_EQ || t == lexer.LESS || t == lexer.GREATER
}

// parseExpression parses: Term (('+'|'-') Term)*
// The iteration folds into a left-leaning BinaryExpression tree.
func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.curTokenIs(lexer.PLUS) || p.curTokenIs(lexer.MINUS) {
		opToken := p.curToken
		p.nextToken()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Token:    opToken,
			Operator: opToken.Literal,
			Left:     left,
			Right:    right,
		}
	}
	return left, nil
}

// parseTerm parses: Factor (('*'|'/') Factor)*
func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.curTokenIs(lexer.ASTERISK) || p.curTokenIs(lexer.SLASH) {
		opToken := p.curToken
		p.nextToken()

		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Token:    opToken,
			Operator: opToken.Literal,
			Left:     left,
			Right:    right,
		}
	}
	return left, nil
}

// parseFactor parses: '(' Expr ')' | IDENT | INT_LITERAL
func (p *Parser) parseFactor() (ast.Expression, error) {
	switch p.curToken.Type {
	case lexer.LPAREN:
		p.nextToken()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.match(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.IDENT:
		ident := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
		p.nextToken()
		return ident, nil

	case lexer.INT_LITERAL:
		return p.parseIntegerLiteral()

	default:
		return nil, p.syntaxErrorf("expected expression, got %s", p.describeCur())
	}
}

// parseIntegerLiteral parses an INT_LITERAL token into an int32 value.
func (p *Parser) parseIntegerLiteral() (ast.Expression, error) {
	lit := &ast.IntegerLiteral{Token: p.curToken}

	value, err := strconv.ParseInt(p.curToken.Literal, 10, 32)
	if err != nil {
		return nil, p.syntaxErrorf("could not parse %q as 32-bit integer", p.curToken.Literal)
	}
	lit.Value = int32(value)
	p.nextToken()
	return lit, nil
}
