// Package parser provides HQL/JPQL parsing.
//
// # Usage
//
//	stmt, err := parser.Parse("SELECT u FROM User u WHERE u.age > :minAge")
//	if err != nil {
//	    // handle error
//	}
//
// # Grammar Overview
//
// The parser implements a recursive descent parser for the HQL statement
// forms:
//
//	statement   → select_stmt | update_stmt | delete_stmt | insert_stmt
//	select_stmt → SELECT [DISTINCT] select_list FROM from_clause
//	              [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//	              [ORDER BY order_list]
//	update_stmt → UPDATE entity [[AS] alias] SET assignment_list [WHERE expr]
//	delete_stmt → DELETE [FROM] entity [[AS] alias] [WHERE expr]
//	insert_stmt → INSERT INTO entity ( ident_list ) select_stmt
//
// Expressions use precedence climbing; see parser_expr.go for the levels.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/hqlbridge/pkg/core"
	"github.com/leapstack-labs/hqlbridge/pkg/token"
)

// maxNestingDepth bounds expression and subquery recursion so that
// adversarial input cannot exhaust the goroutine stack.
const maxNestingDepth = 200

// Parser parses HQL into an AST.
type Parser struct {
	lexer  *Lexer
	token  Token // current token
	peek   Token // lookahead token
	errors []error
	depth  int // current expression/subquery nesting depth
}

// NewParser creates a new parser for the given HQL input.
func NewParser(hql string) *Parser {
	p := &Parser{
		lexer: NewLexer(hql),
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses the HQL input and returns the statement AST.
// Lexical errors take priority over downstream parse errors.
func Parse(hql string) (core.Stmt, error) {
	p := NewParser(hql)
	stmt := p.parseStatement()
	if len(p.errors) == 0 && !p.check(token.EOF) {
		p.addError(fmt.Sprintf(ErrTrailingInput, p.token.Type))
	}
	if err := p.lexer.Err(); err != nil {
		return nil, err
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return stmt, nil
}

// Valid reports whether the input parses without errors.
func Valid(hql string) bool {
	_, err := Parse(hql)
	return err == nil
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, t))
	return false
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// enterNesting bumps the nesting depth, failing once the bound is hit.
func (p *Parser) enterNesting() bool {
	p.depth++
	if p.depth > maxNestingDepth {
		p.addError(ErrNestingTooDeep)
		return false
	}
	return true
}

// leaveNesting undoes enterNesting.
func (p *Parser) leaveNesting() {
	p.depth--
}

// ---------- Identifier Helpers ----------

// parseIdent consumes an identifier and returns its literal.
func (p *Parser) parseIdent() string {
	if !p.check(token.IDENT) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, token.IDENT))
		return ""
	}
	name := p.token.Literal
	p.nextToken()
	return name
}

// parsePathSegment consumes a path segment after a dot. Keywords are
// allowed here so fields like "u.order" or "u.group" parse.
func (p *Parser) parsePathSegment() string {
	if p.check(token.IDENT) || token.IsKeyword(p.token.Type) {
		name := p.token.Literal
		p.nextToken()
		return name
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, token.IDENT))
	return ""
}

// parsePath parses a dotted identifier path starting at the current token.
func (p *Parser) parsePath() *core.PathExpr {
	first := p.parseIdent()
	if first == "" {
		return nil
	}
	segments := []string{first}
	for p.match(token.DOT) {
		seg := p.parsePathSegment()
		if seg == "" {
			return nil
		}
		segments = append(segments, seg)
	}
	return &core.PathExpr{Segments: segments}
}
