package parser

import (
	"fmt"

	"github.com/leapstack-labs/hqlbridge/pkg/core"
	"github.com/leapstack-labs/hqlbridge/pkg/token"
)

// Expression precedence parsing using a Pratt parser.
//
// Precedence levels, loosest to tightest:
//
//	precOr         = 1  (OR)
//	precAnd        = 2  (AND)
//	precNot        = 3  (NOT as prefix)
//	precEquality   = 4  (=, <>, IS, BETWEEN, IN, LIKE, MEMBER OF)
//	precComparison = 5  (<, <=, >, >=)
//	precAdditive   = 6  (+, -)
//	precMultiply   = 7  (*, /, %)
//	precUnary      = 8  (unary -, unary +)
//
// Equality binds looser than ordering comparison, which keeps predicate
// forms like BETWEEN and IN at the same level as = and <>. Binary operators
// are left-associative.
const (
	precNone = iota
	precOr
	precAnd
	precNot
	precEquality
	precComparison
	precAdditive
	precMultiply
	precUnary
)

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() core.Expr {
	return p.parseExpressionWithPrecedence(precNone + 1)
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []core.Expr {
	var exprs []core.Expr
	for {
		exprs = append(exprs, p.parseExpression())
		if !p.match(token.COMMA) {
			break
		}
	}
	return exprs
}

// parseExpressionWithPrecedence implements Pratt parsing.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) core.Expr {
	if !p.enterNesting() {
		return nil
	}
	defer p.leaveNesting()

	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for {
		prec := p.infixPrecedence()
		if prec < minPrecedence {
			break
		}

		left = p.parseInfixExpr(left, prec)
		if left == nil {
			break
		}
	}

	return left
}

// parsePrefixExpr parses prefix expressions (NOT, unary sign, primaries).
func (p *Parser) parsePrefixExpr() core.Expr {
	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		if p.check(token.EXISTS) {
			return p.parseExistsExpr(true)
		}
		expr := p.parseExpressionWithPrecedence(precNot)
		return &core.NotExpr{Expr: expr}

	case token.MINUS:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(precUnary)
		return &core.UnaryExpr{Op: token.MINUS, Expr: expr}

	case token.PLUS:
		p.nextToken()
		expr := p.parseExpressionWithPrecedence(precUnary)
		return &core.UnaryExpr{Op: token.PLUS, Expr: expr}

	default:
		return p.parsePrimary()
	}
}

// infixPrecedence returns the precedence of the current token as an infix
// operator, or precNone if it is not one.
func (p *Parser) infixPrecedence() int {
	switch p.token.Type {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.EQ, token.NE:
		return precEquality
	case token.IS, token.BETWEEN, token.IN, token.LIKE, token.MEMBER:
		return precEquality
	case token.NOT:
		// NOT BETWEEN, NOT IN, NOT LIKE, NOT MEMBER
		switch p.peek.Type {
		case token.BETWEEN, token.IN, token.LIKE, token.MEMBER:
			return precEquality
		}
		return precNone
	case token.LT, token.LE, token.GT, token.GE:
		return precComparison
	case token.PLUS, token.MINUS:
		return precAdditive
	case token.STAR, token.SLASH, token.PERCENT:
		return precMultiply
	default:
		return precNone
	}
}

// parseInfixExpr parses the infix form starting at the current operator.
func (p *Parser) parseInfixExpr(left core.Expr, prec int) core.Expr {
	switch p.token.Type {
	case token.IS:
		return p.parseIsNullExpr(left)
	case token.BETWEEN:
		return p.parseBetweenExpr(left, false)
	case token.IN:
		return p.parseInExpr(left, false)
	case token.LIKE:
		return p.parseLikeExpr(left, false)
	case token.MEMBER:
		return p.parseMemberOfExpr(left, false)
	case token.NOT:
		p.nextToken()
		switch p.token.Type {
		case token.BETWEEN:
			return p.parseBetweenExpr(left, true)
		case token.IN:
			return p.parseInExpr(left, true)
		case token.LIKE:
			return p.parseLikeExpr(left, true)
		case token.MEMBER:
			return p.parseMemberOfExpr(left, true)
		default:
			p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, "BETWEEN, IN, LIKE, or MEMBER"))
			return nil
		}
	default:
		op := p.token.Type
		p.nextToken()
		right := p.parseExpressionWithPrecedence(prec + 1)
		if right == nil {
			return nil
		}
		return &core.BinaryExpr{Left: left, Op: op, Right: right}
	}
}

// parseIsNullExpr parses IS [NOT] NULL. IS is the current token.
func (p *Parser) parseIsNullExpr(left core.Expr) core.Expr {
	p.nextToken() // consume IS
	not := p.match(token.NOT)
	if !p.expect(token.NULL) {
		return nil
	}
	return &core.IsNullExpr{Expr: left, Not: not}
}

// parseBetweenExpr parses [NOT] BETWEEN low AND high. BETWEEN is the
// current token. The bounds parse above AND so the separator is not
// swallowed as a conjunction.
func (p *Parser) parseBetweenExpr(left core.Expr, not bool) core.Expr {
	p.nextToken() // consume BETWEEN
	low := p.parseExpressionWithPrecedence(precComparison)
	if !p.expect(token.AND) {
		return nil
	}
	high := p.parseExpressionWithPrecedence(precComparison)
	if low == nil || high == nil {
		return nil
	}
	return &core.BetweenExpr{Expr: left, Not: not, Low: low, High: high}
}

// parseInExpr parses [NOT] IN (list) or [NOT] IN (subquery). IN is the
// current token.
func (p *Parser) parseInExpr(left core.Expr, not bool) core.Expr {
	p.nextToken() // consume IN
	if !p.expect(token.LPAREN) {
		return nil
	}

	expr := &core.InExpr{Expr: left, Not: not}
	if p.check(token.SELECT) {
		expr.Query = p.parseSelectStmt()
	} else {
		expr.Values = p.parseExpressionList()
	}
	p.expect(token.RPAREN)
	return expr
}

// parseLikeExpr parses [NOT] LIKE pattern [ESCAPE 'c']. LIKE is the
// current token.
func (p *Parser) parseLikeExpr(left core.Expr, not bool) core.Expr {
	p.nextToken() // consume LIKE
	pattern := p.parseExpressionWithPrecedence(precComparison)
	if pattern == nil {
		return nil
	}

	expr := &core.LikeExpr{Expr: left, Not: not, Pattern: pattern}
	if p.match(token.ESCAPE) {
		if !p.check(token.STRING) {
			p.addError(ErrExpectedEscapeString)
			return nil
		}
		expr.Escape = p.token.Literal
		p.nextToken()
	}
	return expr
}

// parseMemberOfExpr parses [NOT] MEMBER [OF] path. MEMBER is the current
// token.
func (p *Parser) parseMemberOfExpr(left core.Expr, not bool) core.Expr {
	p.nextToken() // consume MEMBER
	of := p.match(token.OF)
	path := p.parsePath()
	if path == nil {
		return nil
	}
	return &core.MemberOfExpr{Expr: left, Not: not, Of: of, Path: path}
}

// parseExistsExpr parses [NOT] EXISTS (subquery). EXISTS is the current
// token; NOT was consumed by the caller.
func (p *Parser) parseExistsExpr(not bool) core.Expr {
	p.nextToken() // consume EXISTS
	if !p.expect(token.LPAREN) {
		return nil
	}
	sel := p.parseSelectStmt()
	p.expect(token.RPAREN)
	if sel == nil {
		return nil
	}
	return &core.ExistsExpr{Not: not, Select: sel}
}
