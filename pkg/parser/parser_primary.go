package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/hqlbridge/pkg/core"
	"github.com/leapstack-labs/hqlbridge/pkg/token"
)

// knownFunctions is the fixed dispatch table of built-in function names.
// The value is true for aggregates, which accept DISTINCT and COUNT(*).
var knownFunctions = map[string]bool{
	"avg":   true,
	"count": true,
	"max":   true,
	"min":   true,
	"sum":   true,

	"upper":     false,
	"lower":     false,
	"trim":      false,
	"length":    false,
	"concat":    false,
	"substring": false,
	"size":      false,
	"abs":       false,
	"sqrt":      false,
	"mod":       false,
	"coalesce":  false,
	"nullif":    false,
}

// nullaryFunctions are recognized without parentheses.
var nullaryFunctions = map[string]bool{
	"current_date":      true,
	"current_time":      true,
	"current_timestamp": true,
}

// parsePrimary parses a primary expression: literals, parameters, paths,
// function calls, parenthesized expressions, subqueries, CASE, and EXISTS.
func (p *Parser) parsePrimary() core.Expr {
	switch p.token.Type {
	case token.INTEGER:
		lit := &core.Literal{Type: core.LiteralInteger, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.DECIMAL:
		lit := &core.Literal{Type: core.LiteralDecimal, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.STRING:
		lit := &core.Literal{Type: core.LiteralString, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.TRUE, token.FALSE:
		// Source spelling is kept so rendered SQL matches the input
		lit := &core.Literal{Type: core.LiteralBool, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.NULL:
		lit := &core.Literal{Type: core.LiteralNull, Value: p.token.Literal}
		p.nextToken()
		return lit

	case token.PARAM:
		param := &core.Param{Text: p.token.Literal}
		p.nextToken()
		return param

	case token.LPAREN:
		p.nextToken()
		if p.check(token.SELECT) {
			sel := p.parseSelectStmt()
			p.expect(token.RPAREN)
			if sel == nil {
				return nil
			}
			return &core.SubqueryExpr{Select: sel}
		}
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		if expr == nil {
			return nil
		}
		return &core.ParenExpr{Expr: expr}

	case token.CASE:
		return p.parseCaseExpr()

	case token.EXISTS:
		return p.parseExistsExpr(false)

	case token.IDENT:
		return p.parseIdentExpr()

	default:
		p.addError(fmt.Sprintf(ErrUnexpectedTokenExpr, p.token.Type))
		return nil
	}
}

// parseIdentExpr parses an expression starting with an identifier: a
// function call when followed by parentheses, a nullary date function, or
// a dotted path.
func (p *Parser) parseIdentExpr() core.Expr {
	name := p.token.Literal
	lower := strings.ToLower(name)

	if p.checkPeek(token.LPAREN) {
		return p.parseFuncCall(name, lower)
	}

	if nullaryFunctions[lower] {
		p.nextToken()
		return &core.FuncCall{Name: strings.ToUpper(lower), Known: true, Nullary: true}
	}

	path := p.parsePath()
	if path == nil {
		return nil
	}
	return path
}

// parseFuncCall parses name(args). The current token is the function name
// and peek is LPAREN. Unknown names still parse so custom database
// functions pass through.
func (p *Parser) parseFuncCall(name, lower string) core.Expr {
	p.nextToken() // consume name
	p.nextToken() // consume '('

	if lower == "cast" {
		return p.parseCastExpr()
	}

	aggregate, known := knownFunctions[lower]
	fn := &core.FuncCall{Name: name, Known: known}
	if known || nullaryFunctions[lower] {
		fn.Name = strings.ToUpper(lower)
		fn.Known = true
	}

	if aggregate {
		fn.Distinct = p.match(token.DISTINCT)
		if lower == "count" && p.check(token.STAR) {
			p.nextToken()
			fn.Star = true
			p.expect(token.RPAREN)
			return fn
		}
	}

	if !p.check(token.RPAREN) {
		fn.Args = p.parseExpressionList()
	}
	p.expect(token.RPAREN)
	return fn
}

// parseCastExpr parses the remainder of CAST(expr AS type). The opening
// parenthesis is already consumed.
func (p *Parser) parseCastExpr() core.Expr {
	expr := p.parseExpression()
	if !p.expect(token.AS) {
		return nil
	}
	typeName := p.parseIdent()
	p.expect(token.RPAREN)
	if expr == nil || typeName == "" {
		return nil
	}
	return &core.CastExpr{Expr: expr, TypeName: typeName}
}

// parseCaseExpr parses simple and searched CASE expressions. CASE is the
// current token.
func (p *Parser) parseCaseExpr() core.Expr {
	p.nextToken() // consume CASE

	expr := &core.CaseExpr{}
	if !p.check(token.WHEN) {
		expr.Operand = p.parseExpression()
	}

	for p.match(token.WHEN) {
		when := core.WhenClause{Condition: p.parseExpression()}
		p.expect(token.THEN)
		when.Result = p.parseExpression()
		expr.Whens = append(expr.Whens, when)
	}
	if len(expr.Whens) == 0 {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, token.WHEN))
		return nil
	}

	if p.match(token.ELSE) {
		expr.Else = p.parseExpression()
	}
	p.expect(token.END)
	return expr
}
