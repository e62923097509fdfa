package parser

import (
	"github.com/leapstack-labs/hqlbridge/pkg/core"
	"github.com/leapstack-labs/hqlbridge/pkg/token"
)

// FROM clause parsing.
//
// Grammar:
//
//	from_clause → from_item ("," from_item)*
//	from_item   → entity [[AS] alias] join*
//	join        → [INNER | LEFT [OUTER] | RIGHT [OUTER]] JOIN [FETCH]
//	              path [[AS] alias] [ON expr]
//
// Joins attach to the from item they follow. A join path is usually an
// alias navigation ("u.orders") but a bare entity name is accepted too.

// parseFromClause parses the FROM clause.
func (p *Parser) parseFromClause() *core.FromClause {
	if !p.expect(token.FROM) {
		return nil
	}

	clause := &core.FromClause{}
	for {
		clause.Items = append(clause.Items, p.parseFromItem())
		if !p.match(token.COMMA) {
			break
		}
	}
	return clause
}

// parseFromItem parses one root entity with its trailing joins.
func (p *Parser) parseFromItem() *core.FromItem {
	item := &core.FromItem{}
	item.Entity = p.parseIdent()
	item.Alias = p.parseOptionalAlias()

	for p.atJoin() {
		item.Joins = append(item.Joins, p.parseJoin())
	}
	return item
}

// atJoin returns true if the current token starts a join.
func (p *Parser) atJoin() bool {
	switch p.token.Type {
	case token.JOIN, token.INNER, token.LEFT, token.RIGHT:
		return true
	}
	return false
}

// parseJoin parses a single join clause.
func (p *Parser) parseJoin() *core.Join {
	join := &core.Join{}

	switch p.token.Type {
	case token.INNER:
		p.nextToken()
		join.Type = core.JoinInner
	case token.LEFT:
		p.nextToken()
		if p.match(token.OUTER) {
			join.Type = core.JoinLeftOuter
		} else {
			join.Type = core.JoinLeft
		}
	case token.RIGHT:
		p.nextToken()
		if p.match(token.OUTER) {
			join.Type = core.JoinRightOuter
		} else {
			join.Type = core.JoinRight
		}
	}

	p.expect(token.JOIN)
	join.Fetch = p.match(token.FETCH)
	join.Path = p.parsePath()
	join.Alias = p.parseOptionalAlias()

	if p.match(token.ON) {
		join.On = p.parseExpression()
	}
	return join
}
