package parser

import (
	"fmt"

	"github.com/leapstack-labs/hqlbridge/pkg/core"
	"github.com/leapstack-labs/hqlbridge/pkg/token"
)

// parseStatement dispatches on the leading keyword.
func (p *Parser) parseStatement() core.Stmt {
	switch p.token.Type {
	case token.SELECT:
		return p.parseSelectStmt()
	case token.UPDATE:
		return p.parseUpdateStmt()
	case token.DELETE:
		return p.parseDeleteStmt()
	case token.INSERT:
		return p.parseInsertStmt()
	default:
		p.addError(fmt.Sprintf(ErrExpectedStatement, p.token.Type))
		return nil
	}
}

// parseSelectStmt parses a full SELECT statement.
//
// Grammar:
//
//	select_stmt → SELECT [DISTINCT] select_list FROM from_clause
//	              [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//	              [ORDER BY order_list]
func (p *Parser) parseSelectStmt() *core.SelectStmt {
	if !p.enterNesting() {
		return nil
	}
	defer p.leaveNesting()

	if !p.expect(token.SELECT) {
		return nil
	}

	stmt := &core.SelectStmt{}
	stmt.Distinct = p.match(token.DISTINCT)
	stmt.Items = p.parseSelectList()
	stmt.From = p.parseFromClause()

	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}
	if p.check(token.GROUP) {
		p.nextToken()
		p.expect(token.BY)
		stmt.GroupBy = p.parseExpressionList()
	}
	if p.match(token.HAVING) {
		stmt.Having = p.parseExpression()
	}
	if p.check(token.ORDER) {
		p.nextToken()
		p.expect(token.BY)
		stmt.OrderBy = p.parseOrderByList()
	}

	return stmt
}

// parseSelectList parses the comma-separated SELECT items.
func (p *Parser) parseSelectList() []core.SelectItem {
	var items []core.SelectItem
	for {
		items = append(items, p.parseSelectItem())
		if !p.match(token.COMMA) {
			break
		}
	}
	return items
}

// parseSelectItem parses one SELECT item: a constructor expression or a
// plain expression, each with an optional alias (AS is optional).
func (p *Parser) parseSelectItem() core.SelectItem {
	var item core.SelectItem

	if p.match(token.NEW) {
		item.Constructor = p.parseConstructorExpr()
	} else {
		item.Expr = p.parseExpression()
	}

	if p.match(token.AS) {
		item.Alias = p.parseIdent()
	} else if p.check(token.IDENT) {
		item.Alias = p.token.Literal
		p.nextToken()
	}

	return item
}

// parseConstructorExpr parses NEW some.pkg.Class(args). NEW is already
// consumed.
func (p *Parser) parseConstructorExpr() *core.ConstructorExpr {
	ctor := &core.ConstructorExpr{}
	ctor.ClassPath = p.parsePath()
	if !p.expect(token.LPAREN) {
		return ctor
	}
	if !p.check(token.RPAREN) {
		ctor.Args = p.parseExpressionList()
	}
	p.expect(token.RPAREN)
	return ctor
}

// parseOrderByList parses the ORDER BY items.
func (p *Parser) parseOrderByList() []core.OrderByItem {
	var items []core.OrderByItem
	for {
		item := core.OrderByItem{Expr: p.parseExpression()}
		switch {
		case p.match(token.ASC):
			item.Dir = core.OrderAsc
		case p.match(token.DESC):
			item.Dir = core.OrderDesc
		}
		if p.match(token.NULLS) {
			switch {
			case p.match(token.FIRST):
				v := true
				item.NullsFirst = &v
			case p.match(token.LAST):
				v := false
				item.NullsFirst = &v
			default:
				p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, "FIRST or LAST"))
			}
		}
		items = append(items, item)
		if !p.match(token.COMMA) {
			break
		}
	}
	return items
}

// parseUpdateStmt parses an UPDATE statement. UPDATE is the current token.
func (p *Parser) parseUpdateStmt() *core.UpdateStmt {
	p.nextToken() // consume UPDATE

	stmt := &core.UpdateStmt{}
	stmt.Entity = p.parseIdent()
	stmt.Alias = p.parseOptionalAlias()

	p.expect(token.SET)
	for {
		assign := core.Assignment{Path: p.parsePath()}
		p.expect(token.EQ)
		assign.Value = p.parseExpression()
		stmt.Assignments = append(stmt.Assignments, assign)
		if !p.match(token.COMMA) {
			break
		}
	}

	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}
	return stmt
}

// parseDeleteStmt parses a DELETE statement. DELETE is the current token.
// FROM is optional, as in HQL.
func (p *Parser) parseDeleteStmt() *core.DeleteStmt {
	p.nextToken() // consume DELETE
	p.match(token.FROM)

	stmt := &core.DeleteStmt{}
	stmt.Entity = p.parseIdent()
	stmt.Alias = p.parseOptionalAlias()

	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}
	return stmt
}

// parseInsertStmt parses INSERT INTO entity (fields) select_stmt.
// INSERT is the current token.
func (p *Parser) parseInsertStmt() *core.InsertStmt {
	p.nextToken() // consume INSERT
	p.expect(token.INTO)

	stmt := &core.InsertStmt{}
	stmt.Entity = p.parseIdent()

	if p.expect(token.LPAREN) {
		for {
			stmt.Fields = append(stmt.Fields, p.parseIdent())
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}

	stmt.Select = p.parseSelectStmt()
	return stmt
}

// parseOptionalAlias consumes an optional [AS] alias. Clause keywords like
// SET and WHERE lex as keywords, not identifiers, so a bare alias is safe
// to detect.
func (p *Parser) parseOptionalAlias() string {
	if p.match(token.AS) {
		return p.parseIdent()
	}
	if p.check(token.IDENT) {
		alias := p.token.Literal
		p.nextToken()
		return alias
	}
	return ""
}
