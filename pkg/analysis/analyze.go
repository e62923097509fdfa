package analysis

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/hqlbridge/pkg/core"
)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// Analyze walks a parsed statement and collects its metadata.
func Analyze(stmt core.Stmt) *Metadata {
	a := &analyzer{}
	switch s := stmt.(type) {
	case *core.SelectStmt:
		a.md = newMetadata(QuerySelect)
		a.walkSelect(s)
	case *core.UpdateStmt:
		a.md = newMetadata(QueryUpdate)
		a.walkUpdate(s)
	case *core.DeleteStmt:
		a.md = newMetadata(QueryDelete)
		a.walkDelete(s)
	case *core.InsertStmt:
		a.md = newMetadata(QueryInsert)
		a.walkInsert(s)
	default:
		a.md = newMetadata("")
	}
	return a.md
}

// analyzer carries traversal state: the target entity of an UPDATE or
// DELETE, which is what unqualified field references bind to.
type analyzer struct {
	md           *Metadata
	targetEntity string
}

// walkSelect visits the FROM clause first so alias bindings exist before
// the other clauses resolve paths against them.
func (a *analyzer) walkSelect(stmt *core.SelectStmt) {
	if stmt == nil {
		return
	}

	if stmt.From != nil {
		for _, item := range stmt.From.Items {
			a.walkFromItem(item)
		}
	}

	for _, item := range stmt.Items {
		if item.Constructor != nil {
			// Class path is projection sugar; only the arguments carry
			// field references.
			for _, arg := range item.Constructor.Args {
				a.walkExpr(arg)
			}
			continue
		}
		a.walkExpr(item.Expr)
	}

	a.walkExpr(stmt.Where)
	for _, expr := range stmt.GroupBy {
		a.walkExpr(expr)
	}
	a.walkExpr(stmt.Having)
	for _, item := range stmt.OrderBy {
		a.walkExpr(item.Expr)
	}
}

func (a *analyzer) walkFromItem(item *core.FromItem) {
	if item == nil {
		return
	}
	a.md.addEntity(item.Entity, item.Alias)
	for _, join := range item.Joins {
		a.walkJoin(join)
	}
}

// walkJoin registers the join target entity. Without relationship metadata
// the entity name is inferred from the last path segment by naive
// de-pluralization, which is bookkeeping only: the rewrite stage resolves
// the real target from supplied mappings.
func (a *analyzer) walkJoin(join *core.Join) {
	if join == nil || join.Path == nil {
		return
	}

	entity := join.Path.Root()
	if len(join.Path.Segments) >= 2 {
		entity = InferEntityName(join.Path.Property())
	}
	a.md.addEntity(entity, join.Alias)

	a.walkExpr(join.On)
}

func (a *analyzer) walkUpdate(stmt *core.UpdateStmt) {
	a.md.addEntity(stmt.Entity, stmt.Alias)
	a.targetEntity = stmt.Entity
	for _, assign := range stmt.Assignments {
		a.walkPath(assign.Path)
		a.walkExpr(assign.Value)
	}
	a.walkExpr(stmt.Where)
	a.targetEntity = ""
}

func (a *analyzer) walkDelete(stmt *core.DeleteStmt) {
	a.md.addEntity(stmt.Entity, stmt.Alias)
	a.targetEntity = stmt.Entity
	a.walkExpr(stmt.Where)
	a.targetEntity = ""
}

func (a *analyzer) walkInsert(stmt *core.InsertStmt) {
	a.md.addEntity(stmt.Entity, "")
	for _, field := range stmt.Fields {
		a.md.addField(stmt.Entity, field)
	}
	a.walkSelect(stmt.Select)
}

// walkExpr traverses an expression, recording paths and parameters.
func (a *analyzer) walkExpr(expr core.Expr) {
	switch e := expr.(type) {
	case nil:
		return
	case *core.PathExpr:
		a.walkPath(e)
	case *core.Param:
		a.md.addParameter(e.Name())
	case *core.Literal:
		// No metadata in literals
	case *core.BinaryExpr:
		a.walkExpr(e.Left)
		a.walkExpr(e.Right)
	case *core.UnaryExpr:
		a.walkExpr(e.Expr)
	case *core.NotExpr:
		a.walkExpr(e.Expr)
	case *core.IsNullExpr:
		a.walkExpr(e.Expr)
	case *core.BetweenExpr:
		a.walkExpr(e.Expr)
		a.walkExpr(e.Low)
		a.walkExpr(e.High)
	case *core.InExpr:
		a.walkExpr(e.Expr)
		for _, v := range e.Values {
			a.walkExpr(v)
		}
		a.walkSelect(e.Query)
	case *core.LikeExpr:
		a.walkExpr(e.Expr)
		a.walkExpr(e.Pattern)
	case *core.MemberOfExpr:
		a.walkExpr(e.Expr)
		a.walkPath(e.Path)
	case *core.ExistsExpr:
		a.walkSelect(e.Select)
	case *core.ParenExpr:
		a.walkExpr(e.Expr)
	case *core.SubqueryExpr:
		a.walkSelect(e.Select)
	case *core.CaseExpr:
		a.walkExpr(e.Operand)
		for _, when := range e.Whens {
			a.walkExpr(when.Condition)
			a.walkExpr(when.Result)
		}
		a.walkExpr(e.Else)
	case *core.FuncCall:
		for _, arg := range e.Args {
			a.walkExpr(arg)
		}
	case *core.CastExpr:
		a.walkExpr(e.Expr)
	}
}

// walkPath records field references from a dotted path.
//
// Single-segment paths are field references only inside UPDATE or DELETE
// statements, where columns may be written unqualified; in a SELECT a bare
// identifier is an alias or entity reference, never a field. Multi-segment
// paths resolve their first segment through the alias map, then through
// registered entity names. An unresolvable first segment leaves the path
// opaque (most often a qualified enum constant), and it contributes nothing.
func (a *analyzer) walkPath(path *core.PathExpr) {
	if path == nil {
		return
	}

	if len(path.Segments) == 1 {
		name := path.Segments[0]
		if _, isAlias := a.md.EntityForAlias(name); isAlias {
			return
		}
		if a.targetEntity != "" {
			a.md.addField(a.targetEntity, name)
		}
		return
	}

	first := path.Segments[0]
	second := path.Segments[1]

	entity, ok := a.md.EntityForAlias(first)
	if !ok {
		if !a.md.HasEntity(first) {
			return
		}
		entity = first
	}

	a.md.addField(entity, second)
	for _, nested := range path.Segments[2:] {
		a.md.addField(entity, second+"."+nested)
	}
}

// InferEntityName guesses an entity name from a collection property name:
// "orders" becomes "Order". Irregular plurals defeat it, so callers treat
// the result as a placeholder until relationship metadata says otherwise.
func InferEntityName(property string) string {
	name := property
	if strings.HasSuffix(name, "s") && len(name) > 1 {
		name = name[:len(name)-1]
	}
	return titleCaser.String(name)
}
