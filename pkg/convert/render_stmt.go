package convert

import (
	"strings"

	"github.com/leapstack-labs/hqlbridge/pkg/analysis"
	"github.com/leapstack-labs/hqlbridge/pkg/core"
)

// renderer walks a statement and produces SQL text. Alias bindings come
// precomputed from the analysis metadata, so clauses render in output
// order. The target entity and alias of an UPDATE or DELETE are carried
// explicitly because they change how paths render.
type renderer struct {
	conv *Converter
	md   *analysis.Metadata

	targetEntity string
	updateAlias  string
}

func (r *renderer) renderSelect(stmt *core.SelectStmt) string {
	var sb strings.Builder

	sb.WriteString("SELECT")
	if stmt.Distinct {
		sb.WriteString(" DISTINCT")
	}
	sb.WriteString(" ")
	sb.WriteString(r.renderSelectList(stmt.Items))

	if stmt.From != nil {
		sb.WriteString(" ")
		sb.WriteString(r.renderFromClause(stmt.From))
	}
	if stmt.Where != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(r.renderExpr(stmt.Where))
	}
	if len(stmt.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(r.renderExprList(stmt.GroupBy))
	}
	if stmt.Having != nil {
		sb.WriteString(" HAVING ")
		sb.WriteString(r.renderExpr(stmt.Having))
	}
	if len(stmt.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(r.renderOrderByList(stmt.OrderBy))
	}

	return sb.String()
}

func (r *renderer) renderSelectList(items []core.SelectItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, r.renderSelectItem(item))
	}
	return strings.Join(parts, ", ")
}

// renderSelectItem renders one select item. A constructor expression is
// erased to its bare argument list.
func (r *renderer) renderSelectItem(item core.SelectItem) string {
	var expr string
	if item.Constructor != nil {
		expr = r.renderExprList(item.Constructor.Args)
	} else {
		expr = r.renderExpr(item.Expr)
	}
	if item.Alias != "" {
		expr += " AS " + item.Alias
	}
	return expr
}

func (r *renderer) renderFromClause(from *core.FromClause) string {
	parts := make([]string, 0, len(from.Items))
	for _, item := range from.Items {
		parts = append(parts, r.renderFromItem(item))
	}
	return "FROM " + strings.Join(parts, ", ")
}

func (r *renderer) renderFromItem(item *core.FromItem) string {
	var sb strings.Builder
	sb.WriteString(r.conv.tableForEntity(item.Entity))
	if item.Alias != "" {
		sb.WriteString(" ")
		sb.WriteString(item.Alias)
	}
	for _, join := range item.Joins {
		rendered := r.renderJoin(join)
		if rendered == "" {
			continue
		}
		sb.WriteString(" ")
		sb.WriteString(rendered)
	}
	return sb.String()
}

// renderJoin renders one join clause. An alias-less join (a FETCH join)
// cannot become a SQL JOIN and is dropped. An explicit ON passes through
// untouched; otherwise relationship metadata is consulted, and when it
// yields nothing the join is emitted bare.
func (r *renderer) renderJoin(join *core.Join) string {
	if join.Alias == "" {
		if r.conv.Logger != nil {
			r.conv.Logger.Debug("dropping alias-less fetch join", "path", join.Path.String())
		}
		return ""
	}

	// Implicit joins with a two-segment navigation path can consult
	// relationship metadata registered under the source entity.
	var mapping *JoinMapping
	var sourceAlias, property string
	if join.On == nil && len(join.Path.Segments) == 2 {
		sourceAlias = join.Path.Root()
		property = join.Path.Property()
		if sourceEntity, ok := r.md.EntityForAlias(sourceAlias); ok {
			if props, ok := r.conv.relationships[sourceEntity]; ok {
				if m, ok := props[property]; ok {
					mapping = &m
				}
			}
		}
	}

	joinType := join.Type
	if joinType == core.JoinDefault && mapping != nil && mapping.JoinTypeHint != core.JoinDefault {
		joinType = mapping.JoinTypeHint
	}

	var sb strings.Builder
	if joinType != core.JoinDefault {
		sb.WriteString(string(joinType))
		sb.WriteString(" ")
	}
	sb.WriteString("JOIN ")

	joinEntity, _ := r.md.EntityForAlias(join.Alias)
	sb.WriteString(r.conv.tableForEntity(joinEntity))
	sb.WriteString(" ")
	sb.WriteString(join.Alias)

	switch {
	case join.On != nil:
		sb.WriteString(" ON ")
		sb.WriteString(r.renderExpr(join.On))
	case mapping != nil:
		if on := r.conv.resolveOnClause(sourceAlias, property, join.Alias, mapping); on != "" {
			sb.WriteString(" ON ")
			sb.WriteString(on)
		}
	}

	return sb.String()
}

func (r *renderer) renderOrderByList(items []core.OrderByItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		var sb strings.Builder
		sb.WriteString(r.renderExpr(item.Expr))
		if item.Dir != core.OrderNone {
			sb.WriteString(" ")
			sb.WriteString(string(item.Dir))
		}
		if item.NullsFirst != nil {
			if *item.NullsFirst {
				sb.WriteString(" NULLS FIRST")
			} else {
				sb.WriteString(" NULLS LAST")
			}
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, ", ")
}

func (r *renderer) renderUpdate(stmt *core.UpdateStmt) string {
	r.targetEntity = stmt.Entity
	r.updateAlias = stmt.Alias

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(r.conv.tableForEntity(stmt.Entity))
	if stmt.Alias != "" {
		sb.WriteString(" ")
		sb.WriteString(stmt.Alias)
	}

	sb.WriteString(" SET ")
	parts := make([]string, 0, len(stmt.Assignments))
	for _, assign := range stmt.Assignments {
		parts = append(parts, r.renderAssignment(assign))
	}
	sb.WriteString(strings.Join(parts, ", "))

	if stmt.Where != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(r.renderExpr(stmt.Where))
	}
	return sb.String()
}

// renderAssignment renders one SET assignment. The left-hand side is
// always unqualified: "SET col = v", never "SET t.col = v", which the
// target dialect rejects.
func (r *renderer) renderAssignment(assign core.Assignment) string {
	segments := assign.Path.Segments

	var lhs string
	if len(segments) == 1 {
		lhs = r.conv.columnForField(r.targetEntity, segments[0])
	} else {
		first := segments[0]
		second := segments[1]
		entity, ok := r.md.EntityForAlias(first)
		if !ok {
			entity = first
		}
		if r.updateAlias != "" && first == r.updateAlias && entity == r.targetEntity {
			lhs = r.conv.columnForField(entity, second)
		} else {
			lhs = first + "." + r.conv.columnForField(entity, second)
		}
	}

	return lhs + " = " + r.renderExpr(assign.Value)
}

// renderDelete renders DELETE FROM without the source alias; WHERE
// references keep whatever qualification the author wrote.
func (r *renderer) renderDelete(stmt *core.DeleteStmt) string {
	r.targetEntity = stmt.Entity

	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(r.conv.tableForEntity(stmt.Entity))

	if stmt.Where != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(r.renderExpr(stmt.Where))
	}
	return sb.String()
}
