package convert

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/hqlbridge/pkg/core"
)

// renderExpr renders an expression. The switch is exhaustive over the
// expression variants; an unknown node panics and is caught at the
// conversion boundary.
func (r *renderer) renderExpr(expr core.Expr) string {
	switch e := expr.(type) {
	case *core.PathExpr:
		return r.renderPath(e)

	case *core.Literal:
		if e.Type == core.LiteralString {
			return quoteString(e.Value)
		}
		return e.Value

	case *core.Param:
		// Placeholder translation is the caller's concern
		return e.Text

	case *core.BinaryExpr:
		return r.renderExpr(e.Left) + " " + e.Op.String() + " " + r.renderExpr(e.Right)

	case *core.UnaryExpr:
		return e.Op.String() + r.renderExpr(e.Expr)

	case *core.NotExpr:
		return "NOT " + r.renderExpr(e.Expr)

	case *core.IsNullExpr:
		out := r.renderExpr(e.Expr) + " IS"
		if e.Not {
			out += " NOT"
		}
		return out + " NULL"

	case *core.BetweenExpr:
		out := r.renderExpr(e.Expr)
		if e.Not {
			out += " NOT"
		}
		return out + " BETWEEN " + r.renderExpr(e.Low) + " AND " + r.renderExpr(e.High)

	case *core.InExpr:
		out := r.renderExpr(e.Expr)
		if e.Not {
			out += " NOT"
		}
		out += " IN ("
		if e.Query != nil {
			out += r.renderSelect(e.Query)
		} else {
			out += r.renderExprList(e.Values)
		}
		return out + ")"

	case *core.LikeExpr:
		out := r.renderExpr(e.Expr)
		if e.Not {
			out += " NOT"
		}
		out += " LIKE " + r.renderExpr(e.Pattern)
		if e.Escape != "" {
			out += " ESCAPE " + quoteString(e.Escape)
		}
		return out

	case *core.MemberOfExpr:
		out := r.renderExpr(e.Expr)
		if e.Not {
			out += " NOT"
		}
		out += " MEMBER"
		if e.Of {
			out += " OF"
		}
		return out + " " + r.renderPath(e.Path)

	case *core.ExistsExpr:
		out := ""
		if e.Not {
			out = "NOT "
		}
		return out + "EXISTS (" + r.renderSelect(e.Select) + ")"

	case *core.ParenExpr:
		return "(" + r.renderExpr(e.Expr) + ")"

	case *core.SubqueryExpr:
		return "(" + r.renderSelect(e.Select) + ")"

	case *core.CaseExpr:
		return r.renderCase(e)

	case *core.FuncCall:
		return r.renderFuncCall(e)

	case *core.CastExpr:
		return "CAST(" + r.renderExpr(e.Expr) + " AS " + e.TypeName + ")"

	default:
		panic(fmt.Sprintf("unhandled expression type %T", expr))
	}
}

func (r *renderer) renderExprList(exprs []core.Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		parts = append(parts, r.renderExpr(expr))
	}
	return strings.Join(parts, ", ")
}

func (r *renderer) renderCase(e *core.CaseExpr) string {
	var sb strings.Builder
	sb.WriteString("CASE")
	if e.Operand != nil {
		sb.WriteString(" ")
		sb.WriteString(r.renderExpr(e.Operand))
	}
	for _, when := range e.Whens {
		sb.WriteString(" WHEN ")
		sb.WriteString(r.renderExpr(when.Condition))
		sb.WriteString(" THEN ")
		sb.WriteString(r.renderExpr(when.Result))
	}
	if e.Else != nil {
		sb.WriteString(" ELSE ")
		sb.WriteString(r.renderExpr(e.Else))
	}
	sb.WriteString(" END")
	return sb.String()
}

func (r *renderer) renderFuncCall(e *core.FuncCall) string {
	if e.Nullary {
		return e.Name
	}
	if e.Star {
		return e.Name + "(*)"
	}

	var sb strings.Builder
	sb.WriteString(e.Name)
	sb.WriteString("(")
	if e.Distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(r.renderExprList(e.Args))
	sb.WriteString(")")
	return sb.String()
}

// renderPath renders a dotted path with column mapping applied.
//
// A single segment is a bare column only in UPDATE/DELETE context, where
// it resolves against the target entity; elsewhere it is an alias or
// entity reference and passes through. For longer paths the first segment
// is tried as an alias, then as a registered entity; when neither matches
// the whole path is a qualified constant and passes through verbatim.
// Segments past the second never map; they render as written.
func (r *renderer) renderPath(p *core.PathExpr) string {
	segments := p.Segments

	if len(segments) == 1 {
		if r.targetEntity != "" {
			return r.conv.columnForField(r.targetEntity, segments[0])
		}
		return segments[0]
	}

	first := segments[0]
	second := segments[1]

	entity, isAlias := r.md.EntityForAlias(first)
	if !isAlias {
		if _, registered := r.conv.entityTable[first]; !registered {
			return p.String()
		}
		entity = first
	}

	var sb strings.Builder
	sb.WriteString(first)
	sb.WriteString(".")
	sb.WriteString(r.conv.columnForField(entity, second))
	for _, rest := range segments[2:] {
		sb.WriteString(".")
		sb.WriteString(rest)
	}
	return sb.String()
}

// quoteString renders a string literal with single quotes doubled.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
