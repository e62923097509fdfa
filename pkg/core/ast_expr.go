package core

import (
	"strings"

	"github.com/leapstack-labs/hqlbridge/pkg/token"
)

// ---------- Expression Types ----------

// PathExpr represents a dotted identifier path: a bare field, an
// alias-qualified field ("u.name"), or a fully qualified constant
// ("com.acme.Status.ACTIVE"). Always has at least one segment.
type PathExpr struct {
	Segments []string
}

func (*PathExpr) exprNode() {}

// Root returns the first path segment.
func (p *PathExpr) Root() string { return p.Segments[0] }

// Property returns the last path segment.
func (p *PathExpr) Property() string { return p.Segments[len(p.Segments)-1] }

// String returns the dotted source form of the path.
func (p *PathExpr) String() string { return strings.Join(p.Segments, ".") }

// LiteralType represents the type of a literal.
type LiteralType int

// LiteralType constants for literal value kinds.
const (
	LiteralInteger LiteralType = iota
	LiteralDecimal
	LiteralString
	LiteralBool
	LiteralNull
)

// Literal represents a literal value. Value holds the unquoted text for
// strings and the source text for everything else.
type Literal struct {
	Type  LiteralType
	Value string
}

func (*Literal) exprNode() {}

// Param represents a query parameter. Text keeps the source form,
// including the leading ":" or "?".
type Param struct {
	Text string
}

func (*Param) exprNode() {}

// Name returns the parameter identity as recorded in query metadata:
// named parameters without the colon, positional parameters verbatim.
func (p *Param) Name() string {
	if strings.HasPrefix(p.Text, ":") {
		return p.Text[1:]
	}
	return p.Text
}

// BinaryExpr represents a binary operator expression (AND, OR, =, <>,
// comparison, additive, multiplicative).
type BinaryExpr struct {
	Left  Expr
	Op    token.TokenType
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a unary arithmetic operator (+ or -).
type UnaryExpr struct {
	Op   token.TokenType
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// NotExpr represents a unary NOT.
type NotExpr struct {
	Expr Expr
}

func (*NotExpr) exprNode() {}

// IsNullExpr represents IS [NOT] NULL.
type IsNullExpr struct {
	Expr Expr
	Not  bool
}

func (*IsNullExpr) exprNode() {}

// BetweenExpr represents [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

func (*BetweenExpr) exprNode() {}

// InExpr represents [NOT] IN (values) or [NOT] IN (subquery).
type InExpr struct {
	Expr   Expr
	Not    bool
	Values []Expr
	Query  *SelectStmt
}

func (*InExpr) exprNode() {}

// LikeExpr represents [NOT] LIKE pattern [ESCAPE 'c'].
type LikeExpr struct {
	Expr    Expr
	Not     bool
	Pattern Expr
	Escape  string // unquoted escape character literal, empty if absent
}

func (*LikeExpr) exprNode() {}

// MemberOfExpr represents [NOT] MEMBER [OF] path.
type MemberOfExpr struct {
	Expr Expr
	Not  bool
	Of   bool // whether OF was written
	Path *PathExpr
}

func (*MemberOfExpr) exprNode() {}

// ExistsExpr represents [NOT] EXISTS (subquery).
type ExistsExpr struct {
	Not    bool
	Select *SelectStmt
}

func (*ExistsExpr) exprNode() {}

// ParenExpr represents a parenthesized expression.
type ParenExpr struct {
	Expr Expr
}

func (*ParenExpr) exprNode() {}

// SubqueryExpr represents a SELECT statement used as an expression.
type SubqueryExpr struct {
	Select *SelectStmt
}

func (*SubqueryExpr) exprNode() {}

// CaseExpr represents a CASE expression. Operand is nil for the
// searched form (CASE WHEN ... THEN ...).
type CaseExpr struct {
	Operand Expr
	Whens   []WhenClause
	Else    Expr
}

func (*CaseExpr) exprNode() {}

// WhenClause represents a WHEN ... THEN ... arm.
type WhenClause struct {
	Condition Expr
	Result    Expr
}

// FuncCall represents a function call. Known functions come from a fixed
// dispatch table; anything else parses as an unknown function so custom
// functions pass through without failing the grammar.
type FuncCall struct {
	Name     string // uppercased for known functions, verbatim otherwise
	Known    bool
	Distinct bool
	Star     bool // COUNT(*)
	Nullary  bool // CURRENT_DATE and friends, rendered without parens
	Args     []Expr
}

func (*FuncCall) exprNode() {}

// CastExpr represents CAST(expr AS type).
type CastExpr struct {
	Expr     Expr
	TypeName string
}

func (*CastExpr) exprNode() {}
