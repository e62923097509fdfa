package core

// ---------- Statement Types ----------

// SelectStmt represents a SELECT statement.
type SelectStmt struct {
	Distinct bool
	Items    []SelectItem
	From     *FromClause
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	OrderBy  []OrderByItem
}

func (*SelectStmt) stmtNode() {}

// SelectItem represents an item in the SELECT list.
// Exactly one of Constructor or Expr is set.
type SelectItem struct {
	Constructor *ConstructorExpr // NEW path(args)
	Expr        Expr
	Alias       string // AS alias
}

// ConstructorExpr represents a constructor expression: NEW some.pkg.DTO(args).
// The class path is projection sugar only; it never contributes entities or
// fields, and SQL rendering erases it entirely.
type ConstructorExpr struct {
	ClassPath *PathExpr
	Args      []Expr
}

// FromClause represents the FROM clause.
type FromClause struct {
	Items []*FromItem
}

// FromItem represents one root entity reference with its joins.
type FromItem struct {
	Entity string
	Alias  string
	Joins  []*Join
}

// JoinType represents the join-type keywords written in the source.
// The zero value is a plain JOIN with no explicit type.
type JoinType string

// Join type constants. The value is the SQL keyword prefix rendered
// before JOIN.
const (
	JoinDefault    JoinType = ""
	JoinInner      JoinType = "INNER"
	JoinLeft       JoinType = "LEFT"
	JoinLeftOuter  JoinType = "LEFT OUTER"
	JoinRight      JoinType = "RIGHT"
	JoinRightOuter JoinType = "RIGHT OUTER"
)

// Join represents a JOIN clause. Path navigation ("u.orders") is the HQL
// form; On is only set when the author wrote an explicit ON condition.
// A FETCH join may legally have no alias.
type Join struct {
	Type  JoinType
	Fetch bool
	Path  *PathExpr
	Alias string
	On    Expr
}

// OrderDir represents an ORDER BY direction as written in the source.
type OrderDir string

// Order direction constants. OrderNone means no keyword was written.
const (
	OrderNone OrderDir = ""
	OrderAsc  OrderDir = "ASC"
	OrderDesc OrderDir = "DESC"
)

// OrderByItem represents an item in the ORDER BY clause.
type OrderByItem struct {
	Expr       Expr
	Dir        OrderDir
	NullsFirst *bool // nil means not written, true = NULLS FIRST, false = NULLS LAST
}

// UpdateStmt represents an UPDATE statement.
type UpdateStmt struct {
	Entity      string
	Alias       string
	Assignments []Assignment
	Where       Expr
}

func (*UpdateStmt) stmtNode() {}

// Assignment represents one SET assignment.
type Assignment struct {
	Path  *PathExpr
	Value Expr
}

// DeleteStmt represents a DELETE statement.
type DeleteStmt struct {
	Entity string
	Alias  string
	Where  Expr
}

func (*DeleteStmt) stmtNode() {}

// InsertStmt represents an INSERT ... SELECT statement. The grammar accepts
// it so analysis works; SQL generation for INSERT is not implemented.
type InsertStmt struct {
	Entity string
	Fields []string
	Select *SelectStmt
}

func (*InsertStmt) stmtNode() {}
