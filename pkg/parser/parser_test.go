package parser_test

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/hqlbridge/pkg/core"
	"github.com/leapstack-labs/hqlbridge/pkg/parser"
	"github.com/leapstack-labs/hqlbridge/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseSelect is a test helper that parses and asserts a SELECT statement.
func parseSelect(t *testing.T, hql string) *core.SelectStmt {
	t.Helper()
	stmt, err := parser.Parse(hql)
	require.NoError(t, err)
	sel, ok := stmt.(*core.SelectStmt)
	require.True(t, ok, "expected *core.SelectStmt, got %T", stmt)
	return sel
}

// ---------- SELECT Tests ----------

func TestParseSimpleSelect(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u")

	require.Len(t, sel.Items, 1)
	path, ok := sel.Items[0].Expr.(*core.PathExpr)
	require.True(t, ok)
	assert.Equal(t, []string{"u"}, path.Segments)

	require.NotNil(t, sel.From)
	require.Len(t, sel.From.Items, 1)
	assert.Equal(t, "User", sel.From.Items[0].Entity)
	assert.Equal(t, "u", sel.From.Items[0].Alias)
}

func TestParseSelectDistinct(t *testing.T) {
	sel := parseSelect(t, "SELECT DISTINCT u.name FROM User u")
	assert.True(t, sel.Distinct)
}

func TestParseSelectAliases(t *testing.T) {
	sel := parseSelect(t, "SELECT u.name AS userName, u.age years FROM User u")
	require.Len(t, sel.Items, 2)
	assert.Equal(t, "userName", sel.Items[0].Alias)
	assert.Equal(t, "years", sel.Items[1].Alias)
}

func TestParseConstructorExpression(t *testing.T) {
	sel := parseSelect(t, "SELECT NEW com.example.UserDTO(u.name, u.age) FROM User u")

	require.Len(t, sel.Items, 1)
	ctor := sel.Items[0].Constructor
	require.NotNil(t, ctor)
	assert.Equal(t, "com.example.UserDTO", ctor.ClassPath.String())
	assert.Len(t, ctor.Args, 2)
}

func TestParseGroupByHaving(t *testing.T) {
	sel := parseSelect(t, "SELECT u.dept, COUNT(u) FROM User u GROUP BY u.dept HAVING COUNT(u) > 5")
	require.Len(t, sel.GroupBy, 1)
	require.NotNil(t, sel.Having)
}

func TestParseOrderBy(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u ORDER BY u.name ASC, u.age DESC, u.id")

	require.Len(t, sel.OrderBy, 3)
	assert.Equal(t, core.OrderAsc, sel.OrderBy[0].Dir)
	assert.Equal(t, core.OrderDesc, sel.OrderBy[1].Dir)
	assert.Equal(t, core.OrderNone, sel.OrderBy[2].Dir)
}

func TestParseOrderByNulls(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u ORDER BY u.name ASC NULLS FIRST, u.age NULLS LAST")

	require.Len(t, sel.OrderBy, 2)
	require.NotNil(t, sel.OrderBy[0].NullsFirst)
	assert.True(t, *sel.OrderBy[0].NullsFirst)
	require.NotNil(t, sel.OrderBy[1].NullsFirst)
	assert.False(t, *sel.OrderBy[1].NullsFirst)
}

// ---------- JOIN Tests ----------

func TestParseJoinTypes(t *testing.T) {
	tests := []struct {
		name     string
		hql      string
		wantType core.JoinType
	}{
		{"plain", "SELECT u FROM User u JOIN u.orders o", core.JoinDefault},
		{"inner", "SELECT u FROM User u INNER JOIN u.orders o", core.JoinInner},
		{"left", "SELECT u FROM User u LEFT JOIN u.orders o", core.JoinLeft},
		{"left outer", "SELECT u FROM User u LEFT OUTER JOIN u.orders o", core.JoinLeftOuter},
		{"right", "SELECT u FROM User u RIGHT JOIN u.orders o", core.JoinRight},
		{"right outer", "SELECT u FROM User u RIGHT OUTER JOIN u.orders o", core.JoinRightOuter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := parseSelect(t, tt.hql)
			require.Len(t, sel.From.Items, 1)
			require.Len(t, sel.From.Items[0].Joins, 1)

			join := sel.From.Items[0].Joins[0]
			assert.Equal(t, tt.wantType, join.Type)
			assert.Equal(t, "u.orders", join.Path.String())
			assert.Equal(t, "o", join.Alias)
		})
	}
}

func TestParseJoinFetch(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u LEFT JOIN FETCH u.orders")

	join := sel.From.Items[0].Joins[0]
	assert.True(t, join.Fetch)
	assert.Empty(t, join.Alias)
}

func TestParseJoinOn(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u JOIN u.orders o ON o.total > 100")

	join := sel.From.Items[0].Joins[0]
	require.NotNil(t, join.On)
	bin, ok := join.On.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.GT, bin.Op)
}

func TestParseMultipleFromItems(t *testing.T) {
	sel := parseSelect(t, "SELECT u, o FROM User u, OrderEntity o WHERE u.id = o.userId")
	require.Len(t, sel.From.Items, 2)
	assert.Equal(t, "User", sel.From.Items[0].Entity)
	assert.Equal(t, "OrderEntity", sel.From.Items[1].Entity)
}

// ---------- Expression Tests ----------

func TestParsePrecedenceAndOr(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u WHERE u.a = 1 OR u.b = 2 AND u.c = 3")

	// AND binds tighter than OR
	or, ok := sel.Where.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.OR, or.Op)
	and, ok := or.Right.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.AND, and.Op)
}

func TestParsePrecedenceComparisonOverEquality(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u WHERE u.a < u.b = u.c < u.d")

	// Ordering comparison binds tighter than equality
	eq, ok := sel.Where.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.EQ, eq.Op)

	left, ok := eq.Left.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.LT, left.Op)
	right, ok := eq.Right.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.LT, right.Op)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u WHERE u.a + u.b * 2 = 10")

	eq := sel.Where.(*core.BinaryExpr)
	add, ok := eq.Left.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, add.Op)
	mul, ok := add.Right.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.STAR, mul.Op)
}

func TestParseNotPrecedence(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u WHERE NOT u.a = 1 AND u.b = 2")

	// NOT binds tighter than AND, looser than =
	and, ok := sel.Where.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.AND, and.Op)
	not, ok := and.Left.(*core.NotExpr)
	require.True(t, ok)
	_, ok = not.Expr.(*core.BinaryExpr)
	assert.True(t, ok)
}

func TestParsePredicates(t *testing.T) {
	tests := []struct {
		name  string
		where string
		check func(t *testing.T, e core.Expr)
	}{
		{
			name:  "is null",
			where: "u.name IS NULL",
			check: func(t *testing.T, e core.Expr) {
				isNull := e.(*core.IsNullExpr)
				assert.False(t, isNull.Not)
			},
		},
		{
			name:  "is not null",
			where: "u.name IS NOT NULL",
			check: func(t *testing.T, e core.Expr) {
				isNull := e.(*core.IsNullExpr)
				assert.True(t, isNull.Not)
			},
		},
		{
			name:  "between",
			where: "u.age BETWEEN 18 AND 65",
			check: func(t *testing.T, e core.Expr) {
				between := e.(*core.BetweenExpr)
				assert.False(t, between.Not)
				require.NotNil(t, between.Low)
				require.NotNil(t, between.High)
			},
		},
		{
			name:  "not between",
			where: "u.age NOT BETWEEN 18 AND 65",
			check: func(t *testing.T, e core.Expr) {
				between := e.(*core.BetweenExpr)
				assert.True(t, between.Not)
			},
		},
		{
			name:  "in list",
			where: "u.status IN ('A', 'B', 'C')",
			check: func(t *testing.T, e core.Expr) {
				in := e.(*core.InExpr)
				assert.Len(t, in.Values, 3)
				assert.Nil(t, in.Query)
			},
		},
		{
			name:  "not in",
			where: "u.status NOT IN (1, 2)",
			check: func(t *testing.T, e core.Expr) {
				in := e.(*core.InExpr)
				assert.True(t, in.Not)
			},
		},
		{
			name:  "in subquery",
			where: "u.id IN (SELECT o.userId FROM OrderEntity o)",
			check: func(t *testing.T, e core.Expr) {
				in := e.(*core.InExpr)
				assert.Nil(t, in.Values)
				require.NotNil(t, in.Query)
			},
		},
		{
			name:  "like",
			where: "u.name LIKE 'J%'",
			check: func(t *testing.T, e core.Expr) {
				like := e.(*core.LikeExpr)
				assert.False(t, like.Not)
				assert.Empty(t, like.Escape)
			},
		},
		{
			name:  "like escape",
			where: "u.name LIKE '100!%' ESCAPE '!'",
			check: func(t *testing.T, e core.Expr) {
				like := e.(*core.LikeExpr)
				assert.Equal(t, "!", like.Escape)
			},
		},
		{
			name:  "member of",
			where: "u MEMBER OF g.users",
			check: func(t *testing.T, e core.Expr) {
				member := e.(*core.MemberOfExpr)
				assert.True(t, member.Of)
				assert.Equal(t, "g.users", member.Path.String())
			},
		},
		{
			name:  "not member of",
			where: "u NOT MEMBER OF g.users",
			check: func(t *testing.T, e core.Expr) {
				member := e.(*core.MemberOfExpr)
				assert.True(t, member.Not)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := parseSelect(t, "SELECT u FROM User u WHERE "+tt.where)
			require.NotNil(t, sel.Where)
			tt.check(t, sel.Where)
		})
	}
}

func TestParseExists(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u WHERE EXISTS (SELECT o FROM OrderEntity o WHERE o.userId = u.id)")
	exists, ok := sel.Where.(*core.ExistsExpr)
	require.True(t, ok)
	assert.False(t, exists.Not)
	require.NotNil(t, exists.Select)
}

func TestParseNotExists(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u WHERE NOT EXISTS (SELECT o FROM OrderEntity o)")
	exists, ok := sel.Where.(*core.ExistsExpr)
	require.True(t, ok)
	assert.True(t, exists.Not)
}

func TestParseCaseExpression(t *testing.T) {
	sel := parseSelect(t, "SELECT CASE WHEN u.age >= 18 THEN 'adult' ELSE 'minor' END FROM User u")

	caseExpr, ok := sel.Items[0].Expr.(*core.CaseExpr)
	require.True(t, ok)
	assert.Nil(t, caseExpr.Operand)
	require.Len(t, caseExpr.Whens, 1)
	require.NotNil(t, caseExpr.Else)
}

func TestParseSimpleCaseExpression(t *testing.T) {
	sel := parseSelect(t, "SELECT CASE u.status WHEN 1 THEN 'on' WHEN 2 THEN 'off' END FROM User u")

	caseExpr := sel.Items[0].Expr.(*core.CaseExpr)
	require.NotNil(t, caseExpr.Operand)
	assert.Len(t, caseExpr.Whens, 2)
	assert.Nil(t, caseExpr.Else)
}

func TestParseFunctions(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		wantName string
		wantArgs int
	}{
		{"count", "COUNT(u)", "COUNT", 1},
		{"avg", "AVG(u.age)", "AVG", 1},
		{"upper lowercased source", "upper(u.name)", "UPPER", 1},
		{"concat", "CONCAT(u.first, u.last)", "CONCAT", 2},
		{"coalesce", "COALESCE(u.nick, u.name, 'anon')", "COALESCE", 3},
		{"size", "SIZE(u.orders)", "SIZE", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := parseSelect(t, "SELECT "+tt.expr+" FROM User u")
			fn, ok := sel.Items[0].Expr.(*core.FuncCall)
			require.True(t, ok)
			assert.Equal(t, tt.wantName, fn.Name)
			assert.True(t, fn.Known)
			assert.Len(t, fn.Args, tt.wantArgs)
		})
	}
}

func TestParseCountStar(t *testing.T) {
	sel := parseSelect(t, "SELECT COUNT(*) FROM User u")
	fn := sel.Items[0].Expr.(*core.FuncCall)
	assert.True(t, fn.Star)
	assert.Empty(t, fn.Args)
}

func TestParseCountDistinct(t *testing.T) {
	sel := parseSelect(t, "SELECT COUNT(DISTINCT u.dept) FROM User u")
	fn := sel.Items[0].Expr.(*core.FuncCall)
	assert.True(t, fn.Distinct)
	assert.Len(t, fn.Args, 1)
}

func TestParseUnknownFunctionPassesThrough(t *testing.T) {
	sel := parseSelect(t, "SELECT my_custom_fn(u.name, 3) FROM User u")
	fn, ok := sel.Items[0].Expr.(*core.FuncCall)
	require.True(t, ok)
	assert.Equal(t, "my_custom_fn", fn.Name)
	assert.False(t, fn.Known)
	assert.Len(t, fn.Args, 2)
}

func TestParseNullaryDateFunctions(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u WHERE u.created < CURRENT_TIMESTAMP")
	bin := sel.Where.(*core.BinaryExpr)
	fn, ok := bin.Right.(*core.FuncCall)
	require.True(t, ok)
	assert.Equal(t, "CURRENT_TIMESTAMP", fn.Name)
	assert.True(t, fn.Nullary)
}

func TestParseCast(t *testing.T) {
	sel := parseSelect(t, "SELECT CAST(u.age AS string) FROM User u")
	cast, ok := sel.Items[0].Expr.(*core.CastExpr)
	require.True(t, ok)
	assert.Equal(t, "string", cast.TypeName)
}

func TestParseParameters(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u WHERE u.age > :minAge AND u.name = ?1")

	and := sel.Where.(*core.BinaryExpr)
	gt := and.Left.(*core.BinaryExpr)
	named, ok := gt.Right.(*core.Param)
	require.True(t, ok)
	assert.Equal(t, ":minAge", named.Text)
	assert.Equal(t, "minAge", named.Name())

	eq := and.Right.(*core.BinaryExpr)
	positional, ok := eq.Right.(*core.Param)
	require.True(t, ok)
	assert.Equal(t, "?1", positional.Text)
	assert.Equal(t, "?1", positional.Name())
}

func TestParseUnaryMinus(t *testing.T) {
	sel := parseSelect(t, "SELECT u FROM User u WHERE u.balance < -100")
	lt := sel.Where.(*core.BinaryExpr)
	neg, ok := lt.Right.(*core.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.MINUS, neg.Op)
}

func TestParseKeywordAsPathSegment(t *testing.T) {
	sel := parseSelect(t, "SELECT u.order FROM User u")
	path := sel.Items[0].Expr.(*core.PathExpr)
	assert.Equal(t, []string{"u", "order"}, path.Segments)
}

// ---------- UPDATE / DELETE / INSERT Tests ----------

func TestParseUpdate(t *testing.T) {
	stmt, err := parser.Parse("UPDATE User u SET u.name = :name, u.age = 30 WHERE u.id = :id")
	require.NoError(t, err)

	upd, ok := stmt.(*core.UpdateStmt)
	require.True(t, ok)
	assert.Equal(t, "User", upd.Entity)
	assert.Equal(t, "u", upd.Alias)
	require.Len(t, upd.Assignments, 2)
	assert.Equal(t, "u.name", upd.Assignments[0].Path.String())
	require.NotNil(t, upd.Where)
}

func TestParseUpdateWithoutAlias(t *testing.T) {
	stmt, err := parser.Parse("UPDATE User SET name = 'x'")
	require.NoError(t, err)

	upd := stmt.(*core.UpdateStmt)
	assert.Empty(t, upd.Alias)
	assert.Equal(t, "name", upd.Assignments[0].Path.String())
}

func TestParseDelete(t *testing.T) {
	stmt, err := parser.Parse("DELETE FROM User u WHERE u.active = FALSE")
	require.NoError(t, err)

	del, ok := stmt.(*core.DeleteStmt)
	require.True(t, ok)
	assert.Equal(t, "User", del.Entity)
	assert.Equal(t, "u", del.Alias)
	require.NotNil(t, del.Where)
}

func TestParseDeleteWithoutFrom(t *testing.T) {
	stmt, err := parser.Parse("DELETE User WHERE User.id = 1")
	require.NoError(t, err)

	del := stmt.(*core.DeleteStmt)
	assert.Equal(t, "User", del.Entity)
}

func TestParseInsertSelect(t *testing.T) {
	stmt, err := parser.Parse("INSERT INTO Archive (id, name) SELECT u.id, u.name FROM User u")
	require.NoError(t, err)

	ins, ok := stmt.(*core.InsertStmt)
	require.True(t, ok)
	assert.Equal(t, "Archive", ins.Entity)
	assert.Equal(t, []string{"id", "name"}, ins.Fields)
	require.NotNil(t, ins.Select)
}

// ---------- Error Tests ----------

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		hql  string
		want string
	}{
		{"empty input", "", "expected SELECT, UPDATE, DELETE, or INSERT"},
		{"missing from", "SELECT u WHERE u.id = 1", "unexpected token"},
		{"trailing tokens", "SELECT u FROM User u extra ,", "unexpected token"},
		{"incomplete where", "SELECT u FROM User u WHERE", "unexpected token"},
		{"is without null", "SELECT u FROM User u WHERE u.a IS 5", "unexpected token"},
		{"between missing and", "SELECT u FROM User u WHERE u.a BETWEEN 1 2", "unexpected token"},
		{"unterminated string", "SELECT u FROM User u WHERE u.name = 'x", "unterminated string"},
		{"bad character", "SELECT u FROM User u WHERE u.a # 1", "unexpected character"},
		{"lone colon", "SELECT u FROM User u WHERE u.a = :", "invalid parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.hql)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := parser.Parse("SELECT u\nFROM User u\nWHERE u.a = =")
	require.Error(t, err)

	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 3, parseErr.Pos.Line)
}

func TestParseDeepNesting(t *testing.T) {
	// Deeply nested parentheses hit the recursion bound instead of
	// overflowing the stack.
	hql := "SELECT u FROM User u WHERE " + strings.Repeat("(", 500) + "u.a = 1" + strings.Repeat(")", 500)
	_, err := parser.Parse(hql)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting too deep")
}

func TestValid(t *testing.T) {
	assert.True(t, parser.Valid("SELECT u FROM User u"))
	assert.False(t, parser.Valid("SELECT FROM WHERE"))
	assert.False(t, parser.Valid(""))
}
