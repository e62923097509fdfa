// Package token defines the token types for HQL/JPQL parsing.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT   // identifier
	INTEGER // 123
	DECIMAL // 45.67
	STRING  // 'hello'
	PARAM   // :name or ?1

	// Operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	EQ      // =
	NE      // <> or !=
	LT      // <
	GT      // >
	LE      // <=
	GE      // >=
	DOT     // .
	COMMA   // ,
	LPAREN  // (
	RPAREN  // )

	// Keywords (alphabetical)
	AND
	AS
	ASC
	BETWEEN
	BY
	CASE
	DELETE
	DESC
	DISTINCT
	ELSE
	END
	ESCAPE
	EXISTS
	FALSE
	FETCH
	FIRST
	FROM
	GROUP
	HAVING
	IN
	INNER
	INSERT
	INTO
	IS
	JOIN
	LAST
	LEFT
	LIKE
	MEMBER
	NEW
	NOT
	NULL
	NULLS
	OF
	ON
	OR
	ORDER
	OUTER
	RIGHT
	SELECT
	SET
	THEN
	TRUE
	UPDATE
	WHEN
	WHERE
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:   "IDENT",
	INTEGER: "INTEGER",
	DECIMAL: "DECIMAL",
	STRING:  "STRING",
	PARAM:   "PARAM",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	EQ:      "=",
	NE:      "<>",
	LT:      "<",
	GT:      ">",
	LE:      "<=",
	GE:      ">=",
	DOT:     ".",
	COMMA:   ",",
	LPAREN:  "(",
	RPAREN:  ")",

	AND:      "AND",
	AS:       "AS",
	ASC:      "ASC",
	BETWEEN:  "BETWEEN",
	BY:       "BY",
	CASE:     "CASE",
	DELETE:   "DELETE",
	DESC:     "DESC",
	DISTINCT: "DISTINCT",
	ELSE:     "ELSE",
	END:      "END",
	ESCAPE:   "ESCAPE",
	EXISTS:   "EXISTS",
	FALSE:    "FALSE",
	FETCH:    "FETCH",
	FIRST:    "FIRST",
	FROM:     "FROM",
	GROUP:    "GROUP",
	HAVING:   "HAVING",
	IN:       "IN",
	INNER:    "INNER",
	INSERT:   "INSERT",
	INTO:     "INTO",
	IS:       "IS",
	JOIN:     "JOIN",
	LAST:     "LAST",
	LEFT:     "LEFT",
	LIKE:     "LIKE",
	MEMBER:   "MEMBER",
	NEW:      "NEW",
	NOT:      "NOT",
	NULL:     "NULL",
	NULLS:    "NULLS",
	OF:       "OF",
	ON:       "ON",
	OR:       "OR",
	ORDER:    "ORDER",
	OUTER:    "OUTER",
	RIGHT:    "RIGHT",
	SELECT:   "SELECT",
	SET:      "SET",
	THEN:     "THEN",
	TRUE:     "TRUE",
	UPDATE:   "UPDATE",
	WHEN:     "WHEN",
	WHERE:    "WHERE",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"and":      AND,
	"as":       AS,
	"asc":      ASC,
	"between":  BETWEEN,
	"by":       BY,
	"case":     CASE,
	"delete":   DELETE,
	"desc":     DESC,
	"distinct": DISTINCT,
	"else":     ELSE,
	"end":      END,
	"escape":   ESCAPE,
	"exists":   EXISTS,
	"false":    FALSE,
	"fetch":    FETCH,
	"first":    FIRST,
	"from":     FROM,
	"group":    GROUP,
	"having":   HAVING,
	"in":       IN,
	"inner":    INNER,
	"insert":   INSERT,
	"into":     INTO,
	"is":       IS,
	"join":     JOIN,
	"last":     LAST,
	"left":     LEFT,
	"like":     LIKE,
	"member":   MEMBER,
	"new":      NEW,
	"not":      NOT,
	"null":     NULL,
	"nulls":    NULLS,
	"of":       OF,
	"on":       ON,
	"or":       OR,
	"order":    ORDER,
	"outer":    OUTER,
	"right":    RIGHT,
	"select":   SELECT,
	"set":      SET,
	"then":     THEN,
	"true":     TRUE,
	"update":   UPDATE,
	"when":     WHEN,
	"where":    WHERE,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, IDENT is returned. Keyword matching is case-insensitive;
// callers lowercase the literal before lookup.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= AND && t <= WHERE
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
