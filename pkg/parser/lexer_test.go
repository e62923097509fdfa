package parser_test

import (
	"testing"

	"github.com/leapstack-labs/hqlbridge/pkg/parser"
	"github.com/leapstack-labs/hqlbridge/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerBasicTokens(t *testing.T) {
	tokens := parser.Tokenize("SELECT u.name FROM User u WHERE u.age >= 21")

	types := make([]token.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}

	assert.Equal(t, []token.TokenType{
		token.SELECT,
		token.IDENT, token.DOT, token.IDENT,
		token.FROM, token.IDENT, token.IDENT,
		token.WHERE,
		token.IDENT, token.DOT, token.IDENT,
		token.GE, token.INTEGER,
		token.EOF,
	}, types)
}

func TestLexerKeywordsCaseInsensitive(t *testing.T) {
	tokens := parser.Tokenize("select From WHERE oRdEr")
	require.Len(t, tokens, 5)
	assert.Equal(t, token.SELECT, tokens[0].Type)
	assert.Equal(t, token.FROM, tokens[1].Type)
	assert.Equal(t, token.WHERE, tokens[2].Type)
	assert.Equal(t, token.ORDER, tokens[3].Type)
	// Original spelling is preserved in the literal
	assert.Equal(t, "oRdEr", tokens[3].Literal)
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType token.TokenType
		wantLit  string
	}{
		{"integer", "42", token.INTEGER, "42"},
		{"decimal", "3.14", token.DECIMAL, "3.14"},
		{"exponent", "1e10", token.DECIMAL, "1e10"},
		{"exponent with sign", "2.5E-3", token.DECIMAL, "2.5E-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := parser.Tokenize(tt.input)
			require.NotEmpty(t, tokens)
			assert.Equal(t, tt.wantType, tokens[0].Type)
			assert.Equal(t, tt.wantLit, tokens[0].Literal)
		})
	}
}

func TestLexerStrings(t *testing.T) {
	tokens := parser.Tokenize("'hello'")
	require.NotEmpty(t, tokens)
	assert.Equal(t, token.STRING, tokens[0].Type)
	assert.Equal(t, "hello", tokens[0].Literal)

	// Doubled single quote escape
	tokens = parser.Tokenize("'it''s'")
	require.NotEmpty(t, tokens)
	assert.Equal(t, token.STRING, tokens[0].Type)
	assert.Equal(t, "it's", tokens[0].Literal)
}

func TestLexerParameters(t *testing.T) {
	tokens := parser.Tokenize(":minAge ?1")
	require.Len(t, tokens, 3)
	assert.Equal(t, token.PARAM, tokens[0].Type)
	assert.Equal(t, ":minAge", tokens[0].Literal)
	assert.Equal(t, token.PARAM, tokens[1].Type)
	assert.Equal(t, "?1", tokens[1].Literal)
}

func TestLexerOperators(t *testing.T) {
	tokens := parser.Tokenize("= <> != < <= > >= + - * / %")
	types := make([]token.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []token.TokenType{
		token.EQ, token.NE, token.NE, token.LT, token.LE, token.GT, token.GE,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EOF,
	}, types)
}

func TestLexerComments(t *testing.T) {
	tokens := parser.Tokenize("SELECT -- line comment\n u /* block\ncomment */ FROM")
	types := make([]token.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []token.TokenType{token.SELECT, token.IDENT, token.FROM, token.EOF}, types)
}

func TestLexerUnterminatedString(t *testing.T) {
	l := parser.NewLexer("'unterminated")
	tok := l.NextToken()
	assert.Equal(t, token.ILLEGAL, tok.Type)
	require.Error(t, l.Err())
	assert.Contains(t, l.Err().Error(), "unterminated string")
}

func TestLexerUnterminatedBlockComment(t *testing.T) {
	l := parser.NewLexer("/* never closed")
	tok := l.NextToken()
	assert.Equal(t, token.ILLEGAL, tok.Type)
	require.Error(t, l.Err())
	assert.Contains(t, l.Err().Error(), "unterminated block comment")
}

func TestLexerPositions(t *testing.T) {
	tokens := parser.Tokenize("SELECT\n  u")
	require.Len(t, tokens, 3)
	assert.Equal(t, 1, tokens[0].Pos.Line)
	assert.Equal(t, 1, tokens[0].Pos.Column)
	assert.Equal(t, 2, tokens[1].Pos.Line)
	assert.Equal(t, 3, tokens[1].Pos.Column)
}
