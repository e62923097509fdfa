package parser

import "fmt"

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken      = "unexpected token %s, expected %s"
	ErrUnexpectedTokenExpr  = "unexpected token %s in expression"
	ErrUnterminatedString   = "unterminated string literal"
	ErrUnterminatedComment  = "unterminated block comment"
	ErrUnexpectedCharacter  = "unexpected character %q"
	ErrInvalidParameter     = "invalid parameter marker"
	ErrNestingTooDeep       = "expression nesting too deep"
	ErrTrailingInput        = "unexpected token %s after statement"
	ErrExpectedStatement    = "expected SELECT, UPDATE, DELETE, or INSERT, got %s"
	ErrExpectedEscapeString = "expected string literal after ESCAPE"
)
