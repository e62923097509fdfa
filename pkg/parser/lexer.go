package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/leapstack-labs/hqlbridge/pkg/token"
)

// Lexer tokenizes HQL input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	err *LexError // first lexical error encountered
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// Err returns the first lexical error encountered, or nil.
func (l *Lexer) Err() error {
	if l.err != nil {
		return l.err
	}
	return nil
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	if !l.skipWhitespaceAndComments() {
		return Token{Type: token.ILLEGAL, Literal: ErrUnterminatedComment, Pos: l.currentPos()}
	}

	pos := l.currentPos()

	var tok Token
	tok.Pos = pos

	switch l.ch {
	case 0:
		tok.Type = token.EOF
		tok.Literal = ""
	case '+':
		tok = l.newToken(token.PLUS, "+")
	case '-':
		tok = l.newToken(token.MINUS, "-")
	case '*':
		tok = l.newToken(token.STAR, "*")
	case '/':
		tok = l.newToken(token.SLASH, "/")
	case '%':
		tok = l.newToken(token.PERCENT, "%")
	case '=':
		tok = l.newToken(token.EQ, "=")
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = Token{Type: token.LE, Literal: "<=", Pos: pos}
		case '>':
			l.readChar()
			tok = Token{Type: token.NE, Literal: "<>", Pos: pos}
		default:
			tok = l.newToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: token.GE, Literal: ">=", Pos: pos}
		} else {
			tok = l.newToken(token.GT, ">")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: token.NE, Literal: "!=", Pos: pos}
		} else {
			tok = l.illegalToken(pos, fmt.Sprintf(ErrUnexpectedCharacter, l.ch))
		}
	case '.':
		tok = l.newToken(token.DOT, ".")
	case ',':
		tok = l.newToken(token.COMMA, ",")
	case '(':
		tok = l.newToken(token.LPAREN, "(")
	case ')':
		tok = l.newToken(token.RPAREN, ")")
	case ':':
		if isLetter(l.peekChar()) || l.peekChar() == '_' {
			return l.readNamedParam(pos)
		}
		tok = l.illegalToken(pos, ErrInvalidParameter)
	case '?':
		if isDigit(l.peekChar()) {
			return l.readPositionalParam(pos)
		}
		tok = l.illegalToken(pos, ErrInvalidParameter)
	case '\'':
		lit, ok := l.readString()
		if !ok {
			return l.illegalToken(pos, ErrUnterminatedString)
		}
		tok.Type = token.STRING
		tok.Literal = lit
		tok.Pos = pos
		return tok
	default:
		switch {
		case isLetter(l.ch) || l.ch == '_':
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(strings.ToLower(tok.Literal))
			tok.Pos = pos
			return tok
		case isDigit(l.ch):
			lit, isDecimal := l.readNumber()
			if isDecimal {
				tok.Type = token.DECIMAL
			} else {
				tok.Type = token.INTEGER
			}
			tok.Literal = lit
			tok.Pos = pos
			return tok
		default:
			tok = l.illegalToken(pos, fmt.Sprintf(ErrUnexpectedCharacter, l.ch))
		}
	}

	l.readChar()
	return tok
}

// newToken creates a new token.
func (l *Lexer) newToken(tokenType TokenType, literal string) Token {
	return Token{Type: tokenType, Literal: literal, Pos: l.currentPos()}
}

// illegalToken records the lexical error and returns an ILLEGAL token.
func (l *Lexer) illegalToken(pos Position, msg string) Token {
	if l.err == nil {
		l.err = &LexError{Pos: pos, Message: msg}
	}
	return Token{Type: token.ILLEGAL, Literal: msg, Pos: pos}
}

// skipWhitespaceAndComments skips whitespace, line comments (-- ...), and
// block comments (/* ... */). Returns false if a block comment is left open.
func (l *Lexer) skipWhitespaceAndComments() bool {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '-' && l.peekChar() == '-' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			pos := l.currentPos()
			l.readChar() // skip '/'
			l.readChar() // skip '*'
			closed := false
			for l.ch != 0 {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // skip '*'
					l.readChar() // skip '/'
					closed = true
					break
				}
				l.readChar()
			}
			if !closed {
				if l.err == nil {
					l.err = &LexError{Pos: pos, Message: ErrUnterminatedComment}
				}
				return false
			}
			continue
		}

		return true
	}
}

// readString reads a single-quoted string literal with the quotes stripped.
// Handles doubled single quotes as escape: 'it''s' -> it's.
// Returns false if the closing quote is missing.
func (l *Lexer) readString() (string, bool) {
	l.readChar() // skip opening quote

	var result strings.Builder
	for l.ch != 0 {
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				// Doubled quote escape
				result.WriteByte('\'')
				l.readChar() // skip first quote
				l.readChar() // skip second quote
			} else {
				l.readChar() // skip closing quote
				return result.String(), true
			}
		} else {
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
	return result.String(), false
}

// readNamedParam reads a named parameter (:name), keeping the colon.
func (l *Lexer) readNamedParam(pos Position) Token {
	l.readChar() // skip ':'
	name := l.readIdentifier()
	return Token{Type: token.PARAM, Literal: ":" + name, Pos: pos}
}

// readPositionalParam reads a positional parameter (?1), keeping the question mark.
func (l *Lexer) readPositionalParam(pos Position) Token {
	l.readChar() // skip '?'
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	return Token{Type: token.PARAM, Literal: "?" + l.input[start:l.pos], Pos: pos}
}

// readIdentifier reads an unquoted identifier.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal. The second return value is true for
// decimals (fractional or exponent part present).
func (l *Lexer) readNumber() (string, bool) {
	start := l.pos
	decimal := false

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		decimal = true
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && l.readPos+1 < len(l.input) && isDigit(l.input[l.readPos+1])) {
			decimal = true
			l.readChar() // skip 'e' or 'E'
			if l.ch == '+' || l.ch == '-' {
				l.readChar() // skip sign
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return l.input[start:l.pos], decimal
}

// isLetter returns true if ch is a letter.
func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch))
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF || tok.Type == token.ILLEGAL {
			break
		}
	}
	return tokens
}
