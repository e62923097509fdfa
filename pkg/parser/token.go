package parser

import "github.com/leapstack-labs/hqlbridge/pkg/token"

// TokenType is an alias for token.TokenType.
type TokenType = token.TokenType

// Token is an alias for token.Token.
type Token = token.Token

// Position is an alias for token.Position.
type Position = token.Position

// LookupIdent is re-exported from the token package.
var LookupIdent = token.LookupIdent
