package lang

import "fmt"

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TOKEN_NUMBER TokenType = iota
	TOKEN_WORD
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_SLASHSLASH
	TOKEN_PERCENT
	TOKEN_CARET
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_EQUALS
	TOKEN_COMMA
	TOKEN_UNDERSCORE
	TOKEN_ARROW
	TOKEN_ILLEGAL
	TOKEN_EOF
)

var tokenNames = [...]string{
	TOKEN_NUMBER:     "number",
	TOKEN_WORD:       "identifier",
	TOKEN_PLUS:       "'+'",
	TOKEN_MINUS:      "'-'",
	TOKEN_STAR:       "'*'",
	TOKEN_SLASH:      "'/'",
	TOKEN_SLASHSLASH: "'//'",
	TOKEN_PERCENT:    "'%'",
	TOKEN_CARET:      "'^'",
	TOKEN_LPAREN:     "'('",
	TOKEN_RPAREN:     "')'",
	TOKEN_EQUALS:     "'='",
	TOKEN_COMMA:      "','",
	TOKEN_UNDERSCORE: "'_'",
	TOKEN_ARROW:      "'->'",
	TOKEN_ILLEGAL:    "invalid input",
	TOKEN_EOF:        "end of input",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywordTo is the reserved conversion word.
const keywordTo = "to"

// Token represents a single lexer token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int // byte offset in the input
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Pos + len(t.Literal)
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q, %d)", t.Type, t.Literal, t.Pos)
}

// describe renders the token the way error messages refer to it.
func (t Token) describe() string {
	switch t.Type {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_ILLEGAL:
		return fmt.Sprintf("invalid input %q", t.Literal)
	default:
		return fmt.Sprintf("%q", t.Literal)
	}
}
