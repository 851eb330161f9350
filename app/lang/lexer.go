package lang

import (
	"unicode"
	"unicode/utf8"
)

// Lex tokenizes a single line of input into a slice of tokens.
// The slice always ends with a TOKEN_EOF token. Characters that do not
// start any token, and malformed numbers, become TOKEN_ILLEGAL tokens so
// the parser can report them at their position.
func Lex(input string) []Token {
	var tokens []Token
	i := 0
	for i < len(input) {
		ch := input[i]

		// Skip whitespace
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			i++
			continue
		}

		switch ch {
		case '+':
			tokens = append(tokens, Token{Type: TOKEN_PLUS, Literal: "+", Pos: i})
			i++
		case '-':
			if i+1 < len(input) && input[i+1] == '>' {
				tokens = append(tokens, Token{Type: TOKEN_ARROW, Literal: "->", Pos: i})
				i += 2
			} else {
				tokens = append(tokens, Token{Type: TOKEN_MINUS, Literal: "-", Pos: i})
				i++
			}
		case '*':
			tokens = append(tokens, Token{Type: TOKEN_STAR, Literal: "*", Pos: i})
			i++
		case '/':
			if i+1 < len(input) && input[i+1] == '/' {
				tokens = append(tokens, Token{Type: TOKEN_SLASHSLASH, Literal: "//", Pos: i})
				i += 2
			} else {
				tokens = append(tokens, Token{Type: TOKEN_SLASH, Literal: "/", Pos: i})
				i++
			}
		case '%':
			tokens = append(tokens, Token{Type: TOKEN_PERCENT, Literal: "%", Pos: i})
			i++
		case '^':
			tokens = append(tokens, Token{Type: TOKEN_CARET, Literal: "^", Pos: i})
			i++
		case '(':
			tokens = append(tokens, Token{Type: TOKEN_LPAREN, Literal: "(", Pos: i})
			i++
		case ')':
			tokens = append(tokens, Token{Type: TOKEN_RPAREN, Literal: ")", Pos: i})
			i++
		case '=':
			tokens = append(tokens, Token{Type: TOKEN_EQUALS, Literal: "=", Pos: i})
			i++
		case ',':
			tokens = append(tokens, Token{Type: TOKEN_COMMA, Literal: ",", Pos: i})
			i++
		case '_':
			tokens = append(tokens, Token{Type: TOKEN_UNDERSCORE, Literal: "_", Pos: i})
			i++
		case '.':
			// A leading separator is never valid; swallow the digits after
			// it so the whole malformed literal is reported at once.
			start := i
			i++
			for i < len(input) && isDigit(input[i]) {
				i++
			}
			tokens = append(tokens, Token{Type: TOKEN_ILLEGAL, Literal: input[start:i], Pos: start})
		default:
			if isDigit(ch) {
				start := i
				end, ok := lexNumber(input, i)
				i = end
				typ := TOKEN_NUMBER
				if !ok {
					typ = TOKEN_ILLEGAL
				}
				tokens = append(tokens, Token{Type: typ, Literal: input[start:end], Pos: start})
				continue
			}
			r, size := utf8.DecodeRuneInString(input[i:])
			if isWordStart(r) {
				start := i
				i += size
				for i < len(input) {
					r, size = utf8.DecodeRuneInString(input[i:])
					if !isWordContinue(r) {
						break
					}
					i += size
				}
				tokens = append(tokens, Token{Type: TOKEN_WORD, Literal: input[start:i], Pos: start})
			} else {
				tokens = append(tokens, Token{Type: TOKEN_ILLEGAL, Literal: input[i : i+size], Pos: i})
				i += size
			}
		}
	}
	tokens = append(tokens, Token{Type: TOKEN_EOF, Literal: "", Pos: i})
	return tokens
}

// lexNumber scans DIGITS ("." DIGITS)? starting at pos and returns the end
// offset. ok is false when the literal has a dangling or repeated
// fractional separator; the returned end then covers the whole bad run.
func lexNumber(input string, pos int) (end int, ok bool) {
	i := pos
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	if i >= len(input) || input[i] != '.' {
		return i, true
	}
	i++ // past '.'
	if i >= len(input) || !isDigit(input[i]) {
		return i, false
	}
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	if i < len(input) && input[i] == '.' {
		for i < len(input) && (isDigit(input[i]) || input[i] == '.') {
			i++
		}
		return i, false
	}
	return i, true
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWordStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isWordContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
