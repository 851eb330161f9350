package lang

import "strings"

// SpanKind represents the syntax category of a span of text.
type SpanKind int

const (
	SpanPlain SpanKind = iota
	SpanKeyword
	SpanNumber
	SpanComment
	SpanOperator
	SpanVariable
	SpanFunction
	SpanUnit
	SpanEquals
	SpanParen
	SpanComma
	SpanInvalid
)

var spanNames = [...]string{
	SpanPlain:    "plain",
	SpanKeyword:  "keyword",
	SpanNumber:   "number",
	SpanComment:  "comment",
	SpanOperator: "operator",
	SpanVariable: "variable",
	SpanFunction: "function",
	SpanUnit:     "unit",
	SpanEquals:   "equals",
	SpanParen:    "paren",
	SpanComma:    "comma",
	SpanInvalid:  "invalid",
}

func (k SpanKind) String() string {
	if k >= 0 && int(k) < len(spanNames) {
		return spanNames[k]
	}
	return "unknown"
}

// Span is a piece of a line with a syntax category.
type Span struct {
	Text string
	Kind SpanKind
}

func tokenSpanKind(t TokenType) SpanKind {
	switch t {
	case TOKEN_NUMBER:
		return SpanNumber
	case TOKEN_WORD:
		return SpanVariable
	case TOKEN_PLUS, TOKEN_MINUS, TOKEN_STAR, TOKEN_SLASH, TOKEN_SLASHSLASH, TOKEN_PERCENT, TOKEN_CARET:
		return SpanOperator
	case TOKEN_ARROW:
		return SpanKeyword
	case TOKEN_LPAREN, TOKEN_RPAREN:
		return SpanParen
	case TOKEN_EQUALS:
		return SpanEquals
	case TOKEN_COMMA:
		return SpanComma
	case TOKEN_UNDERSCORE:
		return SpanUnit
	case TOKEN_ILLEGAL:
		return SpanInvalid
	default:
		return SpanPlain
	}
}

// Highlight splits a line into classified spans using the lexer. The
// concatenated span texts always equal the input. Classification is
// lexical: it never fails, even on lines that do not parse.
func Highlight(line string) []Span {
	if line == "" {
		return nil
	}
	if IsCommentOrBlank(line) && strings.TrimSpace(line) != "" {
		return []Span{{Text: line, Kind: SpanComment}}
	}

	toks := Lex(line)
	var result []Span
	lastEnd := 0
	inUnits := false // inside the unit suffix of a number or conversion

	for i, lt := range toks {
		if lt.Type == TOKEN_EOF {
			break
		}

		// Add any whitespace/gap before this token
		if lt.Pos > lastEnd {
			result = append(result, Span{Text: line[lastEnd:lt.Pos], Kind: SpanPlain})
		}

		kind := tokenSpanKind(lt.Type)
		switch {
		case lt.Type == TOKEN_WORD && lt.Literal == keywordTo:
			kind = SpanKeyword
			inUnits = true
		case lt.Type == TOKEN_ARROW:
			inUnits = true
		case lt.Type == TOKEN_NUMBER:
			// Exponent digits stay part of the unit term
			if inUnits && i > 0 && (toks[i-1].Type == TOKEN_UNDERSCORE || isExponentSign(toks, i-1)) {
				kind = SpanUnit
			} else {
				inUnits = true
			}
		case lt.Type == TOKEN_WORD:
			if i+1 < len(toks) && toks[i+1].Type == TOKEN_LPAREN {
				kind = SpanFunction
				inUnits = false
			} else if inUnits {
				kind = SpanUnit
			}
		case lt.Type == TOKEN_UNDERSCORE:
			if !inUnits {
				kind = SpanInvalid
			}
		case (lt.Type == TOKEN_MINUS || lt.Type == TOKEN_PLUS) && isExponentSign(toks, i):
			kind = SpanUnit
		default:
			inUnits = false
		}

		result = append(result, Span{Text: lt.Literal, Kind: kind})
		lastEnd = lt.End()
	}

	// Any trailing text
	if lastEnd < len(line) {
		result = append(result, Span{Text: line[lastEnd:], Kind: SpanPlain})
	}

	return result
}

// isExponentSign reports whether toks[i] is the sign inside a unit
// exponent such as s_-2.
func isExponentSign(toks []Token, i int) bool {
	if i <= 0 || i >= len(toks) {
		return false
	}
	t := toks[i]
	if t.Type != TOKEN_MINUS && t.Type != TOKEN_PLUS {
		return false
	}
	prev := toks[i-1]
	return prev.Type == TOKEN_UNDERSCORE && prev.End() == t.Pos
}
