package lang

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultMaxInputLength is the input size limit used when Options leaves
	// it unset. Zero means no limit.
	DefaultMaxInputLength = 0
	// DefaultMaxDepth is the nesting limit used when Options leaves it unset.
	DefaultMaxDepth = 10000
)

// Options configures parser limits.
type Options struct {
	MaxInputLength int // bytes, 0 for no limit
	MaxDepth       int // nested parens, calls, negations and exponents
}

// Parser parses source lines into statements. A Parser holds no state
// between calls and is safe for concurrent use.
type Parser struct {
	options Options
}

// NewParser creates a parser, filling unset options with defaults.
func NewParser(opts Options) *Parser {
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Parser{options: opts}
}

// Options returns the effective options.
func (p *Parser) Options() Options {
	return p.options
}

var defaultParser = NewParser(Options{})

// Parse parses a single statement with default options.
// On failure the error is a *ParseError and no statement is returned.
func Parse(source string) (Statement, error) {
	return defaultParser.Parse(source)
}

// Parse parses a single statement.
//
//	statement  := IDENT "=" expression | expression
//	expression := additive (("to" | "->") unit)*
//	additive   := multiplicative (("+" | "-") multiplicative)*
//	multiplicative := signed (("*" | "/" | "//" | "%") signed)*
//	signed     := "-" signed | power
//	power      := primary ("^" signed)?
//	primary    := "(" expression ")" | IDENT "(" args ")" | NUMBER unit* | IDENT
//	unit       := IDENT ("_" ["+" | "-"] DIGITS)?
func (p *Parser) Parse(source string) (Statement, error) {
	if p.options.MaxInputLength > 0 && len(source) > p.options.MaxInputLength {
		err := newParseError(source, p.options.MaxInputLength)
		err.Msg = fmt.Sprintf("input exceeds maximum length of %d bytes", p.options.MaxInputLength)
		return nil, err
	}
	st := &parser{
		input:    source,
		tokens:   Lex(source),
		maxDepth: p.options.MaxDepth,
	}
	return st.parseStatement()
}

// parser holds the state for parsing one token stream.
type parser struct {
	input    string
	tokens   []Token
	pos      int
	depth    int
	maxDepth int
}

func (p *parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TOKEN_EOF, Pos: len(p.input)}
	}
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		return Token{Type: TOKEN_EOF, Pos: len(p.input)}
	}
	return p.tokens[p.pos+offset]
}

func (p *parser) advance() Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *parser) errorf(pos int, format string, args ...any) *ParseError {
	err := newParseError(p.input, pos)
	err.Msg = fmt.Sprintf(format, args...)
	return err
}

// unexpected reports tok where the grammar wanted something else.
func (p *parser) unexpected(tok Token, expected string) *ParseError {
	if tok.Type == TOKEN_ILLEGAL {
		if isDigit(tok.Literal[0]) || tok.Literal[0] == '.' {
			return p.errorf(tok.Pos, "malformed number %q", tok.Literal)
		}
		return p.errorf(tok.Pos, "invalid character %q", tok.Literal)
	}
	err := newParseError(p.input, tok.Pos)
	err.Expected = expected
	err.Found = tok.describe()
	return err
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorf(p.peek().Pos, "expression nested too deeply (limit %d)", p.maxDepth)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) parseStatement() (Statement, error) {
	first := p.peek()
	var stmt Statement

	if first.Type == TOKEN_WORD && p.peekAt(1).Type == TOKEN_EQUALS {
		if first.Literal == keywordTo {
			return nil, p.errorf(first.Pos, "%q is a reserved word and cannot be assigned", keywordTo)
		}
		p.advance() // consume name
		p.advance() // consume '='
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt = &Assignment{Name: first.Literal, Value: value}
	} else {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt = &ExpressionStatement{Expr: expr}
	}

	// Make sure we consumed everything
	if tok := p.peek(); tok.Type != TOKEN_EOF {
		return nil, p.unexpected(tok, "operator or end of input")
	}
	return stmt, nil
}

func (p *parser) isConversion() bool {
	tok := p.peek()
	return tok.Type == TOKEN_ARROW || (tok.Type == TOKEN_WORD && tok.Literal == keywordTo)
}

// parseExpression: additive (("to" | "->") unit)*
func (p *parser) parseExpression() (Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	expr, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for p.isConversion() {
		p.advance() // consume "to" or "->"
		if tok := p.peek(); tok.Type != TOKEN_WORD || tok.Literal == keywordTo {
			return nil, p.unexpected(tok, "unit")
		}
		target, err := p.parseUnitTerm()
		if err != nil {
			return nil, err
		}
		if tok := p.peek(); tok.Type == TOKEN_WORD && tok.Literal != keywordTo {
			return nil, p.errorf(tok.Pos, "conversion target must be a single unit, found extra unit %q", tok.Literal)
		}
		expr = &Conversion{Target: target, Value: expr}
	}

	return expr, nil
}

// parseAdditive: multiplicative ( ("+" | "-") multiplicative )*
func (p *parser) parseAdditive() (Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		var op OpType
		switch p.peek().Type {
		case TOKEN_PLUS:
			op = OpAdd
		case TOKEN_MINUS:
			op = OpSubtract
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &Operation{Op: op, LHS: left, RHS: right}
	}
}

// parseMultiplicative: signed ( ("*" | "/" | "//" | "%") signed )*
func (p *parser) parseMultiplicative() (Expression, error) {
	left, err := p.parseSigned()
	if err != nil {
		return nil, err
	}

	for {
		var op OpType
		switch p.peek().Type {
		case TOKEN_STAR:
			op = OpMultiply
		case TOKEN_SLASH:
			op = OpDivide
		case TOKEN_SLASHSLASH:
			op = OpFloor
		case TOKEN_PERCENT:
			op = OpModulo
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseSigned()
		if err != nil {
			return nil, err
		}
		left = &Operation{Op: op, LHS: left, RHS: right}
	}
}

// parseSigned: "-" signed | power
func (p *parser) parseSigned() (Expression, error) {
	if p.peek().Type != TOKEN_MINUS {
		return p.parsePower()
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.advance() // consume '-'
	if c := p.negativeConstant(); c != nil {
		return c, nil
	}
	operand, err := p.parseSigned()
	if err != nil {
		return nil, err
	}
	return negate(operand), nil
}

// negativeConstant parses a literal right after '-' with the sign applied
// to its digits, so the int64 minimum can be written. It rewinds and
// returns nil when the literal is the base of a power or fails on its own.
func (p *parser) negativeConstant() Expression {
	if p.peek().Type != TOKEN_NUMBER {
		return nil
	}
	save := p.pos
	c, err := p.parseConstant("-")
	if err != nil || p.peek().Type == TOKEN_CARET {
		p.pos = save
		return nil
	}
	return c
}

// negate folds the sign into a literal; any other operand is scaled by -1
// so units are left untouched.
func negate(e Expression) Expression {
	if c, ok := e.(*Constant); ok {
		switch v := c.Value.(type) {
		case Integer:
			if v != math.MinInt64 {
				c.Value = -v
				return c
			}
		case Decimal:
			c.Value = -v
			return c
		}
	}
	return &Operation{Op: OpMultiply, LHS: &Constant{Value: Integer(-1)}, RHS: e}
}

// parsePower: primary ("^" signed)?
// The exponent recurses through signed, so ^ is right-associative.
func (p *parser) parsePower() (Expression, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TOKEN_CARET {
		return base, nil
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.advance() // consume '^'
	exponent, err := p.parseSigned()
	if err != nil {
		return nil, err
	}
	return &Operation{Op: OpPower, LHS: base, RHS: exponent}, nil
}

// parsePrimary: number | call | varname | "(" expression ")"
func (p *parser) parsePrimary() (Expression, error) {
	tok := p.peek()

	switch tok.Type {
	case TOKEN_NUMBER:
		return p.parseConstant("")

	case TOKEN_LPAREN:
		p.advance() // consume '('
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if next := p.peek(); next.Type != TOKEN_RPAREN {
			return nil, p.unexpected(next, "')'")
		}
		p.advance() // consume ')'
		return expr, nil

	case TOKEN_WORD:
		if tok.Literal == keywordTo {
			return nil, p.unexpected(tok, "expression")
		}
		// A word followed by '(' is always a call
		if p.peekAt(1).Type == TOKEN_LPAREN {
			return p.parseFunction()
		}
		p.advance()
		return &Variable{Name: tok.Literal}, nil

	default:
		return nil, p.unexpected(tok, "expression")
	}
}

// parseFunction: WORD "(" [expression ("," expression)*] ")"
func (p *parser) parseFunction() (Expression, error) {
	name := p.advance().Literal // consume function name
	p.advance()                 // consume '('

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	fn := &Function{Name: name, Arguments: []Expression{}}
	if p.peek().Type != TOKEN_RPAREN {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			fn.Arguments = append(fn.Arguments, arg)
			if p.peek().Type != TOKEN_COMMA {
				break
			}
			p.advance() // consume ','
		}
	}

	if tok := p.peek(); tok.Type != TOKEN_RPAREN {
		return nil, p.unexpected(tok, "',' or ')'")
	}
	p.advance() // consume ')'
	return fn, nil
}

// parseConstant: NUMBER unit*
// sign is "" or "-" and is prepended to the digits before conversion.
func (p *parser) parseConstant(sign string) (Expression, error) {
	numTok := p.advance()
	value, err := p.parseNumber(numTok, sign)
	if err != nil {
		return nil, err
	}
	units, err := p.parseUnitSuffix(numTok)
	if err != nil {
		return nil, err
	}
	return &Constant{Value: value, Units: units}, nil
}

func (p *parser) parseNumber(tok Token, sign string) (Number, error) {
	lit := sign + tok.Literal
	if strings.Contains(lit, ".") {
		// Overflow to ±Inf is rejected; underflow rounds to zero
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, p.errorf(tok.Pos, "decimal literal %q out of range", lit)
		}
		return Decimal(f), nil
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return nil, p.errorf(tok.Pos, "integer literal %q out of range", lit)
	}
	return Integer(n), nil
}

// parseUnitSuffix collects the whitespace-separated unit terms following
// a number. It returns nil when there are none.
func (p *parser) parseUnitSuffix(numTok Token) ([]Unit, error) {
	var units []Unit
	lastEnd := numTok.End()
	for {
		tok := p.peek()
		if tok.Type != TOKEN_WORD || tok.Literal == keywordTo {
			return units, nil
		}
		if tok.Pos == lastEnd {
			return nil, p.errorf(tok.Pos, "unit %q must be separated from the preceding token by whitespace", tok.Literal)
		}
		u, err := p.parseUnitTerm()
		if err != nil {
			return nil, err
		}
		units = append(units, u)
		lastEnd = p.tokens[p.pos-1].End()
	}
}

// parseUnitTerm: WORD ("_" ["+" | "-"] DIGITS)?
// The underscore, sign and digits must be contiguous with the symbol.
func (p *parser) parseUnitTerm() (Unit, error) {
	sym := p.advance()
	u := Unit{Symbol: sym.Literal, Exponent: 1}

	if under := p.peek(); under.Type != TOKEN_UNDERSCORE || under.Pos != sym.End() {
		return u, nil
	}
	start := p.advance().End()

	negative := false
	if sign := p.peek(); (sign.Type == TOKEN_MINUS || sign.Type == TOKEN_PLUS) && sign.Pos == start {
		negative = sign.Type == TOKEN_MINUS
		start = p.advance().End()
	}

	digits := p.peek()
	if digits.Pos != start {
		err := newParseError(p.input, start)
		err.Expected = "integer exponent"
		err.Found = "whitespace"
		return Unit{}, err
	}
	if digits.Type != TOKEN_NUMBER {
		return Unit{}, p.unexpected(digits, "integer exponent")
	}
	if strings.Contains(digits.Literal, ".") {
		return Unit{}, p.errorf(digits.Pos, "unit exponent %q must be an integer", digits.Literal)
	}
	p.advance()

	lit := digits.Literal
	if negative {
		lit = "-" + lit
	}
	exp, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return Unit{}, p.errorf(digits.Pos, "unit exponent %q out of range", lit)
	}
	u.Exponent = exp
	return u, nil
}
