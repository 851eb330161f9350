package lang

import (
	"math"
	"strconv"
	"strings"
)

var opNames = [...]string{
	OpAdd:      "Add",
	OpSubtract: "Subtract",
	OpMultiply: "Multiply",
	OpDivide:   "Divide",
	OpPower:    "Power",
	OpFloor:    "Floor",
	OpModulo:   "Modulo",
}

var opSymbols = [...]string{
	OpAdd:      "+",
	OpSubtract: "-",
	OpMultiply: "*",
	OpDivide:   "/",
	OpPower:    "^",
	OpFloor:    "//",
	OpModulo:   "%",
}

func (op OpType) String() string {
	if op >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}
	return "OpType(" + strconv.Itoa(int(op)) + ")"
}

// Symbol returns the surface token for the operator.
func (op OpType) Symbol() string {
	if op >= 0 && int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return "?"
}

func (n Integer) String() string {
	return strconv.FormatInt(int64(n), 10)
}

// String always includes a fractional separator so the text re-parses
// as a Decimal.
func (n Decimal) String() string {
	s := strconv.FormatFloat(float64(n), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (u Unit) String() string {
	if u.Exponent == 1 {
		return u.Symbol
	}
	return u.Symbol + "_" + strconv.FormatInt(u.Exponent, 10)
}

func (s *ExpressionStatement) String() string {
	return s.Expr.String()
}

func (s *Assignment) String() string {
	return s.Name + " = " + s.Value.String()
}

func (c *Constant) String() string {
	var sb strings.Builder
	sb.WriteString(c.Value.String())
	for _, u := range c.Units {
		sb.WriteByte(' ')
		sb.WriteString(u.String())
	}
	return sb.String()
}

func (v *Variable) String() string {
	return v.Name
}

func (f *Function) String() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, arg := range f.Arguments {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (o *Operation) String() string {
	return "(" + operand(o.LHS) + " " + o.Op.Symbol() + " " + operand(o.RHS) + ")"
}

func (c *Conversion) String() string {
	return "(" + operand(c.Value) + " " + keywordTo + " " + c.Target.String() + ")"
}

// operand parenthesizes negative constants so a leading minus re-parses
// as part of the literal rather than as negation of the whole operation.
func operand(e Expression) string {
	if c, ok := e.(*Constant); ok && isNegative(c.Value) {
		return "(" + c.String() + ")"
	}
	return e.String()
}

func isNegative(n Number) bool {
	switch v := n.(type) {
	case Integer:
		return v < 0
	case Decimal:
		return math.Signbit(float64(v))
	}
	return false
}
