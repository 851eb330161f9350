package lang

// Statement is the top-level result of parsing one line.
type Statement interface {
	stmtTag()
	String() string
}

// Expression is the interface all expression nodes implement.
// Every node exclusively owns its children.
type Expression interface {
	exprTag()
	String() string
}

// Number is a numeric literal value: Integer or Decimal.
type Number interface {
	numberTag()
	String() string
}

// Integer is a literal written without a fractional separator.
type Integer int64

// Decimal is a literal written with a fractional separator.
type Decimal float64

// Unit is a unit symbol raised to an exponent, e.g. s_-2.
type Unit struct {
	Symbol   string
	Exponent int64
}

// OpType discriminates binary operations.
type OpType int

const (
	OpAdd OpType = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
	OpFloor
	OpModulo
)

// ExpressionStatement is a line that is a bare expression.
type ExpressionStatement struct {
	Expr Expression
}

// Assignment represents name = expression.
type Assignment struct {
	Name  string
	Value Expression
}

// Constant is a numeric literal with its optional unit suffix.
// Units is nil when no suffix was written; the parser never produces
// an empty non-nil slice.
type Constant struct {
	Value Number
	Units []Unit
}

// Variable represents a variable reference.
type Variable struct {
	Name string
}

// Function represents a call like atan2(2, 3).
type Function struct {
	Name      string
	Arguments []Expression
}

// Operation represents a binary operation.
type Operation struct {
	Op  OpType
	LHS Expression
	RHS Expression
}

// Conversion represents value to target.
type Conversion struct {
	Target Unit
	Value  Expression
}

func (Integer) numberTag() {}
func (Decimal) numberTag() {}

func (*ExpressionStatement) stmtTag() {}
func (*Assignment) stmtTag()          {}

func (*Constant) exprTag()   {}
func (*Variable) exprTag()   {}
func (*Function) exprTag()   {}
func (*Operation) exprTag()  {}
func (*Conversion) exprTag() {}
