package lang

import "testing"

func TestStatementString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"32.5 kg m_1 s_-2", "32.5 kg m s_-2"},
		{"2 + 4 * 8 - 2 ^ 21", "((2 + (4 * 8)) - (2 ^ 21))"},
		{"hello = 2.2", "hello = 2.2"},
		{"atan2(2, 3)", "atan2(2, 3)"},
		{"now()", "now()"},
		{"-x", "((-1) * x)"},
		{"3 - -2", "(3 - (-2))"},
		{"5 km to m -> cm", "((5 km to m) to cm)"},
		{"7 // 2 % 3", "((7 // 2) % 3)"},
		{"2.0", "2.0"},
		{"2 s_0", "2 s_0"},
	}
	for _, tt := range tests {
		stmt, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.input, err)
		}
		if got := stmt.String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{
		"32.5 kg m_1 s_-2",
		"2 + 4 * 8 - 2 ^ 21",
		"(2 + 4) * 8",
		"4.52 cm ^ 2",
		"2 km_40 + 20.12 dm",
		"atan2(2, 3)",
		"hello = 2.2",
		"-2 ^ 2",
		"2 ^ -1",
		"-2.5 kg * 3",
		"x = -(3 m + 4 m) to ft",
		"f(g(1), -y) // 2 % z",
		"1 - -1",
		"0.000001 s_+3",
	}
	for _, input := range inputs {
		first, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		text := first.String()
		second, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q) of canonical form of %q: %v", text, input, err)
		}
		if second.String() != text {
			t.Errorf("round trip for %q: %q became %q", input, text, second.String())
		}
	}
}

func TestOpTypeNames(t *testing.T) {
	tests := []struct {
		op     OpType
		name   string
		symbol string
	}{
		{OpAdd, "Add", "+"},
		{OpSubtract, "Subtract", "-"},
		{OpMultiply, "Multiply", "*"},
		{OpDivide, "Divide", "/"},
		{OpPower, "Power", "^"},
		{OpFloor, "Floor", "//"},
		{OpModulo, "Modulo", "%"},
		{OpType(42), "OpType(42)", "?"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.op.Symbol(); got != tt.symbol {
			t.Errorf("%s.Symbol() = %q, want %q", tt.name, got, tt.symbol)
		}
	}
}

func TestNumberString(t *testing.T) {
	tests := []struct {
		n    Number
		want string
	}{
		{Integer(-7), "-7"},
		{Decimal(2), "2.0"},
		{Decimal(0.25), "0.25"},
		{Decimal(1e21), "1000000000000000000000.0"},
	}
	for _, tt := range tests {
		if got := tt.n.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}
