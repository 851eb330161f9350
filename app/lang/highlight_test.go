package lang

import (
	"strings"
	"testing"
)

func kinds(spans []Span) []SpanKind {
	var out []SpanKind
	for _, s := range spans {
		if s.Kind == SpanPlain && strings.TrimSpace(s.Text) == "" {
			continue
		}
		out = append(out, s.Kind)
	}
	return out
}

func TestHighlightKinds(t *testing.T) {
	tests := []struct {
		input string
		want  []SpanKind
	}{
		{"32.5 kg m_1 s_-2", []SpanKind{
			SpanNumber, SpanUnit, SpanUnit, SpanUnit, SpanUnit,
			SpanUnit, SpanUnit, SpanUnit, SpanUnit,
		}},
		{"x = f(2) to km", []SpanKind{
			SpanVariable, SpanEquals, SpanFunction, SpanParen, SpanNumber, SpanParen,
			SpanKeyword, SpanUnit,
		}},
		{"a * 3 -> m", []SpanKind{SpanVariable, SpanOperator, SpanNumber, SpanKeyword, SpanUnit}},
		{"2 + y", []SpanKind{SpanNumber, SpanOperator, SpanVariable}},
		{"2 $", []SpanKind{SpanNumber, SpanInvalid}},
		{"; a comment", []SpanKind{SpanComment}},
		{"max(1, 2)", []SpanKind{SpanFunction, SpanParen, SpanNumber, SpanComma, SpanNumber, SpanParen}},
	}
	for _, tt := range tests {
		got := kinds(Highlight(tt.input))
		if len(got) != len(tt.want) {
			t.Errorf("Highlight(%q): got %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Highlight(%q)[%d]: got %s, want %s", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestHighlightCoversInput(t *testing.T) {
	inputs := []string{
		"32.5 kg m_1 s_-2",
		"  x = (2 +  4)\t* 8  ",
		"2 km_ 2 $$ µs",
		"// only a comment",
		"1.2.3 ->",
	}
	for _, input := range inputs {
		var sb strings.Builder
		for _, s := range Highlight(input) {
			sb.WriteString(s.Text)
		}
		if sb.String() != input {
			t.Errorf("spans of %q joined to %q", input, sb.String())
		}
	}
}

func TestHighlightEmpty(t *testing.T) {
	if spans := Highlight(""); spans != nil {
		t.Errorf("got %v, want nil", spans)
	}
}

func TestSpanKindString(t *testing.T) {
	if SpanUnit.String() != "unit" || SpanKind(99).String() != "unknown" {
		t.Error("unexpected span kind names")
	}
}
