package lang

import (
	"reflect"
	"testing"
)

func TestIncrementalBasicCaching(t *testing.T) {
	ps := &ParseState{}

	lines := []string{"x = 10 m", "x + 5 m"}
	results := ps.ParseAllIncremental(lines)

	if results[0].Stmt.String() != "x = 10 m" {
		t.Errorf("line 0: got %q", results[0].Stmt)
	}
	if results[1].Stmt.String() != "(x + 5 m)" {
		t.Errorf("line 1: got %q", results[1].Stmt)
	}
	for i, r := range results {
		if r.Cached {
			t.Errorf("line %d: first pass should not be cached", i)
		}
	}

	// Same lines again, everything comes from the cache
	results2 := ps.ParseAllIncremental(lines)
	for i, r := range results2 {
		if !r.Cached {
			t.Errorf("line %d: expected cached result", i)
		}
		if r.Stmt != results[i].Stmt {
			t.Errorf("line %d: cached statement should be the same value", i)
		}
	}
}

func TestIncrementalChangedLine(t *testing.T) {
	ps := &ParseState{}
	ps.ParseAllIncremental([]string{"x = 10", "x + 5"})

	results := ps.ParseAllIncremental([]string{"x = 20", "x + 5"})
	if results[0].Cached {
		t.Error("line 0 changed and should be re-parsed")
	}
	if results[0].Stmt.String() != "x = 20" {
		t.Errorf("line 0: got %q, want x = 20", results[0].Stmt)
	}
	if !results[1].Cached {
		t.Error("line 1 is unchanged and should come from the cache")
	}
}

func TestIncrementalLineCountChangeResets(t *testing.T) {
	ps := &ParseState{}
	ps.ParseAllIncremental([]string{"1", "2"})

	results := ps.ParseAllIncremental([]string{"1", "2", "3"})
	for i, r := range results {
		if r.Cached {
			t.Errorf("line %d: cache should reset when the line count changes", i)
		}
	}
	if len(ps.Lines) != 3 {
		t.Errorf("got %d cached lines, want 3", len(ps.Lines))
	}
}

func TestIncrementalErrorsAndBlanks(t *testing.T) {
	ps := &ParseState{}
	lines := []string{"; notes", "", "2 +", "// more", "3 kg"}
	results := ps.ParseAllIncremental(lines)

	for _, i := range []int{0, 1, 3} {
		if !results[i].IsEmpty {
			t.Errorf("line %d: expected empty", i)
		}
		if results[i].Stmt != nil || results[i].Err != nil {
			t.Errorf("line %d: empty line should have no statement or error", i)
		}
	}
	if results[2].Err == nil {
		t.Error("line 2: expected parse error")
	}
	if results[4].Err != nil {
		t.Errorf("line 4: unexpected error %v", results[4].Err)
	}
	if n := Errors(results); n != 1 {
		t.Errorf("got %d errors, want 1", n)
	}

	// Cached errors are returned again
	results2 := ps.ParseAllIncremental(lines)
	if results2[2].Err == nil || !results2[2].Cached {
		t.Error("line 2: expected cached parse error")
	}
}

func TestIncrementalUsesParserOptions(t *testing.T) {
	ps := &ParseState{Parser: NewParser(Options{MaxDepth: 2})}
	results := ps.ParseAllIncremental([]string{"((((1))))", "1"})
	if results[0].Err == nil {
		t.Error("line 0: expected depth error")
	}
	if results[1].Err != nil {
		t.Errorf("line 1: unexpected error %v", results[1].Err)
	}
}

func TestCollectDeps(t *testing.T) {
	tests := []struct {
		input string
		want  DepsInfo
	}{
		{
			input: "speed = dist / t to km",
			want:  DepsInfo{Vars: []string{"dist", "t"}, Units: []string{"km"}, Assigns: "speed"},
		},
		{
			input: "atan2(y, x) + y",
			want:  DepsInfo{Vars: []string{"y", "x"}, Funcs: []string{"atan2"}},
		},
		{
			input: "32.5 kg m_1 s_-2 * 2 kg",
			want:  DepsInfo{Units: []string{"kg", "m", "s"}},
		},
		{
			input: "42",
			want:  DepsInfo{},
		},
	}
	for _, tt := range tests {
		stmt, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.input, err)
		}
		got := CollectDeps(stmt)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("CollectDeps(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestIsCommentOrBlank(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", true},
		{"   \t", true},
		{"; comment", true},
		{"  // comment", true},
		{"2 / 3", false},
		{"x = 1 ; trailing", false},
	}
	for _, tt := range tests {
		if got := IsCommentOrBlank(tt.line); got != tt.want {
			t.Errorf("IsCommentOrBlank(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
