package lang

import "strings"

// DepsInfo holds dependency information extracted from a statement.
type DepsInfo struct {
	Vars    []string // variable names referenced, in source order
	Funcs   []string // function names called
	Units   []string // unit symbols used in literals and conversions
	Assigns string   // non-empty if this is an assignment
}

// CachedLine holds the cached state for a single line.
type CachedLine struct {
	Text    string
	Stmt    Statement
	Err     error
	Deps    DepsInfo
	IsEmpty bool // line was blank or comment
}

// LineResult is the result of parsing a single line of a document.
type LineResult struct {
	Stmt    Statement
	Err     error
	Deps    DepsInfo
	IsEmpty bool
	Cached  bool // result was reused from the previous pass
}

// ParseState holds the incremental parse cache for a document.
// It is not safe for concurrent use.
type ParseState struct {
	Parser *Parser // nil means default options
	Lines  []CachedLine
}

// CollectDeps walks a statement to collect dependency info.
func CollectDeps(stmt Statement) DepsInfo {
	var info DepsInfo
	switch s := stmt.(type) {
	case *Assignment:
		info.Assigns = s.Name
		collectDepsWalk(s.Value, &info)
	case *ExpressionStatement:
		collectDepsWalk(s.Expr, &info)
	}
	return info
}

func collectDepsWalk(node Expression, info *DepsInfo) {
	if node == nil {
		return
	}
	switch n := node.(type) {
	case *Variable:
		info.Vars = appendUnique(info.Vars, n.Name)
	case *Operation:
		collectDepsWalk(n.LHS, info)
		collectDepsWalk(n.RHS, info)
	case *Function:
		info.Funcs = appendUnique(info.Funcs, n.Name)
		for _, arg := range n.Arguments {
			collectDepsWalk(arg, info)
		}
	case *Conversion:
		collectDepsWalk(n.Value, info)
		info.Units = appendUnique(info.Units, n.Target.Symbol)
	case *Constant:
		for _, u := range n.Units {
			info.Units = appendUnique(info.Units, u.Symbol)
		}
	}
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

// IsCommentOrBlank reports whether a line carries no statement.
func IsCommentOrBlank(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "//")
}

// ParseAllIncremental parses lines, reusing cached results for lines whose
// text is unchanged since the previous call.
func (ps *ParseState) ParseAllIncremental(lines []string) []LineResult {
	results := make([]LineResult, len(lines))

	// Full reset when line count changes
	if len(lines) != len(ps.Lines) {
		ps.Lines = make([]CachedLine, len(lines))
		for i := range ps.Lines {
			ps.Lines[i].Text = "\x00" // force dirty
		}
	}

	parser := ps.Parser
	if parser == nil {
		parser = defaultParser
	}

	for i, line := range lines {
		cached := &ps.Lines[i]

		if cached.Text == line {
			results[i] = LineResult{
				Stmt:    cached.Stmt,
				Err:     cached.Err,
				Deps:    cached.Deps,
				IsEmpty: cached.IsEmpty,
				Cached:  true,
			}
			continue
		}

		// Dirty — re-parse
		*cached = CachedLine{Text: line, IsEmpty: IsCommentOrBlank(line)}
		if !cached.IsEmpty {
			stmt, err := parser.Parse(line)
			if err != nil {
				cached.Err = err
			} else {
				cached.Stmt = stmt
				cached.Deps = CollectDeps(stmt)
			}
		}
		results[i] = LineResult{
			Stmt:    cached.Stmt,
			Err:     cached.Err,
			Deps:    cached.Deps,
			IsEmpty: cached.IsEmpty,
		}
	}

	return results
}

// Errors returns the number of failing lines in a result set.
func Errors(results []LineResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
