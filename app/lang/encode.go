package lang

// Tree converts a statement into nested generic maps suitable for JSON or
// YAML encoding. Every node carries a "kind" discriminator.
func Tree(stmt Statement) map[string]any {
	switch s := stmt.(type) {
	case *Assignment:
		return map[string]any{
			"kind":  "assignment",
			"name":  s.Name,
			"value": exprTree(s.Value),
		}
	case *ExpressionStatement:
		return map[string]any{
			"kind": "expression",
			"expr": exprTree(s.Expr),
		}
	}
	return nil
}

func exprTree(e Expression) map[string]any {
	switch n := e.(type) {
	case *Constant:
		m := map[string]any{"kind": "constant"}
		switch v := n.Value.(type) {
		case Integer:
			m["integer"] = int64(v)
		case Decimal:
			m["decimal"] = float64(v)
		}
		if n.Units != nil {
			units := make([]any, len(n.Units))
			for i, u := range n.Units {
				units[i] = unitTree(u)
			}
			m["units"] = units
		}
		return m
	case *Variable:
		return map[string]any{"kind": "variable", "name": n.Name}
	case *Function:
		args := make([]any, len(n.Arguments))
		for i, arg := range n.Arguments {
			args[i] = exprTree(arg)
		}
		return map[string]any{"kind": "function", "name": n.Name, "arguments": args}
	case *Operation:
		return map[string]any{
			"kind": "operation",
			"op":   n.Op.String(),
			"lhs":  exprTree(n.LHS),
			"rhs":  exprTree(n.RHS),
		}
	case *Conversion:
		return map[string]any{
			"kind":   "conversion",
			"target": unitTree(n.Target),
			"value":  exprTree(n.Value),
		}
	}
	return nil
}

func unitTree(u Unit) map[string]any {
	return map[string]any{"symbol": u.Symbol, "exponent": u.Exponent}
}
