package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/repr"
	"gopkg.in/yaml.v3"

	"unitcalc/app/config"
	"unitcalc/app/lang"
)

// writeStatement renders a parsed statement in the requested format.
func writeStatement(w io.Writer, stmt lang.Statement, format string) error {
	switch format {
	case config.FormatText:
		_, err := fmt.Fprintln(w, stmt.String())
		return err
	case config.FormatRepr:
		_, err := fmt.Fprintln(w, repr.String(stmt, repr.Indent("  ")))
		return err
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(lang.Tree(stmt))
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(lang.Tree(stmt)); err != nil {
			return err
		}
		return enc.Close()
	}
	return config.ValidateFormat(format)
}

// writeParseError prints err with a caret under the offending column.
func writeParseError(w io.Writer, source string, err error) {
	var pe *lang.ParseError
	if !errors.As(err, &pe) {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "error: column %d: %s\n", pe.Column, pe.Reason())
	if caret := pe.Caret(source); caret != "" {
		for _, line := range strings.Split(caret, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}

// formatDeps renders the non-empty parts of a dependency summary.
func formatDeps(d lang.DepsInfo) string {
	var parts []string
	if d.Assigns != "" {
		parts = append(parts, "assigns: "+d.Assigns)
	}
	if len(d.Vars) > 0 {
		parts = append(parts, "vars: "+strings.Join(d.Vars, ", "))
	}
	if len(d.Funcs) > 0 {
		parts = append(parts, "funcs: "+strings.Join(d.Funcs, ", "))
	}
	if len(d.Units) > 0 {
		parts = append(parts, "units: "+strings.Join(d.Units, ", "))
	}
	return strings.Join(parts, "; ")
}
