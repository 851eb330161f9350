package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"unitcalc/app/config"
	"unitcalc/app/lang"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse [statement...]",
	Short: "Parse statements and print their syntax trees",
	Long: `Parses one statement given as arguments, or one statement per line
read from stdin, and prints the resulting tree.

Formats:
  text  - canonical, fully parenthesized source
  repr  - Go value dump
  json  - tree with "kind" discriminators
  yaml  - same tree as YAML

Examples:
  unitcalc parse "2 + 4 * 8 - 2 ^ 21"
  unitcalc parse --format yaml "hello = 2.2"
  echo "4.52 cm ^ 2" | unitcalc parse`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format (text, repr, json, yaml)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format := cfg.Output.Format
	if parseFormat != "" {
		format = parseFormat
	}
	if err := config.ValidateFormat(format); err != nil {
		return err
	}

	var sources []string
	if len(args) > 0 {
		sources = []string{strings.Join(args, " ")}
	} else {
		var err error
		sources, err = readStatements(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}
	if len(sources) == 0 {
		return fmt.Errorf("nothing to parse")
	}

	failed := parseAll(cmd.OutOrStdout(), cmd.ErrOrStderr(), newParser(), sources, format)
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed to parse", failed, len(sources))
	}
	return nil
}

// parseAll parses each source, writing trees to out and errors to errOut.
// It returns the number of failures.
func parseAll(out, errOut io.Writer, parser *lang.Parser, sources []string, format string) int {
	failed := 0
	for _, src := range sources {
		stmt, err := parser.Parse(src)
		if err != nil {
			writeParseError(errOut, src, err)
			failed++
			continue
		}
		debugf("parsed %q", src)
		if err := writeStatement(out, stmt, format); err != nil {
			printError(errOut, "write output", err)
			failed++
		}
	}
	return failed
}

// readStatements reads non-blank, non-comment lines.
func readStatements(r io.Reader) ([]string, error) {
	if f, ok := r.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return nil, fmt.Errorf("no statement given and stdin is a terminal")
		}
	}
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if lang.IsCommentOrBlank(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
