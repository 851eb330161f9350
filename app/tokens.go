package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"unitcalc/app/lang"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [statement...]",
	Short: "Show how a statement is classified for highlighting",
	Long: `Prints one span per line: its syntax category and text. Works on
input that does not parse.

Example:
  unitcalc tokens "32.5 kg m_1 s_-2 to N"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		writeSpans(cmd.OutOrStdout(), strings.Join(args, " "))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "unitcalc %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(versionCmd)
}

func writeSpans(w io.Writer, line string) {
	for _, span := range lang.Highlight(line) {
		if span.Kind == lang.SpanPlain && strings.TrimSpace(span.Text) == "" {
			continue
		}
		fmt.Fprintf(w, "%-9s %q\n", span.Kind, span.Text)
	}
}
