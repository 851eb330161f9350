package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"unitcalc/app/config"
	"unitcalc/app/lang"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfgFile string
	verbose bool
	cfg     = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "unitcalc",
	Short: "Parser for a calculator language with physical units",
	Long: `unitcalc parses statements of a small calculator language whose numbers
carry physical units, and prints their syntax trees.

Examples:
  unitcalc parse "32.5 kg m_1 s_-2"
  unitcalc parse --format json "atan2(2, 3)"
  unitcalc check notes.calc
  unitcalc watch notes.calc`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	log.SetPrefix("unitcalc: ")
	log.SetFlags(0)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $"+config.EnvVar+" or ./unitcalc.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	debugf("config: max_input_length=%d max_depth=%d format=%s",
		cfg.Parser.MaxInputLength, cfg.Parser.MaxDepth, cfg.Output.Format)
	return nil
}

// debugf logs only when --verbose is set.
func debugf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

func newParser() *lang.Parser {
	return lang.NewParser(cfg.ParserOptions())
}

func printError(w io.Writer, msg string, err error) {
	fmt.Fprintf(w, "error: %s: %v\n", msg, err)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
