package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"unitcalc/app/lang"
)

var checkDeps bool

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Parse every line of a file and report errors",
	Long: `Parses a document one statement per line. Blank lines and lines
starting with ';' or '//' are skipped.

Examples:
  unitcalc check notes.calc
  unitcalc check --deps notes.calc`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-check a file every time it is saved",
	Long: `Checks the file once, then again after every write. Only lines that
changed since the previous check are reported. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)

	checkCmd.Flags().BoolVar(&checkDeps, "deps", false, "print variables, functions and units per line")
	watchCmd.Flags().BoolVar(&checkDeps, "deps", false, "print variables, functions and units per line")
}

func runCheck(cmd *cobra.Command, args []string) error {
	state := &lang.ParseState{Parser: newParser()}
	failed, err := checkFile(cmd.OutOrStdout(), state, args[0], false)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%s: %d line(s) failed to parse", args[0], failed)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()
	state := &lang.ParseState{Parser: newParser()}

	if _, err := checkFile(out, state, path, false); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("watching %s", path)
	return watchFile(ctx, path, cfg.Watch.Debounce.Duration, func() error {
		failed, err := checkFile(out, state, path, true)
		if err == nil {
			debugf("%s: %d line(s) failing", path, failed)
		}
		return err
	})
}

// checkFile parses path line by line through state. With onlyChanged set,
// lines served from the cache are not reported. It returns the number of
// failing lines.
func checkFile(w io.Writer, state *lang.ParseState, path string, onlyChanged bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	text := strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	lines := strings.Split(text, "\n")

	results := state.ParseAllIncremental(lines)
	for i, r := range results {
		if r.IsEmpty || (onlyChanged && r.Cached) {
			continue
		}
		if r.Err != nil {
			var pe *lang.ParseError
			if errors.As(r.Err, &pe) {
				fmt.Fprintf(w, "%s:%d:%d: %s\n", path, i+1, pe.Column, pe.Reason())
			} else {
				fmt.Fprintf(w, "%s:%d: %v\n", path, i+1, r.Err)
			}
			continue
		}
		if checkDeps || cfg.Output.Deps {
			fmt.Fprintf(w, "%s:%d: %s  [%s]\n", path, i+1, r.Stmt, formatDeps(r.Deps))
			continue
		}
		fmt.Fprintf(w, "%s:%d: %s\n", path, i+1, r.Stmt)
	}
	return lang.Errors(results), nil
}

// watchFile calls onChange after path is written, coalescing bursts of
// events within debounce. It returns when ctx is done.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file on save are still seen
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			debugf("file changed: %s (%s)", event.Name, event.Op)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := onChange(); err != nil {
				log.Printf("check failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher error: %v", err)
		}
	}
}
