package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/coregx/retrace"
	"github.com/coregx/retrace/backtrack"
)

const (
	patternPrompt = "Enter a regular expression: "
	linePrompt    = "> "
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Match patterns against lines interactively",
	Long: `Start an interactive session: enter a regular expression, then feed it
lines to match against. Every line prints its match listing, or "No matches".
Ctrl-C returns to the pattern prompt, Ctrl-D exits.

Examples:
  retrace repl
  retrace repl --ignore-case`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	rl, err := readline.New(patternPrompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		pattern, err := rl.Readline()
		if err != nil {
			// Interrupt or EOF at the pattern prompt ends the session.
			return nil
		}

		re, err := retrace.CompileWithConfig(strings.TrimSpace(pattern), matchConfig())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		rl.SetPrompt(linePrompt)
		for {
			line, err := rl.Readline()
			if err != nil {
				if err == readline.ErrInterrupt {
					break
				}
				return nil
			}
			printMatches(os.Stdout, re, line)
		}
		rl.SetPrompt(patternPrompt)
	}
}

// printMatches writes the match listing for one line: the numbered matches,
// the numbered capture groups when any group recorded text, or "No matches".
func printMatches(w io.Writer, re *retrace.Regex, line string) {
	it := re.FindMatches(line)

	var matches []backtrack.Match
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		matches = append(matches, m)
	}
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches")
		return
	}

	fmt.Fprintln(w, "=== Matches ===")
	for i, m := range matches {
		fmt.Fprintf(w, "%d) %s\n", i+1, m)
	}

	groups := it.Captures()
	recorded := false
	for _, g := range groups {
		if g != "" {
			recorded = true
			break
		}
	}
	if recorded {
		fmt.Fprintln(w, "===== Groups ======")
		for i, g := range groups {
			fmt.Fprintf(w, "%d) \"%s\"\n", i+1, g)
		}
	}
	fmt.Fprintln(w, "===================")
}
