package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coregx/retrace"
)

var showSpans bool

// fs is swapped for an in-memory filesystem in tests.
var fs afero.Fs = afero.NewOsFs()

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match PATTERN [FILE]",
	Short: "Scan a file or stdin for pattern matches",
	Long: `Scan a file, or stdin when no file is given, printing each line that
contains a match prefixed with its 1-based line number. Pass --spans to
also list the byte span and text of every match on the line.

The exit status is 0 when at least one line matched, 1 otherwise.

Examples:
  retrace match 'er+or' app.log
  cat app.log | retrace match '^[0-9]{2,4} '
  retrace match --ignore-case 'warn(ing)?' app.log --spans`,
	Args:         cobra.RangeArgs(1, 2),
	SilenceUsage: true,
	RunE:         runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().BoolVar(&showSpans, "spans", false, "list the byte spans of each match")
}

func runMatch(cmd *cobra.Command, args []string) error {
	re, err := retrace.CompileWithConfig(args[0], matchConfig())
	if err != nil {
		return err
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(cmd.ErrOrStderr(), "pattern %q: %d capture groups\n", args[0], re.NumCaptures())
	}

	in := cmd.InOrStdin()
	name := "stdin"
	if len(args) == 2 {
		f, err := fs.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
		name = args[1]
	}

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	matched := false
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		matches := re.FindAll(line)
		if len(matches) == 0 {
			continue
		}
		matched = true
		fmt.Fprintf(out, "%d:%s\n", lineNum, line)
		if showSpans {
			for _, m := range matches {
				fmt.Fprintf(out, "  %s\n", m)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	if !matched {
		return errNoMatch
	}
	return nil
}
