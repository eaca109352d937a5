package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coregx/retrace/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive split-pane matcher",
	Long: `Start the terminal UI: a pattern input on top, the subject text on the
left and the resulting match spans on the right. The pattern recompiles
and the spans recompute on every keystroke.

Examples:
  retrace tui
  retrace tui --ignore-case`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	model := tui.New(matchConfig())

	if viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Starting TUI...")
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
