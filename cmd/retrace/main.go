// Command retrace is a console front-end for the retrace regex engine.
//
// It wraps the library in three workflows: a line-oriented REPL, a
// grep-style file matcher, and a full-screen interactive TUI.
package main

import "github.com/coregx/retrace/internal/cmd"

func main() {
	cmd.Execute()
}
