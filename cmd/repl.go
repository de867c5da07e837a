package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/brettbedarf/webcli/shell"
)

// clearScreen moves the cursor home and erases the terminal
const clearScreen = "\033[H\033[2J"

// repl reads lines from in until EOF, "exit" or ctx is done, printing each
// record to out in the session's theme colors
func repl(ctx context.Context, sess *shell.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		palette := sess.Theme().Palette()
		palette.Accent.Fprint(out, sess.Prompt())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "exit" {
			return nil
		}
		rec := sess.Execute(line)
		palette = sess.Theme().Palette()
		switch {
		case rec == nil && strings.TrimSpace(line) != "":
			fmt.Fprint(out, clearScreen)
		case rec == nil || rec.Output == "":
		case rec.IsError:
			palette.Error.Fprintln(out, rec.Output)
		default:
			palette.Text.Fprintln(out, rec.Output)
		}
	}
}
