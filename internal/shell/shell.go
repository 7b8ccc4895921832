// Package shell runs the interactive contact session: a Bubble Tea TUI
// on a terminal, or a plain line-based loop for pipes and scripts.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/rolodex/internal/command"
)

// Options configures a session.
type Options struct {
	In         io.Reader        // Input source (default: os.Stdin).
	Out        io.Writer        // Output destination (default: os.Stdout).
	ForcePlain bool             // Force the plain loop even on a TTY.
	Handler    *command.Handler // Command dispatcher bound to the book.
	Save       func() error     // Invoked once when the session ends.
}

// Run starts an interactive session and blocks until it ends.
// The TUI is used when Out is a terminal; otherwise the plain loop runs.
func Run(opts Options) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Out) {
		return runPlain(opts.In, opts.Out, opts.Handler, opts.Save)
	}

	m := NewModel(opts.Handler, opts.Save)
	prog := tea.NewProgram(m, tea.WithInput(opts.In), tea.WithOutput(opts.Out))
	final, err := prog.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runPlain is the line-based session loop. It saves the book on
// close/exit and on end of input, so piped sessions never lose data.
func runPlain(in io.Reader, out io.Writer, h *command.Handler, save func() error) error {
	_, _ = fmt.Fprintln(out, welcome)

	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(out, "Enter command: ")
		if !scanner.Scan() {
			break
		}

		reply, quit := h.Dispatch(scanner.Text())
		if reply != "" {
			_, _ = fmt.Fprintln(out, reply)
		}
		if quit {
			return doSave(save)
		}
	}

	if err := scanner.Err(); err != nil {
		// Save what we have before reporting the read failure.
		_ = doSave(save)
		return fmt.Errorf("shell: reading input: %w", err)
	}
	_, _ = fmt.Fprintln(out, "Good bye!")
	return doSave(save)
}

func doSave(save func() error) error {
	if save == nil {
		return nil
	}
	return save()
}
