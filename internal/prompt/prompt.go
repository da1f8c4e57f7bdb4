// Package prompt is the human-decision surface: yes/no confirmation, free
// text capture, and option choice. Every call can end in dismissal, which is
// a first-class cancelled result rather than an error, so callers resume
// cleanly instead of treating a closed prompt as a failure.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Confirmation is a yes/no outcome. Cancelled takes precedence over Yes.
type Confirmation struct {
	Yes       bool
	Cancelled bool
}

// Response is a free-text outcome.
type Response struct {
	Value     string
	Cancelled bool
}

// Choice is an option-pick outcome; Index addresses the options slice.
type Choice struct {
	Index     int
	Cancelled bool
}

// Prompter is the confirmation/prompt surface the core suspends on.
type Prompter interface {
	Confirm(question string) (Confirmation, error)
	Input(question string) (Response, error)
	Choose(question string, options []string) (Choice, error)
}

// Terminal prompts over line-oriented streams. A non-interactive session
// (stdin not a TTY) answers every prompt with the cancelled result.
type Terminal struct {
	in          *bufio.Scanner
	out         io.Writer
	interactive bool
}

// NewTerminal prompts on stdin/stderr, detecting interactivity.
func NewTerminal() *Terminal {
	return &Terminal{
		in:          bufio.NewScanner(os.Stdin),
		out:         os.Stderr,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewWithStreams prompts over explicit streams, always interactive. Used by
// tests.
func NewWithStreams(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:          bufio.NewScanner(in),
		out:         out,
		interactive: true,
	}
}

func (t *Terminal) Confirm(question string) (Confirmation, error) {
	line, ok, err := t.readLine(question + " [y/n/q] ")
	if err != nil {
		return Confirmation{}, err
	}
	if !ok {
		return Confirmation{Cancelled: true}, nil
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return Confirmation{Yes: true}, nil
	case "n", "no":
		return Confirmation{}, nil
	default:
		return Confirmation{Cancelled: true}, nil
	}
}

func (t *Terminal) Input(question string) (Response, error) {
	line, ok, err := t.readLine(question + " ")
	if err != nil {
		return Response{}, err
	}
	if !ok || line == "" {
		return Response{Cancelled: true}, nil
	}
	return Response{Value: line}, nil
}

func (t *Terminal) Choose(question string, options []string) (Choice, error) {
	if t.interactive {
		fmt.Fprintln(t.out, question)
		for i, option := range options {
			fmt.Fprintf(t.out, "  %d) %s\n", i+1, option)
		}
	}
	line, ok, err := t.readLine("> ")
	if err != nil {
		return Choice{}, err
	}
	if !ok {
		return Choice{Cancelled: true}, nil
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil || n < 1 || n > len(options) {
		return Choice{Cancelled: true}, nil
	}
	return Choice{Index: n - 1}, nil
}

// readLine prints the question and reads one trimmed line. ok is false on
// dismissal: a closed stream or a non-interactive session.
func (t *Terminal) readLine(question string) (string, bool, error) {
	if !t.interactive {
		return "", false, nil
	}
	fmt.Fprint(t.out, question)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", false, err
		}
		return "", false, nil // EOF is a dismissal
	}
	return strings.TrimSpace(t.in.Text()), true, nil
}
