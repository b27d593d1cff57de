// Package prompt collects interactive input from the user.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrCancelled is returned when the user abandons a prompt, either by closing input or interrupting.
var ErrCancelled = errors.New("prompt cancelled")

// ValidateFunc checks a value entered by the user, returning an error describing the problem when invalid.
type ValidateFunc func(value string) error

// Prompter asks the user for input.
// Implementations block until a valid value is entered or the prompt is cancelled.
type Prompter interface {
	// Text asks for a visible value.
	Text(ctx context.Context, message string, validate ValidateFunc) (string, error)

	// Password asks for a value without echoing it.
	Password(ctx context.Context, message string, validate ValidateFunc) (string, error)

	// Confirm asks a yes/no question. An empty answer selects initial.
	Confirm(ctx context.Context, message string, initial bool) (bool, error)
}

// RequiredValue returns a ValidateFunc which rejects blank values.
func RequiredValue(name string) ValidateFunc {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

var _ Prompter = (*Terminal)(nil)

// Terminal is a Prompter which reads lines from an input stream and writes prompts to an output stream.
// When the input is a terminal, password entry disables echo.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	isTerm bool
}

// NewTerminal creates a Terminal prompter.
// Typically in is os.Stdin and out is the command's output.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		in:  bufio.NewReader(in),
		out: out,
		fd:  -1,
	}

	if f, ok := in.(*os.File); ok {
		t.fd = int(f.Fd())
		t.isTerm = term.IsTerminal(t.fd)
	}

	return t
}

// Text implements Prompter.
func (t *Terminal) Text(ctx context.Context, message string, validate ValidateFunc) (string, error) {
	return t.ask(ctx, message, validate, t.readLine)
}

// Password implements Prompter.
func (t *Terminal) Password(ctx context.Context, message string, validate ValidateFunc) (string, error) {
	if !t.isTerm {
		return t.ask(ctx, message, validate, t.readLine)
	}

	return t.ask(ctx, message, validate, func(ctx context.Context) (string, error) {
		v, err := t.readPassword(ctx)
		// Echo is disabled so the user's newline was not printed.
		_, _ = fmt.Fprintln(t.out)
		return v, err
	})
}

// Confirm implements Prompter.
func (t *Terminal) Confirm(ctx context.Context, message string, initial bool) (bool, error) {
	hint := "y/N"
	if initial {
		hint = "Y/n"
	}

	for {
		_, _ = fmt.Fprintf(t.out, "%s (%s) ", message, hint)

		answer, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return initial, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			_, _ = fmt.Fprintln(t.out, "Please answer 'y' or 'n'.")
		}
	}
}

func (t *Terminal) ask(
	ctx context.Context,
	message string,
	validate ValidateFunc,
	read func(context.Context) (string, error),
) (string, error) {
	for {
		_, _ = fmt.Fprintf(t.out, "%s ", message)

		value, err := read(ctx)
		if err != nil {
			return "", err
		}

		if validate == nil {
			return value, nil
		}

		if err := validate(value); err != nil {
			_, _ = fmt.Fprintf(t.out, "  %s\n", err)
			continue
		}

		return value, nil
	}
}

type readResult struct {
	value string
	err   error
}

// readLine reads a single line, without its line ending.
// If ctx is done first, ErrCancelled is returned and the pending read is abandoned.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrCancelled
	}

	results := make(chan readResult, 1)
	go func() {
		line, err := t.in.ReadString('\n')
		results <- readResult{value: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrCancelled
	case r := <-results:
		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				if r.value == "" {
					return "", ErrCancelled
				}
				// Final line without a trailing newline.
				return strings.TrimRight(r.value, "\r\n"), nil
			}
			return "", fmt.Errorf("failed to read input: %w", r.err)
		}
		return strings.TrimRight(r.value, "\r\n"), nil
	}
}

func (t *Terminal) readPassword(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrCancelled
	}

	state, err := term.GetState(t.fd)
	if err != nil {
		return "", fmt.Errorf("failed to get terminal state: %w", err)
	}

	results := make(chan readResult, 1)
	go func() {
		b, err := term.ReadPassword(t.fd)
		results <- readResult{value: string(b), err: err}
	}()

	select {
	case <-ctx.Done():
		// Echo is still disabled by the abandoned read.
		_ = term.Restore(t.fd, state)
		return "", ErrCancelled
	case r := <-results:
		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				return "", ErrCancelled
			}
			return "", fmt.Errorf("failed to read input: %w", r.err)
		}
		return r.value, nil
	}
}
