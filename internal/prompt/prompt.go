// Package prompt asks the operator questions on the console, or replays scripted answers
// when running headless.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/klytics/abukit/internal/survey"
)

// Prompter is everything the pipeline needs from the operator.
type Prompter interface {
	// Choose returns the 0-based index of the option picked from options.
	Choose(title string, options []string) (int, error)
	// Confirm returns true when the operator just presses Enter.
	Confirm(message string) (bool, error)
	// Ask returns the operator's trimmed answer.
	Ask(message string) (string, error)
	// Pause waits for Enter so console output stays visible.
	Pause(message string)
}

// ChooserFunc adapts a plain function to the Choose half of a Prompter.
type ChooserFunc func(title string, options []string) (int, error)

// Choose calls fn.
func (fn ChooserFunc) Choose(title string, options []string) (int, error) {
	return fn(title, options)
}

// LineReader is the subset of *readline.Instance the console uses.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// Console prompts on a terminal.
type Console struct {
	in  LineReader
	out io.Writer
}

// NewConsole returns a Console reading stdin and writing to w, using readline line editing
// when stdin is a terminal. A nil w means color.Output.
func NewConsole(w io.Writer) (*Console, error) {
	if w == nil {
		w = color.Output
	}
	if !readline.DefaultIsTerminal() {
		return NewReaderConsole(os.Stdin, w), nil
	}

	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		Stdout:          w,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open console: %w", err)
	}
	return &Console{in: rl, out: rl.Stdout()}, nil
}

// NewReaderConsole returns a Console that reads answers line by line from r.
func NewReaderConsole(r io.Reader, w io.Writer) *Console {
	return &Console{in: &scannerReader{sc: bufio.NewScanner(r), out: w}, out: w}
}

// Close releases the line reader.
func (c *Console) Close() error {
	return c.in.Close()
}

// Choose lists options numbered from 1 and asks for an index until a valid one is entered.
func (c *Console) Choose(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("nothing to choose from for %q", title)
	}

	fmt.Fprintf(c.out, "%s:\n", title)
	for i, opt := range options {
		fmt.Fprintf(c.out, "%s %s\n", color.New(color.Bold).Sprintf("%d:", i+1), opt)
	}

	for {
		line, err := c.readLine(fmt.Sprintf("\nEnter index number (1-%d): ", len(options)))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		color.New(color.FgYellow).Fprintf(c.out, "%q is not a number between 1 and %d.\n", line, len(options))
	}
}

// Confirm shows message and reports whether the answer was empty.
func (c *Console) Confirm(message string) (bool, error) {
	line, err := c.readLine(message)
	if err != nil {
		return false, err
	}
	return line == "", nil
}

// Ask shows message and returns the answer.
func (c *Console) Ask(message string) (string, error) {
	return c.readLine(message)
}

// Pause shows message and waits for a line; read errors are ignored.
func (c *Console) Pause(message string) {
	_, _ = c.readLine(message)
}

func (c *Console) readLine(prompt string) (string, error) {
	c.in.SetPrompt(prompt)
	line, err := c.in.Readline()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return "", fmt.Errorf("input closed: %w", survey.ErrUserCancelled)
		}
		return "", fmt.Errorf("could not read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// scannerReader serves lines from a plain reader, echoing the prompt itself.
type scannerReader struct {
	sc     *bufio.Scanner
	out    io.Writer
	prompt string
}

func (s *scannerReader) SetPrompt(prompt string) { s.prompt = prompt }

func (s *scannerReader) Readline() (string, error) {
	fmt.Fprint(s.out, s.prompt)
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	fmt.Fprintln(s.out)
	return s.sc.Text(), nil
}

func (s *scannerReader) Close() error { return nil }

// Select returns the only option without asking, or lets the operator pick when there are
// several.
func Select(p Prompter, title string, options []string) (string, error) {
	switch len(options) {
	case 0:
		return "", fmt.Errorf("nothing to choose from for %q", title)
	case 1:
		return options[0], nil
	}
	i, err := p.Choose(title, options)
	if err != nil {
		return "", err
	}
	return options[i], nil
}
