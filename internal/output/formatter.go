// Package output provides operator-facing console messages and machine-readable results.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Console writes coloured status lines for the operator.
type Console struct {
	dest io.Writer
}

// NewConsole creates a Console writing to dest. A nil dest means color.Output.
func NewConsole(dest io.Writer) *Console {
	if dest == nil {
		dest = color.Output
	}
	return &Console{dest: dest}
}

// Writer returns the underlying destination.
func (c *Console) Writer() io.Writer {
	return c.dest
}

// Info writes a plain status line.
func (c *Console) Info(format string, args ...interface{}) {
	fmt.Fprintf(c.dest, format+"\n", args...)
}

// Success writes a green status line.
func (c *Console) Success(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(c.dest, format+"\n", args...)
}

// Warn writes a yellow status line.
func (c *Console) Warn(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(c.dest, format+"\n", args...)
}

// Error writes a red status line.
func (c *Console) Error(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(c.dest, format+"\n", args...)
}
