package workflow

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks the operator a yes/no question before a destructive action.
type Confirmer interface {
	// Confirm returns the operator's answer. The default answer, taken
	// when the operator just presses enter, is no.
	Confirm(question string) (bool, error)
}

// TerminalConfirmer reads the answer from an input stream, normally stdin.
type TerminalConfirmer struct {
	in  io.Reader
	out io.Writer
}

// NewTerminalConfirmer creates a confirmer reading from in and prompting
// on out.
func NewTerminalConfirmer(in io.Reader, out io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{in: in, out: out}
}

// Confirm prompts the operator and interprets "y" or "yes" (any case) as
// consent. Anything else, including an empty answer, declines.
func (c *TerminalConfirmer) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(c.out, "%s (y/N) ", question); err != nil {
		return false, err
	}

	reader := bufio.NewReader(c.in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
