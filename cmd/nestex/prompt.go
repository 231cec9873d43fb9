package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// errUnexpectedIndex marks a selection outside the legend range. The
// dispatcher reports it with a plain message and stops; it is never
// treated as a runtime failure.
var errUnexpectedIndex = errors.New("unexpected index")

var (
	indexStyle   = lipgloss.NewStyle().Bold(true)
	defaultStyle = lipgloss.NewStyle().Faint(true)
)

// prompter reads interactive selections line by line. Reader-backed so
// tests can script the session.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// yesNo asks a Y/n question. Empty input selects the default; anything
// starting with y/Y is yes, n/N is no, everything else the default.
func (p *prompter) yesNo(question string, def bool) (bool, error) {
	hint := "Y/n"
	if !def {
		hint = "y/N"
	}
	fmt.Fprintf(p.out, "%s (%s): ", question, hint)

	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch {
	case line == "":
		return def, nil
	case strings.HasPrefix(strings.ToLower(line), "y"):
		return true, nil
	case strings.HasPrefix(strings.ToLower(line), "n"):
		return false, nil
	}
	return def, nil
}

// index asks for a 1-based selection from names, rendering the
// "index - name" legend. Empty input selects def. Out-of-range input
// returns errUnexpectedIndex; non-numeric input returns the parse error.
func (p *prompter) index(question string, names []string, def int) (int, error) {
	fmt.Fprintf(p.out, "%s (%s): ", question, legend(names, def))

	line, err := p.readLine()
	if err != nil {
		return 0, err
	}
	if line == "" {
		return def, nil
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("invalid selection %q: %w", line, err)
	}
	if n < 1 || n > len(names) {
		return 0, errUnexpectedIndex
	}
	return n, nil
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if line == "" && err == io.EOF {
		return "", nil
	}
	return strings.TrimSpace(line), nil
}

// legend renders "1 - compile, 2 - watch, ..." with the default entry
// dimmed-marked.
func legend(names []string, def int) string {
	parts := make([]string, 0, len(names))
	for i, name := range names {
		entry := indexStyle.Render(strconv.Itoa(i+1)) + " - " + name
		if i+1 == def {
			entry += defaultStyle.Render(" [default]")
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, ", ")
}
