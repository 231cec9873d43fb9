// Package run is the subprocess layer for nestex. Every external tool
// invocation goes through an Executor with a structured argument list;
// nothing is ever passed through a shell, so paths need no escaping.
package run

import (
	"fmt"
	"io"
	"strings"
)

// Command describes one external tool invocation.
type Command struct {
	// Binary is the executable name or path.
	Binary string

	// Args is the argument vector, exclusive of the binary name.
	Args []string

	// Dir is the working directory; empty means inherit.
	Dir string

	// Env is extra environment entries in KEY=VALUE form, appended to
	// the inherited environment. Usually nil.
	Env []string

	// Stdout/Stderr receive the child's output when non-nil; otherwise
	// the executor decides (DirectExecutor inherits the terminal).
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the invocation for log lines.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Binary
	}
	return c.Binary + " " + strings.Join(c.Args, " ")
}

// Validate checks that the command can be attempted at all.
func (c Command) Validate() error {
	if c.Binary == "" {
		return fmt.Errorf("command has no binary")
	}
	return nil
}
