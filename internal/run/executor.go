package run

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mogmix/nestex/internal/logging"
)

// Executor runs external commands. Implementations must honor context
// cancellation; higher layers depend on it for interrupt handling.
type Executor interface {
	// Run executes the command, streaming its output, and returns once
	// it exits. A non-zero exit is returned as an error.
	Run(ctx context.Context, cmd Command) error

	// Output executes the command and returns its trimmed stdout.
	Output(ctx context.Context, cmd Command) (string, error)
}

// DirectExecutor executes commands on the host via os/exec with no
// intermediary shell.
type DirectExecutor struct{}

// NewDirectExecutor creates a host executor.
func NewDirectExecutor() *DirectExecutor {
	return &DirectExecutor{}
}

// Run executes the command with the terminal inherited for output, unless
// the command wires its own writers.
func (e *DirectExecutor) Run(ctx context.Context, cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stdin = os.Stdin
	c.Stdout = cmd.Stdout
	c.Stderr = cmd.Stderr
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}

	start := time.Now()
	logging.L().Debug("running command", zap.String("cmd", cmd.String()), zap.String("dir", cmd.Dir))

	if err := c.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s failed: %w", cmd.Binary, err)
	}

	logging.L().Debug("command finished",
		zap.String("cmd", cmd.Binary),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Output executes the command and captures stdout, trimmed of trailing
// whitespace. Stderr is passed through to the terminal.
func (e *DirectExecutor) Output(ctx context.Context, cmd Command) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%s failed: %w", cmd.Binary, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
