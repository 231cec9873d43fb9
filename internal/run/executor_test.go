package run

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestDirectExecutor_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on unix userland")
	}

	executor := NewDirectExecutor()

	var out bytes.Buffer
	cmd := Command{
		Binary: "echo",
		Args:   []string{"hello"},
		Stdout: &out,
	}

	if err := executor.Run(context.Background(), cmd); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "hello") {
		t.Errorf("expected output to contain 'hello', got: %q", out.String())
	}
}

func TestDirectExecutor_Output(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on unix userland")
	}

	executor := NewDirectExecutor()

	got, err := executor.Output(context.Background(), Command{
		Binary: "echo",
		Args:   []string{"  spaced  "},
	})
	if err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if got != "spaced" {
		t.Errorf("expected trimmed output 'spaced', got %q", got)
	}
}

func TestDirectExecutor_Failure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on unix userland")
	}

	executor := NewDirectExecutor()

	err := executor.Run(context.Background(), Command{
		Binary: "false",
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("expected error from failing command")
	}
}

func TestDirectExecutor_Cancellation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on unix userland")
	}

	executor := NewDirectExecutor()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := executor.Run(ctx, Command{
		Binary: "sleep",
		Args:   []string{"10"},
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCommand_Validate(t *testing.T) {
	if err := (Command{}).Validate(); err == nil {
		t.Error("expected error for empty binary")
	}
	if err := (Command{Binary: "ls"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCommand_String(t *testing.T) {
	c := Command{Binary: "rsync", Args: []string{"-a", "src/", "dst"}}
	if got := c.String(); got != "rsync -a src/ dst" {
		t.Errorf("String: got %q", got)
	}
	if got := (Command{Binary: "biber"}).String(); got != "biber" {
		t.Errorf("String: got %q", got)
	}
}
