package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// CommandResult captures the output and error from a command execution.
type CommandResult struct {
	Stdout string
	Stderr string
	Err    error
}

// Run executes a cobra command with the given arguments and captures output.
//
// Example:
//
//	result := cli.Run(newRootCmd(), "validate", `"read"`)
//	result.AssertSuccess(t)
//	result.AssertContains(t, "valid")
func Run(cmd *cobra.Command, args ...string) *CommandResult {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return &CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Err:    err,
	}
}

// AssertSuccess fails the test if the command returned an error.
func (r *CommandResult) AssertSuccess(t *testing.T) {
	t.Helper()
	if r.Err != nil {
		t.Fatalf("expected command to succeed, got error: %v\nstdout: %s\nstderr: %s",
			r.Err, r.Stdout, r.Stderr)
	}
}

// AssertError fails the test if the command did not return an error.
func (r *CommandResult) AssertError(t *testing.T) {
	t.Helper()
	if r.Err == nil {
		t.Fatalf("expected command to fail, but it succeeded\nstdout: %s", r.Stdout)
	}
}

// AssertContains fails the test if stdout does not contain the expected string.
func (r *CommandResult) AssertContains(t *testing.T, expected string) {
	t.Helper()
	if !strings.Contains(r.Stdout, expected) {
		t.Errorf("expected stdout to contain %q, got:\n%s", expected, r.Stdout)
	}
}

// AssertNotContains fails the test if stdout contains the unexpected string.
func (r *CommandResult) AssertNotContains(t *testing.T, unexpected string) {
	t.Helper()
	if strings.Contains(r.Stdout, unexpected) {
		t.Errorf("expected stdout NOT to contain %q, got:\n%s", unexpected, r.Stdout)
	}
}

// AssertStderrContains fails the test if stderr does not contain the expected string.
func (r *CommandResult) AssertStderrContains(t *testing.T, expected string) {
	t.Helper()
	if !strings.Contains(r.Stderr, expected) {
		t.Errorf("expected stderr to contain %q, got:\n%s", expected, r.Stderr)
	}
}

// WriteHeldFile writes held-permission fixture content to a temp file and
// returns its path. The file is cleaned up with the test.
//
// Example:
//
//	path := cli.WriteHeldFile(t, `["read", "write"]`)
func WriteHeldFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "held.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write held-permission fixture: %v", err)
	}
	return path
}
