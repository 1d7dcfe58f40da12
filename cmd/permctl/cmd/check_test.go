package cmd

import (
	"encoding/json"
	"testing"

	"github.com/keroloszakaria/permgate/internal/testutil/cli"
)

// resetFlags clears command state between runs; the cobra command tree is
// package-level, so flag values persist across Execute calls.
func resetFlags(t *testing.T) {
	t.Helper()
	outputFormat = "table"
	devMode = false
	checkHeld = nil
	checkHeldFile = ""
}

func TestCheck_Allow(t *testing.T) {
	resetFlags(t)

	result := cli.Run(rootCmd, "check", `["read", "delete"]`, "--held", "read", "--held", "write")
	result.AssertSuccess(t)
	result.AssertContains(t, "ALLOW")
}

func TestCheck_Deny(t *testing.T) {
	resetFlags(t)

	result := cli.Run(rootCmd, "check", "admin", "--held", "read", "--held", "write")
	result.AssertError(t)
	result.AssertContains(t, "DENY")
}

func TestCheck_WildcardWithNoHeld(t *testing.T) {
	resetFlags(t)

	result := cli.Run(rootCmd, "check", "*")
	result.AssertSuccess(t)
	result.AssertContains(t, "ALLOW")
}

func TestCheck_StartWithGroup(t *testing.T) {
	resetFlags(t)

	result := cli.Run(rootCmd, "check",
		`{"permissions": ["admin."], "mode": "startWith"}`,
		"--held", "admin.users")
	result.AssertSuccess(t)
	result.AssertContains(t, "ALLOW")
}

func TestCheck_InvalidRequirementDenies(t *testing.T) {
	resetFlags(t)

	result := cli.Run(rootCmd, "check",
		`{"permissions": ["a"], "mode": "bogus"}`,
		"--held", "a", "--dev")
	result.AssertError(t)
	result.AssertContains(t, "DENY")
	result.AssertStderrContains(t, "unknown_mode")
}

func TestCheck_HeldFile(t *testing.T) {
	resetFlags(t)
	path := cli.WriteHeldFile(t, `["read", "write"]`)

	result := cli.Run(rootCmd, "check", "read", "--held-file", path)
	result.AssertSuccess(t)
	result.AssertContains(t, "ALLOW")
}

func TestCheck_JSONOutput(t *testing.T) {
	resetFlags(t)

	result := cli.Run(rootCmd, "check", "read", "--held", "read", "--output", "json")
	result.AssertSuccess(t)

	var out checkOutput
	if err := json.Unmarshal([]byte(result.Stdout), &out); err != nil {
		t.Fatalf("stdout is not valid JSON: %v\n%s", err, result.Stdout)
	}
	if !out.Satisfied {
		t.Error("expected satisfied=true in JSON output")
	}
	if out.EvaluationID == "" {
		t.Error("expected a non-empty evaluation id in JSON output")
	}
}

func TestValidate_WellFormed(t *testing.T) {
	resetFlags(t)

	result := cli.Run(rootCmd, "validate", `["read", {"permissions": ["a"], "mode": "and"}]`)
	result.AssertSuccess(t)
	result.AssertContains(t, "VALID")
}

func TestValidate_UnknownMode(t *testing.T) {
	resetFlags(t)

	result := cli.Run(rootCmd, "validate", `{"permissions": ["a"], "mode": "bogus"}`)
	result.AssertError(t)
	result.AssertContains(t, "INVALID")
	result.AssertContains(t, "unknown_mode")
}

func TestVersion(t *testing.T) {
	resetFlags(t)

	result := cli.Run(rootCmd, "version")
	result.AssertSuccess(t)
	result.AssertContains(t, "permctl v")
}
