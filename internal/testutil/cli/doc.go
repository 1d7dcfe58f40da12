// Package cli provides shared test utilities for permctl command tests.
//
// It eliminates boilerplate when testing cobra commands: command execution
// with output capture, fluent assertions, and temp fixture files for
// held-permission input.
//
// # Basic Usage
//
//	result := cli.Run(newRootCmd(), "check", `"read"`, "--held", "read")
//	result.AssertSuccess(t)
//	result.AssertContains(t, "ALLOW")
//
// # Fixture Files
//
//	path := cli.WriteHeldFile(t, `["read", "write"]`)
//	result := cli.Run(newRootCmd(), "check", `"read"`, "--held-file", path)
package cli
