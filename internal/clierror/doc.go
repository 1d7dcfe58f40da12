// Package clierror provides structured errors for permctl output with codes,
// exit codes, and remediation hints.
//
// CLI errors separate the machine-readable verdict (code, exit code) from
// what gets displayed to the operator (message, hint). The check command
// maps denial onto a dedicated exit code so scripts can distinguish "denied"
// from "broken input".
package clierror
