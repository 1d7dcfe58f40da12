// Package cmd implements the permctl CLI commands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keroloszakaria/permgate/internal/version"
)

var (
	// Global flags
	outputFormat string
	devMode      bool
)

var rootCmd = &cobra.Command{
	Use:   "permctl",
	Short: "Evaluate permission requirement expressions",
	Long: `permctl evaluates declarative permission requirements against a held
permission set, using the same fail-closed validator and evaluator the
permgate library applies to guarded elements.

A requirement is a JSON value: a bare permission string, the wildcard "*",
an array mixing strings and match groups, or a single match group such as
{"permissions": ["admin."], "mode": "startWith"}.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, or yaml")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Surface advisory diagnostics on stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// JSONOutput reports whether error output should be rendered as JSON.
func JSONOutput() bool {
	return outputFormat == "json"
}
