package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/keroloszakaria/permgate/internal/clierror"
	"github.com/keroloszakaria/permgate/pkg/permission"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <requirement>",
	Short: "Check a requirement expression for structural problems",
	Long: `Validate a requirement expression without evaluating it. Reports the
diagnostic kind and detail for malformed expressions; exits non-zero so
malformed requirements fail CI checks.`,
	Example: `  permctl validate '["read", {"permissions": ["a"], "mode": "and"}]'
  permctl validate '{"permissions": ["a"], "mode": "bogus"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := permission.Validate(parseRequirement(args[0]))
		if !result.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s: %s\n",
				color.New(color.FgRed, color.Bold).Sprint("INVALID"),
				result.Kind, result.Detail)
			return clierror.InvalidRequirement(result.Detail)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s  requirement is well-formed\n",
			color.New(color.FgGreen, color.Bold).Sprint("VALID"))
		return nil
	},
}
