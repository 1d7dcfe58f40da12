package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keroloszakaria/permgate/internal/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the permctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "permctl %s\n", version.String())
	},
}
