package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/keroloszakaria/permgate/internal/clierror"
	"github.com/keroloszakaria/permgate/pkg/permission"
)

var (
	checkHeld     []string
	checkHeldFile string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringArrayVar(&checkHeld, "held", nil, "Held permission (repeatable)")
	checkCmd.Flags().StringVar(&checkHeldFile, "held-file", "", "JSON or YAML file with a list of held permissions")
}

// checkOutput is the machine-readable decision for --output json|yaml.
type checkOutput struct {
	Satisfied    bool                    `json:"satisfied" yaml:"satisfied"`
	Reason       string                  `json:"reason" yaml:"reason"`
	EvaluationID string                  `json:"evaluation_id" yaml:"evaluation_id"`
	DurationUS   int64                   `json:"duration_us" yaml:"duration_us"`
	Diagnostics  []permission.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check <requirement>",
	Short: "Evaluate a requirement against held permissions",
	Long: `Evaluate a requirement expression against a held permission set and
report the verdict. The exit code is 0 when the requirement is satisfied
and non-zero otherwise, so check can gate scripts directly.`,
	Example: `  permctl check admin --held read --held write
  permctl check '["read", "delete"]' --held read
  permctl check '{"permissions": ["admin."], "mode": "startWith"}' --held admin.users
  permctl check '*'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		held, err := loadHeld(checkHeld, checkHeldFile)
		if err != nil {
			return err
		}

		requirement := parseRequirement(args[0])
		rec := &permission.Recorder{}
		eval := permission.New(permission.Config{
			Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
			Reporter: rec,
		})

		decision := eval.Check(cmd.Context(), requirement, held)
		diags := rec.Diagnostics()
		if devMode {
			for _, d := range diags {
				fmt.Fprintf(cmd.ErrOrStderr(), "diagnostic: %s: %s\n", d.Kind, d.Detail)
			}
		}

		out := checkOutput{
			Satisfied:    decision.Satisfied,
			Reason:       decision.Reason,
			EvaluationID: decision.ID,
			DurationUS:   decision.Duration.Microseconds(),
		}
		if devMode {
			out.Diagnostics = diags
		}
		if err := renderCheck(cmd.OutOrStdout(), out); err != nil {
			return err
		}

		if !decision.Satisfied {
			return clierror.Denied(args[0])
		}
		return nil
	},
}

func renderCheck(w io.Writer, out checkOutput) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		return yaml.NewEncoder(w).Encode(out)
	default:
		verdict := color.New(color.FgGreen, color.Bold).Sprint("ALLOW")
		if !out.Satisfied {
			verdict = color.New(color.FgRed, color.Bold).Sprint("DENY")
		}
		fmt.Fprintf(w, "%s  %s\n", verdict, out.Reason)
		return nil
	}
}
