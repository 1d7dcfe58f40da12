package cmd

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/keroloszakaria/permgate/internal/clierror"
)

// parseRequirement interprets the requirement argument. JSON is tried
// first so arrays and group objects work; anything that is not valid JSON
// is taken as a bare permission string, so `permctl check admin` works
// without quoting gymnastics.
func parseRequirement(arg string) any {
	var value any
	if err := json.Unmarshal([]byte(arg), &value); err == nil {
		return value
	}
	return arg
}

// loadHeld assembles the held permission set from repeated --held flags
// and an optional --held-file (a JSON or YAML list of strings).
func loadHeld(held []string, heldFile string) ([]string, error) {
	out := append([]string(nil), held...)
	if heldFile == "" {
		return out, nil
	}

	data, err := os.ReadFile(heldFile)
	if err != nil {
		return nil, clierror.BadInput("held-permission file", err)
	}

	var fromFile []string
	// yaml.Unmarshal handles both YAML and JSON lists.
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, clierror.BadInput("held-permission file", err)
	}
	return append(out, fromFile...), nil
}
