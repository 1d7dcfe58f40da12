// permctl evaluates declarative permission requirements offline: the same
// validator and evaluator the guard library uses, exposed for scripting and
// for debugging requirement expressions.
package main

import (
	"errors"
	"os"

	"github.com/keroloszakaria/permgate/cmd/permctl/cmd"
	"github.com/keroloszakaria/permgate/internal/clierror"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var cliErr *clierror.CLIError
		if errors.As(err, &cliErr) {
			cliErr.Render(os.Stderr, cmd.JSONOutput())
			os.Exit(cliErr.ExitCode)
		}
		clierror.Internal(err).Render(os.Stderr, cmd.JSONOutput())
		os.Exit(clierror.ExitGeneral)
	}
}
