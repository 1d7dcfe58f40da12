// Package permission evaluates declarative permission requirements against
// an actor's held permission set.
//
// A requirement arrives from the host application as a dynamic value (the
// result of decoding JSON, or a literal built in Go): a bare permission
// string, the wildcard "*", a list mixing strings and match groups, or a
// single match group with a mode. The package decodes that value once at the
// boundary into a closed Expression union, validates its structure, and
// evaluates it against a snapshot of held permissions.
//
// # Fail Closed
//
// Evaluation never returns an error and never panics. Any malformed subtree,
// unknown match mode, or uncompilable regex pattern degrades to "unsatisfied"
// for that branch and emits an advisory diagnostic; the rest of the
// expression still evaluates. A caller that cannot prove a requirement is
// satisfied must treat the guarded content as unauthorized.
//
// # Usage
//
//	eval := permission.New(permission.Config{Dev: true})
//
//	decision := eval.Check(ctx, []any{
//		"billing:read",
//		map[string]any{
//			"permissions": []any{"admin."},
//			"mode":        "startWith",
//		},
//	}, held)
//
//	if !decision.Satisfied {
//		// hide the guarded element
//	}
//
// # Diagnostics
//
// Structural problems are reported through a Reporter. The default reporter
// logs at Warn level only when Config.Dev is true; production evaluations
// are silent. Diagnostics are advisory and never abort an evaluation.
//
// # Thread Safety
//
// Evaluator is safe for concurrent use. Expressions are immutable after
// Decode, and evaluation reads the held snapshot without mutating it.
package permission
