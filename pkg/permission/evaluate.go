package permission

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config contains options for the Evaluator.
type Config struct {
	// Logger for structured decision logging. If nil, uses slog.Default().
	Logger *slog.Logger

	// Dev enables advisory diagnostics. Off by default: production
	// evaluations are silent.
	Dev bool

	// Reporter receives diagnostics. If nil, a slog-backed reporter gated
	// on Dev is used.
	Reporter Reporter
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}

// Evaluator decides whether a held permission set satisfies a requirement
// expression. All decisions in the package flow through this component.
type Evaluator struct {
	logger   *slog.Logger
	reporter Reporter
}

// New creates an Evaluator with the given configuration.
func New(cfg Config) *Evaluator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reporter := cfg.Reporter
	if reporter == nil {
		reporter = NewLogReporter(logger, cfg.Dev)
	}
	return &Evaluator{logger: logger, reporter: reporter}
}

// Decision is the result of a full requirement check.
type Decision struct {
	// ID identifies this evaluation for log correlation.
	ID string
	// Satisfied is true if the held set satisfies the requirement.
	Satisfied bool
	// Reason is a human-readable explanation for logging.
	Reason string
	// Kind is set when the requirement was rejected by validation.
	Kind Kind
	// Duration is how long the check took.
	Duration time.Duration
}

// Check runs the full pipeline on a raw requirement value: wildcard
// short-circuit, validation, decode, evaluation. Invalid requirements are
// unsatisfied (fail closed), never errors.
//
// The context parameter is available for future use (cancellation, tracing).
func (e *Evaluator) Check(ctx context.Context, requirement any, held []string) Decision {
	start := time.Now()
	decision := Decision{ID: uuid.NewString()}

	switch {
	case requirement == WildcardToken:
		// The wildcard bypasses every other check, including validation.
		decision.Satisfied = true
		decision.Reason = "wildcard requirement"

	default:
		if result := Validate(requirement); !result.Valid {
			e.reporter.Report(ctx, result.Diagnostic())
			decision.Reason = fmt.Sprintf("invalid requirement: %s", result.Detail)
			decision.Kind = result.Kind
			break
		}
		decision.Satisfied = e.Evaluate(ctx, Decode(requirement), held)
		if decision.Satisfied {
			decision.Reason = "requirement satisfied"
		} else {
			decision.Reason = "requirement not satisfied"
		}
	}

	decision.Duration = time.Since(start)
	e.logDecision(ctx, decision, held)
	return decision
}

// Evaluate interprets a decoded expression against the held snapshot.
// It is a pure function of its inputs: no mutation, no errors, no panics.
// Malformed branches and unknown modes deny locally with a diagnostic.
func (e *Evaluator) Evaluate(ctx context.Context, expr Expression, held []string) bool {
	switch node := expr.(type) {
	case Wildcard:
		return true

	case Single:
		return slices.Contains(held, node.Permission)

	case List:
		for _, item := range node.Items {
			if e.Evaluate(ctx, item, held) {
				return true
			}
		}
		return false

	case Group:
		return e.evaluateGroup(ctx, node, held)

	case invalid:
		e.reporter.Report(ctx, node.diag)
		return false

	case nil:
		e.reporter.Report(ctx, Diagnostic{
			Kind:   KindMissingValue,
			Detail: "nil expression",
		})
		return false

	default:
		e.reporter.Report(ctx, Diagnostic{
			Kind:   KindUnsupportedType,
			Detail: fmt.Sprintf("unsupported expression type %T", expr),
		})
		return false
	}
}

func (e *Evaluator) evaluateGroup(ctx context.Context, g Group, held []string) bool {
	if !g.Mode.Recognized() {
		// Validation catches this for top-level groups; groups nested in a
		// list reach here.
		e.reporter.Report(ctx, Diagnostic{
			Kind:   KindUnknownMode,
			Detail: fmt.Sprintf("unknown match mode %q", g.Mode),
		})
		return false
	}
	if len(g.Permissions) == 0 {
		// Vacuously unsatisfied for every mode. See Group.
		return false
	}

	switch g.Mode {
	case ModeAnd:
		for _, p := range g.Permissions {
			if !slices.Contains(held, p) {
				return false
			}
		}
		return true

	case ModeOr, ModeExact:
		for _, p := range g.Permissions {
			if slices.Contains(held, p) {
				return true
			}
		}
		return false

	case ModeStartWith:
		return anyHeldMatch(g.Permissions, held, strings.HasPrefix)

	case ModeEndWith:
		return anyHeldMatch(g.Permissions, held, strings.HasSuffix)

	case ModeRegex:
		return e.anyRegexMatch(ctx, g.Permissions, held)
	}
	return false
}

// anyHeldMatch reports whether any (pattern, held) pair satisfies match.
// First hit wins; order is not observable since matching is side-effect-free.
func anyHeldMatch(patterns, held []string, match func(heldPerm, pattern string) bool) bool {
	for _, pattern := range patterns {
		for _, heldPerm := range held {
			if match(heldPerm, pattern) {
				return true
			}
		}
	}
	return false
}

// anyRegexMatch compiles each pattern and searches it against each held
// permission. A pattern that fails to compile contributes false and a
// diagnostic; remaining patterns still run. Matching is an unanchored
// substring search, not a full-string match.
func (e *Evaluator) anyRegexMatch(ctx context.Context, patterns, held []string) bool {
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			e.reporter.Report(ctx, Diagnostic{
				Kind:   KindRegexCompileFailure,
				Detail: fmt.Sprintf("pattern %q: %v", pattern, err),
			})
			continue
		}
		for _, heldPerm := range held {
			if re.MatchString(heldPerm) {
				return true
			}
		}
	}
	return false
}

// logDecision logs the evaluation outcome with structured fields.
func (e *Evaluator) logDecision(ctx context.Context, d Decision, held []string) {
	e.logger.DebugContext(ctx, "permission decision",
		"evaluation_id", d.ID,
		"satisfied", d.Satisfied,
		"reason", d.Reason,
		"held_count", len(held),
		"duration_us", d.Duration.Microseconds(),
	)
}
