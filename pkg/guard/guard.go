package guard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/keroloszakaria/permgate/pkg/permission"
)

// Element is the minimal view of a presentation-tree node the guard needs:
// the ability to remove it. Detach must be idempotent (a no-op when the
// element is already detached or has no parent).
type Element interface {
	Detach()
}

// Config contains options for a Guard.
type Config struct {
	// Source supplies held permissions. May be nil at construction and set
	// later with SetSource; decisions made before a source is configured
	// are denied with a diagnostic.
	Source Source

	// Logger for structured decision logging. If nil, uses slog.Default().
	Logger *slog.Logger

	// Dev enables advisory diagnostics. Off by default.
	Dev bool

	// Reporter receives diagnostics. If nil, a slog-backed reporter gated
	// on Dev is used.
	Reporter permission.Reporter

	// Audit, when non-nil, records every decision.
	Audit AuditLogger
}

// Guard evaluates element requirements against the configured source.
// All element visibility decisions flow through Attach.
type Guard struct {
	mu     sync.RWMutex
	source Source

	eval     *permission.Evaluator
	reporter permission.Reporter
	logger   *slog.Logger
	audit    AuditLogger
}

// New creates a Guard with the given configuration.
func New(cfg Config) *Guard {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reporter := cfg.Reporter
	if reporter == nil {
		reporter = permission.NewLogReporter(logger, cfg.Dev)
	}
	return &Guard{
		source: cfg.Source,
		eval: permission.New(permission.Config{
			Logger:   logger,
			Dev:      cfg.Dev,
			Reporter: reporter,
		}),
		reporter: reporter,
		logger:   logger,
		audit:    cfg.Audit,
	}
}

// SetSource replaces the held-permission source. Last write wins; there is
// no merging with the previous source.
func (g *Guard) SetSource(s Source) {
	g.mu.Lock()
	g.source = s
	g.mu.Unlock()
}

func (g *Guard) currentSource() Source {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.source
}

// Attach decides whether an element may stay in its presentation tree. It
// runs once, when the host attaches the element, with the element's declared
// requirement. Unsatisfied elements are detached; satisfied elements are
// left alone. Returns the decision for hosts that want it.
//
// Attach never panics: failures out of the source, the evaluator, or the
// element's Detach are recovered, reported, and treated as unsatisfied.
func (g *Guard) Attach(ctx context.Context, el Element, requirement any) (satisfied bool) {
	defer func() {
		if r := recover(); r != nil {
			g.reporter.Report(ctx, permission.Diagnostic{
				Kind:   permission.KindUnexpectedFailure,
				Detail: fmt.Sprintf("recovered: %v", r),
			})
			satisfied = false
			g.safeDetach(ctx, el)
		}
	}()

	satisfied = g.decide(ctx, requirement)
	if !satisfied && el != nil {
		el.Detach()
	}
	return satisfied
}

// Allowed reports whether the requirement is satisfied by the current held
// set, without touching any element. Same decision pipeline as Attach.
func (g *Guard) Allowed(ctx context.Context, requirement any) (satisfied bool) {
	defer func() {
		if r := recover(); r != nil {
			g.reporter.Report(ctx, permission.Diagnostic{
				Kind:   permission.KindUnexpectedFailure,
				Detail: fmt.Sprintf("recovered: %v", r),
			})
			satisfied = false
		}
	}()
	return g.decide(ctx, requirement)
}

// decide runs the decision pipeline: wildcard short-circuit, configured
// source precondition, then validation and evaluation.
func (g *Guard) decide(ctx context.Context, requirement any) bool {
	start := time.Now()

	// The wildcard is satisfied even before the source precondition: an
	// unguarded element must stay visible on a host that never configured
	// permissions at all.
	if requirement == permission.WildcardToken {
		g.record(ctx, requirement, permission.Decision{
			Satisfied: true,
			Reason:    "wildcard requirement",
			Duration:  time.Since(start),
		})
		return true
	}

	src := g.currentSource()
	if src == nil {
		g.reporter.Report(ctx, permission.Diagnostic{
			Kind:   permission.KindPermissionsNotConfigured,
			Detail: "no held-permission source configured",
		})
		g.record(ctx, requirement, permission.Decision{
			Satisfied: false,
			Reason:    "no held-permission source configured",
			Kind:      permission.KindPermissionsNotConfigured,
			Duration:  time.Since(start),
		})
		return false
	}

	decision := g.eval.Check(ctx, requirement, src.Snapshot())
	g.record(ctx, requirement, decision)
	return decision.Satisfied
}

// record forwards the decision to the audit logger, if one is configured.
func (g *Guard) record(ctx context.Context, requirement any, d permission.Decision) {
	if g.audit == nil {
		return
	}
	if err := g.audit.LogDecision(ctx, newEntry(requirement, d)); err != nil {
		g.logger.WarnContext(ctx, "audit log failed", "error", err)
	}
}

// safeDetach detaches without letting a misbehaving element panic out of
// the recovery path.
func (g *Guard) safeDetach(ctx context.Context, el Element) {
	if el == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			g.reporter.Report(ctx, permission.Diagnostic{
				Kind:   permission.KindUnexpectedFailure,
				Detail: fmt.Sprintf("detach recovered: %v", r),
			})
		}
	}()
	el.Detach()
}
