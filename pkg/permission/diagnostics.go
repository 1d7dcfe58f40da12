package permission

import (
	"context"
	"log/slog"
	"sync"
)

// Kind classifies a diagnostic. Kinds are stable identifiers: hosts may
// match on them to translate or aggregate diagnostics.
type Kind string

const (
	KindMissingValue             Kind = "missing_value"
	KindMalformedArrayItem       Kind = "malformed_array_item"
	KindMissingFields            Kind = "missing_fields"
	KindPermissionsNotArray      Kind = "permissions_not_array"
	KindUnknownMode              Kind = "unknown_mode"
	KindUnsupportedType          Kind = "unsupported_type"
	KindRegexCompileFailure      Kind = "regex_compile_failure"
	KindPermissionsNotConfigured Kind = "permissions_not_configured"
	KindUnexpectedFailure        Kind = "unexpected_evaluation_failure"
)

// Diagnostic describes a structural or evaluation problem. Diagnostics are
// advisory: they explain why a requirement (or one of its branches) was
// treated as unsatisfied, and are never propagated as errors.
type Diagnostic struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Detail string `json:"detail" yaml:"detail"`
}

// Reporter receives diagnostics emitted during validation and evaluation.
// Implementations must be safe for concurrent use.
type Reporter interface {
	Report(ctx context.Context, d Diagnostic)
}

// logReporter logs diagnostics through slog, but only in dev mode.
// Production evaluations stay silent.
type logReporter struct {
	logger *slog.Logger
	dev    bool
}

// NewLogReporter returns a Reporter that logs diagnostics at Warn level
// when dev is true and discards them otherwise. A nil logger uses
// slog.Default().
func NewLogReporter(logger *slog.Logger, dev bool) Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &logReporter{logger: logger, dev: dev}
}

func (r *logReporter) Report(ctx context.Context, d Diagnostic) {
	if !r.dev {
		return
	}
	r.logger.WarnContext(ctx, "permission requirement diagnostic",
		"kind", string(d.Kind),
		"detail", d.Detail,
	)
}

// Recorder collects diagnostics in memory. Intended for tests and for hosts
// that surface diagnostics through their own channels.
type Recorder struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func (r *Recorder) Report(_ context.Context, d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = append(r.diags, d)
}

// Diagnostics returns a copy of everything reported so far.
func (r *Recorder) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}

// Kinds returns just the kinds, in report order.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Kind, len(r.diags))
	for i, d := range r.diags {
		out[i] = d.Kind
	}
	return out
}
