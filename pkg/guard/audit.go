package guard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/keroloszakaria/permgate/pkg/permission"
)

// Entry records a single visibility decision for audit purposes.
type Entry struct {
	Timestamp    time.Time `json:"timestamp"`
	EvaluationID string    `json:"evaluation_id,omitempty"`
	Requirement  string    `json:"requirement"`
	Decision     string    `json:"decision"` // "allow" or "deny"
	Reason       string    `json:"reason"`
	Kind         string    `json:"kind,omitempty"` // diagnostic kind on validation denials
	DurationUS   int64     `json:"duration_us"`
}

// AuditLogger records guard decisions. Implementations must be safe for
// concurrent use.
type AuditLogger interface {
	LogDecision(ctx context.Context, entry Entry) error
}

func newEntry(requirement any, d permission.Decision) Entry {
	decision := "deny"
	if d.Satisfied {
		decision = "allow"
	}
	return Entry{
		Timestamp:    time.Now().UTC(),
		EvaluationID: d.ID,
		Requirement:  summarize(requirement),
		Decision:     decision,
		Reason:       d.Reason,
		Kind:         string(d.Kind),
		DurationUS:   d.Duration.Microseconds(),
	}
}

// summarize renders the raw requirement compactly for the audit trail.
func summarize(requirement any) string {
	if b, err := json.Marshal(requirement); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", requirement)
}

// SlogAuditLogger writes decisions to a structured log.
type SlogAuditLogger struct {
	logger *slog.Logger
}

// NewSlogAuditLogger creates an audit logger backed by slog. A nil logger
// uses slog.Default().
func NewSlogAuditLogger(logger *slog.Logger) *SlogAuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAuditLogger{logger: logger}
}

func (l *SlogAuditLogger) LogDecision(ctx context.Context, entry Entry) error {
	l.logger.InfoContext(ctx, "guard decision",
		"evaluation_id", entry.EvaluationID,
		"requirement", entry.Requirement,
		"decision", entry.Decision,
		"reason", entry.Reason,
		"kind", entry.Kind,
		"duration_us", entry.DurationUS,
	)
	return nil
}

// MemoryAuditLogger keeps decisions in memory. Intended for tests and for
// hosts that expose the trail through their own surface; nothing is
// persisted.
type MemoryAuditLogger struct {
	mu      sync.Mutex
	entries []Entry
}

func (l *MemoryAuditLogger) LogDecision(_ context.Context, entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

// Entries returns a copy of the recorded decisions.
func (l *MemoryAuditLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
