package guard

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/keroloszakaria/permgate/pkg/permission"
)

// fakeElement counts detach calls so tests can assert on idempotence and
// on whether the guard touched the element at all.
type fakeElement struct {
	detached int
}

func (f *fakeElement) Detach() { f.detached++ }

func newTestGuard(t *testing.T, cfg Config) (*Guard, *permission.Recorder) {
	t.Helper()
	rec := &permission.Recorder{}
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg.Reporter = rec
	return New(cfg), rec
}

func TestAttach_SatisfiedElementStaysAttached(t *testing.T) {
	t.Parallel()
	t.Log("Testing: element with a held requirement is left in the tree")

	g, _ := newTestGuard(t, Config{Source: Static{"read", "write"}})
	el := &fakeElement{}

	if !g.Attach(context.Background(), el, "read") {
		t.Error("Expected satisfied for held permission")
	}
	if el.detached != 0 {
		t.Errorf("Expected element untouched, got %d detach calls", el.detached)
	}
}

func TestAttach_UnsatisfiedElementIsDetached(t *testing.T) {
	t.Parallel()
	t.Log("Testing: element whose requirement is not held gets detached")

	g, _ := newTestGuard(t, Config{Source: Static{"read", "write"}})
	el := &fakeElement{}

	if g.Attach(context.Background(), el, "admin") {
		t.Error("Expected unsatisfied for permission not held")
	}
	if el.detached != 1 {
		t.Errorf("Expected exactly one detach call, got %d", el.detached)
	}
}

func TestAttach_UnconfiguredSourceDenies(t *testing.T) {
	t.Parallel()
	t.Log("Testing: no configured source denies with a diagnostic")

	g, rec := newTestGuard(t, Config{})
	el := &fakeElement{}

	if g.Attach(context.Background(), el, "read") {
		t.Error("Expected deny when no source is configured")
	}
	if el.detached != 1 {
		t.Errorf("Expected element detached, got %d detach calls", el.detached)
	}

	kinds := rec.Kinds()
	if len(kinds) != 1 || kinds[0] != permission.KindPermissionsNotConfigured {
		t.Errorf("Expected one PermissionsNotConfigured diagnostic, got %v", kinds)
	}
}

func TestAttach_WildcardBypassesSourcePrecondition(t *testing.T) {
	t.Parallel()
	t.Log("Testing: wildcard is satisfied even with no source configured")

	g, rec := newTestGuard(t, Config{})
	el := &fakeElement{}

	if !g.Attach(context.Background(), el, "*") {
		t.Error("Expected wildcard satisfied without a configured source")
	}
	if el.detached != 0 {
		t.Errorf("Expected element untouched, got %d detach calls", el.detached)
	}
	if len(rec.Kinds()) != 0 {
		t.Errorf("Expected no diagnostics for the wildcard, got %v", rec.Kinds())
	}
}

func TestAttach_InvalidRequirementFailsClosed(t *testing.T) {
	t.Parallel()
	t.Log("Testing: structurally invalid requirement detaches the element")

	g, rec := newTestGuard(t, Config{Source: Static{"read"}})
	el := &fakeElement{}

	if g.Attach(context.Background(), el, 42) {
		t.Error("Expected deny for unsupported requirement type")
	}
	if el.detached != 1 {
		t.Errorf("Expected element detached, got %d detach calls", el.detached)
	}

	kinds := rec.Kinds()
	if len(kinds) != 1 || kinds[0] != permission.KindUnsupportedType {
		t.Errorf("Expected one UnsupportedType diagnostic, got %v", kinds)
	}
}

func TestAttach_PanicInSourceIsRecovered(t *testing.T) {
	t.Parallel()
	t.Log("Testing: a panicking source is recovered and treated as deny")

	g, rec := newTestGuard(t, Config{
		Source: SourceFunc(func() []string { panic("session gone") }),
	})
	el := &fakeElement{}

	if g.Attach(context.Background(), el, "read") {
		t.Error("Expected deny when the source panics")
	}
	if el.detached != 1 {
		t.Errorf("Expected element detached, got %d detach calls", el.detached)
	}

	kinds := rec.Kinds()
	if len(kinds) != 1 || kinds[0] != permission.KindUnexpectedFailure {
		t.Errorf("Expected one UnexpectedEvaluationFailure diagnostic, got %v", kinds)
	}
}

func TestSetSource_SwapChangesDecisions(t *testing.T) {
	t.Parallel()
	t.Log("Testing: SetSource replaces the held set for subsequent decisions")

	g, _ := newTestGuard(t, Config{Source: Static{"read"}})

	if !g.Allowed(context.Background(), "read") {
		t.Error("Expected satisfied against the initial source")
	}

	g.SetSource(Static{"admin"})

	if g.Allowed(context.Background(), "read") {
		t.Error("Expected unsatisfied after the source was replaced")
	}
	if !g.Allowed(context.Background(), "admin") {
		t.Error("Expected satisfied against the replacement source")
	}
}

func TestCell_SwapIsVisibleAtNextDecision(t *testing.T) {
	t.Parallel()
	t.Log("Testing: a Cell source reflects Set at the next decision")

	cell := NewCell([]string{"read"})
	g, _ := newTestGuard(t, Config{Source: cell})

	if !g.Allowed(context.Background(), "read") {
		t.Error("Expected satisfied before the swap")
	}

	cell.Set([]string{"write"})

	if g.Allowed(context.Background(), "read") {
		t.Error("Expected unsatisfied after the swap")
	}
	if !g.Allowed(context.Background(), "write") {
		t.Error("Expected satisfied for the new held set")
	}
}

func TestAttach_AuditTrail(t *testing.T) {
	t.Parallel()
	t.Log("Testing: every decision lands in the audit log with its verdict")

	audit := &MemoryAuditLogger{}
	g, _ := newTestGuard(t, Config{Source: Static{"read"}, Audit: audit})

	g.Attach(context.Background(), &fakeElement{}, "read")
	g.Attach(context.Background(), &fakeElement{}, "admin")

	entries := audit.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 audit entries, got %d", len(entries))
	}
	if entries[0].Decision != "allow" {
		t.Errorf("Expected first entry allow, got %q", entries[0].Decision)
	}
	if entries[1].Decision != "deny" {
		t.Errorf("Expected second entry deny, got %q", entries[1].Decision)
	}
	if entries[0].Requirement != `"read"` {
		t.Errorf("Expected requirement summary %q, got %q", `"read"`, entries[0].Requirement)
	}
	if entries[0].EvaluationID == "" {
		t.Error("Expected evaluation ID on evaluated decisions")
	}
}

func TestAttach_NestedRequirement(t *testing.T) {
	t.Parallel()
	t.Log("Testing: list requirement with a nested group, end to end")

	g, _ := newTestGuard(t, Config{Source: Static{"y", "z"}})
	el := &fakeElement{}

	requirement := []any{
		"x",
		map[string]any{"permissions": []any{"y", "z"}, "mode": "and"},
	}
	if !g.Attach(context.Background(), el, requirement) {
		t.Error("Expected satisfied: nested and-group fully held")
	}
	if el.detached != 0 {
		t.Errorf("Expected element untouched, got %d detach calls", el.detached)
	}
}
