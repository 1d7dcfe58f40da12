package permission

// WildcardToken is the sentinel requirement value that is always satisfied,
// regardless of the held permission set. It short-circuits validation and
// evaluation alike.
const WildcardToken = "*"

// MatchMode selects the comparison strategy a Group applies to its
// permission strings.
type MatchMode string

const (
	// ModeAnd requires every group permission to be an exact member of the
	// held set.
	ModeAnd MatchMode = "and"
	// ModeOr requires at least one group permission to be an exact member
	// of the held set.
	ModeOr MatchMode = "or"
	// ModeExact is behaviorally identical to ModeOr. Both are recognized
	// because requirement expressions in the wild use either spelling.
	ModeExact MatchMode = "exact"
	// ModeStartWith matches when some held permission has one of the group
	// strings as a prefix.
	ModeStartWith MatchMode = "startWith"
	// ModeEndWith matches when some held permission has one of the group
	// strings as a suffix.
	ModeEndWith MatchMode = "endWith"
	// ModeRegex compiles each group string as a regular expression and
	// matches it as an unanchored search against each held permission.
	ModeRegex MatchMode = "regex"
)

// Recognized reports whether m is one of the six supported match modes.
func (m MatchMode) Recognized() bool {
	switch m {
	case ModeAnd, ModeOr, ModeExact, ModeStartWith, ModeEndWith, ModeRegex:
		return true
	}
	return false
}

// Expression is a decoded permission requirement. The concrete types are
// Wildcard, Single, List, and Group; Decode is the only constructor for
// arbitrary input, so downstream code never inspects raw dynamic values.
type Expression interface {
	isExpression()
}

// Wildcard is the always-satisfied requirement ("*").
type Wildcard struct{}

// Single is satisfied iff its permission is an exact member of the held set.
type Single struct {
	Permission string
}

// List is satisfied iff any item is satisfied (OR-composition over arbitrary
// child expressions, including nested groups).
type List struct {
	Items []Expression
}

// Group applies Mode to Permissions against the held set. An empty
// Permissions slice is unsatisfied for every mode, including ModeAnd;
// a group that requires nothing authorizes nothing.
type Group struct {
	Permissions []string
	Mode        MatchMode
}

// invalid marks a subtree whose shape could not be decoded. It evaluates to
// false and surfaces its diagnostic, so malformed branches deny locally
// without aborting the rest of the expression.
type invalid struct {
	diag Diagnostic
}

func (Wildcard) isExpression() {}
func (Single) isExpression()   {}
func (List) isExpression()     {}
func (Group) isExpression()    {}
func (invalid) isExpression()  {}
