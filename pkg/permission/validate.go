package permission

import "fmt"

// Result is the outcome of validating a raw requirement value.
type Result struct {
	Valid  bool
	Kind   Kind   // diagnostic kind when invalid
	Detail string // human-readable explanation when invalid
}

// Diagnostic converts an invalid Result into its advisory diagnostic.
func (r Result) Diagnostic() Diagnostic {
	return Diagnostic{Kind: r.Kind, Detail: r.Detail}
}

func validResult() Result {
	return Result{Valid: true}
}

func invalidResult(kind Kind, detail string) Result {
	return Result{Kind: kind, Detail: detail}
}

// Validate checks the structural well-formedness of a raw requirement value.
// It decides nothing about authorization: a Valid result only means the
// value is safe to hand to the evaluator.
//
// Validation is deliberately two-tier. A top-level group object is checked
// deeply (fields present, permissions is an array, mode recognized), while
// items of a top-level array are only checked shallowly (string, or object
// carrying both "permissions" and "mode" keys). Deeper problems inside
// nested groups (a bogus mode, non-string permissions) surface at
// evaluation time as branch-local denials.
//
// Callers must treat any invalid result as "requirement unsatisfied".
func Validate(v any) Result {
	switch value := v.(type) {
	case nil:
		return invalidResult(KindMissingValue, "requirement value is missing")

	case string:
		// Covers both the wildcard and a bare permission string; there is
		// no further structure to check.
		return validResult()

	case []any:
		for i, item := range value {
			if !wellFormedItem(item) {
				return invalidResult(KindMalformedArrayItem,
					fmt.Sprintf("array item %d must be a string or an object with \"permissions\" and \"mode\"", i))
			}
		}
		return validResult()

	case []string:
		return validResult()

	case map[string]any:
		return validateGroupObject(value)

	default:
		return invalidResult(KindUnsupportedType,
			fmt.Sprintf("unsupported requirement type %T", v))
	}
}

// wellFormedItem is the shallow array-item check: a string, or an object
// that has both group keys. Key *values* are not inspected here.
func wellFormedItem(item any) bool {
	if _, ok := item.(string); ok {
		return true
	}
	obj, ok := item.(map[string]any)
	if !ok {
		return false
	}
	_, hasPerms := obj["permissions"]
	_, hasMode := obj["mode"]
	return hasPerms && hasMode
}

// validateGroupObject applies the deep checks for a top-level group.
func validateGroupObject(obj map[string]any) Result {
	if !truthy(obj["permissions"]) || !truthy(obj["mode"]) {
		return invalidResult(KindMissingFields,
			"group object requires non-empty \"permissions\" and \"mode\"")
	}

	switch obj["permissions"].(type) {
	case []any, []string:
	default:
		return invalidResult(KindPermissionsNotArray,
			fmt.Sprintf("\"permissions\" must be an array, got %T", obj["permissions"]))
	}

	mode, _ := obj["mode"].(string)
	if !MatchMode(mode).Recognized() {
		return invalidResult(KindUnknownMode,
			fmt.Sprintf("unknown match mode %q", obj["mode"]))
	}

	return validResult()
}

// truthy reports whether a group field is present and non-empty. Absent
// keys, empty strings, and empty arrays all count as missing.
func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		return value != ""
	case []any:
		return len(value) > 0
	case []string:
		return len(value) > 0
	default:
		return true
	}
}
