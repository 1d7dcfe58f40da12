package permission

import "fmt"

// Decode converts a raw requirement value into the Expression union. It is
// the single point where external shapes become internal types; after
// Decode, evaluation never inspects dynamic values again.
//
// Decode never fails. Subtrees that cannot be decoded become invalid nodes
// that evaluate to false and report their diagnostic, so one malformed
// branch denies locally instead of poisoning the whole expression. Callers
// that want up-front rejection of malformed input run Validate first.
func Decode(v any) Expression {
	if expr, ok := v.(Expression); ok {
		return expr
	}

	switch value := v.(type) {
	case nil:
		return invalid{diag: Diagnostic{
			Kind:   KindMissingValue,
			Detail: "requirement value is missing",
		}}

	case string:
		if value == WildcardToken {
			return Wildcard{}
		}
		return Single{Permission: value}

	case []any:
		items := make([]Expression, 0, len(value))
		for i, item := range value {
			items = append(items, decodeItem(item, i))
		}
		return List{Items: items}

	case []string:
		items := make([]Expression, 0, len(value))
		for _, s := range value {
			items = append(items, Single{Permission: s})
		}
		return List{Items: items}

	case map[string]any:
		return decodeGroup(value)

	default:
		return invalid{diag: Diagnostic{
			Kind:   KindUnsupportedType,
			Detail: fmt.Sprintf("unsupported requirement type %T", v),
		}}
	}
}

// decodeItem decodes one element of a requirement list. Strings become
// Single, objects become groups, anything else is invalid. The wildcard is
// only a sentinel at the top level: "*" inside a list is an ordinary
// permission string tested for exact membership.
func decodeItem(item any, index int) Expression {
	switch value := item.(type) {
	case string:
		return Single{Permission: value}
	case map[string]any:
		return decodeGroup(value)
	default:
		return invalid{diag: Diagnostic{
			Kind:   KindMalformedArrayItem,
			Detail: fmt.Sprintf("array item %d has unsupported type %T", index, item),
		}}
	}
}

// decodeGroup decodes a group object. Mode validity is deliberately NOT
// checked here: an unrecognized mode is carried through and reported at
// evaluation time, preserving the shallow-then-deep validation split.
func decodeGroup(obj map[string]any) Expression {
	permsRaw, hasPerms := obj["permissions"]
	modeRaw, hasMode := obj["mode"]
	if !hasPerms || !hasMode {
		return invalid{diag: Diagnostic{
			Kind:   KindMissingFields,
			Detail: "group object requires \"permissions\" and \"mode\"",
		}}
	}

	perms, ok := stringSlice(permsRaw)
	if !ok {
		return invalid{diag: Diagnostic{
			Kind:   KindPermissionsNotArray,
			Detail: fmt.Sprintf("group \"permissions\" must be an array of strings, got %T", permsRaw),
		}}
	}

	mode, ok := modeRaw.(string)
	if !ok {
		return invalid{diag: Diagnostic{
			Kind:   KindUnknownMode,
			Detail: fmt.Sprintf("group \"mode\" must be a string, got %T", modeRaw),
		}}
	}

	return Group{Permissions: perms, Mode: MatchMode(mode)}
}

// stringSlice coerces the permissions field into []string. Accepts both
// []string (Go callers) and []any of strings (decoded JSON).
func stringSlice(v any) ([]string, bool) {
	switch value := v.(type) {
	case []string:
		return value, true
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
