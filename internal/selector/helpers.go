// Package selector builds pattern-DSL text (internal/pattern's input
// language) from the small set of named, parameterized shapes the query
// builder exposes: root, module, class, subclass, attribute, method,
// function, var, and raw pattern text. Each is a Go port of one of
// bowler.query's @selector-decorated template strings, expanded here by
// plain string substitution instead of Python's str.format(**kwargs).
package selector

import "strings"

// DottedParts renders name as a dotted_name pattern fragment: a single
// quoted literal when name has no dot, or a dotted_name< ... > node
// pattern matching the whole chain otherwise — mirrors bowler's
// dotted_parts/helpers.dotted_parts, adapted to internal/pattern's DSL
// text instead of building pytree nodes directly.
func DottedParts(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) == 1 {
		return quote(parts[0])
	}
	return "dotted_name< " + QuotedParts(name) + " >"
}

// QuotedParts renders name's dot-separated parts as a flat sequence of
// quoted literals joined by quoted dots, e.g. "'a' '.' 'b' '.' 'c'" —
// mirrors helpers.quoted_parts. Used inline inside a larger pattern that
// already supplies the enclosing node type.
func QuotedParts(name string) string {
	parts := strings.Split(name, ".")
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = quote(p)
	}
	return strings.Join(quoted, " '.' ")
}

// PowerParts renders name as the sequence of children a power< ... > node
// needs to match a dotted attribute-access chain: the first part as a bare
// literal, every following part wrapped in its own trailer< '.' part >
// group — mirrors helpers.power_parts.
func PowerParts(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) == 1 {
		return quote(parts[0])
	}
	var sb strings.Builder
	sb.WriteString(quote(parts[0]))
	for _, p := range parts[1:] {
		sb.WriteString(" trailer< '.' ")
		sb.WriteString(quote(p))
		sb.WriteString(" >")
	}
	return sb.String()
}

func quote(s string) string { return "'" + s + "'" }
