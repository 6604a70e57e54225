// Package normalize standardizes user-entered identity fields before
// they are stored or used in queries.
package normalize

import "strings"

// Email lowercases and trims an email address. All email comparisons in
// the stores go through this, so lookups are case-insensitive.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Username lowercases and trims a chosen username.
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
