// Package htmlsanitize strips dangerous markup from user-generated
// content before it is stored. Chat messages pass through Sanitize on
// every send.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy allows basic formatting but removes scripts, event handler
// attributes, and javascript: URLs.
var policy = bluemonday.UGCPolicy()

// Sanitize returns s with disallowed markup removed. Plain text passes
// through unchanged.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}
