// Package htmlsanitize reduces announcement messages to the text a browser
// would show if the message were dropped into a page.
//
// Stored messages are kept exactly as the teacher sent them. This package is
// only used where a message is summarized for people reading the audit trail.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	strict     *bluemonday.Policy
)

func policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// IsPlainText reports whether s contains nothing that looks like a tag.
// A bare "<" or ">" used as a comparison does not count.
func IsPlainText(s string) bool {
	for i := 0; i < len(s)-1; i++ {
		if s[i] != '<' {
			continue
		}
		c := s[i+1]
		if c == '/' || c == '!' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

// VisibleText returns the text a reader would see once s is rendered as HTML:
// tags and script bodies removed, entities decoded, whitespace collapsed.
// Plain text is only whitespace-collapsed.
func VisibleText(s string) string {
	if !IsPlainText(s) {
		s = html.UnescapeString(policy().Sanitize(s))
	}
	return strings.Join(strings.Fields(s), " ")
}

// Preview returns VisibleText(s) cut to at most max runes. A cut is marked
// with a trailing "...". max <= 0 means no limit.
func Preview(s string, max int) string {
	v := VisibleText(s)
	runes := []rune(v)
	if max <= 0 || len(runes) <= max {
		return v
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}
