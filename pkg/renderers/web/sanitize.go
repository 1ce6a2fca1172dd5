package web

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips all markup from submitted values. bluemonday escapes
// what it keeps, so entities are decoded back into plain text.
func sanitizeText(raw string) string {
	if raw == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(textPolicy.Sanitize(raw))
}

// sanitizeName keeps leading and trailing spaces so keystrokes are echoed
// as typed; only markup is dropped.
func sanitizeName(raw string) string {
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	return sanitizeText(raw)
}
