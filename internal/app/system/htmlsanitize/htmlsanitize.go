// Package htmlsanitize cleans caller-supplied text before it is stored.
// Document names must end up as plain text; descriptions may keep a
// limited set of formatting tags.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	once.Do(func() {
		ugc = bluemonday.UGCPolicy()
		strict = bluemonday.StrictPolicy()
	})
	return ugc, strict
}

// Sanitize removes dangerous markup from user-generated content while
// keeping common formatting (paragraphs, emphasis, lists, links).
func Sanitize(s string) string {
	p, _ := policies()
	return p.Sanitize(s)
}

// Strip removes all markup and returns plain text. Entities introduced
// by the sanitizer are decoded back so stored values stay literal.
func Strip(s string) string {
	_, p := policies()
	return strings.TrimSpace(html.UnescapeString(p.Sanitize(s)))
}
