package util

import "github.com/microcosm-cc/bluemonday"

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// SanitizeHTML keeps user-generated-content markup (headings, links, lists)
// while stripping scripts and event handlers. Used for rich body fields.
func SanitizeHTML(s string) string {
	return ugcPolicy.Sanitize(s)
}

// SanitizeText strips all markup. Used for titles, names and other fields
// that must never carry HTML.
func SanitizeText(s string) string {
	return strictPolicy.Sanitize(s)
}
