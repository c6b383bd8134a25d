package utils

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlTags     = regexp.MustCompile(`<[^>]*>`)
	htmlEntities = regexp.MustCompile(`&[^\s;]+;`)

	policyOnce sync.Once
	policy     *bluemonday.Policy

	strictPolicy = bluemonday.StrictPolicy()
)

// contentPolicy extends the UGC policy with the tags the editor emits.
// Links are forced to open in a new tab with noopener/noreferrer.
func contentPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()

		p.AllowElements("figure", "figcaption", "h1", "h2", "h3",
			"section", "article", "aside", "nav", "header", "footer",
			"details", "summary", "caption", "colgroup", "col")

		p.AllowAttrs("src", "alt", "width", "height", "loading").OnElements("img")
		p.AllowAttrs("src", "width", "height", "frameborder", "allow", "allowfullscreen").OnElements("iframe")
		p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
		p.AllowAttrs("type", "disabled", "checked").OnElements("input")
		p.AllowAttrs("href", "name", "title").OnElements("a")

		p.AllowURLSchemes("http", "https", "mailto")
		p.AllowDataURIImages()

		p.RequireNoFollowOnLinks(false)
		p.RequireNoReferrerOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)

		policy = p
	})
	return policy
}

// SanitizeHTML decodes entity-escaped editor output and strips anything
// outside the content policy.
func SanitizeHTML(raw string) string {
	return contentPolicy().Sanitize(html.UnescapeString(raw))
}

// PlainText strips markup and entities, used for publish guards and
// autosave "meaningful content" checks.
func PlainText(s string) string {
	noTags := htmlTags.ReplaceAllString(s, "")
	noEntities := htmlEntities.ReplaceAllString(noTags, "")
	return strings.TrimSpace(noEntities)
}

// SanitizeText removes all markup from short user-supplied text such as
// comment names and messages.
func SanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
