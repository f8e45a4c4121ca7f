package content

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy is the single allow-list applied to post bodies. Rich-text tags
// plus images; image tags keep only presentational attributes; URLs are
// restricted to http, https, data, and mailto so a stored javascript: URI
// can never reach a template.
var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "hr",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"strong", "b", "em", "i", "u", "s", "del", "mark", "sub", "sup",
		"blockquote", "pre", "code",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tr", "th", "td",
		"figure", "figcaption", "span", "div",
	)

	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height", "loading").OnElements("img")

	p.AllowURLSchemes("http", "https", "data", "mailto")
	p.RequireParseableURLs(true)

	return p
}

// Sanitize strips unsafe markup from a post body before it is injected into
// rendered HTML. Empty input yields an empty string.
//
// Post bodies are authored by privileged but not fully trusted admin users,
// and may predate the sanitizer or have been imported from an external
// store, so this runs on every render path rather than at write time.
// Altered content raises no signal; unsafe markup is dropped silently.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return policy.Sanitize(html)
}
