package report

import "github.com/microcosm-cc/bluemonday"

// introPolicy is a narrowed [bluemonday.UGCPolicy] for the page intro.
// Differences:
//
//   - No buttons, images or forms, so the intro cannot add show/hide
//     controls or targets of its own
//   - No class attributes, so the intro cannot carry the control marker
//   - Inline colours on span and pre for highlighted code blocks
var introPolicy = newIntroPolicy()

func newIntroPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()

	policy.AllowStandardAttributes()

	policy.AllowStandardURLs()
	policy.RequireNoReferrerOnLinks(true)

	policy.AllowElements(
		"b",
		"blockquote",
		"br",
		"code",
		"del",
		"div",
		"em",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"hr",
		"i",
		"p",
		"pre",
		"s",
		"span",
		"strong",
		"sub",
		"sup",
	)

	policy.AllowAttrs("href").
		OnElements("a")

	policy.AllowStyles(
		"color",
		"background-color",
		"font-style",
		"font-weight",
		"text-decoration",
	).OnElements("span", "pre")

	policy.AllowLists()
	policy.AllowTables()

	return policy
}
