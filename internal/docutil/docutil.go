package docutil

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// DescriptionToMarkdown renders a collection or process description for
// terminal display. Backends are supposed to return CommonMark, but several
// return raw HTML; those are converted with the html-to-markdown library.
// Plain text and Markdown pass through unchanged, as does input the converter
// cannot handle.
func DescriptionToMarkdown(description string) string {
	if !looksLikeHTML(description) {
		return description
	}
	markdown, err := htmltomarkdown.ConvertString(description)
	if err != nil {
		return description
	}
	return strings.TrimSpace(markdown)
}

// looksLikeHTML reports whether the description contains HTML element tags.
// A bare "<" (e.g. "values < 0.3") is not enough to trigger conversion.
func looksLikeHTML(s string) bool {
	for _, tag := range []string{"<p>", "<p ", "<a ", "<br", "<ul>", "<ol>", "<li>", "<em>", "<strong>", "<code>", "<h1", "<h2", "<h3", "<div", "<span"} {
		if strings.Contains(strings.ToLower(s), tag) {
			return true
		}
	}
	return false
}
