package render

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// PlainText derives a plain-text rendition of a rendered edition: style
// and script blocks are removed entirely, remaining tag boundaries
// collapse to newlines, entities are unescaped, and blank runs collapse
// to single blank lines.
func PlainText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	doc.Find("style, script").Remove()

	stripped, err := doc.Html()
	if err != nil {
		return "", err
	}

	text := tagPattern.ReplaceAllString(stripped, "\n")
	text = html.UnescapeString(text)

	lines := make([]string, 0, 32)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
