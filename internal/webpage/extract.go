package webpage

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"vibedezine_server/internal/types"
)

const (
	// DefaultMaxChars bounds extracted text.
	DefaultMaxChars = 8000

	// MinChars is the shortest text worth sending for analysis.
	MinChars = 50

	truncationMarker = "..."
)

// ExtractText strips markup from a page and returns its visible text with
// whitespace collapsed. Text shorter than MinChars is rejected; text longer
// than maxChars is cut and suffixed with "...".
func ExtractText(page string, maxChars int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", &types.Error{Code: types.EINVALID, Message: "Failed to fetch URL content", Status: 400, Err: err}
	}
	doc.Find("script, style, noscript, template").Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		collectText(n, &b)
	}
	text := strings.Join(strings.Fields(b.String()), " ")

	if utf8.RuneCountInString(text) < MinChars {
		return "", &types.Error{Code: types.EINVALID, Message: "Page content too short or empty", Status: 400}
	}

	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return truncate(text, maxChars), nil
}

// collectText writes every text node under n, separating nodes with a space
// so adjacent elements do not run together.
func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

func truncate(s string, maxChars int) string {
	if utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxChars]) + truncationMarker
}
