package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentSelectors are tried in order; the first with text wins.
var contentSelectors = []string{"article", "main", "body"}

// ExtractHTMLText returns the visible text of an HTML document, one block
// per line.
func ExtractHTMLText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript, template").Remove()
	// Block elements would otherwise glue adjacent words together.
	doc.Find("p, div, li, br, h1, h2, h3, h4, h5, h6, tr, blockquote, pre").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	for _, sel := range contentSelectors {
		content := doc.Find(sel)
		if content.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(content.Text()); text != "" {
			return text, nil
		}
	}
	return strings.TrimSpace(doc.Text()), nil
}
