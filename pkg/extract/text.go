// Package extract implements the signal extractors: pure functions that read
// a raw HTML document and return typed facts for the scoring engine. Each
// extractor parses its own document so a failure in one never poisons the
// others.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/K-Bak/geo-checker/models"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

func parseDoc(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// TextAndTitle returns the cleaned visible text and the page title. Script,
// style, noscript, svg and iframe subtrees are dropped, and the contents of a
// <main> or <article> container win over the full body to cut navigation and
// footer noise.
func TextAndTitle(html string) (text, title string) {
	doc, err := parseDoc(html)
	if err != nil {
		return "", ""
	}

	title = normalizeText(doc.Find("title").First().Text())

	doc.Find("script,style,noscript,svg,iframe").Remove()

	container := doc.Find("main").First()
	if container.Length() == 0 {
		container = doc.Find("article").First()
	}
	if container.Length() == 0 {
		container = doc.Find("body").First()
	}
	if container.Length() > 0 {
		text = container.Text()
	} else {
		text = doc.Text()
	}
	return normalizeText(text), title
}

// Headings collects non-empty h1/h2/h3 texts in document order.
func Headings(html string) models.Headings {
	var out models.Headings
	doc, err := parseDoc(html)
	if err != nil {
		return out
	}
	collect := func(tag string) []string {
		var hs []string
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			if t := normalizeText(s.Text()); t != "" {
				hs = append(hs, t)
			}
		})
		return hs
	}
	out.H1 = collect("h1")
	out.H2 = collect("h2")
	out.H3 = collect("h3")
	return out
}

// Byline runs the readability pass and returns the detected author byline,
// a stronger author signal than a bare text match but weaker than Person
// schema. Returns "" when readability cannot process the page.
func Byline(html, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		u = &url.URL{}
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), u)
	if err != nil {
		return ""
	}
	return normalizeText(article.Byline)
}

// normalizeText collapses runs of whitespace to single spaces and trims.
func normalizeText(input string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(input, " "))
}
