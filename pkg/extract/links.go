package extract

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/K-Bak/geo-checker/pkg/patterns"
)

// OutLinks partitions external links by trust class.
type OutLinks struct {
	HighTrust []string
	Social    []string
	Other     []string
}

// Links partitions the page's anchors into internal and external URLs,
// deduplicated preserving first-seen order. Anchors with empty, mailto:,
// tel:, fragment or javascript: hrefs are skipped. Relative hrefs are always
// internal and resolved against baseURL when one is given.
func Links(html, baseURL string) (internal, external []string) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, nil
	}

	baseHost := hostname(baseURL)
	var base *url.URL
	if baseURL != "" {
		base, _ = url.Parse(baseURL)
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		for _, prefix := range []string{"mailto:", "tel:", "#", "javascript:"} {
			if strings.HasPrefix(href, prefix) {
				return
			}
		}

		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			h := hostname(href)
			if baseHost != "" && h != "" && h == baseHost {
				internal = append(internal, href)
			} else {
				external = append(external, href)
			}
			return
		}

		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}
		internal = append(internal, href)
	})

	return uniq(internal), uniq(external)
}

// SocialLinks returns the external links pointing at known social platforms,
// sorted for stable output.
func SocialLinks(external []string, p *patterns.Compiled) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, u := range external {
		lu := strings.ToLower(u)
		for _, hint := range p.SocialHints {
			if strings.Contains(lu, hint) {
				if _, ok := seen[u]; !ok {
					seen[u] = struct{}{}
					out = append(out, u)
				}
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// ClassifyOutLinks splits external links into high-trust, social and other.
// Social wins over high-trust when both hint lists match.
func ClassifyOutLinks(external []string, p *patterns.Compiled) OutLinks {
	var out OutLinks
	for _, u := range external {
		lu := strings.ToLower(u)
		switch {
		case matchesAny(lu, p.SocialHints):
			out.Social = append(out.Social, u)
		case matchesAny(lu, p.HighTrustHints):
			out.HighTrust = append(out.HighTrust, u)
		default:
			out.Other = append(out.Other, u)
		}
	}
	out.HighTrust = uniq(out.HighTrust)
	out.Social = uniq(out.Social)
	out.Other = uniq(out.Other)
	return out
}

// ExternalCitations counts distinct non-social external links. Social
// profiles are identity signals, not citations.
func ExternalCitations(external []string, p *patterns.Compiled) int {
	c := ClassifyOutLinks(external, p)
	return len(c.HighTrust) + len(c.Other)
}

// HasInternalLinkHint reports whether any internal link matches one of the
// given path hints (about/contact/privacy page discovery).
func HasInternalLinkHint(internal []string, hints []string) bool {
	joined := strings.ToLower(strings.Join(internal, " "))
	for _, hint := range hints {
		if strings.Contains(joined, hint) {
			return true
		}
	}
	return false
}

func matchesAny(s string, hints []string) bool {
	for _, hint := range hints {
		if strings.Contains(s, hint) {
			return true
		}
	}
	return false
}

func hostname(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// uniq deduplicates preserving first-seen order, dropping empties.
func uniq(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
