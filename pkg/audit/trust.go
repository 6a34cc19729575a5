package audit

import (
	"context"
	"net/url"
	"strings"

	"github.com/K-Bak/geo-checker/models"
	"github.com/K-Bak/geo-checker/pkg/extract"
)

// maxTrustPages bounds the shallow crawl: one contact, one about, one
// privacy page at most.
const maxTrustPages = 3

// trustKeys fixes the crawl order so the page budget is spent on the most
// valuable targets first.
var trustKeys = []string{"contact", "about", "privacy"}

// crawlTrustPages picks one internal link per trust-page kind and fetches it,
// extracting only the signals used for cross-page validation.
func (a *Analyzer) crawlTrustPages(ctx context.Context, res models.FetchResult) []models.TrustPage {
	internal, _ := extract.Links(res.HTML, res.FinalURL)
	targets := trustTargets(internal, res.FinalURL, map[string][]string{
		"contact": a.Patterns.Table.ContactHints,
		"about":   a.Patterns.Table.AboutHints,
		"privacy": a.Patterns.Table.PrivacyHints,
	})

	var pages []models.TrustPage
	for _, key := range trustKeys {
		target, ok := targets[key]
		if !ok {
			continue
		}
		if len(pages) == maxTrustPages {
			break
		}
		fetched := a.Fetcher.Fetch(ctx, target)
		a.Logger.Debug("trust page fetched", "kind", key, "url", target, "status", fetched.StatusCode)

		tp := models.TrustPage{Key: key, URL: target, Status: fetched.StatusCode}
		if fetched.HTML != "" {
			tp.NAP = extract.NAPSignals(fetched.HTML, a.Patterns)
			types, objects := extract.FlattenSchemaTypes(extract.JSONLD(fetched.HTML))
			tp.SchemaTypes = types
			tp.OrgObject = extract.FindOrgLike(objects)
		}
		pages = append(pages, tp)
	}
	return pages
}

// trustTargets maps each trust-page kind to the first internal link whose
// path matches one of its hints. The page's own URL is never a target.
func trustTargets(internal []string, selfURL string, hints map[string][]string) map[string]string {
	targets := map[string]string{}
	for _, link := range internal {
		if strings.EqualFold(strings.TrimRight(link, "/"), strings.TrimRight(selfURL, "/")) {
			continue
		}
		path := linkPath(link)
		for key, hintList := range hints {
			if _, taken := targets[key]; taken {
				continue
			}
			for _, h := range hintList {
				if strings.Contains(path, strings.ToLower(h)) {
					targets[key] = link
					break
				}
			}
		}
	}
	return targets
}

func linkPath(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return strings.ToLower(link)
	}
	return strings.ToLower(u.Path)
}
