package extract

import (
	"strings"

	"github.com/K-Bak/geo-checker/models"
)

// MetaTags reads the meta tags the audit scores on. Absent tags come back as
// empty strings, never as errors.
func MetaTags(html string) models.Meta {
	var out models.Meta
	doc, err := parseDoc(html)
	if err != nil {
		return out
	}

	name := func(n string) string {
		return strings.TrimSpace(doc.Find(`meta[name="` + n + `"]`).First().AttrOr("content", ""))
	}
	prop := func(p string) string {
		return strings.TrimSpace(doc.Find(`meta[property="` + p + `"]`).First().AttrOr("content", ""))
	}

	out.Description = name("description")
	out.Robots = name("robots")
	out.OGTitle = prop("og:title")
	out.OGSiteName = prop("og:site_name")
	out.OGType = prop("og:type")
	out.OGURL = prop("og:url")
	out.OGDescription = prop("og:description")
	out.Canonical = strings.TrimSpace(doc.Find(`link[rel~="canonical"]`).First().AttrOr("href", ""))
	return out
}
