// Package findings turns the scored signals into a prioritized, deduplicated
// action list. Hand-authored checks come first; unmet requirements that no
// authored finding covers are backfilled with derived severity and effort.
package findings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/K-Bak/geo-checker/models"
	"github.com/K-Bak/geo-checker/pkg/score"
)

const (
	maxQuickWins       = 6
	quickWinMinImpact  = 4
	quickWinMaxMinutes = 30
)

// Build produces the full finding list for a scored page.
func Build(sig score.Signals, reqs []models.Requirement) []models.Finding {
	out := authored(sig)
	out = append(out, fromRequirements(reqs)...)
	out = dedupe(out)
	sortFindings(out)
	return out
}

// QuickWins filters the sorted findings down to high-impact, low-effort
// actions, capped at six.
func QuickWins(findings []models.Finding) []models.Finding {
	var wins []models.Finding
	for _, f := range findings {
		if f.Impact >= quickWinMinImpact && f.EffortMinutes <= quickWinMaxMinutes {
			wins = append(wins, f)
			if len(wins) == maxQuickWins {
				break
			}
		}
	}
	return wins
}

func authored(sig score.Signals) []models.Finding {
	var out []models.Finding
	add := func(f models.Finding) { out = append(out, f) }
	isService := sig.PageType == models.ServicePage
	isProduct := sig.PageType == models.ProductPage
	isContent := sig.PageType == models.ContentPage

	if sig.Indexability.Status == 0 {
		add(models.Finding{
			Issue:  "http_status",
			Pillar: models.PillarIndexability, Severity: models.SeverityCritical,
			Title: "Page could not be fetched",
			Why:   "A page that cannot be retrieved is invisible to both search engines and AI assistants.",
			How:   "Check that the URL is correct, the server is up, and no firewall blocks automated clients.",
			Impact: 5, EffortMinutes: 10,
		})
	} else if sig.Indexability.Status >= 400 {
		add(models.Finding{
			Issue:  "http_status",
			Pillar: models.PillarIndexability, Severity: models.SeverityCritical,
			Title: fmt.Sprintf("Page returns HTTP %d", sig.Indexability.Status),
			Why:   "Error responses keep the page out of every index and every AI answer.",
			How:   "Fix the server error or redirect the URL to a working page.",
			Impact: 5, EffortMinutes: 10,
			Evidence: fmt.Sprintf("HTTP status %d", sig.Indexability.Status),
		})
	}

	if sig.Indexability.Label == "Noindex" {
		add(models.Finding{
			Issue:  "noindex",
			Pillar: models.PillarIndexability, Severity: models.SeverityCritical,
			Title: "Page carries a noindex directive",
			Why:   "noindex removes the page from search results and from the sources AI assistants cite.",
			How:   "Remove the noindex token from the robots meta tag or the X-Robots-Tag header if the page should be visible.",
			Impact: 5, EffortMinutes: 10,
			Evidence: strings.Join(sig.Indexability.BlockedReasons, "; "),
		})
	}
	if sig.Indexability.RobotsTxtAllows != nil && !*sig.Indexability.RobotsTxtAllows {
		add(models.Finding{
			Issue:  "robots_txt",
			Pillar: models.PillarIndexability, Severity: models.SeverityCritical,
			Title: "robots.txt blocks the page",
			Why:   "Crawlers that honor robots.txt never see the page, so its content cannot be cited.",
			How:   "Adjust the disallow rule in robots.txt, or confirm the block is intentional.",
			Impact: 5, EffortMinutes: 10,
			Evidence: sig.Indexability.RobotsTxtRule,
		})
	}

	if !sig.HasOrgSchema {
		sev := models.SeverityHigh
		if isService || isProduct {
			sev = models.SeverityCritical
		}
		add(models.Finding{
			Issue:  "org_schema",
			Pillar: models.PillarEntity, Severity: sev,
			Title: "No Organization or LocalBusiness schema",
			Why:   "Without a machine-readable business entity, AI systems cannot tell who is behind the page or connect it to reviews and registrations.",
			How:   "Add an Organization or LocalBusiness JSON-LD block with name, CVR, address, phone and sameAs links.",
			Impact: 5, EffortMinutes: 30,
			Snippet: OrganizationSnippet,
		})
	} else if sig.OrgCompleteness != nil {
		var missing []string
		for _, field := range []string{"has_id", "has_name", "has_url", "has_logo", "has_sameAs", "has_phone_or_email", "has_address"} {
			if !sig.OrgCompleteness[field] {
				missing = append(missing, strings.TrimPrefix(field, "has_"))
			}
		}
		if len(missing) >= 2 {
			add(models.Finding{
				Pillar: models.PillarTechnical, Severity: models.SeverityMedium,
				Title: "Organization schema is incomplete",
				Why:   "A sparse entity block weakens the link between the page and the real-world business.",
				How:   "Fill in the missing fields: " + strings.Join(missing, ", ") + ".",
				Impact: 3, EffortMinutes: 25,
				Evidence: "missing: " + strings.Join(missing, ", "),
				Snippet:  OrganizationSnippet,
			})
		}
	}

	if sig.NAPConsistent != nil && !*sig.NAPConsistent {
		add(models.Finding{
			Issue:  "nap_consistent",
			Pillar: models.PillarEntity, Severity: models.SeverityHigh,
			Title: "Contact details differ between pages",
			Why:   "Inconsistent name/address/phone data makes the business look less trustworthy to entity resolvers.",
			How:   "Use one canonical phone number, email and address across the site and in structured data.",
			Impact: 4, EffortMinutes: 30,
		})
	}

	if isContent && !sig.HasAuthor && !sig.HasPersonSchema {
		add(models.Finding{
			Issue:  "author",
			Pillar: models.PillarEntity, Severity: models.SeverityHigh,
			Title: "Article has no named author",
			Why:   "AI systems weight content with an identifiable, credentialed author higher.",
			How:   "Add a visible byline and a Person schema block linked to the organization.",
			Impact: 4, EffortMinutes: 25,
			Snippet: PersonSnippet,
		})
	}

	if sig.SocialLinks == 0 {
		add(models.Finding{
			Issue:  "social_profiles",
			Pillar: models.PillarEntity, Severity: models.SeverityHigh,
			Title: "No social or review profiles linked",
			Why:   "Profile links corroborate that the business exists and is active.",
			How:   "Link the company's Facebook, LinkedIn, Trustpilot or Google Business profile from the page.",
			Impact: 4, EffortMinutes: 15,
		})
	}

	if sig.NAP.CVR == "" {
		add(models.Finding{
			Issue:  "cvr",
			Pillar: models.PillarEntity, Severity: models.SeverityMedium,
			Title: "No CVR number on the page",
			Why:   "The registration number is the strongest anchor tying the site to a registered Danish business.",
			How:   "Add the CVR number to the footer and to the Organization schema's vatID field.",
			Impact: 3, EffortMinutes: 10,
		})
	}

	if sig.HasClaims && sig.ExternalCitations == 0 {
		add(models.Finding{
			Issue:  "claims_sourced",
			Pillar: models.PillarCredibility, Severity: models.SeverityCritical,
			Title: "Claims made without sources",
			Why:   "Unsourced effectiveness or certification claims are discounted or flagged by AI systems.",
			How:   "Link each claim to documentation: test reports, certification registries or authority pages.",
			Impact: 5, EffortMinutes: 30,
		})
	}

	if sig.HasGuarantee && !sig.GuaranteeHasTerms {
		add(models.Finding{
			Issue:  "guarantee_terms",
			Pillar: models.PillarCredibility, Severity: models.SeverityMedium,
			Title: "Guarantee stated without terms",
			Why:   "A guarantee with no conditions reads as marketing rather than a verifiable commitment.",
			How:   "State what the guarantee covers, its duration and its conditions near the claim.",
			Impact: 3, EffortMinutes: 20,
		})
	}

	if isService {
		var missing []string
		for _, key := range []string{"what_is_it", "pricing", "process", "time_expectation", "risk_tradeoffs", "materials_tools", "cases", "faq", "service_area", "contact_cta"} {
			if !sig.IntentBlocks[key] {
				missing = append(missing, key)
			}
		}
		if len(missing) >= 3 {
			add(models.Finding{
				Pillar: models.PillarCredibility, Severity: models.SeverityHigh,
				Title: "Service page leaves key questions unanswered",
				Why:   "AI assistants prefer pages that answer the full intent: price, process, timing and coverage.",
				How:   "Add sections covering: " + strings.Join(missing, ", ") + ".",
				Impact: 4, EffortMinutes: 40,
				Evidence: "uncovered: " + strings.Join(missing, ", "),
			})
		}
		if !sig.HasServiceSchema {
			add(models.Finding{
				Issue:  "service_schema",
				Pillar: models.PillarTechnical, Severity: models.SeverityCritical,
				Title: "Service page has no Service schema",
				Why:   "Service schema tells AI systems exactly what is offered, by whom and where.",
				How:   "Add a Service JSON-LD block with serviceType, provider and areaServed.",
				Impact: 5, EffortMinutes: 30,
				Snippet: ServiceSnippet,
			})
		}
	}

	if isProduct && !sig.HasProductSchema {
		add(models.Finding{
			Issue:  "product_schema",
			Pillar: models.PillarTechnical, Severity: models.SeverityCritical,
			Title: "Product page has no Product schema",
			Why:   "Without Product schema the price, brand and availability are invisible to shopping and answer engines.",
			How:   "Add a Product JSON-LD block with name, brand, offers and availability.",
			Impact: 5, EffortMinutes: 30,
			Snippet: ProductSnippet,
		})
	}

	if sig.WordCount > 0 && sig.WordCount < 450 {
		add(models.Finding{
			Issue:  "word_count",
			Pillar: models.PillarCredibility, Severity: models.SeverityHigh,
			Title: "Content is too thin",
			Why:   "Pages under roughly 450 words rarely carry enough substance to be cited as a source.",
			How:   "Expand the page to cover the topic's main questions in depth.",
			Impact: 4, EffortMinutes: 30,
			Evidence: fmt.Sprintf("%d words", sig.WordCount),
		})
	}

	if !sig.HasMetaDescription {
		add(models.Finding{
			Issue:  "meta_description",
			Pillar: models.PillarTechnical, Severity: models.SeverityLow,
			Title: "Missing meta description",
			Why:   "The description is the page's self-summary in result lists and previews.",
			How:   "Write a 140-160 character description of what the page offers.",
			Impact: 2, EffortMinutes: 10,
		})
	}
	if !sig.HasCanonical {
		add(models.Finding{
			Issue:  "canonical",
			Pillar: models.PillarTechnical, Severity: models.SeverityLow,
			Title: "Missing canonical URL",
			Why:   "Without a canonical, duplicate URLs split the page's signals.",
			How:   `Add <link rel="canonical" href="..."> pointing at the preferred URL.`,
			Impact: 2, EffortMinutes: 10,
		})
	} else if sig.CanonicalHostOK != nil && !*sig.CanonicalHostOK {
		add(models.Finding{
			Pillar: models.PillarTechnical, Severity: models.SeverityHigh,
			Title: "Canonical points to a different host",
			Why:   "A cross-host canonical hands the page's authority to another domain.",
			How:   "Point the canonical at this page's own host unless the cross-domain move is intentional.",
			Impact: 4, EffortMinutes: 15,
		})
	}

	if sig.ProviderIDMatch != nil && !*sig.ProviderIDMatch {
		add(models.Finding{
			Pillar: models.PillarTechnical, Severity: models.SeverityMedium,
			Title: "Service provider @id does not match the organization",
			Why:   "When the Service's provider reference and the Organization's @id disagree, the entity graph breaks apart.",
			How:   "Reference the Organization's @id from the Service's provider field.",
			Impact: 3, EffortMinutes: 20,
		})
	}

	if sig.ReviewMentioned && !sig.HasReviewSchema {
		add(models.Finding{
			Issue:  "review_schema",
			Pillar: models.PillarTechnical, Severity: models.SeverityHigh,
			Title: "Reviews mentioned without review schema",
			Why:   "Star ratings in prose are invisible to machines; AggregateRating makes them citable.",
			How:   "Add an AggregateRating block backed by a real review source such as Trustpilot.",
			Impact: 4, EffortMinutes: 45,
			Snippet: ReviewSnippet,
		})
	}

	if sig.HasFAQText && !sig.HasFAQSchema {
		add(models.Finding{
			Pillar: models.PillarTechnical, Severity: models.SeverityMedium,
			Title: "FAQ content without FAQPage schema",
			Why:   "Marked-up Q&A pairs are a direct source for AI answers; plain FAQ text is not.",
			How:   "Wrap the existing questions and answers in a FAQPage JSON-LD block.",
			Impact: 3, EffortMinutes: 25,
			Snippet: FAQSnippet,
		})
	}

	if !sig.HasPrivacyLink {
		add(models.Finding{
			Issue:  "privacy_link",
			Pillar: models.PillarTechnical, Severity: models.SeverityLow,
			Title: "No privacy policy linked",
			Why:   "A privacy link is a baseline trust signal for both users and quality raters.",
			How:   "Link the privacy/cookie policy from the footer.",
			Impact: 2, EffortMinutes: 15,
		})
	}

	return out
}

// requirementIssues maps a requirement label to the issue identifier its
// hand-authored counterpart carries, so the two deduplicate. Labels without a
// counterpart are left out and keep their own entry.
var requirementIssues = map[string]string{
	"Organization or LocalBusiness schema":          "org_schema",
	"Named author with Person schema or byline":     "author",
	"Business registration number (CVR)":            "cvr",
	"At least two social or review profiles linked": "social_profiles",
	"Contact details consistent across trust pages": "nap_consistent",
	"Claims are backed by sources":                  "claims_sourced",
	"At least 450 words of content":                 "word_count",
	"At least 700 words of content":                 "word_count",
	"Guarantees state their terms":                  "guarantee_terms",
	"Service schema on service page":                "service_schema",
	"Product schema on product page":                "product_schema",
	"Review mentions carry review schema":           "review_schema",
	"Meta description set":                          "meta_description",
	"Canonical URL set":                             "canonical",
	"Privacy policy linked":                         "privacy_link",
	"No noindex directive":                          "noindex",
	"robots.txt allows the page":                    "robots_txt",
	"Page returns a success status":                 "http_status",
}

// fromRequirements backfills a finding for every unmet requirement, deriving
// severity, impact and effort from the requirement's weight and pillar.
func fromRequirements(reqs []models.Requirement) []models.Finding {
	var out []models.Finding
	for _, r := range reqs {
		if r.OK {
			continue
		}
		out = append(out, models.Finding{
			Issue:         requirementIssues[r.Label],
			Pillar:        r.Pillar,
			Severity:      deriveSeverity(r.Pillar, r.ImpactPoints),
			Title:         r.Label,
			Why:           "This requirement is unmet and lowers the " + r.Pillar + " score.",
			How:           "Address: " + r.Label + ".",
			Impact:        deriveImpact(r.ImpactPoints),
			EffortMinutes: deriveEffort(r.Pillar),
			Evidence:      r.Detail,
		})
	}
	return out
}

func deriveSeverity(pillar string, points float64) string {
	if pillar == models.PillarIndexability {
		switch {
		case points >= 3.0:
			return models.SeverityCritical
		case points >= 1.5:
			return models.SeverityHigh
		default:
			return models.SeverityMedium
		}
	}
	switch {
	case points >= 3.0:
		return models.SeverityHigh
	case points >= 1.5:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

func deriveImpact(points float64) int {
	switch {
	case points >= 3.0:
		return 5
	case points >= 2.0:
		return 4
	case points >= 1.0:
		return 3
	case points >= 0.8:
		return 2
	default:
		return 1
	}
}

func deriveEffort(pillar string) int {
	if pillar == models.PillarIndexability {
		return 10
	}
	return 20
}

// dedupe drops later findings that cover the same issue as an earlier one in
// the same pillar. Authored findings come first in the input, so they win over
// requirement backfills. Findings without an issue identifier fall back to a
// case-insensitive title comparison, equal or one containing the other.
func dedupe(in []models.Finding) []models.Finding {
	var out []models.Finding
	for _, f := range in {
		dup := false
		for _, kept := range out {
			if kept.Pillar != f.Pillar {
				continue
			}
			if kept.Issue != "" && kept.Issue == f.Issue {
				dup = true
				break
			}
			a, b := strings.ToLower(kept.Title), strings.ToLower(f.Title)
			if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, f)
		}
	}
	return out
}

func sortFindings(fs []models.Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		ri, rj := models.SeverityRank(fs[i].Severity), models.SeverityRank(fs[j].Severity)
		if ri != rj {
			return ri < rj
		}
		if fs[i].Impact != fs[j].Impact {
			return fs[i].Impact > fs[j].Impact
		}
		return fs[i].EffortMinutes < fs[j].EffortMinutes
	})
}
