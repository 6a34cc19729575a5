// Package score turns extracted page signals into the requirements table and
// the pillar/overall scores.
package score

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/K-Bak/geo-checker/models"
)

// Pillar weights for the overall score.
const (
	WeightEntity       = 0.30
	WeightCredibility  = 0.30
	WeightTechnical    = 0.25
	WeightIndexability = 0.15
)

// Signals is everything the scorer needs, already extracted and classified.
// Pointer fields are tri-state: nil means the signal could not be checked and
// the related requirement passes vacuously.
type Signals struct {
	PageType models.PageType

	// Content
	WordCount         int
	HasH1             bool
	ExternalCitations int
	HighTrustCites    int
	HasClaims         bool
	HasExpertQuote    bool
	HasGuarantee      bool
	GuaranteeHasTerms bool
	IntentBlocks      map[string]bool
	ReviewMentioned   bool
	HasFAQText        bool

	// Entity
	NAP             models.NAP
	SocialLinks     int
	HasAboutLink    bool
	HasContactLink  bool
	HasPrivacyLink  bool
	HasAuthor       bool
	NAPConsistent   *bool
	TrustPagesSeen  int

	// Structured data
	HasAnySchema     bool
	HasOrgSchema     bool
	HasPersonSchema  bool
	HasServiceSchema bool
	HasProductSchema bool
	HasReviewSchema  bool
	HasFAQSchema     bool
	OrgHasID         bool
	OrgHasSameAs     bool
	OrgCompleteness  map[string]bool
	ProviderIDMatch  *bool

	// Head / technical
	HasMetaDescription bool
	HasCanonical       bool
	CanonicalHostOK    *bool

	Indexability models.Indexability
}

// intentBlockOrder keeps the service-coverage requirements in a stable order.
var intentBlockOrder = []string{
	"what_is_it", "pricing", "process", "time_expectation", "risk_tradeoffs",
	"materials_tools", "cases", "faq", "service_area", "contact_cta",
}

// intentBlockLabels are the human labels for the service intent blocks.
var intentBlockLabels = map[string]string{
	"what_is_it":       "what the service is",
	"pricing":          "pricing",
	"process":          "how the process works",
	"time_expectation": "time expectations",
	"risk_tradeoffs":   "risks and trade-offs",
	"materials_tools":  "materials and tools",
	"cases":            "cases or before/after results",
	"faq":              "FAQ",
	"service_area":     "service area",
	"contact_cta":      "contact call-to-action",
}

// BuildRequirements evaluates every requirement against the signals. Page
// type conditions that do not apply pass vacuously so the pillar totals stay
// comparable across page types.
func BuildRequirements(sig Signals) []models.Requirement {
	var reqs []models.Requirement
	add := func(pillar, label string, ok bool, detail string, points float64) {
		reqs = append(reqs, models.Requirement{
			Pillar: pillar, Label: label, OK: ok, Detail: detail, ImpactPoints: points,
		})
	}
	isService := sig.PageType == models.ServicePage
	isProduct := sig.PageType == models.ProductPage
	isContent := sig.PageType == models.ContentPage

	// Entity Authority
	add(models.PillarEntity, "Organization or LocalBusiness schema",
		sig.HasOrgSchema, schemaDetail(sig.HasOrgSchema, "organization schema"), 3.0)
	if isContent {
		add(models.PillarEntity, "Named author with Person schema or byline",
			sig.HasAuthor || sig.HasPersonSchema, boolDetail(sig.HasAuthor || sig.HasPersonSchema, "author identified", "no author found"), 2.0)
	} else {
		add(models.PillarEntity, "Named author with Person schema or byline",
			true, "not an article page", 2.0)
	}
	add(models.PillarEntity, "Phone or email on the page",
		sig.NAP.Phone != "" || sig.NAP.Email != "",
		napDetail(sig.NAP), 1.0)
	add(models.PillarEntity, "Physical address on the page",
		sig.NAP.Address != "", boolDetail(sig.NAP.Address != "", sig.NAP.Address, "no address found"), 1.0)
	add(models.PillarEntity, "Business registration number (CVR)",
		sig.NAP.CVR != "", boolDetail(sig.NAP.CVR != "", "CVR "+sig.NAP.CVR, "no CVR found"), 1.0)
	add(models.PillarEntity, "At least two social or review profiles linked",
		sig.SocialLinks >= 2, fmt.Sprintf("%d profile link(s)", sig.SocialLinks), 1.3)
	add(models.PillarEntity, "About page linked",
		sig.HasAboutLink, boolDetail(sig.HasAboutLink, "about link present", "no about link"), 0.7)
	add(models.PillarEntity, "Contact page linked",
		sig.HasContactLink, boolDetail(sig.HasContactLink, "contact link present", "no contact link"), 0.7)
	napOK := sig.NAPConsistent == nil || *sig.NAPConsistent
	add(models.PillarEntity, "Contact details consistent across trust pages",
		napOK, napConsistencyDetail(sig), 0.6)

	// Content Credibility
	add(models.PillarCredibility, "At least one external citation",
		sig.ExternalCitations >= 1, fmt.Sprintf("%d external citation(s)", sig.ExternalCitations), 1.0)
	add(models.PillarCredibility, "Three or more external citations",
		sig.ExternalCitations >= 3, fmt.Sprintf("%d external citation(s)", sig.ExternalCitations), 1.5)
	add(models.PillarCredibility, "Links to high-trust sources",
		sig.HighTrustCites >= 1, fmt.Sprintf("%d high-trust link(s)", sig.HighTrustCites), 1.5)
	claimsOK := !sig.HasClaims || sig.ExternalCitations >= 1
	add(models.PillarCredibility, "Claims are backed by sources",
		claimsOK, boolDetail(claimsOK, "claims documented or none made", "claims made without sources"), 1.0)
	add(models.PillarCredibility, "Expert quotes or attributed statements",
		sig.HasExpertQuote, boolDetail(sig.HasExpertQuote, "attributed statement found", "no attributed statements"), 1.2)
	add(models.PillarCredibility, "At least 450 words of content",
		sig.WordCount >= 450, fmt.Sprintf("%d words", sig.WordCount), 1.0)
	add(models.PillarCredibility, "At least 700 words of content",
		sig.WordCount >= 700, fmt.Sprintf("%d words", sig.WordCount), 0.3)
	guaranteeOK := !sig.HasGuarantee || sig.GuaranteeHasTerms
	add(models.PillarCredibility, "Guarantees state their terms",
		guaranteeOK, boolDetail(guaranteeOK, "no guarantee or terms stated", "guarantee without terms"), 0.5)
	if isService {
		for _, key := range intentBlockOrder {
			covered := sig.IntentBlocks[key]
			add(models.PillarCredibility, "Covers "+intentBlockLabels[key],
				covered, boolDetail(covered, "covered", "not covered"), 0.35)
		}
	}

	// Technical Signals
	add(models.PillarTechnical, "Structured data present",
		sig.HasAnySchema, schemaDetail(sig.HasAnySchema, "JSON-LD"), 2.0)
	if isService {
		add(models.PillarTechnical, "Service schema on service page",
			sig.HasServiceSchema, schemaDetail(sig.HasServiceSchema, "Service schema"), 2.0)
	} else {
		add(models.PillarTechnical, "Service schema on service page", true, "not a service page", 2.0)
	}
	if isProduct {
		add(models.PillarTechnical, "Product schema on product page",
			sig.HasProductSchema, schemaDetail(sig.HasProductSchema, "Product schema"), 2.0)
	} else {
		add(models.PillarTechnical, "Product schema on product page", true, "not a product page", 2.0)
	}
	add(models.PillarTechnical, "Business entity in structured data",
		sig.HasOrgSchema || sig.HasPersonSchema,
		schemaDetail(sig.HasOrgSchema || sig.HasPersonSchema, "business entity schema"), 2.0)
	reviewOK := !sig.ReviewMentioned || sig.HasReviewSchema
	add(models.PillarTechnical, "Review mentions carry review schema",
		reviewOK, boolDetail(reviewOK, "no unmarked review mentions", "reviews mentioned without schema"), 1.2)
	add(models.PillarTechnical, "Exactly one H1 present",
		sig.HasH1, boolDetail(sig.HasH1, "H1 present", "no H1"), 1.0)
	add(models.PillarTechnical, "Meta description set",
		sig.HasMetaDescription, boolDetail(sig.HasMetaDescription, "meta description present", "no meta description"), 0.6)
	add(models.PillarTechnical, "Canonical URL set",
		sig.HasCanonical, boolDetail(sig.HasCanonical, "canonical present", "no canonical"), 0.6)
	add(models.PillarTechnical, "Privacy policy linked",
		sig.HasPrivacyLink, boolDetail(sig.HasPrivacyLink, "privacy link present", "no privacy link"), 0.6)
	orgIDOK := !sig.HasOrgSchema || sig.OrgHasID
	add(models.PillarTechnical, "Organization schema has a stable @id",
		orgIDOK, boolDetail(orgIDOK, "@id set or no organization schema", "organization schema missing @id"), 0.8)
	orgSameAsOK := !sig.HasOrgSchema || sig.OrgHasSameAs
	add(models.PillarTechnical, "Organization schema links profiles via sameAs",
		orgSameAsOK, boolDetail(orgSameAsOK, "sameAs set or no organization schema", "organization schema missing sameAs"), 0.4)

	// Indexability
	noindex := sig.Indexability.Label == "Noindex"
	add(models.PillarIndexability, "No noindex directive",
		!noindex, boolDetail(!noindex, "no noindex", "noindex directive present"), 3.0)
	robotsOK := sig.Indexability.RobotsTxtAllows == nil || *sig.Indexability.RobotsTxtAllows
	add(models.PillarIndexability, "robots.txt allows the page",
		robotsOK, robotsDetail(sig.Indexability), 1.5)
	statusOK := sig.Indexability.Status == 200 || sig.Indexability.Status == 201 || sig.Indexability.Status == 202
	add(models.PillarIndexability, "Page returns a success status",
		statusOK, fmt.Sprintf("HTTP %d", sig.Indexability.Status), 3.0)

	return reqs
}

// PillarScores computes each pillar as 10 minus the impact points of its
// unmet requirements, clamped to [0, 10].
func PillarScores(reqs []models.Requirement) map[string]float64 {
	scores := map[string]float64{
		models.PillarEntity:       10,
		models.PillarCredibility:  10,
		models.PillarTechnical:    10,
		models.PillarIndexability: 10,
	}
	for _, r := range reqs {
		if !r.OK {
			scores[r.Pillar] -= r.ImpactPoints
		}
	}
	for pillar, s := range scores {
		scores[pillar] = math.Min(10, math.Max(0, s))
	}
	return scores
}

// Overall is the weighted sum of the pillar scores, rounded to one decimal.
func Overall(perPillar map[string]float64) float64 {
	total := perPillar[models.PillarEntity]*WeightEntity +
		perPillar[models.PillarCredibility]*WeightCredibility +
		perPillar[models.PillarTechnical]*WeightTechnical +
		perPillar[models.PillarIndexability]*WeightIndexability
	return math.Round(total*10) / 10
}

// Compute is the one-call wrapper the pipeline uses.
func Compute(sig Signals) ([]models.Requirement, models.Scores) {
	reqs := BuildRequirements(sig)
	per := PillarScores(reqs)
	return reqs, models.Scores{Overall: Overall(per), PerPillar: per}
}

// DetectedMap flattens the signals into the stable key set the report's
// "detected" section exposes.
func DetectedMap(sig Signals) map[string]any {
	d := map[string]any{
		"page_type":            string(sig.PageType),
		"word_count":           sig.WordCount,
		"has_h1":               sig.HasH1,
		"has_meta_description": sig.HasMetaDescription,
		"has_canonical":        sig.HasCanonical,
		"has_any_schema":       sig.HasAnySchema,
		"has_org_schema":       sig.HasOrgSchema,
		"has_person_schema":    sig.HasPersonSchema,
		"has_service_schema":   sig.HasServiceSchema,
		"has_product_schema":   sig.HasProductSchema,
		"has_review_schema":    sig.HasReviewSchema,
		"external_citations":   sig.ExternalCitations,
		"high_trust_citations": sig.HighTrustCites,
		"social_links":         sig.SocialLinks,
		"has_claims":           sig.HasClaims,
		"has_expert_quote":     sig.HasExpertQuote,
		"has_guarantee":        sig.HasGuarantee,
		"guarantee_has_terms":  sig.GuaranteeHasTerms,
		"has_about_link":       sig.HasAboutLink,
		"has_contact_link":     sig.HasContactLink,
		"has_privacy_link":     sig.HasPrivacyLink,
		"has_author":           sig.HasAuthor,
		"indexability":         sig.Indexability.Label,
		"nap": map[string]string{
			"cvr":     sig.NAP.CVR,
			"email":   sig.NAP.Email,
			"phone":   sig.NAP.Phone,
			"address": sig.NAP.Address,
		},
	}
	if sig.NAPConsistent != nil {
		d["nap_consistent"] = *sig.NAPConsistent
	}
	if sig.CanonicalHostOK != nil {
		d["canonical_host_matches"] = *sig.CanonicalHostOK
	}
	if sig.ProviderIDMatch != nil {
		d["provider_id_matches_org"] = *sig.ProviderIDMatch
	}
	if len(sig.IntentBlocks) > 0 {
		covered := make([]string, 0, len(sig.IntentBlocks))
		for k, ok := range sig.IntentBlocks {
			if ok {
				covered = append(covered, k)
			}
		}
		sort.Strings(covered)
		d["intent_blocks_covered"] = covered
	}
	return d
}

func boolDetail(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

func schemaDetail(ok bool, what string) string {
	if ok {
		return what + " found"
	}
	return what + " missing"
}

func napDetail(nap models.NAP) string {
	var parts []string
	if nap.Phone != "" {
		parts = append(parts, "phone "+nap.Phone)
	}
	if nap.Email != "" {
		parts = append(parts, "email "+nap.Email)
	}
	if len(parts) == 0 {
		return "no phone or email found"
	}
	return strings.Join(parts, ", ")
}

func napConsistencyDetail(sig Signals) string {
	switch {
	case sig.NAPConsistent == nil:
		return "no trust pages checked"
	case *sig.NAPConsistent:
		return fmt.Sprintf("consistent across %d trust page(s)", sig.TrustPagesSeen)
	default:
		return "contact details differ between pages"
	}
}

func robotsDetail(idx models.Indexability) string {
	switch {
	case idx.RobotsTxtAllows == nil:
		return "no applicable robots.txt rule"
	case *idx.RobotsTxtAllows:
		return "allowed by robots.txt"
	default:
		return "disallowed (" + idx.RobotsTxtRule + ")"
	}
}
