package findings

import (
	"strings"
	"testing"

	"github.com/K-Bak/geo-checker/models"
	"github.com/K-Bak/geo-checker/pkg/score"
)

func healthySignals() score.Signals {
	return score.Signals{
		PageType:           models.GeneralPage,
		WordCount:          800,
		HasH1:              true,
		ExternalCitations:  3,
		HighTrustCites:     1,
		HasExpertQuote:     true,
		NAP:                models.NAP{CVR: "12345678", Email: "info@acme.dk", Phone: "+4511223344", Address: "Hovedgaden 12, 4000 Roskilde"},
		SocialLinks:        2,
		HasAboutLink:       true,
		HasContactLink:     true,
		HasPrivacyLink:     true,
		HasAuthor:          true,
		HasAnySchema:       true,
		HasOrgSchema:       true,
		OrgHasID:           true,
		OrgHasSameAs:       true,
		HasMetaDescription: true,
		HasCanonical:       true,
		Indexability:       models.Indexability{Label: "Indexable", Status: 200},
	}
}

func build(sig score.Signals) []models.Finding {
	reqs, _ := score.Compute(sig)
	return Build(sig, reqs)
}

func TestHealthyPageHasNoCriticalFindings(t *testing.T) {
	for _, f := range build(healthySignals()) {
		if f.Severity == models.SeverityCritical {
			t.Errorf("unexpected critical finding on healthy page: %s", f.Title)
		}
	}
}

func TestMissingOrgSchemaDeduplicated(t *testing.T) {
	sig := healthySignals()
	sig.HasOrgSchema = false
	sig.OrgHasID = false
	sig.OrgHasSameAs = false

	count := 0
	for _, f := range build(sig) {
		if f.Pillar == models.PillarEntity && strings.Contains(strings.ToLower(f.Title), "organization or localbusiness schema") {
			count++
			if f.Snippet == "" {
				t.Error("authored org finding lost its snippet")
			}
		}
	}
	if count != 1 {
		t.Errorf("org schema findings = %d, want 1 after dedup", count)
	}
}

func TestNoindexIsCriticalAndFirst(t *testing.T) {
	sig := healthySignals()
	sig.Indexability = models.Indexability{
		Label: "Noindex", Status: 200, Blocked: true,
		BlockedReasons: []string{`X-Robots-Tag contains noindex ("noindex")`},
	}

	fs := build(sig)
	if len(fs) == 0 {
		t.Fatal("no findings")
	}
	if fs[0].Severity != models.SeverityCritical {
		t.Errorf("first finding severity = %s, want Critical", fs[0].Severity)
	}
	if fs[0].Pillar != models.PillarIndexability {
		t.Errorf("first finding pillar = %s, want Indexability", fs[0].Pillar)
	}
}

func TestAuthoredFindingSuppressesRequirementTwin(t *testing.T) {
	sig := healthySignals()
	sig.Indexability = models.Indexability{
		Label: "Noindex", Status: 200, Blocked: true,
		BlockedReasons: []string{`meta robots contains noindex ("noindex")`},
	}
	sig.SocialLinks = 0
	sig.WordCount = 200
	sig.HasGuarantee = true
	sig.GuaranteeHasTerms = false
	sig.HasMetaDescription = false
	sig.HasCanonical = false

	fs := build(sig)

	// Each pair: the authored title that must survive and the requirement
	// label that would report the same problem a second time.
	pairs := []struct{ keep, drop string }{
		{"Page carries a noindex directive", "No noindex directive"},
		{"No social or review profiles linked", "At least two social or review profiles linked"},
		{"Content is too thin", "At least 450 words of content"},
		{"Guarantee stated without terms", "Guarantees state their terms"},
		{"Missing meta description", "Meta description set"},
		{"Missing canonical URL", "Canonical URL set"},
	}
	for _, p := range pairs {
		if !hasFindingTitled(fs, p.keep) {
			t.Errorf("missing finding %q", p.keep)
		}
		if hasFindingTitled(fs, p.drop) {
			t.Errorf("duplicate finding %q alongside %q", p.drop, p.keep)
		}
	}

	seen := map[string]bool{}
	for _, f := range fs {
		if f.Issue == "" {
			continue
		}
		key := f.Pillar + "/" + f.Issue
		if seen[key] {
			t.Errorf("issue %s reported twice", key)
		}
		seen[key] = true
	}
}

func TestUnsourcedClaimsOnlyWithoutCitations(t *testing.T) {
	sig := healthySignals()
	sig.HasClaims = true
	sig.ExternalCitations = 0
	sig.HighTrustCites = 0

	if !hasFindingTitled(build(sig), "Claims made without sources") {
		t.Error("expected unsourced-claims finding")
	}

	sig.ExternalCitations = 2
	if hasFindingTitled(build(sig), "Claims made without sources") {
		t.Error("unsourced-claims finding despite citations")
	}
}

func TestGuaranteeWithoutTermsIsMedium(t *testing.T) {
	sig := healthySignals()
	sig.HasGuarantee = true
	sig.GuaranteeHasTerms = false

	for _, f := range build(sig) {
		if f.Title == "Guarantee stated without terms" {
			if f.Severity != models.SeverityMedium {
				t.Errorf("severity = %s, want Medium", f.Severity)
			}
			return
		}
	}
	t.Error("guarantee finding missing")
}

func TestSortIsSeverityThenImpactThenEffort(t *testing.T) {
	sig := healthySignals()
	sig.HasOrgSchema = false
	sig.OrgHasID = false
	sig.OrgHasSameAs = false
	sig.SocialLinks = 0
	sig.HasMetaDescription = false
	sig.HasCanonical = false
	sig.WordCount = 200

	fs := build(sig)
	for i := 1; i < len(fs); i++ {
		prev, cur := fs[i-1], fs[i]
		pr, cr := models.SeverityRank(prev.Severity), models.SeverityRank(cur.Severity)
		if pr > cr {
			t.Fatalf("severity order broken at %d: %s before %s", i, prev.Severity, cur.Severity)
		}
		if pr == cr && prev.Impact < cur.Impact {
			t.Fatalf("impact order broken at %d", i)
		}
	}
}

func TestQuickWins(t *testing.T) {
	sig := healthySignals()
	sig.HasOrgSchema = false
	sig.SocialLinks = 0
	sig.WordCount = 100
	sig.HasMetaDescription = false

	wins := QuickWins(build(sig))
	if len(wins) == 0 {
		t.Fatal("no quick wins found")
	}
	if len(wins) > 6 {
		t.Errorf("quick wins = %d, cap is 6", len(wins))
	}
	for _, w := range wins {
		if w.Impact < 4 {
			t.Errorf("quick win %q has impact %d, want >= 4", w.Title, w.Impact)
		}
		if w.EffortMinutes > 30 {
			t.Errorf("quick win %q has effort %d, want <= 30", w.Title, w.EffortMinutes)
		}
	}
}

func TestServicePageMissingSchemaIsCritical(t *testing.T) {
	sig := healthySignals()
	sig.PageType = models.ServicePage
	sig.HasServiceSchema = false
	sig.IntentBlocks = map[string]bool{}

	fs := build(sig)
	found := false
	for _, f := range fs {
		if f.Title == "Service page has no Service schema" {
			found = true
			if f.Severity != models.SeverityCritical {
				t.Errorf("severity = %s, want Critical", f.Severity)
			}
			if !strings.Contains(f.Snippet, `"@type": "Service"`) {
				t.Error("service finding missing its snippet")
			}
		}
	}
	if !found {
		t.Error("service schema finding missing")
	}
}

func hasFindingTitled(fs []models.Finding, title string) bool {
	for _, f := range fs {
		if f.Title == title {
			return true
		}
	}
	return false
}
