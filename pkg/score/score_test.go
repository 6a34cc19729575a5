package score

import (
	"math"
	"testing"

	"github.com/K-Bak/geo-checker/models"
)

func perfectSignals() Signals {
	return Signals{
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

func TestPerfectPageScoresTen(t *testing.T) {
	reqs, scores := Compute(perfectSignals())

	for _, r := range reqs {
		if !r.OK {
			t.Errorf("requirement %q unmet on a perfect page (%s)", r.Label, r.Detail)
		}
	}
	for pillar, s := range scores.PerPillar {
		if s != 10 {
			t.Errorf("pillar %s = %.2f, want 10", pillar, s)
		}
	}
	if scores.Overall != 10.0 {
		t.Errorf("overall = %.1f, want 10.0", scores.Overall)
	}
}

func TestIndexabilityDeductions(t *testing.T) {
	sig := perfectSignals()
	sig.Indexability = models.Indexability{Label: "Noindex", Status: 0, Blocked: true}

	_, scores := Compute(sig)

	// noindex (3.0) and failed status (3.0) unmet, robots unchecked.
	if got := scores.PerPillar[models.PillarIndexability]; got != 4.0 {
		t.Errorf("indexability = %.2f, want 4.0", got)
	}
	if scores.Overall != 9.1 {
		t.Errorf("overall = %.1f, want 9.1", scores.Overall)
	}
}

func TestPillarScoreClampsAtZero(t *testing.T) {
	reqs := []models.Requirement{
		{Pillar: models.PillarEntity, OK: false, ImpactPoints: 6},
		{Pillar: models.PillarEntity, OK: false, ImpactPoints: 7},
	}
	if got := PillarScores(reqs)[models.PillarEntity]; got != 0 {
		t.Errorf("score = %.2f, want clamp at 0", got)
	}
}

func TestOverallWeights(t *testing.T) {
	per := map[string]float64{
		models.PillarEntity:       10,
		models.PillarCredibility:  10,
		models.PillarTechnical:    10,
		models.PillarIndexability: 4,
	}
	if got := Overall(per); got != 9.1 {
		t.Errorf("Overall() = %.1f, want 9.1", got)
	}
}

func TestServicePageIntentRequirements(t *testing.T) {
	sig := perfectSignals()
	sig.PageType = models.ServicePage
	sig.HasServiceSchema = true
	sig.IntentBlocks = map[string]bool{"pricing": true}

	reqs := BuildRequirements(sig)

	intentCount, unmet := 0, 0
	for _, r := range reqs {
		if r.Pillar == models.PillarCredibility && r.ImpactPoints == 0.35 {
			intentCount++
			if !r.OK {
				unmet++
			}
		}
	}
	if intentCount != 10 {
		t.Errorf("intent requirements = %d, want 10", intentCount)
	}
	if unmet != 9 {
		t.Errorf("unmet intent requirements = %d, want 9", unmet)
	}

	_, scores := Compute(sig)
	want := math.Round((10-9*0.35)*100) / 100
	if got := math.Round(scores.PerPillar[models.PillarCredibility]*100) / 100; got != want {
		t.Errorf("credibility = %.2f, want %.2f", got, want)
	}
}

func TestGuaranteeConditional(t *testing.T) {
	sig := perfectSignals()
	sig.HasGuarantee = true
	sig.GuaranteeHasTerms = false

	reqs := BuildRequirements(sig)
	for _, r := range reqs {
		if r.Label == "Guarantees state their terms" && r.OK {
			t.Error("guarantee requirement met despite missing terms")
		}
	}

	sig.GuaranteeHasTerms = true
	for _, r := range BuildRequirements(sig) {
		if r.Label == "Guarantees state their terms" && !r.OK {
			t.Error("guarantee requirement unmet despite stated terms")
		}
	}
}

func TestDetectedMapKeys(t *testing.T) {
	d := DetectedMap(perfectSignals())

	if d["word_count"] != 800 {
		t.Errorf("word_count = %v", d["word_count"])
	}
	if d["has_org_schema"] != true {
		t.Errorf("has_org_schema = %v", d["has_org_schema"])
	}
	nap, ok := d["nap"].(map[string]string)
	if !ok || nap["cvr"] != "12345678" {
		t.Errorf("nap = %v", d["nap"])
	}
	if _, present := d["nap_consistent"]; present {
		t.Error("nap_consistent present without trust pages")
	}
}
