package models

// Pillar names. These are stable identifiers used across scoring, findings and
// report output.
const (
	PillarEntity       = "Entity Authority"
	PillarCredibility  = "Content Credibility"
	PillarTechnical    = "Technical Signals"
	PillarIndexability = "Indexability"
)

// Severity levels, most severe first.
const (
	SeverityCritical = "Critical"
	SeverityHigh     = "High"
	SeverityMedium   = "Medium"
	SeverityLow      = "Low"
)

// SeverityRank orders severities for sorting (Critical=0 .. Low=3).
func SeverityRank(severity string) int {
	switch severity {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	}
	return 9
}

// PageType labels assigned by the classifier.
type PageType string

const (
	ServicePage PageType = "Service Page"
	ProductPage PageType = "Product Page"
	ContentPage PageType = "Content / Article"
	GeneralPage PageType = "General Page"
)

// Requirement is one row of a pillar's checklist. ImpactPoints is the score
// deduction when the requirement is unmet; a requirement that does not apply
// to the current page type is marked OK so it never penalizes.
type Requirement struct {
	Pillar       string  `json:"pillar"`
	Label        string  `json:"label"`
	OK           bool    `json:"ok"`
	Detail       string  `json:"detail"`
	ImpactPoints float64 `json:"impact_points"`
}

// Finding is one prioritized remediation action. Issue identifies which
// underlying check produced the finding so a hand-authored finding and the
// requirement row for the same check collapse into one entry.
type Finding struct {
	Issue         string `json:"-"`
	Pillar        string `json:"pillar"`
	Severity      string `json:"severity"`
	Title         string `json:"title"`
	Why           string `json:"why"`
	How           string `json:"how"`
	Impact        int    `json:"impact"`
	EffortMinutes int    `json:"effort_minutes"`
	Evidence      string `json:"evidence,omitempty"`
	Snippet       string `json:"snippet,omitempty"`
}
