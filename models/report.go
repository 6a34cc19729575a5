package models

// Scores bundles the overall score and the per-pillar breakdown.
type Scores struct {
	Overall   float64            `json:"overall"`
	PerPillar map[string]float64 `json:"per_pillar"`
}

// SalesSummary is the condensed, meeting-ready view of an audit: three
// takeaway bullets, the top actions and the quick wins.
type SalesSummary struct {
	URL          string    `json:"url"`
	PageType     PageType  `json:"page_type"`
	OverallScore float64   `json:"overall_score"`
	Bullets      []string  `json:"bullets"`
	QuickWins    []Finding `json:"quick_wins"`
	TopActions   []Finding `json:"top_actions"`
}

// Report is the full output of one analysis run. Detected is the audit trail
// of intermediate signals keyed by stable names; Snippets are copy-paste
// JSON-LD templates keyed by schema type.
type Report struct {
	FinalURL     string            `json:"final_url"`
	PageType     PageType          `json:"page_type"`
	Scores       Scores            `json:"scores"`
	Requirements []Requirement     `json:"requirements"`
	Findings     []Finding         `json:"findings"`
	QuickWins    []Finding         `json:"quick_wins"`
	Graph        EntityGraph       `json:"graph"`
	Detected     map[string]any    `json:"detected"`
	Snippets     map[string]string `json:"snippets"`
	Summary      SalesSummary      `json:"summary"`
	TrustPages   []TrustPage       `json:"trust_pages,omitempty"`
}
