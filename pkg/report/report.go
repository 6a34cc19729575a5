// Package report renders an audit into its delivery formats: the sales
// summary, a markdown report and JSON (via encoding/json on the Report
// itself).
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/K-Bak/geo-checker/models"
)

const maxTopActions = 5

// pillarOrder fixes the rendering order of the pillar breakdown.
var pillarOrder = []string{
	models.PillarEntity,
	models.PillarCredibility,
	models.PillarTechnical,
	models.PillarIndexability,
}

// BuildSummary condenses a report into the three-bullet, meeting-ready view.
func BuildSummary(rep *models.Report) models.SalesSummary {
	s := models.SalesSummary{
		URL:          rep.FinalURL,
		PageType:     rep.PageType,
		OverallScore: rep.Scores.Overall,
		QuickWins:    rep.QuickWins,
	}

	for i, f := range rep.Findings {
		if i == maxTopActions {
			break
		}
		s.TopActions = append(s.TopActions, f)
	}

	s.Bullets = append(s.Bullets, fmt.Sprintf(
		"The page scores %.1f/10 on AI readiness (%s).", rep.Scores.Overall, verdict(rep.Scores.Overall)))

	best, worst := extremes(rep.Scores.PerPillar)
	if best != "" && worst != "" {
		s.Bullets = append(s.Bullets, fmt.Sprintf(
			"Strongest area is %s (%.1f), weakest is %s (%.1f).",
			best, rep.Scores.PerPillar[best], worst, rep.Scores.PerPillar[worst]))
	}

	critical := 0
	for _, f := range rep.Findings {
		if f.Severity == models.SeverityCritical {
			critical++
		}
	}
	switch {
	case critical > 0:
		s.Bullets = append(s.Bullets, fmt.Sprintf(
			"%d critical issue(s) block AI visibility; fixing them is the first priority.", critical))
	case len(rep.QuickWins) > 0:
		s.Bullets = append(s.Bullets, fmt.Sprintf(
			"No critical blockers; %d quick win(s) can lift the score with little effort.", len(rep.QuickWins)))
	default:
		s.Bullets = append(s.Bullets,
			"No critical blockers found; remaining actions are incremental improvements.")
	}
	return s
}

func verdict(score float64) string {
	switch {
	case score >= 8:
		return "strong"
	case score >= 6:
		return "decent, with clear gaps"
	case score >= 4:
		return "weak"
	default:
		return "poor"
	}
}

func extremes(perPillar map[string]float64) (best, worst string) {
	for _, pillar := range pillarOrder {
		score, ok := perPillar[pillar]
		if !ok {
			continue
		}
		if best == "" || score > perPillar[best] {
			best = pillar
		}
		if worst == "" || score < perPillar[worst] {
			worst = pillar
		}
	}
	return best, worst
}

// Markdown renders the full audit as a markdown document.
func Markdown(rep *models.Report) string {
	var b strings.Builder
	w := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	w("# AI Readiness Audit")
	w("")
	w("**URL:** %s  ", rep.FinalURL)
	w("**Page type:** %s  ", rep.PageType)
	w("**Overall score:** %.1f / 10", rep.Scores.Overall)
	w("")

	w("## Summary")
	w("")
	for _, bullet := range rep.Summary.Bullets {
		w("- %s", bullet)
	}
	w("")

	w("## Pillar Scores")
	w("")
	w("| Pillar | Score |")
	w("|---|---|")
	for _, pillar := range pillarOrder {
		if score, ok := rep.Scores.PerPillar[pillar]; ok {
			w("| %s | %.1f |", pillar, score)
		}
	}
	w("")

	if len(rep.QuickWins) > 0 {
		w("## Quick Wins")
		w("")
		for _, f := range rep.QuickWins {
			w("- **%s** (%s, ~%d min): %s", f.Title, f.Severity, f.EffortMinutes, f.How)
		}
		w("")
	}

	w("## Findings")
	w("")
	for _, f := range rep.Findings {
		w("### %s — %s", f.Severity, f.Title)
		w("")
		w("*Pillar: %s · Impact: %d/5 · Effort: ~%d min*", f.Pillar, f.Impact, f.EffortMinutes)
		w("")
		w("%s", f.Why)
		w("")
		w("**Fix:** %s", f.How)
		if f.Evidence != "" {
			w("")
			w("Evidence: %s", f.Evidence)
		}
		if f.Snippet != "" {
			w("")
			w("```html")
			w("%s", f.Snippet)
			w("```")
		}
		w("")
	}

	w("## Requirements Checklist")
	w("")
	w("| Pillar | Requirement | Status | Detail |")
	w("|---|---|---|---|")
	for _, r := range rep.Requirements {
		status := "✅"
		if !r.OK {
			status = "❌"
		}
		w("| %s | %s | %s | %s |", r.Pillar, r.Label, status, escapeCell(r.Detail))
	}
	w("")

	if len(rep.TrustPages) > 0 {
		w("## Trust Pages Checked")
		w("")
		for _, tp := range rep.TrustPages {
			w("- %s: %s (HTTP %d)", tp.Key, tp.URL, tp.Status)
		}
		w("")
	}

	if detected := detectedLines(rep.Detected); len(detected) > 0 {
		w("## Detected Signals")
		w("")
		for _, line := range detected {
			w("- %s", line)
		}
	}

	return b.String()
}

func detectedLines(detected map[string]any) []string {
	keys := make([]string, 0, len(detected))
	for k := range detected {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("`%s`: %v", k, detected[k]))
	}
	return lines
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
