package extract

import (
	"regexp"
	"strings"

	"github.com/K-Bak/geo-checker/models"
	"github.com/K-Bak/geo-checker/pkg/patterns"
)

var (
	nonDigitsRe   = regexp.MustCompile(`[^\d]`)
	innerSpacesRe = regexp.MustCompile(`\s+`)
)

// NAPSignals scans the full page text for business identity signals using
// the locale pattern table. Each field is the first match or empty; no
// validation beyond the pattern is done, false positives are an accepted
// heuristic cost.
func NAPSignals(html string, p *patterns.Compiled) models.NAP {
	doc, err := parseDoc(html)
	if err != nil {
		return models.NAP{}
	}
	text := doc.Text()

	var nap models.NAP

	if m := p.BusinessIDRe.FindStringSubmatch(text); len(m) > 1 {
		nap.CVR = innerSpacesRe.ReplaceAllString(m[1], "")
	}
	if m := p.EmailRe.FindString(text); m != "" {
		nap.Email = m
	}
	if m := p.PhoneRe.FindString(text); m != "" {
		nap.Phone = NormalizePhone(m)
	}
	if m := p.AddressRe.FindStringSubmatch(text); len(m) > 3 {
		nap.Address = m[1] + ", " + m[2] + " " + m[3]
	}
	return nap
}

// NormalizePhone strips everything except digits and a leading plus so that
// differently formatted renderings of the same number compare equal.
func NormalizePhone(phone string) string {
	trimmed := strings.TrimSpace(phone)
	digits := nonDigitsRe.ReplaceAllString(trimmed, "")
	if strings.HasPrefix(trimmed, "+") {
		return "+" + digits
	}
	return digits
}
