// Package classify assigns the page type the requirements table is keyed on.
package classify

import (
	"strings"

	"github.com/K-Bak/geo-checker/models"
	"github.com/K-Bak/geo-checker/pkg/patterns"
)

// productSchemaTypes are the normalized schema types that mark a commerce
// page on their own.
var productSchemaTypes = map[string]struct{}{
	"product":         {},
	"offer":           {},
	"aggregaterating": {},
	"review":          {},
	"itemlist":        {},
}

// Classify decides the page type from URL shape, schema types, headings and
// body terminology. Checks run in priority order; the first match wins.
// Service and blog terms are matched against the title and H1/H2 headings
// only, never the body copy, so a stray mention in a paragraph cannot flip
// the label.
func Classify(title string, headings models.Headings, text, pageURL string, schemaTypes []string, table *patterns.Compiled) models.PageType {
	lowerURL := strings.ToLower(pageURL)
	parts := append([]string{title}, headings.H1...)
	parts = append(parts, headings.H2...)
	head := strings.ToLower(strings.Join(parts, " "))

	hasProductSchema := false
	for _, t := range schemaTypes {
		if _, ok := productSchemaTypes[strings.ToLower(t)]; ok {
			hasProductSchema = true
			break
		}
	}

	// Commerce signals are disjunctive: product schema or a product-listing
	// URL each qualify on their own.
	if hasProductSchema || containsAny(lowerURL, table.Table.ProductURLHints) {
		return models.ProductPage
	}

	if containsAny(head, table.Table.ServiceTerms) {
		return models.ServicePage
	}

	if containsAny(lowerURL, table.Table.BlogTerms) || containsAny(head, table.Table.BlogTerms) {
		return models.ContentPage
	}

	// Residual commerce hint: buy-UI language still marks a shop page when
	// schema and URL shape gave nothing, which is all a pasted page has.
	if containsAny(strings.ToLower(text), table.Table.PurchaseTerms) {
		return models.ProductPage
	}

	return models.GeneralPage
}

func containsAny(haystack string, terms []string) bool {
	for _, t := range terms {
		if t != "" && strings.Contains(haystack, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
