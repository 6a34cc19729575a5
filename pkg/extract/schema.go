package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/K-Bak/geo-checker/models"
	"github.com/K-Bak/geo-checker/pkg/patterns"
)

// FindOrgLike returns the first schema object typed Organization,
// LocalBusiness or Corporation, or nil.
func FindOrgLike(objects []map[string]any) map[string]any {
	return findByType(objects, "organization", "localbusiness", "corporation")
}

// FindPerson returns the first Person schema object, or nil.
func FindPerson(objects []map[string]any) map[string]any {
	return findByType(objects, "person")
}

// FindService returns the first Service schema object, or nil.
func FindService(objects []map[string]any) map[string]any {
	return findByType(objects, "service")
}

// FindProduct returns the first Product schema object, or nil.
func FindProduct(objects []map[string]any) map[string]any {
	return findByType(objects, "product")
}

func findByType(objects []map[string]any, wanted ...string) map[string]any {
	for _, o := range objects {
		for _, t := range typeStrings(o["@type"]) {
			lt := strings.ToLower(NormSchemaType(t))
			for _, w := range wanted {
				if lt == w {
					return o
				}
			}
		}
	}
	return nil
}

// OrgField reads a string-valued field off a schema object.
func OrgField(obj map[string]any, field string) string {
	if obj == nil {
		return ""
	}
	if s, ok := obj[field].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// OrgCompleteness checks the fields a useful Organization object carries:
// @id, name, url, logo, sameAs, a phone or email, and a postal address.
// The returned keys are stable so findings can list what is missing.
func OrgCompleteness(org map[string]any) map[string]bool {
	sameAs, _ := org["sameAs"].([]any)
	hasSameAs := false
	for _, s := range sameAs {
		if str, ok := s.(string); ok && strings.TrimSpace(str) != "" {
			hasSameAs = true
			break
		}
	}

	hasAddress := false
	if addr, ok := org["address"].(map[string]any); ok {
		for _, k := range []string{"streetAddress", "addressLocality", "postalCode", "addressCountry"} {
			if v, ok := addr[k].(string); ok && strings.TrimSpace(v) != "" {
				hasAddress = true
				break
			}
		}
	}

	return map[string]bool{
		"has_id":             OrgField(org, "@id") != "",
		"has_name":           OrgField(org, "name") != "",
		"has_url":            OrgField(org, "url") != "",
		"has_logo":           OrgField(org, "logo") != "",
		"has_sameAs":         hasSameAs,
		"has_phone_or_email": OrgField(org, "telephone") != "" || OrgField(org, "email") != "",
		"has_address":        hasAddress,
	}
}

// ProviderID digs Service.provider.@id out of a Service object for the
// cross-reference check against Organization.@id.
func ProviderID(service map[string]any) string {
	provider, ok := service["provider"].(map[string]any)
	if !ok {
		return ""
	}
	return OrgField(provider, "@id")
}

// ProductDetails is the product data the graph builder renders: pulled from
// schema Product/offers/hasVariant fields with DOM-level fallbacks
// (Open Graph title/site name, microdata price attributes, stock keyword
// scan).
type ProductDetails struct {
	Name         string
	Brand        string
	Collection   string
	Price        string
	Currency     string
	Availability string
	Variants     []string
}

// Product assembles product details from the schema object and the page.
func Product(obj map[string]any, html string, meta models.Meta, text string, p *patterns.Compiled) ProductDetails {
	var d ProductDetails

	if obj != nil {
		d.Name = OrgField(obj, "name")
		d.Brand = nestedName(obj["brand"])
		d.Collection = nestedName(obj["isPartOf"])

		if offer := firstObject(obj["offers"]); offer != nil {
			d.Price = stringOr(offer["price"])
			d.Currency = stringOr(offer["priceCurrency"])
			d.Availability = NormSchemaType(stringOr(offer["availability"]))
		}
		for _, v := range listOf(obj["hasVariant"]) {
			if name := nestedName(v); name != "" {
				d.Variants = append(d.Variants, name)
			}
		}
	}

	// DOM fallbacks for pages with sparse schema.
	if d.Name == "" {
		d.Name = meta.OGTitle
	}
	if d.Brand == "" {
		d.Brand = meta.OGSiteName
	}
	if d.Price == "" || d.Currency == "" {
		if doc, err := parseDoc(html); err == nil {
			if d.Price == "" {
				d.Price = microdataValue(doc, "price")
			}
			if d.Currency == "" {
				d.Currency = microdataValue(doc, "priceCurrency")
			}
		}
	}
	if d.Availability == "" {
		lower := strings.ToLower(text)
		switch {
		case matchesAny(lower, p.InStockTerms):
			d.Availability = "InStock"
		case matchesAny(lower, p.OutOfStockTerms):
			d.Availability = "OutOfStock"
		}
	}
	return d
}

func microdataValue(doc *goquery.Document, prop string) string {
	sel := doc.Find(`[itemprop="` + prop + `"]`).First()
	if sel.Length() == 0 {
		return ""
	}
	if content := strings.TrimSpace(sel.AttrOr("content", "")); content != "" {
		return content
	}
	return strings.TrimSpace(sel.Text())
}

func nestedName(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		return OrgField(t, "name")
	}
	return ""
}

func firstObject(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case []any:
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				return m
			}
		}
	}
	return nil
}

func listOf(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		return []any{t}
	}
	return nil
}

func stringOr(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return trimFloat(t)
	}
	return ""
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
