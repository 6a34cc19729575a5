package extract

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kaptinlin/jsonrepair"
)

var controlCharsRe = regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`)

// JSONLD returns every parseable JSON-LD block on the page. Blocks that fail
// a strict parse get one repair attempt (trailing commas and similar damage);
// blocks that still fail are dropped silently so malformed markup never
// aborts the page analysis.
func JSONLD(html string) []any {
	doc, err := parseDoc(html)
	if err != nil {
		return nil
	}

	var out []any
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := controlCharsRe.ReplaceAllString(strings.TrimSpace(s.Text()), "")
		if raw == "" {
			return
		}

		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			repaired, repairErr := jsonrepair.JSONRepair(raw)
			if repairErr != nil {
				return
			}
			if err := json.Unmarshal([]byte(repaired), &data); err != nil {
				return
			}
		}
		out = append(out, data)
	})
	return out
}

// FlattenSchemaTypes walks all JSON-LD structures collecting every @type
// value into a normalized, sorted, deduplicated list, and every dict node
// carrying both @context and @type into the schema-object list used for
// structured field lookups.
func FlattenSchemaTypes(blocks []any) (types []string, objects []map[string]any) {
	seen := map[string]struct{}{}

	var walk func(x any)
	walk = func(x any) {
		switch v := x.(type) {
		case map[string]any:
			if t, ok := v["@type"]; ok {
				for _, name := range typeStrings(t) {
					norm := NormSchemaType(name)
					if norm == "" {
						continue
					}
					if _, dup := seen[norm]; !dup {
						seen[norm] = struct{}{}
						types = append(types, norm)
					}
				}
				if _, hasCtx := v["@context"]; hasCtx {
					objects = append(objects, v)
				}
			}
			for _, val := range v {
				walk(val)
			}
		case []any:
			for _, item := range v {
				walk(item)
			}
		}
	}
	for _, b := range blocks {
		walk(b)
	}

	sort.Strings(types)
	return types, objects
}

// NormSchemaType strips the schema.org URL prefix from a type name.
func NormSchemaType(t string) string {
	t = strings.ReplaceAll(t, "http://schema.org/", "")
	t = strings.ReplaceAll(t, "https://schema.org/", "")
	return strings.TrimSpace(t)
}

// typeStrings flattens an @type value (string or list of strings) into a
// string slice.
func typeStrings(t any) []string {
	switch v := t.(type) {
	case string:
		return []string{v}
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
