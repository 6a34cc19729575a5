package extract

import (
	"testing"
)

func TestJSONLDRepairAndDrop(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">
{"@context": "https://schema.org", "@type": "Organization", "name": "Acme Rens"}
</script>
<script type="application/ld+json">
{"@context": "https://schema.org", "@type": "Service", "name": "Fliserens",}
</script>
<script type="application/ld+json">
{{{ not even close
</script>
</head><body></body></html>`

	blocks := JSONLD(html)
	types, objects := FlattenSchemaTypes(blocks)

	if !containsType(types, "Organization") {
		t.Errorf("types = %v, want Organization from the valid block", types)
	}
	if !containsType(types, "Service") {
		t.Errorf("types = %v, want Service from the repaired block", types)
	}
	if len(objects) != 2 {
		t.Errorf("objects = %d, want 2 (garbage block dropped)", len(objects))
	}
}

func TestFlattenSchemaTypesNested(t *testing.T) {
	html := `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "https://schema.org/LocalBusiness", "name": "Acme"},
    {"@type": ["Service", "Offer"], "name": "Fliserens"}
  ]
}
</script>`

	types, _ := FlattenSchemaTypes(JSONLD(html))

	for _, want := range []string{"LocalBusiness", "Offer", "Service"} {
		if !containsType(types, want) {
			t.Errorf("types = %v, missing %s", types, want)
		}
	}
}

func TestFlattenSchemaTypesDeduplicates(t *testing.T) {
	blocks := []any{
		map[string]any{"@context": "https://schema.org", "@type": "Organization"},
		map[string]any{"@context": "https://schema.org", "@type": "Organization"},
	}
	types, objects := FlattenSchemaTypes(blocks)
	if len(types) != 1 {
		t.Errorf("types = %v, want single Organization", types)
	}
	if len(objects) != 2 {
		t.Errorf("objects = %d, want both blocks kept", len(objects))
	}
}

func containsType(types []string, want string) bool {
	for _, ty := range types {
		if ty == want {
			return true
		}
	}
	return false
}
