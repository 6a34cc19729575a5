package findings

// JSON-LD snippet templates attached to findings. Placeholders in square
// brackets are meant to be filled in by the site owner.

const OrganizationSnippet = `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Organization",
  "@id": "https://www.example.dk/#organization",
  "name": "[Virksomhedsnavn]",
  "url": "https://www.example.dk/",
  "logo": "https://www.example.dk/logo.png",
  "telephone": "[+45 XX XX XX XX]",
  "email": "[info@example.dk]",
  "vatID": "DK[CVR-nummer]",
  "address": {
    "@type": "PostalAddress",
    "streetAddress": "[Gadenavn og nr.]",
    "postalCode": "[Postnr.]",
    "addressLocality": "[By]",
    "addressCountry": "DK"
  },
  "sameAs": [
    "[https://www.facebook.com/...]",
    "[https://www.linkedin.com/company/...]",
    "[https://www.trustpilot.com/review/...]"
  ]
}
</script>`

const LocalBusinessSnippet = `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "LocalBusiness",
  "@id": "https://www.example.dk/#organization",
  "name": "[Virksomhedsnavn]",
  "url": "https://www.example.dk/",
  "telephone": "[+45 XX XX XX XX]",
  "vatID": "DK[CVR-nummer]",
  "address": {
    "@type": "PostalAddress",
    "streetAddress": "[Gadenavn og nr.]",
    "postalCode": "[Postnr.]",
    "addressLocality": "[By]",
    "addressCountry": "DK"
  },
  "areaServed": "[Sjælland / Hele Danmark]",
  "openingHours": "[Mo-Fr 08:00-16:00]"
}
</script>`

const PersonSnippet = `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Person",
  "name": "[Forfatterens navn]",
  "jobTitle": "[Titel]",
  "worksFor": { "@id": "https://www.example.dk/#organization" },
  "sameAs": [ "[https://www.linkedin.com/in/...]" ]
}
</script>`

const ServiceSnippet = `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Service",
  "name": "[Ydelsens navn, fx Fliserens]",
  "serviceType": "[Fliserens / Tagrens / ...]",
  "provider": { "@id": "https://www.example.dk/#organization" },
  "areaServed": "[Sjælland / Hele Danmark]",
  "offers": {
    "@type": "Offer",
    "priceCurrency": "DKK",
    "price": "[Pris eller fra-pris]"
  }
}
</script>`

const ProductSnippet = `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Product",
  "name": "[Produktnavn]",
  "brand": { "@type": "Brand", "name": "[Mærke]" },
  "description": "[Kort beskrivelse]",
  "offers": {
    "@type": "Offer",
    "priceCurrency": "DKK",
    "price": "[Pris]",
    "availability": "https://schema.org/InStock"
  }
}
</script>`

const FAQSnippet = `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "FAQPage",
  "mainEntity": [
    {
      "@type": "Question",
      "name": "[Spørgsmål]",
      "acceptedAnswer": { "@type": "Answer", "text": "[Svar]" }
    }
  ]
}
</script>`

const ReviewSnippet = `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "AggregateRating",
  "itemReviewed": { "@id": "https://www.example.dk/#organization" },
  "ratingValue": "[4.8]",
  "reviewCount": "[123]"
}
</script>`

// SnippetMap returns the named snippet templates for the report's snippets
// section.
func SnippetMap() map[string]string {
	return map[string]string{
		"organization":  OrganizationSnippet,
		"localbusiness": LocalBusinessSnippet,
		"person":        PersonSnippet,
		"service":       ServiceSnippet,
		"product":       ProductSnippet,
		"faq":           FAQSnippet,
		"review":        ReviewSnippet,
	}
}
