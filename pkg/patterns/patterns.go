// Package patterns holds the locale-tuned heuristics the extractors and
// scorer run on: business-id/phone/address formats, trust and social domain
// hints, terminology word lists. Keeping them as data instead of inline
// literals lets the same pipeline audit other locales from a YAML file.
package patterns

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Table is the serializable pattern set for one locale.
type Table struct {
	Locale string `yaml:"locale"`

	// NAP extraction
	BusinessID string `yaml:"business_id"`
	Email      string `yaml:"email"`
	Phone      string `yaml:"phone"`
	Address    string `yaml:"address"`

	// Link classification
	HighTrustHints []string `yaml:"high_trust_hints"`
	SocialHints    []string `yaml:"social_hints"`
	AboutHints     []string `yaml:"about_hints"`
	ContactHints   []string `yaml:"contact_hints"`
	PrivacyHints   []string `yaml:"privacy_hints"`

	// Page-type terminology
	ServiceTerms    []string `yaml:"service_terms"`
	BlogTerms       []string `yaml:"blog_terms"`
	ProductURLHints []string `yaml:"product_url_hints"`
	PurchaseTerms   []string `yaml:"purchase_terms"`

	// Credibility heuristics (regex strings)
	ClaimPatterns []string `yaml:"claim_patterns"`
	Guarantee     string   `yaml:"guarantee"`
	GuaranteeTerm string   `yaml:"guarantee_terms"`
	ExpertQuote   string   `yaml:"expert_quote"`
	AuthorSignal  string   `yaml:"author_signal"`
	ReviewMention []string `yaml:"review_mention"`

	// Service intent coverage (regex strings keyed by block name)
	IntentCoverage map[string]string `yaml:"intent_coverage"`

	// Topic extraction noise filter
	BoilerplateTerms []string `yaml:"boilerplate_terms"`
	InStockTerms     []string `yaml:"in_stock_terms"`
	OutOfStockTerms  []string `yaml:"out_of_stock_terms"`
}

// Compiled is a Table with its regular expressions precompiled.
type Compiled struct {
	Table

	BusinessIDRe *regexp.Regexp
	EmailRe      *regexp.Regexp
	PhoneRe      *regexp.Regexp
	AddressRe    *regexp.Regexp

	ClaimRes      []*regexp.Regexp
	GuaranteeRe   *regexp.Regexp
	TermsRe       *regexp.Regexp
	ExpertQuoteRe *regexp.Regexp
	AuthorRe      *regexp.Regexp

	IntentRes map[string]*regexp.Regexp
}

// Compile validates and precompiles every regex in the table.
func (t Table) Compile() (*Compiled, error) {
	c := &Compiled{Table: t, IntentRes: make(map[string]*regexp.Regexp)}

	compile := func(name, expr string) (*regexp.Regexp, error) {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", name, err)
		}
		return re, nil
	}

	var err error
	if c.BusinessIDRe, err = compile("business_id", t.BusinessID); err != nil {
		return nil, err
	}
	if c.EmailRe, err = compile("email", t.Email); err != nil {
		return nil, err
	}
	if c.PhoneRe, err = compile("phone", t.Phone); err != nil {
		return nil, err
	}
	if c.AddressRe, err = compile("address", t.Address); err != nil {
		return nil, err
	}
	if c.GuaranteeRe, err = compile("guarantee", t.Guarantee); err != nil {
		return nil, err
	}
	if c.TermsRe, err = compile("guarantee_terms", t.GuaranteeTerm); err != nil {
		return nil, err
	}
	if c.ExpertQuoteRe, err = compile("expert_quote", t.ExpertQuote); err != nil {
		return nil, err
	}
	if c.AuthorRe, err = compile("author_signal", t.AuthorSignal); err != nil {
		return nil, err
	}
	for i, expr := range t.ClaimPatterns {
		re, err := compile(fmt.Sprintf("claim_patterns[%d]", i), expr)
		if err != nil {
			return nil, err
		}
		c.ClaimRes = append(c.ClaimRes, re)
	}
	for name, expr := range t.IntentCoverage {
		re, err := compile("intent_coverage."+name, expr)
		if err != nil {
			return nil, err
		}
		c.IntentRes[name] = re
	}
	return c, nil
}

// Load reads a pattern table from a YAML file and compiles it. Fields absent
// from the file fall back to the Danish defaults.
func Load(path string) (*Compiled, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern table: %w", err)
	}
	t := Danish()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse pattern table: %w", err)
	}
	return t.Compile()
}

// MustDanish compiles the built-in Danish table. The defaults are static so a
// compile failure is a programming error.
func MustDanish() *Compiled {
	c, err := Danish().Compile()
	if err != nil {
		panic(err)
	}
	return c
}

// Danish returns the built-in Danish-locale pattern table.
func Danish() Table {
	return Table{
		Locale: "da",

		BusinessID: `(?i)\bCVR\s*(?:[-\s]*nr\.?\s*)?[:.]?\s*(\d(?:\s*\d){7})\b`,
		Email:      `(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`,
		Phone:      `(\+?\s*45\s*)?(\d[\d\s\-]{6,}\d)`,
		Address:    `\b([A-ZÆØÅa-zæøå]+\s+\d+[A-Z]?)\s*,?\s*(\d{4})\s+([A-ZÆØÅa-zæøå]+)\b`,

		HighTrustHints: []string{
			"mst.dk", "miljo", "miljø", "ds.dk", "iso.org", "ecolabel",
			"svanemaerket", "svanemærket", "sikkerhedsdatablad", "sds",
			"ft.dk", "europa.eu", "sst.dk", "retsinformation.dk",
		},
		SocialHints: []string{
			"facebook.com", "instagram.com", "linkedin.com", "tiktok.com",
			"youtube.com", "x.com", "twitter.com", "trustpilot.com",
			"google.com/maps",
		},
		AboutHints:   []string{"/om", "about", "om-os", "about-us"},
		ContactHints: []string{"/kontakt", "contact"},
		PrivacyHints: []string{"/privacy", "privatliv", "cookie", "cookies", "gdpr"},

		ServiceTerms: []string{
			"service", "ydelse", "vi tilbyder", "pris", "tilbud", "bestil",
			"kontakt", "fliserens", "tagrens", "facaderens", "alge",
			"imprægner", "rengøring", "behandling", "rens", "terrasse",
		},
		BlogTerms: []string{"blog", "nyhed", "artikel", "guide", "sådan", "tips", "viden", "råd"},
		ProductURLHints: []string{
			"/produkt", "/produkter", "/product", "/products", "/shop", "/butik", "/vare",
		},
		PurchaseTerms: []string{
			"læg i kurv", "tilføj til kurv", "add to cart", "buy now", "køb nu",
			"på lager", "checkout", "kurv",
		},

		ClaimPatterns: []string{
			`\b100%`,
			`(?i)\b\d+\s*års\b`,
			`(?i)\bgaranti\b`,
			`(?i)\bgodkendt\b`,
			`(?i)\bcertificer\w+\b`,
			`(?i)\bMiljøstyrels\w+\b`,
			`(?i)\bISO\s*\d+\b`,
			`(?i)\bEU\s*Ecolabel\b`,
			`(?i)\bSvanemærk\w+\b`,
			`(?i)\btest\w+\b`,
			`(?i)\blaborator\w+\b`,
			`(?i)\bmiljøvenlig\b`,
		},
		Guarantee:     `(?i)\bgaranti\b`,
		GuaranteeTerm: `(?i)\b(gælder|forudsætter|vilkår|betingelser|undtaget|dokumentation)\b`,
		ExpertQuote:   `(?i)\b(siger|udtaler|ifølge|citat|kilde:)\b`,
		AuthorSignal:  `(?i)\b(forfatter|skrevet af|author|by)\b`,
		ReviewMention: []string{"trustpilot", "anmeldelse", "stjerner"},

		IntentCoverage: map[string]string{
			"pricing":          `(?i)\b(pris|priser|fra\s+\d+|kr\.?|dkk)\b`,
			"process":          `(?i)\b(sådan\s+foregår|proces|trin\s+\d|step\s+\d|fremgangsmåde)\b`,
			"time_expectation": `(?i)\b(timer|minutter|dage|leveringstid|responstid)\b`,
			"risk_tradeoffs":   `(?i)\b(forbehold|risiko|begrænsning|kan\s+ikke|afhænger\s+af)\b`,
			"materials_tools":  `(?i)\b(materialer|produkter|kemikal|udstyr|maskin|metode)\b`,
			"cases":            `(?i)\b(før\s+og\s+efter|case|resultat|før/efter)\b`,
			"faq":              `(?i)\b(faq|ofte\s+stillede|spørgsmål)\b`,
			"service_area":     `(?i)\b(vi\s+kører|dækker|område|hele\s+danmark|sjælland|jylland|fyn|københavn|aarhus)\b`,
			"contact_cta":      `(?i)\b(kontakt\s+os|ring\s+nu|få\s+tilbud|book|bestil)\b`,
			"what_is_it":       `(?i)\b(hvad\s+er|om\s+|vi\s+tilbyder)\b`,
		},

		BoilerplateTerms: []string{
			"menu", "navigation", "cookies", "cookie", "accepter", "accepter alle",
			"privatlivspolitik", "privacy", "gdpr", "login", "log ind", "tilmeld",
			"læs mere", "read more", "klik her", "click here", "kontakt os",
			"få tilbud", "book nu", "bestil nu", "åbningstider", "copyright",
			"alle rettigheder", "forside", "home", "søg", "search",
		},
		InStockTerms:    []string{"på lager", "in stock", "instock", "tilgængelig"},
		OutOfStockTerms: []string{"udsolgt", "out of stock", "outofstock", "ikke på lager"},
	}
}
