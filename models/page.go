package models

// FetchResult is the contract with the fetch collaborator: the final URL after
// redirects, the raw HTML body, the HTTP status and the response headers.
// A failed fetch is represented as empty HTML with StatusCode 0, never as a
// partially filled result.
type FetchResult struct {
	FinalURL   string            `json:"final_url"`
	HTML       string            `json:"html"`
	StatusCode int               `json:"status"`
	Headers    map[string]string `json:"headers"`
}

// Headings groups the page's heading texts by level.
type Headings struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
}

// Meta holds the meta tags the audit cares about. Absent tags are empty strings.
type Meta struct {
	Description   string `json:"description"`
	Robots        string `json:"robots"`
	Canonical     string `json:"canonical"`
	OGTitle       string `json:"og:title"`
	OGSiteName    string `json:"og:site_name"`
	OGType        string `json:"og:type"`
	OGURL         string `json:"og:url"`
	OGDescription string `json:"og:description"`
}

// NAP carries Name-Address-Phone business identity signals scraped from page
// text. Fields are empty when the corresponding pattern did not match.
type NAP struct {
	CVR     string `json:"cvr"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Indexability is the verdict on whether the page is retrievable and eligible
// for indexing. RobotsTxtAllows is nil when robots.txt was unavailable or
// unparseable (treated as non-blocking).
type Indexability struct {
	Label           string   `json:"label"`
	Blocked         bool     `json:"blocked"`
	BlockedReasons  []string `json:"blocked_reasons"`
	Status          int      `json:"status"`
	MetaRobots      string   `json:"meta_robots"`
	XRobotsTag      string   `json:"x_robots_tag"`
	RobotsTxtStatus int      `json:"robots_txt_status"`
	RobotsTxtAllows *bool    `json:"robots_txt_allows"`
	RobotsTxtRule   string   `json:"robots_txt_rule,omitempty"`
}

// ExtractedPage is the fact base produced once per analysis run. All slice
// fields are deduplicated preserving first-seen order, except SchemaTypes
// which is sorted alphabetically.
type ExtractedPage struct {
	FinalURL      string
	Text          string
	Title         string
	Headings      Headings
	InternalLinks []string
	ExternalLinks []string
	SchemaTypes   []string
	SchemaObjects []map[string]any
	Meta          Meta
	NAP           NAP
	Indexability  Indexability
	Topics        []string

	// Author byline surfaced by the readability pass, when present. A weaker
	// signal than Person schema but stronger than a bare text match.
	Byline string
}

// TrustPage is the condensed extraction of a shallow-crawled trust page
// (contact/about/privacy) used for cross-page NAP validation.
type TrustPage struct {
	Key         string         `json:"key"`
	URL         string         `json:"url"`
	Status      int            `json:"status"`
	NAP         NAP            `json:"nap"`
	SchemaTypes []string       `json:"schema_types"`
	OrgObject   map[string]any `json:"-"`
}
