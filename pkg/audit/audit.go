// Package audit wires the pipeline together: fetch, extract, classify,
// score, findings, graph, report. One Analyzer instance is safe for
// concurrent use.
package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/K-Bak/geo-checker/models"
	"github.com/K-Bak/geo-checker/pkg/classify"
	"github.com/K-Bak/geo-checker/pkg/entities"
	"github.com/K-Bak/geo-checker/pkg/extract"
	"github.com/K-Bak/geo-checker/pkg/fetcher"
	"github.com/K-Bak/geo-checker/pkg/findings"
	"github.com/K-Bak/geo-checker/pkg/graph"
	"github.com/K-Bak/geo-checker/pkg/patterns"
	"github.com/K-Bak/geo-checker/pkg/report"
	"github.com/K-Bak/geo-checker/pkg/robots"
	"github.com/K-Bak/geo-checker/pkg/score"
)

// ErrNoContent is returned when the page yields no HTML to analyze.
var ErrNoContent = errors.New("could not retrieve content")

// Analyzer runs the full audit pipeline.
type Analyzer struct {
	Fetcher    fetcher.Client
	Patterns   *patterns.Compiled
	Recognizer entities.Recognizer
	Logger     *slog.Logger

	// SkipTrustPages disables the shallow contact/about/privacy crawl.
	SkipTrustPages bool
}

// New builds an Analyzer with the Danish pattern defaults and the heuristic
// topic recognizer.
func New(f fetcher.Client, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		Fetcher:    f,
		Patterns:   patterns.MustDanish(),
		Recognizer: entities.HeuristicRecognizer{},
		Logger:     logger,
	}
}

// AnalyzeURL fetches a live page, its robots.txt and up to three trust pages,
// then runs the audit.
func (a *Analyzer) AnalyzeURL(ctx context.Context, rawURL string) (*models.Report, error) {
	res := a.Fetcher.Fetch(ctx, rawURL)
	a.Logger.Info("page fetched", "url", rawURL, "final_url", res.FinalURL, "status", res.StatusCode, "bytes", len(res.HTML))

	robotsBody, robotsStatus := a.fetchRobots(ctx, res.FinalURL)

	var trust []models.TrustPage
	if !a.SkipTrustPages && res.HTML != "" {
		trust = a.crawlTrustPages(ctx, res)
	}
	return a.AnalyzeFetched(res, robotsBody, robotsStatus, trust)
}

// AnalyzePasted audits pasted HTML or plain text. No network requests are
// made; robots and trust-page checks pass vacuously.
func (a *Analyzer) AnalyzePasted(blob string) (*models.Report, error) {
	return a.AnalyzeFetched(fetcher.FromPaste(blob), "", 0, nil)
}

// AnalyzeFetched runs the pipeline on an already-fetched page. A panic
// anywhere in extraction or scoring is converted into an error so one bad
// page cannot take the process down.
func (a *Analyzer) AnalyzeFetched(res models.FetchResult, robotsBody string, robotsStatus int, trust []models.TrustPage) (rep *models.Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.Logger.Error("analysis panicked", "url", res.FinalURL, "panic", r)
			rep, err = nil, fmt.Errorf("analysis failed for %s: %v", res.FinalURL, r)
		}
	}()

	if res.HTML == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, res.FinalURL)
	}

	page := a.extractPage(res)
	page.Indexability = a.decideIndexability(res, page.Meta, robotsBody, robotsStatus)

	schemaObjs := page.SchemaObjects
	orgObj := extract.FindOrgLike(schemaObjs)
	personObj := extract.FindPerson(schemaObjs)
	serviceObj := extract.FindService(schemaObjs)
	productObj := extract.FindProduct(schemaObjs)

	pageType := classify.Classify(page.Title, page.Headings, page.Text, page.FinalURL, page.SchemaTypes, a.Patterns)

	page.Topics = entities.Topics(a.Recognizer, a.Patterns, page.Title,
		page.Headings.H1, page.Headings.H2, page.Headings.H3, page.Text)

	sig := a.buildSignals(page, pageType, orgObj, personObj, serviceObj, trust)
	reqs, scores := score.Compute(sig)
	found := findings.Build(sig, reqs)
	wins := findings.QuickWins(found)

	out := graph.Input{
		FinalURL:       page.FinalURL,
		Title:          page.Title,
		PageType:       pageType,
		OrgName:        extract.OrgField(orgObj, "name"),
		AuthorName:     extract.OrgField(personObj, "name"),
		Byline:         page.Byline,
		ServiceName:    extract.OrgField(serviceObj, "name"),
		HighTrustLinks: extract.ClassifyOutLinks(page.ExternalLinks, a.Patterns).HighTrust,
		Topics:         page.Topics,
	}
	if productObj != nil || pageType == models.ProductPage {
		details := extract.Product(productObj, res.HTML, page.Meta, page.Text, a.Patterns)
		out.Product = &details
	}

	rep = &models.Report{
		FinalURL:     page.FinalURL,
		PageType:     pageType,
		Scores:       scores,
		Requirements: reqs,
		Findings:     found,
		QuickWins:    wins,
		Graph:        graph.Build(out),
		Detected:     score.DetectedMap(sig),
		Snippets:     findings.SnippetMap(),
		TrustPages:   trust,
	}
	rep.Summary = report.BuildSummary(rep)

	a.Logger.Info("analysis complete", "url", page.FinalURL,
		"page_type", string(pageType), "overall", scores.Overall, "findings", len(found))
	return rep, nil
}

func (a *Analyzer) extractPage(res models.FetchResult) *models.ExtractedPage {
	text, title := extract.TextAndTitle(res.HTML)
	internal, external := extract.Links(res.HTML, res.FinalURL)
	blocks := extract.JSONLD(res.HTML)
	types, objects := extract.FlattenSchemaTypes(blocks)

	return &models.ExtractedPage{
		FinalURL:      res.FinalURL,
		Text:          text,
		Title:         title,
		Headings:      extract.Headings(res.HTML),
		InternalLinks: internal,
		ExternalLinks: external,
		SchemaTypes:   types,
		SchemaObjects: objects,
		Meta:          extract.MetaTags(res.HTML),
		NAP:           extract.NAPSignals(res.HTML, a.Patterns),
		Byline:        extract.Byline(res.HTML, res.FinalURL),
	}
}

func (a *Analyzer) decideIndexability(res models.FetchResult, meta models.Meta, robotsBody string, robotsStatus int) models.Indexability {
	path := "/"
	if u, err := url.Parse(res.FinalURL); err == nil && u.Path != "" {
		path = u.Path
	}
	var allows *bool
	var rule string
	if robotsStatus == 200 {
		allows, rule = robots.EvaluatePath(robotsBody, path)
	}
	return robots.Decide(res.StatusCode, meta.Robots, res.Headers["X-Robots-Tag"], robotsStatus, allows, rule)
}

func (a *Analyzer) fetchRobots(ctx context.Context, pageURL string) (body string, status int) {
	robotsURL := fetcher.OriginRobotsURL(pageURL)
	if robotsURL == "" {
		return "", 0
	}
	res := a.Fetcher.Fetch(ctx, robotsURL)
	a.Logger.Debug("robots.txt fetched", "url", robotsURL, "status", res.StatusCode)
	return res.HTML, res.StatusCode
}

func (a *Analyzer) buildSignals(page *models.ExtractedPage, pageType models.PageType, orgObj, personObj, serviceObj map[string]any, trust []models.TrustPage) score.Signals {
	p := a.Patterns
	lowerText := strings.ToLower(page.Text)
	out := extract.ClassifyOutLinks(page.ExternalLinks, p)
	citations := extract.ExternalCitations(page.ExternalLinks, p)

	hasClaims := false
	for _, re := range p.ClaimRes {
		if re.MatchString(page.Text) {
			hasClaims = true
			break
		}
	}

	reviewMentioned := false
	for _, term := range p.Table.ReviewMention {
		if strings.Contains(lowerText, strings.ToLower(term)) {
			reviewMentioned = true
			break
		}
	}

	intent := map[string]bool{}
	if pageType == models.ServicePage {
		for name, re := range p.IntentRes {
			intent[name] = re.MatchString(page.Text)
		}
	}

	types := map[string]struct{}{}
	for _, t := range page.SchemaTypes {
		types[strings.ToLower(t)] = struct{}{}
	}
	hasType := func(names ...string) bool {
		for _, n := range names {
			if _, ok := types[n]; ok {
				return true
			}
		}
		return false
	}

	sig := score.Signals{
		PageType: pageType,

		WordCount:         len(strings.Fields(page.Text)),
		HasH1:             len(page.Headings.H1) > 0,
		ExternalCitations: citations,
		HighTrustCites:    len(out.HighTrust),
		HasClaims:         hasClaims,
		HasExpertQuote:    p.ExpertQuoteRe.MatchString(page.Text),
		HasGuarantee:      p.GuaranteeRe.MatchString(page.Text),
		GuaranteeHasTerms: p.GuaranteeRe.MatchString(page.Text) && p.TermsRe.MatchString(page.Text),
		IntentBlocks:      intent,
		ReviewMentioned:   reviewMentioned,
		HasFAQText:        p.IntentRes["faq"] != nil && p.IntentRes["faq"].MatchString(page.Text),

		NAP:            page.NAP,
		SocialLinks:    len(extract.SocialLinks(page.ExternalLinks, p)),
		HasAboutLink:   extract.HasInternalLinkHint(page.InternalLinks, p.Table.AboutHints),
		HasContactLink: extract.HasInternalLinkHint(page.InternalLinks, p.Table.ContactHints),
		HasPrivacyLink: extract.HasInternalLinkHint(page.InternalLinks, p.Table.PrivacyHints),
		HasAuthor:      page.Byline != "" || p.AuthorRe.MatchString(page.Text),
		TrustPagesSeen: len(trust),

		HasAnySchema:     len(page.SchemaTypes) > 0,
		HasOrgSchema:     orgObj != nil || hasType("organization", "localbusiness"),
		HasPersonSchema:  personObj != nil,
		HasServiceSchema: serviceObj != nil || hasType("service"),
		HasProductSchema: hasType("product", "offer"),
		HasReviewSchema:  hasType("review", "aggregaterating"),
		HasFAQSchema:     hasType("faqpage"),

		HasMetaDescription: strings.TrimSpace(page.Meta.Description) != "",
		HasCanonical:       strings.TrimSpace(page.Meta.Canonical) != "",

		Indexability: page.Indexability,
	}

	if orgObj != nil {
		comp := extract.OrgCompleteness(orgObj)
		sig.OrgCompleteness = comp
		sig.OrgHasID = comp["has_id"]
		sig.OrgHasSameAs = comp["has_sameAs"]
	}

	if serviceObj != nil && orgObj != nil {
		if providerID := extract.ProviderID(serviceObj); providerID != "" {
			if orgID := extract.OrgField(orgObj, "@id"); orgID != "" {
				match := providerID == orgID
				sig.ProviderIDMatch = &match
			}
		}
	}

	if sig.HasCanonical {
		if ok := canonicalHostMatches(page.Meta.Canonical, page.FinalURL); ok != nil {
			sig.CanonicalHostOK = ok
		}
	}

	sig.NAPConsistent = napConsistency(page.NAP, trust)
	return sig
}

// canonicalHostMatches compares the canonical's host with the page host.
// Relative canonicals and unparsable URLs return nil (unchecked).
func canonicalHostMatches(canonical, pageURL string) *bool {
	cu, err := url.Parse(strings.TrimSpace(canonical))
	if err != nil || cu.Host == "" {
		return nil
	}
	pu, err := url.Parse(pageURL)
	if err != nil || pu.Host == "" {
		return nil
	}
	match := strings.EqualFold(strings.TrimPrefix(cu.Host, "www."), strings.TrimPrefix(pu.Host, "www."))
	return &match
}

// napConsistency checks that every contact signal present on both the page
// and a trust page agrees. nil when there is nothing to compare.
func napConsistency(page models.NAP, trust []models.TrustPage) *bool {
	compared := false
	consistent := true
	check := func(a, b string) {
		if a == "" || b == "" {
			return
		}
		compared = true
		if !strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
			consistent = false
		}
	}
	for _, tp := range trust {
		check(page.Phone, tp.NAP.Phone)
		check(page.Email, tp.NAP.Email)
		check(page.CVR, tp.NAP.CVR)
	}
	if !compared {
		return nil
	}
	return &consistent
}
