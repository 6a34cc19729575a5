// Package graph builds the entity relationship graph the report visualizes:
// the page at the root, the business entity and author, offers and products,
// cited sources and detected topics.
package graph

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/K-Bak/geo-checker/models"
	"github.com/K-Bak/geo-checker/pkg/extract"
)

const (
	maxSourceNodes  = 4
	maxVariantNodes = 6
	maxLabelRunes   = 48

	colorPage    = "#e2e8f0"
	colorOrg     = "#dbeafe"
	colorMissing = "#fecaca"
	colorPerson  = "#dcfce7"
	colorService = "#fef9c3"
	colorProduct = "#fde68a"
	colorSource  = "#f1f5f9"
	colorTopic   = "#ede9fe"
)

// Input carries the resolved entities the graph is built from. Nil or empty
// fields render as dashed "missing" nodes where the page type expects them.
type Input struct {
	FinalURL string
	Title    string
	PageType models.PageType

	OrgName     string // empty when no organization schema was found
	AuthorName  string // from Person schema
	Byline      string // text-only author signal
	ServiceName string
	Product     *extract.ProductDetails

	HighTrustLinks []string
	Topics         []string
}

type builder struct {
	g    models.EntityGraph
	seen map[string]int
}

// Build assembles the graph. The page node is always first.
func Build(in Input) models.EntityGraph {
	b := &builder{seen: map[string]int{}}

	pageLabel := in.Title
	if pageLabel == "" {
		pageLabel = in.FinalURL
	}
	pageID := b.node("page", pageLabel, "page", "", colorPage, 30)

	orgID := b.orgNode(in, pageID)
	b.authorNode(in, pageID, orgID)

	if in.PageType == models.ServicePage {
		b.serviceNode(in, pageID, orgID)
	}

	productID := ""
	if in.Product != nil {
		productID = b.productNode(in.Product, pageID)
	}

	for i, link := range in.HighTrustLinks {
		if i == maxSourceNodes {
			break
		}
		id := b.node("source", hostnameOf(link), "source", "", colorSource, 16)
		b.edge(pageID, id, "cites", "")
	}

	// Topics attach to the most specific entity available.
	topicAnchor := pageID
	if productID != "" {
		topicAnchor = productID
	} else if orgID != "" {
		topicAnchor = orgID
	}
	for _, topic := range in.Topics {
		id := b.node("topic", topic, "topic", "", colorTopic, 14)
		b.edge(topicAnchor, id, "mentions", "dashed")
	}

	return b.g
}

// orgNode returns "" when only the dashed placeholder was added, so nothing
// else anchors to a missing organization.
func (b *builder) orgNode(in Input, pageID string) string {
	if in.OrgName != "" {
		id := b.node("org", in.OrgName, "organization", "", colorOrg, 26)
		b.edge(pageID, id, "publishedBy", "")
		return id
	}
	id := b.node("org", "Organization (missing)", "organization", "dashed", colorMissing, 26)
	b.edge(pageID, id, "publishedBy", "dashed")
	return ""
}

func (b *builder) authorNode(in Input, pageID, orgID string) {
	switch {
	case in.AuthorName != "":
		id := b.node("author", in.AuthorName, "person", "", colorPerson, 20)
		b.edge(pageID, id, "author", "")
		if orgID != "" {
			b.edge(id, orgID, "worksFor", "dashed")
		}
	case in.Byline != "":
		// Byline without Person schema: present in text, weak for machines.
		id := b.node("author", in.Byline, "person", "dashed", colorPerson, 20)
		b.edge(pageID, id, "author", "dashed")
	case in.PageType == models.ContentPage:
		id := b.node("author", "Author (missing)", "person", "dashed", colorMissing, 20)
		b.edge(pageID, id, "author", "dashed")
	}
}

func (b *builder) serviceNode(in Input, pageID, orgID string) {
	if in.ServiceName != "" {
		id := b.node("service", in.ServiceName, "service", "", colorService, 22)
		b.edge(pageID, id, "offers", "")
		if orgID != "" {
			b.edge(orgID, id, "provides", "")
		}
		return
	}
	id := b.node("service", "Service (missing)", "service", "dashed", colorMissing, 22)
	b.edge(pageID, id, "offers", "dashed")
}

func (b *builder) productNode(p *extract.ProductDetails, pageID string) string {
	name := p.Name
	if name == "" {
		name = "Product"
	}
	productID := b.node("product", name, "product", "", colorProduct, 28)
	b.edge(pageID, productID, "sells", "")

	if p.Brand != "" {
		id := b.node("brand", p.Brand, "brand", "", colorOrg, 18)
		b.edge(productID, id, "brand", "")
	}
	if p.Collection != "" {
		id := b.node("collection", p.Collection, "collection", "", colorSource, 16)
		b.edge(productID, id, "memberOf", "")
	}
	if p.Price != "" || p.Availability != "" {
		offerLabel := strings.TrimSpace(p.Price + " " + p.Currency)
		if offerLabel == "" {
			offerLabel = "Offer"
		}
		offerID := b.node("offer", offerLabel, "offer", "", colorService, 16)
		b.edge(productID, offerID, "offers", "")
		if p.Availability != "" {
			availID := b.node("availability", p.Availability, "availability", "", colorSource, 12)
			b.edge(offerID, availID, "availability", "")
		}
	}
	for i, v := range p.Variants {
		if i == maxVariantNodes {
			break
		}
		id := b.node("variant", v, "variant", "", colorSource, 12)
		b.edge(productID, id, "hasVariant", "")
	}
	return productID
}

// node adds a node, suffixing the id on collision, and returns the id used.
func (b *builder) node(id, label, typ, style, color string, size int) string {
	if n, taken := b.seen[id]; taken {
		b.seen[id] = n + 1
		id = fmt.Sprintf("%s-%d", id, n+1)
	}
	b.seen[id] = 0
	b.g.Nodes = append(b.g.Nodes, models.Node{
		ID: id, Label: truncate(label), Type: typ, Style: style, Color: color, Size: size,
	})
	return id
}

func (b *builder) edge(from, to, rel, style string) {
	b.g.Edges = append(b.g.Edges, models.Edge{From: from, To: to, Rel: rel, Style: style})
}

func truncate(s string) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= maxLabelRunes {
		return string(runes)
	}
	return string(runes[:maxLabelRunes-1]) + "…"
}

func hostnameOf(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return link
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
