package graph

import (
	"strings"
	"testing"

	"github.com/K-Bak/geo-checker/models"
	"github.com/K-Bak/geo-checker/pkg/extract"
)

func TestPageNodeIsRoot(t *testing.T) {
	g := Build(Input{FinalURL: "https://acme.dk/", Title: "Acme Rens", PageType: models.GeneralPage, OrgName: "Acme Rens"})

	if len(g.Nodes) == 0 {
		t.Fatal("empty graph")
	}
	if g.Nodes[0].ID != "page" || g.Nodes[0].Label != "Acme Rens" {
		t.Errorf("root node = %+v, want the page node first", g.Nodes[0])
	}
}

func TestMissingOrgIsDashed(t *testing.T) {
	g := Build(Input{FinalURL: "https://acme.dk/", Title: "Acme", PageType: models.GeneralPage})

	org := findNode(t, g, "org")
	if org.Style != "dashed" {
		t.Errorf("org style = %q, want dashed", org.Style)
	}
	if org.Color != colorMissing {
		t.Errorf("org color = %q, want %q", org.Color, colorMissing)
	}
}

func TestMissingAuthorOnlyOnArticles(t *testing.T) {
	article := Build(Input{FinalURL: "u", Title: "t", PageType: models.ContentPage, OrgName: "Acme"})
	if !hasNode(article, "author") {
		t.Error("article without author should render a dashed author node")
	}

	general := Build(Input{FinalURL: "u", Title: "t", PageType: models.GeneralPage, OrgName: "Acme"})
	if hasNode(general, "author") {
		t.Error("general page should not render an author node")
	}
}

func TestBylineIsWeakAuthor(t *testing.T) {
	g := Build(Input{FinalURL: "u", Title: "t", PageType: models.ContentPage, OrgName: "Acme", Byline: "Jens Jensen"})
	author := findNode(t, g, "author")
	if author.Style != "dashed" || author.Label != "Jens Jensen" {
		t.Errorf("byline author = %+v, want dashed node with the byline", author)
	}
}

func TestProductSubtree(t *testing.T) {
	g := Build(Input{
		FinalURL: "https://shop.dk/algefri",
		Title:    "AlgeFri 5L",
		PageType: models.ProductPage,
		OrgName:  "Acme Shop",
		Product: &extract.ProductDetails{
			Name: "AlgeFri 5L", Brand: "Acme", Price: "299", Currency: "DKK",
			Availability: "InStock",
			Variants:     []string{"1L", "2,5L", "5L", "10L", "20L", "25L", "50L", "100L"},
		},
	})

	product := findNode(t, g, "product")
	if product.Label != "AlgeFri 5L" {
		t.Errorf("product label = %q", product.Label)
	}
	if !hasNode(g, "brand") || !hasNode(g, "offer") || !hasNode(g, "availability") {
		t.Error("product subtree incomplete")
	}

	variants := 0
	for _, n := range g.Nodes {
		if n.Type == "variant" {
			variants++
		}
	}
	if variants != 6 {
		t.Errorf("variants = %d, want cap of 6", variants)
	}
}

func TestSourceCapAndTopics(t *testing.T) {
	g := Build(Input{
		FinalURL: "u", Title: "t", PageType: models.GeneralPage, OrgName: "Acme",
		HighTrustLinks: []string{
			"https://mst.dk/a", "https://sst.dk/b", "https://ft.dk/c",
			"https://europa.eu/d", "https://retsinformation.dk/e",
		},
		Topics: []string{"Fliserens", "Tagrens"},
	})

	sources := 0
	for _, n := range g.Nodes {
		if n.Type == "source" {
			sources++
		}
	}
	if sources != 4 {
		t.Errorf("sources = %d, want cap of 4", sources)
	}

	// Topics attach to the org when there is no product, via dashed edges.
	topicEdges := 0
	for _, e := range g.Edges {
		if e.Rel == "mentions" {
			topicEdges++
			if e.From != "org" {
				t.Errorf("topic edge from %q, want org", e.From)
			}
			if e.Style != "dashed" {
				t.Error("topic edge not dashed")
			}
		}
	}
	if topicEdges != 2 {
		t.Errorf("topic edges = %d, want 2", topicEdges)
	}
}

func TestTopicsFallBackToPageWithoutOrg(t *testing.T) {
	g := Build(Input{
		FinalURL: "u", Title: "t", PageType: models.GeneralPage,
		Topics: []string{"Fliserens"},
	})

	// The dashed placeholder still renders, but nothing anchors to it.
	org := findNode(t, g, "org")
	if org.Style != "dashed" {
		t.Errorf("org style = %q, want dashed", org.Style)
	}
	for _, e := range g.Edges {
		if e.Rel == "mentions" && e.From != "page" {
			t.Errorf("topic edge from %q, want page when no organization exists", e.From)
		}
	}
}

func TestIDCollisionGetsSuffix(t *testing.T) {
	g := Build(Input{
		FinalURL: "u", Title: "t", PageType: models.GeneralPage, OrgName: "Acme",
		Topics: []string{"Fliserens", "Tagrens", "Facaderens"},
	})

	var ids []string
	for _, n := range g.Nodes {
		if n.Type == "topic" {
			ids = append(ids, n.ID)
		}
	}
	want := []string{"topic", "topic-1", "topic-2"}
	if len(ids) != len(want) {
		t.Fatalf("topic ids = %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestLabelTruncation(t *testing.T) {
	long := strings.Repeat("Meget lang overskrift ", 5)
	g := Build(Input{FinalURL: "u", Title: long, PageType: models.GeneralPage, OrgName: "Acme"})
	if runes := []rune(g.Nodes[0].Label); len(runes) > 48 {
		t.Errorf("label length = %d runes, want <= 48", len(runes))
	}
}

func findNode(t *testing.T, g models.EntityGraph, id string) models.Node {
	t.Helper()
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("node %q not found in %+v", id, g.Nodes)
	return models.Node{}
}

func hasNode(g models.EntityGraph, id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}
