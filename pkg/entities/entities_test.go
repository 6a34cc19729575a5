package entities

import (
	"strings"
	"testing"

	"github.com/K-Bak/geo-checker/pkg/patterns"
)

func TestTopicsRankingAndNoise(t *testing.T) {
	p := patterns.MustDanish()
	body := strings.Repeat("Vi anbefaler Acme Rens til alle opgaver. ", 3) +
		"Kontakt os i dag. Læs mere om vores arbejde. MENU FORSIDE. Pris: 1.299 kr."

	topics := Topics(nil, p, "Acme Rens | Fliserens på Sjælland",
		[]string{"Professionel Fliserens"}, nil, nil, body)

	if len(topics) == 0 {
		t.Fatal("Topics() returned nothing")
	}
	if !hasTopic(topics, "Acme Rens") {
		t.Errorf("topics = %v, want Acme Rens", topics)
	}
	for _, banned := range []string{"Læs", "MENU FORSIDE", "Kontakt os"} {
		if hasTopic(topics, banned) {
			t.Errorf("topics = %v, noise %q not filtered", topics, banned)
		}
	}
	if len(topics) > 18 {
		t.Errorf("got %d topics, cap is 18", len(topics))
	}
}

func TestTopicsWeighting(t *testing.T) {
	p := patterns.MustDanish()

	// The title phrase repeats in the weighted sample; a single body mention
	// must not outrank it.
	topics := Topics(nil, p, "Tagrens Sjælland", nil, nil, nil,
		"Enkelt nævnt her: Jydsk Tagservice leverer også.")

	if len(topics) < 2 {
		t.Fatalf("topics = %v, want at least two", topics)
	}
	if topics[0] != "Tagrens Sjælland" {
		t.Errorf("topics[0] = %q, want the title phrase first", topics[0])
	}
}

func TestIsNoise(t *testing.T) {
	p := patterns.MustDanish()
	ban := map[string]struct{}{}
	for _, term := range p.Table.BoilerplateTerms {
		ban[term] = struct{}{}
	}
	stop := toSet(danishStopwords)

	tests := []struct {
		phrase string
		want   bool
	}{
		{"Acme Rens", false},
		{"Læs mere", true},        // boilerplate
		{"1.299", true},           // numeric
		{"NYHEDSBREV", true},      // shouting
		{"Om", true},              // short single token
		{"Og Det Er", true},       // stopword-dominated
		{"Miljøstyrelsen", false}, // single long token passes
	}
	for _, tt := range tests {
		if got := isNoise(tt.phrase, stop, ban); got != tt.want {
			t.Errorf("isNoise(%q) = %v, want %v", tt.phrase, got, tt.want)
		}
	}
}

func TestStopwordsForLanguage(t *testing.T) {
	da := stopwordsFor("Vi tilbyder professionel rens af fliser og tage i hele Danmark, og vores kunder er glade.")
	if _, ok := da["og"]; !ok {
		t.Error("Danish sample did not select Danish stopwords")
	}

	en := stopwordsFor("We provide professional cleaning services for driveways and roofs across the whole country.")
	if _, ok := en["the"]; !ok {
		t.Error("English sample did not select English stopwords")
	}
}

func hasTopic(topics []string, want string) bool {
	for _, topic := range topics {
		if topic == want {
			return true
		}
	}
	return false
}
