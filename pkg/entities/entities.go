// Package entities extracts ranked topic candidates from page text. The
// default recognizer is a capitalized-phrase heuristic; a language detector
// picks the stopword set used by the noise filter, so Danish pages are not
// penalized with English stopwords and vice versa.
package entities

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/K-Bak/geo-checker/pkg/patterns"
)

const (
	maxTopics        = 18
	bodySampleRunes  = 4000
	titleWeight      = 3
	h1Weight         = 3
	h2Weight         = 2
	maxALLCAPSLetter = 6
)

// Recognizer produces raw entity mentions from a text sample. Implementations
// may be backed by a model; the capitalized-phrase heuristic is the fallback
// that always works.
type Recognizer interface {
	Recognize(text string) []string
}

// capitalized word, optionally followed by up to three more, Danish letters included
var phraseRe = regexp.MustCompile(`\b[A-ZÆØÅ][a-zæøåA-ZÆØÅ0-9&-]*(?:\s+[A-ZÆØÅ][a-zæøåA-ZÆØÅ0-9&-]*){0,3}`)

// HeuristicRecognizer finds runs of capitalized words (1-4 tokens) as entity
// candidates.
type HeuristicRecognizer struct{}

func (HeuristicRecognizer) Recognize(text string) []string {
	return phraseRe.FindAllString(text, -1)
}

// Sample builds the weighted text sample topics are mined from: the title and
// H1s are repeated to boost their phrases, H2s count double, H3s once, and a
// bounded prefix of the body keeps long pages from dominating.
func Sample(title string, h1, h2, h3 []string, body string) string {
	var b strings.Builder
	write := func(s string, n int) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		for i := 0; i < n; i++ {
			b.WriteString(s)
			b.WriteString(". ")
		}
	}
	write(title, titleWeight)
	for _, h := range h1 {
		write(h, h1Weight)
	}
	for _, h := range h2 {
		write(h, h2Weight)
	}
	for _, h := range h3 {
		write(h, 1)
	}
	runes := []rune(body)
	if len(runes) > bodySampleRunes {
		runes = runes[:bodySampleRunes]
	}
	write(string(runes), 1)
	return b.String()
}

// Topics runs the recognizer over the weighted sample, filters noise and
// returns up to 18 topics ranked by frequency, then length, then
// alphabetically.
func Topics(rec Recognizer, table *patterns.Compiled, title string, h1, h2, h3 []string, body string) []string {
	if rec == nil {
		rec = HeuristicRecognizer{}
	}
	sample := Sample(title, h1, h2, h3, body)
	stop := stopwordsFor(sample)
	ban := make(map[string]struct{}, len(table.Table.BoilerplateTerms))
	for _, t := range table.Table.BoilerplateTerms {
		ban[strings.ToLower(t)] = struct{}{}
	}

	counts := map[string]int{}
	display := map[string]string{}
	for _, cand := range rec.Recognize(sample) {
		cand = strings.TrimSpace(strings.Trim(cand, ".,;:"))
		if cand == "" || isNoise(cand, stop, ban) {
			continue
		}
		key := strings.ToLower(cand)
		counts[key]++
		if _, ok := display[key]; !ok {
			display[key] = cand
		}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	if len(keys) > maxTopics {
		keys = keys[:maxTopics]
	}

	topics := make([]string, 0, len(keys))
	for _, k := range keys {
		topics = append(topics, display[k])
	}
	return topics
}

// isNoise drops boilerplate phrases, prices and bare numbers, shouting
// acronyms, too-short single tokens, and phrases dominated by stopwords.
func isNoise(phrase string, stop map[string]struct{}, ban map[string]struct{}) bool {
	lower := strings.ToLower(phrase)
	if _, banned := ban[lower]; banned {
		return true
	}
	if numericRe.MatchString(phrase) {
		return true
	}
	if isShouting(phrase) {
		return true
	}
	tokens := strings.Fields(lower)
	if len(tokens) == 1 && len([]rune(tokens[0])) <= 3 {
		return true
	}
	stopCount := 0
	for _, t := range tokens {
		if _, ok := stop[t]; ok {
			stopCount++
		}
	}
	return len(tokens) > 0 && stopCount*2 >= len(tokens)
}

var numericRe = regexp.MustCompile(`^[\d.,:%\s]+(?:kr\.?|dkk|€|\$)?$|^(?:kr\.?|dkk|€|\$)\s*[\d.,]+$`)

func isShouting(s string) bool {
	letters, upper := 0, 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters >= maxALLCAPSLetter && letters == upper
}
