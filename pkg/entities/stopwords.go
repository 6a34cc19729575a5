package entities

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var danishStopwords = []string{
	"og", "i", "jeg", "det", "at", "en", "den", "til", "er", "som", "på",
	"de", "med", "han", "af", "for", "ikke", "der", "var", "mig", "sig",
	"men", "et", "har", "om", "vi", "min", "havde", "ham", "hun", "nu",
	"over", "da", "fra", "du", "ud", "sin", "dem", "os", "op", "man",
	"hans", "hvor", "eller", "hvad", "skal", "selv", "her", "alle", "vil",
	"blev", "kunne", "ind", "når", "være", "dog", "noget", "ville", "jo",
	"deres", "efter", "ned", "skulle", "denne", "end", "dette", "mit",
	"også", "under", "have", "dig", "anden", "hende", "mine", "alt",
	"meget", "sit", "sine", "vor", "mod", "disse", "hvis", "din", "nogle",
	"hos", "blive", "mange", "ad", "bliver", "hendes", "været", "thi",
	"jer", "sådan", "kan", "vores", "hvordan", "få", "mere", "alle",
}

var englishStopwords = []string{
	"the", "a", "an", "and", "or", "but", "if", "then", "of", "at", "by",
	"for", "with", "about", "against", "between", "into", "through",
	"during", "before", "after", "above", "below", "to", "from", "up",
	"down", "in", "out", "on", "off", "over", "under", "again", "further",
	"once", "here", "there", "when", "where", "why", "how", "all", "any",
	"both", "each", "few", "more", "most", "other", "some", "such", "no",
	"nor", "not", "only", "own", "same", "so", "than", "too", "very",
	"can", "will", "just", "should", "now", "is", "are", "was", "were",
	"be", "been", "being", "have", "has", "had", "do", "does", "did",
	"it", "its", "this", "that", "these", "those", "we", "our", "your",
	"you", "they", "their", "what", "which", "who",
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// stopwordsFor picks a stopword set based on detected language. Danish gets
// the Danish set, English the English set; anything indeterminate uses the
// merged set so the noise filter stays conservative instead of switching off.
func stopwordsFor(sample string) map[string]struct{} {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Danish, lingua.English).
			Build()
	})

	lang, ok := detector.DetectLanguageOf(sample)
	switch {
	case ok && lang == lingua.Danish:
		return toSet(danishStopwords)
	case ok && lang == lingua.English:
		return toSet(englishStopwords)
	default:
		merged := toSet(danishStopwords)
		for _, w := range englishStopwords {
			merged[w] = struct{}{}
		}
		return merged
	}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
