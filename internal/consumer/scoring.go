package consumer

import (
	"math"
	"regexp"
	"sort"

	"github.com/kuandriy/topicgate/internal/normalize"
	"github.com/kuandriy/topicgate/internal/vector"
)

var (
	upperPattern = regexp.MustCompile(`[A-Z]`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
)

// scoreDocuments ranks documents by brevity x emotion score, descending,
// matching eld_consumer.py's _score_documents. ZhaoConsumer does not use
// it; it ranks its summary candidates by length.
func scoreDocuments(documents []*vector.Document, cfg normalize.TokenizerConfig) []*vector.Document {
	ranked := append([]*vector.Document{}, documents...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i].Text, cfg) > score(ranked[j].Text, cfg)
	})
	return ranked
}

func score(text string, cfg normalize.TokenizerConfig) float64 {
	return brevityScore(text, cfg, 10) * emotionScore(text)
}

// brevityScore is the BLEU brevity-penalty-shaped score bounded in [0, 1]:
// exp(1 - r/len(tokens)), capped at 1, or 0 for an empty token stream.
func brevityScore(text string, cfg normalize.TokenizerConfig, r int) float64 {
	tokens := normalize.Tokenize(text, cfg)
	if len(tokens) == 0 {
		return 0
	}
	return math.Min(math.Exp(1-float64(r)/float64(len(tokens))), 1)
}

// emotionScore is the complement of the fraction of letters that are
// capitalized: 1 means no capitalization at all, 0 for no letters.
func emotionScore(text string) float64 {
	upper := len(upperPattern.FindAllString(text, -1))
	lower := len(lowerPattern.FindAllString(text, -1))
	if upper+lower == 0 {
		return 0
	}
	return 1 - float64(upper)/float64(upper+lower)
}
