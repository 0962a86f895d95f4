package consumer

import "github.com/kuandriy/topicgate/internal/vector"

// Summarizer turns a ranked set of documents plus a topical query vector
// into a short textual summary. Real extractive summarisation (MMR,
// DGS, ...) is explicitly out of scope (spec.md's Non-goals say the
// downstream summariser is invoked but its internals are out of scope),
// so it is modeled as an injected interface the consumer calls once a
// timeline node expires, grounded on
// original_source/lib/summarization/algorithms/dgs.py for the role these
// scores play and spec.md section 4.8.
type Summarizer interface {
	Summarize(documents []*vector.Document, limit int, query vector.Vector) string
}

// LogSummarizer is the only Summarizer this module ships: it reports the
// single highest-scored document (the caller has already ranked documents
// by brevity x emotion) truncated to limit runes.
type LogSummarizer struct{}

// Summarize returns the best-ranked document's text, truncated to limit
// runes, or "" if documents is empty.
func (LogSummarizer) Summarize(documents []*vector.Document, limit int, query vector.Vector) string {
	if len(documents) == 0 {
		return ""
	}
	text := documents[0].Text
	runes := []rune(text)
	if limit > 0 && len(runes) > limit {
		text = string(runes[:limit])
	}
	return text
}
