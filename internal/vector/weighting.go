package vector

import "math"

// WeightingScheme turns a token multiset into a weighted Document. TF and
// TFIDF are the two concrete implementations, matching spec.md's "Polymorphic
// weighting schemes" design note: model as an interface with two
// implementations, TF-IDF carrying its IDF state by value.
//
// Grounded on the teacher's tfidf.Engine.Vectorize, generalized from a single
// hardcoded weighting formula to an interface so the consumer's
// understanding phase can swap in a TFIDF scheme built from a corpus.
type WeightingScheme interface {
	Create(text string, tokens []string) *Document
}

// TF weights each term by its raw count in the document.
type TF struct{}

// Create implements WeightingScheme using raw term counts.
func (TF) Create(text string, tokens []string) *Document {
	counts := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return NewDocument(text, New(counts))
}

// TFIDF weights each term by tf(t,d) * (log10((N+1)/(df_t+1)) + 1), per
// spec.md section 4.1. N and DF are captured by value at construction time,
// not by reference to a live corpus, so a scheme snapshot stays stable once
// handed to a consumer.
type TFIDF struct {
	N  int
	DF map[string]int
}

// NewTFIDF builds a TFIDF scheme from a document count and per-term document
// frequencies.
func NewTFIDF(n int, df map[string]int) TFIDF {
	cp := make(map[string]int, len(df))
	for k, v := range df {
		cp[k] = v
	}
	return TFIDF{N: n, DF: cp}
}

// Create implements WeightingScheme using the TF-IDF formula.
func (s TFIDF) Create(text string, tokens []string) *Document {
	counts := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	weights := make(map[string]float64, len(counts))
	for term, tf := range counts {
		df := s.DF[term]
		idf := math.Log10(float64(s.N+1)/float64(df+1)) + 1
		weights[term] = tf * idf
	}
	return NewDocument(text, New(weights))
}

// BuildTFIDF counts document occurrences of each token once per document
// (not per occurrence) across a stream of tokenized documents, producing the
// DF table a TFIDF scheme needs. Matches spec.md section 4.1's "TF-IDF may be
// constructed from a stream" contract and the understanding-phase recipe in
// section 4.8.
func BuildTFIDF(tokenizedDocs [][]string) TFIDF {
	df := make(map[string]int)
	for _, tokens := range tokenizedDocs {
		seen := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			if !seen[t] {
				df[t]++
				seen[t] = true
			}
		}
	}
	return TFIDF{N: len(tokenizedDocs), DF: df}
}
