package consumer

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/kuandriy/topicgate/internal/normalize"
	"github.com/kuandriy/topicgate/internal/vector"
)

// BuildTFIDFScheme runs the one-shot "understanding phase" spec.md section
// 4.8 describes: it reads a corpus of line-delimited JSON posts in full,
// non-streaming, and builds a TFIDF weighting scheme from their document
// frequencies, for consumers to use in place of the default TF scheme.
func BuildTFIDFScheme(src io.Reader, cfg normalize.TokenizerConfig) (vector.TFIDF, error) {
	return BuildTFIDFSchemeFiltered(src, cfg, nil)
}

// BuildTFIDFSchemeFiltered is BuildTFIDFScheme with an extra predicate
// applied after the standard normalize.Valid check — the idf tool's
// --remove-retweets/--skip-unverified flags (spec.md section 6) narrow
// the corpus further than the consume tool's fixed validity rule does.
// A nil filter keeps every post that passes normalize.Valid.
func BuildTFIDFSchemeFiltered(src io.Reader, cfg normalize.TokenizerConfig, filter func(normalize.Post) bool) (vector.TFIDF, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var tokenizedDocs [][]string
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var raw map[string]any
		if err := json.Unmarshal(line, &raw); err != nil {
			continue
		}
		post := normalize.Post(raw)
		if !normalize.Valid(post) {
			continue
		}
		if filter != nil && !filter(post) {
			continue
		}
		text := normalize.FullText(post)
		tokenizedDocs = append(tokenizedDocs, normalize.Tokenize(text, cfg))
	}
	if err := scanner.Err(); err != nil {
		return vector.TFIDF{}, err
	}

	return vector.BuildTFIDF(tokenizedDocs), nil
}
