package normalize

// CleanerConfig gates each step of the post-text cleaner pipeline
// (spec.md section 4.2). Every field defaults to false (zero value), the
// same "opt-in gate per step" shape as the teacher's `config` struct in
// cmd/focus/main.go, which distinguishes "field absent" from "field
// explicitly set".
type CleanerConfig struct {
	CollapseNewlines    bool
	RemoveHTMLEntities  bool
	RemoveNonASCII      bool
	RemoveURLs          bool
	SplitHashtags       bool
	RemoveHashtags      bool
	RemoveRetweetPrefix bool
	CompleteSentences   bool
	CollapseWhitespace  bool
	Capitalise          bool
	ReplaceMentions     bool
}

// TokenizerConfig gates each step of the tokeniser pipeline
// (spec.md section 4.2).
type TokenizerConfig struct {
	StripAccents             bool
	RemoveURLs               bool
	RemoveHTMLEntities       bool
	ASCIICast                bool
	CharacterNormalization   bool
	CharNormalizationCount   int // minimum run length to collapse; default 3
	RemoveMentions           bool
	RemoveHashtags           bool
	SplitHashtags            bool
	RemoveNumbers            bool
	PreserveYears            bool
	StripPunctuation         bool
	CaseFold                 bool
	RemoveStopwords          bool
	MinLength                int
	Stem                     bool
}

// DefaultTokenizerConfig matches the reference idf/consume tools' defaults:
// full pipeline enabled, 3-char-run normalisation, 2-char minimum length,
// stemming on.
func DefaultTokenizerConfig() TokenizerConfig {
	return TokenizerConfig{
		StripAccents:           true,
		RemoveURLs:             true,
		RemoveHTMLEntities:     true,
		ASCIICast:              true,
		CharacterNormalization: true,
		CharNormalizationCount: 3,
		RemoveMentions:         true,
		RemoveHashtags:         false,
		SplitHashtags:          true,
		RemoveNumbers:          true,
		PreserveYears:          true,
		StripPunctuation:       true,
		CaseFold:               true,
		RemoveStopwords:        true,
		MinLength:              2,
		Stem:                   true,
	}
}

// DefaultCleanerConfig enables the full cleaner pipeline.
func DefaultCleanerConfig() CleanerConfig {
	return CleanerConfig{
		CollapseNewlines:    true,
		RemoveHTMLEntities:  true,
		RemoveNonASCII:      true,
		RemoveURLs:          true,
		SplitHashtags:       false,
		RemoveRetweetPrefix: true,
		CompleteSentences:   true,
		CollapseWhitespace:  true,
		Capitalise:          true,
		ReplaceMentions:     true,
	}
}
