// Package config turns the consume/idf CLI's flags into the typed
// parameters the consumer and normaliser packages expect, and serialises
// both the as-passed and as-resolved configuration into the "cmd"/"pcmd"
// pair spec.md section 6 requires in the output file. Grounded on the
// teacher's cmd/focus/main.go config/defaultConfig/loadConfig split, which
// keeps a plain JSON-tagged struct for the as-passed shape and a separate
// step that fills in defaults.
package config

import (
	"path/filepath"

	"github.com/kuandriy/topicgate/internal/consumer"
	"github.com/kuandriy/topicgate/internal/normalize"
)

// ConsumeArgs mirrors the "consume" CLI's flags from spec.md section 6,
// as the user passed them; an omitted flag keeps its DefaultConsumeArgs
// value.
// This is the "cmd" half of the output file.
type ConsumeArgs struct {
	Event              string  `json:"event"`
	Consumer           string  `json:"consumer"`
	Understanding      string  `json:"understanding,omitempty"`
	Output             string  `json:"output,omitempty"`
	NoCache            bool    `json:"no_cache,omitempty"`
	Speed              float64 `json:"speed"`
	SkipMinutes        float64 `json:"skip,omitempty"`
	MaxInactivity      int     `json:"max_inactivity"`
	MaxTimeMinutes     float64 `json:"max_time,omitempty"`
	SkipRetweets       bool    `json:"skip_retweets,omitempty"`
	SkipUnverified     bool    `json:"skip_unverified,omitempty"`
	Periodicity        int64   `json:"periodicity,omitempty"`
	Scheme             string  `json:"scheme,omitempty"`
	MinSize            int     `json:"min_size"`
	MinBurst           float64 `json:"min_burst"`
	Threshold          float64 `json:"threshold"`
	PostRate           float64 `json:"post_rate"`
	MaxIntraSimilarity float64 `json:"max_intra_similarity"`
	FreezePeriod       int64   `json:"freeze_period"`
	LogNutrition       bool    `json:"log_nutrition,omitempty"`
}

// DefaultConsumeArgs matches spec.md section 6's stated CLI defaults.
func DefaultConsumeArgs() ConsumeArgs {
	return ConsumeArgs{
		Speed:              1,
		MaxInactivity:      60,
		Periodicity:        5,
		MinSize:            3,
		MinBurst:           0.5,
		Threshold:          0.5,
		PostRate:           1.7,
		MaxIntraSimilarity: 0.8,
		FreezePeriod:       20,
	}
}

// ResolvedConsumeArgs is the "pcmd" half: every value the pipeline will
// actually run with, after applying defaults and translating user-facing
// units (minutes) into the seconds the reader and consumers operate in.
type ResolvedConsumeArgs struct {
	ConsumeArgs
	OutputPath string `json:"output"`
	SkipTime   int64  `json:"skip_time"`
	MaxTime    int64  `json:"max_time_seconds"`
}

// DefaultOutputPath computes "<event-dir>/.out/<event-basename>", spec.md
// section 6's default --output location.
func DefaultOutputPath(eventPath string) string {
	dir := filepath.Dir(eventPath)
	base := filepath.Base(eventPath)
	return filepath.Join(dir, ".out", base)
}

// Resolve fills in computed fields (output path, minute-to-second
// conversions) on top of the user-supplied args.
func Resolve(args ConsumeArgs) ResolvedConsumeArgs {
	out := args.Output
	if out == "" {
		out = DefaultOutputPath(args.Event)
	}

	maxTime := int64(-1)
	if args.MaxTimeMinutes >= 0 {
		maxTime = int64(args.MaxTimeMinutes * 60)
	}

	return ResolvedConsumeArgs{
		ConsumeArgs: args,
		OutputPath:  out,
		SkipTime:    int64(args.SkipMinutes * 60),
		MaxTime:     maxTime,
	}
}

// ELDConfig builds the consumer package's ELDConfig from resolved args.
func (r ResolvedConsumeArgs) ELDConfig() consumer.ELDConfig {
	cfg := consumer.DefaultELDConfig()
	cfg.MinSize = r.MinSize
	cfg.MinBurst = r.MinBurst
	cfg.ClusterThreshold = r.Threshold
	cfg.MaxIntraSimilarity = r.MaxIntraSimilarity
	cfg.FreezePeriod = r.FreezePeriod
	cfg.LogNutrition = r.LogNutrition
	return cfg
}

// ZhaoConfig builds the consumer package's ZhaoConfig from resolved args.
func (r ResolvedConsumeArgs) ZhaoConfig() consumer.ZhaoConfig {
	cfg := consumer.DefaultZhaoConfig()
	if r.Periodicity > 0 {
		cfg.Periodicity = r.Periodicity
	}
	cfg.PostRate = r.PostRate
	return cfg
}

// TokenizerConfig returns the fixed full tokenizer pipeline the consume
// tool uses; the idf tool's flags select a subset instead (see
// IDFArgs.TokenizerConfig).
func (r ResolvedConsumeArgs) TokenizerConfig() normalize.TokenizerConfig {
	return normalize.DefaultTokenizerConfig()
}

// CleanerConfig returns the fixed full cleaner pipeline the consume tool
// uses to build document text.
func (r ResolvedConsumeArgs) CleanerConfig() normalize.CleanerConfig {
	return normalize.DefaultCleanerConfig()
}

// IDFArgs mirrors the "idf" CLI's flags from spec.md section 6.
type IDFArgs struct {
	File                        string `json:"file"`
	Output                      string `json:"output"`
	RemoveRetweets              bool   `json:"remove_retweets,omitempty"`
	SkipUnverified              bool   `json:"skip_unverified,omitempty"`
	RemoveUnicodeEntities       bool   `json:"remove_unicode_entities,omitempty"`
	NormalizeWords              bool   `json:"normalize_words,omitempty"`
	CharacterNormalizationCount int    `json:"character_normalization_count"`
	Stem                        bool   `json:"stem,omitempty"`

	// Summary requests a human-readable term/document-frequency table on
	// stdout alongside the mandated JSON output file. It is a terminal
	// convenience, not part of the recorded cmd/pcmd config, so it is
	// excluded from serialisation.
	Summary bool `json:"-"`
}

// DefaultIDFArgs matches spec.md section 6's idf tool defaults.
func DefaultIDFArgs() IDFArgs {
	return IDFArgs{CharacterNormalizationCount: 3}
}

// TokenizerConfig translates the idf tool's narrower flag set into a
// TokenizerConfig — only the steps the idf flags actually name are gated
// by the user; the rest run with sane fixed defaults, matching spec.md's
// idf flag list (a strict subset of the full tokenizer pipeline).
func (a IDFArgs) TokenizerConfig() normalize.TokenizerConfig {
	cfg := normalize.DefaultTokenizerConfig()
	cfg.RemoveHTMLEntities = a.RemoveUnicodeEntities
	cfg.CharNormalizationCount = a.CharacterNormalizationCount
	cfg.Stem = a.Stem
	cfg.CaseFold = a.NormalizeWords
	cfg.StripPunctuation = a.NormalizeWords
	return cfg
}
