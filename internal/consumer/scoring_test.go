package consumer

import (
	"testing"

	"github.com/kuandriy/topicgate/internal/normalize"
	"github.com/kuandriy/topicgate/internal/vector"
)

func TestBrevityScoreEmptyTextIsZero(t *testing.T) {
	cfg := normalize.DefaultTokenizerConfig()
	if got := brevityScore("", cfg, 10); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestBrevityScoreCappedAtOne(t *testing.T) {
	cfg := normalize.DefaultTokenizerConfig()
	long := "word word word word word word word word word word word word word word word word word word word word"
	if got := brevityScore(long, cfg, 10); got > 1 {
		t.Fatalf("expected score capped at 1, got %v", got)
	}
}

func TestEmotionScoreNoLettersIsZero(t *testing.T) {
	if got := emotionScore("123 !!! ???"); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestEmotionScoreAllLowercaseIsOne(t *testing.T) {
	if got := emotionScore("all lowercase text"); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
}

func TestEmotionScoreAllCapsIsZero(t *testing.T) {
	if got := emotionScore("ALL CAPS TEXT"); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestScoreDocumentsOrdersDescending(t *testing.T) {
	cfg := normalize.DefaultTokenizerConfig()
	shouting := vector.NewDocument("THIS IS SHOUTING AND VERY LOUD TEXT INDEED TRULY", vector.Vector{})
	calm := vector.NewDocument("calm quiet words here", vector.Vector{})

	ranked := scoreDocuments([]*vector.Document{shouting, calm}, cfg)
	if ranked[0] != calm {
		t.Fatalf("expected calmer, terser document ranked first")
	}
}
