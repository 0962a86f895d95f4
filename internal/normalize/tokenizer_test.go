package normalize

import (
	"reflect"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	cfg := TokenizerConfig{
		StripPunctuation: true,
		CaseFold:         true,
		RemoveStopwords:  true,
		MinLength:        2,
	}
	got := Tokenize("The launch, and the landing!", cfg)
	want := []string{"launch", "landing"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizeStemsWhenEnabled(t *testing.T) {
	cfg := TokenizerConfig{Stem: true, MinLength: 1}
	got := Tokenize("connected connecting", cfg)
	if len(got) != 2 || got[0] != got[1] {
		t.Fatalf("expected both forms to stem identically, got %v", got)
	}
}

func TestTokenizeNoStemLeavesWordsAlone(t *testing.T) {
	cfg := TokenizerConfig{MinLength: 1}
	got := Tokenize("running", cfg)
	if len(got) != 1 || got[0] != "running" {
		t.Fatalf("got %v", got)
	}
}

func TestTokenizeRemovesNumbersPreservingYears(t *testing.T) {
	cfg := TokenizerConfig{RemoveNumbers: true, PreserveYears: true, MinLength: 1}
	got := Tokenize("in 2020 there were 42 launches", cfg)
	found2020 := false
	found42 := false
	for _, tok := range got {
		if tok == "2020" {
			found2020 = true
		}
		if tok == "42" {
			found42 = true
		}
	}
	if !found2020 {
		t.Fatalf("expected 2020 preserved, got %v", got)
	}
	if found42 {
		t.Fatalf("expected 42 removed, got %v", got)
	}
}

func TestTokenizeMinLengthFilters(t *testing.T) {
	cfg := TokenizerConfig{MinLength: 3}
	got := Tokenize("a an ok launch", cfg)
	for _, tok := range got {
		if len(tok) < 3 {
			t.Fatalf("token %q shorter than min length in %v", tok, got)
		}
	}
}

func TestTokenizeStripsAccents(t *testing.T) {
	cfg := TokenizerConfig{StripAccents: true, MinLength: 1}
	got := Tokenize("café", cfg)
	if len(got) != 1 || got[0] != "cafe" {
		t.Fatalf("got %v", got)
	}
}

func TestTokenizeRemovesMentions(t *testing.T) {
	cfg := TokenizerConfig{RemoveMentions: true, MinLength: 1}
	got := Tokenize("thanks @nasa for the update", cfg)
	for _, tok := range got {
		if tok == "@nasa" || tok == "nasa" {
			t.Fatalf("mention leaked into tokens: %v", got)
		}
	}
}

func TestTokenizeCollapsesRepeatedChars(t *testing.T) {
	cfg := TokenizerConfig{CharacterNormalization: true, CharNormalizationCount: 3, MinLength: 1}
	got := Tokenize("soooo good", cfg)
	if got[0] != "so" {
		t.Fatalf("got %v", got)
	}
}

func TestTokenizeEmptyReturnsNil(t *testing.T) {
	cfg := DefaultTokenizerConfig()
	got := Tokenize("", cfg)
	if got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}
