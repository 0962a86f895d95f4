package vector

import "testing"

func TestTFCreate(t *testing.T) {
	doc := TF{}.Create("a a b", []string{"a", "a", "b"})
	if doc.Weights["a"] != 2 || doc.Weights["b"] != 1 {
		t.Errorf("TF weights = %v, want a:2 b:1", doc.Weights)
	}
}

func TestTFIDFCreate(t *testing.T) {
	// N=3, df[a]=1 -> idf = log10(4/2)+1 = log10(2)+1
	scheme := NewTFIDF(3, map[string]int{"a": 1})
	doc := scheme.Create("a", []string{"a"})
	want := (0.3010299956639812) + 1 // log10(2) ~= 0.30103
	if absDiff(doc.Weights["a"], want) > 1e-6 {
		t.Errorf("tfidf weight = %f, want %f", doc.Weights["a"], want)
	}
}

func TestBuildTFIDFCountsPerDocument(t *testing.T) {
	docs := [][]string{
		{"a", "a", "b"},
		{"a", "c"},
	}
	scheme := BuildTFIDF(docs)
	if scheme.N != 2 {
		t.Errorf("N = %d, want 2", scheme.N)
	}
	if scheme.DF["a"] != 2 {
		t.Errorf("df[a] = %d, want 2 (counted once per doc)", scheme.DF["a"])
	}
	if scheme.DF["b"] != 1 || scheme.DF["c"] != 1 {
		t.Errorf("df[b]=%d df[c]=%d, want 1 each", scheme.DF["b"], scheme.DF["c"])
	}
}

func TestConcatenate(t *testing.T) {
	tokenize := func(s string) []string {
		out := make([]string, 0)
		word := ""
		for _, r := range s + " " {
			if r == ' ' {
				if word != "" {
					out = append(out, word)
				}
				word = ""
				continue
			}
			word += string(r)
		}
		return out
	}
	docs := []*Document{
		NewDocument("a a", nil),
		NewDocument("b", nil),
	}
	merged := Concatenate(docs, tokenize, TF{})
	if merged.Weights["a"] == 0 || merged.Weights["b"] == 0 {
		t.Errorf("merged weights = %v, want both a and b present", merged.Weights)
	}
	if absDiff(merged.Weights.Norm(), 1.0) > 1e-10 {
		t.Errorf("concatenated document not normalised: norm=%f", merged.Weights.Norm())
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
