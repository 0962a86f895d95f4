package config

import "testing"

func TestDefaultOutputPath(t *testing.T) {
	got := DefaultOutputPath("/data/events/goal.jsonl")
	want := "/data/events/.out/goal.jsonl"
	if got != want {
		t.Fatalf("DefaultOutputPath() = %q, want %q", got, want)
	}
}

func TestResolveFallsBackToDefaultOutput(t *testing.T) {
	args := DefaultConsumeArgs()
	args.Event = "/data/events/goal.jsonl"

	resolved := Resolve(args)
	if resolved.OutputPath != "/data/events/.out/goal.jsonl" {
		t.Fatalf("OutputPath = %q, want default derived from event path", resolved.OutputPath)
	}
}

func TestResolveHonoursExplicitOutput(t *testing.T) {
	args := DefaultConsumeArgs()
	args.Event = "/data/events/goal.jsonl"
	args.Output = "/tmp/custom.json"

	resolved := Resolve(args)
	if resolved.OutputPath != "/tmp/custom.json" {
		t.Fatalf("OutputPath = %q, want explicit override", resolved.OutputPath)
	}
}

func TestResolveConvertsMinutesToSeconds(t *testing.T) {
	args := DefaultConsumeArgs()
	args.Event = "/data/events/goal.jsonl"
	args.SkipMinutes = 2
	args.MaxTimeMinutes = 5

	resolved := Resolve(args)
	if resolved.SkipTime != 120 {
		t.Fatalf("SkipTime = %d, want 120", resolved.SkipTime)
	}
	if resolved.MaxTime != 300 {
		t.Fatalf("MaxTime = %d, want 300", resolved.MaxTime)
	}
}

func TestResolveNegativeMaxTimeStaysUnbounded(t *testing.T) {
	args := DefaultConsumeArgs()
	args.Event = "/data/events/goal.jsonl"
	args.MaxTimeMinutes = -1

	resolved := Resolve(args)
	if resolved.MaxTime != -1 {
		t.Fatalf("MaxTime = %d, want -1 (unbounded)", resolved.MaxTime)
	}
}

func TestELDConfigCarriesOverrides(t *testing.T) {
	args := DefaultConsumeArgs()
	args.Event = "/data/events/goal.jsonl"
	args.MinSize = 7
	args.Threshold = 0.9

	cfg := Resolve(args).ELDConfig()
	if cfg.MinSize != 7 {
		t.Fatalf("MinSize = %d, want 7", cfg.MinSize)
	}
	if cfg.ClusterThreshold != 0.9 {
		t.Fatalf("ClusterThreshold = %v, want 0.9", cfg.ClusterThreshold)
	}
}

func TestIDFTokenizerConfigHonoursNormalizeWords(t *testing.T) {
	args := DefaultIDFArgs()
	args.NormalizeWords = true

	cfg := args.TokenizerConfig()
	if !cfg.CaseFold || !cfg.StripPunctuation {
		t.Fatalf("expected --normalize-words to enable case folding and punctuation stripping")
	}
}
