package burst

import (
	"math"
	"testing"

	"github.com/kuandriy/topicgate/internal/nutrition"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestELDNoHistoryIsZeroBurst(t *testing.T) {
	store := nutrition.New()
	eld := NewELD(store)
	result := eld.Detect(map[string]float64{"a": 1}, nil, nil, -1)
	if result["a"] != 0 {
		t.Fatalf("expected zero burst with no history, got %v", result["a"])
	}
}

func TestELDUpperBoundOne(t *testing.T) {
	store := nutrition.New()
	store.Add(1, map[string]float64{"a": 0})
	eld := NewELD(store)
	result := eld.Detect(map[string]float64{"a": 1}, nil, nil, -1)
	if !almostEqual(result["a"], 1) {
		t.Fatalf("expected burst of 1, got %v", result["a"])
	}
}

func TestELDLowerBoundNegativeOne(t *testing.T) {
	store := nutrition.New()
	store.Add(1, map[string]float64{"a": 1})
	eld := NewELD(store)
	// min_burst is exclusive, so it has to sit below -1 for a burst of
	// exactly -1 to be returned.
	result := eld.Detect(map[string]float64{"a": 0}, nil, nil, -2)
	if !almostEqual(result["a"], -1) {
		t.Fatalf("expected burst of -1, got %v", result["a"])
	}
}

func TestELDFiltersByMinBurst(t *testing.T) {
	store := nutrition.New()
	store.Add(1, map[string]float64{"a": 0, "b": 1})
	eld := NewELD(store)
	result := eld.Detect(map[string]float64{"a": 1, "b": 0}, nil, nil, 0)
	if _, ok := result["a"]; !ok {
		t.Fatalf("expected positive-burst term a to be returned")
	}
	if _, ok := result["b"]; ok {
		t.Fatalf("expected negative-burst term b to be filtered out at min_burst=0")
	}
}

func TestELDCoefficientZeroWindowsIsOne(t *testing.T) {
	eld := NewELD(nutrition.New())
	if eld.coefficient(0) != 1 {
		t.Fatalf("expected coefficient(0) == 1")
	}
}

func TestSlidingELDEmptyStoreReturnsEmpty(t *testing.T) {
	sliding := NewSlidingELD(nutrition.New(), 0.5, 60, 10, true)
	result := sliding.Detect(nil, 0)
	if len(result) != 0 {
		t.Fatalf("expected empty result for empty store, got %v", result)
	}
}

func TestSlidingELDNoHistoryReturnsEmpty(t *testing.T) {
	store := nutrition.New()
	store.Add(100, map[string]float64{"a": 1})
	sliding := NewSlidingELD(store, 0.5, 60, 10, true)
	result := sliding.Detect(nil, 0)
	if len(result) != 0 {
		t.Fatalf("expected empty result with no historic windows, got %v", result)
	}
}

func TestSlidingELDDetectsBurst(t *testing.T) {
	store := nutrition.New()
	// historic window: seconds 1-60, term "a" flat nutrition
	for ts := int64(1); ts <= 60; ts++ {
		store.Add(ts, map[string]float64{"a": 1})
	}
	// latest window: seconds 61-120, term "a" spikes
	for ts := int64(61); ts <= 120; ts++ {
		store.Add(ts, map[string]float64{"a": 5})
	}
	sliding := NewSlidingELD(store, 0.5, 60, 2, false)
	timestamp := int64(120)
	result := sliding.Detect(&timestamp, 0)
	if _, ok := result["a"]; !ok {
		t.Fatalf("expected term a to be detected as bursty, got %v", result)
	}
}
