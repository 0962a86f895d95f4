// Package burst implements the ELD feature-pivot burst-detection algorithm
// from spec.md sections 4.4-4.5, transcribed from
// original_source/lib/tdt/algorithms/eld.py (Mamo et al.'s ELD).
//
// Burst measures how much a term's popularity has changed between the
// current (local) nutrition and a weighted history of past checkpoints
// (the global context), bound to roughly [-1, 1] when nutrition values
// themselves are normalized to [0, 1].
package burst

import (
	"math"
	"sort"

	"github.com/kuandriy/topicgate/internal/nutrition"
)

// ELD is the fixed-checkpoint burst detector.
type ELD struct {
	Store     *nutrition.Store
	DecayRate float64
}

// NewELD returns an ELD detector with the given nutrition store and the
// default decay rate of 0.5, matching the Python default.
func NewELD(store *nutrition.Store) *ELD {
	return &ELD{Store: store, DecayRate: 0.5}
}

// Detect computes burst for terms in the local nutrition window against
// historic checkpoints in [since, until). since defaults to 0 (all
// history); until defaults to "no upper bound" (Store.Since is used
// instead of Store.Between). min_burst gates both which terms are
// considered and which are returned: non-negative min_burst restricts the
// candidate terms to those present with at least that much nutrition
// locally; negative min_burst widens the candidate set to every term ever
// seen, local or historic, so that burst can be computed for disappearing
// terms too.
func (e *ELD) Detect(local map[string]float64, since, until *int64, minBurst float64) map[string]float64 {
	var sinceVal int64
	if since != nil {
		sinceVal = *since
	}

	var historic map[int64]any
	if until != nil {
		historic = e.Store.Between(sinceVal, *until)
	} else {
		historic = e.Store.Since(sinceVal)
	}

	terms := candidateTerms(minBurst, local, historic)

	result := make(map[string]float64)
	for term := range terms {
		b := e.computeBurst(term, local, historic)
		if b > minBurst {
			result[term] = b
		}
	}
	return result
}

func candidateTerms(minBurst float64, local map[string]float64, historic map[int64]any) map[string]bool {
	terms := make(map[string]bool)
	if minBurst >= 0 {
		for term, nutr := range local {
			if nutr >= minBurst {
				terms[term] = true
			}
		}
		return terms
	}
	for term := range local {
		terms[term] = true
	}
	for _, data := range historic {
		if window, ok := data.(map[string]float64); ok {
			for term := range window {
				terms[term] = true
			}
		}
	}
	return terms
}

// computeBurst implements:
//
//	burst(k) = sum_{c=0}^{s-1} (local[k] - historic[c][k]) * decay(c+1) / coefficient(s)
//
// with historic sorted by timestamp descending (index 0 is the most recent
// checkpoint).
func (e *ELD) computeBurst(term string, local map[string]float64, historic map[int64]any) float64 {
	timestamps := make([]int64, 0, len(historic))
	for ts := range historic {
		timestamps = append(timestamps, ts)
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] > timestamps[j] })

	var sum float64
	for c, ts := range timestamps {
		window, _ := historic[ts].(map[string]float64)
		sum += (local[term] - window[term]) * e.decay(c+1)
	}
	return sum / e.coefficient(len(timestamps))
}

// decay computes 1/(e^c)^d for c the number of checkpoints back.
func (e *ELD) decay(c int) float64 {
	return 1 / math.Pow(math.Exp(float64(c)), e.DecayRate)
}

// coefficient is the sum of decay(1..s), used to rescale burst into
// roughly [-1, 1]. coefficient(0) is defined as 1.
func (e *ELD) coefficient(s int) float64 {
	if s == 0 {
		return 1
	}
	var sum float64
	for c := 1; c <= s; c++ {
		sum += e.decay(c)
	}
	return sum
}
