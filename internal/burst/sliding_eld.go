package burst

import "github.com/kuandriy/topicgate/internal/nutrition"

// SlidingELD is the variant of ELD that partitions a per-second nutrition
// store into fixed-size windows anchored at a query timestamp, rather than
// relying on pre-aggregated checkpoints (spec.md section 4.5). It is
// grounded on SlidingELD._partition in
// original_source/lib/tdt/algorithms/eld.py, including its asymmetric
// since-exclusive/until-inclusive window bounds.
type SlidingELD struct {
	eld        ELD
	WindowSize int64
	Windows    int
	Normalized bool
}

// NewSlidingELD constructs a SlidingELD detector. windowSize must be
// positive and windows must be a positive integer, matching the Python
// constructor's validation.
func NewSlidingELD(store *nutrition.Store, decayRate float64, windowSize int64, windows int, normalized bool) *SlidingELD {
	if windowSize < 1 {
		panic("burst: window size must be positive")
	}
	if windows < 1 {
		panic("burst: number of windows must be a positive integer")
	}
	return &SlidingELD{
		eld:        ELD{Store: store, DecayRate: decayRate},
		WindowSize: windowSize,
		Windows:    windows,
		Normalized: normalized,
	}
}

// Detect partitions the store's nutrition into the latest window (ending
// at timestamp) and up to Windows-1 preceding historic windows, then runs
// the ELD burst computation over them. If the store is empty, or if every
// historic window is empty (no history to compare against yet), Detect
// returns an empty map rather than declaring every term bursty.
func (s *SlidingELD) Detect(timestamp *int64, minBurst float64) map[string]float64 {
	all := s.eld.Store.All()
	if len(all) == 0 {
		return map[string]float64{}
	}

	ts := int64(0)
	if timestamp != nil {
		ts = *timestamp
	} else {
		for t := range all {
			if t > ts {
				ts = t
			}
		}
	}

	local, historic := s.partition(ts)

	anyHistory := false
	for _, window := range historic {
		if len(window) > 0 {
			anyHistory = true
			break
		}
	}
	if !anyHistory {
		return map[string]float64{}
	}

	if s.Normalized {
		local = normalize(local)
		for ts, window := range historic {
			historic[ts] = normalize(window)
		}
	}

	historicAny := make(map[int64]any, len(historic))
	for ts, window := range historic {
		historicAny[ts] = window
	}

	terms := candidateTerms(minBurst, local, historicAny)
	result := make(map[string]float64)
	for term := range terms {
		b := s.eld.computeBurst(term, local, historicAny)
		if b > minBurst {
			result[term] = b
		}
	}
	return result
}

// partition mirrors the Python _partition method exactly: since is
// exclusive, until is inclusive, for both the latest window and every
// historic window.
func (s *SlidingELD) partition(timestamp int64) (map[string]float64, map[int64]map[string]float64) {
	store := s.eld.Store

	localRaw := store.Between(timestamp-s.WindowSize+1, timestamp+1)
	local := make(map[string]float64)
	for t, v := range localRaw {
		if t <= timestamp {
			mergeInto(local, v)
		}
	}

	historic := make(map[int64]map[string]float64)
	for window := 1; window < s.Windows; window++ {
		since := timestamp - s.WindowSize*int64(window+1) + 1
		if since < 0 {
			since = 0
		}
		until := timestamp - s.WindowSize*int64(window)
		if until <= 0 {
			continue
		}
		raw := store.Between(since, until+1)
		merged := make(map[string]float64)
		for t, v := range raw {
			if t <= until {
				mergeInto(merged, v)
			}
		}
		historic[until] = merged
	}

	return local, historic
}

func mergeInto(dst map[string]float64, value any) {
	window, ok := value.(map[string]float64)
	if !ok {
		return
	}
	for term, nutr := range window {
		dst[term] += nutr
	}
}

// normalize rescales a time window so that its maximum nutrition value
// becomes 1, the step that makes burst interpretable in [-1, 1] when the
// underlying per-second nutrition is raw, unbounded term frequency.
func normalize(window map[string]float64) map[string]float64 {
	if len(window) == 0 {
		return map[string]float64{}
	}
	var max float64
	for _, v := range window {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return map[string]float64{}
	}
	out := make(map[string]float64, len(window))
	for term, v := range window {
		out[term] = v / max
	}
	return out
}
