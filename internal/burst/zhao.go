package burst

import "github.com/kuandriy/topicgate/internal/nutrition"

// zhaoWindows are the four time-window sizes (in seconds) Zhao et al.'s
// algorithm tries in increasing order, per
// original_source/lib/tdt/algorithms/zhao.py.
var zhaoWindows = [...]int64{10, 20, 30, 60}

// Zhao is the volume-based burst detector used by ZhaoConsumer: it splits
// a candidate time window in two and flags a burst when the second half's
// post volume has grown by at least PostRate relative to the first half.
type Zhao struct {
	Store    *nutrition.Store
	PostRate float64
}

// NewZhao returns a Zhao detector with the paper's default 1.7 post rate
// (a 70% volume increase).
func NewZhao(store *nutrition.Store) *Zhao {
	return &Zhao{Store: store, PostRate: 1.7}
}

// Detect tries each window size in zhaoWindows, smallest first, and
// returns the [start, end] bounds of the first window whose second half
// shows a large enough volume increase over its first half. ok is false
// if no window size qualifies.
func (z *Zhao) Detect(timestamp int64) (start, end int64, ok bool) {
	for _, window := range zhaoWindows {
		half := window / 2
		firstHalf := z.Store.Between(timestamp-window, timestamp-half)
		secondHalf := z.Store.Between(timestamp-half, timestamp)

		firstVolume := sumVolume(firstHalf)
		if firstVolume == 0 {
			continue
		}
		secondVolume := sumVolume(secondHalf)

		if secondVolume/firstVolume >= z.PostRate {
			lo, hi, any := boundsOf(secondHalf)
			if any {
				return lo, hi, true
			}
		}
	}
	return 0, 0, false
}

func sumVolume(window map[int64]any) float64 {
	var sum float64
	for _, v := range window {
		switch n := v.(type) {
		case float64:
			sum += n
		case int:
			sum += float64(n)
		case int64:
			sum += float64(n)
		}
	}
	return sum
}

func boundsOf(window map[int64]any) (lo, hi int64, ok bool) {
	first := true
	for ts := range window {
		if first {
			lo, hi = ts, ts
			first = false
			continue
		}
		if ts < lo {
			lo = ts
		}
		if ts > hi {
			hi = ts
		}
	}
	return lo, hi, !first
}
