package cluster

import (
	"sort"

	"github.com/kuandriy/topicgate/internal/vector"
)

// Clusterer is the temporal No-K-Means incremental clustering algorithm.
// It processes vectors strictly in event-time order, assigning each to
// the most similar active cluster above Threshold, or starting a new
// cluster otherwise. A cluster that has gone FreezePeriod seconds without
// receiving a vector is retired into Frozen (if StoreFrozen) or dropped.
type Clusterer struct {
	Threshold    float64
	FreezePeriod int64
	StoreFrozen  bool

	Active []*Cluster
	Frozen []*Cluster
}

// NewClusterer constructs a Clusterer with no active or frozen clusters.
func NewClusterer(threshold float64, freezePeriod int64, storeFrozen bool) *Clusterer {
	return &Clusterer{
		Threshold:    threshold,
		FreezePeriod: freezePeriod,
		StoreFrozen:  storeFrozen,
	}
}

// Cluster assigns each of the given vectors to a cluster, freezing inactive
// clusters along the way, and returns the set of clusters that received a
// vector during this call (order of first update; duplicates collapsed).
// timeAttr names the document attribute holding the event timestamp,
// defaulting to "timestamp" when empty, matching the Python
// TemporalNoKMeans.cluster's `time` parameter.
func (cl *Clusterer) Cluster(vectors []*vector.Document, timeAttr string) []*Cluster {
	if timeAttr == "" {
		timeAttr = "timestamp"
	}

	ordered := append([]*vector.Document{}, vectors...)
	sort.SliceStable(ordered, func(i, j int) bool {
		ti, _ := ordered[i].TimeAttr(timeAttr)
		tj, _ := ordered[j].TimeAttr(timeAttr)
		return ti < tj
	})

	var updated []*Cluster
	seen := make(map[*Cluster]bool)
	latest := int64(-1)

	for _, v := range ordered {
		timestamp, _ := v.TimeAttr(timeAttr)

		if latest < timestamp {
			cl.freezeInactive(timestamp, timeAttr)
			latest = timestamp
		}

		if len(cl.Active) > 0 {
			closest, similarity := cl.closest(v)
			if similarity >= cl.Threshold {
				closest.Add(v)
				closest.SetAge(0)
				if !seen[closest] {
					seen[closest] = true
					updated = append(updated, closest)
				}
				continue
			}
		}

		fresh := New(v)
		cl.Active = append(cl.Active, fresh)
		seen[fresh] = true
		updated = append(updated, fresh)
	}

	return updated
}

// freezeInactive updates every active cluster's age relative to timestamp
// and retires those that have exceeded the freeze period.
func (cl *Clusterer) freezeInactive(timestamp int64, timeAttr string) {
	var stillActive []*Cluster
	for _, c := range cl.Active {
		last := c.Last()
		if last != nil {
			lastTime, _ := last.TimeAttr(timeAttr)
			c.SetAge(int(timestamp - lastTime))
		}
		if int64(c.Age()) > cl.FreezePeriod {
			if cl.StoreFrozen {
				cl.Frozen = append(cl.Frozen, c)
			}
			continue
		}
		stillActive = append(stillActive, c)
	}
	cl.Active = stillActive
}

// closest returns the active cluster most similar to v and that
// similarity score.
func (cl *Clusterer) closest(v *vector.Document) (*Cluster, float64) {
	var best *Cluster
	var bestSimilarity float64
	for i, c := range cl.Active {
		s := c.Similarity(v)
		if i == 0 || s > bestSimilarity {
			best = c
			bestSimilarity = s
		}
	}
	return best, bestSimilarity
}
