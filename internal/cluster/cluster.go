// Package cluster implements the incremental temporal clustering algorithm
// from spec.md section 4.6 ("Temporal No-K-Means"), grounded on
// original_source/lib/vsm/clustering/algorithms/no_k_means.py and its
// temporal_no_k_means.py subclass.
package cluster

import (
	"github.com/google/uuid"

	"github.com/kuandriy/topicgate/internal/vector"
)

// Cluster holds an ordered list of vectors and a bag of attributes used by
// the clustering algorithm (age) and by downstream burst testing
// (last_checked, bursty). Vectors are kept in the order they were added,
// since TemporalNoKMeans relies on the last element being the
// most-recently-added vector.
type Cluster struct {
	ID         string
	Vectors    []*vector.Document
	Attributes map[string]any

	centroid    vector.Vector
	centroidAge int
}

// New creates a cluster seeded with the given vectors, assigning it a
// fresh uuid.NewString() identifier so logs can follow one cluster across
// checkpoints, including after it freezes. The ID is not serialised.
func New(vectors ...*vector.Document) *Cluster {
	return &Cluster{
		ID:         uuid.NewString(),
		Vectors:    append([]*vector.Document{}, vectors...),
		Attributes: make(map[string]any),
	}
}

// Add appends a vector to the cluster and invalidates the cached centroid.
func (c *Cluster) Add(v *vector.Document) {
	c.Vectors = append(c.Vectors, v)
	c.centroid = nil
}

// Centroid returns the cluster's centroid, computed lazily and cached
// until the next Add call — the centroid of a large, long-lived cluster
// is expensive to recompute on every similarity check otherwise.
func (c *Cluster) Centroid() vector.Vector {
	if c.centroid != nil && c.centroidAge == len(c.Vectors) {
		return c.centroid
	}
	weights := make([]vector.Vector, len(c.Vectors))
	for i, v := range c.Vectors {
		weights[i] = v.Weights
	}
	c.centroid = vector.Centroid(weights)
	c.centroidAge = len(c.Vectors)
	return c.centroid
}

// Similarity returns the cosine similarity between v and the cluster's
// centroid.
func (c *Cluster) Similarity(v *vector.Document) float64 {
	return vector.Cosine(c.Centroid(), v.Weights)
}

// Age returns the cluster's current age attribute, defaulting to 0.
func (c *Cluster) Age() int {
	age, _ := c.Attributes["age"].(int)
	return age
}

// SetAge sets the cluster's age attribute.
func (c *Cluster) SetAge(age int) {
	c.Attributes["age"] = age
}

// Last returns the most recently added vector, or nil if the cluster is
// empty.
func (c *Cluster) Last() *vector.Document {
	if len(c.Vectors) == 0 {
		return nil
	}
	return c.Vectors[len(c.Vectors)-1]
}

// Size returns the number of vectors in the cluster.
func (c *Cluster) Size() int {
	return len(c.Vectors)
}

// IntraSimilarity returns the mean cosine similarity of each vector in the
// cluster against the cluster's own centroid, per spec.md section 3's
// "intra-similarity is the mean cosine of each vector with the
// (normalised) centroid" — a measure of how quasi-identical the cluster's
// documents are to each other (a cluster of near-duplicate retweets
// scores close to 1). Returns 0 for an empty cluster.
func (c *Cluster) IntraSimilarity() float64 {
	n := len(c.Vectors)
	if n == 0 {
		return 0
	}
	centroid := c.Centroid()
	var sum float64
	for _, v := range c.Vectors {
		sum += vector.Cosine(centroid, v.Weights)
	}
	return sum / float64(n)
}
