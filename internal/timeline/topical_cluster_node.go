package timeline

import (
	"github.com/kuandriy/topicgate/internal/cluster"
	"github.com/kuandriy/topicgate/internal/vector"
)

// TopicalClusterNode stores clusters alongside the bursty-term topic
// vector that caused each cluster to be attached to this node. Matching a
// new cluster against the node compares the new cluster's topic vector
// against every topic already stored, not against the clusters'
// centroids directly — two clusters can be topically related even when
// their document centroids diverge. Grounded on
// original_source/lib/summarization/timeline/nodes/cluster_node.py,
// generalised per
// original_source/lib/summarization/timeline/nodes/tests/test_topical_cluster_node.py
// (the class itself was not part of the retrieval pack, only its tests).
type TopicalClusterNode struct {
	baseNode
	clusters []*cluster.Cluster
	topics   []vector.Vector
}

// ClusterTopic pairs a cluster with the topic vector that earned it a slot
// in a TopicalClusterNode, the payload type for Add and Similarity.
type ClusterTopic struct {
	Cluster *cluster.Cluster
	Topic   vector.Vector
}

// NewTopicalClusterNode creates a node with optional initial clusters and
// their topics; the two slices must be the same length.
func NewTopicalClusterNode(createdAt int64, clusters []*cluster.Cluster, topics []vector.Vector) *TopicalClusterNode {
	if len(clusters) != len(topics) {
		panic("timeline: clusters and topics must be the same length")
	}
	return &TopicalClusterNode{
		baseNode: newBaseNode(createdAt),
		clusters: append([]*cluster.Cluster{}, clusters...),
		topics:   append([]vector.Vector{}, topics...),
	}
}

// Add appends a cluster and its topic vector to the node.
func (n *TopicalClusterNode) Add(data any) {
	ct, ok := data.(ClusterTopic)
	if !ok {
		return
	}
	n.clusters = append(n.clusters, ct.Cluster)
	n.topics = append(n.topics, ct.Topic)
}

// Documents flattens every document across every cluster in the node.
func (n *TopicalClusterNode) Documents() []*vector.Document {
	var docs []*vector.Document
	for _, c := range n.clusters {
		docs = append(docs, c.Vectors...)
	}
	return docs
}

// Similarity returns the highest cosine similarity between data's topic
// vector and any topic vector already stored in the node, or 0 if the
// node holds no clusters yet.
func (n *TopicalClusterNode) Similarity(data any) float64 {
	if len(n.clusters) == 0 {
		return 0
	}
	ct, ok := data.(ClusterTopic)
	if !ok {
		return 0
	}
	var best float64
	for i, topic := range n.topics {
		s := vector.Cosine(topic, ct.Topic)
		if i == 0 || s > best {
			best = s
		}
	}
	return best
}

// Clusters returns the node's clusters.
func (n *TopicalClusterNode) Clusters() []*cluster.Cluster { return n.clusters }

// Topics returns the node's topic vectors.
func (n *TopicalClusterNode) Topics() []vector.Vector { return n.topics }
