package timeline

import "github.com/kuandriy/topicgate/internal/vector"

// DocumentNode stores Document instances directly and compares incoming
// documents against the centroid of everything it already holds. It is
// grounded on
// original_source/lib/summarization/timeline/nodes/document_node.py.
type DocumentNode struct {
	baseNode
	docs []*vector.Document
}

// NewDocumentNode creates a node with an optional initial document list.
func NewDocumentNode(createdAt int64, docs ...*vector.Document) *DocumentNode {
	return &DocumentNode{baseNode: newBaseNode(createdAt), docs: append([]*vector.Document{}, docs...)}
}

// Add appends documents to the node, skipping any already present by
// identity, matching the Python implementation's "not in documents" check.
func (n *DocumentNode) Add(data any) {
	incoming, _ := data.([]*vector.Document)
	for _, d := range incoming {
		if !n.contains(d) {
			n.docs = append(n.docs, d)
		}
	}
}

func (n *DocumentNode) contains(d *vector.Document) bool {
	for _, existing := range n.docs {
		if existing == d {
			return true
		}
	}
	return false
}

// Documents returns every document in the node.
func (n *DocumentNode) Documents() []*vector.Document { return n.docs }

// Similarity computes the cosine similarity between the centroid of the
// node's documents and the centroid of the incoming documents, each
// normalised before comparison.
func (n *DocumentNode) Similarity(data any) float64 {
	incoming, _ := data.([]*vector.Document)
	if len(n.docs) == 0 || len(incoming) == 0 {
		return 0
	}

	nodeCentroid := vector.Centroid(weightsOf(n.docs)).Normalise()
	incomingCentroid := vector.Centroid(weightsOf(incoming)).Normalise()
	return vector.Cosine(nodeCentroid, incomingCentroid)
}

func weightsOf(docs []*vector.Document) []vector.Vector {
	out := make([]vector.Vector, len(docs))
	for i, d := range docs {
		out[i] = d.Weights
	}
	return out
}
