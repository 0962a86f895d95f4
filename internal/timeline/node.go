// Package timeline implements the expiring-node timeline structure from
// spec.md section 4.7, grounded on
// original_source/lib/summarization/timeline/nodes/{document_node,cluster_node}.py
// and original_source/lib/summarization/timeline/tests/test_timeline.py
// (the only surviving source of Timeline.add's absorption semantics, since
// timeline.py itself was not part of the retrieval pack).
package timeline

import (
	"github.com/google/uuid"

	"github.com/kuandriy/topicgate/internal/vector"
)

// Node is the interface every timeline node kind implements. Rather than a
// class hierarchy dispatched through reflection, node kinds are distinct
// Go types satisfying this interface, matching the tagged-union style the
// teacher's internal/forest package uses for tree nodes.
type Node interface {
	// ID returns the node's unique identifier, assigned once at creation.
	ID() string

	// CreatedAt returns the timestamp the node was created at.
	CreatedAt() int64

	// Add absorbs new information (a document slice, or a cluster,
	// depending on the node kind) into the node.
	Add(data any)

	// Similarity compares the node against new information and returns a
	// cosine similarity in [0, 1].
	Similarity(data any) float64

	// Documents returns every document stored transitively in the node.
	Documents() []*vector.Document

	// Expired reports whether, given expiry seconds and the current
	// timestamp, the node's lifetime has elapsed.
	Expired(expiry, timestamp int64) bool

	// Attr and SetAttr expose the node's open attributes bag, the same
	// pattern the Python nodes use for bookkeeping like "printed" once a
	// node has been summarised.
	Attr(key string) (any, bool)
	SetAttr(key string, value any)
}

// baseNode carries the id, created_at timestamp, and attributes bag shared
// by every node kind. The id is assigned once via uuid.NewString() so log
// lines can correlate a node across its lifetime without relying on its
// (mutable) position in Timeline.Nodes. The id is not serialised.
type baseNode struct {
	id         string
	createdAt  int64
	attributes map[string]any
}

func newBaseNode(createdAt int64) baseNode {
	return baseNode{id: uuid.NewString(), createdAt: createdAt}
}

func (b *baseNode) ID() string       { return b.id }
func (b *baseNode) CreatedAt() int64 { return b.createdAt }

// Attr returns an attribute value and whether it was present.
func (b *baseNode) Attr(key string) (any, bool) {
	if b.attributes == nil {
		return nil, false
	}
	v, ok := b.attributes[key]
	return v, ok
}

// SetAttr sets an attribute, allocating the backing map if needed.
func (b *baseNode) SetAttr(key string, value any) {
	if b.attributes == nil {
		b.attributes = make(map[string]any)
	}
	b.attributes[key] = value
}

// Expired reports whether timestamp - createdAt >= expiry. expiry must be
// non-negative.
func (b *baseNode) Expired(expiry, timestamp int64) bool {
	if expiry < 0 {
		panic("timeline: expiry cannot be negative")
	}
	return timestamp-b.createdAt >= expiry
}
