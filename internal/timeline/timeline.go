package timeline

// Timeline assembles incoming information into a sequence of expiring
// nodes, grounded on
// original_source/lib/summarization/timeline/tests/test_timeline.py (the
// only surviving source, since timeline.py itself was not part of the
// retrieval pack — its behaviour is reconstructed from the test cases).
type Timeline struct {
	Expiry       int64
	MinSimilarity float64
	MaxTime      *int64
	Nodes        []Node

	newNode func(createdAt int64, data any) Node
}

// New constructs a Timeline. newNode builds a fresh node of the timeline's
// node kind from the given creation timestamp and the data that triggered
// it (so DocumentNode and TopicalClusterNode timelines can share this
// type); Add then passes that same data to the new node's Add. expiry must
// be non-negative and minSimilarity must be in [0, 1].
func New(expiry int64, minSimilarity float64, maxTime *int64, newNode func(int64, any) Node, nodes ...Node) *Timeline {
	if expiry < 0 {
		panic("timeline: expiry cannot be negative")
	}
	if minSimilarity < 0 || minSimilarity > 1 {
		panic("timeline: min_similarity must be between 0 and 1")
	}
	return &Timeline{
		Expiry:        expiry,
		MinSimilarity: minSimilarity,
		MaxTime:       maxTime,
		Nodes:         append([]Node{}, nodes...),
		newNode:       newNode,
	}
}

// Add inserts data at the given timestamp. It scans the timeline from the
// most recent node backwards:
//
//   - an unexpired node always absorbs the data;
//   - an expired node absorbs the data if it is still within MaxTime (when
//     set) of the given timestamp, and its similarity to data is at least
//     MinSimilarity;
//   - if no node absorbs the data, a new node is appended.
func (t *Timeline) Add(timestamp int64, data any) {
	for i := len(t.Nodes) - 1; i >= 0; i-- {
		node := t.Nodes[i]
		if !node.Expired(t.Expiry, timestamp) {
			node.Add(data)
			return
		}
		if t.MaxTime != nil && timestamp-node.CreatedAt() > *t.MaxTime {
			continue
		}
		if node.Similarity(data) >= t.MinSimilarity {
			node.Add(data)
			return
		}
	}

	node := t.newNode(timestamp, data)
	node.Add(data)
	t.Nodes = append(t.Nodes, node)
}
