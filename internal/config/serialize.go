package config

import (
	"github.com/kuandriy/topicgate/internal/cluster"
	"github.com/kuandriy/topicgate/internal/timeline"
	"github.com/kuandriy/topicgate/internal/vector"
)

// Output is the top-level JSON shape the consume tool writes, per spec.md
// section 6: the config as passed, the config as resolved, and the
// resulting timeline.
type Output struct {
	Cmd      ConsumeArgs         `json:"cmd"`
	PCmd     ResolvedConsumeArgs `json:"pcmd"`
	Timeline map[string]any      `json:"timeline"`
}

// IDFOutput is the top-level JSON shape the idf tool writes.
type IDFOutput struct {
	Cmd   IDFArgs        `json:"cmd"`
	PCmd  IDFArgs        `json:"pcmd"`
	TFIDF map[string]any `json:"tfidf"`
}

// SerializeTimeline builds the "timeline" object: class, node kind, the
// expiry/min_similarity parameters, and every node serialised in order.
func SerializeTimeline(tl *timeline.Timeline, class, nodeType string) map[string]any {
	nodes := make([]map[string]any, len(tl.Nodes))
	for i, n := range tl.Nodes {
		nodes[i] = serializeNode(n)
	}
	return map[string]any{
		"class":          class,
		"node_type":      nodeType,
		"expiry":         tl.Expiry,
		"min_similarity": tl.MinSimilarity,
		"nodes":          nodes,
	}
}

// serializeNode dispatches on the node's concrete type, since
// DocumentNode and TopicalClusterNode carry different payloads
// (spec.md section 6: "documents" or "clusters"+"topics").
func serializeNode(n timeline.Node) map[string]any {
	switch node := n.(type) {
	case *timeline.DocumentNode:
		docs := node.Documents()
		serialized := make([]map[string]any, len(docs))
		for i, d := range docs {
			serialized[i] = SerializeDocument(d)
		}
		return map[string]any{
			"class":      "DocumentNode",
			"created_at": node.CreatedAt(),
			"documents":  serialized,
		}
	case *timeline.TopicalClusterNode:
		clusters := node.Clusters()
		topics := node.Topics()
		serializedClusters := make([]map[string]any, len(clusters))
		serializedTopics := make([]map[string]any, len(topics))
		for i, c := range clusters {
			serializedClusters[i] = SerializeCluster(c)
		}
		for i, t := range topics {
			serializedTopics[i] = SerializeVector(t)
		}
		return map[string]any{
			"class":      "TopicalClusterNode",
			"created_at": node.CreatedAt(),
			"clusters":   serializedClusters,
			"topics":     serializedTopics,
		}
	default:
		return map[string]any{"class": "Node", "created_at": n.CreatedAt()}
	}
}

// SerializeDocument matches spec.md section 6's Document shape:
// {class, dimensions, attributes, text}.
func SerializeDocument(d *vector.Document) map[string]any {
	return map[string]any{
		"class":      "Document",
		"dimensions": map[string]float64(d.Weights),
		"attributes": d.Attributes,
		"text":       d.Text,
	}
}

// SerializeVector matches spec.md section 6's Vector shape:
// {class, dimensions, attributes}.
func SerializeVector(v vector.Vector) map[string]any {
	return map[string]any{
		"class":      "Vector",
		"dimensions": map[string]float64(v),
		"attributes": map[string]any{},
	}
}

// SerializeCluster matches spec.md section 6's Cluster shape:
// {class, vectors, attributes}.
func SerializeCluster(c *cluster.Cluster) map[string]any {
	vectors := make([]map[string]any, len(c.Vectors))
	for i, v := range c.Vectors {
		vectors[i] = SerializeDocument(v)
	}
	return map[string]any{
		"class":      "Cluster",
		"vectors":    vectors,
		"attributes": c.Attributes,
	}
}

// SerializeTFIDF matches spec.md section 6's idf tool shape:
// {class, idf: {class, documents, idf: {term: df}}}.
func SerializeTFIDF(scheme vector.TFIDF) map[string]any {
	return map[string]any{
		"class": "TFIDFScheme",
		"idf": map[string]any{
			"class":     "TFIDF",
			"documents": scheme.N,
			"idf":       scheme.DF,
		},
	}
}
