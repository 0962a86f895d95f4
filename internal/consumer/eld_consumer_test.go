package consumer

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kuandriy/topicgate/internal/normalize"
	"github.com/kuandriy/topicgate/internal/queue"
	"github.com/kuandriy/topicgate/internal/vector"
)

func validPost(id string, text string, ts int64) normalize.Post {
	return normalize.Post{
		"id_str":       id,
		"lang":         "en",
		"text":         text,
		"timestamp_ms": fmt.Sprintf("%d", ts*1000),
		"user": map[string]any{
			"favourites_count": float64(1),
			"followers_count":  float64(100),
			"statuses_count":   float64(100),
			"description":      "a real account",
		},
	}
}

func newTestELDConsumer(cfg ELDConfig) *ELDConsumer {
	q := queue.New()
	return NewELDConsumer(q, zerolog.Nop(), vector.TF{}, cfg)
}

func TestELDConsumerDropsInvalidPosts(t *testing.T) {
	c := newTestELDConsumer(DefaultELDConfig())
	invalid := normalize.Post{"lang": "fr", "text": "bonjour", "timestamp_ms": "0"}
	c.process([]normalize.Post{invalid})

	if len(c.buffer) != 0 {
		t.Fatalf("expected invalid post to be dropped, buffer has %d documents", len(c.buffer))
	}
}

func TestELDConsumerBuffersValidPosts(t *testing.T) {
	c := newTestELDConsumer(DefaultELDConfig())
	posts := []normalize.Post{
		validPost("1", "hello world", 0),
		validPost("2", "goodbye world", 1),
	}
	c.process(posts)

	if len(c.buffer) != 2 {
		t.Fatalf("expected 2 buffered documents, got %d", len(c.buffer))
	}
}

func TestELDConsumerCreatesCheckpointOnTimeWindowBoundary(t *testing.T) {
	cfg := DefaultELDConfig()
	cfg.TimeWindow = 10
	c := newTestELDConsumer(cfg)

	var posts []normalize.Post
	for i := int64(0); i < 15; i++ {
		posts = append(posts, validPost(fmt.Sprintf("p%d", i), "hello world", i))
	}
	c.process(posts)

	if c.store.Len() == 0 {
		t.Fatalf("expected at least one checkpoint to be created")
	}
}

func TestELDConsumerDetectsBurstAndEmitsTimelineNode(t *testing.T) {
	cfg := DefaultELDConfig()
	cfg.TimeWindow = 10
	cfg.Sets = 2
	cfg.MinSize = 3
	cfg.Cooldown = 0
	cfg.MaxIntraSimilarity = 1.0
	cfg.MinBurst = 0.1
	cfg.ClusterThreshold = 0.5
	cfg.FreezePeriod = 1000
	c := newTestELDConsumer(cfg)

	// Baseline: a quiet trickle of unrelated posts over two time windows,
	// establishing low historic nutrition.
	var baseline []normalize.Post
	for i := int64(0); i < 20; i++ {
		baseline = append(baseline, validPost(fmt.Sprintf("b%d", i), "quiet afternoon", i))
	}
	c.process(baseline)

	// Burst: a cluster of near-identical posts about "goal" arrives in the
	// next window.
	var burst []normalize.Post
	for i := int64(0); i < 10; i++ {
		burst = append(burst, validPost(fmt.Sprintf("g%d", i), "goal goal amazing goal", 20+i))
	}
	c.process(burst)

	if len(c.tl.Nodes) == 0 {
		t.Fatalf("expected a topical cluster node to be emitted for the burst")
	}
}

func TestELDConsumerFiltersSmallClusters(t *testing.T) {
	cfg := DefaultELDConfig()
	cfg.TimeWindow = 10
	cfg.MinSize = 100
	c := newTestELDConsumer(cfg)

	var posts []normalize.Post
	for i := int64(0); i < 5; i++ {
		posts = append(posts, validPost(fmt.Sprintf("p%d", i), "goal goal goal", i))
	}
	c.process(posts)

	if len(c.tl.Nodes) != 0 {
		t.Fatalf("expected no timeline nodes when clusters are below min_size")
	}
}
