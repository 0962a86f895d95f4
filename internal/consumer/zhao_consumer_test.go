package consumer

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kuandriy/topicgate/internal/normalize"
	"github.com/kuandriy/topicgate/internal/queue"
	"github.com/kuandriy/topicgate/internal/vector"
)

func newTestZhaoConsumer(cfg ZhaoConfig) *ZhaoConsumer {
	q := queue.New()
	return NewZhaoConsumer(q, zerolog.Nop(), vector.TF{}, cfg)
}

func TestZhaoConsumerAccumulatesVolume(t *testing.T) {
	c := newTestZhaoConsumer(DefaultZhaoConfig())

	var posts []normalize.Post
	for i := int64(0); i < 5; i++ {
		posts = append(posts, validPost(fmt.Sprintf("p%d", i), "hello world", i))
	}
	c.process(posts)

	if c.store.Len() == 0 {
		t.Fatalf("expected volume counts recorded in the nutrition store")
	}
}

func TestZhaoConsumerDetectsVolumeBurstAndEmitsNode(t *testing.T) {
	c := newTestZhaoConsumer(DefaultZhaoConfig())

	var posts []normalize.Post
	// Quiet baseline: one post per second for t=0..3.
	for i := int64(0); i < 4; i++ {
		posts = append(posts, validPost(fmt.Sprintf("b%d", i), "quiet moment", i))
	}
	// Surge: ten posts per second for t=4..8.
	for i := int64(4); i < 9; i++ {
		for j := 0; j < 10; j++ {
			posts = append(posts, validPost(fmt.Sprintf("s%d-%d", i, j), "huge news everyone", i))
		}
	}
	// Anchor the latest timestamp at 9.
	posts = append(posts, validPost("last", "huge news everyone", 9))

	c.process(posts)

	if len(c.tl.Nodes) == 0 {
		t.Fatalf("expected a document node to be emitted for the volume surge")
	}
}

func TestZhaoConsumerRemovesStaleDocuments(t *testing.T) {
	c := newTestZhaoConsumer(DefaultZhaoConfig())

	c.process([]normalize.Post{validPost("1", "old news", 0)})
	if len(c.documents) == 0 {
		t.Fatalf("expected the first batch's document to be retained")
	}

	c.process([]normalize.Post{validPost("2", "new news", 1000)})
	if _, ok := c.documents[0]; ok {
		t.Fatalf("expected stale document at t=0 to be evicted once the window moved to t=1000")
	}
}
