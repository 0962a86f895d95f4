package queue

import (
	"testing"

	"github.com/kuandriy/topicgate/internal/normalize"
)

func TestEnqueueDequeueFIFO(t *testing.T) {
	q := New()
	q.Enqueue(normalize.Post{"id": "1"})
	q.Enqueue(normalize.Post{"id": "2"})

	first, ok := q.Dequeue()
	if !ok || first.String("id") != "1" {
		t.Fatalf("expected id 1 first, got %v ok=%v", first, ok)
	}
	second, ok := q.Dequeue()
	if !ok || second.String("id") != "2" {
		t.Fatalf("expected id 2 second, got %v ok=%v", second, ok)
	}
}

func TestDequeueEmptyReturnsFalse(t *testing.T) {
	q := New()
	_, ok := q.Dequeue()
	if ok {
		t.Fatalf("expected false for empty queue")
	}
}

func TestDequeueAllDrains(t *testing.T) {
	q := New()
	q.Enqueue(normalize.Post{"id": "1"})
	q.Enqueue(normalize.Post{"id": "2"})

	all := q.DequeueAll()
	if len(all) != 2 {
		t.Fatalf("expected 2 drained posts, got %d", len(all))
	}
	if q.Len() != 0 {
		t.Fatalf("expected queue empty after drain, got len %d", q.Len())
	}
}

func TestLenTracksSize(t *testing.T) {
	q := New()
	if q.Len() != 0 {
		t.Fatalf("expected 0")
	}
	q.Enqueue(normalize.Post{"id": "1"})
	if q.Len() != 1 {
		t.Fatalf("expected 1")
	}
}
