// Package queue implements the FIFO multi-producer/single-consumer queue
// and the simulated file reader that feeds it, grounded on
// original_source/lib/twitter/file/{__init__,simulated_reader}.py.
package queue

import (
	"sync"

	"github.com/kuandriy/topicgate/internal/normalize"
)

// Queue is a thread-safe FIFO of posts, the hand-off point between a
// Reader (or a live stream) and a consumer (spec.md section 4.9).
type Queue struct {
	mu    sync.Mutex
	items []normalize.Post
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue appends a post to the back of the queue.
func (q *Queue) Enqueue(p normalize.Post) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, p)
}

// Dequeue removes and returns the post at the front of the queue, and
// false if the queue is empty.
func (q *Queue) Dequeue() (normalize.Post, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	p := q.items[0]
	q.items = q.items[1:]
	return p, true
}

// DequeueAll drains the entire queue at once, the way a consumer's main
// loop pulls everything that has arrived since its last iteration.
func (q *Queue) DequeueAll() []normalize.Post {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	drained := q.items
	q.items = nil
	return drained
}

// Len returns the number of posts currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
