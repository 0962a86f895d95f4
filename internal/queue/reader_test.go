package queue

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestReaderEnqueuesValidLines(t *testing.T) {
	data := `{"timestamp_ms": "0", "text": "first"}
{"timestamp_ms": "0", "text": "second"}
`
	q := New()
	r := NewReader(q, zerolog.Nop())
	r.Speed = 1000 // avoid real-time waits in the test

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.Read(ctx, strings.NewReader(data)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Len() != 2 {
		t.Fatalf("expected 2 posts enqueued, got %d", q.Len())
	}
}

func TestReaderSkipsRetweetsWhenConfigured(t *testing.T) {
	data := `{"timestamp_ms": "0", "text": "original"}
{"timestamp_ms": "0", "text": "RT", "retweeted_status": {"text": "original"}}
`
	q := New()
	r := NewReader(q, zerolog.Nop())
	r.Speed = 1000
	r.SkipRetweets = true

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.Read(ctx, strings.NewReader(data)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Len() != 1 {
		t.Fatalf("expected only the non-retweet to be enqueued, got %d", q.Len())
	}
}

func TestReaderRespectsMaxLines(t *testing.T) {
	data := `{"timestamp_ms": "0", "text": "a"}
{"timestamp_ms": "0", "text": "b"}
{"timestamp_ms": "0", "text": "c"}
`
	q := New()
	r := NewReader(q, zerolog.Nop())
	r.Speed = 1000
	r.MaxLines = 2

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.Read(ctx, strings.NewReader(data)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Len() != 2 {
		t.Fatalf("expected max_lines to cap at 2, got %d", q.Len())
	}
}

func TestReaderSkipsMalformedLines(t *testing.T) {
	data := "not json\n" + `{"timestamp_ms": "0", "text": "valid"}` + "\n"
	q := New()
	r := NewReader(q, zerolog.Nop())
	r.Speed = 1000

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.Read(ctx, strings.NewReader(data)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Len() != 1 {
		t.Fatalf("expected malformed line skipped, got %d posts", q.Len())
	}
}
