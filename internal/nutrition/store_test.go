package nutrition

import (
	"reflect"
	"testing"
)

func TestNewStoreIsEmpty(t *testing.T) {
	s := New()
	if len(s.All()) != 0 {
		t.Fatalf("expected empty store")
	}
}

func TestAddAndGet(t *testing.T) {
	s := New()
	s.Add(10, map[string]float64{"a": 1})
	got := s.Get(10)
	if !reflect.DeepEqual(got, map[string]float64{"a": 1}) {
		t.Fatalf("got %v", got)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	s := New()
	if s.Get(10) != nil {
		t.Fatalf("expected nil for missing timestamp")
	}
}

func TestAddOverwrites(t *testing.T) {
	s := New()
	s.Add(10, 1)
	s.Add(10, 2)
	if s.Get(10) != 2 {
		t.Fatalf("got %v", s.Get(10))
	}
}

func TestAllReturnsEverything(t *testing.T) {
	s := New()
	s.Add(10, 1)
	s.Add(20, 2)
	want := map[int64]any{10: 1, 20: 2}
	if !reflect.DeepEqual(s.All(), want) {
		t.Fatalf("got %v, want %v", s.All(), want)
	}
}

func TestBetweenStartInclusiveEndExclusive(t *testing.T) {
	s := New()
	s.Add(10, 1)
	s.Add(20, 2)
	want := map[int64]any{10: 1}
	if got := s.Between(10, 20); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBetweenPanicsOnInvalidRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for start >= end")
		}
	}()
	New().Between(10, 10)
}

func TestSinceInclusive(t *testing.T) {
	s := New()
	s.Add(0, 0)
	s.Add(10, 1)
	s.Add(20, 2)
	want := map[int64]any{10: 1, 20: 2}
	if got := s.Since(10); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUntilExclusive(t *testing.T) {
	s := New()
	s.Add(0, 0)
	s.Add(10, 1)
	s.Add(20, 2)
	want := map[int64]any{0: 0, 10: 1}
	if got := s.Until(20); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRemoveNothingIsNoOp(t *testing.T) {
	s := New()
	s.Add(10, 1)
	s.Remove()
	if len(s.All()) != 1 {
		t.Fatalf("expected unchanged store")
	}
}

func TestRemoveMultiple(t *testing.T) {
	s := New()
	s.Add(0, 0)
	s.Add(10, 1)
	s.Add(20, 2)
	s.Remove(10, 20)
	want := map[int64]any{0: 0}
	if got := s.All(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	s := New()
	s.Add(0, 0)
	s.Add(10, 1)

	cp := s.Copy()
	cp.Add(0, 99)

	if s.Get(0) != 0 {
		t.Fatalf("original mutated via copy: got %v", s.Get(0))
	}
	if cp.Get(0) != 99 {
		t.Fatalf("copy not updated: got %v", cp.Get(0))
	}
}
