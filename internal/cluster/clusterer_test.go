package cluster

import (
	"testing"

	"github.com/kuandriy/topicgate/internal/vector"
)

func doc(ts int64, weights vector.Vector) *vector.Document {
	d := vector.NewDocument("", weights)
	d.SetAttr("timestamp", ts)
	return d
}

func TestClustererGroupsSimilarVectors(t *testing.T) {
	cl := NewClusterer(0.5, 100, false)
	a := doc(1, vector.Vector{"rocket": 1, "launch": 1})
	b := doc(2, vector.Vector{"rocket": 1, "launch": 1})
	updated := cl.Cluster([]*vector.Document{a, b}, "")
	if len(cl.Active) != 1 {
		t.Fatalf("expected one cluster, got %d", len(cl.Active))
	}
	if len(updated) != 1 {
		t.Fatalf("expected one updated cluster, got %d", len(updated))
	}
	if len(cl.Active[0].Vectors) != 2 {
		t.Fatalf("expected two vectors in the cluster, got %d", len(cl.Active[0].Vectors))
	}
}

func TestClustererSeparatesDissimilarVectors(t *testing.T) {
	cl := NewClusterer(0.9, 100, false)
	a := doc(1, vector.Vector{"rocket": 1})
	b := doc(2, vector.Vector{"election": 1})
	cl.Cluster([]*vector.Document{a, b}, "")
	if len(cl.Active) != 2 {
		t.Fatalf("expected two clusters, got %d", len(cl.Active))
	}
}

func TestClustererFreezesInactiveClusters(t *testing.T) {
	cl := NewClusterer(0.5, 10, true)
	a := doc(0, vector.Vector{"rocket": 1})
	cl.Cluster([]*vector.Document{a}, "")
	if len(cl.Active) != 1 {
		t.Fatalf("expected one active cluster after first vector")
	}

	b := doc(100, vector.Vector{"election": 1})
	cl.Cluster([]*vector.Document{b}, "")

	if len(cl.Active) != 1 {
		t.Fatalf("expected the new vector's cluster to remain active, got %d", len(cl.Active))
	}
	if len(cl.Frozen) != 1 {
		t.Fatalf("expected the stale cluster to be frozen, got %d", len(cl.Frozen))
	}
}

func TestClustererDiscardsFrozenWhenNotStored(t *testing.T) {
	cl := NewClusterer(0.5, 10, false)
	a := doc(0, vector.Vector{"rocket": 1})
	cl.Cluster([]*vector.Document{a}, "")

	b := doc(100, vector.Vector{"election": 1})
	cl.Cluster([]*vector.Document{b}, "")

	if len(cl.Frozen) != 0 {
		t.Fatalf("expected frozen clusters to be discarded, got %d", len(cl.Frozen))
	}
}

func TestClustererProcessesInTimestampOrder(t *testing.T) {
	cl := NewClusterer(0.5, 1000, false)
	later := doc(10, vector.Vector{"a": 1})
	earlier := doc(1, vector.Vector{"a": 1})
	// Passed out of order; the clusterer must sort by timestamp before
	// computing ages and freezing.
	cl.Cluster([]*vector.Document{later, earlier}, "")
	if len(cl.Active) != 1 {
		t.Fatalf("expected both vectors merged into one cluster, got %d clusters", len(cl.Active))
	}
	if len(cl.Active[0].Vectors) != 2 {
		t.Fatalf("expected two vectors, got %d", len(cl.Active[0].Vectors))
	}
}
