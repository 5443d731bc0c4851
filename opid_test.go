package gocrdt

import "testing"

func TestOpId_CompareTickOrder(t *testing.T) {
	a := OpId{Replica: "alice", Tick: 1}
	b := OpId{Replica: "alice", Tick: 2}

	cmp, err := a.Compare(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp != -1 {
		t.Errorf("expected a < b, got cmp=%d", cmp)
	}

	less, err := a.Less(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !less {
		t.Errorf("expected a.Less(b) to be true")
	}
}

func TestOpId_CompareReplicaTiebreak(t *testing.T) {
	a := OpId{Replica: "alice", Tick: 5}
	b := OpId{Replica: "bob", Tick: 5}

	cmp, err := a.Compare(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp != -1 {
		t.Errorf("expected alice < bob at equal tick, got cmp=%d", cmp)
	}
}

func TestOpId_CompareIdenticalIsCollision(t *testing.T) {
	a := OpId{Replica: "alice", Tick: 7}
	b := OpId{Replica: "alice", Tick: 7}

	_, err := a.Compare(b)
	if !IsKind(err, ReplicaIdCollision) {
		t.Fatalf("expected ReplicaIdCollision, got %v", err)
	}
}

func TestOpId_Equal(t *testing.T) {
	a := OpId{Replica: "alice", Tick: 7}
	b := OpId{Replica: "alice", Tick: 7}
	c := OpId{Replica: "alice", Tick: 8}

	if !a.Equal(b) {
		t.Errorf("expected a.Equal(b)")
	}
	if a.Equal(c) {
		t.Errorf("expected !a.Equal(c)")
	}
}
