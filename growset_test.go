package gocrdt

import "testing"

func op(replica ReplicaId, tick uint64, payload rune) Operation[rune] {
	return Operation[rune]{
		Owner:   OpId{Replica: replica, Tick: tick},
		Action:  InsertBefore,
		Payload: payload,
	}
}

func TestGrowSet_AddIsIdempotent(t *testing.T) {
	s := NewGrowSet[rune]()
	a := op("alice", 1, 'x')

	if err := s.Add(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Add(a); err != nil {
		t.Fatalf("expected re-adding the identical operation to be a no-op, got %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("expected len 1, got %d", s.Len())
	}
}

func TestGrowSet_AddCollision(t *testing.T) {
	s := NewGrowSet[rune]()
	a := op("alice", 1, 'x')
	b := op("alice", 1, 'y')

	if err := s.Add(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Add(b); !IsKind(err, ReplicaIdCollision) {
		t.Fatalf("expected ReplicaIdCollision, got %v", err)
	}
}

func TestGrowSet_Difference(t *testing.T) {
	a := NewGrowSet[rune]()
	b := NewGrowSet[rune]()

	shared := op("alice", 1, 'a')
	onlyInA1 := op("bob", 1, 'b')
	onlyInA2 := op("bob", 2, 'c')

	if err := a.Add(shared); err != nil {
		t.Fatal(err)
	}
	if err := a.Add(onlyInA1); err != nil {
		t.Fatal(err)
	}
	if err := a.Add(onlyInA2); err != nil {
		t.Fatal(err)
	}
	if err := b.Add(shared); err != nil {
		t.Fatal(err)
	}

	diff, err := a.Difference(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diff) != 2 {
		t.Fatalf("expected 2 operations present in a but not b, got %d", len(diff))
	}
}

func TestGrowSet_MergeCollisionLeavesReceiverUntouched(t *testing.T) {
	a := NewGrowSet[rune]()
	b := NewGrowSet[rune]()

	if err := a.Add(op("alice", 1, 'x')); err != nil {
		t.Fatal(err)
	}
	if err := b.Add(op("alice", 1, 'y')); err != nil {
		t.Fatal(err)
	}
	if err := b.Add(op("bob", 1, 'z')); err != nil {
		t.Fatal(err)
	}

	if err := a.Merge(b); !IsKind(err, ReplicaIdCollision) {
		t.Fatalf("expected ReplicaIdCollision, got %v", err)
	}
	if a.Len() != 1 {
		t.Errorf("expected a to be untouched by a failed merge, got len %d", a.Len())
	}
}

func TestGrowSet_MergeUnion(t *testing.T) {
	a := NewGrowSet[rune]()
	b := NewGrowSet[rune]()

	if err := a.Add(op("alice", 1, 'a')); err != nil {
		t.Fatal(err)
	}
	if err := b.Add(op("bob", 1, 'b')); err != nil {
		t.Fatal(err)
	}

	if err := a.Merge(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Len() != 2 {
		t.Errorf("expected len 2 after merge, got %d", a.Len())
	}
}
